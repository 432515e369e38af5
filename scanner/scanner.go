// Package scanner provides the in-process longest-match, priority-resolved
// runtime scanner for a compiled dfa.DFA (spec.md §4.5).
package scanner

import (
	"fmt"

	"github.com/coregx/brzlex/dfa"
)

// Token is one recognized lexeme.
type Token struct {
	Type string
	Text string
}

// ScanError reports that the input reached the DFA's error state with no
// accepting candidate since the last token boundary.
type ScanError struct {
	Index int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at index %d: no token matches", e.Index)
}

// Scan tokenizes text against the compiled DFA d.
//
// The scanner starts at state 0 and steps on one character at a time. Every
// time it enters an accepting state it records a candidate (end index,
// highest-priority name accepting there). Every time it enters the error
// state it emits the last candidate as a token, rewinds the cursor to that
// candidate's end, resets to state 0, and continues; if there is no
// candidate since the last token boundary, scanning fails. At end of input
// any pending candidate is emitted as a final token.
func Scan(d *dfa.DFA, text string) ([]Token, error) {
	runes := []rune(text)
	var tokens []Token

	state := dfa.StateID(0)
	tokBegin := 0
	index := 0
	var candidate *candidateMatch

	for index < len(runes) {
		c := runes[index]

		next, err := step(d, state, c)
		if err != nil {
			return nil, err
		}
		state = next
		index++

		if names, ok := d.Accepting[state]; ok && len(names) > 0 {
			candidate = &candidateMatch{end: index, typ: names[0]}
		}

		if d.HasErrorState && state == d.ErrorState {
			if candidate == nil {
				return nil, &ScanError{Index: tokBegin}
			}
			tokens = append(tokens, Token{
				Type: candidate.typ,
				Text: string(runes[tokBegin:candidate.end]),
			})
			tokBegin = candidate.end
			index = candidate.end
			state = 0
			candidate = nil
		}
	}

	if candidate != nil {
		tokens = append(tokens, Token{
			Type: candidate.typ,
			Text: string(runes[tokBegin:candidate.end]),
		})
	}

	return tokens, nil
}

type candidateMatch struct {
	end int
	typ string
}

// step finds the unique outgoing transition from state on c. Every DFA
// state has transitions whose CharSets are pairwise disjoint and cover Σ
// (spec.md §4.4), so exactly one of them should contain c; a character
// outside Σ (not covered by any transition) is reported as a plain error,
// not a *ScanError, and Scan returns it even when a candidate is pending.
func step(d *dfa.DFA, state dfa.StateID, c rune) (dfa.StateID, error) {
	for _, t := range d.Transitions[state] {
		if t.Class.Contains(c) {
			return t.Target, nil
		}
	}
	return 0, fmt.Errorf("scanner: character %q at state %d is outside the compiled alphabet", c, state)
}
