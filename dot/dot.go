// Package dot renders a compiled dfa.DFA as Graphviz DOT text.
package dot

import (
	"fmt"
	"io"
	"sort"

	"github.com/coregx/brzlex/dfa"
)

// Write renders d as a DOT digraph to w: one edge per (state, CharSet,
// state), labeled with the CharSet's printed form, with accepting states
// drawn with a double periphery (peripheries=2).
func Write(w io.Writer, d *dfa.DFA) error {
	if _, err := fmt.Fprintln(w, "digraph state_machine {"); err != nil {
		return err
	}

	states := make([]dfa.StateID, 0, len(d.Transitions))
	for s := range d.Transitions {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })

	for _, from := range states {
		for _, t := range d.Transitions[from] {
			if _, err := fmt.Fprintf(w, "  %d -> %d [label=\"%s\"];\n", from, t.Target, t.Class.String()); err != nil {
				return err
			}
		}
	}

	acceptingStates := make([]dfa.StateID, 0, len(d.Accepting))
	for s := range d.Accepting {
		acceptingStates = append(acceptingStates, s)
	}
	sort.Slice(acceptingStates, func(i, j int) bool { return acceptingStates[i] < acceptingStates[j] })
	for _, s := range acceptingStates {
		if _, err := fmt.Fprintf(w, "  %d [peripheries=2];\n", s); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
