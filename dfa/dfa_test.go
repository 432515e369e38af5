package dfa

import (
	"testing"

	"github.com/coregx/brzlex/charset"
	"github.com/coregx/brzlex/rx"
	"github.com/coregx/brzlex/vector"
)

func runDFA(t *testing.T, d *DFA, input string) (matched string, accepted []string, failedAt int) {
	t.Helper()
	state := StateID(0)
	for i, c := range input {
		next := StateID(-1)
		for _, tr := range d.Transitions[state] {
			if tr.Class.Contains(c) {
				next = tr.Target
				break
			}
		}
		if next < 0 || (d.HasErrorState && next == d.ErrorState) {
			return input[:i], d.Accepting[state], i
		}
		state = next
	}
	return input, d.Accepting[state], -1
}

func TestCompileDigitsPlus(t *testing.T) {
	seed := vector.New([]vector.Entry{{Name: "NUM", Regex: rx.Plus(rx.SymbolRange('0', '9'))}})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, accepted, failedAt := runDFA(t, d, "123")
	if failedAt != -1 {
		t.Fatalf("expected full match, failed at %d", failedAt)
	}
	if len(accepted) != 1 || accepted[0] != "NUM" {
		t.Fatalf("expected NUM accepting, got %v", accepted)
	}
}

func TestCompilePriorityKeywordOverIdent(t *testing.T) {
	kw := rx.Concat(rx.Symbol('i'), rx.Symbol('f'))
	id := rx.Plus(rx.SymbolRange('a', 'z'))
	seed := vector.New([]vector.Entry{{Name: "IF", Regex: kw}, {Name: "ID", Regex: id}})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, accepted, failedAt := runDFA(t, d, "if")
	if failedAt != -1 {
		t.Fatalf("expected full match, failed at %d", failedAt)
	}
	if len(accepted) == 0 || accepted[0] != "IF" {
		t.Fatalf("expected IF to win priority at full match, got %v", accepted)
	}

	_, accepted, failedAt = runDFA(t, d, "ifx")
	if failedAt != -1 {
		t.Fatalf("expected full match for ifx, failed at %d", failedAt)
	}
	if len(accepted) != 1 || accepted[0] != "ID" {
		t.Fatalf("expected only ID to accept ifx, got %v", accepted)
	}
}

func TestCompileInvertedClass(t *testing.T) {
	notA := rx.Plus(rx.Not(rx.Symbol('A')))
	seed := vector.New([]vector.Entry{{Name: "NOTA", Regex: notA}})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, accepted, failedAt := runDFA(t, d, "xyz")
	if failedAt != -1 || len(accepted) != 1 {
		t.Fatalf("expected xyz to fully match NOTA, got accepted=%v failedAt=%d", accepted, failedAt)
	}
	_, _, failedAt = runDFA(t, d, "xAy")
	if failedAt != 1 {
		t.Fatalf("expected to fail at index 1 (the A), got %d", failedAt)
	}
}

func TestCompileWithAndIntersection(t *testing.T) {
	azPlus := rx.Plus(rx.SymbolRange('a', 'z'))
	containsE := rx.Concat(rx.Star(rx.Sigma()), rx.Concat(rx.Symbol('e'), rx.Star(rx.Sigma())))
	wordsWithE := rx.And(azPlus, containsE)
	seed := vector.New([]vector.Entry{{Name: "HAS_E", Regex: wordsWithE}})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	_, accepted, failedAt := runDFA(t, d, "tree")
	if failedAt != -1 || len(accepted) != 1 {
		t.Fatalf("expected tree to match HAS_E, got accepted=%v failedAt=%d", accepted, failedAt)
	}
	_, accepted, _ = runDFA(t, d, "sky")
	if len(accepted) != 0 {
		t.Fatalf("expected sky not to accept HAS_E, got %v", accepted)
	}
}

func TestCompileNoErrorStateWhenLanguageIsSigmaStar(t *testing.T) {
	anything := rx.Star(rx.Sigma())
	seed := vector.New([]vector.Entry{{Name: "ANY", Regex: anything}})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if d.HasErrorState {
		t.Fatal("Σ* language should never reach an all-null state")
	}
}

func TestCompileHasErrorStateWhenLanguageCanDeadEnd(t *testing.T) {
	seed := vector.New([]vector.Entry{{Name: "AB", Regex: rx.Concat(rx.Symbol('A'), rx.Symbol('B'))}})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !d.HasErrorState {
		t.Fatal("expected an error state reachable after a mismatching prefix")
	}
}

func TestTransitionsPartitionSigmaPerState(t *testing.T) {
	kw := rx.Concat(rx.Symbol('i'), rx.Symbol('f'))
	id := rx.Plus(rx.SymbolRange('a', 'z'))
	num := rx.Plus(rx.SymbolRange('0', '9'))
	space := rx.Plus(rx.Symbol(' '))
	seed := vector.New([]vector.Entry{
		{Name: "IF", Regex: kw},
		{Name: "ID", Regex: id},
		{Name: "NUM", Regex: num},
		{Name: "SPACE", Regex: space},
	})
	d, err := Compile(seed)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	sigma := rx.Alphabet()
	for state, trs := range d.Transitions {
		union := charset.Empty()
		for i, tr := range trs {
			union = union.Union(tr.Class)
			for j, other := range trs {
				if i == j {
					continue
				}
				if !tr.Class.Intersection(other.Class).IsEmpty() {
					t.Fatalf("state %d: transitions %d and %d overlap", state, i, j)
				}
			}
		}
		if !union.Equal(sigma) {
			t.Fatalf("state %d: transitions do not cover sigma", state)
		}
	}
}

func TestCompileIsDeterministicAcrossRuns(t *testing.T) {
	build := func() *DFA {
		kw := rx.Concat(rx.Symbol('i'), rx.Symbol('f'))
		id := rx.Plus(rx.SymbolRange('a', 'z'))
		seed := vector.New([]vector.Entry{{Name: "IF", Regex: kw}, {Name: "ID", Regex: id}})
		d, err := Compile(seed)
		if err != nil {
			t.Fatalf("compile failed: %v", err)
		}
		return d
	}
	d1, d2 := build(), build()
	if d1.NumStates != d2.NumStates {
		t.Fatalf("state count differs across identical builds: %d vs %d", d1.NumStates, d2.NumStates)
	}
	if len(d1.Transitions) != len(d2.Transitions) {
		t.Fatal("transition table size differs across identical builds")
	}
}

func TestMaxStatesExceededReturnsError(t *testing.T) {
	id := rx.Plus(rx.SymbolRange('a', 'z'))
	seed := vector.New([]vector.Entry{{Name: "ID", Regex: id}})
	b := NewBuilder(DefaultConfig().WithMaxStates(1))
	_, err := b.Build(seed)
	if err == nil {
		t.Fatal("expected state limit error")
	}
	be, ok := err.(*BuildError)
	if !ok || be.Kind != StateLimitExceeded {
		t.Fatalf("expected StateLimitExceeded, got %v", err)
	}
}

func TestValidateRejectsNonPositiveMaxStates(t *testing.T) {
	c := Config{MaxStates: 0}
	if err := c.Validate(); err == nil {
		t.Fatal("expected validation error for zero MaxStates")
	}
}
