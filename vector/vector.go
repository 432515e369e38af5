// Package vector lifts the rx regex algebra pointwise over a prioritized,
// named list of patterns: an ExpressionVector is what the DFA builder
// (package dfa) actually takes derivatives of, one joint derivative per
// input character instead of one per pattern.
package vector

import (
	"strings"

	"github.com/coregx/brzlex/charset"
	"github.com/coregx/brzlex/rx"
)

// Entry is one named pattern in a vector, in priority order (earlier
// entries outrank later ones when multiple patterns accept at a state).
type Entry struct {
	Name  string
	Regex rx.Regex
}

// ExpressionVector is an ordered list of (name, regex) pairs, treated
// pointwise. Order encodes pattern priority for tie-breaking longest-match
// acceptance (spec.md §3, §4.4).
type ExpressionVector struct {
	entries []Entry
}

// New builds an ExpressionVector from the given entries, preserving order.
func New(entries []Entry) ExpressionVector {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return ExpressionVector{entries: cp}
}

// Names returns the pattern names in declaration order.
func (v ExpressionVector) Names() []string {
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of entries in the vector.
func (v ExpressionVector) Len() int {
	return len(v.entries)
}

// Derivative returns the vector of componentwise derivatives with respect
// to c, preserving names and order.
func (v ExpressionVector) Derivative(c rune) ExpressionVector {
	out := make([]Entry, len(v.entries))
	for i, e := range v.entries {
		out[i] = Entry{Name: e.Name, Regex: e.Regex.Derivative(c)}
	}
	return ExpressionVector{entries: out}
}

// AcceptingNames returns, in declaration order, the names of every pattern
// that is nullable in this vector — the patterns that match at this state.
func (v ExpressionVector) AcceptingNames() []string {
	var names []string
	for _, e := range v.entries {
		if e.Regex.Nullable() {
			names = append(names, e.Name)
		}
	}
	return names
}

// IsAllNull reports whether every component regex is null, i.e. no future
// input can ever match any pattern from this vector. This identifies the
// DFA's error state (spec.md §4.4).
func (v ExpressionVector) IsAllNull() bool {
	for _, e := range v.entries {
		if !e.Regex.IsNull() {
			return false
		}
	}
	return true
}

// CharacterClasses returns the joint partition over every component regex:
// the product of the component partitions, a partition of Σ such that every
// block induces identical derivatives across the whole vector. Empty vectors have the trivial
// one-block partition {Σ}.
func (v ExpressionVector) CharacterClasses() []charset.CharSet {
	if len(v.entries) == 0 {
		return []charset.CharSet{rx.Alphabet()}
	}
	classes := v.entries[0].Regex.CharacterClasses()
	for _, e := range v.entries[1:] {
		classes = rx.ProductIntersections(classes, e.Regex.CharacterClasses())
	}
	return classes
}

// Key returns a canonical string uniquely identifying this vector's
// structural (name, regex) content. Two vectors with Key() equal represent
// the same DFA state; the DFA builder's state table is keyed on this,
// playing the role the NFA-state-set hash plays for a classic subset
// construction.
func (v ExpressionVector) Key() string {
	var b strings.Builder
	for i, e := range v.entries {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(e.Name)
		b.WriteByte('\x1e')
		b.WriteString(e.Regex.String())
	}
	return b.String()
}

// String renders the vector as a "Vector:" header line followed by one
// " name -> regex" line per entry.
func (v ExpressionVector) String() string {
	var b strings.Builder
	b.WriteString("Vector:\n")
	for _, e := range v.entries {
		b.WriteString(" ")
		b.WriteString(e.Name)
		b.WriteString(" -> ")
		b.WriteString(e.Regex.String())
		b.WriteString("\n")
	}
	return b.String()
}
