// Package rx implements the regular-expression algebra the DFA builder
// (package dfa) compiles: a tagged AST with smart constructors that enforce
// the algebraic normal forms Brzozowski derivative construction needs to
// terminate, plus nullability, derivative, and character-class extraction.
//
// Regex values are immutable once constructed. Two Regex values built
// through the same sequence of smart-constructor calls compare structurally
// equal, which is what lets the DFA builder (package dfa) use a map keyed on
// their String forms (via vector.Key) to detect when a derivative revisits
// an already-seen state.
package rx

import (
	"fmt"

	"github.com/coregx/brzlex/charset"
)

// op tags the variant of a Regex node.
type op uint8

const (
	opEpsilon op = iota
	opSymbols
	opStar
	opAlt
	opConcat
	opAnd
	opNot
)

// Regex is an immutable regular-expression AST node. The zero value is not
// meaningful; construct values with Epsilon, Symbol, Symbols, SymbolRange,
// Null, Sigma, or by combining existing values with Star, Alt, Concat, And,
// Not, and Plus.
type Regex struct {
	kind op
	set  charset.CharSet // valid for opSymbols
	l, r *Regex          // valid for opAlt, opConcat, opAnd; l valid for opStar, opNot
}

// sigmaSet is the alphabet Σ this package normalizes complements against.
// It is a package-level variable holding the default alphabet until
// SetAlphabet replaces it; the dfa package reads it through Alphabet and
// has no alphabet setting of its own.
var sigmaSet = defaultAlphabet()

func defaultAlphabet() charset.CharSet {
	return charset.Range(0x20, 0x7E).Union(charset.Single('\n'))
}

// SetAlphabet overrides the alphabet Σ used to normalize Not and to seed
// Sigma(). The default is printable ASCII plus newline (spec.md §3). This
// must be called, if at all, before any Regex values involving Not or Sigma
// are constructed; it is a package configuration knob, not a per-call
// parameter.
func SetAlphabet(sigma charset.CharSet) {
	sigmaSet = sigma
}

// Alphabet returns the alphabet Σ currently configured.
func Alphabet() charset.CharSet {
	return sigmaSet
}

// Epsilon returns the regex matching only the empty string.
func Epsilon() Regex {
	return Regex{kind: opEpsilon}
}

// Null returns the regex matching no strings at all.
func Null() Regex {
	return Regex{kind: opSymbols, set: charset.Empty()}
}

// Symbol returns the regex matching exactly the single character c.
func Symbol(c rune) Regex {
	return Regex{kind: opSymbols, set: charset.Single(c)}
}

// SymbolRange returns the regex matching any single character in [begin, end].
func SymbolRange(begin, end rune) Regex {
	return Regex{kind: opSymbols, set: charset.Range(begin, end)}
}

// Symbols returns the regex matching any single character in s.
func Symbols(s charset.CharSet) Regex {
	return Regex{kind: opSymbols, set: s}
}

// Sigma returns the regex matching any single character of the alphabet.
func Sigma() Regex {
	return Regex{kind: opSymbols, set: sigmaSet}
}

// IsEpsilon reports whether r is exactly Epsilon.
func (r Regex) IsEpsilon() bool {
	return r.kind == opEpsilon
}

// IsNull reports whether r matches no strings.
func (r Regex) IsNull() bool {
	return r.kind == opSymbols && r.set.IsEmpty()
}

// Star applies the Kleene closure operator, collapsing Star(Epsilon) to
// Epsilon per the smart-constructor normal form.
func Star(r Regex) Regex {
	if r.IsEpsilon() {
		return r
	}
	cp := r
	return Regex{kind: opStar, l: &cp}
}

// Plus applies the one-or-more operator: Concat(r, Star(r)).
func Plus(r Regex) Regex {
	return Concat(r, Star(r))
}

// Not returns the complement of r with respect to the configured alphabet,
// collapsing Not(Not(r)) to r and Not(Symbols(S)) to Symbols(Σ∖S).
func Not(r Regex) Regex {
	switch {
	case r.kind == opNot:
		return *r.l
	case r.kind == opSymbols:
		return Symbols(sigmaSet.Difference(r.set))
	default:
		cp := r
		return Regex{kind: opNot, l: &cp}
	}
}

// Alt returns the union of l and r, collapsing null arms, merging two
// Symbols nodes into one, and dropping r when it already equals l or one
// arm of an Alt l.
func Alt(l, r Regex) Regex {
	switch {
	case l.IsNull():
		return r
	case r.IsNull():
		return l
	case l.kind == opSymbols && r.kind == opSymbols:
		return Symbols(l.set.Union(r.set))
	case l.Equal(r):
		return l
	case l.kind == opAlt && (l.l.Equal(r) || l.r.Equal(r)):
		return l
	default:
		lc, rc := l, r
		return Regex{kind: opAlt, l: &lc, r: &rc}
	}
}

// And returns the intersection of l and r, collapsing to null if either arm
// is null.
func And(l, r Regex) Regex {
	switch {
	case l.IsNull():
		return l
	case r.IsNull():
		return r
	default:
		lc, rc := l, r
		return Regex{kind: opAnd, l: &lc, r: &rc}
	}
}

// Concat returns the concatenation of l and r, collapsing null arms and
// dropping Epsilon arms.
func Concat(l, r Regex) Regex {
	switch {
	case l.IsNull():
		return l
	case r.IsNull():
		return r
	case l.IsEpsilon():
		return r
	case r.IsEpsilon():
		return l
	default:
		lc, rc := l, r
		return Regex{kind: opConcat, l: &lc, r: &rc}
	}
}

// Nullable reports whether r matches the empty string.
func (r Regex) Nullable() bool {
	switch r.kind {
	case opEpsilon, opStar:
		return true
	case opSymbols:
		return false
	case opAlt:
		return r.l.Nullable() || r.r.Nullable()
	case opConcat, opAnd:
		return r.l.Nullable() && r.r.Nullable()
	case opNot:
		return !r.l.Nullable()
	default:
		panic(fmt.Sprintf("rx: unknown op %d", r.kind))
	}
}

// Derivative returns ∂_c r: the regex matching every w such that c·w ∈ L(r).
func (r Regex) Derivative(c rune) Regex {
	switch r.kind {
	case opEpsilon:
		return Null()
	case opSymbols:
		if r.set.Contains(c) {
			return Epsilon()
		}
		return Null()
	case opAlt:
		return Alt(r.l.Derivative(c), r.r.Derivative(c))
	case opAnd:
		return And(r.l.Derivative(c), r.r.Derivative(c))
	case opNot:
		return Not(r.l.Derivative(c))
	case opConcat:
		if r.l.Nullable() {
			return Alt(Concat(r.l.Derivative(c), *r.r), r.r.Derivative(c))
		}
		return Concat(r.l.Derivative(c), *r.r)
	case opStar:
		return Concat(r.l.Derivative(c), Star(*r.l))
	default:
		panic(fmt.Sprintf("rx: unknown op %d", r.kind))
	}
}

// CharacterClasses returns a partition of Σ such that ∂_c r is structurally
// identical for every c within the same block. The DFA builder (package
// dfa) explores exactly one representative character per block per state,
// which is what bounds the otherwise per-character derivative to a finite
// algorithm.
func (r Regex) CharacterClasses() []charset.CharSet {
	switch r.kind {
	case opEpsilon:
		return []charset.CharSet{sigmaSet}
	case opSymbols:
		if r.set.IsEmpty() {
			return []charset.CharSet{sigmaSet}
		}
		return []charset.CharSet{r.set, sigmaSet.Difference(r.set)}
	case opStar, opNot:
		return r.l.CharacterClasses()
	case opAlt, opAnd:
		return ProductIntersections(r.l.CharacterClasses(), r.r.CharacterClasses())
	case opConcat:
		if r.l.Nullable() {
			return ProductIntersections(r.l.CharacterClasses(), r.r.CharacterClasses())
		}
		return r.l.CharacterClasses()
	default:
		panic(fmt.Sprintf("rx: unknown op %d", r.kind))
	}
}

// ProductIntersections computes the cartesian intersection of two
// partitions of Σ, dropping empty results. The result is again a partition
// of Σ: ⋃ of the output covers exactly what ⋃a and ⋃b both covered, which
// is all of Σ when a and b are themselves partitions of Σ.
func ProductIntersections(a, b []charset.CharSet) []charset.CharSet {
	out := make([]charset.CharSet, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			i := x.Intersection(y)
			if !i.IsEmpty() {
				out = append(out, i)
			}
		}
	}
	return out
}

// Equal reports whether r and other are structurally identical, i.e.
// represent the same normal-form AST. Because the smart constructors keep
// every value in normal form, structural equality here coincides with the
// identity the DFA builder's state table keys on.
func (r Regex) Equal(other Regex) bool {
	if r.kind != other.kind {
		return false
	}
	switch r.kind {
	case opEpsilon:
		return true
	case opSymbols:
		return r.set.Equal(other.set)
	case opStar, opNot:
		return r.l.Equal(*other.l)
	case opAlt, opConcat, opAnd:
		return r.l.Equal(*other.l) && r.r.Equal(*other.r)
	default:
		panic(fmt.Sprintf("rx: unknown op %d", r.kind))
	}
}

// String renders r using the same notation as the Rust original this system
// was distilled from: "eps", "[<charset>]", "(l|r)", "(l.r)", "(l&r)", "r*",
// "!(r)".
func (r Regex) String() string {
	switch r.kind {
	case opEpsilon:
		return "eps"
	case opSymbols:
		return fmt.Sprintf("[%s]", r.set.String())
	case opAlt:
		return fmt.Sprintf("(%s|%s)", r.l.String(), r.r.String())
	case opConcat:
		return fmt.Sprintf("(%s.%s)", r.l.String(), r.r.String())
	case opAnd:
		return fmt.Sprintf("(%s&%s)", r.l.String(), r.r.String())
	case opStar:
		return fmt.Sprintf("%s*", r.l.String())
	case opNot:
		return fmt.Sprintf("!(%s)", r.l.String())
	default:
		panic(fmt.Sprintf("rx: unknown op %d", r.kind))
	}
}
