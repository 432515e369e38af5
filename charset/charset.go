// Package charset implements canonical sets of Unicode code points
// represented as sorted, glued ranges.
//
// A CharSet is the symbol-set primitive the regex algebra (package rx) and
// the DFA builder (package dfa) are built on: every Symbols node and every
// DFA transition label is a CharSet. Keeping the representation canonical
// (sorted, disjoint, with touching ranges glued) gives CharSet structural
// equality for free, which the derivative construction relies on to detect
// when two expression vectors are the same DFA state.
package charset

import (
	"fmt"
	"sort"
	"strings"
)

// CharRange is the inclusive closed interval [Begin, End] of Unicode scalar
// values. Begin must be <= End; the zero value is the single code point 0.
type CharRange struct {
	Begin rune
	End   rune
}

// Cardinality returns the number of code points in the range.
func (r CharRange) Cardinality() int {
	return int(r.End-r.Begin) + 1
}

// Contains reports whether c falls within the range.
func (r CharRange) Contains(c rune) bool {
	return c >= r.Begin && c <= r.End
}

// String renders the range the way the DOT writer labels edges: a single
// rune for singletons, "X-Y" otherwise. Newline, backslash and '-' are
// written as `\n`, `\\` and `\-`.
func (r CharRange) String() string {
	if r.Begin == r.End {
		return formatRune(r.Begin)
	}
	return fmt.Sprintf("%s-%s", formatRune(r.Begin), formatRune(r.End))
}

func formatRune(c rune) string {
	switch c {
	case '\n':
		return `\n`
	case '\\':
		return `\\`
	case '-':
		return `\-`
	default:
		return string(c)
	}
}

// CharSet is an ordered, canonical sequence of CharRanges: sorted by Begin,
// with no two ranges touching or overlapping (adjacent ranges are glued into
// one). This is the unique representation of a given set of code points, so
// two CharSets built from the same members compare equal under Equal (the
// backing slice means == is not defined on CharSet).
type CharSet struct {
	ranges []CharRange
}

// Empty returns the empty CharSet.
func Empty() CharSet {
	return CharSet{}
}

// Single returns the CharSet containing exactly c.
func Single(c rune) CharSet {
	return CharSet{ranges: []CharRange{{Begin: c, End: c}}}
}

// Range returns the CharSet containing the closed interval [begin, end].
// Panics if end < begin.
func Range(begin, end rune) CharSet {
	if end < begin {
		panic("charset: Range: end < begin")
	}
	return CharSet{ranges: []CharRange{{Begin: begin, End: end}}}
}

// FromRanges builds a canonical CharSet from arbitrary, possibly overlapping
// or unsorted, ranges.
func FromRanges(rs []CharRange) CharSet {
	if len(rs) == 0 {
		return CharSet{}
	}
	sorted := make([]CharRange, len(rs))
	copy(sorted, rs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Begin != sorted[j].Begin {
			return sorted[i].Begin < sorted[j].Begin
		}
		return sorted[i].End < sorted[j].End
	})

	glued := make([]CharRange, 0, len(sorted))
	cur := sorted[0]
	for _, next := range sorted[1:] {
		// Touching or overlapping ranges glue into one; "touching" means
		// next.Begin <= cur.End+1, so we must guard against overflow at
		// the top of the rune range.
		canGlue := next.Begin <= cur.End || (cur.End < maxRune && next.Begin == cur.End+1)
		if canGlue {
			if next.End > cur.End {
				cur.End = next.End
			}
			continue
		}
		glued = append(glued, cur)
		cur = next
	}
	glued = append(glued, cur)
	return CharSet{ranges: glued}
}

const maxRune = 0x10FFFF

// IsEmpty reports whether the set contains no code points.
func (s CharSet) IsEmpty() bool {
	return len(s.ranges) == 0
}

// Cardinality returns the total number of code points in the set.
func (s CharSet) Cardinality() int {
	n := 0
	for _, r := range s.ranges {
		n += r.Cardinality()
	}
	return n
}

// Contains reports whether c is a member of the set.
func (s CharSet) Contains(c rune) bool {
	// Ranges are sorted and disjoint: binary search for the first range
	// whose End >= c, then check it starts at or before c.
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End >= c })
	return i < len(s.ranges) && s.ranges[i].Begin <= c
}

// First returns the smallest code point in the set.
// Panics if the set is empty; callers must check IsEmpty first.
func (s CharSet) First() rune {
	if len(s.ranges) == 0 {
		panic("charset: First called on empty CharSet")
	}
	return s.ranges[0].Begin
}

// Ranges returns the canonical ranges backing the set, in ascending order.
// The returned slice must not be mutated.
func (s CharSet) Ranges() []CharRange {
	return s.ranges
}

// Equal reports whether two CharSets contain exactly the same code points.
// Because both sides are always canonical, this is a structural comparison.
func (s CharSet) Equal(other CharSet) bool {
	if len(s.ranges) != len(other.ranges) {
		return false
	}
	for i := range s.ranges {
		if s.ranges[i] != other.ranges[i] {
			return false
		}
	}
	return true
}

// Union returns the set of code points in either a or b.
func Union(a, b CharSet) CharSet {
	merged := make([]CharRange, 0, len(a.ranges)+len(b.ranges))
	merged = append(merged, a.ranges...)
	merged = append(merged, b.ranges...)
	return FromRanges(merged)
}

// Union returns the set of code points in either s or other.
func (s CharSet) Union(other CharSet) CharSet {
	return Union(s, other)
}

// Intersection returns the set of code points in both a and b.
//
// Two-pointer merge over the sorted, disjoint range lists: O(|a|+|b|).
func Intersection(a, b CharSet) CharSet {
	var out []CharRange
	i, j := 0, 0
	for i < len(a.ranges) && j < len(b.ranges) {
		ra, rb := a.ranges[i], b.ranges[j]
		begin := maxR(ra.Begin, rb.Begin)
		end := minR(ra.End, rb.End)
		if begin <= end {
			out = append(out, CharRange{Begin: begin, End: end})
		}
		if ra.End < rb.End {
			i++
		} else if rb.End < ra.End {
			j++
		} else {
			i++
			j++
		}
	}
	return FromRanges(out)
}

// Intersection returns the set of code points in both s and other.
func (s CharSet) Intersection(other CharSet) CharSet {
	return Intersection(s, other)
}

// Difference returns the set of code points in a but not in b.
//
// Two-pointer scan: for each range of a, subtract every overlapping range of
// b, emitting the surviving fragments.
func Difference(a, b CharSet) CharSet {
	var out []CharRange
	j := 0
	for i := 0; i < len(a.ranges); i++ {
		cur := a.ranges[i]
		for j < len(b.ranges) && b.ranges[j].End < cur.Begin {
			j++
		}
		k := j
		for k < len(b.ranges) && b.ranges[k].Begin <= cur.End {
			if b.ranges[k].Begin > cur.Begin {
				out = append(out, CharRange{Begin: cur.Begin, End: b.ranges[k].Begin - 1})
			}
			if b.ranges[k].End >= cur.End {
				cur.Begin = cur.End + 1 // becomes empty; loop below no-ops
				break
			}
			cur.Begin = b.ranges[k].End + 1
			k++
		}
		if cur.Begin <= cur.End {
			out = append(out, cur)
		}
	}
	return FromRanges(out)
}

// Difference returns the set of code points in s but not in other.
func (s CharSet) Difference(other CharSet) CharSet {
	return Difference(s, other)
}

// SymmetricDifference returns the set of code points in exactly one of a, b.
func SymmetricDifference(a, b CharSet) CharSet {
	return Union(Difference(a, b), Difference(b, a))
}

// SymmetricDifference returns the set of code points in exactly one of s, other.
func (s CharSet) SymmetricDifference(other CharSet) CharSet {
	return SymmetricDifference(s, other)
}

// Complement returns sigma minus s.
func (s CharSet) Complement(sigma CharSet) CharSet {
	return Difference(sigma, s)
}

// Iterate calls yield once for every code point in the set, in ascending
// order, stopping early if yield returns false. This is the idiomatic Go
// range-over-func replacement for a restartable external iterator.
func (s CharSet) Iterate(yield func(rune) bool) {
	for _, r := range s.ranges {
		for c := r.Begin; c <= r.End; c++ {
			if !yield(c) {
				return
			}
			if c == maxRune {
				break
			}
		}
	}
}

// String renders the set as concatenated range labels, e.g. "A-Ca-c",
// matching the Display form used by the DOT writer.
func (s CharSet) String() string {
	var b strings.Builder
	for _, r := range s.ranges {
		b.WriteString(r.String())
	}
	return b.String()
}

func maxR(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}

func minR(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}
