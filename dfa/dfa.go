// Package dfa builds a deterministic finite automaton from a prioritized
// expression vector using Brzozowski's derivative construction: states are
// the distinct expression vectors reachable from the seed by repeated
// derivative, discovered by worklist, with one outgoing transition per
// character-class block.
package dfa

import (
	"fmt"

	"github.com/coregx/brzlex/charset"
	"github.com/coregx/brzlex/vector"
)

// StateID identifies a state in a built DFA. States are numbered in
// discovery order starting at 0; the seed vector is always state 0.
type StateID int

// Transition is one outgoing edge: inputs in Class step to Target.
type Transition struct {
	Class  charset.CharSet
	Target StateID
}

// DFA is the immutable result of compiling an ExpressionVector.
//
// For every state s, the CharSets across Transitions[s] are pairwise
// disjoint and their union is Σ: every input character has exactly one
// outgoing edge from every state (spec.md §4.4).
type DFA struct {
	// TokenTypes holds the pattern names from the seed vector, in
	// declaration order.
	TokenTypes []string

	// Transitions maps each state to its outgoing edges.
	Transitions map[StateID][]Transition

	// Accepting maps a state to the ordered list of pattern names that
	// match there; the first entry is the highest-priority match
	// (spec.md §4.4's acceptance priority).
	Accepting map[StateID][]string

	// ErrorState is the unique state whose expression vector is all-null,
	// if one is reachable. HasErrorState is false when no reachable state
	// is all-null (e.g. a seed whose combined language is Σ*); spec.md
	// §4.4 leaves this as an explicit open question and requires an
	// implementation to document its choice rather than silently unwrap.
	// This implementation exposes the state as optional instead of
	// synthesizing an unreachable sink: a synthesized sink would be dead
	// code in every transition table that reaches it, and every consumer
	// here (scanner, cgen) already has to handle "no error state" as a
	// distinct, meaningful case (it means the scanner never returns a
	// *ScanError).
	ErrorState    StateID
	HasErrorState bool

	// NumStates is the number of states discovered during construction.
	NumStates int
}

// Config configures a Builder.
type Config struct {
	// MaxStates bounds the number of states the worklist may discover
	// before Build gives up and returns an error. This guards against
	// runaway construction if the algebraic normal forms in package rx
	// are ever weakened (spec.md §4.4's non-termination failure mode).
	//
	// Default: 100,000.
	MaxStates int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxStates: 100_000}
}

// WithMaxStates returns a copy of c with MaxStates set.
func (c Config) WithMaxStates(n int) Config {
	c.MaxStates = n
	return c
}

// Validate reports whether c is well-formed.
func (c *Config) Validate() error {
	if c.MaxStates <= 0 {
		return &BuildError{Kind: InvalidConfig, Message: "MaxStates must be > 0"}
	}
	return nil
}

// ErrorKind classifies a BuildError.
type ErrorKind uint8

const (
	// InvalidConfig indicates the Config passed to Build was invalid.
	InvalidConfig ErrorKind = iota

	// StateLimitExceeded indicates the worklist discovered more than
	// Config.MaxStates distinct expression vectors without converging.
	StateLimitExceeded

	// PartitionInvariant indicates a character-class partition computed
	// during construction did not cover Σ, an internal-consistency
	// failure that should be unreachable (spec.md §7).
	PartitionInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case PartitionInvariant:
		return "PartitionInvariant"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// BuildError represents a failure compiling an ExpressionVector into a DFA.
type BuildError struct {
	Kind    ErrorKind
	Message string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("dfa: %s: %s", e.Kind, e.Message)
}

// Builder constructs a DFA from a seed ExpressionVector.
type Builder struct {
	config Config
}

// NewBuilder creates a Builder with the given configuration.
func NewBuilder(config Config) *Builder {
	return &Builder{config: config}
}

// worklistItem pairs a discovered state with the vector it represents.
type worklistItem struct {
	id  StateID
	vec vector.ExpressionVector
}

// Build compiles seed into a DFA.
//
// Each DFA state is the equivalence class of an ExpressionVector under
// structural equality; a vector.Key()-keyed table enforces uniqueness
// (spec.md §4.4). The worklist processes states depth-first via a stack,
// mirroring the Rust original's implementation.
func (b *Builder) Build(seed vector.ExpressionVector) (*DFA, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	states := map[string]StateID{seed.Key(): 0}
	vectors := []vector.ExpressionVector{seed}
	transitions := make(map[StateID][]Transition)
	accepting := make(map[StateID][]string)
	hasError := false
	var errorState StateID

	stack := []worklistItem{{id: 0, vec: seed}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if names := item.vec.AcceptingNames(); len(names) > 0 {
			accepting[item.id] = names
		}

		if item.vec.IsAllNull() {
			hasError = true
			errorState = item.id
		}

		classes := item.vec.CharacterClasses()
		stateTransitions := make([]Transition, 0, len(classes))

		for _, class := range classes {
			if class.IsEmpty() {
				continue
			}
			c := class.First()
			next := item.vec.Derivative(c)
			key := next.Key()

			id, seen := states[key]
			if !seen {
				id = StateID(len(vectors))
				states[key] = id
				vectors = append(vectors, next)
				if len(vectors) > b.config.MaxStates {
					return nil, &BuildError{
						Kind:    StateLimitExceeded,
						Message: fmt.Sprintf("exceeded %d states", b.config.MaxStates),
					}
				}
				stack = append(stack, worklistItem{id: id, vec: next})
			}

			stateTransitions = append(stateTransitions, Transition{Class: class, Target: id})
		}

		transitions[item.id] = stateTransitions
	}

	return &DFA{
		TokenTypes:    seed.Names(),
		Transitions:   transitions,
		Accepting:     accepting,
		ErrorState:    errorState,
		HasErrorState: hasError,
		NumStates:     len(vectors),
	}, nil
}

// Compile is a convenience wrapper around Builder.Build with default
// configuration, mirroring the Rust original's free-function `compile`.
func Compile(seed vector.ExpressionVector) (*DFA, error) {
	return NewBuilder(DefaultConfig()).Build(seed)
}
