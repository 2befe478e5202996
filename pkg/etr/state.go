package etr

import (
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// State is a set of atoms. Atoms keep the order in which they were first
// added; adding an atom identical to one already present is a no-op.
type State struct {
	atoms []*Atom
	keys  *set.Set[string]
}

// NewState creates a state from atoms, dropping duplicates and nil atoms.
func NewState(atoms ...*Atom) *State {
	s := &State{keys: set.New[string](len(atoms))}
	for _, a := range atoms {
		if a == nil {
			continue
		}
		k := a.Key()
		if s.keys.Contains(k) {
			continue
		}
		s.keys.Insert(k)
		s.atoms = append(s.atoms, a)
	}
	return s
}

// Len returns the number of atoms.
func (s *State) Len() int { return len(s.atoms) }

// IsEmpty reports whether the state has no atoms.
func (s *State) IsEmpty() bool { return len(s.atoms) == 0 }

// Atoms returns the atoms in insertion order. The slice is a copy.
func (s *State) Atoms() []*Atom {
	return append([]*Atom(nil), s.atoms...)
}

// Contains reports whether an atom identical to a is in the state.
func (s *State) Contains(a *Atom) bool {
	if a == nil {
		return false
	}
	return s.keys.Contains(a.Key())
}

// Equal reports whether both states hold the same atoms, ignoring order.
func (s *State) Equal(other *State) bool {
	if other == nil || len(s.atoms) != len(other.atoms) {
		return false
	}
	for _, a := range other.atoms {
		if !s.keys.Contains(a.Key()) {
			return false
		}
	}
	return true
}

// Key returns an order-independent canonical encoding of the state.
func (s *State) Key() string {
	keys := s.keys.Slice()
	slices.Sort(keys)
	return "{" + strings.Join(keys, ";") + "}"
}

// String renders the atoms concatenated, for example P(a)Q(b). The empty
// state renders as 0.
func (s *State) String() string {
	if len(s.atoms) == 0 {
		return "0"
	}
	var b strings.Builder
	for _, a := range s.atoms {
		b.WriteString(a.String())
	}
	return b.String()
}

// SetOfStates is a set of alternative states. Verum is the set holding
// only the empty state; falsum is the set holding no state at all. Both
// are degenerate: they contain no atom.
type SetOfStates struct {
	states []*State
	keys   *set.Set[string]
}

// NewSetOfStates creates a set of states, dropping duplicates and nil
// states. States keep their first-insertion order.
func NewSetOfStates(states ...*State) *SetOfStates {
	sos := &SetOfStates{keys: set.New[string](len(states))}
	for _, st := range states {
		if st == nil {
			continue
		}
		k := st.Key()
		if sos.keys.Contains(k) {
			continue
		}
		sos.keys.Insert(k)
		sos.states = append(sos.states, st)
	}
	return sos
}

// Verum returns the set holding a single empty state.
func Verum() *SetOfStates {
	return NewSetOfStates(NewState())
}

// Falsum returns the empty set of states.
func Falsum() *SetOfStates {
	return NewSetOfStates()
}

// IsVerum reports whether the set holds exactly the empty state.
func (s *SetOfStates) IsVerum() bool {
	return len(s.states) == 1 && s.states[0].IsEmpty()
}

// IsFalsum reports whether the set holds no state.
func (s *SetOfStates) IsFalsum() bool {
	return len(s.states) == 0
}

// Degenerate reports whether the set is verum or falsum.
func (s *SetOfStates) Degenerate() bool {
	return s.IsVerum() || s.IsFalsum()
}

// Len returns the number of states.
func (s *SetOfStates) Len() int { return len(s.states) }

// States returns the states in insertion order. The slice is a copy.
func (s *SetOfStates) States() []*State {
	return append([]*State(nil), s.states...)
}

// Atoms returns every atom of every state, states first, in stored order.
func (s *SetOfStates) Atoms() []*Atom {
	var out []*Atom
	for _, st := range s.states {
		out = append(out, st.atoms...)
	}
	return out
}

// Contains reports whether a state equal to st is in the set.
func (s *SetOfStates) Contains(st *State) bool {
	if st == nil {
		return false
	}
	return s.keys.Contains(st.Key())
}

// Equal reports whether both sets hold the same states, ignoring order.
func (s *SetOfStates) Equal(other *SetOfStates) bool {
	if other == nil || len(s.states) != len(other.states) {
		return false
	}
	for _, st := range other.states {
		if !s.keys.Contains(st.Key()) {
			return false
		}
	}
	return true
}

// String renders the set as {P(a)Q(b),R(c)}. Verum renders as {0} and
// falsum as {}.
func (s *SetOfStates) String() string {
	parts := make([]string, len(s.states))
	for i, st := range s.states {
		parts[i] = st.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// CountEmphasis returns the number of emphasis markers anywhere in s.
func CountEmphasis(s *SetOfStates) int {
	n := 0
	for _, st := range s.states {
		for _, a := range st.atoms {
			n += a.emphasisCount()
		}
	}
	return n
}
