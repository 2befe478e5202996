package emphasis

import (
	"fmt"
	"testing"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

// scriptedSource replays fixed draws and records every requested bound.
type scriptedSource struct {
	draws  []int
	bounds []int
}

func (s *scriptedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	if len(s.draws) == 0 {
		return 0
	}
	d := s.draws[0]
	s.draws = s.draws[1:]
	return d % n
}

// forbiddenSource fails the test when any randomness is consumed.
type forbiddenSource struct{ t *testing.T }

func (s forbiddenSource) IntN(n int) int {
	s.t.Helper()
	s.t.Fatalf("unexpected random draw over [0,%d)", n)
	return 0
}

func sos(states ...*etr.State) *etr.SetOfStates { return etr.NewSetOfStates(states...) }

func state(atoms ...*etr.Atom) *etr.State { return etr.NewState(atoms...) }

func atom(name string, terms ...etr.Term) *etr.Atom { return etr.MustAtom(name, terms...) }

func emph(t etr.Term) *etr.Emphasis {
	e, err := etr.NewEmphasis(t)
	if err != nil {
		panic(fmt.Sprintf("emphasis of %s: %v", t, err))
	}
	return e
}

func renderAtoms(s *etr.SetOfStates) []string {
	var out []string
	for _, a := range s.Atoms() {
		out = append(out, a.String())
	}
	return out
}
