package emphasis

import (
	"errors"
	"fmt"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

// Selection describes the occurrence that was rewritten.
type Selection struct {
	// Index is the drawn occurrence, counted in traversal order from zero.
	Index int
	// Total is the number of atoms whose representative matched the focus.
	Total int
	// Before and After are the atom as found and as rewritten.
	Before *etr.Atom
	After  *etr.Atom
}

// countOccurrences counts the atoms of sos whose representative term is
// identical to focus.
func countOccurrences(sos *etr.SetOfStates, focus etr.Term) (int, error) {
	n := 0
	for _, atom := range sos.Atoms() {
		ac, err := ExtractAtomCandidate(atom)
		if err != nil {
			return 0, err
		}
		if ac.Term.Identical(focus) {
			n++
		}
	}
	return n, nil
}

// Rewrite emphasizes one uniformly drawn occurrence of focus in sos and
// returns the resulting set of states. An occurrence is an atom whose
// representative term is identical to focus; the term at that atom's
// representative position is wrapped in an emphasis marker.
//
// States that do not hold the rewritten atom are shared with sos; sos
// itself is not modified.
func Rewrite(sos *etr.SetOfStates, focus etr.Term, src Source) (*etr.SetOfStates, Selection, error) {
	if sos == nil || focus == nil {
		return nil, Selection{}, invariantf("nil collection or focus")
	}
	total, err := countOccurrences(sos, focus)
	if err != nil {
		return nil, Selection{}, err
	}
	if total == 0 {
		return nil, Selection{}, fmt.Errorf("%w: %s in %s", ErrEmptyOccurrenceSet, focus, sos)
	}

	sel := Selection{Index: src.IntN(total), Total: total}
	encountered := 0
	states := sos.States()
	for si, st := range states {
		atoms := st.Atoms()
		for ai, atom := range atoms {
			ac, err := ExtractAtomCandidate(atom)
			if err != nil {
				return nil, Selection{}, err
			}
			if !ac.Term.Identical(focus) {
				continue
			}
			if encountered != sel.Index {
				encountered++
				continue
			}

			marked, err := emphasizeAt(atom, ac.Position)
			if err != nil {
				return nil, Selection{}, err
			}
			sel.Before, sel.After = atom, marked
			atoms[ai] = marked
			states[si] = etr.NewState(atoms...)
			return etr.NewSetOfStates(states...), sel, nil
		}
	}
	// countOccurrences and the scan above walk the same order.
	return nil, Selection{}, fmt.Errorf("%w: occurrence %d of %d not reached", ErrEmptyOccurrenceSet, sel.Index, total)
}

// emphasizeAt returns a copy of atom whose term at pos is wrapped in an
// emphasis marker.
func emphasizeAt(atom *etr.Atom, pos int) (*etr.Atom, error) {
	marked, err := etr.NewEmphasis(atom.Term(pos))
	if err != nil {
		if errors.Is(err, etr.ErrDoubleEmphasis) {
			return nil, fmt.Errorf("%w: %s position %d: %w", ErrInvariantViolation, atom, pos, err)
		}
		return nil, err
	}
	return atom.WithTerm(pos, marked)
}
