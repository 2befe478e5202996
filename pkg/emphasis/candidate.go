package emphasis

import (
	"fmt"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

// Tier is the type-priority rank of a term. Higher tiers win regardless of
// how often a term occurs.
type Tier int

const (
	// TierOther ranks non-constant functional terms.
	TierOther Tier = iota
	// TierConstant ranks functional terms of arity 0.
	TierConstant
	// TierExistential ranks existential arbitrary objects.
	TierExistential
	// TierUniversal ranks universal arbitrary objects.
	TierUniversal
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierUniversal:
		return "universal"
	case TierExistential:
		return "existential"
	case TierConstant:
		return "constant"
	default:
		return "other"
	}
}

// TierOf returns the type-priority tier of t.
func TierOf(t etr.Term) Tier {
	switch x := t.(type) {
	case *etr.ArbitraryObject:
		if x.IsUniversal() {
			return TierUniversal
		}
		return TierExistential
	case *etr.FunctionalTerm:
		if x.IsConst() {
			return TierConstant
		}
		return TierOther
	default:
		return TierOther
	}
}

// outranks reports whether a strictly beats b on type priority.
func outranks(a, b etr.Term) bool {
	return TierOf(a) > TierOf(b)
}

// AtomCandidate is the representative term of a single atom.
type AtomCandidate struct {
	// Term is the representative term.
	Term etr.Term
	// Position is the index of Term's first occurrence in the atom.
	Position int
	// Occurrences counts how often Term appears in the atom.
	Occurrences int
}

// Identical reports whether both candidates carry identical terms. Position
// and count do not take part in identity.
func (c AtomCandidate) Identical(other AtomCandidate) bool {
	return c.Term.Identical(other.Term)
}

// String returns a debugging representation.
func (c AtomCandidate) String() string {
	return fmt.Sprintf("%s@%d×%d", c.Term, c.Position, c.Occurrences)
}

// ExtractAtomCandidate scans the atom's terms left to right and returns the
// representative one. A term identical to the current representative adds
// to its count; a term of strictly higher tier replaces it; anything else
// leaves it in place, so the first term seen at the winning tier is kept.
//
// An atom without terms, or with an emphasis marker at any position, is an
// ErrInvariantViolation.
func ExtractAtomCandidate(atom *etr.Atom) (AtomCandidate, error) {
	if atom == nil {
		return AtomCandidate{}, invariantf("nil atom")
	}
	if atom.Len() == 0 {
		return AtomCandidate{}, invariantf("atom %s has no terms", atom)
	}

	var current AtomCandidate
	for i, t := range atom.Terms() {
		if etr.IsEmphasis(t) {
			return AtomCandidate{}, invariantf("atom %s already carries emphasis at position %d", atom, i)
		}
		switch {
		case i == 0:
			current = AtomCandidate{Term: t, Position: 0, Occurrences: 1}
		case current.Term.Identical(t):
			current.Occurrences++
		case outranks(t, current.Term):
			current = AtomCandidate{Term: t, Position: i, Occurrences: 1}
		}
	}
	return current, nil
}
