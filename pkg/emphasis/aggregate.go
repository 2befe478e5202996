package emphasis

import (
	"fmt"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

// Candidate is a focus candidate aggregated over a whole set of states.
type Candidate struct {
	// Term is the candidate term.
	Term etr.Term
	// Tier is the type-priority tier of Term.
	Tier Tier
	// Occurrences sums the local counts of every atom whose representative
	// is identical to Term.
	Occurrences int
}

// String returns a debugging representation.
func (c Candidate) String() string {
	return fmt.Sprintf("%s[%s]×%d", c.Term, c.Tier, c.Occurrences)
}

// Candidates extracts the representative of every atom in sos and merges
// identical representatives, summing their counts. Candidates are returned
// in discovery order: states in stored order, then atoms in stored order.
//
// A collection without atoms is an ErrInvariantViolation.
func Candidates(sos *etr.SetOfStates) ([]Candidate, error) {
	if sos == nil {
		return nil, invariantf("nil set of states")
	}

	var out []Candidate
	seen := 0
	for _, st := range sos.States() {
		for _, atom := range st.Atoms() {
			seen++
			ac, err := ExtractAtomCandidate(atom)
			if err != nil {
				return nil, err
			}
			merged := false
			for i := range out {
				if out[i].Term.Identical(ac.Term) {
					out[i].Occurrences += ac.Occurrences
					merged = true
					break
				}
			}
			if !merged {
				out = append(out, Candidate{
					Term:        ac.Term,
					Tier:        TierOf(ac.Term),
					Occurrences: ac.Occurrences,
				})
			}
		}
	}
	if seen == 0 {
		return nil, invariantf("set of states %s contains no atoms", sos)
	}
	return out, nil
}
