package emphasis

// pick decides between two candidates: the higher tier wins outright, then
// the higher occurrence count, and a full tie is settled by a fair coin.
func pick(a, b Candidate, src Source) Candidate {
	switch {
	case a.Tier > b.Tier:
		return a
	case b.Tier > a.Tier:
		return b
	case a.Occurrences > b.Occurrences:
		return a
	case b.Occurrences > a.Occurrences:
		return b
	case coin(src):
		return a
	default:
		return b
	}
}

// Reduce folds candidates left to right with the pick rule and returns the
// winner.
//
// The result is not deterministic when candidates tie on both tier and
// count: every tie consumes one draw from src. Equally weighted foci are
// meant to be chosen fairly, so there is no secondary ordering key.
func Reduce(candidates []Candidate, src Source) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, invariantf("no candidates to reduce")
	}
	winner := candidates[0]
	for _, c := range candidates[1:] {
		winner = pick(winner, c, src)
	}
	return winner, nil
}
