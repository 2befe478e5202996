// Package emphasis chooses the term occurrence that becomes the focus of
// the next reasoning step and marks it with an emphasis.
//
// Given a stage and a supposition, the supposition is the target unless it
// is degenerate (verum or falsum), in which case the stage is. Within the
// target the pipeline is:
//   - Extract: each atom nominates one representative term
//   - Aggregate: identical representatives are merged and counted
//   - Reduce: the candidates are folded into a single focus term
//   - Rewrite: one occurrence of the focus, drawn uniformly, is emphasized
//
// Representatives and candidates are ranked by type first (universal
// objects, then existential objects, then constants, then everything
// else) and by occurrence count second. Remaining ties are broken with the
// injected Source, so results are reproducible only for a fixed seed.
//
// Inputs are never modified. All values in package etr are immutable and
// the returned collections share every untouched state with the inputs.
package emphasis

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

// Target names the collection an application rewrote.
type Target int

const (
	// TargetNone means both collections were degenerate and nothing changed.
	TargetNone Target = iota
	// TargetSupposition means the supposition was rewritten.
	TargetSupposition
	// TargetStage means the stage was rewritten.
	TargetStage
)

// String returns the target name.
func (t Target) String() string {
	switch t {
	case TargetSupposition:
		return "supposition"
	case TargetStage:
		return "stage"
	default:
		return "none"
	}
}

// Outcome is the full result of one application.
type Outcome struct {
	Stage       *etr.SetOfStates
	Supposition *etr.SetOfStates
	Target      Target
	// Candidates lists the aggregated candidates of the target in
	// discovery order. Empty when Target is TargetNone.
	Candidates []Candidate
	// Focus is the winning candidate.
	Focus     Candidate
	Selection Selection
}

// Option configures an Emphasizer.
type Option func(*Emphasizer)

// WithSource sets the randomness source.
func WithSource(src Source) Option {
	return func(e *Emphasizer) { e.src = src }
}

// WithSeed uses a Source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Emphasizer) { e.src = NewSource(seed) }
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l *zap.Logger) Option {
	return func(e *Emphasizer) { e.logger = l }
}

// Emphasizer applies emphasis with a fixed randomness source and logger.
// It is safe for concurrent use when its Source is; sources returned by
// NewSource are.
type Emphasizer struct {
	src    Source
	logger *zap.Logger
}

// New creates an Emphasizer. Without WithSource or WithSeed it draws from
// a source seeded at construction time.
func New(opts ...Option) *Emphasizer {
	e := &Emphasizer{}
	for _, opt := range opts {
		opt(e)
	}
	if e.src == nil {
		e.src = NewSource(rand.Uint64())
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Apply emphasizes one term occurrence of the supposition, or of the stage
// when the supposition is degenerate, and returns the new (stage,
// supposition) pair. When both are degenerate they are returned unchanged.
func Apply(stage, supposition *etr.SetOfStates, opts ...Option) (*etr.SetOfStates, *etr.SetOfStates, error) {
	return New(opts...).Apply(stage, supposition)
}

// Apply is the method form of the package-level Apply.
func (e *Emphasizer) Apply(stage, supposition *etr.SetOfStates) (*etr.SetOfStates, *etr.SetOfStates, error) {
	out, err := e.Run(stage, supposition)
	if err != nil {
		return nil, nil, err
	}
	return out.Stage, out.Supposition, nil
}

// Run is like Apply but also reports which collection was rewritten, the
// ranked candidates and the drawn occurrence.
func (e *Emphasizer) Run(stage, supposition *etr.SetOfStates) (Outcome, error) {
	if stage == nil || supposition == nil {
		return Outcome{}, invariantf("nil stage or supposition")
	}

	out := Outcome{Stage: stage, Supposition: supposition}
	var target *etr.SetOfStates
	switch {
	case !supposition.Degenerate():
		out.Target, target = TargetSupposition, supposition
	case !stage.Degenerate():
		out.Target, target = TargetStage, stage
	default:
		e.logger.Debug("both collections degenerate, nothing to emphasize",
			zap.Stringer("stage", stage),
			zap.Stringer("supposition", supposition))
		return out, nil
	}

	rewritten, err := e.emphasize(target, &out)
	if err != nil {
		return Outcome{}, err
	}
	if out.Target == TargetSupposition {
		out.Supposition = rewritten
	} else {
		out.Stage = rewritten
	}
	return out, nil
}

// Emphasize runs the extract, aggregate, reduce and rewrite steps on a
// single non-degenerate set of states.
func (e *Emphasizer) Emphasize(sos *etr.SetOfStates) (*etr.SetOfStates, error) {
	var out Outcome
	return e.emphasize(sos, &out)
}

func (e *Emphasizer) emphasize(sos *etr.SetOfStates, out *Outcome) (*etr.SetOfStates, error) {
	candidates, err := Candidates(sos)
	if err != nil {
		return nil, err
	}
	focus, err := Reduce(candidates, e.src)
	if err != nil {
		return nil, err
	}
	rewritten, sel, err := Rewrite(sos, focus.Term, e.src)
	if err != nil {
		return nil, err
	}

	out.Candidates, out.Focus, out.Selection = candidates, focus, sel
	e.logger.Debug("emphasis applied",
		zap.Stringer("target", out.Target),
		zap.Int("candidates", len(candidates)),
		zap.Stringer("focus", focus),
		zap.Int("occurrence", sel.Index),
		zap.Int("occurrences", sel.Total),
		zap.Stringer("atom", sel.After))
	return rewritten, nil
}
