package emphasis

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

func TestApplyUniversalBeatsConstant(t *testing.T) {
	supposition := sos(state(atom("P", etr.Const("a"), etr.Universal("x"))))

	stage, got, err := Apply(etr.Verum(), supposition, WithSource(&scriptedSource{}))
	require.NoError(t, err)
	assert.True(t, stage.IsVerum())
	assert.Equal(t, "{P(a,*x)}", got.String())
	assert.Equal(t, "{P(a,x)}", supposition.String())
}

func TestApplyDoubleDegenerateIsNoOp(t *testing.T) {
	cases := map[string][2]*etr.SetOfStates{
		"verum/verum":   {etr.Verum(), etr.Verum()},
		"verum/falsum":  {etr.Verum(), etr.Falsum()},
		"falsum/verum":  {etr.Falsum(), etr.Verum()},
		"falsum/falsum": {etr.Falsum(), etr.Falsum()},
	}
	for name, pair := range cases {
		t.Run(name, func(t *testing.T) {
			e := New(WithSource(forbiddenSource{t}))
			out, err := e.Run(pair[0], pair[1])
			require.NoError(t, err)
			assert.Same(t, pair[0], out.Stage)
			assert.Same(t, pair[1], out.Supposition)
			assert.Equal(t, TargetNone, out.Target)
			assert.Empty(t, out.Candidates)
		})
	}
}

func TestApplySuppositionTakesPrecedence(t *testing.T) {
	stage := sos(state(atom("S", etr.Universal("x"))), state(atom("T", etr.Universal("x"))))
	supposition := sos(state(atom("P", etr.Func("f", etr.Const("a")))))

	for seed := uint64(0); seed < 20; seed++ {
		out, err := New(WithSeed(seed)).Run(stage, supposition)
		require.NoError(t, err)
		assert.Equal(t, TargetSupposition, out.Target)
		assert.Same(t, stage, out.Stage)
		assert.Equal(t, "{P(*f(a))}", out.Supposition.String())
	}
}

func TestApplyFallsBackToStage(t *testing.T) {
	stage := sos(state(atom("P", etr.Const("a"), etr.Existential("y"))))

	for _, supposition := range []*etr.SetOfStates{etr.Verum(), etr.Falsum()} {
		out, err := New(WithSource(&scriptedSource{})).Run(stage, supposition)
		require.NoError(t, err)
		assert.Equal(t, TargetStage, out.Target)
		assert.Same(t, supposition, out.Supposition)
		assert.Equal(t, "{P(a,*y)}", out.Stage.String())
	}
}

func TestApplyCountDominanceIsDeterministic(t *testing.T) {
	c1, c2 := etr.Const("c1"), etr.Const("c2")
	supposition := sos(
		state(atom("P", c1), atom("Q", c2)),
		state(atom("R", c1, c1)),
	)

	// c1 has three occurrences, c2 one. The only draw is the occurrence of
	// c1: P(c1) and R(c1,c1) are its two atoms.
	src := &scriptedSource{draws: []int{1}}
	out, err := New(WithSource(src)).Run(etr.Verum(), supposition)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, src.bounds, "no coin flip when counts differ")
	assert.True(t, out.Focus.Term.Identical(c1))
	assert.Equal(t, 3, out.Focus.Occurrences)
	assert.Equal(t, "{P(c1)Q(c2),R(*c1,c1)}", out.Supposition.String())
}

func TestApplyTieCoverage(t *testing.T) {
	supposition := sos(state(atom("P", etr.Const("c1")), atom("Q", etr.Const("c2"))))

	seen := map[string]bool{}
	for coinDraw := 0; coinDraw < 2; coinDraw++ {
		src := &scriptedSource{draws: []int{coinDraw, 0}}
		_, got, err := Apply(etr.Verum(), supposition, WithSource(src))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, src.bounds)
		seen[got.String()] = true
	}
	assert.Equal(t, map[string]bool{
		"{P(*c1)Q(c2)}": true,
		"{P(c1)Q(*c2)}": true,
	}, seen)
}

func TestApplyExactlyOneMark(t *testing.T) {
	a, b := etr.Const("a"), etr.Const("b")
	x, y := etr.Universal("x"), etr.Existential("y")
	supposition := sos(
		state(atom("P", a, x), atom("Q", y, b)),
		state(atom("R", etr.Func("f", x), x)),
		state(atom("S", b), atom("T", x, x, a)),
	)

	for seed := uint64(0); seed < 50; seed++ {
		_, got, err := Apply(etr.Verum(), supposition, WithSeed(seed))
		require.NoError(t, err)
		require.Equal(t, etr.CountEmphasis(supposition)+1, etr.CountEmphasis(got))

		before, after := supposition.Atoms(), got.Atoms()
		require.Len(t, after, len(before))
		changed := 0
		for i := range before {
			if before[i].Identical(after[i]) {
				continue
			}
			changed++
			assert.True(t, after[i].WithoutEmphasis().Identical(before[i]),
				"only the marker may differ: %s vs %s", before[i], after[i])
			assert.True(t, etr.IsEmphasis(after[i].Term(atomPosition(t, after[i]))))
		}
		assert.Equal(t, 1, changed)
		assert.Zero(t, etr.CountEmphasis(supposition), "input must not change")
	}
}

// atomPosition returns the index of the single top-level marker in a.
func atomPosition(t *testing.T, a *etr.Atom) int {
	t.Helper()
	for i, term := range a.Terms() {
		if etr.IsEmphasis(term) {
			return i
		}
	}
	t.Fatalf("no top-level emphasis in %s", a)
	return -1
}

func TestApplyTypePriorityIgnoresCounts(t *testing.T) {
	x := etr.Universal("x")
	fa := etr.Func("f", etr.Const("a"))
	supposition := sos(
		state(atom("P", fa, x)),
		state(atom("Q", fa), atom("R", fa), atom("S", fa, fa)),
	)

	for seed := uint64(0); seed < 10; seed++ {
		out, err := New(WithSeed(seed)).Run(etr.Verum(), supposition)
		require.NoError(t, err)
		assert.True(t, out.Focus.Term.Identical(x))
		assert.Equal(t, "{P(f(a),*x),Q(f(a))R(f(a))S(f(a),f(a))}", out.Supposition.String())
	}
}

func TestApplyErrors(t *testing.T) {
	t.Run("marked target", func(t *testing.T) {
		supposition := sos(state(atom("P", emph(etr.Universal("x")))))
		stage, got, err := Apply(etr.Verum(), supposition, WithSeed(1))
		assert.ErrorIs(t, err, ErrInvariantViolation)
		assert.Nil(t, stage)
		assert.Nil(t, got)
	})
	t.Run("zero-arity atom", func(t *testing.T) {
		_, _, err := Apply(sos(state(atom("P"))), etr.Falsum(), WithSeed(1))
		assert.ErrorIs(t, err, ErrInvariantViolation)
	})
	t.Run("nil collection", func(t *testing.T) {
		_, _, err := Apply(nil, etr.Verum())
		assert.ErrorIs(t, err, ErrInvariantViolation)
	})
	t.Run("marked stage is ignored when the supposition is the target", func(t *testing.T) {
		stage := sos(state(atom("P", emph(etr.Const("a")))))
		_, got, err := Apply(stage, sos(state(atom("Q", etr.Const("b")))), WithSeed(1))
		require.NoError(t, err)
		assert.Equal(t, "{Q(*b)}", got.String())
	})
}

func TestEmphasizeSingleCollection(t *testing.T) {
	got, err := New(WithSeed(3)).Emphasize(sos(state(atom("P", etr.Existential("y"), etr.Const("a")))))
	require.NoError(t, err)
	assert.Equal(t, "{P(*y,a)}", got.String())

	_, err = New(WithSeed(3)).Emphasize(etr.Verum())
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestSeededEmphasizerIsReproducible(t *testing.T) {
	supposition := sos(
		state(atom("P", etr.Const("a"))),
		state(atom("Q", etr.Const("b"))),
		state(atom("R", etr.Const("c"))),
	)
	for seed := uint64(0); seed < 10; seed++ {
		_, first, err := Apply(etr.Verum(), supposition, WithSeed(seed))
		require.NoError(t, err)
		_, second, err := Apply(etr.Verum(), supposition, WithSeed(seed))
		require.NoError(t, err)
		assert.Equal(t, first.String(), second.String())
	}
}

func TestEmphasizerConcurrentUse(t *testing.T) {
	e := New(WithSeed(42))
	supposition := sos(
		state(atom("P", etr.Const("a"), etr.Universal("x"))),
		state(atom("Q", etr.Universal("x"))),
	)

	var wg sync.WaitGroup
	results := make([]string, 32)
	errs := make([]error, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, got, err := e.Apply(etr.Verum(), supposition)
			errs[i] = err
			if err == nil {
				results[i] = got.String()
			}
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Contains(t, []string{"{P(a,*x),Q(x)}", "{P(a,x),Q(*x)}"}, results[i])
	}
	assert.Equal(t, "{P(a,x),Q(x)}", supposition.String())
}

func TestApplyLogsDecision(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := New(WithSeed(7), WithLogger(zap.New(core)))

	_, _, err := e.Apply(etr.Verum(), sos(state(atom("P", etr.Const("a"), etr.Universal("x")))))
	require.NoError(t, err)
	_, _, err = e.Apply(etr.Verum(), etr.Falsum())
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "emphasis applied", entries[0].Message)
	assert.Equal(t, "supposition", entries[0].ContextMap()["target"])
	assert.Equal(t, "P(a,*x)", entries[0].ContextMap()["atom"])
	assert.Equal(t, "both collections degenerate, nothing to emphasize", entries[1].Message)
}
