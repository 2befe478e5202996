package etr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAtom(t *testing.T) {
	p := NewPredicate("P", 2)

	a, err := NewAtom(p, Const("a"), Universal("x"))
	require.NoError(t, err)
	assert.Equal(t, "P(a,x)", a.String())
	assert.Equal(t, 2, a.Len())

	_, err = NewAtom(p, Const("a"))
	assert.ErrorIs(t, err, ErrArity)

	_, err = NewAtom(p, Const("a"), nil)
	assert.ErrorIs(t, err, ErrNilTerm)

	neg, err := NewAtom(p.Negated(), Const("a"), Universal("x"))
	require.NoError(t, err)
	assert.Equal(t, "~P(a,x)", neg.String())
	assert.False(t, a.Identical(neg), "polarity is part of identity")
	assert.NotEqual(t, a.Key(), neg.Key())
}

func TestAtomWithTerm(t *testing.T) {
	a := MustAtom("P", Const("a"), Universal("x"))
	e, err := NewEmphasis(Universal("x"))
	require.NoError(t, err)

	b, err := a.WithTerm(1, e)
	require.NoError(t, err)
	assert.Equal(t, "P(a,*x)", b.String())
	assert.Equal(t, "P(a,x)", a.String(), "receiver must not change")
	assert.True(t, b.HasEmphasis())
	assert.False(t, a.HasEmphasis())
	assert.True(t, b.WithoutEmphasis().Identical(a))
	assert.Same(t, a, a.WithoutEmphasis())

	_, err = a.WithTerm(2, Const("b"))
	assert.True(t, errors.Is(err, ErrPosition))
	_, err = a.WithTerm(0, nil)
	assert.ErrorIs(t, err, ErrNilTerm)
}

func TestStateDeduplicates(t *testing.T) {
	pa := MustAtom("P", Const("a"))
	qb := MustAtom("Q", Const("b"))

	s := NewState(pa, qb, MustAtom("P", Const("a")), nil)
	require.Equal(t, 2, s.Len())
	assert.Same(t, pa, s.Atoms()[0])
	assert.Same(t, qb, s.Atoms()[1])
	assert.True(t, s.Contains(MustAtom("Q", Const("b"))))
	assert.False(t, s.Contains(MustAtom("Q", Const("c"))))
	assert.Equal(t, "P(a)Q(b)", s.String())

	reordered := NewState(qb, pa)
	assert.True(t, s.Equal(reordered))
	assert.Equal(t, s.Key(), reordered.Key())
}

func TestSetOfStatesSentinels(t *testing.T) {
	tests := []struct {
		name       string
		sos        *SetOfStates
		verum      bool
		falsum     bool
		rendered   string
		degenerate bool
	}{
		{name: "verum", sos: Verum(), verum: true, rendered: "{0}", degenerate: true},
		{name: "falsum", sos: Falsum(), falsum: true, rendered: "{}", degenerate: true},
		{
			name:     "single atom",
			sos:      NewSetOfStates(NewState(MustAtom("P", Const("a")))),
			rendered: "{P(a)}",
		},
		{
			name:     "empty state beside a real one",
			sos:      NewSetOfStates(NewState(), NewState(MustAtom("P", Const("a")))),
			rendered: "{0,P(a)}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.verum, tt.sos.IsVerum())
			assert.Equal(t, tt.falsum, tt.sos.IsFalsum())
			assert.Equal(t, tt.degenerate, tt.sos.Degenerate())
			assert.Equal(t, tt.rendered, tt.sos.String())
		})
	}
}

func TestSetOfStatesOrderAndMembership(t *testing.T) {
	s1 := NewState(MustAtom("P", Const("a")))
	s2 := NewState(MustAtom("Q", Universal("x")), MustAtom("R", Const("b")))
	sos := NewSetOfStates(s1, s2, NewState(MustAtom("P", Const("a"))))

	require.Equal(t, 2, sos.Len())
	assert.Same(t, s1, sos.States()[0])
	assert.Same(t, s2, sos.States()[1])
	assert.True(t, sos.Contains(NewState(MustAtom("R", Const("b")), MustAtom("Q", Universal("x")))))
	assert.True(t, sos.Equal(NewSetOfStates(s2, s1)))
	assert.False(t, sos.Equal(NewSetOfStates(s1)))

	var rendered []string
	for _, a := range sos.Atoms() {
		rendered = append(rendered, a.String())
	}
	assert.Equal(t, []string{"P(a)", "Q(x)", "R(b)"}, rendered)
}

func TestCountEmphasis(t *testing.T) {
	e, err := NewEmphasis(Const("a"))
	require.NoError(t, err)
	nested, err := NewEmphasis(Universal("x"))
	require.NoError(t, err)

	sos := NewSetOfStates(
		NewState(MustAtom("P", e), MustAtom("Q", Func("f", nested))),
		NewState(MustAtom("R", Const("b"))),
	)
	assert.Equal(t, 2, CountEmphasis(sos))
	assert.Equal(t, 0, CountEmphasis(Verum()))
}

func TestKeysDistinguishNamesWithDelimiters(t *testing.T) {
	two := MustAtom("P", Const("a"), Const("b"))
	one := MustAtom("P", Const("a(),f:b"))
	require.False(t, two.Identical(one))
	assert.NotEqual(t, two.Key(), one.Key())

	s := NewState(two, one)
	assert.Equal(t, 2, s.Len(), "distinct atoms must both be kept")
	assert.True(t, s.Contains(one))
	assert.True(t, s.Contains(two))

	tests := []struct {
		name string
		a, b *Atom
	}{
		{"separator in constant", MustAtom("Q", Const("x,y")), MustAtom("Q", Const("x"), Const("y"))},
		{"arity of function", MustAtom("R", Func("f", Const("a"))), MustAtom("R", Const("f"))},
		{"quote in name", MustAtom("S", Universal(`u"`)), MustAtom("S", Universal("u"))},
		{"predicate name", MustAtom("T(", Const("a")), MustAtom("T", Const("(a"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, tt.a.Key(), tt.b.Key())
			assert.Equal(t, 2, NewState(tt.a, tt.b).Len())
			assert.Equal(t, 2, NewSetOfStates(NewState(tt.a), NewState(tt.b)).Len())
		})
	}
}
