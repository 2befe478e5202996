package etr

import (
	"fmt"
	"strconv"
	"strings"
)

// Predicate is a relation symbol with a fixed arity. A predicate whose
// Verifier flag is false is a falsifier and renders with a leading "~".
type Predicate struct {
	Name     string
	Arity    int
	Verifier bool
}

// NewPredicate creates a verifier predicate.
func NewPredicate(name string, arity int) Predicate {
	return Predicate{Name: name, Arity: arity, Verifier: true}
}

// Negated returns the predicate with the opposite polarity.
func (p Predicate) Negated() Predicate {
	p.Verifier = !p.Verifier
	return p
}

// String returns the predicate name, prefixed with "~" for falsifiers.
func (p Predicate) String() string {
	if p.Verifier {
		return p.Name
	}
	return "~" + p.Name
}

// Atom is a predicate applied to an ordered sequence of terms. The index of
// a term is its address for rewriting.
type Atom struct {
	predicate Predicate
	terms     []Term
}

// NewAtom creates an atom, checking that the number of terms matches the
// predicate's arity and that no term is nil.
func NewAtom(p Predicate, terms ...Term) (*Atom, error) {
	if p.Arity != len(terms) {
		return nil, arityError("predicate", p.Name, p.Arity, len(terms))
	}
	for _, t := range terms {
		if t == nil {
			return nil, ErrNilTerm
		}
	}
	return &Atom{predicate: p, terms: append([]Term(nil), terms...)}, nil
}

// MustAtom is like NewAtom but builds a verifier predicate from name and
// panics on error. It is intended for tests and fixed fixtures.
func MustAtom(name string, terms ...Term) *Atom {
	a, err := NewAtom(NewPredicate(name, len(terms)), terms...)
	if err != nil {
		panic(err)
	}
	return a
}

// Predicate returns the atom's predicate.
func (a *Atom) Predicate() Predicate { return a.predicate }

// Len returns the number of terms.
func (a *Atom) Len() int { return len(a.terms) }

// Term returns the term at index i.
func (a *Atom) Term(i int) Term { return a.terms[i] }

// Terms returns a copy of the term sequence.
func (a *Atom) Terms() []Term {
	return append([]Term(nil), a.terms...)
}

// WithTerm returns a new atom equal to a except that position i holds t.
// The receiver is left untouched.
func (a *Atom) WithTerm(i int, t Term) (*Atom, error) {
	if t == nil {
		return nil, ErrNilTerm
	}
	if i < 0 || i >= len(a.terms) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrPosition, i, len(a.terms))
	}
	terms := a.Terms()
	terms[i] = t
	return &Atom{predicate: a.predicate, terms: terms}, nil
}

// HasEmphasis reports whether any term of the atom, at any depth, is an
// emphasis marker.
func (a *Atom) HasEmphasis() bool {
	return a.emphasisCount() > 0
}

// WithoutEmphasis returns the atom with every emphasis marker removed.
func (a *Atom) WithoutEmphasis() *Atom {
	if a.emphasisCount() == 0 {
		return a
	}
	terms := make([]Term, len(a.terms))
	for i, t := range a.terms {
		terms[i] = StripEmphasis(t)
	}
	return &Atom{predicate: a.predicate, terms: terms}
}

func (a *Atom) emphasisCount() int {
	n := 0
	for _, t := range a.terms {
		n += countEmphasis(t)
	}
	return n
}

// Identical compares predicates and every term in order.
func (a *Atom) Identical(other *Atom) bool {
	if other == nil || a.predicate != other.predicate || len(a.terms) != len(other.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Identical(other.terms[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical encoding of the atom.
func (a *Atom) Key() string {
	var b strings.Builder
	if !a.predicate.Verifier {
		b.WriteString("~")
	}
	b.WriteString(strconv.Quote(a.predicate.Name))
	b.WriteString("/")
	b.WriteString(strconv.Itoa(a.predicate.Arity))
	b.WriteString("(")
	for i, t := range a.terms {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(t.Key())
	}
	b.WriteString(")")
	return b.String()
}

// String renders the atom as P(a,b) or ~P(a,b).
func (a *Atom) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return a.predicate.String() + "(" + strings.Join(parts, ",") + ")"
}
