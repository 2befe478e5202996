// Package etr provides the term model used by the emphasis machinery:
// arbitrary objects, functional terms, emphasis markers, atoms, states and
// sets of states.
//
// Every value in this package is immutable once constructed. Constructors
// enforce the model's invariants:
//   - An Emphasis never wraps another Emphasis
//   - An Atom carries exactly as many terms as its predicate's arity
//   - States and sets of states hold no duplicates
//
// States and sets of states keep their members in insertion order, which
// gives every traversal a reproducible enumeration while the public
// surface still behaves like a set (membership, no duplicates).
package etr

import (
	"strconv"
	"strings"
)

// Term is a closed set of variants: *ArbitraryObject, *FunctionalTerm and
// *Emphasis. The unexported marker method keeps other packages from adding
// variants, so type switches over Term are exhaustive.
type Term interface {
	// String returns a human-readable representation of the term.
	String() string

	// Identical reports whether other is the same variant with recursively
	// identical contents.
	Identical(other Term) bool

	// Key returns a canonical, variant-tagged encoding of the term. Names
	// are quoted, so two terms are identical iff their keys are equal.
	Key() string

	isTerm()
}

// ArbitraryObject is a quantified object. Universal objects are the
// default; existential objects carry the Existential flag.
type ArbitraryObject struct {
	name        string
	existential bool
}

// Universal creates a universally quantified arbitrary object.
func Universal(name string) *ArbitraryObject {
	return &ArbitraryObject{name: name}
}

// Existential creates an existentially quantified arbitrary object.
func Existential(name string) *ArbitraryObject {
	return &ArbitraryObject{name: name, existential: true}
}

// Name returns the object's name.
func (o *ArbitraryObject) Name() string { return o.name }

// IsExistential reports whether the object is existentially quantified.
func (o *ArbitraryObject) IsExistential() bool { return o.existential }

// IsUniversal reports whether the object is universally quantified.
func (o *ArbitraryObject) IsUniversal() bool { return !o.existential }

// String returns the object's name.
func (o *ArbitraryObject) String() string { return o.name }

// Identical compares name and quantifier.
func (o *ArbitraryObject) Identical(other Term) bool {
	if x, ok := other.(*ArbitraryObject); ok {
		return o.name == x.name && o.existential == x.existential
	}
	return false
}

// Key returns the canonical key of the object.
func (o *ArbitraryObject) Key() string {
	if o.existential {
		return "e:" + strconv.Quote(o.name)
	}
	return "u:" + strconv.Quote(o.name)
}

func (*ArbitraryObject) isTerm() {}

// Function is a function symbol with a fixed arity.
type Function struct {
	Name  string
	Arity int
}

// NewFunction creates a function symbol.
func NewFunction(name string, arity int) Function {
	return Function{Name: name, Arity: arity}
}

// FunctionalTerm applies a function symbol to an ordered list of terms.
// A functional term of arity 0 is a constant.
type FunctionalTerm struct {
	fn   Function
	args []Term
}

// Const creates a constant, a functional term with no arguments.
func Const(name string) *FunctionalTerm {
	return &FunctionalTerm{fn: Function{Name: name}}
}

// Func creates the functional term name(args...). The function's arity
// is taken from the number of arguments.
func Func(name string, args ...Term) *FunctionalTerm {
	return &FunctionalTerm{
		fn:   Function{Name: name, Arity: len(args)},
		args: append([]Term(nil), args...),
	}
}

// NewFunctionalTerm applies fn to args, checking the arity.
func NewFunctionalTerm(fn Function, args ...Term) (*FunctionalTerm, error) {
	if fn.Arity != len(args) {
		return nil, arityError("function", fn.Name, fn.Arity, len(args))
	}
	return &FunctionalTerm{fn: fn, args: append([]Term(nil), args...)}, nil
}

// Function returns the applied function symbol.
func (f *FunctionalTerm) Function() Function { return f.fn }

// Arity returns the number of arguments.
func (f *FunctionalTerm) Arity() int { return len(f.args) }

// IsConst reports whether the term is a constant.
func (f *FunctionalTerm) IsConst() bool { return len(f.args) == 0 }

// Args returns a copy of the argument list.
func (f *FunctionalTerm) Args() []Term {
	return append([]Term(nil), f.args...)
}

// String renders constants by name and applications as f(a,b).
func (f *FunctionalTerm) String() string {
	if len(f.args) == 0 {
		return f.fn.Name
	}
	parts := make([]string, len(f.args))
	for i, a := range f.args {
		parts[i] = a.String()
	}
	return f.fn.Name + "(" + strings.Join(parts, ",") + ")"
}

// Identical compares the function symbol and every argument in order.
func (f *FunctionalTerm) Identical(other Term) bool {
	x, ok := other.(*FunctionalTerm)
	if !ok || f.fn != x.fn || len(f.args) != len(x.args) {
		return false
	}
	for i := range f.args {
		if !f.args[i].Identical(x.args[i]) {
			return false
		}
	}
	return true
}

// Key returns the canonical key of the term.
func (f *FunctionalTerm) Key() string {
	var b strings.Builder
	b.WriteString("f:")
	b.WriteString(strconv.Quote(f.fn.Name))
	b.WriteString("/")
	b.WriteString(strconv.Itoa(f.fn.Arity))
	b.WriteString("(")
	for i, a := range f.args {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(a.Key())
	}
	b.WriteString(")")
	return b.String()
}

func (*FunctionalTerm) isTerm() {}

// Emphasis marks the term it wraps as the current focus.
type Emphasis struct {
	inner Term
}

// NewEmphasis wraps t in an emphasis marker. Wrapping an Emphasis fails
// with ErrDoubleEmphasis.
func NewEmphasis(t Term) (*Emphasis, error) {
	if t == nil {
		return nil, ErrNilTerm
	}
	if _, ok := t.(*Emphasis); ok {
		return nil, ErrDoubleEmphasis
	}
	return &Emphasis{inner: t}, nil
}

// Inner returns the emphasized term.
func (e *Emphasis) Inner() Term { return e.inner }

// String renders the marker as *t.
func (e *Emphasis) String() string { return "*" + e.inner.String() }

// Identical compares the wrapped terms.
func (e *Emphasis) Identical(other Term) bool {
	if x, ok := other.(*Emphasis); ok {
		return e.inner.Identical(x.inner)
	}
	return false
}

// Key returns the canonical key of the marker.
func (e *Emphasis) Key() string { return "*" + e.inner.Key() }

func (*Emphasis) isTerm() {}

// IsEmphasis reports whether t is an emphasis marker.
func IsEmphasis(t Term) bool {
	_, ok := t.(*Emphasis)
	return ok
}

// countEmphasis counts emphasis markers anywhere inside t.
func countEmphasis(t Term) int {
	switch x := t.(type) {
	case *Emphasis:
		return 1 + countEmphasis(x.inner)
	case *FunctionalTerm:
		n := 0
		for _, a := range x.args {
			n += countEmphasis(a)
		}
		return n
	default:
		return 0
	}
}

// StripEmphasis returns t with every emphasis marker removed, at any depth.
// Terms without markers are returned as is.
func StripEmphasis(t Term) Term {
	switch x := t.(type) {
	case *Emphasis:
		return StripEmphasis(x.inner)
	case *FunctionalTerm:
		if countEmphasis(x) == 0 {
			return x
		}
		args := make([]Term, len(x.args))
		for i, a := range x.args {
			args[i] = StripEmphasis(a)
		}
		return &FunctionalTerm{fn: x.fn, args: args}
	default:
		return t
	}
}
