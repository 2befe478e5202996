package problem

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

// NewDocument converts a problem back into its YAML shape.
func NewDocument(p Problem) Document {
	return Document{
		Name:        p.Name,
		Stage:       NewCollection(p.Stage),
		Supposition: NewCollection(p.Supposition),
	}
}

// Encode writes the problem as a YAML document.
func Encode(w io.Writer, p Problem) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(p)); err != nil {
		return fmt.Errorf("encode problem: %w", err)
	}
	return enc.Close()
}

// NewCollection converts a set of states. Verum and falsum become their
// sentinel scalars.
func NewCollection(sos *etr.SetOfStates) Collection {
	switch {
	case sos == nil:
		return Collection{}
	case sos.IsVerum():
		return Collection{Sentinel: verumScalar}
	case sos.IsFalsum():
		return Collection{Sentinel: falsumScalar}
	}
	states := make([][]AtomDoc, 0, sos.Len())
	for _, st := range sos.States() {
		atoms := make([]AtomDoc, 0, st.Len())
		for _, a := range st.Atoms() {
			atoms = append(atoms, NewAtomDoc(a))
		}
		states = append(states, atoms)
	}
	return Collection{States: states}
}

// NewAtomDoc converts an atom.
func NewAtomDoc(a *etr.Atom) AtomDoc {
	p := a.Predicate()
	doc := AtomDoc{Predicate: p.Name, Negated: !p.Verifier}
	for _, t := range a.Terms() {
		doc.Terms = append(doc.Terms, NewTermDoc(t))
	}
	return doc
}

// NewTermDoc converts a term.
func NewTermDoc(t etr.Term) TermDoc {
	switch x := t.(type) {
	case *etr.ArbitraryObject:
		if x.IsExistential() {
			return TermDoc{Existential: x.Name()}
		}
		return TermDoc{Universal: x.Name()}
	case *etr.FunctionalTerm:
		if x.IsConst() {
			return TermDoc{Const: x.Function().Name}
		}
		doc := TermDoc{Func: x.Function().Name}
		for _, arg := range x.Args() {
			doc.Args = append(doc.Args, NewTermDoc(arg))
		}
		return doc
	case *etr.Emphasis:
		inner := NewTermDoc(x.Inner())
		return TermDoc{Emphasis: &inner}
	default:
		return TermDoc{}
	}
}
