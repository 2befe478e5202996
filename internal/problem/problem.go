// Package problem reads and writes emphasis problems as YAML documents.
//
// A document names a stage and a supposition. Each is either the scalar
// "verum", the scalar "falsum", or a list of states; a state is a list of
// atoms:
//
//	name: simple
//	stage: verum
//	supposition:
//	  - - predicate: P
//	      terms: [{const: a}, {universal: x}]
//	    - predicate: Q
//	      negated: true
//	      terms: [{func: f, args: [{existential: y}]}]
//
// A term is exactly one of universal, existential, const, func (with args)
// or emphasis (wrapping another term).
package problem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gitrdm/gokanetr/pkg/etr"
)

const (
	verumScalar  = "verum"
	falsumScalar = "falsum"
)

// ErrInvalidDocument is wrapped by every decoding error caused by the
// document's content.
var ErrInvalidDocument = errors.New("invalid problem document")

// Problem is a decoded document.
type Problem struct {
	Name        string
	Stage       *etr.SetOfStates
	Supposition *etr.SetOfStates
}

// Document is the YAML shape of a problem.
type Document struct {
	Name        string     `yaml:"name,omitempty"`
	Stage       Collection `yaml:"stage"`
	Supposition Collection `yaml:"supposition"`
}

// Collection is either a sentinel scalar or a list of states.
type Collection struct {
	Sentinel string
	States   [][]AtomDoc
}

// AtomDoc is the YAML shape of an atom.
type AtomDoc struct {
	Predicate string    `yaml:"predicate"`
	Negated   bool      `yaml:"negated,omitempty"`
	Terms     []TermDoc `yaml:"terms,flow"`
}

// TermDoc is the YAML shape of a term. Exactly one field is set.
type TermDoc struct {
	Universal   string    `yaml:"universal,omitempty"`
	Existential string    `yaml:"existential,omitempty"`
	Const       string    `yaml:"const,omitempty"`
	Func        string    `yaml:"func,omitempty"`
	Args        []TermDoc `yaml:"args,omitempty,flow"`
	Emphasis    *TermDoc  `yaml:"emphasis,omitempty"`
}

// UnmarshalYAML accepts a sentinel scalar or a sequence of states.
func (c *Collection) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Value {
		case verumScalar, falsumScalar:
			c.Sentinel = node.Value
			return nil
		}
		return fmt.Errorf("%w: line %d: collection must be %q, %q or a list of states, got %q",
			ErrInvalidDocument, node.Line, verumScalar, falsumScalar, node.Value)
	case yaml.SequenceNode:
		return node.Decode(&c.States)
	default:
		return fmt.Errorf("%w: line %d: collection must be a scalar or a list", ErrInvalidDocument, node.Line)
	}
}

// MarshalYAML writes sentinels as scalars and everything else as lists.
func (c Collection) MarshalYAML() (any, error) {
	if c.Sentinel != "" {
		return c.Sentinel, nil
	}
	if c.States == nil {
		return [][]AtomDoc{}, nil
	}
	return c.States, nil
}

// Decode reads a problem document from r.
func Decode(r io.Reader) (Problem, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Problem{}, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return Problem{}, fmt.Errorf("decode problem: %w", err)
	}
	return doc.Build()
}

// Load reads a problem document from a file. The problem name defaults to
// the path.
func Load(path string) (Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Problem{}, fmt.Errorf("read problem %s: %w", path, err)
	}
	p, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Problem{}, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = path
	}
	return p, nil
}

// Build converts the document into etr values.
func (d Document) Build() (Problem, error) {
	stage, err := d.Stage.Build()
	if err != nil {
		return Problem{}, fmt.Errorf("stage: %w", err)
	}
	supposition, err := d.Supposition.Build()
	if err != nil {
		return Problem{}, fmt.Errorf("supposition: %w", err)
	}
	return Problem{Name: d.Name, Stage: stage, Supposition: supposition}, nil
}

// Build converts the collection into a set of states. An absent collection
// is an error so that a typo cannot silently turn into falsum.
func (c Collection) Build() (*etr.SetOfStates, error) {
	switch c.Sentinel {
	case verumScalar:
		return etr.Verum(), nil
	case falsumScalar:
		return etr.Falsum(), nil
	}
	if c.States == nil {
		return nil, fmt.Errorf("%w: missing collection", ErrInvalidDocument)
	}
	states := make([]*etr.State, 0, len(c.States))
	for i, sd := range c.States {
		atoms := make([]*etr.Atom, 0, len(sd))
		for j, ad := range sd {
			a, err := ad.Build()
			if err != nil {
				return nil, fmt.Errorf("state %d atom %d: %w", i, j, err)
			}
			atoms = append(atoms, a)
		}
		states = append(states, etr.NewState(atoms...))
	}
	return etr.NewSetOfStates(states...), nil
}

// Build converts the atom document into an atom.
func (a AtomDoc) Build() (*etr.Atom, error) {
	if a.Predicate == "" {
		return nil, fmt.Errorf("%w: atom without predicate", ErrInvalidDocument)
	}
	terms := make([]etr.Term, len(a.Terms))
	for i, td := range a.Terms {
		t, err := td.Build()
		if err != nil {
			return nil, fmt.Errorf("%s term %d: %w", a.Predicate, i, err)
		}
		terms[i] = t
	}
	p := etr.NewPredicate(a.Predicate, len(terms))
	if a.Negated {
		p = p.Negated()
	}
	return etr.NewAtom(p, terms...)
}

// Build converts the term document into a term.
func (t TermDoc) Build() (etr.Term, error) {
	set := 0
	for _, s := range []string{t.Universal, t.Existential, t.Const, t.Func} {
		if s != "" {
			set++
		}
	}
	if t.Emphasis != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: a term needs exactly one of universal, existential, const, func, emphasis", ErrInvalidDocument)
	}
	if t.Func == "" && len(t.Args) > 0 {
		return nil, fmt.Errorf("%w: args given without func", ErrInvalidDocument)
	}

	switch {
	case t.Universal != "":
		return etr.Universal(t.Universal), nil
	case t.Existential != "":
		return etr.Existential(t.Existential), nil
	case t.Const != "":
		return etr.Const(t.Const), nil
	case t.Func != "":
		args := make([]etr.Term, len(t.Args))
		for i, ad := range t.Args {
			arg, err := ad.Build()
			if err != nil {
				return nil, fmt.Errorf("%s arg %d: %w", t.Func, i, err)
			}
			args[i] = arg
		}
		return etr.Func(t.Func, args...), nil
	default:
		inner, err := t.Emphasis.Build()
		if err != nil {
			return nil, err
		}
		e, err := etr.NewEmphasis(inner)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		return e, nil
	}
}
