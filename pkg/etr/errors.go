package etr

import (
	"errors"
	"fmt"
)

var (
	// ErrDoubleEmphasis is returned when an Emphasis would wrap another Emphasis.
	ErrDoubleEmphasis = errors.New("emphasis cannot wrap an emphasis")

	// ErrArity is returned when a symbol is applied to the wrong number of terms.
	ErrArity = errors.New("arity mismatch")

	// ErrNilTerm is returned when a nil term is passed to a constructor.
	ErrNilTerm = errors.New("nil term")

	// ErrPosition is returned when a term position lies outside an atom.
	ErrPosition = errors.New("term position out of range")
)

func arityError(kind, name string, want, got int) error {
	return fmt.Errorf("%w: %s %s expects %d terms, got %d", ErrArity, kind, name, want, got)
}
