package emphasis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvariantViolation reports a broken caller contract: an atom that
	// already carries emphasis, an atom without terms, or a collection with
	// nothing to emphasize. The operation is aborted and no result is
	// returned.
	ErrInvariantViolation = errors.New("emphasis invariant violated")

	// ErrEmptyOccurrenceSet reports that the selected focus term could not
	// be found again in the collection it was selected from. It indicates a
	// defect, never a user-facing condition.
	ErrEmptyOccurrenceSet = errors.New("focus term has no occurrence")
)

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
