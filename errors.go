package factgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/factgo/query"
	"github.com/hupe1980/factgo/store"
)

var (
	// ErrNotFound unifies all not-found outcomes surfaced as errors.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFact is returned when a fact violates store constraints.
	ErrInvalidFact = errors.New("invalid fact")
	// ErrInvalidQuery is returned for queries that cannot be executed.
	ErrInvalidQuery = errors.New("invalid query")
)

// ErrUnknownLanguage indicates a language name with no registered lexer.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownLanguage struct {
	Name  string
	cause error
}

func (e *ErrUnknownLanguage) Error() string {
	return fmt.Sprintf("unknown language: %q", e.Name)
}

func (e *ErrUnknownLanguage) Unwrap() error { return e.cause }

// translateError maps package-level errors onto the root taxonomy so
// callers can branch on a small sentinel set.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrInvalidPredicate) {
		return fmt.Errorf("%w: %w", ErrInvalidFact, err)
	}
	if errors.Is(err, query.ErrUnsupportedOperator) || errors.Is(err, query.ErrUnboundPlan) {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	return err
}
