package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArticleID signals a malformed article identifier.
	ErrInvalidArticleID = errors.New("invalid article id")
	// ErrArticleNotFound signals that the store holds no article for the id.
	ErrArticleNotFound = errors.New("article not found")

	// ErrSearchTimeout signals that the search index did not answer within the budget.
	ErrSearchTimeout = errors.New("search timeout")
	// ErrSearchTransport signals a connection or status-code failure of the search index.
	ErrSearchTransport = errors.New("search transport failure")
	// ErrSearchCanceled signals that the caller abandoned the search.
	ErrSearchCanceled = errors.New("search canceled")
)

// SearchTimeoutMessageFormat is matched verbatim by log consumers. Keep the wording.
const SearchTimeoutMessageFormat = "Solr request timed out after %dms"

// SearchTimeoutError is returned when a search request exceeds its budget.
// Error() renders SearchTimeoutMessageFormat and nothing else.
type SearchTimeoutError struct {
	Budget time.Duration
	Err    error
}

func (e *SearchTimeoutError) Error() string {
	return fmt.Sprintf(SearchTimeoutMessageFormat, e.Budget.Milliseconds())
}

func (e *SearchTimeoutError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSearchTimeout}
	}
	return []error{ErrSearchTimeout, e.Err}
}

// NewSearchTimeout creates a timeout error for the given budget.
func NewSearchTimeout(budget time.Duration, cause error) error {
	return &SearchTimeoutError{Budget: budget, Err: cause}
}
