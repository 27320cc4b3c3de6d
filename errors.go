package contentd

import (
	"errors"

	"github.com/kailas-cloud/contentd/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArticleID = domain.ErrInvalidArticleID
	ErrArticleNotFound  = domain.ErrArticleNotFound
	ErrSearchTimeout    = domain.ErrSearchTimeout
	ErrSearchTransport  = domain.ErrSearchTransport
	ErrSearchCanceled   = domain.ErrSearchCanceled

	// ErrSearchNotConfigured is returned by Search when WithSolr was not given.
	ErrSearchNotConfigured = errors.New("contentd: search not configured (use WithSolr)")
)
