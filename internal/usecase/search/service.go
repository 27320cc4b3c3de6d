package search

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	logpkg "github.com/kailas-cloud/contentd/internal/logger"
	"github.com/kailas-cloud/contentd/internal/metrics"
)

const (
	// SelectPath is the article core's select handler.
	SelectPath = "/solr/articles/select"
	// DefaultTimeout is the budget for a single index request.
	DefaultTimeout = 5000 * time.Millisecond
)

// errBudgetExceeded is the cause attached to the budget timer so a fired
// budget can be told apart from the caller's own cancellation or deadline.
var errBudgetExceeded = errors.New("search budget exceeded")

// Service forwards free-text queries to the search index.
// Exactly one index request per call: no retry, no backoff, no circuit breaker.
type Service struct {
	index   Index
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a search service. A non-positive timeout falls back to DefaultTimeout.
func New(index Index, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		index:   index,
		timeout: timeout,
		logger:  logpkg.ForComponent(logger, "SearchIndexService"),
	}
}

// Budget returns the per-request timeout.
func (s *Service) Budget() time.Duration { return s.timeout }

// Search runs query against the index and returns the raw response body.
// A blank query returns "" without touching the network. ctx is the caller's
// cancellation signal; it races the budget timer and whichever fires first
// decides the outcome.
func (s *Service) Search(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", nil
	}

	requestURI := BuildRequestURI(query)
	s.logger.Info("Executing Solr query", zap.String("request_uri", requestURI))

	reqCtx, cancel := context.WithTimeoutCause(ctx, s.timeout, errBudgetExceeded)
	defer cancel()

	start := time.Now()
	body, err := s.index.Get(reqCtx, requestURI)
	elapsed := time.Since(start)

	if err == nil {
		observe(metrics.SearchOutcomeSuccess, elapsed)
		return body, nil
	}

	// Once reqCtx is done its cause is fixed, so the first signal to fire wins.
	switch {
	case errors.Is(context.Cause(reqCtx), errBudgetExceeded):
		observe(metrics.SearchOutcomeTimeout, elapsed)
		timeoutErr := domain.NewSearchTimeout(s.timeout, err)
		s.logger.Error(timeoutErr.Error(),
			zap.String("request_uri", requestURI),
			zap.Error(err),
		)
		return "", timeoutErr

	case ctx.Err() != nil:
		observe(metrics.SearchOutcomeCanceled, elapsed)
		s.logger.Warn("Solr request canceled by caller",
			zap.String("request_uri", requestURI),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", fmt.Errorf("solr request canceled: %w: %w", domain.ErrSearchCanceled, ctx.Err())

	default:
		observe(metrics.SearchOutcomeTransport, elapsed)
		s.logger.Error("HTTP error during Solr query",
			zap.String("request_uri", requestURI),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", domain.ErrSearchTransport, err)
	}
}

// BuildRequestURI renders the select path with query percent-encoded into q.
// Spaces become %20, never '+'.
func BuildRequestURI(query string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return SelectPath + "?q=" + escaped
}

func observe(outcome string, elapsed time.Duration) {
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchRequestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
