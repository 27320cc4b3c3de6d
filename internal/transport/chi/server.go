// Package chi implements the HTTP surface of contentd on the chi router.
package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
	logpkg "github.com/kailas-cloud/contentd/internal/logger"
	healthuc "github.com/kailas-cloud/contentd/internal/usecase/health"
)

// ArticleLookup loads a single article by id.
type ArticleLookup interface {
	Lookup(ctx context.Context, id uuid.UUID) (*domarticle.Article, error)
}

// Searcher runs a free-text query against the search index.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	articles ArticleLookup
	search   Searcher
	health   HealthChecker
	logger   *zap.Logger
}

// NewServer creates a new HTTP server. health may be nil.
func NewServer(articles ArticleLookup, search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		articles: articles,
		search:   search,
		health:   health,
		logger:   logger,
	}
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/articles", s.GetArticleDetails)
		r.Get("/articles/{id}", s.GetArticleDetails)
		r.Get("/search", s.SearchArticles)
	})
}

func (s *Server) log(ctx context.Context, source string) *zap.Logger {
	return logpkg.ForComponent(logpkg.FromContextOr(ctx, s.logger), source)
}

// GetArticleDetails serves one article as JSON.
//
// A missing article is not answered with 404: the article is read without a
// nil check and the resulting panic is left to the router's recoverer.
func (s *Server) GetArticleDetails(w http.ResponseWriter, r *http.Request) {
	log := s.log(r.Context(), "ArticleController")

	idText := chi.URLParam(r, "id")
	if idText == "" {
		idText = r.URL.Query().Get("id")
	}
	idText = strings.TrimSpace(idText)
	if idText == "" {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, MsgMissingArticleID)
		return
	}
	id, err := domarticle.ParseID(idText)
	if err != nil {
		log.Debug("Rejected article id", zap.String("article_id", idText), zap.Error(err))
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, MsgInvalidArticleID)
		return
	}

	a, _ := s.articles.Lookup(r.Context(), id)
	title := a.Title()
	body := a.Body()

	log.Info("Loaded article", zap.String("title", title), zap.Stringer("article_id", id))
	writeJSON(w, http.StatusOK, ArticleDetails{ID: id, Title: title, Body: body})
}

var searchErrorHandlers = []errorHandler{
	searchTimeoutHandler,
	sentinelHandler(domain.ErrSearchCanceled, http.StatusServiceUnavailable,
		ErrorCodeRequestCanceled, "request canceled"),
	sentinelHandler(domain.ErrSearchTransport, http.StatusBadGateway,
		ErrorCodeSearchUnavailable, "search index unavailable"),
}

// SearchArticles forwards q to the search index and returns the raw index body.
func (s *Server) SearchArticles(w http.ResponseWriter, r *http.Request) {
	body, err := s.search.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.handleSearchError(r.Context(), w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

func (s *Server) handleSearchError(ctx context.Context, w http.ResponseWriter, err error) {
	for _, h := range searchErrorHandlers {
		if h(w, err) {
			return
		}
	}
	s.log(ctx, "SearchController").Error("unhandled search error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

// HealthCheck reports store and search index health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, HealthResponse{Status: string(healthuc.Healthy), Checks: map[string]string{}})
		return
	}
	report := s.health.Check(r.Context())
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Checks: checks})
}
