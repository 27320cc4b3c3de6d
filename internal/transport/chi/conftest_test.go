package chi

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
	articleuc "github.com/kailas-cloud/contentd/internal/usecase/article"
	healthuc "github.com/kailas-cloud/contentd/internal/usecase/health"
)

// --- Mocks ---

type mockArticleRepo struct {
	mu       sync.Mutex
	articles map[uuid.UUID]*domarticle.Article
	getCalls int
}

func (m *mockArticleRepo) Get(_ context.Context, id uuid.UUID) (*domarticle.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	a, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (m *mockArticleRepo) Save(_ context.Context, a *domarticle.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.articles == nil {
		m.articles = make(map[uuid.UUID]*domarticle.Article)
	}
	m.articles[a.ID()] = a
	return nil
}

func (m *mockArticleRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.articles, id)
	return nil
}

func (m *mockArticleRepo) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

type mockLookup struct {
	lookupFn func(ctx context.Context, id uuid.UUID) (*domarticle.Article, error)
	calls    int
}

func (m *mockLookup) Lookup(ctx context.Context, id uuid.UUID) (*domarticle.Article, error) {
	m.calls++
	if m.lookupFn != nil {
		return m.lookupFn(ctx, id)
	}
	return nil, domain.ErrArticleNotFound
}

type mockSearcher struct {
	searchFn func(ctx context.Context, query string) (string, error)
	queries  []string
}

func (m *mockSearcher) Search(ctx context.Context, query string) (string, error) {
	m.queries = append(m.queries, query)
	if m.searchFn != nil {
		return m.searchFn(ctx, query)
	}
	return "", nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

// --- Fixtures ---

var storedID = uuid.MustParse("3f2504e0-4f89-11d3-9a0c-0305e82c3301")

func newStoredRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: map[uuid.UUID]*domarticle.Article{
		storedID: domarticle.Reconstruct(storedID, map[string]string{
			domarticle.FieldTitle: "Hello",
			domarticle.FieldBody:  "World",
		}),
	}}
}

// newTestServer wires the real article service over repo.
func newTestServer(repo articleuc.Repository, search Searcher, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NewServer(articleuc.New(repo, logger), search, nil, logger)
}

// newTestRouter builds the router the way cmd/contentd does.
func newTestRouter(s *Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	s.Routes(r)
	return r
}
