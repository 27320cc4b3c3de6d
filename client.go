package contentd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/db"
	dbRedis "github.com/kailas-cloud/contentd/internal/db/redis"
	"github.com/kailas-cloud/contentd/internal/domain"
	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
	articlerepo "github.com/kailas-cloud/contentd/internal/repository/article"
	"github.com/kailas-cloud/contentd/internal/transport/solr"
	articleuc "github.com/kailas-cloud/contentd/internal/usecase/article"
	searchuc "github.com/kailas-cloud/contentd/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Article is a stored article.
type Article struct {
	ID    string
	Title string
	Body  string
}

// Client is the contentd SDK entry point.
type Client struct {
	store     db.Store
	articles  *articleuc.Service
	searchSvc *searchuc.Service
}

// New creates a contentd Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("contentd: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("contentd: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("contentd: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("contentd: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	domain.SetKeyPrefix(cfg.keyPrefix)

	c := &Client{
		store:    store,
		articles: articleuc.New(articlerepo.New(store), logger),
	}
	if cfg.solrURL != "" {
		index := solr.NewClient(&solr.Config{
			BaseURL:    cfg.solrURL,
			HTTPClient: cfg.httpClient,
			Logger:     logger,
		})
		c.searchSvc = searchuc.New(index, cfg.searchTimeout, logger)
	}
	return c
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Article loads an article by its UUID string.
// Returns ErrInvalidArticleID for a malformed id and ErrArticleNotFound when absent.
func (c *Client) Article(ctx context.Context, id string) (Article, error) {
	uid, err := parseID(id)
	if err != nil {
		return Article{}, err
	}
	a, err := c.articles.Lookup(ctx, uid)
	if err != nil {
		return Article{}, fmt.Errorf("contentd: %w", err)
	}
	return fromDomain(a), nil
}

// SaveArticle creates or replaces an article.
func (c *Client) SaveArticle(ctx context.Context, a Article) error {
	uid, err := parseID(a.ID)
	if err != nil {
		return err
	}
	da, err := domarticle.New(uid, map[string]string{
		domarticle.FieldTitle: a.Title,
		domarticle.FieldBody:  a.Body,
	})
	if err != nil {
		return fmt.Errorf("contentd: %w", err)
	}
	if err := c.articles.Save(ctx, da); err != nil {
		return fmt.Errorf("contentd: %w", err)
	}
	return nil
}

// DeleteArticle removes an article. Deleting a missing article is not an error.
func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	uid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := c.articles.Delete(ctx, uid); err != nil {
		return fmt.Errorf("contentd: %w", err)
	}
	return nil
}

// Search runs query against the Solr article core and returns the raw body.
// A blank query returns "" without a request.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if c.searchSvc == nil {
		return "", ErrSearchNotConfigured
	}
	return c.searchSvc.Search(ctx, query)
}

func parseID(id string) (uuid.UUID, error) {
	uid, err := domarticle.ParseID(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("contentd: %w: %w", ErrInvalidArticleID, err)
	}
	return uid, nil
}

func fromDomain(a *domarticle.Article) Article {
	return Article{
		ID:    a.ID().String(),
		Title: a.Title(),
		Body:  a.Body(),
	}
}
