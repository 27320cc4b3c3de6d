package article

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/contentd/internal/domain"
	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
)

// store is the consumer interface for articles (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/article.Repository. Each article is one hash.
type Repo struct {
	store store
}

// New creates an article repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Get returns the article stored under id.
// An empty HGETALL reply means the key does not exist: domain.ErrArticleNotFound.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domarticle.Article, error) {
	key := articleKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return domarticle.Reconstruct(id, fields), nil
}

// Save writes all article fields.
func (r *Repo) Save(ctx context.Context, a *domarticle.Article) error {
	key := articleKey(a.ID())
	if err := r.store.HSet(ctx, key, a.Fields()); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Delete removes the article. Deleting a missing article is not an error.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	key := articleKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func articleKey(id uuid.UUID) string {
	return fmt.Sprintf("%sarticle:%s", domain.KeyPrefix, id)
}
