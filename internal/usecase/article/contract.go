package article

import (
	"context"

	"github.com/google/uuid"

	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
)

// Repository defines the storage contract for articles.
// Get returns domain.ErrArticleNotFound when no article exists for id.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*domarticle.Article, error)
	Save(ctx context.Context, a *domarticle.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}
