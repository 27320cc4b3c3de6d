package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contentd/internal/domain"
	domarticle "github.com/kailas-cloud/contentd/internal/domain/article"
	logpkg "github.com/kailas-cloud/contentd/internal/logger"
)

// Service loads articles by identifier.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates an article service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logpkg.ForComponent(logger, "ArticleService"),
	}
}

// Lookup returns the article for id. It never returns (nil, nil):
// a missing article fails with domain.ErrArticleNotFound.
func (s *Service) Lookup(ctx context.Context, id uuid.UUID) (*domarticle.Article, error) {
	s.logger.Info("Loading article", zap.Stringer("article_id", id))

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return nil, fmt.Errorf("article %s: %w", id, err)
		}
		return nil, fmt.Errorf("lookup article %s: %w", id, err)
	}
	if a == nil {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrArticleNotFound)
	}
	return a, nil
}

// Save stores an article, replacing any fields already present.
func (s *Service) Save(ctx context.Context, a *domarticle.Article) error {
	if err := s.repo.Save(ctx, a); err != nil {
		return fmt.Errorf("save article %s: %w", a.ID(), err)
	}
	return nil
}

// Delete removes the article for id.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Deleting article", zap.Stringer("article_id", id))
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	return nil
}
