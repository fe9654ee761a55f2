package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/vitrine/internal/domain"
	"github.com/yizeng/gab/gin/vitrine/internal/render"
	"github.com/yizeng/gab/gin/vitrine/internal/repository"
)

var (
	ErrBackendUnavailable = repository.ErrBackendUnavailable
	ErrUnexpectedStatus   = repository.ErrUnexpectedStatus
	ErrMalformedResponse  = repository.ErrMalformedResponse
)

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// ShowcaseService loads the product list once per display and hands it to
// the renderer.
type ShowcaseService struct {
	repo ProductRepository
}

func NewShowcaseService(repo ProductRepository) *ShowcaseService {
	return &ShowcaseService{
		repo: repo,
	}
}

func (s *ShowcaseService) Load(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	zap.L().Debug("products loaded", zap.Int("count", len(products)))

	return products, nil
}

func (s *ShowcaseService) Lines(ctx context.Context) ([]render.Line, error) {
	products, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return render.Render(products), nil
}
