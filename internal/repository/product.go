package repository

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/vitrine/internal/domain"
	"github.com/yizeng/gab/gin/vitrine/internal/repository/dao"
)

var (
	ErrBackendUnavailable = dao.ErrBackendUnavailable
	ErrUnexpectedStatus   = dao.ErrUnexpectedStatus
	ErrMalformedResponse  = dao.ErrMalformedResponse
)

type ProductDAO interface {
	FetchAll(ctx context.Context) ([]dao.Product, error)
}

type ProductRepository struct {
	dao ProductDAO
}

func NewProductRepository(dao ProductDAO) *ProductRepository {
	return &ProductRepository{
		dao: dao,
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	found, err := r.dao.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FetchAll -> %w", err)
	}

	products := make([]domain.Product, 0, len(found))
	for _, p := range found {
		products = append(products, r.daoToDomain(p))
	}

	return products, nil
}

func (r *ProductRepository) daoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:       string(p.ID),
		Name:     p.Name,
		Price:    p.Price,
		Discount: p.Discount,
	}
}
