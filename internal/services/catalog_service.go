package services

import (
	"context"
	"strings"

	"eshopadmin/internal/domain"
	"eshopadmin/internal/repos"
)

// CatalogService feeds the category picker of the product form.
type CatalogService struct {
	Cats *repos.CategoryRepo
}

func NewCatalogService(cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Cats: cats}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Cats.List(ctx)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string, page, pageSize int) ([]domain.Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.Invalid("category", "required")
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 25
	}
	offset := (page - 1) * pageSize
	return s.Cats.Products(ctx, category, pageSize, offset)
}
