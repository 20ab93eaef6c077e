package service

import (
	"context"
	"time"

	"go-crud-portal/internal/core/cache"
	"go-crud-portal/internal/domain"
)

const productListKey = "products:all"

// ProductService 商品目录只读投影 + 基础 CRUD。
// cache 可以为 nil（portal 进程不挂 redis）。
type ProductService struct {
	repo  domain.ProductRepository
	cache *cache.Cache
	ttl   time.Duration
}

func NewProductService(repo domain.ProductRepository, c *cache.Cache, ttl time.Duration) *ProductService {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ProductService{repo: repo, cache: c, ttl: ttl}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		return s.repo.List(ctx)
	}
	out, err := cache.GetOrLoadJSON[[]domain.Product](s.cache, ctx, productListKey, s.ttl,
		func(ctx context.Context) (*[]domain.Product, error) {
			ps, e := s.repo.List(ctx)
			if e != nil {
				return nil, e
			}
			return &ps, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return *out, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *ProductService) PriceBetween(ctx context.Context, min, max float64) ([]domain.Product, error) {
	return s.repo.PriceBetween(ctx, min, max)
}

func (s *ProductService) StockGreaterThan(ctx context.Context, stock int) ([]domain.Product, error) {
	return s.repo.StockGreaterThan(ctx, stock)
}

func (s *ProductService) AvailableAbovePrice(ctx context.Context, minPrice float64) ([]domain.Product, error) {
	return s.repo.AvailableAbovePrice(ctx, minPrice)
}

func (s *ProductService) SearchKeyword(ctx context.Context, keyword string) ([]domain.Product, error) {
	return s.repo.SearchKeyword(ctx, keyword)
}

func (s *ProductService) WithStockAbove(ctx context.Context, minStock int) ([]domain.Product, error) {
	return s.repo.WithStockAbove(ctx, minStock)
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Del(ctx, productListKey)
	}
}
