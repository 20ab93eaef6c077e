package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-crud-portal/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).Find(&ps).Error
	return ps, err
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id).Error
}

// SearchByName 名称子串匹配，不区分大小写
func (r *ProductRepo) SearchByName(ctx context.Context, name string) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Find(&ps).Error
	return ps, err
}

// PriceBetween 价格区间，两端都包含
func (r *ProductRepo) PriceBetween(ctx context.Context, min, max float64) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("price >= ? AND price <= ?", min, max).
		Find(&ps).Error
	return ps, err
}

// StockGreaterThan 严格大于
func (r *ProductRepo) StockGreaterThan(ctx context.Context, stock int) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("stock > ?", stock).
		Find(&ps).Error
	return ps, err
}

// AvailableAbovePrice price > min 且有库存
func (r *ProductRepo) AvailableAbovePrice(ctx context.Context, minPrice float64) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Where("price > ? AND stock > 0", minPrice).
		Find(&ps).Error
	return ps, err
}

// SearchKeyword 在 name / description 上做关键词匹配
func (r *ProductRepo) SearchKeyword(ctx context.Context, keyword string) ([]domain.Product, error) {
	var ps []domain.Product
	like := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Find(&ps).Error
	return ps, err
}

// WithStockAbove 原生 SQL，谓词和排序是接口契约的一部分，别改
func (r *ProductRepo) WithStockAbove(ctx context.Context, minStock int) ([]domain.Product, error) {
	var ps []domain.Product
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM products WHERE stock > ? ORDER BY price ASC", minStock).
		Scan(&ps).Error
	return ps, err
}
