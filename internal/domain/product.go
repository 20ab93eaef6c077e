package domain

import "context"

// Product 商品（关系库实体）
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`
	Stock       int     `gorm:"not null;default:0" json:"stock"`
}

func (Product) TableName() string { return "products" }

// ProductRepository 每个查询谓词都是显式手写的，不走命名推导
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error

	SearchByName(ctx context.Context, name string) ([]Product, error)
	PriceBetween(ctx context.Context, min, max float64) ([]Product, error)
	StockGreaterThan(ctx context.Context, stock int) ([]Product, error)
	AvailableAbovePrice(ctx context.Context, minPrice float64) ([]Product, error)
	SearchKeyword(ctx context.Context, keyword string) ([]Product, error)
	WithStockAbove(ctx context.Context, minStock int) ([]Product, error)
}
