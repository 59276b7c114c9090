package domain

import (
	"context"
	"strings"
	"time"
)

type Product struct {
	ID         string  `gorm:"primaryKey;size:36" json:"id"`
	Name       string  `gorm:"size:100;not null;index" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	Quantity   int     `gorm:"not null;default:0" json:"quantity"`
	SupplierID string  `gorm:"size:36;not null;index" json:"supplierId"`

	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

// TotalValue 派生值，永远现算不落库
func (p *Product) TotalValue() float64 { return p.Price * float64(p.Quantity) }

func ValidateProduct(name string, price float64, quantity int, supplierID string) error {
	ve := &ValidationError{}
	name = strings.TrimSpace(name)
	if name == "" {
		ve.Add("name", "product name is required")
	} else if len(name) > 100 {
		ve.Add("name", "product name cannot exceed 100 characters")
	}
	if price < 0 {
		ve.Add("price", "price must be a positive number")
	}
	if quantity < 0 {
		ve.Add("quantity", "quantity must be a non-negative integer")
	}
	if strings.TrimSpace(supplierID) == "" {
		ve.Add("supplier", "please select a valid supplier")
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

// ProductFilter 首页/接口共用的搜索条件
type ProductFilter struct {
	Name       string // 模糊匹配（大小写不敏感）
	SupplierID string
	Limit      int
}

type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	Search(ctx context.Context, f ProductFilter) ([]Product, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	// SumTotalValue Σ price*quantity，聚合在库内完成
	SumTotalValue(ctx context.Context) (float64, error)
}
