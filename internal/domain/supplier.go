package domain

import (
	"context"
	"strings"
	"time"
)

type Supplier struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	Name    string `gorm:"size:100;not null;index" json:"name"`
	Address string `gorm:"size:200;not null" json:"address"`
	Phone   string `gorm:"size:32;not null" json:"phone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Supplier) TableName() string { return "suppliers" }

func ValidateSupplier(name, address, phone string) error {
	ve := &ValidationError{}
	name = strings.TrimSpace(name)
	if name == "" {
		ve.Add("name", "supplier name is required")
	} else if len(name) > 100 {
		ve.Add("name", "supplier name cannot exceed 100 characters")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		ve.Add("address", "supplier address is required")
	} else if len(address) > 200 {
		ve.Add("address", "address cannot exceed 200 characters")
	}
	if msg := validatePhone(phone); msg != "" {
		ve.Add("phone", msg)
	}
	if ve.Empty() {
		return nil
	}
	return ve
}

type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) error
	FindByID(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context) ([]Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	// CountProducts 返回引用该供应商的商品数
	CountProducts(ctx context.Context, supplierID string) (int64, error)
	// DeleteIfNoProducts 在单个事务里 count+delete，阻断时返回依赖数
	DeleteIfNoProducts(ctx context.Context, supplierID string) (blocking int64, err error)
	Count(ctx context.Context) (int64, error)
}
