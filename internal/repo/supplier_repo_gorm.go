package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-inventory/internal/domain"
)

type SupplierRepo struct{ db *gorm.DB }

func NewSupplierRepo(db *gorm.DB) *SupplierRepo { return &SupplierRepo{db: db} }

func (r *SupplierRepo) Create(ctx context.Context, s *domain.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SupplierRepo) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) List(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := r.db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

func (r *SupplierRepo) Update(ctx context.Context, s *domain.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SupplierRepo) CountProducts(ctx context.Context, supplierID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("supplier_id = ?", supplierID).Count(&n).Error
	return n, err
}

// DeleteIfNoProducts 条件删除：count 和 delete 同一个事务，
// 避免「确认页检查通过 → 并发建品 → 删除」的窗口
func (r *SupplierRepo) DeleteIfNoProducts(ctx context.Context, supplierID string) (int64, error) {
	var blocking int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Product{}).
			Where("supplier_id = ?", supplierID).Count(&blocking).Error; err != nil {
			return err
		}
		if blocking > 0 {
			return nil // 不删，调用方看 blocking
		}
		res := tx.Where("id = ?", supplierID).Delete(&domain.Supplier{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return blocking, err
}

func (r *SupplierRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Supplier{}).Count(&n).Error
	return n, err
}
