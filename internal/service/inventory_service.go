package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-gin-inventory/internal/core/cache"
	"go-gin-inventory/internal/domain"
	"go-gin-inventory/pkg/utils"
)

const (
	// SearchLimit 搜索结果上限，粗粒度的背压
	SearchLimit       = 50
	lowStockThreshold = 10
	statsCacheKey     = "inventory:stats"
)

type InventoryService struct {
	suppliers domain.SupplierRepository
	products  domain.ProductRepository
	cache     *cache.Cache // 可空（测试）；只用于 Stats
	statsTTL  time.Duration
}

func NewInventoryService(suppliers domain.SupplierRepository, products domain.ProductRepository, c *cache.Cache, statsTTL time.Duration) *InventoryService {
	return &InventoryService{suppliers: suppliers, products: products, cache: c, statsTTL: statsTTL}
}

/* ---------- Supplier ---------- */

type SupplierInput struct {
	Name    string
	Address string
	Phone   string
}

func (s *InventoryService) CreateSupplier(ctx context.Context, in SupplierInput) (*domain.Supplier, error) {
	if err := domain.ValidateSupplier(in.Name, in.Address, in.Phone); err != nil {
		return nil, err
	}
	sup := &domain.Supplier{
		ID:      utils.NewID(),
		Name:    strings.TrimSpace(in.Name),
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *InventoryService) UpdateSupplier(ctx context.Context, id string, in SupplierInput) (*domain.Supplier, error) {
	if err := domain.ValidateSupplier(in.Name, in.Address, in.Phone); err != nil {
		return nil, err
	}
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, &domain.NotFoundError{Resource: "supplier", ID: id}
	}
	sup.Name = strings.TrimSpace(in.Name)
	sup.Address = strings.TrimSpace(in.Address)
	sup.Phone = strings.TrimSpace(in.Phone)
	if err := s.suppliers.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *InventoryService) GetSupplier(ctx context.Context, id string) (*domain.Supplier, []domain.Product, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if sup == nil {
		return nil, nil, &domain.NotFoundError{Resource: "supplier", ID: id}
	}
	products, err := s.products.ListBySupplier(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return sup, products, nil
}

func (s *InventoryService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.suppliers.List(ctx)
}

// CanDeleteSupplier 删除确认页用；真正的删除在 DeleteSupplier 里原子完成
func (s *InventoryService) CanDeleteSupplier(ctx context.Context, id string) (bool, int64, error) {
	n, err := s.suppliers.CountProducts(ctx, id)
	if err != nil {
		return false, 0, err
	}
	return n == 0, n, nil
}

// DeleteSupplier 有在售商品时拒绝，冲突错误里带上阻断数量
func (s *InventoryService) DeleteSupplier(ctx context.Context, id string) error {
	blocking, err := s.suppliers.DeleteIfNoProducts(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &domain.NotFoundError{Resource: "supplier", ID: id}
	}
	if err != nil {
		return err
	}
	if blocking > 0 {
		return &domain.ConflictError{
			Field:    "supplier",
			Message:  "cannot delete supplier with associated products",
			Blocking: blocking,
		}
	}
	return nil
}

/* ---------- Product ---------- */

type ProductInput struct {
	Name       string
	Price      float64
	Quantity   int
	SupplierID string
}

func (s *InventoryService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := domain.ValidateProduct(in.Name, in.Price, in.Quantity, in.SupplierID); err != nil {
		return nil, err
	}
	sup, err := s.suppliers.FindByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		ve := &domain.ValidationError{}
		ve.Add("supplier", "please select a valid supplier")
		return nil, ve
	}
	p := &domain.Product{
		ID:         utils.NewID(),
		Name:       strings.TrimSpace(in.Name),
		Price:      in.Price,
		Quantity:   in.Quantity,
		SupplierID: in.SupplierID,
		Supplier:   sup,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	if err := domain.ValidateProduct(in.Name, in.Price, in.Quantity, in.SupplierID); err != nil {
		return nil, err
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product", ID: id}
	}
	if in.SupplierID != p.SupplierID {
		sup, err := s.suppliers.FindByID(ctx, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			ve := &domain.ValidationError{}
			ve.Add("supplier", "please select a valid supplier")
			return nil, ve
		}
		p.Supplier = sup
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.SupplierID = in.SupplierID
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *InventoryService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Resource: "product", ID: id}
	}
	return p, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// SearchResult 搜索行，totalValue 永远现算
type SearchResult struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Quantity   int    `json:"quantity"`
	TotalValue string `json:"totalValue"`
	Supplier   SupRef `json:"supplier"`
}

type SupRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

func (s *InventoryService) SearchProducts(ctx context.Context, name, supplierID string, limit int) ([]SearchResult, error) {
	if limit <= 0 || limit > SearchLimit {
		limit = SearchLimit
	}
	products, err := s.products.Search(ctx, domain.ProductFilter{
		Name:       name,
		SupplierID: supplierID,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(products))
	for _, p := range products {
		row := SearchResult{
			ID:         p.ID,
			Name:       p.Name,
			Price:      fmt.Sprintf("%.2f", p.Price),
			Quantity:   p.Quantity,
			TotalValue: fmt.Sprintf("%.2f", p.TotalValue()),
		}
		if p.Supplier != nil {
			row.Supplier = SupRef{ID: p.Supplier.ID, Name: p.Supplier.Name}
		}
		out = append(out, row)
	}
	return out, nil
}

/* ---------- Stats ---------- */

type Stats struct {
	TotalProducts    int64   `json:"totalProducts"`
	TotalSuppliers   int64   `json:"totalSuppliers"`
	TotalValue       float64 `json:"totalValue"`
	LowStockProducts int64   `json:"lowStockProducts"`
}

func (s *InventoryService) Stats(ctx context.Context) (*Stats, error) {
	if s.cache == nil {
		return s.computeStats(ctx)
	}
	return cache.GetOrLoadJSON[Stats](s.cache, ctx, statsCacheKey, s.statsTTL, s.computeStats)
}

func (s *InventoryService) computeStats(ctx context.Context) (*Stats, error) {
	totalProducts, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSuppliers, err := s.suppliers.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalValue, err := s.products.SumTotalValue(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalProducts:    totalProducts,
		TotalSuppliers:   totalSuppliers,
		TotalValue:       totalValue,
		LowStockProducts: lowStock,
	}, nil
}
