package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/lock"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/port"
)

// ProductService covers catalog management. Writes that touch the stock
// quantity take the product's registry lock so they stay consistent with
// in-flight reservations.
type ProductService struct {
	db    port.DatabaseRepository
	locks *lock.Registry
}

func NewProductService(db port.DatabaseRepository, locks *lock.Registry) *ProductService {
	return &ProductService{db: db, locks: locks}
}

func (s *ProductService) CreateProduct(ctx context.Context, name string, price float64, stockQuantity int) (*domain.Product, error) {
	if stockQuantity < 0 {
		return nil, fmt.Errorf("%w: initial stock cannot be negative", domain.ErrInvalidQuantity)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:            uuid.New().String(),
		Name:          name,
		Price:         price,
		StockQuantity: stockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.db.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.db.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.db.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateProduct overwrites name, price and stock. It holds the product lock
// because the stock field is shared with the reservation path.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, name string, price float64, stockQuantity int) (*domain.Product, error) {
	if stockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidQuantity)
	}

	mu := s.locks.Get(id)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.db.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}

	product.Name = name
	product.Price = price
	product.StockQuantity = stockQuantity
	if err := s.db.SaveProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.db.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err := s.db.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Restock adds quantity units to the product's stock under its lock.
func (s *ProductService) Restock(ctx context.Context, id string, quantity int) (*domain.Product, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	mu := s.locks.Get(id)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.db.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}

	product.StockQuantity += quantity
	if err := s.db.SaveProduct(ctx, *product); err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	return product, nil
}
