package service

import (
	"context"
	"fmt"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/lock"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/port"
)

// InventoryService is the authoritative ledger for product stock. Every
// mutation runs under that product's registry lock, so reservations and
// releases for one product never interleave.
type InventoryService struct {
	db    port.DatabaseRepository
	locks *lock.Registry
}

func NewInventoryService(db port.DatabaseRepository, locks *lock.Registry) *InventoryService {
	return &InventoryService{db: db, locks: locks}
}

// Reserve decrements the product's stock by quantity. When the decrement
// would drive stock negative, stock is left unchanged and
// domain.ErrInsufficientStock is returned.
func (s *InventoryService) Reserve(ctx context.Context, productID string, quantity int) error {
	mu := s.locks.Get(productID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.db.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}
	if product.StockQuantity < quantity {
		return fmt.Errorf("%w: product %q has %d, requested %d",
			domain.ErrInsufficientStock, product.Name, product.StockQuantity, quantity)
	}

	product.StockQuantity -= quantity
	if err := s.db.SaveProduct(ctx, *product); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// Release restores quantity units of stock unconditionally. Used to restock
// when a pending order is canceled.
func (s *InventoryService) Release(ctx context.Context, productID string, quantity int) error {
	mu := s.locks.Get(productID)
	mu.Lock()
	defer mu.Unlock()

	product, err := s.db.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, productID)
	}

	product.StockQuantity += quantity
	if err := s.db.SaveProduct(ctx, *product); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}
