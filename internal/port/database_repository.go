package port

import (
	"context"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
)

type DatabaseRepository interface {
	// GetProduct retrieves a product by ID, nil if absent
	GetProduct(ctx context.Context, id string) (*domain.Product, error)

	// GetProductsByIDs retrieves every product whose ID appears in ids;
	// unknown IDs are simply missing from the result map
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)

	CreateProduct(ctx context.Context, product domain.Product) error

	// SaveProduct persists all mutable product fields, including stock quantity
	SaveProduct(ctx context.Context, product domain.Product) error

	DeleteProduct(ctx context.Context, id string) error

	// CreateOrder persists the order and its line items in one transaction
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetOrder retrieves an order with its items, nil if absent
	GetOrder(ctx context.Context, id string) (*domain.Order, error)

	GetOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)

	// UpdateOrderStatus overwrites the order's status; status is the only
	// mutable order field
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
