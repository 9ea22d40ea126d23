package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/metrics"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/port"
)

const idempotencyKeyPrefix = "order:request:"

type OrderService struct {
	db        port.DatabaseRepository
	cache     port.CacheRepository
	inventory *InventoryService
}

func NewOrderService(db port.DatabaseRepository, cache port.CacheRepository, inventory *InventoryService) *OrderService {
	return &OrderService{db: db, cache: cache, inventory: inventory}
}

// PlaceOrder validates the request, reserves stock for each line item and
// persists a new pending order. requestID is an optional client-supplied
// deduplication token; pass "" to skip the idempotency check.
//
// Locks are taken one item at a time, in the order the caller listed the
// items, and released before the next item is touched. Reservations already
// made in this call are not rolled back when a later item fails — the caller
// sees the error and the earlier decrements stand.
func (s *OrderService) PlaceOrder(ctx context.Context, requestID string, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", domain.ErrInvalidQuantity, item.ProductID)
		}
	}

	if requestID != "" {
		ok, err := s.cache.SetIdempotency(ctx, idempotencyKeyPrefix+requestID)
		if err != nil {
			return nil, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return nil, domain.ErrDuplicateRequest
		}
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.db.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	for _, item := range items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, item.ProductID)
		}
	}

	for i, item := range items {
		if err := s.inventory.Reserve(ctx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				metrics.StockRejections.Inc()
				if i > 0 {
					log.Warn().
						Str("product_id", item.ProductID).
						Int("items_already_reserved", i).
						Msg("placement aborted with earlier reservations left in place")
				}
			}
			return nil, err
		}
	}

	order := domain.Order{
		ID:        uuid.New().String(),
		Status:    domain.OrderStatusPending,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersPlaced.Inc()
	return &order, nil
}

// CancelOrder restores the reserved stock of a pending order and marks it
// canceled. Orders in any other status are rejected untouched.
func (s *OrderService) CancelOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.db.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrOrderNotPending
	}

	for _, item := range order.Items {
		err := s.inventory.Release(ctx, item.ProductID, item.Quantity)
		if errors.Is(err, domain.ErrProductNotFound) {
			// The product was deleted after the order was placed; there is
			// nothing left to restock.
			log.Warn().
				Str("order_id", id).
				Str("product_id", item.ProductID).
				Msg("skipping restock of deleted product")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("release stock: %w", err)
		}
	}

	if err := s.db.UpdateOrderStatus(ctx, id, domain.OrderStatusCanceled); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = domain.OrderStatusCanceled

	metrics.OrdersCanceled.Inc()
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.db.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, id)
	}
	return order, nil
}
