package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "pending"
	OrderStatusFulfilled         OrderStatus = "fulfilled"
	OrderStatusFulfillmentFailed OrderStatus = "fulfillment_failed"
	OrderStatusCanceled          OrderStatus = "canceled"
)

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusFulfilled, OrderStatusFulfillmentFailed, OrderStatusCanceled:
		return true
	}
	return false
}

// Order is immutable after creation except for Status.
type Order struct {
	ID        string
	Status    OrderStatus
	Items     []OrderItem
	CreatedAt time.Time
}

type OrderItem struct {
	ProductID string
	Quantity  int
}
