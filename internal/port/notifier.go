package port

import "context"

type Notifier interface {
	// Notify attempts to deliver the fulfillment notification for an order.
	// A non-nil error means the attempt failed and may be retried.
	Notify(ctx context.Context, orderID string) error
}
