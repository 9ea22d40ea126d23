package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders successfully placed.",
	})

	OrdersCanceled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_canceled_total",
		Help: "Pending orders canceled by the caller.",
	})

	StockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_insufficient_stock_total",
		Help: "Placements rejected because a line item exceeded available stock.",
	})

	NotificationAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_notification_attempts_total",
		Help: "Notification attempts made by the fulfillment loop, including retries.",
	})

	FulfillmentResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_fulfillment_total",
		Help: "Orders resolved by the fulfillment loop, by terminal status.",
	}, []string{"status"})
)
