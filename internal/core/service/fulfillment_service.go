package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/core/domain"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/metrics"
	"github.com/RobMinister/Order-Processing-Inventory-Management-System/internal/port"
)

const (
	defaultScanInterval    = 5 * time.Second
	defaultProcessingDelay = 2 * time.Second
	defaultMaxAttempts     = 3
	defaultRetryDelay      = 1 * time.Second
)

type FulfillmentConfig struct {
	// ScanInterval is the pause between scans of the pending orders.
	ScanInterval time.Duration
	// ProcessingDelay simulates per-order processing work.
	ProcessingDelay time.Duration
	// MaxAttempts bounds notification tries per order per scan.
	MaxAttempts int
	// RetryDelay is the wait between failed notification attempts.
	RetryDelay time.Duration
}

func (c FulfillmentConfig) withDefaults() FulfillmentConfig {
	if c.ScanInterval <= 0 {
		c.ScanInterval = defaultScanInterval
	}
	if c.ProcessingDelay <= 0 {
		c.ProcessingDelay = defaultProcessingDelay
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = defaultRetryDelay
	}
	return c
}

// FulfillmentService resolves pending orders to a terminal status in the
// background. It polls the store on a fixed interval, processes the pending
// orders of each scan one at a time, and retries the notification step a
// bounded number of times before giving up on an order.
type FulfillmentService struct {
	db       port.DatabaseRepository
	notifier port.Notifier
	cfg      FulfillmentConfig
}

func NewFulfillmentService(db port.DatabaseRepository, notifier port.Notifier, cfg FulfillmentConfig) *FulfillmentService {
	return &FulfillmentService{db: db, notifier: notifier, cfg: cfg.withDefaults()}
}

// Run blocks until ctx is canceled. Cancellation is observed between scans,
// between orders, and around every delay — never in the middle of a store
// write.
func (s *FulfillmentService) Run(ctx context.Context) {
	log.Info().
		Dur("scan_interval", s.cfg.ScanInterval).
		Int("max_attempts", s.cfg.MaxAttempts).
		Msg("fulfillment loop started")

	for {
		if !wait(ctx, s.cfg.ScanInterval) {
			log.Info().Msg("fulfillment loop stopping")
			return
		}
		s.scan(ctx)
	}
}

func (s *FulfillmentService) scan(ctx context.Context) {
	orders, err := s.db.GetOrdersByStatus(ctx, domain.OrderStatusPending)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pending orders")
		return
	}

	for _, order := range orders {
		if ctx.Err() != nil {
			return
		}
		s.process(ctx, order)
	}
}

// process runs the retry protocol for one order and persists the outcome.
// A store failure is logged and skipped so one bad order cannot stall the
// loop.
func (s *FulfillmentService) process(ctx context.Context, order domain.Order) {
	log.Info().Str("order_id", order.ID).Msg("processing order")

	if !wait(ctx, s.cfg.ProcessingDelay) {
		return
	}

	status := domain.OrderStatusFulfillmentFailed
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		metrics.NotificationAttempts.Inc()
		err := s.notifier.Notify(ctx, order.ID)
		if err == nil {
			status = domain.OrderStatusFulfilled
			break
		}
		log.Warn().
			Err(err).
			Str("order_id", order.ID).
			Int("attempt", attempt).
			Msg("notification attempt failed")

		if attempt < s.cfg.MaxAttempts && !wait(ctx, s.cfg.RetryDelay) {
			return
		}
	}
	if ctx.Err() != nil {
		return
	}

	if status == domain.OrderStatusFulfilled {
		log.Info().Str("order_id", order.ID).Msg("order fulfilled")
	} else {
		log.Error().
			Str("order_id", order.ID).
			Int("attempts", s.cfg.MaxAttempts).
			Msg("giving up on order notification")
	}

	if err := s.db.UpdateOrderStatus(ctx, order.ID, status); err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to persist order status")
		return
	}
	metrics.FulfillmentResults.WithLabelValues(string(status)).Inc()
}

// wait sleeps for d or until ctx is canceled; reports whether the full wait
// elapsed.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
