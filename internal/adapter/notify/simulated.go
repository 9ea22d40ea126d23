package notify

import (
	"context"
	"errors"
	"math/rand"

	"github.com/rs/zerolog/log"
)

var ErrDeliveryFailed = errors.New("simulated notification failure")

// Simulated models an unreliable external notification channel: each attempt
// fails independently with probability failureRate.
type Simulated struct {
	failureRate float64
}

func NewSimulated(failureRate float64) *Simulated {
	return &Simulated{failureRate: failureRate}
}

func (s *Simulated) Notify(ctx context.Context, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rand.Float64() < s.failureRate {
		return ErrDeliveryFailed
	}

	log.Info().Str("order_id", orderID).Msg("notification delivered")
	return nil
}
