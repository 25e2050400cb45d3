package payment

import (
	"context"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/sony/gobreaker"
)

// Breaker shields checkout from a misbehaving processor. Declines count as
// normal responses; only transport-level errors trip the breaker.
type Breaker struct {
	gate    usecase.PaymentGate
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
}

func NewBreaker(gate usecase.PaymentGate, log *logger.Logger) *Breaker {
	st := gobreaker.Settings{
		Name:        "PaymentGate",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Breaker{
		gate:    gate,
		cb:      gobreaker.NewCircuitBreaker(st),
		timeout: 5 * time.Second,
	}
}

func (b *Breaker) Authorize(ctx context.Context, req usecase.PaymentRequest) (usecase.PaymentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	res, err := b.cb.Execute(func() (interface{}, error) {
		return b.gate.Authorize(ctx, req)
	})
	if err != nil {
		return usecase.PaymentResult{}, err
	}
	return res.(usecase.PaymentResult), nil
}
