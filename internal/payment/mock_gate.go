package payment

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultApprovalRate = 0.9
	defaultLatency      = time.Second
)

// MockGate simulates an external card processor: a short network delay
// followed by an approval with fixed probability. Card details missing any of
// number, expiry or CVV are declined before the delay. It exists so the order
// flow can be exercised without a processor account; swap in a real
// usecase.PaymentGate to go live.
type MockGate struct {
	approvalRate float64
	latency      time.Duration

	mu   sync.Mutex
	rand *rand.Rand
}

type MockOption func(*MockGate)

// WithApprovalRate overrides the approval probability (0..1).
func WithApprovalRate(rate float64) MockOption {
	return func(g *MockGate) { g.approvalRate = rate }
}

// WithLatency overrides the simulated processing delay.
func WithLatency(d time.Duration) MockOption {
	return func(g *MockGate) { g.latency = d }
}

// WithSeed makes the outcome sequence deterministic for tests.
func WithSeed(seed int64) MockOption {
	return func(g *MockGate) { g.rand = rand.New(rand.NewSource(seed)) }
}

func NewMockGate(opts ...MockOption) *MockGate {
	g := &MockGate{
		approvalRate: defaultApprovalRate,
		latency:      defaultLatency,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *MockGate) Authorize(ctx context.Context, req usecase.PaymentRequest) (usecase.PaymentResult, error) {
	if req.Card.Number == "" || req.Card.Expiry == "" || req.Card.CVV == "" {
		return usecase.PaymentResult{
			Approved: false,
			Reason:   "card details incomplete",
		}, nil
	}

	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return usecase.PaymentResult{}, ctx.Err()
	}

	g.mu.Lock()
	draw := g.rand.Float64()
	g.mu.Unlock()

	if draw >= g.approvalRate {
		return usecase.PaymentResult{
			Approved: false,
			Reason:   "card declined",
		}, nil
	}

	return usecase.PaymentResult{
		Approved:  true,
		Reference: fmt.Sprintf("PAY-%s", uuid.New().String()),
	}, nil
}
