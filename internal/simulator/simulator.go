package simulator

import (
	"context"
	"sync"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"
)

const (
	DefaultInterval = 60 * time.Second
	DefaultBatch    = 5
)

// stage is one step of the canned delivery progression.
type stage struct {
	status   string
	message  string
	location string
}

var stages = []stage{
	{string(entities.OrderStatusConfirmed), "Order confirmed", "Berlin, Germany"},
	{string(entities.OrderStatusProcessing), "Package is being prepared", "Berlin, Germany"},
	{string(entities.OrderStatusShipped), "Package handed to carrier", "Frankfurt, Germany"},
	{"in_transit", "Package in transit", "Addis Ababa, Ethiopia"},
	{"out_for_delivery", "Out for delivery", "Addis Ababa, Ethiopia"},
	{string(entities.OrderStatusDelivered), "Package delivered", "Addis Ababa, Ethiopia"},
}

// Simulator advances active orders through a fixed delivery progression on a
// ticker, standing in for a carrier feed. It is demo scaffolding: disable it
// in config and wire a real integration against the same repositories and
// publisher without touching the order flow.
type Simulator struct {
	orders    repositories.OrderRepository
	publisher usecase.EventPublisher
	logger    *logger.Logger
	interval  time.Duration
	batch     int
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Simulator)

func WithInterval(d time.Duration) Option {
	return func(s *Simulator) { s.interval = d }
}

func WithBatch(n int) Option {
	return func(s *Simulator) { s.batch = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

func New(orders repositories.OrderRepository, publisher usecase.EventPublisher, log *logger.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		orders:    orders,
		publisher: publisher,
		logger:    log,
		interval:  DefaultInterval,
		batch:     DefaultBatch,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the background loop. Calling Start on a running simulator is
// a no-op.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	s.logger.Info("Tracking simulator started", "interval", s.interval.String(), "batch", s.batch)
}

// Stop halts the loop and waits for the in-flight tick to finish. Idempotent.
func (s *Simulator) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Tracking simulator stopped")
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick advances one batch of active orders. An error on one order is logged
// and does not abort the rest of the batch.
func (s *Simulator) Tick(ctx context.Context) {
	orders, err := s.orders.ListActive(ctx, s.batch)
	if err != nil {
		s.logger.Error("Simulator failed to list active orders", "error", err)
		return
	}

	for _, order := range orders {
		if err := s.advance(ctx, order); err != nil {
			s.logger.Error("Simulator failed to advance order",
				"order_id", order.ID,
				"order_number", order.OrderNumber,
				"error", err)
		}
	}
}

func (s *Simulator) advance(ctx context.Context, order *entities.Order) error {
	// An order's position in the progression is how many updates it already
	// has. Checkout writes none, so a fresh order starts at "confirmed".
	index := len(order.Tracking.Updates)
	if index >= len(stages) {
		return nil
	}
	next := stages[index]

	now := s.now()
	order.UpdatedAt = now
	order.Tracking.Append(entities.TrackingUpdate{
		Status:    next.status,
		Message:   next.message,
		Location:  next.location,
		Timestamp: now,
	})
	if status := entities.OrderStatus(next.status); entities.ValidOrderStatus(status) {
		order.Status = status
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}

	event := usecase.TrackingEvent{
		EntityID:  order.ID,
		Number:    order.OrderNumber,
		Status:    next.status,
		Message:   next.message,
		Location:  next.location,
		Timestamp: now,
	}
	if err := s.publisher.Publish(ctx, order.ID, "order.tracking_update", event); err != nil {
		// The durable log already has the update; subscribers catch up on
		// reconnect.
		s.logger.Warn("Simulator failed to publish tracking event",
			"order_id", order.ID,
			"error", err)
	}
	return nil
}
