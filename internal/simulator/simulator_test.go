package simulator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/memory"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []usecase.TrackingEvent
	names  []string
}

func (p *recordingPublisher) Publish(ctx context.Context, key, event string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.names = append(p.names, event)
	if te, ok := payload.(usecase.TrackingEvent); ok {
		p.events = append(p.events, te)
	}
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.names)
}

func seedOrder(t *testing.T, orders *memory.OrderRepositoryMemory, id string, status entities.OrderStatus, updates int) *entities.Order {
	t.Helper()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	order := &entities.Order{
		ID:          id,
		OrderNumber: "EC" + id,
		UserID:      "user-1",
		Status:      status,
		CreatedAt:   base,
	}
	for i := 0; i < updates; i++ {
		order.Tracking.Append(entities.TrackingUpdate{
			Status:    stages[i].status,
			Message:   stages[i].message,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
	}
	require.NoError(t, orders.Create(context.Background(), order))
	return order
}

func TestTick_AdvancesOrderToNextStage(t *testing.T) {
	orders := memory.NewOrderRepositoryMemory()
	pub := &recordingPublisher{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sim := New(orders, pub, logger.NewLogger(), WithClock(func() time.Time { return now }))

	// Two updates already written means the order sits before stage two.
	seedOrder(t, orders, "ord-1", entities.OrderStatusProcessing, 2)

	sim.Tick(context.Background())

	got, err := orders.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusShipped, got.Status)
	require.Len(t, got.Tracking.Updates, 3)
	assert.Equal(t, "shipped", got.Tracking.Updates[2].Status)
	assert.Equal(t, "Frankfurt, Germany", got.Tracking.Updates[2].Location)
	assert.Equal(t, now, got.Tracking.Updates[2].Timestamp)

	require.Equal(t, 1, pub.count())
	assert.Equal(t, "order.tracking_update", pub.names[0])
	assert.Equal(t, "ord-1", pub.events[0].EntityID)
	assert.Equal(t, "shipped", pub.events[0].Status)
}

func TestTick_FreshOrderStartsAtConfirmed(t *testing.T) {
	orders := memory.NewOrderRepositoryMemory()
	pub := &recordingPublisher{}
	sim := New(orders, pub, logger.NewLogger())

	seedOrder(t, orders, "ord-1", entities.OrderStatusPending, 0)

	sim.Tick(context.Background())

	got, _ := orders.GetByID(context.Background(), "ord-1")
	assert.Equal(t, entities.OrderStatusConfirmed, got.Status)
	require.Len(t, got.Tracking.Updates, 1)
	assert.Equal(t, "confirmed", got.Tracking.Updates[0].Status)
}

func TestTick_SkipsTerminalOrders(t *testing.T) {
	orders := memory.NewOrderRepositoryMemory()
	pub := &recordingPublisher{}
	sim := New(orders, pub, logger.NewLogger())

	seedOrder(t, orders, "ord-done", entities.OrderStatusDelivered, len(stages))
	seedOrder(t, orders, "ord-gone", entities.OrderStatusCancelled, 1)

	sim.Tick(context.Background())

	assert.Equal(t, 0, pub.count())
	got, _ := orders.GetByID(context.Background(), "ord-done")
	assert.Len(t, got.Tracking.Updates, len(stages))
}

func TestTick_RespectsBatchLimit(t *testing.T) {
	orders := memory.NewOrderRepositoryMemory()
	pub := &recordingPublisher{}
	sim := New(orders, pub, logger.NewLogger(), WithBatch(2))

	seedOrder(t, orders, "ord-1", entities.OrderStatusPending, 0)
	seedOrder(t, orders, "ord-2", entities.OrderStatusPending, 0)
	seedOrder(t, orders, "ord-3", entities.OrderStatusPending, 0)

	sim.Tick(context.Background())

	assert.Equal(t, 2, pub.count())
}

type failingUpdateRepo struct {
	*memory.OrderRepositoryMemory
	failID string
}

func (r *failingUpdateRepo) Update(ctx context.Context, order *entities.Order) error {
	if order.ID == r.failID {
		return errors.New("write conflict")
	}
	return r.OrderRepositoryMemory.Update(ctx, order)
}

func TestTick_OneFailureDoesNotAbortBatch(t *testing.T) {
	mem := memory.NewOrderRepositoryMemory()
	orders := &failingUpdateRepo{OrderRepositoryMemory: mem, failID: "ord-bad"}
	pub := &recordingPublisher{}
	sim := New(orders, pub, logger.NewLogger())

	// Oldest first, so the failing order is visited before the healthy one.
	bad := seedOrder(t, mem, "ord-bad", entities.OrderStatusPending, 0)
	good := seedOrder(t, mem, "ord-good", entities.OrderStatusPending, 0)
	good.CreatedAt = bad.CreatedAt.Add(time.Minute)
	require.NoError(t, mem.Update(context.Background(), good))

	sim.Tick(context.Background())

	got, _ := mem.GetByID(context.Background(), "ord-good")
	assert.Len(t, got.Tracking.Updates, 1)
	assert.Equal(t, 1, pub.count())
}

func TestStartStop(t *testing.T) {
	orders := memory.NewOrderRepositoryMemory()
	pub := &recordingPublisher{}
	sim := New(orders, pub, logger.NewLogger(), WithInterval(5*time.Millisecond))

	seedOrder(t, orders, "ord-1", entities.OrderStatusPending, 0)

	sim.Start(context.Background())
	// Starting twice is a no-op.
	sim.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for pub.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected at least one tick before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}

	sim.Stop()
	// Stopping twice is a no-op.
	sim.Stop()

	settled := pub.count()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, pub.count())
}
