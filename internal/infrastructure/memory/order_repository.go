package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
)

// OrderRepositoryMemory keeps orders in a map. Used by tests and local runs
// without MongoDB.
type OrderRepositoryMemory struct {
	mu     sync.RWMutex
	orders map[string]*entities.Order
}

func NewOrderRepositoryMemory() *OrderRepositoryMemory {
	return &OrderRepositoryMemory{
		orders: make(map[string]*entities.Order),
	}
}

func (r *OrderRepositoryMemory) Create(ctx context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return repositories.ErrOrderAlreadyExists
	}

	r.orders[order.ID] = storeOrder(order)
	return nil
}

func (r *OrderRepositoryMemory) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[orderID]
	if !exists {
		return nil, repositories.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *OrderRepositoryMemory) GetByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return cloneOrder(order), nil
		}
	}
	return nil, repositories.ErrOrderNotFound
}

func (r *OrderRepositoryMemory) Update(ctx context.Context, order *entities.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return repositories.ErrOrderNotFound
	}
	r.orders[order.ID] = storeOrder(order)
	return nil
}

func (r *OrderRepositoryMemory) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			out = append(out, cloneOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *OrderRepositoryMemory) ListActive(ctx context.Context, limit int) ([]*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Order
	for _, order := range r.orders {
		if !order.Status.Terminal() {
			out = append(out, cloneOrder(order))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *OrderRepositoryMemory) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if !order.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func cloneOrder(order *entities.Order) *entities.Order {
	out := *order
	out.Items = append([]entities.OrderItem(nil), order.Items...)
	out.Tracking.Updates = append([]entities.TrackingUpdate(nil), order.Tracking.Updates...)
	return &out
}

// storeOrder prepares an order for persistence. FinalAmount is always
// re-derived from its parts, matching what the mongo repository does when it
// builds the document.
func storeOrder(order *entities.Order) *entities.Order {
	out := cloneOrder(order)
	out.FinalAmount = out.Subtotal + out.ShippingCost + out.TaxAmount
	return out
}
