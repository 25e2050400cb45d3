package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
)

type RequestRepositoryMemory struct {
	mu       sync.RWMutex
	requests map[string]*entities.Request
}

func NewRequestRepositoryMemory() *RequestRepositoryMemory {
	return &RequestRepositoryMemory{
		requests: make(map[string]*entities.Request),
	}
}

func (r *RequestRepositoryMemory) Create(ctx context.Context, request *entities.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[request.ID]; exists {
		return repositories.ErrRequestAlreadyExists
	}
	r.requests[request.ID] = cloneRequest(request)
	return nil
}

func (r *RequestRepositoryMemory) GetByID(ctx context.Context, requestID string) (*entities.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, exists := r.requests[requestID]
	if !exists {
		return nil, repositories.ErrRequestNotFound
	}
	return cloneRequest(request), nil
}

func (r *RequestRepositoryMemory) GetByNumber(ctx context.Context, requestNumber string) (*entities.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, request := range r.requests {
		if request.RequestNumber == requestNumber {
			return cloneRequest(request), nil
		}
	}
	return nil, repositories.ErrRequestNotFound
}

func (r *RequestRepositoryMemory) Update(ctx context.Context, request *entities.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.requests[request.ID]; !exists {
		return repositories.ErrRequestNotFound
	}
	r.requests[request.ID] = cloneRequest(request)
	return nil
}

func (r *RequestRepositoryMemory) ListByUser(ctx context.Context, userID string) ([]*entities.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Request
	for _, request := range r.requests {
		if request.UserID == userID {
			out = append(out, cloneRequest(request))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RequestRepositoryMemory) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, request := range r.requests {
		if !request.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func cloneRequest(request *entities.Request) *entities.Request {
	out := *request
	out.Tracking.Updates = append([]entities.TrackingUpdate(nil), request.Tracking.Updates...)
	return &out
}
