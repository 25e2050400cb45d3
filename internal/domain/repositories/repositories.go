package repositories

import (
	"context"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entities.Order, error)
	Update(ctx context.Context, order *entities.Order) error
	ListByUser(ctx context.Context, userID string) ([]*entities.Order, error)
	// ListActive returns up to limit orders whose status is not terminal,
	// oldest first. Used by the tracking simulator.
	ListActive(ctx context.Context, limit int) ([]*entities.Order, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type RequestRepository interface {
	Create(ctx context.Context, request *entities.Request) error
	GetByID(ctx context.Context, requestID string) (*entities.Request, error)
	GetByNumber(ctx context.Context, requestNumber string) (*entities.Request, error)
	Update(ctx context.Context, request *entities.Request) error
	ListByUser(ctx context.Context, userID string) ([]*entities.Request, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, productID string) (*entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	List(ctx context.Context) ([]*entities.Product, error)
	// AdjustStock atomically adds delta to the product's stock and recomputes
	// the derived fields. A negative delta that would take stock below zero
	// fails with ErrInsufficientStock.
	AdjustStock(ctx context.Context, productID string, delta int) (*entities.Product, error)
}

var (
	ErrOrderNotFound        = &RepositoryError{"order not found"}
	ErrOrderAlreadyExists   = &RepositoryError{"order already exists"}
	ErrRequestNotFound      = &RepositoryError{"request not found"}
	ErrRequestAlreadyExists = &RepositoryError{"request already exists"}
	ErrProductNotFound      = &RepositoryError{"product not found"}
	ErrInsufficientStock    = &RepositoryError{"insufficient stock"}
)

type RepositoryError struct {
	message string
}

func (e *RepositoryError) Error() string {
	return e.message
}
