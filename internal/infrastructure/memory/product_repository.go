package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
)

type ProductRepositoryMemory struct {
	mu       sync.RWMutex
	products map[string]*entities.Product
}

func NewProductRepositoryMemory() *ProductRepositoryMemory {
	return &ProductRepositoryMemory{
		products: make(map[string]*entities.Product),
	}
}

func (r *ProductRepositoryMemory) Create(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.Refresh()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *ProductRepositoryMemory) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[productID]
	if !exists {
		return nil, repositories.ErrProductNotFound
	}
	cp := *product
	return &cp, nil
}

func (r *ProductRepositoryMemory) Update(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return repositories.ErrProductNotFound
	}
	product.Refresh()
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *ProductRepositoryMemory) List(ctx context.Context) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Product, 0, len(r.products))
	for _, product := range r.products {
		cp := *product
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ProductRepositoryMemory) AdjustStock(ctx context.Context, productID string, delta int) (*entities.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.products[productID]
	if !exists {
		return nil, repositories.ErrProductNotFound
	}
	if product.Stock+delta < 0 {
		return nil, repositories.ErrInsufficientStock
	}
	product.Stock += delta
	product.Refresh()
	cp := *product
	return &cp, nil
}
