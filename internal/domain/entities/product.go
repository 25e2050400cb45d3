package entities

import "time"

const lowStockThreshold = 5

type StockStatus string

const (
	StockStatusAvailable  StockStatus = "Available"
	StockStatusLow        StockStatus = "Low Stock"
	StockStatusOutOfStock StockStatus = "Out of Stock"
)

// Product is a catalog item. InStock and StockStatus are derived from Stock
// alone; Refresh recomputes them and every repository calls it before persisting
// so they can never drift from the count.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price"`
	Image       string      `json:"image,omitempty"`
	Category    string      `json:"category,omitempty"`
	Stock       int         `json:"stock"`
	InStock     bool        `json:"in_stock"`
	StockStatus StockStatus `json:"stock_status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Refresh recomputes the derived stock fields from Stock.
func (p *Product) Refresh() {
	p.InStock = p.Stock > 0
	p.StockStatus = StockStatusFor(p.Stock)
}

// StockStatusFor maps a stock count to its display status.
func StockStatusFor(stock int) StockStatus {
	switch {
	case stock <= 0:
		return StockStatusOutOfStock
	case stock <= lowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusAvailable
	}
}
