package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatusFor(t *testing.T) {
	tests := []struct {
		stock int
		want  StockStatus
	}{
		{-1, StockStatusOutOfStock},
		{0, StockStatusOutOfStock},
		{1, StockStatusLow},
		{5, StockStatusLow},
		{6, StockStatusAvailable},
		{100, StockStatusAvailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StockStatusFor(tt.stock), "stock=%d", tt.stock)
	}
}

func TestProductRefresh(t *testing.T) {
	p := &Product{Stock: 3}
	p.Refresh()
	assert.True(t, p.InStock)
	assert.Equal(t, StockStatusLow, p.StockStatus)

	p.Stock = 0
	p.Refresh()
	assert.False(t, p.InStock)
	assert.Equal(t, StockStatusOutOfStock, p.StockStatus)
}
