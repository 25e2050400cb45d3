package usecase

import (
	"testing"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCartTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []entities.OrderItem
		wantSubtotal float64
		wantShipping float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name: "below free shipping threshold",
			items: []entities.OrderItem{
				{UnitPrice: 15.00, Quantity: 3},
			},
			wantSubtotal: 45.00,
			wantShipping: 9.99,
			wantTax:      8.55,
			wantTotal:    63.54,
		},
		{
			name: "above free shipping threshold",
			items: []entities.OrderItem{
				{UnitPrice: 20.00, Quantity: 3},
			},
			wantSubtotal: 60.00,
			wantShipping: 0,
			wantTax:      11.40,
			wantTotal:    71.40,
		},
		{
			name: "exactly at threshold still pays shipping",
			items: []entities.OrderItem{
				{UnitPrice: 50.00, Quantity: 1},
			},
			wantSubtotal: 50.00,
			wantShipping: 9.99,
			wantTax:      9.50,
			wantTotal:    69.49,
		},
		{
			name: "multiple lines",
			items: []entities.OrderItem{
				{UnitPrice: 10.50, Quantity: 2},
				{UnitPrice: 4.99, Quantity: 1},
			},
			wantSubtotal: 25.99,
			wantShipping: 9.99,
			wantTax:      4.94,
			wantTotal:    40.92,
		},
		{
			name:         "empty cart",
			items:        nil,
			wantSubtotal: 0,
			wantShipping: 9.99,
			wantTax:      0,
			wantTotal:    9.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := CalculateCartTotals(tt.items)
			assert.Equal(t, tt.wantSubtotal, totals.Subtotal)
			assert.Equal(t, tt.wantShipping, totals.Shipping)
			assert.Equal(t, tt.wantTax, totals.Tax)
			assert.Equal(t, tt.wantTotal, totals.Total)
			assert.Equal(t, totals.Total, Round2(totals.Subtotal+totals.Shipping+totals.Tax))
		})
	}
}

func TestCalculateRequestTotals(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		urgency  entities.Urgency
		wantFee  float64
		wantShip float64
		wantTot  float64
	}{
		{name: "high urgency", base: 100, urgency: entities.UrgencyHigh, wantFee: 15.00, wantShip: 55, wantTot: 170.00},
		{name: "medium urgency", base: 100, urgency: entities.UrgencyMedium, wantFee: 15.00, wantShip: 35, wantTot: 150.00},
		{name: "low urgency", base: 100, urgency: entities.UrgencyLow, wantFee: 15.00, wantShip: 20, wantTot: 135.00},
		{name: "fee rounds to cents", base: 33.33, urgency: entities.UrgencyLow, wantFee: 5.00, wantShip: 20, wantTot: 58.33},
		{name: "zero base", base: 0, urgency: entities.UrgencyMedium, wantFee: 0, wantShip: 35, wantTot: 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := CalculateRequestTotals(tt.base, tt.urgency)
			assert.Equal(t, tt.wantFee, totals.ServiceFee)
			assert.Equal(t, tt.wantShip, totals.Shipping)
			assert.Equal(t, tt.wantTot, totals.Total)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"€100", 100},
		{"100", 100},
		{"  49.99 ", 49.99},
		{"EUR 12,50", 12.50},
		{"1,234.56", 1234.56},
		{"$19.95", 19.95},
		{"free", 0},
		{"", 0},
		{"abc12xyz", 12},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.raw))
		})
	}
}

func TestFormatEUR(t *testing.T) {
	assert.Equal(t, "€63.54", FormatEUR(63.54))
	assert.Equal(t, "€170.00", FormatEUR(170))
}
