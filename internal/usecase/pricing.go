package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
)

// Pricing policy for Germany-based checkout.
const (
	TaxRate               = 0.19
	FreeShippingThreshold = 50.00
	FlatShippingCost      = 9.99

	// Sourcing request policy.
	ServiceFeeRate = 0.15
)

// Urgency tiers map to flat shipping fees, not weight or distance.
var urgencyShipping = map[entities.Urgency]float64{
	entities.UrgencyLow:    20.00,
	entities.UrgencyMedium: 35.00,
	entities.UrgencyHigh:   55.00,
}

type CartTotals struct {
	Subtotal float64
	Shipping float64
	Tax      float64
	Total    float64
}

// CalculateCartTotals derives checkout financials from line items.
// Shipping is free only strictly above the threshold; a subtotal of exactly
// 50.00 still pays the flat rate. Tax applies to the subtotal only.
func CalculateCartTotals(items []entities.OrderItem) CartTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	subtotal = Round2(subtotal)

	shipping := FlatShippingCost
	if subtotal > FreeShippingThreshold {
		shipping = 0
	}

	tax := Round2(subtotal * TaxRate)

	return CartTotals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    Round2(subtotal + shipping + tax),
	}
}

type RequestTotals struct {
	BasePrice  float64
	ServiceFee float64
	Shipping   float64
	Total      float64
}

// CalculateRequestTotals derives sourcing-request financials: a 15% service
// fee on the base price plus an urgency-tier flat shipping fee. Requests are
// not taxed.
func CalculateRequestTotals(basePrice float64, urgency entities.Urgency) RequestTotals {
	base := Round2(basePrice)
	fee := Round2(base * ServiceFeeRate)
	shipping := urgencyShipping[urgency]

	return RequestTotals{
		BasePrice:  base,
		ServiceFee: fee,
		Shipping:   shipping,
		Total:      Round2(base + fee + shipping),
	}
}

// ParsePrice leniently parses user-supplied price text. Currency symbols and
// whitespace are stripped; a comma is treated as the decimal separator when no
// dot is present. Anything unparsable yields 0 rather than an error, matching
// the storefront's tolerant input handling.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-':
			return r
		default:
			return -1
		}
	}, s)

	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatEUR renders an amount for the public tracking view.
func FormatEUR(amount float64) string {
	return fmt.Sprintf("€%.2f", amount)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
