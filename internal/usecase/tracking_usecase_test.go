package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingFixture(t *testing.T) (*TrackingUseCase, *memory.OrderRepositoryMemory, *memory.RequestRepositoryMemory) {
	t.Helper()
	orders := memory.NewOrderRepositoryMemory()
	requests := memory.NewRequestRepositoryMemory()
	return NewTrackingUseCase(orders, requests), orders, requests
}

func TestTrackByNumber_Order(t *testing.T) {
	uc, orders, _ := newTrackingFixture(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	order := &entities.Order{
		ID:           "ord-1",
		OrderNumber:  "EC123456001",
		UserID:       "user-1",
		Status:       entities.OrderStatusShipped,
		Subtotal:     45.00,
		ShippingCost: 9.99,
		TaxAmount:    8.55,
		FinalAmount:  63.54,
		ShippingAddr: entities.Address{
			FullName: "Abebe Bikila",
			City:     "Addis Ababa",
			Country:  "Ethiopia",
		},
		Tracking: entities.Tracking{
			Carrier:        "DHL",
			TrackingNumber: "JJD0099",
			Updates: []entities.TrackingUpdate{
				{Status: "confirmed", Message: "Order confirmed", Timestamp: ts},
				{Status: "shipped", Message: "Package shipped", Location: "Frankfurt, Germany", Timestamp: ts.Add(time.Hour)},
			},
		},
	}
	require.NoError(t, orders.Create(ctx, order))

	view, err := uc.TrackByNumber(ctx, "EC123456001")
	require.NoError(t, err)

	assert.Equal(t, "order", view.Kind)
	assert.Equal(t, "shipped", view.Status)
	assert.Equal(t, "DHL", view.Carrier)
	assert.Equal(t, "Abebe Bikila", view.Recipient)
	assert.Equal(t, "Addis Ababa, Ethiopia", view.Destination)
	assert.Equal(t, "€63.54", view.Total)

	require.Len(t, view.Updates, 2)
	assert.True(t, view.Updates[0].Completed)
	assert.True(t, view.Updates[1].Completed)
	assert.Equal(t, ts.Format(time.RFC3339), view.Updates[0].Timestamp)
	assert.Equal(t, "Frankfurt, Germany", view.Updates[1].Location)
}

func TestTrackByNumber_Request(t *testing.T) {
	uc, _, requests := newTrackingFixture(t)
	ctx := context.Background()

	request := &entities.Request{
		ID:            "req-1",
		RequestNumber: "REQ123456001",
		UserID:        "user-1",
		Status:        entities.RequestStatusApproved,
		TotalAmount:   170.00,
		Tracking: entities.Tracking{
			Updates: []entities.TrackingUpdate{
				{Status: "pending", Message: "Request submitted", Timestamp: time.Now()},
			},
		},
	}
	require.NoError(t, requests.Create(ctx, request))

	view, err := uc.TrackByNumber(ctx, "REQ123456001")
	require.NoError(t, err)
	assert.Equal(t, "request", view.Kind)
	assert.Equal(t, "approved", view.Status)
	assert.Equal(t, "€170.00", view.Total)
	require.Len(t, view.Updates, 1)
}

func TestTrackByNumber_Unknown(t *testing.T) {
	uc, _, _ := newTrackingFixture(t)

	_, err := uc.TrackByNumber(context.Background(), "EC000000000")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)

	_, err = uc.TrackByNumber(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidOrderID)
}
