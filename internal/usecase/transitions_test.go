package usecase

import (
	"testing"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestOrderTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to entities.OrderStatus
		want     bool
	}{
		{entities.OrderStatusPending, entities.OrderStatusConfirmed, true},
		{entities.OrderStatusPending, entities.OrderStatusCancelled, true},
		{entities.OrderStatusPending, entities.OrderStatusDelivered, false},
		{entities.OrderStatusConfirmed, entities.OrderStatusShipped, true},
		{entities.OrderStatusShipped, entities.OrderStatusDelivered, true},
		{entities.OrderStatusShipped, entities.OrderStatusCancelled, false},
		{entities.OrderStatusDelivered, entities.OrderStatusPending, false},
		{entities.OrderStatusCancelled, entities.OrderStatusConfirmed, false},
		// Same-status re-entry is always a permitted no-op transition.
		{entities.OrderStatusShipped, entities.OrderStatusShipped, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OrderTransitionAllowed(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestRequestTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to entities.RequestStatus
		want     bool
	}{
		{entities.RequestStatusPending, entities.RequestStatusReviewing, true},
		{entities.RequestStatusPending, entities.RequestStatusApproved, true},
		{entities.RequestStatusPending, entities.RequestStatusShipped, false},
		{entities.RequestStatusReviewing, entities.RequestStatusRejected, true},
		{entities.RequestStatusApproved, entities.RequestStatusProcessing, true},
		{entities.RequestStatusProcessing, entities.RequestStatusOrdered, true},
		{entities.RequestStatusOrdered, entities.RequestStatusShipped, true},
		{entities.RequestStatusShipped, entities.RequestStatusDelivered, true},
		{entities.RequestStatusRejected, entities.RequestStatusApproved, false},
		{entities.RequestStatusDelivered, entities.RequestStatusPending, false},
		{entities.RequestStatusApproved, entities.RequestStatusApproved, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RequestTransitionAllowed(tt.from, tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
