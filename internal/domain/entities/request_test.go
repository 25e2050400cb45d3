package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampReached_FirstReachOnly(t *testing.T) {
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	r := &Request{}
	r.StampReached(RequestStatusApproved, first)
	require.NotNil(t, r.ApprovedAt)
	assert.Equal(t, first, *r.ApprovedAt)

	// Re-entering the milestone keeps the original stamp.
	r.StampReached(RequestStatusApproved, later)
	assert.Equal(t, first, *r.ApprovedAt)

	r.StampReached(RequestStatusProcessing, later)
	r.StampReached(RequestStatusDelivered, later)
	require.NotNil(t, r.ProcessedAt)
	require.NotNil(t, r.DeliveredAt)
	assert.Equal(t, later, *r.ProcessedAt)
	assert.Equal(t, later, *r.DeliveredAt)
}

func TestStampReached_IgnoresNonMilestones(t *testing.T) {
	r := &Request{}
	r.StampReached(RequestStatusReviewing, time.Now())
	r.StampReached(RequestStatusCancelled, time.Now())
	assert.Nil(t, r.ApprovedAt)
	assert.Nil(t, r.ProcessedAt)
	assert.Nil(t, r.DeliveredAt)
}

func TestRequestStatusTerminal(t *testing.T) {
	assert.True(t, RequestStatusRejected.Terminal())
	assert.True(t, RequestStatusDelivered.Terminal())
	assert.True(t, RequestStatusCancelled.Terminal())
	assert.False(t, RequestStatusPending.Terminal())
	assert.False(t, RequestStatusShipped.Terminal())
}
