package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingAppend_ClampsBackwardsTimestamps(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	var tr Tracking
	tr.Append(TrackingUpdate{Status: "confirmed", Timestamp: base})
	tr.Append(TrackingUpdate{Status: "processing", Timestamp: base.Add(time.Hour)})
	// A wall clock reading behind the last entry gets clamped forward.
	tr.Append(TrackingUpdate{Status: "shipped", Timestamp: base.Add(-time.Hour)})

	require.Len(t, tr.Updates, 3)
	assert.Equal(t, base.Add(time.Hour), tr.Updates[2].Timestamp)
	for i := 1; i < len(tr.Updates); i++ {
		assert.False(t, tr.Updates[i].Timestamp.Before(tr.Updates[i-1].Timestamp))
	}
}

func TestTrackingLastUpdate(t *testing.T) {
	var tr Tracking
	_, ok := tr.LastUpdate()
	assert.False(t, ok)

	tr.Append(TrackingUpdate{Status: "confirmed"})
	tr.Append(TrackingUpdate{Status: "shipped"})
	last, ok := tr.LastUpdate()
	require.True(t, ok)
	assert.Equal(t, "shipped", last.Status)
}
