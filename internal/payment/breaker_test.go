package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGate struct {
	result usecase.PaymentResult
	err    error
	calls  int
}

func (s *stubGate) Authorize(ctx context.Context, req usecase.PaymentRequest) (usecase.PaymentResult, error) {
	s.calls++
	return s.result, s.err
}

func TestBreaker_PassesResultsThrough(t *testing.T) {
	gate := &stubGate{result: usecase.PaymentResult{Approved: true, Reference: "PAY-1"}}
	b := NewBreaker(gate, logger.NewLogger())

	res, err := b.Authorize(context.Background(), usecase.PaymentRequest{Amount: 10})
	require.NoError(t, err)
	assert.True(t, res.Approved)
	assert.Equal(t, "PAY-1", res.Reference)
	assert.Equal(t, 1, gate.calls)
}

func TestBreaker_DeclineDoesNotTrip(t *testing.T) {
	gate := &stubGate{result: usecase.PaymentResult{Approved: false, Reason: "card declined"}}
	b := NewBreaker(gate, logger.NewLogger())

	for i := 0; i < 10; i++ {
		res, err := b.Authorize(context.Background(), usecase.PaymentRequest{Amount: 10})
		require.NoError(t, err)
		assert.False(t, res.Approved)
	}
	assert.Equal(t, 10, gate.calls)
}

func TestBreaker_OpensOnRepeatedTransportErrors(t *testing.T) {
	gate := &stubGate{err: errors.New("connection refused")}
	b := NewBreaker(gate, logger.NewLogger())

	for i := 0; i < 5; i++ {
		_, err := b.Authorize(context.Background(), usecase.PaymentRequest{Amount: 10})
		require.Error(t, err)
	}

	// The breaker is open now and fails fast without touching the gate.
	callsBefore := gate.calls
	_, err := b.Authorize(context.Background(), usecase.PaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, callsBefore, gate.calls)
}
