package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type requestFixture struct {
	requests *memory.RequestRepositoryMemory
	pub      *MockPublisher
	uc       *RequestUseCase
	now      time.Time
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	f := &requestFixture{
		requests: memory.NewRequestRepositoryMemory(),
		pub:      &MockPublisher{},
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.uc = NewRequestUseCase(f.requests, f.pub, logger.NewLogger()).
		WithClock(func() time.Time { return f.now })
	return f
}

func (f *requestFixture) create(t *testing.T) *entities.Request {
	t.Helper()
	request, err := f.uc.CreateRequest(context.Background(), Actor{UserID: "user-1"}, CreateRequestInput{
		ProductName:  "Bosch cordless drill",
		SourceURL:    "https://example.de/drill",
		Urgency:      entities.UrgencyHigh,
		ProductPrice: "€100",
	})
	require.NoError(t, err)
	return request
}

func TestCreateRequest_DerivesSourcingTotals(t *testing.T) {
	f := newRequestFixture(t)
	request := f.create(t)

	assert.Equal(t, 100.00, request.EstimatedPrice)
	assert.Equal(t, 15.00, request.ServiceFee)
	assert.Equal(t, 55.00, request.ShippingCost)
	assert.Equal(t, 170.00, request.TotalAmount)
	assert.Equal(t, entities.RequestStatusPending, request.Status)
	assert.Equal(t, 1, request.Quantity)
	assert.Regexp(t, `^REQ\d{9}$`, request.RequestNumber)

	// Submission writes the first tracking entry.
	require.Len(t, request.Tracking.Updates, 1)
	assert.Equal(t, "pending", request.Tracking.Updates[0].Status)
}

func TestCreateRequest_Validation(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   CreateRequestInput
		wantErr error
	}{
		{
			name:    "missing product name",
			input:   CreateRequestInput{SourceURL: "https://example.de/x", Urgency: entities.UrgencyLow},
			wantErr: ErrMissingProductName,
		},
		{
			name:    "missing source url",
			input:   CreateRequestInput{ProductName: "x", Urgency: entities.UrgencyLow},
			wantErr: ErrMissingSourceURL,
		},
		{
			name:    "bad urgency",
			input:   CreateRequestInput{ProductName: "x", SourceURL: "https://example.de/x", Urgency: "asap"},
			wantErr: ErrInvalidUrgency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request, err := f.uc.CreateRequest(ctx, Actor{UserID: "user-1"}, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, request)
		})
	}
}

func TestRequestUpdateStatus_StampsMilestoneOnce(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	request := f.create(t)

	firstNow := f.now.Add(time.Hour)
	f.now = firstNow
	updated, err := f.uc.UpdateStatus(ctx, request.ID, RequestStatusInput{Status: entities.RequestStatusApproved})
	require.NoError(t, err)
	require.NotNil(t, updated.ApprovedAt)
	assert.True(t, updated.ApprovedAt.Equal(firstNow))

	// Re-entering the same status appends an update but keeps the stamp.
	f.now = f.now.Add(time.Hour)
	updated, err = f.uc.UpdateStatus(ctx, request.ID, RequestStatusInput{Status: entities.RequestStatusApproved})
	require.NoError(t, err)
	assert.True(t, updated.ApprovedAt.Equal(firstNow))
	assert.Len(t, updated.Tracking.Updates, 3)
}

func TestRequestUpdateStatus_TransitionTable(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	request := f.create(t)

	// pending cannot jump straight to delivered.
	_, err := f.uc.UpdateStatus(ctx, request.ID, RequestStatusInput{Status: entities.RequestStatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The happy path walks the whole pipeline and stamps each milestone.
	for _, status := range []entities.RequestStatus{
		entities.RequestStatusReviewing,
		entities.RequestStatusApproved,
		entities.RequestStatusProcessing,
		entities.RequestStatusOrdered,
		entities.RequestStatusShipped,
		entities.RequestStatusDelivered,
	} {
		f.now = f.now.Add(time.Minute)
		_, err = f.uc.UpdateStatus(ctx, request.ID, RequestStatusInput{Status: status})
		require.NoError(t, err, "transition to %s", status)
	}

	final, err := f.requests.GetByID(ctx, request.ID)
	require.NoError(t, err)
	assert.NotNil(t, final.ApprovedAt)
	assert.NotNil(t, final.ProcessedAt)
	assert.NotNil(t, final.DeliveredAt)

	// Terminal status: nothing moves anymore.
	_, err = f.uc.UpdateStatus(ctx, request.ID, RequestStatusInput{Status: entities.RequestStatusPending})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRequestUpdateStatus_FinalPriceAndNotes(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	request := f.create(t)

	price := 89.99
	updated, err := f.uc.UpdateStatus(ctx, request.ID, RequestStatusInput{
		Status:     entities.RequestStatusReviewing,
		AdminNotes: "found it cheaper",
		FinalPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, 89.99, updated.FinalPrice)
	assert.Equal(t, "found it cheaper", updated.AdminNotes)
}

func TestCancelRequest(t *testing.T) {
	f := newRequestFixture(t)
	ctx := context.Background()
	request := f.create(t)

	cancelled, err := f.uc.CancelRequest(ctx, Actor{UserID: "user-1"}, request.ID, "no longer needed")
	require.NoError(t, err)
	assert.Equal(t, entities.RequestStatusCancelled, cancelled.Status)

	// Once sourcing has started the customer cannot withdraw.
	f2 := newRequestFixture(t)
	r2 := f2.create(t)
	_, err = f2.uc.UpdateStatus(ctx, r2.ID, RequestStatusInput{Status: entities.RequestStatusApproved})
	require.NoError(t, err)
	_, err = f2.uc.CancelRequest(ctx, Actor{UserID: "user-1"}, r2.ID, "")
	assert.ErrorIs(t, err, ErrNotCancellable)
}
