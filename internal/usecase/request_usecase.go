package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"

	"github.com/google/uuid"
)

const requestNumberPrefix = "REQ"

type RequestUseCase struct {
	requests  repositories.RequestRepository
	publisher EventPublisher
	logger    *logger.Logger
	now       Clock
}

func NewRequestUseCase(
	requests repositories.RequestRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *RequestUseCase {
	return &RequestUseCase{
		requests:  requests,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *RequestUseCase) WithClock(clock Clock) *RequestUseCase {
	uc.now = clock
	return uc
}

type CreateRequestInput struct {
	ProductName    string
	SourceURL      string
	Category       string
	Description    string
	Quantity       int
	Urgency        entities.Urgency
	ProductPrice   string // free-form customer input, e.g. "€100"
}

// CreateRequest registers a cross-border sourcing request and derives its
// financials from the sourcing policy.
func (uc *RequestUseCase) CreateRequest(ctx context.Context, actor Actor, input CreateRequestInput) (*entities.Request, error) {
	if actor.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if input.ProductName == "" {
		return nil, ErrMissingProductName
	}
	if input.SourceURL == "" {
		return nil, ErrMissingSourceURL
	}
	if !entities.ValidUrgency(input.Urgency) {
		return nil, ErrInvalidUrgency
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	price := ParsePrice(input.ProductPrice)
	totals := CalculateRequestTotals(price, input.Urgency)
	now := uc.now()

	number, err := uc.nextRequestNumber(ctx, now)
	if err != nil {
		uc.logger.Warn("Falling back to time-only request number", "error", err)
		number = fmt.Sprintf("%s%06d000", requestNumberPrefix, now.Unix()%1000000)
	}

	request := &entities.Request{
		ID:             uuid.New().String(),
		RequestNumber:  number,
		UserID:         actor.UserID,
		ProductName:    input.ProductName,
		SourceURL:      input.SourceURL,
		Category:       input.Category,
		Description:    input.Description,
		Quantity:       input.Quantity,
		Urgency:        input.Urgency,
		EstimatedPrice: totals.BasePrice,
		ServiceFee:     totals.ServiceFee,
		ShippingCost:   totals.Shipping,
		TotalAmount:    totals.Total,
		Status:         entities.RequestStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	request.Tracking.Append(entities.TrackingUpdate{
		Status:    string(entities.RequestStatusPending),
		Message:   "Request submitted",
		Timestamp: now,
	})

	if err := uc.requests.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	uc.publishRequest(request, "request.created", "Request submitted", "")

	return request, nil
}

func (uc *RequestUseCase) GetRequest(ctx context.Context, actor Actor, requestID string) (*entities.Request, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	request, err := uc.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	if !actor.IsAdmin() && request.UserID != actor.UserID {
		return nil, repositories.ErrRequestNotFound
	}
	return request, nil
}

func (uc *RequestUseCase) ListRequests(ctx context.Context, actor Actor) ([]*entities.Request, error) {
	if actor.UserID == "" {
		return nil, ErrInvalidUserID
	}
	requests, err := uc.requests.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

type RequestStatusInput struct {
	Status     entities.RequestStatus
	Message    string
	Location   string
	AdminNotes string
	FinalPrice *float64
}

// UpdateStatus applies an admin transition on a sourcing request. Milestone
// statuses stamp their first-reached timestamp exactly once; re-entering the
// same status later never moves a stamp.
func (uc *RequestUseCase) UpdateStatus(ctx context.Context, requestID string, input RequestStatusInput) (*entities.Request, error) {
	if requestID == "" {
		return nil, ErrInvalidRequestID
	}
	if !entities.ValidRequestStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	request, err := uc.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request for update: %w", err)
	}
	if !RequestTransitionAllowed(request.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, request.Status, input.Status)
	}

	now := uc.now()
	request.Status = input.Status
	request.UpdatedAt = now
	request.StampReached(input.Status, now)
	if input.AdminNotes != "" {
		request.AdminNotes = input.AdminNotes
	}
	if input.FinalPrice != nil {
		request.FinalPrice = Round2(*input.FinalPrice)
	}

	message := input.Message
	if message == "" {
		message = requestStatusMessage(input.Status)
	}
	request.Tracking.Append(entities.TrackingUpdate{
		Status:    string(input.Status),
		Message:   message,
		Location:  input.Location,
		Timestamp: now,
	})

	if err := uc.requests.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	uc.publishRequest(request, "request.status_changed", message, input.Location)

	return request, nil
}

// CancelRequest is the customer-side withdrawal, allowed while sourcing has
// not progressed past review.
func (uc *RequestUseCase) CancelRequest(ctx context.Context, actor Actor, requestID, reason string) (*entities.Request, error) {
	request, err := uc.GetRequest(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != entities.RequestStatusPending && request.Status != entities.RequestStatusReviewing {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, request.Status)
	}

	now := uc.now()
	request.Status = entities.RequestStatusCancelled
	request.UpdatedAt = now

	message := "Request cancelled by customer"
	if reason != "" {
		message = fmt.Sprintf("Request cancelled by customer: %s", reason)
	}
	request.Tracking.Append(entities.TrackingUpdate{
		Status:    string(entities.RequestStatusCancelled),
		Message:   message,
		Timestamp: now,
	})

	if err := uc.requests.Update(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to cancel request: %w", err)
	}

	uc.publishRequest(request, "request.cancelled", message, "")

	return request, nil
}

func (uc *RequestUseCase) nextRequestNumber(ctx context.Context, now time.Time) (string, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := uc.requests.CountCreatedSince(ctx, midnight)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d%03d", requestNumberPrefix, now.Unix()%1000000, (count+1)%1000), nil
}

func (uc *RequestUseCase) publishRequest(request *entities.Request, event, message, location string) {
	if uc.publisher == nil {
		return
	}
	payload := TrackingEvent{
		EntityID:  request.ID,
		Number:    request.RequestNumber,
		Status:    string(request.Status),
		Message:   message,
		Location:  location,
		Timestamp: request.UpdatedAt,
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.publisher.Publish(pubCtx, request.ID, event, payload); err != nil {
			uc.logger.Warn("Failed to publish tracking event",
				"request_id", request.ID,
				"event", event,
				"error", err)
		}
	}()
}

func requestStatusMessage(status entities.RequestStatus) string {
	switch status {
	case entities.RequestStatusPending:
		return "Request submitted"
	case entities.RequestStatusReviewing:
		return "Request is being reviewed"
	case entities.RequestStatusApproved:
		return "Request approved, awaiting purchase"
	case entities.RequestStatusRejected:
		return "Request rejected"
	case entities.RequestStatusProcessing:
		return "Sourcing in progress"
	case entities.RequestStatusOrdered:
		return "Item ordered from source store"
	case entities.RequestStatusShipped:
		return "Item shipped"
	case entities.RequestStatusDelivered:
		return "Item delivered"
	case entities.RequestStatusCancelled:
		return "Request cancelled"
	default:
		return "Request status updated"
	}
}
