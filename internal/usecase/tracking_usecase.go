package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
)

// TrackingView is the read-only projection served on the public tracking page.
// It is looked up by the human-readable number, carries no account identifiers
// beyond the recipient name, and formats money for display.
type TrackingView struct {
	// EntityID keys the live broadcast channel and stays off the wire.
	EntityID string `json:"-"`

	Number            string          `json:"number"`
	Kind              string          `json:"kind"` // "order" or "request"
	Status            string          `json:"status"`
	Carrier           string          `json:"carrier,omitempty"`
	TrackingNumber    string          `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time      `json:"estimated_delivery,omitempty"`
	Recipient         string          `json:"recipient,omitempty"`
	Destination       string          `json:"destination,omitempty"`
	Total             string          `json:"total"`
	Updates           []TrackingStage `json:"updates"`
}

// TrackingStage is the stable wire shape of one history entry.
type TrackingStage struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Location  string `json:"location,omitempty"`
	Timestamp string `json:"timestamp"`
	Completed bool   `json:"completed"`
}

type TrackingUseCase struct {
	orders   repositories.OrderRepository
	requests repositories.RequestRepository
}

func NewTrackingUseCase(orders repositories.OrderRepository, requests repositories.RequestRepository) *TrackingUseCase {
	return &TrackingUseCase{orders: orders, requests: requests}
}

// TrackByNumber resolves a public order or request number to its tracking
// view. Order numbers are tried first, then request numbers; both misses
// collapse into the same not-found.
func (uc *TrackingUseCase) TrackByNumber(ctx context.Context, number string) (*TrackingView, error) {
	if number == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := uc.orders.GetByNumber(ctx, number)
	if err == nil {
		return orderTrackingView(order), nil
	}
	if !errors.Is(err, repositories.ErrOrderNotFound) {
		return nil, fmt.Errorf("failed to look up tracking number: %w", err)
	}

	request, err := uc.requests.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repositories.ErrRequestNotFound) {
			return nil, repositories.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to look up tracking number: %w", err)
	}
	return requestTrackingView(request), nil
}

func orderTrackingView(order *entities.Order) *TrackingView {
	return &TrackingView{
		EntityID:          order.ID,
		Number:            order.OrderNumber,
		Kind:              "order",
		Status:            string(order.Status),
		Carrier:           order.Tracking.Carrier,
		TrackingNumber:    order.Tracking.TrackingNumber,
		EstimatedDelivery: order.Tracking.EstimatedDelivery,
		Recipient:         order.ShippingAddr.FullName,
		Destination:       destination(order.ShippingAddr),
		Total:             FormatEUR(order.FinalAmount),
		Updates:           stages(order.Tracking.Updates),
	}
}

func requestTrackingView(request *entities.Request) *TrackingView {
	return &TrackingView{
		EntityID:          request.ID,
		Number:            request.RequestNumber,
		Kind:              "request",
		Status:            string(request.Status),
		Carrier:           request.Tracking.Carrier,
		TrackingNumber:    request.Tracking.TrackingNumber,
		EstimatedDelivery: request.Tracking.EstimatedDelivery,
		Total:             FormatEUR(request.TotalAmount),
		Updates:           stages(request.Tracking.Updates),
	}
}

func stages(updates []entities.TrackingUpdate) []TrackingStage {
	out := make([]TrackingStage, len(updates))
	for i, u := range updates {
		out[i] = TrackingStage{
			Status:    u.Status,
			Message:   u.Message,
			Location:  u.Location,
			Timestamp: u.Timestamp.Format(time.RFC3339),
			Completed: true,
		}
	}
	return out
}

func destination(addr entities.Address) string {
	if addr.City == "" {
		return addr.Country
	}
	if addr.Country == "" {
		return addr.City
	}
	return addr.City + ", " + addr.Country
}
