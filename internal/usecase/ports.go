package usecase

import (
	"context"
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
)

// PaymentGate is the boundary to the payment processor. The shipped
// implementation is a simulator with a randomized outcome; a real processor
// can be substituted without touching the order flow.
type PaymentGate interface {
	Authorize(ctx context.Context, req PaymentRequest) (PaymentResult, error)
}

type PaymentRequest struct {
	Amount float64
	Method entities.PaymentMethod
	Card   CardDetails
}

type CardDetails struct {
	Number string
	Expiry string
	CVV    string
	Holder string
}

type PaymentResult struct {
	Approved  bool
	Reference string
	Reason    string
}

// EventPublisher pushes tracking mutations to subscribed clients, keyed by
// entity identity. Delivery is best-effort: the entity's own tracking log is
// the source of truth a client reconciles against on reconnect.
type EventPublisher interface {
	Publish(ctx context.Context, key, event string, payload any) error
	Close()
}

// TrackingEvent is the payload pushed on every status or tracking mutation.
type TrackingEvent struct {
	EntityID  string    `json:"entity_id"`
	Number    string    `json:"number"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Clock lets tests pin time-window checks and tracking timestamps.
type Clock func() time.Time
