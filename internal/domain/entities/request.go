package entities

import "time"

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusReviewing  RequestStatus = "reviewing"
	RequestStatusApproved   RequestStatus = "approved"
	RequestStatusRejected   RequestStatus = "rejected"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusOrdered    RequestStatus = "ordered"
	RequestStatusShipped    RequestStatus = "shipped"
	RequestStatusDelivered  RequestStatus = "delivered"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Request is a customer ask to source a product that is not in the catalog,
// typically from a German retailer, delivered to Ethiopia. Financials follow
// the sourcing policy (flat service fee plus urgency-tier shipping), not the
// cart policy.
type Request struct {
	ID             string        `json:"id"`
	RequestNumber  string        `json:"request_number"`
	UserID         string        `json:"user_id"`
	ProductName    string        `json:"product_name"`
	SourceURL      string        `json:"source_url"`
	Category       string        `json:"category,omitempty"`
	Description    string        `json:"description,omitempty"`
	Quantity       int           `json:"quantity"`
	Urgency        Urgency       `json:"urgency"`
	EstimatedPrice float64       `json:"estimated_price"`
	FinalPrice     float64       `json:"final_price,omitempty"`
	ServiceFee     float64       `json:"service_fee"`
	ShippingCost   float64       `json:"shipping_cost"`
	TotalAmount    float64       `json:"total_amount"`
	Status         RequestStatus `json:"status"`
	AdminNotes     string        `json:"admin_notes,omitempty"`
	Tracking       Tracking      `json:"tracking"`
	ApprovedAt     *time.Time    `json:"approved_at,omitempty"`
	ProcessedAt    *time.Time    `json:"processed_at,omitempty"`
	DeliveredAt    *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func ValidRequestStatus(status RequestStatus) bool {
	switch status {
	case RequestStatusPending, RequestStatusReviewing, RequestStatusApproved,
		RequestStatusRejected, RequestStatusProcessing, RequestStatusOrdered,
		RequestStatusShipped, RequestStatusDelivered, RequestStatusCancelled:
		return true
	}
	return false
}

func ValidUrgency(urgency Urgency) bool {
	return urgency == UrgencyLow || urgency == UrgencyMedium || urgency == UrgencyHigh
}

func (s RequestStatus) Terminal() bool {
	return s == RequestStatusRejected || s == RequestStatusDelivered || s == RequestStatusCancelled
}

// StampReached records the first time a milestone status is reached. Re-entering
// the same status later must not move the original stamp.
func (r *Request) StampReached(status RequestStatus, now time.Time) {
	switch status {
	case RequestStatusApproved:
		if r.ApprovedAt == nil {
			r.ApprovedAt = &now
		}
	case RequestStatusProcessing:
		if r.ProcessedAt == nil {
			r.ProcessedAt = &now
		}
	case RequestStatusDelivered:
		if r.DeliveredAt == nil {
			r.DeliveredAt = &now
		}
	}
}
