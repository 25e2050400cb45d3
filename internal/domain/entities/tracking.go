package entities

import "time"

// Tracking is the embedded shipment sub-record of an order or request.
// Updates is append-only: entries are never reordered or mutated in place.
type Tracking struct {
	Carrier           string           `json:"carrier,omitempty"`
	TrackingNumber    string           `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimated_delivery,omitempty"`
	Updates           []TrackingUpdate `json:"updates"`
}

// TrackingUpdate is one immutable entry in the status history.
type TrackingUpdate struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Append adds an update, clamping its timestamp so the sequence stays
// monotonically non-decreasing even if the caller's clock went backwards.
func (t *Tracking) Append(update TrackingUpdate) {
	if n := len(t.Updates); n > 0 && update.Timestamp.Before(t.Updates[n-1].Timestamp) {
		update.Timestamp = t.Updates[n-1].Timestamp
	}
	t.Updates = append(t.Updates, update)
}

// LastUpdate returns the most recent update, if any.
func (t *Tracking) LastUpdate() (TrackingUpdate, bool) {
	if len(t.Updates) == 0 {
		return TrackingUpdate{}, false
	}
	return t.Updates[len(t.Updates)-1], true
}
