package usecase

import "github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"

// Explicit transition tables. The storefront historically let an admin set any
// status from any other; that made impossible histories (delivered → pending)
// representable, so transitions are now validated against these adjacency sets.

var orderTransitions = map[entities.OrderStatus][]entities.OrderStatus{
	entities.OrderStatusPending:    {entities.OrderStatusConfirmed, entities.OrderStatusProcessing, entities.OrderStatusCancelled},
	entities.OrderStatusConfirmed:  {entities.OrderStatusProcessing, entities.OrderStatusShipped, entities.OrderStatusCancelled},
	entities.OrderStatusProcessing: {entities.OrderStatusShipped, entities.OrderStatusDelivered, entities.OrderStatusCancelled},
	entities.OrderStatusShipped:    {entities.OrderStatusDelivered},
	entities.OrderStatusDelivered:  {},
	entities.OrderStatusCancelled:  {},
}

var requestTransitions = map[entities.RequestStatus][]entities.RequestStatus{
	entities.RequestStatusPending:    {entities.RequestStatusReviewing, entities.RequestStatusApproved, entities.RequestStatusRejected, entities.RequestStatusCancelled},
	entities.RequestStatusReviewing:  {entities.RequestStatusApproved, entities.RequestStatusRejected, entities.RequestStatusCancelled},
	entities.RequestStatusApproved:   {entities.RequestStatusProcessing, entities.RequestStatusCancelled},
	entities.RequestStatusProcessing: {entities.RequestStatusOrdered, entities.RequestStatusShipped, entities.RequestStatusCancelled},
	entities.RequestStatusOrdered:    {entities.RequestStatusShipped, entities.RequestStatusCancelled},
	entities.RequestStatusShipped:    {entities.RequestStatusDelivered},
	entities.RequestStatusRejected:   {},
	entities.RequestStatusDelivered:  {},
	entities.RequestStatusCancelled:  {},
}

// OrderTransitionAllowed reports whether an order may move from one status to
// another. Setting the same status again is allowed and treated as a no-op
// transition (it still appends a tracking entry but never re-stamps milestones).
func OrderTransitionAllowed(from, to entities.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func RequestTransitionAllowed(from, to entities.RequestStatus) bool {
	if from == to {
		return true
	}
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
