package usecase

import "errors"

var (
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidOrderID     = errors.New("invalid order ID")
	ErrInvalidRequestID   = errors.New("invalid request ID")
	ErrEmptyItems         = errors.New("items list cannot be empty")
	ErrInvalidItem        = errors.New("invalid item")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidUrgency     = errors.New("invalid urgency tier")
	ErrInvalidAddress     = errors.New("shipping address is incomplete")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrInvalidTransition  = errors.New("status transition not allowed")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrOutsideEditWindow  = errors.New("outside edit window")
	ErrNotEditable        = errors.New("order can no longer be edited")
	ErrNotCancellable     = errors.New("order can no longer be cancelled")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrMissingSourceURL   = errors.New("source URL is required")
	ErrMissingProductName = errors.New("product name is required")
)
