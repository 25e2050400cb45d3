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

const (
	// Self-service edits and cancellations are only allowed this long after
	// checkout; afterwards the order belongs to the fulfilment pipeline.
	EditWindow = 10 * time.Minute

	orderNumberPrefix = "EC"
)

// Actor identifies the authenticated caller. Authentication itself happens
// upstream; the core only needs identity and role.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == "admin"
}

type OrderUseCase struct {
	orders    repositories.OrderRepository
	products  repositories.ProductRepository
	payments  PaymentGate
	publisher EventPublisher
	logger    *logger.Logger
	now       Clock
}

func NewOrderUseCase(
	orders repositories.OrderRepository,
	products repositories.ProductRepository,
	payments PaymentGate,
	publisher EventPublisher,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		products:  products,
		payments:  payments,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// WithClock replaces the time source. Tests use it to pin the edit window.
func (uc *OrderUseCase) WithClock(clock Clock) *OrderUseCase {
	uc.now = clock
	return uc
}

type CreateOrderInput struct {
	Items         []CreateOrderItem
	ShippingAddr  entities.Address
	BillingAddr   entities.Address
	PaymentMethod entities.PaymentMethod
	Card          CardDetails
	Notes         string
}

type CreateOrderItem struct {
	ProductID string
	Quantity  int
}

// CreateOrder runs the whole checkout: snapshot products, derive totals,
// authorize payment, decrement stock and persist. A declined or malformed
// payment aborts the creation with nothing persisted.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*entities.Order, error) {
	if actor.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if !entities.ValidPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidMethod
	}
	if input.ShippingAddr.IsZero() {
		return nil, ErrInvalidAddress
	}

	items := make([]entities.OrderItem, 0, len(input.Items))
	for i, line := range input.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d has invalid quantity", ErrInvalidItem, i)
		}
		product, err := uc.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", line.ProductID, err)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, product.Name, product.Stock)
		}
		items = append(items, entities.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
		})
	}

	totals := CalculateCartTotals(items)
	now := uc.now()

	paymentStatus := entities.PaymentStatusPending
	status := entities.OrderStatusPending
	paymentRef := ""

	switch {
	case input.PaymentMethod == entities.PaymentMethodCashOnDelivery:
		// Collected on delivery, no gate involved.
	case actor.IsAdmin():
		// Admin-placed orders skip the gate and start confirmed.
		status = entities.OrderStatusConfirmed
	default:
		result, err := uc.payments.Authorize(ctx, PaymentRequest{
			Amount: totals.Total,
			Method: input.PaymentMethod,
			Card:   input.Card,
		})
		if err != nil {
			return nil, fmt.Errorf("payment gate unavailable: %w", err)
		}
		if !result.Approved {
			return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.Reason)
		}
		paymentStatus = entities.PaymentStatusPaid
		status = entities.OrderStatusConfirmed
		paymentRef = result.Reference
	}

	// Stock is adjusted per line with no batch atomicity; a failure partway
	// is rolled back best-effort and the creation aborted.
	if !actor.IsAdmin() {
		if err := uc.decrementStock(ctx, items); err != nil {
			return nil, err
		}
	}

	billing := input.BillingAddr
	if billing.IsZero() {
		billing = input.ShippingAddr
	}

	number, err := uc.nextOrderNumber(ctx, now)
	if err != nil {
		uc.logger.Warn("Falling back to time-only order number", "error", err)
		number = fmt.Sprintf("%s%06d000", orderNumberPrefix, now.Unix()%1000000)
	}

	order := &entities.Order{
		ID:            uuid.New().String(),
		OrderNumber:   number,
		UserID:        actor.UserID,
		Items:         items,
		Subtotal:      totals.Subtotal,
		ShippingCost:  totals.Shipping,
		TaxAmount:     totals.Tax,
		FinalAmount:   totals.Total,
		Status:        status,
		PaymentStatus: paymentStatus,
		PaymentMethod: input.PaymentMethod,
		PaymentRef:    paymentRef,
		ShippingAddr:  input.ShippingAddr,
		BillingAddr:   billing,
		Notes:         input.Notes,
		AdminCreated:  actor.IsAdmin(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		if !actor.IsAdmin() {
			uc.restoreStock(ctx, items)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	uc.publishTracking(order, "order.created", "Order placed", "")

	return order, nil
}

// GetOrder returns an order visible to the actor. Missing and not-owned look
// identical to the caller.
func (uc *OrderUseCase) GetOrder(ctx context.Context, actor Actor, orderID string) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if !actor.IsAdmin() && order.UserID != actor.UserID {
		return nil, repositories.ErrOrderNotFound
	}
	return order, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, actor Actor) ([]*entities.Order, error) {
	if actor.UserID == "" {
		return nil, ErrInvalidUserID
	}
	orders, err := uc.orders.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

type StatusUpdateInput struct {
	Status            entities.OrderStatus
	Message           string
	Location          string
	Carrier           string
	TrackingNumber    string
	EstimatedDelivery *time.Time
}

// UpdateStatus applies an admin status transition: validate against the
// transition table, append exactly one tracking update, persist, publish.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, input StatusUpdateInput) (*entities.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	if !entities.ValidOrderStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order for update: %w", err)
	}
	if !OrderTransitionAllowed(order.Status, input.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, input.Status)
	}

	now := uc.now()
	restock := input.Status == entities.OrderStatusCancelled &&
		order.Status != entities.OrderStatusCancelled && !order.AdminCreated

	order.Status = input.Status
	order.UpdatedAt = now
	if input.Carrier != "" {
		order.Tracking.Carrier = input.Carrier
	}
	if input.TrackingNumber != "" {
		order.Tracking.TrackingNumber = input.TrackingNumber
	}
	if input.EstimatedDelivery != nil {
		order.Tracking.EstimatedDelivery = input.EstimatedDelivery
	}
	if input.Status == entities.OrderStatusCancelled && order.PaymentStatus == entities.PaymentStatusPaid {
		order.PaymentStatus = entities.PaymentStatusRefunded
	}

	message := input.Message
	if message == "" {
		message = statusMessage(input.Status)
	}
	order.Tracking.Append(entities.TrackingUpdate{
		Status:    string(input.Status),
		Message:   message,
		Location:  input.Location,
		Timestamp: now,
	})

	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if restock {
		uc.restoreStock(ctx, order.Items)
	}

	uc.publishTracking(order, "order.status_changed", message, input.Location)

	return order, nil
}

type EditOrderInput struct {
	ShippingAddr *entities.Address
	BillingAddr  *entities.Address
	Notes        *string
}

// EditOrder lets the owner patch addresses and notes, but only while the order
// is still pending and inside the edit window.
func (uc *OrderUseCase) EditOrder(ctx context.Context, actor Actor, orderID string, patch EditOrderInput) (*entities.Order, error) {
	order, err := uc.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if now.Sub(order.CreatedAt) > EditWindow {
		return nil, ErrOutsideEditWindow
	}
	if order.Status != entities.OrderStatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrNotEditable, order.Status)
	}

	if patch.ShippingAddr != nil {
		if patch.ShippingAddr.IsZero() {
			return nil, ErrInvalidAddress
		}
		order.ShippingAddr = *patch.ShippingAddr
	}
	if patch.BillingAddr != nil {
		order.BillingAddr = *patch.BillingAddr
	}
	if patch.Notes != nil {
		order.Notes = *patch.Notes
	}
	order.UpdatedAt = now

	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to edit order: %w", err)
	}
	return order, nil
}

// CancelOrder is the self-service path. It enforces the edit window and the
// status precondition, restores stock once, and marks paid orders refunded.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, actor Actor, orderID, reason string) (*entities.Order, error) {
	order, err := uc.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if now.Sub(order.CreatedAt) > EditWindow {
		return nil, ErrOutsideEditWindow
	}
	if order.Status != entities.OrderStatusPending && order.Status != entities.OrderStatusConfirmed {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, order.Status)
	}

	order.Status = entities.OrderStatusCancelled
	order.CancelReason = reason
	order.UpdatedAt = now
	if order.PaymentStatus == entities.PaymentStatusPaid {
		order.PaymentStatus = entities.PaymentStatusRefunded
	}

	message := "Order cancelled by customer"
	if reason != "" {
		message = fmt.Sprintf("Order cancelled by customer: %s", reason)
	}
	order.Tracking.Append(entities.TrackingUpdate{
		Status:    string(entities.OrderStatusCancelled),
		Message:   message,
		Timestamp: now,
	})

	if err := uc.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if !order.AdminCreated {
		uc.restoreStock(ctx, order.Items)
	}

	uc.publishTracking(order, "order.cancelled", message, "")

	return order, nil
}

func (uc *OrderUseCase) decrementStock(ctx context.Context, items []entities.OrderItem) error {
	for i, item := range items {
		if _, err := uc.products.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			uc.restoreStock(ctx, items[:i])
			if err == repositories.ErrInsufficientStock {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, item.Name)
			}
			return fmt.Errorf("failed to reserve stock for %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// restoreStock is best-effort: a failed restore is logged and skipped so the
// remaining items still get their stock back.
func (uc *OrderUseCase) restoreStock(ctx context.Context, items []entities.OrderItem) {
	for _, item := range items {
		if _, err := uc.products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			uc.logger.Error("Failed to restore stock",
				"product_id", item.ProductID,
				"quantity", item.Quantity,
				"error", err)
		}
	}
}

// nextOrderNumber builds the human-readable number: prefix, six digits of the
// current unix time, and a three-digit sequence approximated from today's
// order count. Not reserved, so collisions are possible under heavy
// concurrency; the uuid primary ID stays the real identity.
func (uc *OrderUseCase) nextOrderNumber(ctx context.Context, now time.Time) (string, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := uc.orders.CountCreatedSince(ctx, midnight)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d%03d", orderNumberPrefix, now.Unix()%1000000, (count+1)%1000), nil
}

func (uc *OrderUseCase) publishTracking(order *entities.Order, event, message, location string) {
	if uc.publisher == nil {
		return
	}
	payload := TrackingEvent{
		EntityID:  order.ID,
		Number:    order.OrderNumber,
		Status:    string(order.Status),
		Message:   message,
		Location:  location,
		Timestamp: order.UpdatedAt,
	}
	// Fan-out happens after the write is durable and never blocks the caller.
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.publisher.Publish(pubCtx, order.ID, event, payload); err != nil {
			uc.logger.Warn("Failed to publish tracking event",
				"order_id", order.ID,
				"event", event,
				"error", err)
		}
	}()
}

func statusMessage(status entities.OrderStatus) string {
	switch status {
	case entities.OrderStatusPending:
		return "Order received and awaiting confirmation"
	case entities.OrderStatusConfirmed:
		return "Order confirmed"
	case entities.OrderStatusProcessing:
		return "Order is being prepared"
	case entities.OrderStatusShipped:
		return "Order shipped"
	case entities.OrderStatusDelivered:
		return "Order delivered"
	case entities.OrderStatusCancelled:
		return "Order cancelled"
	default:
		return "Order status updated"
	}
}
