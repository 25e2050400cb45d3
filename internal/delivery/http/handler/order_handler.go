package handler

import (
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/delivery/http/middleware"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders *usecase.OrderUseCase
}

func NewOrderHandler(orders *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	Items []struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
	ShippingAddress addressPayload  `json:"shipping_address" binding:"required"`
	BillingAddress  *addressPayload `json:"billing_address"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	PaymentInfo     struct {
		CardNumber string `json:"card_number"`
		Expiry     string `json:"expiry"`
		CVV        string `json:"cvv"`
		Holder     string `json:"holder"`
	} `json:"payment_info"`
	Notes string `json:"notes"`
}

type addressPayload struct {
	FullName   string `json:"full_name" binding:"required"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" binding:"required"`
	Phone      string `json:"phone"`
}

func (p addressPayload) toEntity() entities.Address {
	return entities.Address{
		FullName:   p.FullName,
		Street:     p.Street,
		City:       p.City,
		PostalCode: p.PostalCode,
		Country:    p.Country,
		Phone:      p.Phone,
	}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	input := usecase.CreateOrderInput{
		ShippingAddr:  req.ShippingAddress.toEntity(),
		PaymentMethod: entities.PaymentMethod(req.PaymentMethod),
		Card: usecase.CardDetails{
			Number: req.PaymentInfo.CardNumber,
			Expiry: req.PaymentInfo.Expiry,
			CVV:    req.PaymentInfo.CVV,
			Holder: req.PaymentInfo.Holder,
		},
		Notes: req.Notes,
	}
	if req.BillingAddress != nil {
		input.BillingAddr = req.BillingAddress.toEntity()
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, usecase.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), middleware.ActorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	created(c, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListOrders(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, orders)
}

type editOrderRequest struct {
	ShippingAddress *addressPayload `json:"shipping_address"`
	BillingAddress  *addressPayload `json:"billing_address"`
	Notes           *string         `json:"notes"`
}

func (h *OrderHandler) Edit(c *gin.Context) {
	var req editOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	patch := usecase.EditOrderInput{Notes: req.Notes}
	if req.ShippingAddress != nil {
		addr := req.ShippingAddress.toEntity()
		patch.ShippingAddr = &addr
	}
	if req.BillingAddress != nil {
		addr := req.BillingAddress.toEntity()
		patch.BillingAddr = &addr
	}

	order, err := h.orders.EditOrder(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	order, err := h.orders.CancelOrder(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}

type updateStatusRequest struct {
	Status            string     `json:"status" binding:"required"`
	Message           string     `json:"message"`
	Location          string     `json:"location"`
	Carrier           string     `json:"carrier"`
	TrackingNumber    string     `json:"tracking_number"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// UpdateStatus is the admin transition endpoint.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), usecase.StatusUpdateInput{
		Status:            entities.OrderStatus(req.Status),
		Message:           req.Message,
		Location:          req.Location,
		Carrier:           req.Carrier,
		TrackingNumber:    req.TrackingNumber,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, order)
}
