package handler

import (
	"github.com/bernaba123/E-Commerce-sub001/internal/delivery/http/middleware"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requests *usecase.RequestUseCase
}

func NewRequestHandler(requests *usecase.RequestUseCase) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type createRequestPayload struct {
	ProductName  string `json:"product_name" binding:"required"`
	SourceURL    string `json:"source_url" binding:"required,url"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Quantity     int    `json:"quantity"`
	Urgency      string `json:"urgency" binding:"required"`
	ProductPrice string `json:"product_price"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	request, err := h.requests.CreateRequest(c.Request.Context(), middleware.ActorFrom(c), usecase.CreateRequestInput{
		ProductName:  req.ProductName,
		SourceURL:    req.SourceURL,
		Category:     req.Category,
		Description:  req.Description,
		Quantity:     req.Quantity,
		Urgency:      entities.Urgency(req.Urgency),
		ProductPrice: req.ProductPrice,
	})
	if err != nil {
		fail(c, err)
		return
	}
	created(c, request)
}

func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.requests.GetRequest(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, request)
}

func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.requests.ListRequests(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, requests)
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)

	request, err := h.requests.CancelRequest(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, request)
}

type requestStatusPayload struct {
	Status     string   `json:"status" binding:"required"`
	Message    string   `json:"message"`
	Location   string   `json:"location"`
	AdminNotes string   `json:"admin_notes"`
	FinalPrice *float64 `json:"final_price"`
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req requestStatusPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "msg": err.Error()})
		return
	}

	request, err := h.requests.UpdateStatus(c.Request.Context(), c.Param("id"), usecase.RequestStatusInput{
		Status:     entities.RequestStatus(req.Status),
		Message:    req.Message,
		Location:   req.Location,
		AdminNotes: req.AdminNotes,
		FinalPrice: req.FinalPrice,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, request)
}
