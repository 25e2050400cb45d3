package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/bernaba123/E-Commerce-sub001/internal/broadcast"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read side of the product catalog that checkout
// needs. Catalog management itself lives in the admin service.
type CatalogHandler struct {
	products repositories.ProductRepository
}

func NewCatalogHandler(products repositories.ProductRepository) *CatalogHandler {
	return &CatalogHandler{products: products}
}

func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, products)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, product)
}

// TrackingHandler serves the public track-by-number page. No auth: the number
// itself is the capability. The live feed is only available when broadcast
// runs on the in-process hub.
type TrackingHandler struct {
	tracking *usecase.TrackingUseCase
	live     *broadcast.Hub
}

func NewTrackingHandler(tracking *usecase.TrackingUseCase, live *broadcast.Hub) *TrackingHandler {
	return &TrackingHandler{tracking: tracking, live: live}
}

func (h *TrackingHandler) Track(c *gin.Context) {
	view, err := h.tracking.TrackByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, view)
}

// Live streams tracking events for one order or request as server-sent
// events. The current view is sent first so the client starts from the
// durable state, then events follow until the client disconnects.
func (h *TrackingHandler) Live(c *gin.Context) {
	if h.live == nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "live tracking not available"})
		return
	}

	view, err := h.tracking.TrackByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		fail(c, err)
		return
	}

	events, cancel := h.live.Subscribe(view.EntityID)
	defer cancel()

	c.SSEvent("snapshot", view)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// Readiness is the health capability injected at wiring time, replacing the
// old process-wide "database connected" flag.
type Readiness func(ctx context.Context) error

func Health(ready Readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready != nil {
			if err := ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
