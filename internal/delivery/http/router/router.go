package router

import (
	"time"

	"github.com/bernaba123/E-Commerce-sub001/internal/delivery/http/handler"
	"github.com/bernaba123/E-Commerce-sub001/internal/delivery/http/middleware"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
)

type Deps struct {
	Orders   *handler.OrderHandler
	Requests *handler.RequestHandler
	Catalog  *handler.CatalogHandler
	Tracking *handler.TrackingHandler
	Ready    handler.Readiness

	// Redis is optional; without it checkout runs unthrottled.
	Redis              *rd.Client
	CheckoutRateLimit  int
	CheckoutRateWindow time.Duration
}

// Setup registers the full HTTP surface.
func Setup(r *gin.Engine, deps Deps) {
	r.GET("/healthz", handler.Health(deps.Ready))

	// Public, unauthenticated.
	r.GET("/api/products", deps.Catalog.List)
	r.GET("/api/products/:id", deps.Catalog.Get)
	r.GET("/api/track/:number", deps.Tracking.Track)
	r.GET("/api/track/:number/live", deps.Tracking.Live)

	api := r.Group("/api", middleware.Actor())
	{
		checkout := api.Group("")
		if deps.Redis != nil {
			checkout.Use(middleware.RateLimit(deps.Redis, deps.CheckoutRateLimit, deps.CheckoutRateWindow))
		}
		checkout.POST("/orders", deps.Orders.Create)

		api.GET("/orders", deps.Orders.List)
		api.GET("/orders/:id", deps.Orders.Get)
		api.PUT("/orders/:id", deps.Orders.Edit)
		api.POST("/orders/:id/cancel", deps.Orders.Cancel)

		api.POST("/requests", deps.Requests.Create)
		api.GET("/requests", deps.Requests.List)
		api.GET("/requests/:id", deps.Requests.Get)
		api.POST("/requests/:id/cancel", deps.Requests.Cancel)

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.PUT("/orders/:id/status", deps.Orders.UpdateStatus)
			admin.PUT("/requests/:id/status", deps.Requests.UpdateStatus)
		}
	}
}
