package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/logger"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
	"github.com/orderhub/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler the router wires
type Handlers struct {
	Import        *handler.ImportHandler
	PartnerShop   *handler.PartnerCatalogHandler
	PartnerOrders *handler.PartnerOrderHandler
	Public        *handler.PublicCatalogHandler
	Contacts      *handler.ContactHandler
	Basket        *handler.BasketHandler
	Orders        *handler.OrderHandler
}

// New builds the gin engine with all middleware and routes
func New(cfg *config.Config, log *zap.Logger, handlers Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	// buyer-facing catalog reads, no identity required
	api.GET("/categories", handlers.Public.Categories)
	api.GET("/shops", handlers.Public.Shops)
	api.GET("/products", handlers.Public.Listings)

	authed := api.Group("", middleware.Identity())

	partner := authed.Group("/partner")
	{
		partner.POST("/update", handlers.Import.Upload)
		partner.GET("/update/:task_id", handlers.Import.Status)

		partner.GET("/shop", handlers.PartnerShop.GetShop)
		partner.POST("/state", handlers.PartnerShop.SetShopState)

		partner.GET("/products", handlers.PartnerShop.ListListings)
		partner.POST("/products", handlers.PartnerShop.CreateListing)
		partner.PUT("/products/:external_id", handlers.PartnerShop.UpdateListing)
		partner.DELETE("/products/:external_id", handlers.PartnerShop.DelistListing)

		partner.GET("/orders", handlers.PartnerOrders.List)
		partner.GET("/orders/:id", handlers.PartnerOrders.Get)
		partner.PATCH("/orders/:id", handlers.PartnerOrders.Patch)
	}

	user := authed.Group("/user")
	{
		user.GET("/contacts", handlers.Contacts.List)
		user.POST("/contacts", handlers.Contacts.Create)
		user.PUT("/contacts/:id", handlers.Contacts.Update)
		user.DELETE("/contacts/:id", handlers.Contacts.Delete)
	}

	basket := authed.Group("/basket")
	{
		basket.GET("", handlers.Basket.Get)
		basket.POST("", handlers.Basket.AddItems)
		basket.DELETE("", handlers.Basket.RemoveItems)
	}

	orders := authed.Group("/orders")
	{
		orders.POST("", handlers.Orders.Confirm)
		orders.GET("", handlers.Orders.List)
		orders.GET("/:id", handlers.Orders.Get)
		orders.DELETE("/seller/:id", handlers.Orders.CancelSellerOrder)
	}

	return engine
}
