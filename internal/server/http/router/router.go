package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/voltride/paygate/internal/config"
	"github.com/voltride/paygate/internal/server/http/handlers"
	"github.com/voltride/paygate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, cfg.SuccessRedirectURL, cfg.FailureRedirectURL)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	// The webhook authenticates itself through the digest; no API token.
	api.POST("/payment/callback", paymentHandler.Callback)

	secured := api.Group("")
	secured.Use(middleware.TokenRequired(cfg.APIToken))
	secured.POST("/orders", orderHandler.Create)
	secured.GET("/orders/:id", orderHandler.Get)
	secured.POST("/payment/initiate", paymentHandler.Initiate)

	return engine
}
