package restapi

import (
	"wallet_risk_analyzer/internal/infrastructure/configloader"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const swaggerSpecRoute = "/docs/swagger.yaml"

// SetupRouter builds the gin engine with the session API, health, metrics and
// optionally the Swagger UI.
func SetupRouter(handler *SessionHandler, swagger configloader.SwaggerConfig, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(logger.Named("HTTP")))
	router.Use(gin.Recovery())

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sessions", handler.CreateSessionHandler)
		v1.GET("/sessions/:id", handler.GetSessionHandler)
		v1.DELETE("/sessions/:id", handler.DeleteSessionHandler)
		v1.POST("/sessions/:id/analyze", handler.AnalyzeHandler)
		v1.POST("/sessions/:id/demo", handler.DemoHandler)
		v1.PUT("/sessions/:id/address", handler.UpdateAddressHandler)
	}

	if swagger.Enabled {
		router.StaticFile(swaggerSpecRoute, swagger.SpecPath)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecRoute)))
		logger.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"))
	}

	return router
}
