package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"image-search-api/internal/middleware"
)

// maxEventSize bounds the body of a posted notification batch
const maxEventSize = 1 << 20

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	SearchHandler *SearchHandler
	UploadHandler *UploadHandler
	Logger        *logrus.Logger
}

// SetupRoutes configures the dev server routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "image-search-api",
		})
	})

	router.GET("/search", config.SearchHandler.Search)

	events := router.Group("/events")
	events.Use(middleware.ContentTypeValidation("application/json"))
	events.Use(middleware.RequestSizeLimit(maxEventSize))
	{
		events.POST("/s3", config.UploadHandler.ProcessS3Event)
	}
}

// SetupMiddleware configures global middleware
func SetupMiddleware(router *gin.Engine, logger *logrus.Logger) {
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.StructuredLogger(logger))
}

// NewRouter builds a gin engine with middleware and routes installed
func NewRouter(config *RouterConfig) *gin.Engine {
	router := gin.New()
	SetupMiddleware(router, config.Logger)
	SetupRoutes(router, config)
	return router
}
