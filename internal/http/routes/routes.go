package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lequocbao/image-cropping/internal/http/handlers"
	"github.com/lequocbao/image-cropping/internal/http/middleware"
	"go.uber.org/zap"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	logger       *zap.Logger
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		logger:       logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.imageHandler.HealthCheck)
		v1.GET("/stats", r.imageHandler.GetStats)

		images := v1.Group("/images")
		{
			images.POST("/crop", r.imageHandler.CropImage)
			images.POST("/batch/crop", r.imageHandler.BatchCrop)
			images.POST("/process", r.imageHandler.AdvancedProcess)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("/crop", r.imageHandler.EnqueueCropJob)
			jobs.GET("/:id", r.imageHandler.GetJob)
		}
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "Image cropping service is running",
		})
	})

	return router
}
