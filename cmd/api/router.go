package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"photobook-backend/internal/shared/middleware"
	"photobook-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCategoryRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// Public catalog routes, read-only.
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/tree", c.CategoryHandler.GetTree)
		categories.GET("/slug/:slug", c.CategoryHandler.GetBySlug)
		categories.GET("/:id", c.CategoryHandler.GetByID)
	}
}

func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:id", c.ProductHandler.GetByID)
	}
}

// Admin routes mutate the catalog; they require a valid admin token.
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.Config.JWT.Secret),
		middleware.AdminMiddleware(),
	)
	{
		categories := admin.Group("/categories")
		{
			categories.POST("", c.CategoryHandler.Create)
			categories.PUT("/:id", c.CategoryHandler.Update)
			categories.PUT("/:id/parent", c.CategoryHandler.MoveToParent)
			categories.PUT("/:id/activate", c.CategoryHandler.Activate)
			categories.PUT("/:id/deactivate", c.CategoryHandler.Deactivate)
			categories.GET("/:id/deletion-plan", c.CategoryHandler.PlanDeletion)
			categories.DELETE("/:id", c.CategoryHandler.Delete)
		}

		products := admin.Group("/products")
		{
			products.POST("", c.ProductHandler.Create)
			products.PUT("/:id", c.ProductHandler.Update)
			products.DELETE("/:id", c.ProductHandler.Delete)
			products.POST("/assign", c.ProductHandler.AssignToSubcategory)
		}
	}
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		redisStatus := "ok"
		if err := appCtx.Redis.HealthCheck(ctx); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
			health["status"] = "degraded"
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
