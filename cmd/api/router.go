package main

import (
	"context"
	"net/http"
	"time"

	"bookstore-graphql/internal/shared/middleware"
	"bookstore-graphql/pkg/container"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"
)

const graphqlPath = "/graphql"

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.POST(graphqlPath, c.GraphQLHandler.Serve)
	router.GET(graphqlPath, c.GraphQLHandler.Serve)

	if c.Config.App.Playground {
		router.GET("/", gin.WrapH(playground.Handler(c.Config.App.Name, graphqlPath)))
	}

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(c.Metrics.Handler()))

	return router
}

// ========================================
// HEALTH CHECK
// ========================================

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		stores, healthy := appCtx.HealthCheck(ctx)

		status, code := "ok", http.StatusOK
		if !healthy {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  stores,
		})
	}
}
