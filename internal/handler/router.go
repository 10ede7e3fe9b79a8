package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docbrief/docbrief/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Documents *DocumentHandler
	Files     *FileHandler
	AI        *AIHandler
	JWTSecret []byte
	// AskInterval throttles the model-backed endpoints per user; zero
	// disables the limiter.
	AskInterval time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/session", deps.Auth.OpenSession)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/documents", deps.Documents.Upload)
	authGroup.GET("/documents", deps.Documents.List)
	authGroup.GET("/documents/:id", deps.Documents.Get)
	authGroup.DELETE("/documents/:id", deps.Documents.Delete)
	authGroup.GET("/documents/:id/file", deps.Files.Download)
	authGroup.GET("/documents/:id/history", deps.Documents.History)
	authGroup.GET("/stats", deps.Documents.Stats)

	aiGroup := authGroup.Group("")
	aiGroup.Use(middleware.RateLimit(deps.AskInterval))
	aiGroup.POST("/documents/:id/summary", deps.AI.Summarize)
	aiGroup.POST("/documents/:id/question", deps.AI.Ask)
}
