package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// A nil *database.Database must not become a non-nil Pinger.
	var pinger Pinger
	if cfg.Database != nil {
		pinger = cfg.Database
	}
	health := NewHealthController(pinger, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Lookup endpoint
	if cfg.LookupService != nil {
		lookupController := NewLookupController(cfg.LookupService)
		router.GET("/api/lookup", lookupController.Lookup)
	}

	// Task management endpoints
	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		router.GET("/api/tasks/types", tasksController.ListTaskTypes)
		router.GET("/api/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/api/tasks/:type/run", tasksController.RunTask)
	}

	// Word library endpoints
	if cfg.Library != nil {
		libraryController := NewLibraryController(cfg.Library)
		router.POST("/api/favorites/:word/toggle", libraryController.ToggleFavorite)
		router.DELETE("/api/history", libraryController.ClearHistory)
		router.GET("/api/:collection", libraryController.ListWords)
		router.POST("/api/:collection", libraryController.AddWord)
		router.GET("/api/:collection/:word", libraryController.ContainsWord)
		router.DELETE("/api/:collection/:word", libraryController.RemoveWord)
	}

	return router
}
