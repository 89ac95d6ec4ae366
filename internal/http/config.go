package http

import (
	"github.com/mrlokans/wordly/internal/database"
	"github.com/mrlokans/wordly/internal/services"
	"github.com/mrlokans/wordly/internal/tasks"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database      *database.Database
	LookupService *services.LookupService
	Library       services.WordLibrary

	// Background tasks (optional)
	TaskClient *tasks.Client

	// Application info
	Version string
}
