package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/wordly/internal/database"
	"github.com/mrlokans/wordly/internal/database/library"
	"github.com/mrlokans/wordly/internal/dictionary"
	"github.com/mrlokans/wordly/internal/http"
	"github.com/mrlokans/wordly/internal/scheduler"
	"github.com/mrlokans/wordly/internal/services"
	"github.com/mrlokans/wordly/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// WordLibrary implementations
var _ services.WordLibrary = (*library.Repository)(nil)

// HistoryTrimmer implementations
var _ tasks.HistoryTrimmer = (*library.Repository)(nil)

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// External Services
// =============================================================================

// DictionaryClient implementations
var _ dictionary.Client = (*dictionary.FreeDictionaryClient)(nil)
var _ dictionary.Client = (*dictionary.Latest)(nil)

// =============================================================================
// Background Work
// =============================================================================

// HistoryPruner implementations
var _ services.HistoryPruner = (*tasks.Client)(nil)
var _ scheduler.PruneEnqueuer = (*tasks.Client)(nil)
