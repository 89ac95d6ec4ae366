package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/wordly/internal/entities"
)

// PruneHistoryQueueName is the backlite queue name for history prune tasks.
const PruneHistoryQueueName = "prune_history"

// HistoryTrimmer deletes all but the newest keep rows of a collection.
type HistoryTrimmer interface {
	Trim(c entities.Collection, keep int) (int64, error)
}

// PruneHistoryTask trims the search history to its newest Keep entries.
type PruneHistoryTask struct {
	Keep int `json:"keep"`
}

// Config returns the queue configuration for history prune tasks.
func (t PruneHistoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        PruneHistoryQueueName,
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// PruneHistoryProcessor creates a processor function for PruneHistoryTask.
func PruneHistoryProcessor(trimmer HistoryTrimmer) backlite.QueueProcessor[PruneHistoryTask] {
	return func(ctx context.Context, task PruneHistoryTask) error {
		if task.Keep <= 0 {
			return nil
		}

		deleted, err := trimmer.Trim(entities.CollectionHistory, task.Keep)
		if err != nil {
			return fmt.Errorf("prune history: %w", err)
		}

		if deleted > 0 {
			log.Printf("[TASK] Pruned %d history entries beyond the newest %d", deleted, task.Keep)
		}
		return nil
	}
}

// NewPruneHistoryQueue creates a backlite queue for history prune tasks.
func NewPruneHistoryQueue(trimmer HistoryTrimmer) backlite.Queue {
	return backlite.NewQueue(PruneHistoryProcessor(trimmer))
}
