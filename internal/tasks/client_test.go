package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordly/internal/entities"
)

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "wordly-tasks.db"), TasksDBPath(filepath.Join("data", "wordly.db")))
	assert.Equal(t, "wordly-tasks", TasksDBPath("wordly"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "test-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

func TestClientStopWithoutStart(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.True(t, client.Stop(context.Background()))
}

type recordingTrimmer struct {
	mu    sync.Mutex
	calls chan int
	err   error
}

func (r *recordingTrimmer) Trim(c entities.Collection, keep int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c != entities.CollectionHistory {
		return 0, errors.New("unexpected collection")
	}
	r.calls <- keep
	return 2, r.err
}

func TestEnqueueHistoryPrune(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"), DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	trimmer := &recordingTrimmer{calls: make(chan int, 1)}
	client.Register(NewPruneHistoryQueue(trimmer))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	require.NoError(t, client.EnqueueHistoryPrune(25))

	select {
	case keep := <-trimmer.calls:
		assert.Equal(t, 25, keep)
	case <-time.After(5 * time.Second):
		t.Fatal("prune task was not executed within timeout")
	}
}

func TestPruneHistoryProcessor(t *testing.T) {
	t.Run("trims history", func(t *testing.T) {
		trimmer := &recordingTrimmer{calls: make(chan int, 1)}

		err := PruneHistoryProcessor(trimmer)(context.Background(), PruneHistoryTask{Keep: 10})

		require.NoError(t, err)
		assert.Equal(t, 10, <-trimmer.calls)
	})

	t.Run("skips when unbounded", func(t *testing.T) {
		trimmer := &recordingTrimmer{calls: make(chan int, 1)}

		err := PruneHistoryProcessor(trimmer)(context.Background(), PruneHistoryTask{Keep: 0})

		require.NoError(t, err)
		assert.Empty(t, trimmer.calls)
	})

	t.Run("propagates trim errors", func(t *testing.T) {
		trimmer := &recordingTrimmer{calls: make(chan int, 1), err: errors.New("locked")}

		err := PruneHistoryProcessor(trimmer)(context.Background(), PruneHistoryTask{Keep: 10})

		assert.ErrorContains(t, err, "prune history")
	})
}

func TestPruneHistoryTaskConfig(t *testing.T) {
	cfg := PruneHistoryTask{Keep: 10}.Config()

	assert.Equal(t, "prune_history", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

var _ backlite.Task = PruneHistoryTask{}
