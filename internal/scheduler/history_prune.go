package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a five-field cron schedule string.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRunTime calculates when a schedule fires next after from.
func NextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// PruneEnqueuer hands history prune work to the task queue.
type PruneEnqueuer interface {
	EnqueueHistoryPrune(keep int) error
}

// HistoryPruneScheduler periodically enqueues history retention work.
type HistoryPruneScheduler struct {
	enqueuer PruneEnqueuer
	schedule string
	keep     int

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
}

func NewHistoryPruneScheduler(enqueuer PruneEnqueuer, schedule string, keep int) *HistoryPruneScheduler {
	return &HistoryPruneScheduler{
		enqueuer: enqueuer,
		schedule: schedule,
		keep:     keep,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler. It is a no-op when history is unbounded.
func (s *HistoryPruneScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.keep <= 0 {
		log.Printf("History prune scheduler: disabled (no history limit)")
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule history prune: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("History prune scheduler: started with schedule '%s', keeping %d entries. Next run: %v",
		s.schedule, s.keep, next)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *HistoryPruneScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("History prune scheduler: stopped")
}

// RunNow enqueues a prune immediately.
func (s *HistoryPruneScheduler) RunNow() {
	if err := s.enqueuer.EnqueueHistoryPrune(s.keep); err != nil {
		log.Printf("History prune scheduler: %v", err)
	}
}

// IsRunning returns whether the scheduler is active.
func (s *HistoryPruneScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}
