package services

import (
	"context"
	"sync"

	"github.com/mrlokans/wordly/internal/dictionary"
)

// DefaultMaxSessions bounds how many search sessions a SessionRegistry keeps.
const DefaultMaxSessions = 1024

// SearchSession is the search box of one caller. Starting a search cancels
// the caller's previous in-flight search, whose Search then returns
// ErrSuperseded.
type SearchSession struct {
	svc    *LookupService
	latest *dictionary.Latest
}

func (ss *SearchSession) Search(ctx context.Context, term string) (*SearchResult, error) {
	return ss.svc.search(ctx, term, ss.latest.Search)
}

type sessionEntry struct {
	session  *SearchSession
	lastUsed uint64
}

// SessionRegistry hands out one SearchSession per caller ID. When full, the
// least recently used session is dropped.
type SessionRegistry struct {
	svc *LookupService
	max int

	mu       sync.Mutex
	clock    uint64
	sessions map[string]*sessionEntry
}

func NewSessionRegistry(svc *LookupService, max int) *SessionRegistry {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &SessionRegistry{
		svc:      svc,
		max:      max,
		sessions: make(map[string]*sessionEntry),
	}
}

// Get returns the session for id, creating it on first use.
func (r *SessionRegistry) Get(id string) *SearchSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clock++
	now := r.clock
	if e, ok := r.sessions[id]; ok {
		e.lastUsed = now
		return e.session
	}

	if len(r.sessions) >= r.max {
		r.evictOldest()
	}
	e := &sessionEntry{session: r.svc.NewSession(), lastUsed: now}
	r.sessions[id] = e
	return e.session
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) evictOldest() {
	var (
		oldestID string
		oldest   uint64
		found    bool
	)
	for id, e := range r.sessions {
		if !found || e.lastUsed < oldest {
			oldestID, oldest, found = id, e.lastUsed, true
		}
	}
	if found {
		delete(r.sessions, oldestID)
	}
}
