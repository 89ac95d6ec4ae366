package dictionary

import (
	"context"
	"sync"
)

// Latest sequences overlapping lookups so that only the newest one counts.
//
// Each Fetch gets a monotonically increasing sequence number and cancels the
// request that was in flight before it. Outcomes whose sequence is no longer
// the latest issued must be discarded by the caller.
type Latest struct {
	client Client

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

func NewLatest(client Client) *Latest {
	return &Latest{client: client}
}

func (l *Latest) Name() string {
	return l.client.Name()
}

// begin issues the next sequence number and a context that is cancelled as
// soon as a newer request begins.
func (l *Latest) begin(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	reqCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	return l.seq, reqCtx, cancel
}

// IsCurrent reports whether seq is the most recently issued sequence number.
func (l *Latest) IsCurrent(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}

// Fetch implements Client. The returned outcome carries its sequence number.
func (l *Latest) Fetch(ctx context.Context, term string) Outcome {
	seq, reqCtx, cancel := l.begin(ctx)
	defer cancel()

	out := l.client.Fetch(reqCtx, term)
	out.Seq = seq
	return out
}

// Search fetches a term and reports whether the outcome is still current.
// ok is false when a newer Fetch or Search started while this one was in flight.
func (l *Latest) Search(ctx context.Context, term string) (out Outcome, ok bool) {
	out = l.Fetch(ctx, term)
	return out, l.IsCurrent(out.Seq)
}
