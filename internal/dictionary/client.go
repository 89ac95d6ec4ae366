package dictionary

import (
	"context"
	"errors"

	"github.com/mrlokans/wordly/internal/entities"
)

var (
	// ErrInvalidInput means the term could not be encoded for transport.
	ErrInvalidInput = errors.New("invalid lookup term")
	// ErrTransport covers connectivity, timeout and undecodable body failures.
	ErrTransport = errors.New("dictionary transport error")
	// ErrNotFound means the dictionary service answered with an error object.
	ErrNotFound = errors.New("word not found")
)

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	OutcomeFound OutcomeKind = iota
	OutcomeNotFound
	OutcomeInvalidInput
	OutcomeTransport
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeTransport:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of one lookup.
//
// Exactly one of Entries (Found), APIError (NotFound) or Message
// (InvalidInput, Transport) is meaningful, selected by Kind.
type Outcome struct {
	Kind     OutcomeKind
	Entries  []entities.WordEntry
	APIError *entities.APIError
	Message  string

	// Err wraps one of the package sentinels; nil for Found.
	Err error

	Term      string
	RequestID string
	// Seq is set by Latest; zero for plain Fetch calls.
	Seq uint64
}

// Error returns the failure carried by the outcome, or nil when entries were found.
func (o Outcome) Error() error {
	return o.Err
}

func (o Outcome) Found() bool {
	return o.Kind == OutcomeFound
}

// Client defines the interface for dictionary API providers.
type Client interface {
	Fetch(ctx context.Context, term string) Outcome
	Name() string
}

// FetchAsync runs Fetch off the calling goroutine. The returned channel
// receives exactly one outcome and is then closed.
func FetchAsync(ctx context.Context, client Client, term string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		ch <- client.Fetch(ctx, term)
	}()
	return ch
}
