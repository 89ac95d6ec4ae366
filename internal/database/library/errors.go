package library

import (
	"errors"
	"fmt"

	"github.com/mrlokans/wordly/internal/entities"
)

var (
	// ErrEmptyWord is returned when a write is attempted with an empty word.
	ErrEmptyWord = errors.New("word must not be empty")

	// ErrUnknownCollection is returned for a collection other than favorites or history.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrPersistence marks failures of the underlying store.
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError describes a failed read or write against the store.
// The collection is left as it was before the operation.
type PersistenceError struct {
	Op         string
	Collection entities.Collection
	Word       string
	Err        error
}

func (e *PersistenceError) Error() string {
	if e.Word == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s %q: %v", e.Op, e.Collection, e.Word, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}
