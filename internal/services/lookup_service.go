package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/mrlokans/wordly/internal/dictionary"
	"github.com/mrlokans/wordly/internal/entities"
)

const (
	// PromptMessage is shown when there is nothing to look up yet.
	PromptMessage = "Search for a word to see its definitions."
	// GenericErrorMessage is shown for transport and input failures.
	GenericErrorMessage = "Something went wrong. Please check your connection and try again."
)

// ErrSuperseded is returned by Search when a newer search started before this
// one finished. The stale outcome has been discarded.
var ErrSuperseded = errors.New("search superseded by a newer request")

// HistoryPruner enqueues background trimming of the history collection.
type HistoryPruner interface {
	EnqueueHistoryPrune(keep int) error
}

// SearchResult is what the presentation layer renders after a search.
type SearchResult struct {
	Term    string
	Prompt  bool
	Outcome dictionary.Outcome

	// Favorites maps each returned headword to its favourite state.
	Favorites map[string]bool

	// LibraryErr reports a failed history write or favourite lookup. The
	// lookup itself still succeeded.
	LibraryErr error
}

// Message returns the user-visible text for the result.
func (r *SearchResult) Message() string {
	if r.Prompt {
		return PromptMessage
	}
	return OutcomeMessage(r.Outcome)
}

// OutcomeMessage maps a lookup outcome to user-visible text. Found yields "".
func OutcomeMessage(out dictionary.Outcome) string {
	switch out.Kind {
	case dictionary.OutcomeFound:
		return ""
	case dictionary.OutcomeNotFound:
		if out.APIError == nil {
			return GenericErrorMessage
		}
		if out.APIError.Message == "" {
			return out.APIError.Title
		}
		return out.APIError.Title + "\n" + out.APIError.Message
	default:
		return GenericErrorMessage
	}
}

// LookupService composes the dictionary client and the word library the way
// the search screen uses them.
type LookupService struct {
	client  dictionary.Client
	library WordLibrary

	pruner       HistoryPruner
	historyLimit int
}

func NewLookupService(client dictionary.Client, library WordLibrary) *LookupService {
	return &LookupService{
		client:  client,
		library: library,
	}
}

// SetHistoryPruner enables history retention. After each history write a
// prune down to limit entries is enqueued. limit <= 0 disables retention.
func (s *LookupService) SetHistoryPruner(pruner HistoryPruner, limit int) {
	s.pruner = pruner
	s.historyLimit = limit
}

// fetchFunc performs one lookup and reports whether its outcome is still current.
type fetchFunc func(ctx context.Context, term string) (dictionary.Outcome, bool)

// Search looks up term once. Independent calls never affect each other;
// use a SearchSession when newer searches should supersede older ones.
func (s *LookupService) Search(ctx context.Context, term string) (*SearchResult, error) {
	return s.search(ctx, term, func(ctx context.Context, term string) (dictionary.Outcome, bool) {
		return s.client.Fetch(ctx, term), true
	})
}

// NewSession starts a search session for a single caller.
func (s *LookupService) NewSession() *SearchSession {
	return &SearchSession{svc: s, latest: dictionary.NewLatest(s.client)}
}

// search commits term: an empty term yields a prompt without any request,
// any other term is recorded in history before it is fetched.
func (s *LookupService) search(ctx context.Context, term string, fetch fetchFunc) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return &SearchResult{Prompt: true}, nil
	}

	var libErrs []error
	if err := s.RecordHistory(term); err != nil {
		libErrs = append(libErrs, err)
	}

	out, current := fetch(ctx, term)
	if !current {
		log.Printf("[LOOKUP] Discarding stale outcome for %q (seq %d)", term, out.Seq)
		return nil, ErrSuperseded
	}

	result := &SearchResult{Term: term, Outcome: out}
	if !out.Found() {
		log.Printf("[LOOKUP] %q: %s", term, out.Kind)
		result.LibraryErr = errors.Join(libErrs...)
		return result, nil
	}

	result.Favorites = make(map[string]bool, len(out.Entries))
	for _, entry := range out.Entries {
		if _, seen := result.Favorites[entry.Word]; seen {
			continue
		}
		fav, err := s.library.Contains(entities.CollectionFavorites, entry.Word)
		if err != nil {
			libErrs = append(libErrs, err)
			continue
		}
		result.Favorites[entry.Word] = fav
	}
	result.LibraryErr = errors.Join(libErrs...)

	return result, nil
}

// RecordHistory stores a committed search term in history.
func (s *LookupService) RecordHistory(term string) error {
	if err := s.library.Add(entities.CollectionHistory, term); err != nil {
		return fmt.Errorf("record history: %w", err)
	}

	if s.pruner != nil && s.historyLimit > 0 {
		if err := s.pruner.EnqueueHistoryPrune(s.historyLimit); err != nil {
			log.Printf("[LOOKUP] Failed to enqueue history prune: %v", err)
		}
	}
	return nil
}

// ToggleFavorite flips the favourite state of word and returns the new state.
func (s *LookupService) ToggleFavorite(word string) (bool, error) {
	return s.library.Toggle(entities.CollectionFavorites, word)
}

func (s *LookupService) IsFavorite(word string) (bool, error) {
	return s.library.Contains(entities.CollectionFavorites, word)
}

func (s *LookupService) Favorites() ([]string, error) {
	return s.library.List(entities.CollectionFavorites)
}

// History returns searched words, most recent first.
func (s *LookupService) History() ([]string, error) {
	return s.library.List(entities.CollectionHistory)
}

func (s *LookupService) RemoveFavorite(word string) error {
	return s.library.Remove(entities.CollectionFavorites, word)
}

func (s *LookupService) RemoveHistory(word string) error {
	return s.library.Remove(entities.CollectionHistory, word)
}

func (s *LookupService) ClearHistory() error {
	return s.library.Clear(entities.CollectionHistory)
}
