package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/wordly/internal/database"
	"github.com/mrlokans/wordly/internal/database/library"
	"github.com/mrlokans/wordly/internal/dictionary"
	"github.com/mrlokans/wordly/internal/entities"
)

const helloBody = `[{"word":"hello","phonetics":[{"text":"/həˈloʊ/","audio":"http://x/a.mp3"}],"meanings":[{"partOfSpeech":"exclamation","definitions":[{"definition":"used as a greeting."}]}]}]`

const notFoundBody = `{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for."}`

func newUpstream(t *testing.T, bodies map[string]string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		term := filepath.Base(r.URL.Path)
		body, ok := bodies[term]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(notFoundBody))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func setupService(t *testing.T, bodies map[string]string) (*LookupService, *library.Repository, *atomic.Int32) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "wordly.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv, calls := newUpstream(t, bodies)
	repo := library.NewRepository(db.DB)
	client := dictionary.NewFreeDictionaryClient(dictionary.WithBaseURL(srv.URL))

	return NewLookupService(client, repo), repo, calls
}

type fakePruner struct {
	keeps []int
	err   error
}

func (p *fakePruner) EnqueueHistoryPrune(keep int) error {
	p.keeps = append(p.keeps, keep)
	return p.err
}

type failingLibrary struct {
	WordLibrary
}

func (failingLibrary) Add(entities.Collection, string) error {
	return &library.PersistenceError{Op: "add", Collection: entities.CollectionHistory, Err: errors.New("disk full")}
}

func (failingLibrary) Contains(entities.Collection, string) (bool, error) {
	return false, nil
}

func TestLookupService_Search_Found(t *testing.T) {
	svc, repo, calls := setupService(t, map[string]string{"hello": helloBody})

	result, err := svc.Search(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, dictionary.OutcomeFound, result.Outcome.Kind)
	assert.Equal(t, "hello", result.Term)
	assert.Empty(t, result.Message())
	assert.NoError(t, result.LibraryErr)
	assert.Equal(t, map[string]bool{"hello": false}, result.Favorites)
	assert.Equal(t, int32(1), calls.Load())

	history, err := repo.List(entities.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, history)
}

func TestLookupService_Search_ReportsFavouriteState(t *testing.T) {
	svc, repo, _ := setupService(t, map[string]string{"hello": helloBody})
	require.NoError(t, repo.Add(entities.CollectionFavorites, "hello"))

	result, err := svc.Search(context.Background(), "hello")
	require.NoError(t, err)

	assert.True(t, result.Favorites["hello"])
}

func TestLookupService_Search_NotFound(t *testing.T) {
	svc, repo, _ := setupService(t, nil)

	result, err := svc.Search(context.Background(), "zzzqqq")
	require.NoError(t, err)

	assert.Equal(t, dictionary.OutcomeNotFound, result.Outcome.Kind)
	assert.Equal(t, "No Definitions Found\nSorry pal, we couldn't find definitions for the word you were looking for.", result.Message())

	history, err := repo.List(entities.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, []string{"zzzqqq"}, history, "committed searches are recorded whatever the outcome")
	assert.NoError(t, result.LibraryErr)
}

func TestLookupService_Search_TransportFailureIsRecorded(t *testing.T) {
	srv, _ := newUpstream(t, nil)
	baseURL := srv.URL
	srv.Close()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "wordly.db"), database.WithLogLevel(logger.Silent))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := library.NewRepository(db.DB)
	svc := NewLookupService(dictionary.NewFreeDictionaryClient(dictionary.WithBaseURL(baseURL)), repo)

	result, err := svc.Search(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, dictionary.OutcomeTransport, result.Outcome.Kind)
	assert.Equal(t, GenericErrorMessage, result.Message())

	history, err := repo.List(entities.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, history)
}

func TestLookupService_Search_EmptyTermIsPrompt(t *testing.T) {
	svc, _, calls := setupService(t, nil)

	for _, term := range []string{"", "  \t"} {
		result, err := svc.Search(context.Background(), term)
		require.NoError(t, err)
		assert.True(t, result.Prompt)
		assert.Equal(t, PromptMessage, result.Message())
	}
	assert.Equal(t, int32(0), calls.Load())
}

func TestLookupService_Search_TrimsTerm(t *testing.T) {
	svc, repo, _ := setupService(t, map[string]string{"hello": helloBody})

	result, err := svc.Search(context.Background(), "  hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Term)

	history, _ := repo.List(entities.CollectionHistory)
	assert.Equal(t, []string{"hello"}, history)
}

func TestLookupService_Search_HistoryFailureIsReported(t *testing.T) {
	srv, _ := newUpstream(t, map[string]string{"hello": helloBody})
	client := dictionary.NewFreeDictionaryClient(dictionary.WithBaseURL(srv.URL))
	svc := NewLookupService(client, failingLibrary{})

	result, err := svc.Search(context.Background(), "hello")
	require.NoError(t, err)

	assert.True(t, result.Outcome.Found())
	require.Error(t, result.LibraryErr)
	assert.True(t, errors.Is(result.LibraryErr, library.ErrPersistence))
}

func TestLookupService_HistoryPruneIsEnqueued(t *testing.T) {
	svc, _, _ := setupService(t, map[string]string{"hello": helloBody})
	pruner := &fakePruner{err: errors.New("queue closed")}
	svc.SetHistoryPruner(pruner, 50)

	_, err := svc.Search(context.Background(), "hello")
	require.NoError(t, err)
	require.NoError(t, svc.RecordHistory("world"))

	assert.Equal(t, []int{50, 50}, pruner.keeps)
}

func TestLookupService_HistoryPruneDisabled(t *testing.T) {
	svc, _, _ := setupService(t, nil)
	pruner := &fakePruner{}
	svc.SetHistoryPruner(pruner, 0)

	require.NoError(t, svc.RecordHistory("world"))

	assert.Empty(t, pruner.keeps)
}

func TestLookupService_LibraryOperations(t *testing.T) {
	svc, _, _ := setupService(t, nil)

	on, err := svc.ToggleFavorite("cat")
	require.NoError(t, err)
	assert.True(t, on)

	fav, err := svc.IsFavorite("cat")
	require.NoError(t, err)
	assert.True(t, fav)

	favorites, err := svc.Favorites()
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, favorites)

	require.NoError(t, svc.RemoveFavorite("cat"))
	favorites, _ = svc.Favorites()
	assert.Empty(t, favorites)

	require.NoError(t, svc.RecordHistory("one"))
	require.NoError(t, svc.RecordHistory("two"))
	history, err := svc.History()
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "one"}, history)

	require.NoError(t, svc.RemoveHistory("two"))
	history, _ = svc.History()
	assert.Equal(t, []string{"one"}, history)

	require.NoError(t, svc.ClearHistory())
	history, _ = svc.History()
	assert.Empty(t, history)
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		name string
		out  dictionary.Outcome
		want string
	}{
		{"found", dictionary.Outcome{Kind: dictionary.OutcomeFound}, ""},
		{"not found", dictionary.Outcome{Kind: dictionary.OutcomeNotFound, APIError: &entities.APIError{Title: "T", Message: "M"}}, "T\nM"},
		{"not found without message", dictionary.Outcome{Kind: dictionary.OutcomeNotFound, APIError: &entities.APIError{Title: "T"}}, "T"},
		{"transport", dictionary.Outcome{Kind: dictionary.OutcomeTransport, Message: "dial tcp: refused"}, GenericErrorMessage},
		{"invalid input", dictionary.Outcome{Kind: dictionary.OutcomeInvalidInput, Message: "Invalid URL"}, GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutcomeMessage(tt.out))
		})
	}
}

// gatedClient blocks each Fetch until its term is released or its context ends.
type gatedClient struct {
	started chan string
	release map[string]chan struct{}
}

func newGatedClient(terms ...string) *gatedClient {
	g := &gatedClient{started: make(chan string, len(terms)), release: make(map[string]chan struct{})}
	for _, term := range terms {
		g.release[term] = make(chan struct{})
	}
	return g
}

func (g *gatedClient) Name() string { return "gated" }

func (g *gatedClient) Fetch(ctx context.Context, term string) dictionary.Outcome {
	g.started <- term
	select {
	case <-g.release[term]:
		return dictionary.Outcome{Kind: dictionary.OutcomeFound, Term: term, Entries: []entities.WordEntry{{Word: term}}}
	case <-ctx.Done():
		return dictionary.Outcome{Kind: dictionary.OutcomeTransport, Term: term, Message: ctx.Err().Error(), Err: ctx.Err()}
	}
}

type searchReturn struct {
	result *SearchResult
	err    error
}

func searchAsync(search func(context.Context, string) (*SearchResult, error), term string) <-chan searchReturn {
	done := make(chan searchReturn, 1)
	go func() {
		result, err := search(context.Background(), term)
		done <- searchReturn{result, err}
	}()
	return done
}

func waitFor(t *testing.T, ch <-chan searchReturn) searchReturn {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("search did not finish")
		return searchReturn{}
	}
}

func TestSearchSession_NewerSearchSupersedesOlder(t *testing.T) {
	gated := newGatedClient("old", "new")
	svc := NewLookupService(gated, &memoryLibrary{})
	session := svc.NewSession()

	oldDone := searchAsync(session.Search, "old")
	require.Equal(t, "old", <-gated.started)

	newDone := searchAsync(session.Search, "new")
	require.Equal(t, "new", <-gated.started)

	old := waitFor(t, oldDone)
	assert.Nil(t, old.result)
	assert.True(t, errors.Is(old.err, ErrSuperseded))

	close(gated.release["new"])
	fresh := waitFor(t, newDone)
	require.NoError(t, fresh.err)
	assert.True(t, fresh.result.Outcome.Found())
	assert.Equal(t, "new", fresh.result.Term)
}

func TestLookupService_IndependentSearchesDoNotInterfere(t *testing.T) {
	gated := newGatedClient("slow", "fast")
	svc := NewLookupService(gated, &memoryLibrary{})

	slowDone := searchAsync(svc.Search, "slow")
	require.Equal(t, "slow", <-gated.started)

	fastDone := searchAsync(svc.NewSession().Search, "fast")
	require.Equal(t, "fast", <-gated.started)

	close(gated.release["fast"])
	fast := waitFor(t, fastDone)
	require.NoError(t, fast.err)
	assert.True(t, fast.result.Outcome.Found())

	close(gated.release["slow"])
	slow := waitFor(t, slowDone)
	require.NoError(t, slow.err)
	assert.True(t, slow.result.Outcome.Found())
}

func TestSessionRegistry(t *testing.T) {
	svc := NewLookupService(newGatedClient(), &memoryLibrary{})
	registry := NewSessionRegistry(svc, 2)

	a := registry.Get("a")
	assert.Same(t, a, registry.Get("a"))
	b := registry.Get("b")
	assert.NotSame(t, a, b)

	// "a" was used after "b" was created, so "b" is evicted first.
	registry.Get("a")
	registry.Get("c")
	assert.Equal(t, 2, registry.Len())
	assert.Same(t, a, registry.Get("a"))
	assert.NotSame(t, b, registry.Get("b"))
}

// memoryLibrary is an in-memory WordLibrary for tests that do not need SQLite.
type memoryLibrary struct {
	mu    sync.Mutex
	words map[entities.Collection][]string
}

func (m *memoryLibrary) Add(c entities.Collection, word string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.words == nil {
		m.words = make(map[entities.Collection][]string)
	}
	m.words[c] = append(m.words[c], word)
	return nil
}

func (m *memoryLibrary) List(c entities.Collection) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.words[c]...), nil
}

func (m *memoryLibrary) Remove(entities.Collection, string) error { return nil }

func (m *memoryLibrary) Contains(c entities.Collection, word string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.words[c] {
		if w == word {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryLibrary) Toggle(entities.Collection, string) (bool, error) { return false, nil }

func (m *memoryLibrary) Clear(entities.Collection) error { return nil }
