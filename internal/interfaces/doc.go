// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - WordLibrary: favourites and history CRUD (internal/services/interfaces.go)
//   - HistoryTrimmer: history retention (internal/tasks/prune_history.go)
//   - Pinger: database health checks (internal/http/health.go)
//
// ## External Service Interfaces
//
//   - Client: dictionary lookups returning an Outcome (internal/dictionary/client.go)
//
// ## Background Work Interfaces
//
//   - HistoryPruner: enqueue a prune after a history write (internal/services/lookup_service.go)
//   - PruneEnqueuer: enqueue a prune on a cron schedule (internal/scheduler/history_prune.go)
//
// # Adding a New Dictionary Provider
//
// To add a new word definition source:
//
//  1. Implement Client in internal/dictionary/
//
//     type WiktionaryClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *WiktionaryClient) Fetch(ctx context.Context, term string) Outcome
//     func (c *WiktionaryClient) Name() string
//
//  2. Add a compile-time check to checks.go:
//
//     var _ dictionary.Client = (*dictionary.WiktionaryClient)(nil)
//
//  3. Configure in entrypoint.go. Wrap it in services.NewLookupService so stale
//     outcomes are discarded.
//
// # Adding a New Word Collection
//
//  1. Add a Collection constant and a gorm model in internal/entities/library.go
//  2. Map it in library.model and library.newRecord
//  3. Add the model to database.Migrate
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
