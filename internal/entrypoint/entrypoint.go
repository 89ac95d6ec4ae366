package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordly/internal/config"
	"github.com/mrlokans/wordly/internal/database"
	"github.com/mrlokans/wordly/internal/database/library"
	"github.com/mrlokans/wordly/internal/dictionary"
	http_controllers "github.com/mrlokans/wordly/internal/http"
	"github.com/mrlokans/wordly/internal/scheduler"
	"github.com/mrlokans/wordly/internal/services"
	"github.com/mrlokans/wordly/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then shut down within the configured timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// newDictionaryClient builds the Free Dictionary client from configuration.
func newDictionaryClient(cfg config.Dictionary) *dictionary.FreeDictionaryClient {
	var opts []dictionary.Option
	if cfg.BaseURL != "" {
		opts = append(opts, dictionary.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, dictionary.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, dictionary.WithUserAgent(cfg.UserAgent))
	}
	return dictionary.NewFreeDictionaryClient(opts...)
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Wordly v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := library.NewRepository(db.DB)
	dictClient := newDictionaryClient(cfg.Dictionary)
	lookupService := services.NewLookupService(dictClient, repo)
	log.Printf("Dictionary client %s using %s", dictClient.Name(), cfg.Dictionary.BaseURL)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var pruneScheduler *scheduler.HistoryPruneScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		}

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewPruneHistoryQueue(repo))

		// Start task workers in background
		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		taskClient.Start(taskCtx)

		if cfg.History.Limit > 0 {
			lookupService.SetHistoryPruner(taskClient, cfg.History.Limit)

			pruneScheduler = scheduler.NewHistoryPruneScheduler(taskClient, cfg.History.PruneSchedule, cfg.History.Limit)
			if err := pruneScheduler.Start(taskCtx); err != nil {
				log.Printf("WARNING: History prune scheduler disabled: %v", err)
			}
		}
	} else if cfg.History.Limit > 0 {
		log.Printf("WARNING: HISTORY_LIMIT is set but TASKS_ENABLED is false; history will not be pruned")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:      db,
		LookupService: lookupService,
		Library:       repo,
		TaskClient:    taskClient,
		Version:       version,
	})

	// Shutdown callback for graceful cleanup
	onShutdown := func(ctx context.Context) {
		if pruneScheduler != nil {
			pruneScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
