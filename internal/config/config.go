package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Dictionary
		History
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Dictionary struct {
		BaseURL   string
		Timeout   time.Duration
		UserAgent string
	}
	History struct {
		Limit         int    // Max history entries kept; 0 keeps everything
		PruneSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	return FromViper(viper.New())
}

// FromViper builds a Config from environment variables bound to v.
func FromViper(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Dictionary API defaults
	v.SetDefault("dictionary_base_url", DefaultDictionaryBaseURL)
	v.SetDefault("dictionary_timeout", "30s")
	v.SetDefault("dictionary_user_agent", "Wordly/1.0")

	// History retention defaults
	v.SetDefault("history_limit", 0)
	v.SetDefault("history_prune_schedule", "0 3 * * *") // Daily at 03:00

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Dictionary: Dictionary{
			BaseURL:   v.GetString("DICTIONARY_BASE_URL"),
			Timeout:   v.GetDuration("DICTIONARY_TIMEOUT"),
			UserAgent: v.GetString("DICTIONARY_USER_AGENT"),
		},
		History: History{
			Limit:         v.GetInt("HISTORY_LIMIT"),
			PruneSchedule: v.GetString("HISTORY_PRUNE_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
