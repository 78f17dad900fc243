package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Import
		Output
		Tasks
		Retention
		Reports
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		LogLevel                 string
	}
	Database struct {
		Driver string // sqlite or postgres
		Path   string // sqlite file, also the base of the tasks database
		DSN    string // postgres connection string
	}
	Import struct {
		Dir string
	}
	Output struct {
		Driver      string // fs or s3
		Dir         string
		S3Bucket    string
		S3Region    string
		S3Endpoint  string // optional, for MinIO and other compatible stores
		S3Prefix    string
		S3PathStyle bool
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Retention struct {
		ImportRunDays int    // finished import runs older than this are deleted; 0 keeps them
		Schedule      string // Cron format: "0 3 * * *" = nightly at 03:00
	}
	Reports struct {
		OutputDir string
	}
)

// LoadDotEnv loads a .env file into the process environment. A missing
// file is not an error; variables already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("log_level", "info")

	v.SetDefault("database_driver", "sqlite")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	v.SetDefault("import_dir", DefaultImportDir)

	v.SetDefault("output_driver", "fs")
	v.SetDefault("output_dir", DefaultOutputDir)
	v.SetDefault("output_s3_bucket", "")
	v.SetDefault("output_s3_region", "eu-west-1")
	v.SetDefault("output_s3_endpoint", "")
	v.SetDefault("output_s3_prefix", "")
	v.SetDefault("output_s3_path_style", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "90m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("import_run_retention_days", 90)
	v.SetDefault("retention_schedule", "0 3 * * *")

	v.SetDefault("reports_output_dir", "./rapportages")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			LogLevel:                 v.GetString("LOG_LEVEL"),
		},
		Database: Database{
			Driver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Import: Import{
			Dir: v.GetString("IMPORT_DIR"),
		},
		Output: Output{
			Driver:      strings.ToLower(v.GetString("OUTPUT_DRIVER")),
			Dir:         v.GetString("OUTPUT_DIR"),
			S3Bucket:    v.GetString("OUTPUT_S3_BUCKET"),
			S3Region:    v.GetString("OUTPUT_S3_REGION"),
			S3Endpoint:  v.GetString("OUTPUT_S3_ENDPOINT"),
			S3Prefix:    v.GetString("OUTPUT_S3_PREFIX"),
			S3PathStyle: v.GetBool("OUTPUT_S3_PATH_STYLE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Retention: Retention{
			ImportRunDays: v.GetInt("IMPORT_RUN_RETENTION_DAYS"),
			Schedule:      v.GetString("RETENTION_SCHEDULE"),
		},
		Reports: Reports{
			OutputDir: v.GetString("REPORTS_OUTPUT_DIR"),
		},
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return errors.New("DATABASE_PATH is required for the sqlite driver")
		}
	case "postgres", "postgresql":
		if c.Database.DSN == "" {
			return errors.New("DATABASE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver)
	}

	switch c.Output.Driver {
	case "fs":
	case "s3":
		if c.Output.S3Bucket == "" {
			return errors.New("OUTPUT_S3_BUCKET is required for the s3 output driver")
		}
	default:
		return fmt.Errorf("unsupported OUTPUT_DRIVER %q", c.Output.Driver)
	}

	if c.Tasks.Enabled && c.Tasks.Workers < 1 {
		return errors.New("TASK_WORKERS must be at least 1")
	}
	return nil
}
