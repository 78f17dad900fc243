package tasks

import "time"

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. Default: 1, so
	// seeding runs never overlap.
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. It must
	// exceed the longest seeding run. Default: 90m
	ReleaseAfter time.Duration

	// CleanupInterval is how often backlite purges finished tasks. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         1,
		ReleaseAfter:    90 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}
