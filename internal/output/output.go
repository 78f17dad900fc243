// Package output stores the files a seeding run produces: per-stage
// diagnostics and the lookup tables later stages (or later runs) read back.
//
// # Drivers
//
//   - fs: files under a local directory (default)
//   - s3: objects in an S3 compatible bucket
//   - memory: process memory, for tests
//
// # Usage
//
//	sink, err := output.New(ctx, output.Config{Driver: output.DriverFS, Dir: "./seed-output"})
//	err = output.PutJSON(ctx, sink, "plaatsen-diagnostics.json", snapshot)
package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no object exists under the name.
var ErrNotFound = errors.New("output object not found")

type Driver string

const (
	DriverFS     Driver = "fs"
	DriverS3     Driver = "s3"
	DriverMemory Driver = "memory"
)

// Sink is a flat name → bytes store. Put overwrites.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	Driver() Driver
}

// Config selects and configures a sink driver.
type Config struct {
	Driver Driver
	Dir    string
	S3     S3Config
}

// New builds the sink for cfg.Driver.
func New(ctx context.Context, cfg Config) (Sink, error) {
	switch cfg.Driver {
	case "", DriverFS:
		return NewFS(cfg.Dir), nil
	case DriverS3:
		s3Sink, err := NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3Sink, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown output driver %q", cfg.Driver)
	}
}

// PutJSON writes v as indented JSON.
func PutJSON(ctx context.Context, sink Sink, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return sink.Put(ctx, name, data)
}

// GetJSON reads name into v.
func GetJSON(ctx context.Context, sink Sink, name string, v any) error {
	data, err := sink.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
