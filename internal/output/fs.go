package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FS writes output files into a local directory, creating it on first write.
type FS struct {
	Dir string
}

func NewFS(dir string) *FS {
	if dir == "" {
		dir = "./seed-output"
	}
	return &FS{Dir: dir}
}

func (s *FS) Driver() Driver { return DriverFS }

func (s *FS) Put(_ context.Context, name string, data []byte) error {
	path, err := s.pathFor(name)
	if err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("failed to ensure output directory: %w", err)
	}

	// Write to a temp file first so readers never see a half-written lookup.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (s *FS) Get(_ context.Context, name string) ([]byte, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, err
}

func (s *FS) pathFor(name string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid output name %q", name)
	}
	return filepath.Join(s.Dir, name), nil
}

func (s *FS) ensureDir() error {
	if _, err := os.Stat(s.Dir); os.IsNotExist(err) {
		return os.MkdirAll(s.Dir, 0o755)
	}
	return nil
}
