package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalDisk is the local-filesystem driver.
type LocalDisk struct {
	root string
}

// NewLocalDisk returns a disk rooted at root. The directory is created lazily
// on the first write.
func NewLocalDisk(root string) (*LocalDisk, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage/local: root directory is required")
	}
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("storage/local: resolve root: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	return &LocalDisk{root: root}, nil
}

// Root returns the absolute directory files are written to.
func (d *LocalDisk) Root() string {
	return d.root
}

func (d *LocalDisk) abs(name string) (string, error) {
	clean := filepath.Base(filepath.Clean("/" + name))
	if clean == "/" || clean == "." || clean != name {
		return "", fmt.Errorf("storage/local: invalid name %q", name)
	}
	return filepath.Join(d.root, clean), nil
}

func (d *LocalDisk) Put(_ context.Context, name string, content []byte) error {
	full, err := d.abs(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	return nil
}

func (d *LocalDisk) Get(_ context.Context, name string) ([]byte, error) {
	full, err := d.abs(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: get %s: %w", name, err)
	}
	return data, nil
}

func (d *LocalDisk) Exists(_ context.Context, name string) (bool, error) {
	full, err := d.abs(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(full)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage/local: stat %s: %w", name, err)
	}
	return true, nil
}

func (d *LocalDisk) Delete(_ context.Context, name string) error {
	full, err := d.abs(name)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage/local: delete %s: %w", name, err)
	}
	return nil
}
