// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Materializer copies bundled resources into a data directory. It never
// overwrites a file that already exists there.
type Materializer struct {
	bundle *Bundle
	root   string
	logger *slog.Logger
}

// NewMaterializer returns a materializer writing under root. A nil
// logger discards output.
func NewMaterializer(bundle *Bundle, root string, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Materializer{bundle: bundle, root: root, logger: logger}
}

// Root returns the data directory.
func (m *Materializer) Root() string {
	return m.root
}

// Path returns the on-disk location of a resource name.
func (m *Materializer) Path(name string) string {
	return filepath.Join(m.root, filepath.FromSlash(name))
}

// EnsurePresent makes sure a user copy of the named resource exists and
// returns its path. A missing copy is created from the bundled bytes,
// with parent directories. An existing copy is left untouched.
//
// A resource absent from both the bundle and the data directory fails
// with [ErrMissingResource].
func (m *Materializer) EnsurePresent(name string) (string, error) {
	target := m.Path(name)

	if _, err := os.Stat(target); err == nil {
		return target, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking %s: %w", target, err)
	}

	data, err := m.bundle.ReadFile(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", target, err)
	}

	// O_EXCL keeps a concurrent writer's copy if one appeared after the
	// stat above.
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return target, nil
	}
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", target, err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return "", fmt.Errorf("writing %s: %w", target, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", target, err)
	}

	m.logger.Info("extracted default resource", "resource", name, "path", target)
	return target, nil
}

// ExtractFolder extracts every bundled file directly under dir whose
// name ends in ext and has no user copy yet. It returns the names that
// were checked, in order.
func (m *Materializer) ExtractFolder(dir, ext string) ([]string, error) {
	names, err := m.bundle.List(dir, ext)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, err := m.EnsurePresent(name); err != nil {
			return nil, err
		}
	}
	return names, nil
}
