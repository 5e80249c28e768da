// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package resources provides the default configuration files bundled
// with the binary and copies them into a data directory on first run.
//
// The bundle is embedded at compile time via go:embed. Names are
// slash-delimited paths relative to the bundle root, for example
// "settings.yml" or "languages/english.yml". Tests substitute an
// [fstest.MapFS] through [New].
package resources

import (
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/RehanPlayz/oraxen/lib/document"
)

//go:embed defaults
var defaultFiles embed.FS

// ErrMissingResource is returned when a name is not part of the bundle.
var ErrMissingResource = errors.New("resource not bundled")

// Bundle is a read-only set of default resource files.
type Bundle struct {
	fsys fs.FS
}

// Default returns the bundle compiled into the binary.
func Default() *Bundle {
	sub, err := fs.Sub(defaultFiles, "defaults")
	if err != nil {
		// fs.Sub only fails on an invalid directory name.
		panic(fmt.Sprintf("resources: %v", err))
	}
	return &Bundle{fsys: sub}
}

// New returns a bundle backed by fsys.
func New(fsys fs.FS) *Bundle {
	return &Bundle{fsys: fsys}
}

// ReadFile returns the raw bytes of a bundled resource.
func (b *Bundle) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(b.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingResource, name)
	}
	if err != nil {
		return nil, fmt.Errorf("reading bundled %s: %w", name, err)
	}
	return data, nil
}

// Has reports whether name is bundled.
func (b *Bundle) Has(name string) bool {
	info, err := fs.Stat(b.fsys, name)
	return err == nil && !info.IsDir()
}

// Document parses a bundled resource. The result is read-only; bundled
// defaults are never written.
func (b *Bundle) Document(name string) (document.View, error) {
	data, err := b.ReadFile(name)
	if err != nil {
		return document.View{}, err
	}
	doc, err := document.Parse(data)
	if err != nil {
		return document.View{}, fmt.Errorf("bundled %s: %w", name, err)
	}
	return doc.View(), nil
}

// List returns the names of bundled files directly under dir whose name
// ends in ext, sorted. A directory absent from the bundle yields nil.
func (b *Bundle) List(dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(b.fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing bundled %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, path.Join(dir, entry.Name()))
	}
	sort.Strings(names)
	return names, nil
}

// Fingerprint returns the BLAKE3 hex digest of a bundled resource.
func (b *Bundle) Fingerprint(name string) (string, error) {
	data, err := b.ReadFile(name)
	if err != nil {
		return "", err
	}
	return fingerprint(data), nil
}

// FingerprintFile returns the BLAKE3 hex digest of a file on disk.
func FingerprintFile(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return fingerprint(data), nil
}

func fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
