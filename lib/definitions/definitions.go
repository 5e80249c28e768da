// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package definitions loads the item and glyph definition directories
// of a data directory.
//
// Files are processed in byte-wise order of their names, and sections
// within a file in declaration order, so identifiers that collide
// across files always resolve the same way: the last file wins.
package definitions

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RehanPlayz/oraxen/lib/document"
	"github.com/RehanPlayz/oraxen/lib/glyph"
	"github.com/RehanPlayz/oraxen/lib/item"
)

// DefaultExtension is the extension of definition files.
const DefaultExtension = ".yml"

// Files returns the regular files directly in dir whose name ends in
// ext, sorted byte-wise by name. A missing directory has no files.
func Files(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	// os.ReadDir already sorts, but the order is part of the contract.
	sort.Strings(names)

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// loadAll loads every definition file of dir. Files that fail to parse
// are logged and left out.
func loadAll(dir, ext string, logger *slog.Logger) ([]*document.Document, error) {
	paths, err := Files(dir, ext)
	if err != nil {
		return nil, err
	}

	var docs []*document.Document
	for _, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			logger.Error("skipping unreadable definition file", "file", path, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func extension(ext string) string {
	if ext == "" {
		return DefaultExtension
	}
	return ext
}

func discardIfNil(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// GlyphOptions configures [ParseGlyphs].
type GlyphOptions struct {
	// Extension filters definition files. Empty means [DefaultExtension].
	Extension string

	// AutoAssign allows files whose glyphs were given codes to be
	// rewritten. Without it assigned codes live only in memory.
	AutoAssign bool

	Logger *slog.Logger
}

// ParseGlyphs builds every glyph under dir. Explicit codes from all
// files are reserved before any code is assigned, so assignment never
// takes a code a later file declares. A glyph that fails to build is
// logged and skipped.
func ParseGlyphs(dir string, options GlyphOptions) ([]*glyph.Glyph, error) {
	logger := discardIfNil(options.Logger)

	docs, err := loadAll(dir, extension(options.Extension), logger)
	if err != nil {
		return nil, err
	}

	alloc := glyph.NewCodeAllocator()
	for _, doc := range docs {
		for _, name := range doc.Keys(false) {
			section, ok := doc.Child(name)
			if !ok {
				continue
			}
			if code, ok, _ := glyph.ReadCode(section); ok {
				alloc.Reserve(code)
			}
		}
	}

	var glyphs []*glyph.Glyph
	for _, doc := range docs {
		fileChanged := false
		seen := make(map[string]bool)
		for _, name := range doc.Keys(false) {
			if seen[name] {
				logger.Warn("duplicate glyph name", "file", doc.File(), "glyph", name)
				continue
			}
			seen[name] = true
			section, ok := doc.Child(name)
			if !ok {
				continue
			}
			built, err := glyph.New(name, section, alloc)
			if err != nil {
				logger.Error("error building glyph", "file", doc.File(), "glyph", name, "error", err)
				continue
			}
			if built.FileChanged {
				fileChanged = true
			}
			glyphs = append(glyphs, built)
		}

		if fileChanged && options.AutoAssign {
			if err := doc.Save(); err != nil {
				logger.Error("saving glyph file", "file", doc.File(), "error", err)
			}
		}
	}

	return glyphs, nil
}

// ItemOptions configures [ParseItems].
type ItemOptions struct {
	// Extension filters definition files. Empty means [DefaultExtension].
	Extension string

	// ErrorTemplate is the error_item section used for placeholders.
	ErrorTemplate *document.Document

	Logger *slog.Logger
}

// ItemFile holds the items built from one definition file.
type ItemFile struct {
	Path  string
	Items *item.Set
}

// ParseItems builds every item file under dir, in file order. Custom
// model data declared in any file is reserved before any is assigned.
func ParseItems(dir string, options ItemOptions) ([]ItemFile, error) {
	logger := discardIfNil(options.Logger)

	docs, err := loadAll(dir, extension(options.Extension), logger)
	if err != nil {
		return nil, err
	}

	alloc := item.NewModelDataAllocator()
	for _, doc := range docs {
		item.ReserveModelData(doc, alloc)
	}

	builder := item.NewBuilder(item.Options{
		ErrorTemplate: options.ErrorTemplate,
		ModelData:     alloc,
		Logger:        logger,
	})

	files := make([]ItemFile, 0, len(docs))
	for _, doc := range docs {
		files = append(files, ItemFile{Path: doc.File(), Items: builder.Build(doc)})
	}
	return files, nil
}

// Index flattens item files into one mapping by id. When an id appears
// in several files, the last file wins.
func Index(files []ItemFile) map[string]*item.Item {
	index := make(map[string]*item.Item)
	for _, file := range files {
		for _, result := range file.Items.Results() {
			index[result.ID] = result.Item
		}
	}
	return index
}
