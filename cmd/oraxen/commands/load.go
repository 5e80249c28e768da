// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"

	"github.com/RehanPlayz/oraxen/lib/config"
	"github.com/RehanPlayz/oraxen/lib/definitions"
	"github.com/RehanPlayz/oraxen/lib/glyph"
	"github.com/RehanPlayz/oraxen/lib/resources"
)

// snapshot is a fully loaded data directory.
type snapshot struct {
	config *config.Config
	items  []definitions.ItemFile
	glyphs []*glyph.Glyph
}

// load validates the configuration of dataDir and builds its glyphs
// and items. Only configuration errors are returned; broken
// definitions are logged and become placeholders or are skipped.
func load(dataDir string, bundle *resources.Bundle, logger *slog.Logger) (*snapshot, error) {
	cfg, err := config.Validate(dataDir, bundle, logger)
	if err != nil {
		return nil, err
	}
	options := cfg.Options()

	glyphs, err := definitions.ParseGlyphs(cfg.GlyphsDir(), definitions.GlyphOptions{
		AutoAssign: options.AutomaticallySetGlyphCode,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("loading glyphs: %w", err)
	}

	items, err := definitions.ParseItems(cfg.ItemsDir(), definitions.ItemOptions{
		ErrorTemplate: options.ErrorItem,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}

	return &snapshot{config: cfg, items: items, glyphs: glyphs}, nil
}

// itemCount returns the number of built items and how many of them
// are placeholders.
func (s *snapshot) itemCount() (total, failed int) {
	for _, file := range s.items {
		total += file.Items.Len()
		failed += len(file.Items.Failures())
	}
	return total, failed
}
