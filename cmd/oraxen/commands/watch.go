// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/RehanPlayz/oraxen/cmd/oraxen/cli"
	"github.com/RehanPlayz/oraxen/lib/config"
	"github.com/RehanPlayz/oraxen/lib/watch"
)

type watchParams struct {
	cli.DataDirFlags
	Debounce time.Duration `flag:"debounce" desc:"quiet interval before reloading" default:"250ms"`
}

func (a *app) watchCommand() *cli.Command {
	var params watchParams
	return &cli.Command{
		Name:    "watch",
		Summary: "Reload configuration and definitions when files change",
		Description: `Load the data directory, then watch the configuration files and the
items, glyphs, and languages folders. Each burst of changes reruns the
full load: configuration is reconciled again and every definition is
rebuilt. Runs until interrupted.`,
		Usage: "oraxen watch [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("watch", &params)
		},
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			dataDir := params.Resolve()

			snap, err := load(dataDir, a.bundle, logger)
			if err != nil {
				return err
			}
			logSnapshot(logger, snap)

			watcher, err := watch.New([]string{
				dataDir,
				snap.config.ItemsDir(),
				snap.config.GlyphsDir(),
				filepath.Join(dataDir, config.LanguagesDir),
			}, watch.Options{
				Extension: config.DefinitionExt,
				Debounce:  params.Debounce,
				Logger:    logger,
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			logger.Info("watching data directory", "dirs", watcher.Dirs())
			return watcher.Run(ctx, func(batch watch.Batch) {
				logger.Info("reloading", "changed", batch.Paths)
				snap, err := load(dataDir, a.bundle, logger)
				if err != nil {
					// Keep watching; the next change retries.
					logger.Error("reload failed", "error", err)
					return
				}
				logSnapshot(logger, snap)
			})
		},
	}
}

func logSnapshot(logger *slog.Logger, snap *snapshot) {
	total, failed := snap.itemCount()
	logger.Info("loaded data directory",
		"items", total,
		"failed_items", failed,
		"glyphs", len(snap.glyphs),
		"config_changed", snap.config.Changed(),
	)
}
