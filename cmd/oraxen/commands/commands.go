// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the oraxen CLI command tree.
//
// Every command works on one data directory, chosen by --data-dir,
// $ORAXEN_DATA_DIR, or the plugins/Oraxen default. Commands that read
// definitions run the same startup sequence the plugin runs: settings,
// font, sound, and language files are reconciled against the bundled
// defaults (and saved when keys were filled) before items and glyphs
// are built.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/RehanPlayz/oraxen/cmd/oraxen/cli"
	"github.com/RehanPlayz/oraxen/lib/resources"
	"github.com/RehanPlayz/oraxen/lib/version"
)

// app carries what every command needs besides its flags.
type app struct {
	stdout io.Writer
	bundle *resources.Bundle
}

// Root builds and returns the complete oraxen CLI command tree.
func Root() *cli.Command {
	return newRoot(os.Stdout, resources.Default())
}

func newRoot(stdout io.Writer, bundle *resources.Bundle) *cli.Command {
	a := &app{stdout: stdout, bundle: bundle}
	return &cli.Command{
		Name: "oraxen",
		Description: `Oraxen: custom items, glyphs, and resource pack configuration.

Reconcile a plugin data directory against the bundled defaults and
inspect the item and glyph definitions it holds.`,
		Subcommands: []*cli.Command{
			a.validateCommand(),
			a.itemsCommand(),
			a.glyphsCommand(),
			a.statusCommand(),
			a.watchCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(a.stdout, "oraxen %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Fill missing options in a server's configuration",
				Command:     "oraxen validate --data-dir /srv/minecraft/plugins/Oraxen",
			},
			{
				Description: "List items that failed to build",
				Command:     "oraxen items list --failures",
			},
			{
				Description: "Show the codes assigned to glyphs",
				Command:     "oraxen glyphs list",
			},
			{
				Description: "See which files differ from the bundled defaults",
				Command:     "oraxen status",
			},
			{
				Description: "Rebuild definitions whenever a file changes",
				Command:     "oraxen watch",
			},
		},
	}
}
