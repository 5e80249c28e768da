// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/RehanPlayz/oraxen/cmd/oraxen/cli"
	"github.com/RehanPlayz/oraxen/lib/config"
	"github.com/RehanPlayz/oraxen/lib/resources"
)

// File states reported by status.
const (
	stateDefault  = "default"
	stateModified = "modified"
	stateMissing  = "missing"
)

type statusParams struct {
	cli.DataDirFlags
	cli.JSONOutput
}

type statusEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	State string `json:"state"`
}

func (a *app) statusCommand() *cli.Command {
	var params statusParams
	return &cli.Command{
		Name:    "status",
		Summary: "Compare the data directory with the bundled defaults",
		Description: `Report, for every bundled resource, whether the user copy is missing,
identical to the bundled default, or modified. Nothing is written:
status does not extract or reconcile files.`,
		Usage: "oraxen status [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("status", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			entries, err := status(a.bundle, params.Resolve())
			if err != nil {
				return err
			}
			logger.Debug("compared bundled resources", "count", len(entries))

			if done, err := params.EmitJSON(a.stdout, entries); done {
				return err
			}

			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "FILE\tSTATE")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\n", entry.Name, entry.State)
			}
			return writer.Flush()
		},
	}
}

// status fingerprints every bundled resource and its user copy under
// dataDir.
func status(bundle *resources.Bundle, dataDir string) ([]statusEntry, error) {
	names := []string{config.SettingsFile, config.FontFile, config.SoundFile}
	for _, dir := range []string{config.LanguagesDir, config.ItemsDir, config.GlyphsDir} {
		listed, err := bundle.List(dir, config.DefinitionExt)
		if err != nil {
			return nil, err
		}
		names = append(names, listed...)
	}

	entries := make([]statusEntry, 0, len(names))
	for _, name := range names {
		userPath := filepath.Join(dataDir, filepath.FromSlash(name))
		entry := statusEntry{Name: name, Path: userPath}

		want, err := bundle.Fingerprint(name)
		if err != nil {
			return nil, err
		}
		got, err := resources.FingerprintFile(userPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			entry.State = stateMissing
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", userPath, err)
		case got == want:
			entry.State = stateDefault
		default:
			entry.State = stateModified
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
