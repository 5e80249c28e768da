// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/RehanPlayz/oraxen/cmd/oraxen/cli"
	"github.com/RehanPlayz/oraxen/lib/config"
)

type validateParams struct {
	cli.DataDirFlags
	cli.JSONOutput
}

// fileReport is the JSON form of a [config.Report].
type fileReport struct {
	Name         string          `json:"name"`
	Path         string          `json:"path"`
	Defaults     string          `json:"defaults"`
	Filled       []string        `json:"filled"`
	Conflicts    []conflictEntry `json:"conflicts,omitempty"`
	Persisted    bool            `json:"persisted"`
	PersistError string          `json:"persist_error,omitempty"`
}

type conflictEntry struct {
	Path     string `json:"path"`
	UserKind string `json:"user_kind"`
}

func newFileReport(report config.Report) fileReport {
	entry := fileReport{
		Name:      report.Name,
		Path:      report.Path,
		Defaults:  report.Defaults,
		Filled:    report.Paths(),
		Persisted: report.Persisted,
	}
	for _, conflict := range report.Conflicts {
		entry.Conflicts = append(entry.Conflicts, conflictEntry{Path: conflict.Path, UserKind: conflict.UserKind})
	}
	if report.PersistErr != nil {
		entry.PersistError = report.PersistErr.Error()
	}
	return entry
}

func (a *app) validateCommand() *cli.Command {
	var params validateParams
	return &cli.Command{
		Name:    "validate",
		Summary: "Fill missing configuration options from the bundled defaults",
		Description: `Extract any missing configuration file and add every option the
bundled defaults have but the user copy lacks. Existing values are
never changed. Files are saved only when an option was added.

Where a default is a section but the user file holds a plain value
at the same key, the user value is kept and reported as a conflict.`,
		Usage: "oraxen validate [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}

			cfg, err := config.Validate(params.Resolve(), a.bundle, logger)
			if err != nil {
				return err
			}

			reports := make([]fileReport, 0, len(cfg.Reports))
			for _, report := range cfg.Reports {
				reports = append(reports, newFileReport(report))
			}
			if done, err := params.EmitJSON(a.stdout, reports); done {
				return err
			}

			for _, report := range reports {
				switch {
				case len(report.Filled) == 0:
					fmt.Fprintf(a.stdout, "%s: up to date\n", report.Name)
				case report.PersistError != "":
					fmt.Fprintf(a.stdout, "%s: filled %d option(s), not saved: %s\n", report.Name, len(report.Filled), report.PersistError)
				default:
					fmt.Fprintf(a.stdout, "%s: filled %d option(s)\n", report.Name, len(report.Filled))
				}
				for _, path := range report.Filled {
					fmt.Fprintf(a.stdout, "  + %s\n", path)
				}
				for _, conflict := range report.Conflicts {
					fmt.Fprintf(a.stdout, "  ! %s: kept %s value where the default is a section\n", conflict.Path, conflict.UserKind)
				}
			}
			return nil
		},
	}
}
