// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/RehanPlayz/oraxen/cmd/oraxen/cli"
)

type glyphsListParams struct {
	cli.DataDirFlags
	cli.JSONOutput
}

type glyphEntry struct {
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	Character    string   `json:"character"`
	Texture      string   `json:"texture"`
	Ascent       int      `json:"ascent"`
	Height       int      `json:"height"`
	Placeholders []string `json:"placeholders,omitempty"`
	Permission   string   `json:"permission,omitempty"`
}

func (a *app) glyphsCommand() *cli.Command {
	return &cli.Command{
		Name:    "glyphs",
		Summary: "Inspect glyph definitions",
		Subcommands: []*cli.Command{
			a.glyphsListCommand(),
		},
	}
}

func (a *app) glyphsListCommand() *cli.Command {
	var params glyphsListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List every glyph with its assigned code",
		Description: `Build every glyph definition and list the code point each one uses.

Glyphs without a code get the next free private-use code. When
automatically-set-glyph-code is enabled in settings.yml, assigned codes
are written back to the glyph files.`,
		Usage: "oraxen glyphs list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			snap, err := load(params.Resolve(), a.bundle, logger)
			if err != nil {
				return err
			}

			entries := make([]glyphEntry, 0, len(snap.glyphs))
			for _, built := range snap.glyphs {
				entries = append(entries, glyphEntry{
					Name:         built.Name,
					Code:         fmt.Sprintf("U+%04X", built.Code),
					Character:    built.Character(),
					Texture:      built.Texture,
					Ascent:       built.Ascent,
					Height:       built.Height,
					Placeholders: built.Placeholders,
					Permission:   built.Permission,
				})
			}
			if done, err := params.EmitJSON(a.stdout, entries); done {
				return err
			}

			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "NAME\tCODE\tTEXTURE\tASCENT\tHEIGHT\tPLACEHOLDERS")
			for _, entry := range entries {
				placeholders := strings.Join(entry.Placeholders, " ")
				if placeholders == "" {
					placeholders = "-"
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%d\t%s\n",
					entry.Name, entry.Code, entry.Texture, entry.Ascent, entry.Height, placeholders)
			}
			return writer.Flush()
		},
	}
}
