// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/RehanPlayz/oraxen/cmd/oraxen/cli"
	"github.com/RehanPlayz/oraxen/lib/item"
)

type itemsListParams struct {
	cli.DataDirFlags
	cli.JSONOutput
	Failures bool `flag:"failures" desc:"only list items that failed to build"`
	Check    bool `flag:"check" desc:"exit with status 1 when any item failed to build"`
}

type itemsShowParams struct {
	cli.DataDirFlags
	cli.JSONOutput
}

// itemEntry is the listing form of one built item.
type itemEntry struct {
	ID              string     `json:"id"`
	File            string     `json:"file"`
	Material        string     `json:"material"`
	Name            string     `json:"name,omitempty"`
	Lore            []string   `json:"lore,omitempty"`
	Unbreakable     bool       `json:"unbreakable,omitempty"`
	Model           string     `json:"model,omitempty"`
	CustomModelData int        `json:"custom_model_data,omitempty"`
	Event           string     `json:"event,omitempty"`
	Conditions      []string   `json:"conditions,omitempty"`
	Actions         []string   `json:"actions,omitempty"`
	Error           *itemError `json:"error,omitempty"`
}

type itemError struct {
	Kind    item.Kind `json:"kind"`
	Message string    `json:"message"`
}

func newItemEntry(file string, built *item.Item) itemEntry {
	entry := itemEntry{
		ID:              built.ID,
		File:            file,
		Material:        built.Material,
		Name:            built.PlainName(),
		Lore:            built.Lore,
		Unbreakable:     built.Unbreakable,
		Model:           built.Model,
		CustomModelData: built.CustomModelData,
	}
	if listener := built.Listener; listener != nil {
		entry.Event = listener.Event.String()
		for _, condition := range listener.Conditions {
			entry.Conditions = append(entry.Conditions, condition.String())
		}
		for _, action := range listener.Actions {
			entry.Actions = append(entry.Actions, action.String())
		}
	}
	if failure := built.Failure; failure != nil {
		entry.Error = &itemError{Kind: failure.Kind}
		if failure.Err != nil {
			entry.Error.Message = failure.Err.Error()
		}
	}
	return entry
}

func (a *app) itemsCommand() *cli.Command {
	return &cli.Command{
		Name:    "items",
		Summary: "Inspect item definitions",
		Subcommands: []*cli.Command{
			a.itemsListCommand(),
			a.itemsShowCommand(),
		},
	}
}

func (a *app) itemsListCommand() *cli.Command {
	var params itemsListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List every item built from the items folder",
		Description: `Build every item definition and list the results in file order.

Items that fail to build are listed with the reason; the plugin
replaces them with the error item.`,
		Usage: "oraxen items list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(_ context.Context, _ []string, logger *slog.Logger) error {
			snap, err := load(params.Resolve(), a.bundle, logger)
			if err != nil {
				return err
			}

			var entries []itemEntry
			failed := 0
			for _, file := range snap.items {
				for _, result := range file.Items.Results() {
					if result.Err != nil {
						failed++
					} else if params.Failures {
						continue
					}
					entries = append(entries, newItemEntry(file.Path, result.Item))
				}
			}

			if done, err := params.EmitJSON(a.stdout, entries); done {
				if err == nil && params.Check && failed > 0 {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			// Plain text unless stdout is a colour terminal.
			failureStyle := lipgloss.NewRenderer(a.stdout).NewStyle().
				Foreground(lipgloss.Color("196"))

			writer := tabwriter.NewWriter(a.stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(writer, "ID\tMATERIAL\tMODEL DATA\tEVENT\tSTATUS")
			for _, entry := range entries {
				modelData := "-"
				if entry.CustomModelData != 0 {
					modelData = fmt.Sprint(entry.CustomModelData)
				}
				event := entry.Event
				if event == "" {
					event = "-"
				}
				status := "ok"
				if entry.Error != nil {
					status = failureStyle.Render("error: " + string(entry.Error.Kind))
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", entry.ID, entry.Material, modelData, event, status)
			}
			if err := writer.Flush(); err != nil {
				return err
			}

			if params.Check && failed > 0 {
				fmt.Fprintf(a.stdout, "\n%d item(s) failed to build\n", failed)
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func (a *app) itemsShowCommand() *cli.Command {
	var params itemsShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show one item after model and event resolution",
		Usage:   "oraxen items show <id> [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one item id")
			}
			id := args[0]

			snap, err := load(params.Resolve(), a.bundle, logger)
			if err != nil {
				return err
			}

			// Later files override earlier ones, so search backwards.
			var found *itemEntry
			for i := len(snap.items) - 1; i >= 0 && found == nil; i-- {
				file := snap.items[i]
				if built, ok := file.Items.Get(id); ok {
					entry := newItemEntry(file.Path, built)
					found = &entry
				}
			}
			if found == nil {
				return fmt.Errorf("no item %q in %s", id, snap.config.ItemsDir())
			}

			if done, err := params.EmitJSON(a.stdout, found); done {
				return err
			}
			return printItem(a, found)
		},
	}
}

func printItem(a *app, entry *itemEntry) error {
	writer := tabwriter.NewWriter(a.stdout, 2, 0, 2, ' ', 0)
	row := func(key, value string) {
		if value != "" {
			fmt.Fprintf(writer, "%s:\t%s\n", key, value)
		}
	}
	row("id", entry.ID)
	row("file", entry.File)
	row("material", entry.Material)
	row("name", entry.Name)
	row("lore", strings.Join(entry.Lore, " | "))
	if entry.Unbreakable {
		row("unbreakable", "true")
	}
	row("model", entry.Model)
	if entry.CustomModelData != 0 {
		row("custom model data", fmt.Sprint(entry.CustomModelData))
	}
	row("event", entry.Event)
	row("conditions", strings.Join(entry.Conditions, ", "))
	row("actions", strings.Join(entry.Actions, ", "))
	if entry.Error != nil {
		row("error", fmt.Sprintf("%s: %s", entry.Error.Kind, entry.Error.Message))
	}
	return writer.Flush()
}
