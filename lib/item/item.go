// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package item builds items from an item definition file.
//
// Building runs in two passes. The first parses every top-level section
// of the file into a [Descriptor]. The second resolves each descriptor,
// in declaration order, into an [Item]. Resolution may follow a
// Pack.model_from reference to any other item of the file, including
// one declared later, which is why every descriptor must exist before
// any is resolved.
//
// A definition that fails to parse or resolve does not stop the file.
// Its result carries a [BuildError], and its item is a placeholder built
// from the error item template whose display name shows the failure
// kind and the item id. The placeholder itself cannot fail.
package item

import (
	"github.com/charmbracelet/x/ansi"

	"github.com/RehanPlayz/oraxen/lib/event"
)

// Item is a resolved item, or a placeholder standing in for one that
// failed to build.
type Item struct {
	ID          string
	Material    string
	DisplayName string
	Lore        []string
	Unbreakable bool

	// Model is the resource pack model path, empty for items that use
	// the vanilla model of their material.
	Model           string
	ParentModel     string
	Textures        []string
	CustomModelData int

	// Listener is nil for items without an event.
	Listener *event.Listener

	// Placeholder is true when the item stands in for a failed
	// definition; Failure then holds the reason.
	Placeholder bool
	Failure     *BuildError
}

// PlainName returns the display name without terminal styling.
func (i *Item) PlainName() string {
	return ansi.Strip(i.DisplayName)
}
