// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package reconcile upgrades user-edited configuration documents against
// their bundled defaults by filling in missing keys.
//
// Reconciliation is split into a pure planning step and an application
// step:
//
//  1. [Diff] walks every key path of the default document in declaration
//     order and produces a [Plan]: one [Patch] per path the user document
//     lacks, and one [Conflict] per path where the default holds a
//     section but the user holds something else.
//  2. [Apply] writes the patches into a document.
//  3. [Reconcile] does both on a copy of the user document and persists
//     the copy only when the plan has patches.
//
// Keys present only in the user document are never touched, and user
// values are never overwritten, so reconciling an already-reconciled
// document produces an empty plan.
package reconcile

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RehanPlayz/oraxen/lib/document"
)

// Patch fills one missing key path with a copy of the default value.
type Patch struct {
	// Path is Keys joined with the document separator, for logs and
	// reports. Keys may themselves contain the separator.
	Path  string
	Keys  []string
	Value *yaml.Node
}

// Conflict records a key path where the default holds a section but the
// user document holds a value of another kind. The user value is kept
// and the default subtree is not merged below it.
type Conflict struct {
	Path     string
	Keys     []string
	UserKind string
}

// Plan is the ordered outcome of comparing a user document to a default.
type Plan struct {
	Patches   []Patch
	Conflicts []Conflict
}

// Changed reports whether applying the plan modifies the document.
func (p Plan) Changed() bool {
	return len(p.Patches) > 0
}

// Paths returns the patched key paths in application order.
func (p Plan) Paths() []string {
	paths := make([]string, len(p.Patches))
	for i, patch := range p.Patches {
		paths[i] = patch.Path
	}
	return paths
}

// Diff computes the patches needed for user to contain every key path of
// defaults. Default keys holding null are not propagated. Neither view
// is modified.
func Diff(user, defaults document.View) Plan {
	var plan Plan
	diffSection(user, defaults, nil, &plan)
	return plan
}

func diffSection(user, defaults document.View, prefix []string, plan *Plan) {
	seen := make(map[string]bool)
	for _, key := range defaults.Keys(false) {
		// Duplicate keys resolve to their first occurrence.
		if seen[key] {
			continue
		}
		seen[key] = true
		keys := append(slices.Clone(prefix), key)

		if !defaults.HasKeys(key) {
			continue
		}

		if !user.HasKeys(key) {
			value, _ := defaults.NodeKeys(key)
			plan.Patches = append(plan.Patches, Patch{Path: joinKeys(keys), Keys: keys, Value: value})
			continue
		}

		defaultSection, ok := defaults.Child(key)
		if !ok {
			continue
		}

		userSection, ok := user.Child(key)
		if !ok {
			plan.Conflicts = append(plan.Conflicts, Conflict{Path: joinKeys(keys), Keys: keys, UserKind: user.KindKeys(key)})
			continue
		}
		diffSection(userSection, defaultSection, keys, plan)
	}
}

func joinKeys(keys []string) string {
	return strings.Join(keys, document.Separator)
}

// Apply writes a copy of every patch value of plan into doc, in order.
func Apply(doc *document.Document, plan Plan) error {
	for _, patch := range plan.Patches {
		if err := doc.SetNodeKeys(patch.Keys, document.CopyNode(patch.Value)); err != nil {
			return fmt.Errorf("applying %s: %w", patch.Path, err)
		}
	}
	return nil
}

// Result describes one reconciliation.
type Result struct {
	Plan

	// Persisted is true when the reconciled document was written back
	// to its backing file.
	Persisted bool

	// PersistErr is the error from writing the reconciled document, if
	// any. The in-memory document is valid even when this is set; only
	// the on-disk copy is stale.
	PersistErr error
}

// Reconcile returns a copy of user with every missing key of defaults
// filled in. When the copy differs from user it is saved to user's
// backing file; documents without one stay in memory. A save failure
// is logged and reported in the result but does not discard the
// reconciled document.
func Reconcile(user *document.Document, defaults document.View, logger *slog.Logger) (*document.Document, Result) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	plan := Diff(user.View(), defaults)
	result := Result{Plan: plan}
	reconciled := user.Clone()

	for _, conflict := range plan.Conflicts {
		logger.Warn("config option shadows a default section",
			"file", user.File(),
			"option", conflict.Path,
			"kind", conflict.UserKind,
		)
	}

	if !plan.Changed() {
		return reconciled, result
	}

	for _, patch := range plan.Patches {
		logger.Info("updating config", "file", user.File(), "option", patch.Path)
	}
	if err := Apply(reconciled, plan); err != nil {
		result.PersistErr = err
		logger.Error("applying config patches", "file", user.File(), "error", err)
		return reconciled, result
	}

	if reconciled.File() == "" {
		return reconciled, result
	}
	if err := reconciled.Save(); err != nil {
		result.PersistErr = err
		logger.Error("saving updated config", "file", user.File(), "error", err)
		return reconciled, result
	}
	result.Persisted = true

	return reconciled, result
}
