// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package config runs the startup configuration sequence for an Oraxen
// data directory.
//
// [Validate] makes sure every bundled configuration file has a user
// copy, reconciles each copy against its bundled default (filling
// missing keys and persisting the result), and extracts the example
// item and glyph folders on first run. The user copies are the single
// source of truth: environment variables do not override document
// keys. The only environment input is the data directory itself, see
// [ResolveDataDir].
//
// The language file is chosen by the plugin-language setting. A
// language without a bundled pack is reconciled against the bundled
// english pack, so a new translation starts as a full copy of the
// english keys.
//
// Key exports:
//
//   - [Validate] -- the startup sequence, returns a [Config]
//   - [Config] -- read-only views of the validated documents
//   - [Settings] -- typed values read from settings.yml
//   - [ResolveDataDir] -- flag, then $ORAXEN_DATA_DIR, then the default
package config
