// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package document provides the hierarchical, human-editable document
// model shared by every Oraxen configuration and definition file.
//
// A [Document] wraps a yaml.v3 node tree rather than a decoded
// map[string]any, so that key order, comments, and scalar styles of
// untouched keys survive a load/modify/save cycle. Values are addressed
// by dotted paths ("Pack.model", "error_item.material"); keys containing
// the separator are not addressable by path.
//
// Three views of a tree exist:
//
//   - [Document]: the root of a parsed file, with its backing path and
//     [Document.Save].
//   - [Section]: a mapping node inside a document. Mutations through a
//     section are mutations of the owning document.
//   - [View]: a read-only face of a document or section. Bundled
//     defaults and validated configuration are handed out as views; any
//     node returned through a view is a deep copy.
//
// A key whose value is YAML null is treated as absent by [Section.Has]
// and by the typed getters, matching how an empty "key:" line reads to
// a human editor.
package document
