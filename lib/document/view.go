// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "gopkg.in/yaml.v3"

// View is a read-only face of a document or section. The zero View
// behaves as an empty mapping.
type View struct {
	section *Section
}

// Valid reports whether the view is backed by a section.
func (v View) Valid() bool {
	return v.section != nil
}

// Path returns the dotted path of the viewed section.
func (v View) Path() string {
	if v.section == nil {
		return ""
	}
	return v.section.Path()
}

// Keys returns the keys in declaration order; see [Section.Keys].
func (v View) Keys(deep bool) []string {
	if v.section == nil {
		return nil
	}
	return v.section.Keys(deep)
}

// Has reports whether path holds a non-null value.
func (v View) Has(path string) bool {
	return v.section != nil && v.section.Has(path)
}

// HasKeys reports whether the literal key path holds a non-null value.
func (v View) HasKeys(keys ...string) bool {
	return v.section != nil && v.section.HasKeys(keys...)
}

// IsSection reports whether path holds a mapping.
func (v View) IsSection(path string) bool {
	return v.section != nil && v.section.IsSection(path)
}

// Kind returns the kind name of the value at path; see [Section.Kind].
func (v View) Kind(path string) string {
	if v.section == nil {
		return ""
	}
	return v.section.Kind(path)
}

// KindKeys is Kind with the path given as literal keys.
func (v View) KindKeys(keys ...string) string {
	if v.section == nil {
		return ""
	}
	return v.section.KindKeys(keys...)
}

// KeyPaths returns every key path as literal key segments; see
// [Section.KeyPaths].
func (v View) KeyPaths() [][]string {
	if v.section == nil {
		return nil
	}
	return v.section.KeyPaths()
}

// Child returns a view of the mapping under the literal key.
func (v View) Child(key string) (View, bool) {
	if v.section == nil {
		return View{}, false
	}
	section, ok := v.section.Child(key)
	if !ok {
		return View{}, false
	}
	return View{section: section}, true
}

// Sub returns a view of the mapping at path.
func (v View) Sub(path string) (View, bool) {
	if v.section == nil {
		return View{}, false
	}
	section, ok := v.section.Sub(path)
	if !ok {
		return View{}, false
	}
	return View{section: section}, true
}

// Node returns a deep copy of the node at path.
func (v View) Node(path string) (*yaml.Node, bool) {
	if v.section == nil {
		return nil, false
	}
	return v.section.Node(path)
}

// NodeKeys is Node with the path given as literal keys.
func (v View) NodeKeys(keys ...string) (*yaml.Node, bool) {
	if v.section == nil {
		return nil, false
	}
	return v.section.NodeKeys(keys...)
}

// Decode decodes the value at path into out; see [Section.Decode].
func (v View) Decode(path string, out any) (bool, error) {
	if v.section == nil {
		return false, nil
	}
	return v.section.Decode(path, out)
}

// String returns the scalar at path as a string.
func (v View) String(path string) (string, bool) {
	if v.section == nil {
		return "", false
	}
	return v.section.String(path)
}

// StringOr returns the scalar at path, or fallback when absent.
func (v View) StringOr(path, fallback string) string {
	if value, ok := v.String(path); ok {
		return value
	}
	return fallback
}

// Int returns the integer at path.
func (v View) Int(path string) (int, bool) {
	if v.section == nil {
		return 0, false
	}
	return v.section.Int(path)
}

// Bool returns the boolean at path.
func (v View) Bool(path string) (bool, bool) {
	if v.section == nil {
		return false, false
	}
	return v.section.Bool(path)
}

// BoolOr returns the boolean at path, or fallback when absent or not a
// boolean.
func (v View) BoolOr(path string, fallback bool) bool {
	if value, ok := v.Bool(path); ok {
		return value
	}
	return fallback
}

// Strings returns the sequence of scalars at path.
func (v View) Strings(path string) ([]string, bool) {
	if v.section == nil {
		return nil, false
	}
	return v.section.Strings(path)
}

// Detach returns a mutable deep copy of the viewed section as a
// standalone document.
func (v View) Detach() *Document {
	if v.section == nil {
		return New()
	}
	return v.section.Detach()
}
