// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Section is a mapping inside a document, addressed by its path from
// the document root. Paths passed to Section methods are relative to
// the section.
type Section struct {
	node *yaml.Node
	path string
}

// Path returns the dotted path of the section from the document root.
// The root section has an empty path.
func (s *Section) Path() string {
	return s.path
}

// Name returns the last key of the section's path.
func (s *Section) Name() string {
	return lastKey(s.path)
}

// Keys returns the keys of the section in declaration order. With deep
// set, nested mapping keys follow their parent as full relative paths,
// so a section {a: {b: 1}, c: 2} yields [a a.b c].
func (s *Section) Keys(deep bool) []string {
	var keys []string
	collectKeys(s.node, "", deep, &keys)
	return keys
}

// Lookup returns the node at path, including explicit nulls. The node
// is the live node of the document.
func (s *Section) Lookup(path string) (*yaml.Node, bool) {
	return s.LookupKeys(splitPath(path)...)
}

// LookupKeys is Lookup with the path given as literal keys, so a key
// may itself contain the separator.
func (s *Section) LookupKeys(keys ...string) (*yaml.Node, bool) {
	current := resolve(s.node)
	for _, key := range keys {
		if current.Kind != yaml.MappingNode {
			return nil, false
		}
		value := mappingValue(current, key)
		if value == nil {
			return nil, false
		}
		current = resolve(value)
	}
	return current, true
}

// Has reports whether path holds a non-null value.
func (s *Section) Has(path string) bool {
	return s.HasKeys(splitPath(path)...)
}

// HasKeys reports whether the literal key path holds a non-null value.
func (s *Section) HasKeys(keys ...string) bool {
	node, ok := s.LookupKeys(keys...)
	return ok && !isNull(node)
}

// IsSection reports whether path holds a mapping.
func (s *Section) IsSection(path string) bool {
	node, ok := s.Lookup(path)
	return ok && node.Kind == yaml.MappingNode
}

// Kind returns a short name for the kind of value at path ("mapping",
// "sequence", "scalar", "null"), or "" when the path is absent.
func (s *Section) Kind(path string) string {
	return s.KindKeys(splitPath(path)...)
}

// KindKeys is Kind with the path given as literal keys.
func (s *Section) KindKeys(keys ...string) string {
	node, ok := s.LookupKeys(keys...)
	if !ok {
		return ""
	}
	if isNull(node) {
		return "null"
	}
	return kindName(node.Kind)
}

// Sub returns the mapping at path as a section of the same document.
func (s *Section) Sub(path string) (*Section, bool) {
	node, ok := s.Lookup(path)
	if !ok || node.Kind != yaml.MappingNode {
		return nil, false
	}
	return &Section{node: node, path: joinPath(s.path, path)}, true
}

// Child returns the mapping stored under the literal key. Unlike Sub,
// a key containing the separator names a single entry.
func (s *Section) Child(key string) (*Section, bool) {
	node, ok := s.LookupKeys(key)
	if !ok || node.Kind != yaml.MappingNode {
		return nil, false
	}
	return &Section{node: node, path: joinPath(s.path, key)}, true
}

// KeyPaths returns every key path of the section as literal key
// segments, in the order of Keys(true).
func (s *Section) KeyPaths() [][]string {
	var paths [][]string
	collectKeyPaths(s.node, nil, &paths)
	return paths
}

// Decode decodes the value at path into out. It returns false with a
// nil error when the path is absent or null.
func (s *Section) Decode(path string, out any) (bool, error) {
	node, ok := s.Lookup(path)
	if !ok || isNull(node) {
		return false, nil
	}
	if err := node.Decode(out); err != nil {
		return true, fmt.Errorf("%s: %w", joinPath(s.path, path), err)
	}
	return true, nil
}

// String returns the scalar at path as a string.
func (s *Section) String(path string) (string, bool) {
	node, ok := s.Lookup(path)
	if !ok || isNull(node) || node.Kind != yaml.ScalarNode {
		return "", false
	}
	return node.Value, true
}

// Int returns the integer at path.
func (s *Section) Int(path string) (int, bool) {
	var value int
	present, err := s.Decode(path, &value)
	return value, present && err == nil
}

// Bool returns the boolean at path.
func (s *Section) Bool(path string) (bool, bool) {
	var value bool
	present, err := s.Decode(path, &value)
	return value, present && err == nil
}

// Strings returns the sequence of scalars at path.
func (s *Section) Strings(path string) ([]string, bool) {
	var values []string
	present, err := s.Decode(path, &values)
	return values, present && err == nil
}

// Set encodes value and stores it at path, creating intermediate
// mappings as needed. An intermediate key holding a non-mapping value
// is replaced by a mapping.
func (s *Section) Set(path string, value any) error {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return fmt.Errorf("encoding %s: %w", joinPath(s.path, path), err)
	}
	return s.SetNode(path, &node)
}

// SetNode stores value at path. The node is stored as given; callers
// that pass nodes from another document should pass a copy.
func (s *Section) SetNode(path string, value *yaml.Node) error {
	if path == "" {
		return ErrEmptyPath
	}
	return s.SetNodeKeys(splitPath(path), value)
}

// SetNodeKeys is SetNode with the path given as literal keys.
func (s *Section) SetNodeKeys(keys []string, value *yaml.Node) error {
	if len(keys) == 0 {
		return ErrEmptyPath
	}

	current := resolve(s.node)
	if current.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %q", ErrNotSection, s.path)
	}

	for _, key := range keys[:len(keys)-1] {
		next := mappingValue(current, key)
		if next == nil || resolve(next).Kind != yaml.MappingNode {
			child := newMapping()
			putValue(current, key, child)
			current = child
			continue
		}
		current = resolve(next)
	}
	putValue(current, keys[len(keys)-1], value)

	return nil
}

// Node returns a deep copy of the node at path.
func (s *Section) Node(path string) (*yaml.Node, bool) {
	return s.NodeKeys(splitPath(path)...)
}

// NodeKeys is Node with the path given as literal keys.
func (s *Section) NodeKeys(keys ...string) (*yaml.Node, bool) {
	node, ok := s.LookupKeys(keys...)
	if !ok {
		return nil, false
	}
	return cloneNode(node), true
}

// Detach returns a standalone document holding a deep copy of the
// section. The copy has no backing file.
func (s *Section) Detach() *Document {
	root := cloneNode(resolve(s.node))
	if root.Kind != yaml.MappingNode {
		root = newMapping()
	}
	return newDocument(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, "")
}
