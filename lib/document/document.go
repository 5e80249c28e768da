// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNotMapping is returned when a file's top-level value is not a
	// mapping (for example a bare list or scalar).
	ErrNotMapping = errors.New("document root is not a mapping")

	// ErrNoFile is returned by Save on a document that was never
	// associated with a path.
	ErrNoFile = errors.New("document has no backing file")

	// ErrEmptyPath is returned when a mutation is given an empty path.
	ErrEmptyPath = errors.New("empty key path")

	// ErrNotSection is returned when a mutation targets a node that is
	// not a mapping.
	ErrNotSection = errors.New("path does not hold a section")
)

// Document is a parsed configuration or definition file. The embedded
// Section is the root mapping.
type Document struct {
	Section

	// head is the yaml document node. It carries head and foot comments
	// and holds the root mapping as its only child.
	head *yaml.Node

	// file is the path the document was loaded from or is saved to.
	file string
}

// New returns an empty document with no backing file.
func New() *Document {
	root := newMapping()
	return newDocument(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}, "")
}

func newDocument(head *yaml.Node, file string) *Document {
	return &Document{
		Section: Section{node: head.Content[0]},
		head:    head,
		file:    file,
	}
}

// Parse parses YAML bytes into a document. Empty input and a null
// top-level value both produce an empty document.
func Parse(data []byte) (*Document, error) {
	var head yaml.Node
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if head.Kind != yaml.DocumentNode || len(head.Content) == 0 {
		return New(), nil
	}

	root := resolve(head.Content[0])
	switch {
	case root.Kind == yaml.MappingNode:
	case isNull(root):
		root = newMapping()
	default:
		return nil, fmt.Errorf("%w (found %s)", ErrNotMapping, kindName(root.Kind))
	}
	head.Content = []*yaml.Node{root}

	return newDocument(&head, ""), nil
}

// Load reads and parses the file at path. The returned document saves
// back to the same path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	document, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	document.file = path

	return document, nil
}

// File returns the backing path, or "" for an in-memory document.
func (d *Document) File() string {
	return d.file
}

// SetFile associates the document with a backing path.
func (d *Document) SetFile(path string) {
	d.file = path
}

// Clone returns a deep copy of the document with the same backing file.
// Aliases are expanded in the copy.
func (d *Document) Clone() *Document {
	return newDocument(cloneNode(d.head), d.file)
}

// View returns a read-only view of the whole document.
func (d *Document) View() View {
	return View{section: &d.Section}
}

// Encode serializes the document as YAML with two-space indentation.
func (d *Document) Encode() ([]byte, error) {
	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)
	if err := encoder.Encode(d.head); err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buffer.Bytes(), nil
}

// Save writes the document back to its backing file. The write replaces
// the file atomically, so a reader never observes a half-written file.
func (d *Document) Save() error {
	if d.file == "" {
		return ErrNoFile
	}
	return d.SaveAs(d.file)
}

// SaveAs writes the document to path without changing its backing file.
func (d *Document) SaveAs(path string) error {
	data, err := d.Encode()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
