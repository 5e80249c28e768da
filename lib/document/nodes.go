// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Separator joins the keys of a dotted path.
const Separator = "."

func splitPath(path string) []string {
	return strings.Split(path, Separator)
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + Separator + key
}

func lastKey(path string) string {
	if index := strings.LastIndex(path, Separator); index >= 0 {
		return path[index+1:]
	}
	return path
}

func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// resolve follows alias nodes to their anchored target.
func resolve(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	if node == nil || node.Kind == 0 {
		return true
	}
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// putValue replaces the value for key in place, keeping the key node
// and its comments, or appends a new pair.
func putValue(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func collectKeys(node *yaml.Node, prefix string, deep bool, keys *[]string) {
	mapping := resolve(node)
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := joinPath(prefix, mapping.Content[i].Value)
		*keys = append(*keys, key)
		if deep {
			collectKeys(mapping.Content[i+1], key, deep, keys)
		}
	}
}

func collectKeyPaths(node *yaml.Node, prefix []string, paths *[][]string) {
	mapping := resolve(node)
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		path := append(slices.Clone(prefix), mapping.Content[i].Value)
		*paths = append(*paths, path)
		collectKeyPaths(mapping.Content[i+1], path, paths)
	}
}

// CopyNode returns a deep copy of a node tree with aliases expanded.
func CopyNode(node *yaml.Node) *yaml.Node {
	return cloneNode(node)
}

// cloneNode deep-copies a node tree, expanding aliases.
func cloneNode(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		clone := cloneNode(node.Alias)
		clone.Anchor = ""
		return clone
	}

	clone := *node
	clone.Alias = nil
	if node.Content != nil {
		clone.Content = make([]*yaml.Node, len(node.Content))
		for i, child := range node.Content {
			clone.Content[i] = cloneNode(child)
		}
	}
	return &clone
}
