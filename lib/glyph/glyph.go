// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package glyph builds glyph records from definition sections and
// assigns private-use code points to glyphs declared without one.
package glyph

import (
	"errors"
	"fmt"

	"github.com/RehanPlayz/oraxen/lib/document"
)

// Definition keys.
const (
	KeyTexture      = "texture"
	KeyAscent       = "ascent"
	KeyHeight       = "height"
	KeyCode         = "code"
	KeyPlaceholders = "chat.placeholders"
	KeyPermission   = "chat.permission"
)

// Defaults for keys a definition omits.
const (
	DefaultAscent = 8
	DefaultHeight = 8
)

// FirstCode is the first code point handed out by a [CodeAllocator],
// the start of the Basic Multilingual Plane private use area.
const FirstCode rune = 0xE000

// LastCode is the last private use code point of the BMP.
const LastCode rune = 0xF8FF

// ErrCodesExhausted is returned when every private use code is taken.
var ErrCodesExhausted = errors.New("no free glyph code")

// ErrInvalidCode is returned for a code that is not a valid code point.
var ErrInvalidCode = errors.New("invalid glyph code")

// Glyph is one font glyph.
type Glyph struct {
	Name         string
	Texture      string
	Ascent       int
	Height       int
	Code         rune
	Placeholders []string
	Permission   string

	// FileChanged is true when building the glyph wrote to its section,
	// so the backing file needs saving.
	FileChanged bool
}

// Character returns the glyph's code point as a string.
func (g *Glyph) Character() string {
	return string(g.Code)
}

// New builds the glyph called name from its definition section. A
// definition without a code gets the next free code from alloc, which
// is written into the section.
func New(name string, section *document.Section, alloc *CodeAllocator) (*Glyph, error) {
	glyph := &Glyph{
		Name:    name,
		Texture: name,
		Ascent:  DefaultAscent,
		Height:  DefaultHeight,
	}

	if texture, ok := section.String(KeyTexture); ok && texture != "" {
		glyph.Texture = texture
	}
	if ascent, ok := section.Int(KeyAscent); ok {
		glyph.Ascent = ascent
	}
	if height, ok := section.Int(KeyHeight); ok {
		glyph.Height = height
	}
	if placeholders, ok := section.Strings(KeyPlaceholders); ok {
		glyph.Placeholders = placeholders
	}
	if permission, ok := section.String(KeyPermission); ok {
		glyph.Permission = permission
	}

	if section.Has(KeyCode) {
		code, err := readCode(section)
		if err != nil {
			return nil, fmt.Errorf("glyph %s: %w", name, err)
		}
		glyph.Code = code
		return glyph, nil
	}

	code, err := alloc.Next()
	if err != nil {
		return nil, fmt.Errorf("glyph %s: %w", name, err)
	}
	if err := section.Set(KeyCode, int(code)); err != nil {
		return nil, fmt.Errorf("glyph %s: %w", name, err)
	}
	glyph.Code = code
	glyph.FileChanged = true

	return glyph, nil
}

// ReadCode returns the explicit code of a definition section, if any.
func ReadCode(section *document.Section) (rune, bool, error) {
	if !section.Has(KeyCode) {
		return 0, false, nil
	}
	code, err := readCode(section)
	return code, err == nil, err
}

func readCode(section *document.Section) (rune, error) {
	value, ok := section.Int(KeyCode)
	if !ok {
		raw, _ := section.String(KeyCode)
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidCode, raw)
	}
	if value <= 0 || value > 0x10FFFF || (value >= 0xD800 && value <= 0xDFFF) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCode, value)
	}
	return rune(value), nil
}

// CodeAllocator hands out unused private use code points in ascending
// order. The zero value is not usable; see [NewCodeAllocator].
type CodeAllocator struct {
	next     rune
	reserved map[rune]bool
}

// NewCodeAllocator returns an allocator starting at [FirstCode].
func NewCodeAllocator() *CodeAllocator {
	return &CodeAllocator{next: FirstCode, reserved: make(map[rune]bool)}
}

// Reserve marks code as taken so Next never returns it.
func (a *CodeAllocator) Reserve(code rune) {
	a.reserved[code] = true
}

// Next returns the lowest free code at or after the previous one.
func (a *CodeAllocator) Next() (rune, error) {
	for a.next <= LastCode {
		code := a.next
		a.next++
		if !a.reserved[code] {
			a.reserved[code] = true
			return code, nil
		}
	}
	return 0, ErrCodesExhausted
}
