// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/RehanPlayz/oraxen/lib/document"
	"github.com/RehanPlayz/oraxen/lib/event"
)

// FallbackMaterial is the placeholder material when the error item
// template has no usable one.
const FallbackMaterial = "BARRIER"

// FirstModelData is the first custom model data value handed out per
// material by a [ModelDataAllocator].
const FirstModelData = 1000

// ModelDataAllocator hands out custom model data values per material.
// Values already used by a definition are reserved first so that
// assignment never collides with them.
type ModelDataAllocator struct {
	next     map[string]int
	reserved map[string]map[int]bool
}

// NewModelDataAllocator returns an empty allocator.
func NewModelDataAllocator() *ModelDataAllocator {
	return &ModelDataAllocator{
		next:     make(map[string]int),
		reserved: make(map[string]map[int]bool),
	}
}

// Reserve marks value as used for material.
func (a *ModelDataAllocator) Reserve(material string, value int) {
	if a.reserved[material] == nil {
		a.reserved[material] = make(map[int]bool)
	}
	a.reserved[material][value] = true
}

// Next returns the lowest unreserved value for material at or after
// the previous one, starting at [FirstModelData].
func (a *ModelDataAllocator) Next(material string) int {
	value, ok := a.next[material]
	if !ok {
		value = FirstModelData
	}
	for a.reserved[material][value] {
		value++
	}
	a.Reserve(material, value)
	a.next[material] = value + 1
	return value
}

// ReserveModelData reserves every explicit custom model data value
// declared in doc. Malformed definitions are ignored here; the builder
// reports them.
func ReserveModelData(doc *document.Document, alloc *ModelDataAllocator) {
	for _, id := range doc.Keys(false) {
		section, ok := doc.Child(id)
		if !ok {
			continue
		}
		descriptor, err := ParseDescriptor(id, section)
		if err != nil || descriptor.CustomModelData == 0 {
			continue
		}
		alloc.Reserve(descriptor.Material, descriptor.CustomModelData)
	}
}

// Options configures a [Builder].
type Options struct {
	// ErrorTemplate is the error_item section used for placeholders. A
	// nil template yields bare placeholders of [FallbackMaterial].
	ErrorTemplate *document.Document

	// ModelData assigns custom model data. Share one allocator across
	// the files of a directory. Nil means a fresh allocator per builder.
	ModelData *ModelDataAllocator

	Logger *slog.Logger
}

// Builder builds the items of definition documents.
type Builder struct {
	template *document.Document
	alloc    *ModelDataAllocator
	logger   *slog.Logger

	kindStyle lipgloss.Style
	idStyle   lipgloss.Style
}

// NewBuilder returns a builder configured by options.
func NewBuilder(options Options) *Builder {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	alloc := options.ModelData
	if alloc == nil {
		alloc = NewModelDataAllocator()
	}

	// Placeholder names are rendered for players, not for the terminal
	// running the process, so the profile is fixed instead of detected.
	renderer := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	renderer.SetColorProfile(termenv.ANSI256)

	return &Builder{
		template:  options.ErrorTemplate,
		alloc:     alloc,
		logger:    logger,
		kindStyle: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("88")),
		idStyle:   renderer.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// Result is the outcome of building one item. Item is always set; Err
// is set when Item is a placeholder.
type Result struct {
	ID   string
	Item *Item
	Err  *BuildError
}

// Set holds the items of one definition document in declaration order.
type Set struct {
	results   []Result
	index     map[string]int
	updated   bool
	rewritten bool
	saveErr   error
}

// IDs returns the item ids in declaration order.
func (s *Set) IDs() []string {
	ids := make([]string, len(s.results))
	for i, result := range s.results {
		ids[i] = result.ID
	}
	return ids
}

// Get returns the item with id.
func (s *Set) Get(id string) (*Item, bool) {
	index, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.results[index].Item, true
}

// Len returns the number of items, placeholders included.
func (s *Set) Len() int {
	return len(s.results)
}

// Results returns every result in declaration order.
func (s *Set) Results() []Result {
	return slices.Clone(s.results)
}

// Failures returns the build errors in declaration order.
func (s *Set) Failures() []*BuildError {
	var failures []*BuildError
	for _, result := range s.results {
		if result.Err != nil {
			failures = append(failures, result.Err)
		}
	}
	return failures
}

// Updated reports whether building wrote assigned values into the
// document.
func (s *Set) Updated() bool {
	return s.updated
}

// Rewritten reports whether the updated document was saved.
func (s *Set) Rewritten() bool {
	return s.rewritten
}

// SaveErr returns the error from saving the updated document, if any.
func (s *Set) SaveErr() error {
	return s.saveErr
}

// entry is one descriptor slot of the first pass.
type entry struct {
	descriptor *Descriptor
	err        error
}

// Build builds every item of doc. Top-level keys that do not hold a
// section are skipped, and a repeated key builds only its first
// occurrence. When resolution assigned values into doc, doc
// is saved once at the end; a save failure is logged and reported by
// [Set.SaveErr].
func (b *Builder) Build(doc *document.Document) *Set {
	ReserveModelData(doc, b.alloc)

	// Pass 1: parse every descriptor, keeping failures for pass 2.
	var ids []string
	entries := make(map[string]*entry)
	for _, id := range doc.Keys(false) {
		if _, seen := entries[id]; seen {
			b.logger.Warn("duplicate item id", "file", doc.File(), "item", id)
			continue
		}
		section, ok := doc.Child(id)
		if !ok {
			continue
		}
		descriptor, err := ParseDescriptor(id, section)
		ids = append(ids, id)
		entries[id] = &entry{descriptor: descriptor, err: err}
	}

	// Pass 2: resolve in declaration order.
	resolver := &resolver{entries: entries, models: make(map[string]string)}
	set := &Set{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		item, updated, err := b.resolve(resolver, id)
		result := Result{ID: id, Item: item}
		if err != nil {
			result.Err = newBuildError(id, err)
			b.logger.Error("error building item",
				"file", doc.File(),
				"item", id,
				"kind", result.Err.Kind,
				"error", err,
			)
			result.Item = b.placeholder(result.Err)
		}
		if updated {
			set.updated = true
		}
		set.index[id] = len(set.results)
		set.results = append(set.results, result)
	}

	if set.updated && doc.File() != "" {
		if err := doc.Save(); err != nil {
			set.saveErr = err
			b.logger.Error("saving updated item file", "file", doc.File(), "error", err)
		} else {
			set.rewritten = true
		}
	}

	return set
}

// resolve builds one item. updated reports whether the item's section
// was written to.
func (b *Builder) resolve(r *resolver, id string) (*Item, bool, error) {
	slot := r.entries[id]
	if slot.err != nil {
		return nil, false, slot.err
	}
	descriptor := slot.descriptor

	model, err := r.model(id, nil)
	if err != nil {
		return nil, false, err
	}

	item := &Item{
		ID:              id,
		Material:        descriptor.Material,
		DisplayName:     descriptor.DisplayName,
		Lore:            descriptor.Lore,
		Unbreakable:     descriptor.Unbreakable,
		Model:           model,
		ParentModel:     descriptor.ParentModel,
		Textures:        descriptor.Textures,
		CustomModelData: descriptor.CustomModelData,
	}

	if descriptor.Event != "" {
		parsed, err := event.Parse(descriptor.Event, descriptor.OneUsage)
		if err != nil {
			return nil, false, err
		}
		listener, err := parsed.Listener(id,
			event.ParseConditions(descriptor.Conditions),
			event.ParseActions(descriptor.Actions),
		)
		if err != nil {
			return nil, false, err
		}
		item.Listener = listener
	}

	updated := false
	if model != "" && item.CustomModelData == 0 {
		value := b.alloc.Next(item.Material)
		if err := descriptor.Section.Set(KeyCustomModelData, value); err != nil {
			return nil, false, fmt.Errorf("assigning custom model data: %w", err)
		}
		descriptor.CustomModelData = value
		item.CustomModelData = value
		updated = true
	}

	return item, updated, nil
}

// resolver memoizes model resolution across one Build call.
type resolver struct {
	entries map[string]*entry
	models  map[string]string
}

// model returns the model of item id, following Pack.model_from.
// chain holds the ids being resolved, for cycle detection.
func (r *resolver) model(id string, chain []string) (string, error) {
	if model, ok := r.models[id]; ok {
		return model, nil
	}
	if slices.Contains(chain, id) {
		cycle := append(slices.Clone(chain[slices.Index(chain, id):]), id)
		return "", &ReferenceCycleError{Chain: cycle}
	}

	descriptor := r.entries[id].descriptor
	var model string
	switch {
	case descriptor.Model != "":
		model = descriptor.Model
	case descriptor.ModelFrom != "":
		target, ok := r.entries[descriptor.ModelFrom]
		if !ok {
			return "", &UnknownReferenceError{Field: KeyModelFrom, Reference: descriptor.ModelFrom}
		}
		if target.err != nil {
			return "", &InvalidValueError{
				Field:  KeyModelFrom,
				Value:  descriptor.ModelFrom,
				Reason: "referenced item failed to build",
			}
		}
		borrowed, err := r.model(descriptor.ModelFrom, append(chain, id))
		if err != nil {
			return "", err
		}
		model = borrowed
	case descriptor.GenerateModel:
		model = id
	}

	r.models[id] = model
	return model, nil
}

// Placeholder returns the item substituted for a failed definition. It
// never fails: every template value it cannot use is replaced by a
// fallback.
func (b *Builder) Placeholder(kind Kind, id string) *Item {
	return b.placeholder(&BuildError{ItemID: id, Kind: kind})
}

func (b *Builder) placeholder(failure *BuildError) *Item {
	item := &Item{
		ID:          failure.ItemID,
		Material:    FallbackMaterial,
		DisplayName: b.kindStyle.Render(string(failure.Kind)+":") + " " + b.idStyle.Render(failure.ItemID),
		Placeholder: true,
		Failure:     failure,
	}
	if b.template == nil {
		return item
	}

	if material, ok := b.template.String(KeyMaterial); ok && materialPattern.MatchString(material) {
		item.Material = material
	}
	if lore, ok := b.template.Strings(KeyLore); ok {
		item.Lore = lore
	}
	if value, ok := b.template.Int(KeyCustomModelData); ok && value > 0 {
		item.CustomModelData = value
	}
	if model, ok := b.template.String(KeyModel); ok {
		item.Model = model
	}
	return item
}
