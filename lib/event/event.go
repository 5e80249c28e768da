// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package event parses the event attached to an item definition and
// binds it to a listener description.
//
// An event is written as a colon-separated string: the first token
// names the variant, the rest are parameters kept verbatim.
//
//	event: "CLICK:right:block"
//	one_usage: true
//	conditions: ["permission:oraxen.ruby"]
//	actions: ["message:Hello"]
//
// The set of variants is closed. Each variant has a [Factory] in a
// static registry that turns an event into a [Listener]. Listeners are
// data: nothing in this module dispatches game events to them.
package event

import (
	"fmt"
	"sort"
	"strings"
)

// Type names an event variant.
type Type string

// The closed set of event variants.
const (
	Break          Type = "BREAK"
	Click          Type = "CLICK"
	InventoryClick Type = "INV_CLICK"
	Drop           Type = "DROP"
	Pickup         Type = "PICKUP"
	Equip          Type = "EQUIP"
	Unequip        Type = "UNEQUIP"
	Death          Type = "DEATH"
)

// Separator splits event, condition and action strings into tokens.
const Separator = ":"

// UnknownVariantError is returned when the first token of an event
// string does not name a variant.
type UnknownVariantError struct {
	Token string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown event type %q (known: %s)", e.Token, strings.Join(typeNames(), ", "))
}

// Event is a parsed event string.
type Event struct {
	Type     Type
	Params   []string
	OneUsage bool
}

// Parse splits raw on ":" and selects the variant named by the first
// token. Remaining tokens become Params, verbatim and in order, except
// that trailing empty tokens are dropped.
func Parse(raw string, oneUsage bool) (Event, error) {
	tokens := splitTokens(raw)
	eventType := Type(tokens[0])
	if _, ok := registry[eventType]; !ok {
		return Event{}, &UnknownVariantError{Token: tokens[0]}
	}
	return Event{
		Type:     eventType,
		Params:   tokens[1:],
		OneUsage: oneUsage,
	}, nil
}

// String returns the event in its source form.
func (e Event) String() string {
	return strings.Join(append([]string{string(e.Type)}, e.Params...), Separator)
}

// Param returns the parameter at index, or fallback when there are
// fewer parameters.
func (e Event) Param(index int, fallback string) string {
	if index < len(e.Params) && e.Params[index] != "" {
		return e.Params[index]
	}
	return fallback
}

// Listener builds the listener description for this event through the
// variant's registered factory.
func (e Event) Listener(itemID string, conditions []Condition, actions []Action) (*Listener, error) {
	factory, ok := registry[e.Type]
	if !ok {
		return nil, &UnknownVariantError{Token: string(e.Type)}
	}
	return factory(itemID, e, conditions, actions)
}

// Condition is a parsed condition string such as "permission:node".
type Condition struct {
	Type   string
	Params []string
}

// splitTokens splits raw on the separator and drops trailing empty
// tokens. The first token is always kept, so "" yields [""].
func splitTokens(raw string) []string {
	tokens := strings.Split(raw, Separator)
	end := len(tokens)
	for end > 1 && tokens[end-1] == "" {
		end--
	}
	return tokens[:end]
}

// ParseCondition splits raw on ":".
func ParseCondition(raw string) Condition {
	tokens := splitTokens(raw)
	return Condition{Type: tokens[0], Params: tokens[1:]}
}

// String rejoins the condition into its source form.
func (c Condition) String() string {
	return strings.Join(append([]string{c.Type}, c.Params...), Separator)
}

// Action is a parsed action string such as "message:Hello".
type Action struct {
	Type   string
	Params []string
}

// ParseAction splits raw on ":".
func ParseAction(raw string) Action {
	tokens := splitTokens(raw)
	return Action{Type: tokens[0], Params: tokens[1:]}
}

func (a Action) String() string {
	return strings.Join(append([]string{a.Type}, a.Params...), Separator)
}

// ParseConditions parses every string in raw.
func ParseConditions(raw []string) []Condition {
	conditions := make([]Condition, len(raw))
	for i, entry := range raw {
		conditions[i] = ParseCondition(entry)
	}
	return conditions
}

// ParseActions parses every string in raw.
func ParseActions(raw []string) []Action {
	actions := make([]Action, len(raw))
	for i, entry := range raw {
		actions[i] = ParseAction(entry)
	}
	return actions
}

// Types returns every registered variant, sorted.
func Types() []Type {
	types := make([]Type, 0, len(registry))
	for eventType := range registry {
		types = append(types, eventType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func typeNames() []string {
	types := Types()
	names := make([]string, len(types))
	for i, eventType := range types {
		names[i] = string(eventType)
	}
	return names
}
