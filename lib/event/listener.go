// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"errors"
	"fmt"
)

// ErrInvalidParam is returned by a factory when an event parameter is
// not one the variant accepts.
var ErrInvalidParam = errors.New("invalid event parameter")

// Listener describes what an item reacts to. Click is set only for
// CLICK events.
type Listener struct {
	Type       Type
	ItemID     string
	Event      Event
	Conditions []Condition
	Actions    []Action
	Click      *ClickFilter
}

// Hand selects which hand a click must come from.
type Hand string

const (
	HandRight Hand = "right"
	HandLeft  Hand = "left"
	HandAll   Hand = "all"
)

// Target selects what a click must hit.
type Target string

const (
	TargetAll   Target = "all"
	TargetBlock Target = "block"
	TargetAir   Target = "air"
)

// ClickFilter narrows a CLICK listener.
type ClickFilter struct {
	Hand   Hand
	Target Target
}

// Factory builds the listener for one variant.
type Factory func(itemID string, event Event, conditions []Condition, actions []Action) (*Listener, error)

// registry maps every variant to its factory. It is fixed at compile
// time; Parse rejects any type not listed here.
var registry = map[Type]Factory{
	Break:          plainListener,
	Click:          clickListener,
	InventoryClick: plainListener,
	Drop:           plainListener,
	Pickup:         plainListener,
	Equip:          plainListener,
	Unequip:        plainListener,
	Death:          plainListener,
}

func plainListener(itemID string, event Event, conditions []Condition, actions []Action) (*Listener, error) {
	return &Listener{
		Type:       event.Type,
		ItemID:     itemID,
		Event:      event,
		Conditions: conditions,
		Actions:    actions,
	}, nil
}

// clickListener reads CLICK:<hand>:<target>. Both parameters default to
// "all".
func clickListener(itemID string, event Event, conditions []Condition, actions []Action) (*Listener, error) {
	hand := Hand(event.Param(0, string(HandAll)))
	switch hand {
	case HandRight, HandLeft, HandAll:
	default:
		return nil, fmt.Errorf("%w: hand %q (want right, left or all)", ErrInvalidParam, hand)
	}

	target := Target(event.Param(1, string(TargetAll)))
	switch target {
	case TargetAll, TargetBlock, TargetAir:
	default:
		return nil, fmt.Errorf("%w: target %q (want all, block or air)", ErrInvalidParam, target)
	}

	listener, _ := plainListener(itemID, event, conditions, actions)
	listener.Click = &ClickFilter{Hand: hand, Target: target}
	return listener, nil
}
