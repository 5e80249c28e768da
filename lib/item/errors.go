// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RehanPlayz/oraxen/lib/event"
)

// Kind names the class of failure that turned an item into a
// placeholder. It is shown to players in the placeholder's name.
type Kind string

const (
	KindMalformed        Kind = "MalformedDefinitionError"
	KindMissingField     Kind = "MissingFieldError"
	KindInvalidValue     Kind = "InvalidValueError"
	KindUnknownReference Kind = "UnknownReferenceError"
	KindReferenceCycle   Kind = "ReferenceCycleError"
	KindUnknownVariant   Kind = "UnknownVariantError"
	KindInvalidEvent     Kind = "InvalidEventError"
	KindBuild            Kind = "BuildError"
)

// MissingFieldError is returned when a required key is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidValueError is returned when a key holds a value of the right
// shape that the item cannot use.
type InvalidValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// MalformedError is returned when a key holds a value of the wrong
// shape, for example a mapping where a list is expected.
type MalformedError struct {
	Field string
	Err   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s: %v", e.Field, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// UnknownReferenceError is returned when a key names an item that does
// not exist in the same file.
type UnknownReferenceError struct {
	Field     string
	Reference string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown item %q", e.Field, e.Reference)
}

// ReferenceCycleError is returned when model references loop. Chain
// starts and ends with the same id.
type ReferenceCycleError struct {
	Chain []string
}

func (e *ReferenceCycleError) Error() string {
	return "model reference cycle: " + strings.Join(e.Chain, " -> ")
}

// BuildError is the per-item failure recorded by [Builder.Build].
type BuildError struct {
	ItemID string
	Kind   Kind
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("item %s: %s: %v", e.ItemID, e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// newBuildError classifies err.
func newBuildError(itemID string, err error) *BuildError {
	return &BuildError{ItemID: itemID, Kind: KindOf(err), Err: err}
}

// KindOf returns the failure kind of err.
func KindOf(err error) Kind {
	var (
		buildErr   *BuildError
		missing    *MissingFieldError
		invalid    *InvalidValueError
		malformed  *MalformedError
		unknownRef *UnknownReferenceError
		cycle      *ReferenceCycleError
		unknown    *event.UnknownVariantError
	)
	switch {
	case errors.As(err, &buildErr):
		return buildErr.Kind
	case errors.As(err, &missing):
		return KindMissingField
	case errors.As(err, &invalid):
		return KindInvalidValue
	case errors.As(err, &malformed):
		return KindMalformed
	case errors.As(err, &unknownRef):
		return KindUnknownReference
	case errors.As(err, &cycle):
		return KindReferenceCycle
	case errors.As(err, &unknown):
		return KindUnknownVariant
	case errors.Is(err, event.ErrInvalidParam):
		return KindInvalidEvent
	default:
		return KindBuild
	}
}
