// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package item

import (
	"regexp"
	"strings"

	"github.com/RehanPlayz/oraxen/lib/document"
)

// Definition keys.
const (
	KeyMaterial        = "material"
	KeyDisplayName     = "displayname"
	KeyLore            = "lore"
	KeyUnbreakable     = "unbreakable"
	KeyModel           = "Pack.model"
	KeyModelFrom       = "Pack.model_from"
	KeyGenerateModel   = "Pack.generate_model"
	KeyParentModel     = "Pack.parent_model"
	KeyTextures        = "Pack.textures"
	KeyCustomModelData = "Pack.custom_model_data"
	KeyEvent           = "event"
	KeyOneUsage        = "one_usage"
	KeyConditions      = "conditions"
	KeyActions         = "actions"
)

var materialPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// Descriptor is an item definition parsed from its section but not yet
// resolved against the other items of its file.
type Descriptor struct {
	ID      string
	Section *document.Section

	Material    string
	DisplayName string
	Lore        []string
	Unbreakable bool

	Model           string
	ModelFrom       string
	GenerateModel   bool
	ParentModel     string
	Textures        []string
	CustomModelData int

	Event      string
	OneUsage   bool
	Conditions []string
	Actions    []string
}

// ParseDescriptor reads the definition of item id from section.
// Material names are case-insensitive and stored upper case.
func ParseDescriptor(id string, section *document.Section) (*Descriptor, error) {
	descriptor := &Descriptor{ID: id, Section: section}

	if !section.Has(KeyMaterial) {
		return nil, &MissingFieldError{Field: KeyMaterial}
	}
	material, ok := section.String(KeyMaterial)
	if !ok {
		return nil, &MalformedError{Field: KeyMaterial, Err: shapeError(section, KeyMaterial, "scalar")}
	}
	descriptor.Material = strings.ToUpper(material)
	if !materialPattern.MatchString(descriptor.Material) {
		return nil, &InvalidValueError{Field: KeyMaterial, Value: material, Reason: "not a material name"}
	}

	var err error
	if descriptor.DisplayName, err = optionalString(section, KeyDisplayName); err != nil {
		return nil, err
	}
	if descriptor.Lore, err = optionalStrings(section, KeyLore); err != nil {
		return nil, err
	}
	if descriptor.Unbreakable, err = optionalBool(section, KeyUnbreakable); err != nil {
		return nil, err
	}

	if descriptor.Model, err = optionalString(section, KeyModel); err != nil {
		return nil, err
	}
	if descriptor.ModelFrom, err = optionalString(section, KeyModelFrom); err != nil {
		return nil, err
	}
	if descriptor.GenerateModel, err = optionalBool(section, KeyGenerateModel); err != nil {
		return nil, err
	}
	if descriptor.ParentModel, err = optionalString(section, KeyParentModel); err != nil {
		return nil, err
	}
	if descriptor.Textures, err = optionalStrings(section, KeyTextures); err != nil {
		return nil, err
	}
	if descriptor.CustomModelData, err = optionalModelData(section); err != nil {
		return nil, err
	}

	if descriptor.Event, err = optionalString(section, KeyEvent); err != nil {
		return nil, err
	}
	if descriptor.OneUsage, err = optionalBool(section, KeyOneUsage); err != nil {
		return nil, err
	}
	if descriptor.Conditions, err = optionalStrings(section, KeyConditions); err != nil {
		return nil, err
	}
	if descriptor.Actions, err = optionalStrings(section, KeyActions); err != nil {
		return nil, err
	}

	return descriptor, nil
}

type shapeMismatch struct {
	want, got string
}

func (e shapeMismatch) Error() string {
	return "expected " + e.want + ", found " + e.got
}

func shapeError(section *document.Section, key, want string) error {
	return shapeMismatch{want: want, got: section.Kind(key)}
}

func optionalString(section *document.Section, key string) (string, error) {
	if !section.Has(key) {
		return "", nil
	}
	value, ok := section.String(key)
	if !ok {
		return "", &MalformedError{Field: key, Err: shapeError(section, key, "scalar")}
	}
	return value, nil
}

func optionalStrings(section *document.Section, key string) ([]string, error) {
	if !section.Has(key) {
		return nil, nil
	}
	var values []string
	if _, err := section.Decode(key, &values); err != nil {
		return nil, &MalformedError{Field: key, Err: shapeError(section, key, "list of strings")}
	}
	return values, nil
}

func optionalBool(section *document.Section, key string) (bool, error) {
	if !section.Has(key) {
		return false, nil
	}
	value, ok := section.Bool(key)
	if !ok {
		raw, _ := section.String(key)
		return false, &InvalidValueError{Field: key, Value: raw, Reason: "not a boolean"}
	}
	return value, nil
}

func optionalModelData(section *document.Section) (int, error) {
	if !section.Has(KeyCustomModelData) {
		return 0, nil
	}
	value, ok := section.Int(KeyCustomModelData)
	raw, _ := section.String(KeyCustomModelData)
	if !ok {
		return 0, &InvalidValueError{Field: KeyCustomModelData, Value: raw, Reason: "not an integer"}
	}
	if value <= 0 {
		return 0, &InvalidValueError{Field: KeyCustomModelData, Value: raw, Reason: "must be positive"}
	}
	return value, nil
}
