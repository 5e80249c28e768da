// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/RehanPlayz/oraxen/lib/document"
	"github.com/RehanPlayz/oraxen/lib/resources"
)

func parse(t *testing.T, source string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

// decoded returns the document as plain Go values for comparison.
func decoded(t *testing.T, doc *document.Document) map[string]any {
	t.Helper()
	data, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return values
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestReconcile_FillsMissingKeysOnly(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "a: 1\nb:\n  c: 2\n")
	user := parse(t, "b:\n  c: 99\n")

	reconciled, result := Reconcile(user, defaults.View(), nil)
	if !result.Changed() {
		t.Fatal("first reconcile should report a change")
	}
	if diff := cmp.Diff([]string{"a"}, result.Paths()); diff != "" {
		t.Errorf("patched paths (-want +got):\n%s", diff)
	}

	want := map[string]any{"a": 1, "b": map[string]any{"c": 99}}
	if diff := cmp.Diff(want, decoded(t, reconciled)); diff != "" {
		t.Errorf("reconciled document (-want +got):\n%s", diff)
	}

	again, second := Reconcile(reconciled, defaults.View(), nil)
	if second.Changed() {
		t.Errorf("second reconcile changed paths %v", second.Paths())
	}
	if diff := cmp.Diff(decoded(t, reconciled), decoded(t, again)); diff != "" {
		t.Errorf("second reconcile altered the document (-first +second):\n%s", diff)
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "a: 1\n")
	user := parse(t, "b: 2\n")

	Reconcile(user, defaults.View(), nil)

	if user.Has("a") {
		t.Error("input document was modified")
	}
}

func TestReconcile_Properties(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		defaults string
		user     string
	}{
		{
			name:     "empty user",
			defaults: "plugin-language: english\nerror_item:\n  material: PODZOL\n  lore:\n    - broken\n",
			user:     "",
		},
		{
			name:     "user-only keys survive",
			defaults: "a: 1\n",
			user:     "custom: true\nnested:\n  deep: [1, 2]\n",
		},
		{
			name:     "user values win",
			defaults: "a: 1\nb:\n  c: 2\n  d: 3\n",
			user:     "a: 100\nb:\n  d: 300\n",
		},
		{
			name:     "deep nesting",
			defaults: "x:\n  y:\n    z:\n      w: 1\n    v: 2\n",
			user:     "x:\n  y:\n    z: {}\n",
		},
		{
			name:     "user null replaced",
			defaults: "a: 1\n",
			user:     "a:\n",
		},
		{
			name:     "dotted keys",
			defaults: "sounds:\n  block.wood.place:\n    volume: 1.0\n  a.b: 2\n",
			user:     "sounds:\n  a.b: 5\n",
		},
		{
			name:     "type conflict kept",
			defaults: "a:\n  b: 1\nc: 2\n",
			user:     "a: scalar\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			defaults := parse(t, tc.defaults)
			user := parse(t, tc.user)
			before := decoded(t, user)

			reconciled, _ := Reconcile(user, defaults.View(), nil)

			// Completeness: every default path is present, unless it
			// sits below a conflicting user value.
			plan := Diff(user.View(), defaults.View())
			requireComplete(t, defaults.View(), reconciled.View(), plan)

			// Non-destructiveness: every user path keeps its value
			// unless it was null.
			for _, keys := range user.KeyPaths() {
				if !user.HasKeys(keys...) || user.KindKeys(keys...) == "mapping" {
					continue
				}
				original, _ := user.NodeKeys(keys...)
				current, _ := reconciled.NodeKeys(keys...)
				if current == nil || original.Value != current.Value {
					t.Errorf("user path %q changed from %v to %v", keys, original, current)
				}
			}
			if diff := cmp.Diff(before, decoded(t, user)); diff != "" {
				t.Errorf("input mutated (-before +after):\n%s", diff)
			}

			// Idempotence.
			again, second := Reconcile(reconciled, defaults.View(), nil)
			if second.Changed() {
				t.Errorf("second reconcile changed %v", second.Paths())
			}
			if diff := cmp.Diff(decoded(t, reconciled), decoded(t, again)); diff != "" {
				t.Errorf("second reconcile altered document (-first +second):\n%s", diff)
			}
		})
	}
}

func underConflict(keys []string, conflicts []Conflict) bool {
	for _, conflict := range conflicts {
		if len(keys) >= len(conflict.Keys) && slices.Equal(keys[:len(conflict.Keys)], conflict.Keys) {
			return true
		}
	}
	return false
}

// requireComplete fails when a default key path is absent from
// reconciled, outside the subtrees of plan's conflicts.
func requireComplete(t *testing.T, defaults, reconciled document.View, plan Plan) {
	t.Helper()
	for _, keys := range defaults.KeyPaths() {
		if underConflict(keys, plan.Conflicts) {
			continue
		}
		if defaults.HasKeys(keys...) && !reconciled.HasKeys(keys...) {
			t.Errorf("default path %q missing after reconcile", keys)
		}
	}
}

func TestDiff_ConflictKeepsUserScalar(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "sounds:\n  volume: 1\n  pitch: 2\n")
	user := parse(t, "sounds: disabled\n")

	plan := Diff(user.View(), defaults.View())
	if plan.Changed() {
		t.Errorf("conflict should not produce patches, got %v", plan.Paths())
	}
	want := []Conflict{{Path: "sounds", Keys: []string{"sounds"}, UserKind: "scalar"}}
	if diff := cmp.Diff(want, plan.Conflicts); diff != "" {
		t.Errorf("conflicts (-want +got):\n%s", diff)
	}
}

func TestDiff_VisitsInDeclarationOrder(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "z: 1\nm:\n  b: 1\n  a: 2\nc: 3\n")
	user := parse(t, "m: {}\n")

	plan := Diff(user.View(), defaults.View())
	if diff := cmp.Diff([]string{"z", "m.b", "m.a", "c"}, plan.Paths()); diff != "" {
		t.Errorf("patch order (-want +got):\n%s", diff)
	}
}

func TestDiff_SkipsNullDefaults(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "optional:\nset: 1\n")
	user := parse(t, "")

	plan := Diff(user.View(), defaults.View())
	if diff := cmp.Diff([]string{"set"}, plan.Paths()); diff != "" {
		t.Errorf("patched paths (-want +got):\n%s", diff)
	}
}

func TestReconcile_PersistsOnlyWhenChanged(t *testing.T) {
	t.Parallel()

	directory := t.TempDir()
	path := filepath.Join(directory, "settings.yml")
	writeFile(t, path, "b:\n  c: 99\n")

	defaults := parse(t, "a: 1\nb:\n  c: 2\n")
	user, err := document.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	_, result := Reconcile(user, defaults.View(), logger)
	if !result.Persisted || result.PersistErr != nil {
		t.Fatalf("Persisted = %v, PersistErr = %v", result.Persisted, result.PersistErr)
	}
	if !strings.Contains(logs.String(), "option=a") {
		t.Errorf("expected an updating-config log line for option a, got:\n%s", logs.String())
	}

	reloaded, err := document.Load(path)
	if err != nil {
		t.Fatalf("Load after reconcile: %v", err)
	}
	if value, _ := reloaded.Int("a"); value != 1 {
		t.Errorf("persisted a = %d, want 1", value)
	}

	// Remove the file: an unchanged reconcile must not write it again.
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing file: %v", err)
	}
	_, second := Reconcile(reloaded, defaults.View(), nil)
	if second.Persisted {
		t.Error("unchanged document was persisted")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file recreated by an unchanged reconcile (stat err = %v)", err)
	}
}

func TestReconcile_PersistFailureKeepsDocument(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "a: 1\n")
	user := parse(t, "")
	user.SetFile(filepath.Join(t.TempDir(), "missing-directory", "settings.yml"))

	reconciled, result := Reconcile(user, defaults.View(), nil)
	if result.PersistErr == nil {
		t.Fatal("expected a persistence error for an unwritable path")
	}
	if result.Persisted {
		t.Error("Persisted should be false on failure")
	}
	if value, _ := reconciled.Int("a"); value != 1 {
		t.Errorf("in-memory document lost the patch: a = %d", value)
	}
}

func TestReconcile_KeysContainingSeparator(t *testing.T) {
	t.Parallel()

	defaults := parse(t, "sounds:\n  block.wood.place:\n    category: blocks\n    volume: 1.0\n")
	user := parse(t, "sounds:\n  block.wood.place:\n    volume: 0.5\n")

	reconciled, result := Reconcile(user, defaults.View(), nil)
	if diff := cmp.Diff([]string{"sounds.block.wood.place.category"}, result.Paths()); diff != "" {
		t.Errorf("patched paths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sounds", "block.wood.place", "category"}, result.Patches[0].Keys); diff != "" {
		t.Errorf("patch keys (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"sounds": map[string]any{
			"block.wood.place": map[string]any{"category": "blocks", "volume": 0.5},
		},
	}
	if diff := cmp.Diff(want, decoded(t, reconciled)); diff != "" {
		t.Errorf("reconciled (-want +got):\n%s", diff)
	}
}

func TestReconcile_BundledSoundDefaults(t *testing.T) {
	t.Parallel()

	defaults, err := resources.Default().Document("sound.yml")
	if err != nil {
		t.Fatalf("bundled sound.yml: %v", err)
	}
	user := parse(t, "settings:\n  enabled: false\nsounds: {}\n")

	reconciled, result := Reconcile(user, defaults, nil)
	if !result.Changed() {
		t.Fatal("reconcile against an emptied sounds section reported no change")
	}
	requireComplete(t, defaults, reconciled.View(), result.Plan)
	if !reconciled.HasKeys("sounds", "block.wood.place", "volume") {
		t.Error("sounds.block.wood.place was not restored")
	}
	if enabled, _ := reconciled.Bool("settings.enabled"); enabled {
		t.Error("user setting overwritten")
	}

	if _, again := Reconcile(reconciled, defaults, nil); again.Changed() {
		t.Errorf("second reconcile changed %v", again.Paths())
	}
}
