// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/RehanPlayz/oraxen/lib/document"
	"github.com/RehanPlayz/oraxen/lib/resources"
	"github.com/RehanPlayz/oraxen/lib/testutil"
)

func testBundle() *resources.Bundle {
	return resources.New(fstest.MapFS{
		"settings.yml": {Data: []byte(`plugin-language: english
automatically-set-glyph-code: true
error_item:
  material: PODZOL
  displayname: Error
`)},
		"font.yml":              {Data: []byte("font:\n  default: minecraft:default\n")},
		"sound.yml":             {Data: []byte("settings:\n  enabled: true\n")},
		"languages/english.yml": {Data: []byte("general:\n  prefix: Oraxen\n  no_permission: denied\n")},
		"items/default.yml":     {Data: []byte("ruby:\n  material: PAPER\n")},
		"glyphs/default.yml":    {Data: []byte("heart:\n  texture: default/heart\n")},
	})
}

func TestValidate_FirstRun(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	cfg, err := Validate(dataDir, testBundle(), nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, name := range []string{"settings.yml", "font.yml", "sound.yml", "languages/english.yml", "items/default.yml", "glyphs/default.yml"} {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
			t.Errorf("%s not extracted: %v", name, err)
		}
	}

	// A fresh copy matches its defaults, so nothing needs filling.
	if cfg.Changed() {
		t.Error("first run should not report filled keys")
	}

	var names []string
	for _, report := range cfg.Reports {
		names = append(names, report.Name)
	}
	want := []string{"settings.yml", "font.yml", "sound.yml", "languages/english.yml"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("report order (-want +got):\n%s", diff)
	}

	options := cfg.Options()
	if options.PluginLanguage != "english" || !options.AutomaticallySetGlyphCode {
		t.Errorf("options = %+v", options)
	}
	if options.ErrorItem == nil {
		t.Fatal("error item template missing")
	}
	if material, _ := options.ErrorItem.String("material"); material != "PODZOL" {
		t.Errorf("error item material = %q", material)
	}

	if prefix := cfg.Language().StringOr("general.prefix", ""); prefix != "Oraxen" {
		t.Errorf("language prefix = %q", prefix)
	}
	if cfg.Font().StringOr("font.default", "") != "minecraft:default" {
		t.Error("font view not populated")
	}
	if !cfg.Sound().BoolOr("settings.enabled", false) {
		t.Error("sound view not populated")
	}
	if cfg.ItemsDir() != filepath.Join(dataDir, "items") || cfg.GlyphsDir() != filepath.Join(dataDir, "glyphs") {
		t.Errorf("definition dirs = %s, %s", cfg.ItemsDir(), cfg.GlyphsDir())
	}
}

func TestValidate_FillsMissingKeysAndKeepsUserValues(t *testing.T) {
	t.Parallel()

	dataDir := testutil.DataDir(t, map[string]string{
		"settings.yml": "# my settings\nautomatically-set-glyph-code: false\ncustom: kept\n",
	})

	cfg, err := Validate(dataDir, testBundle(), nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	settings := cfg.Reports[0]
	if diff := cmp.Diff([]string{"plugin-language", "error_item"}, settings.Paths()); diff != "" {
		t.Errorf("filled paths (-want +got):\n%s", diff)
	}
	if !settings.Persisted {
		t.Error("settings.yml not persisted")
	}

	if cfg.Options().AutomaticallySetGlyphCode {
		t.Error("user value for automatically-set-glyph-code was overwritten")
	}
	if cfg.Settings().StringOr("custom", "") != "kept" {
		t.Error("user-only key dropped")
	}

	content := testutil.ReadFile(t, filepath.Join(dataDir, "settings.yml"))
	for _, fragment := range []string{"# my settings", "custom: kept", "plugin-language: english", "material: PODZOL"} {
		if !strings.Contains(content, fragment) {
			t.Errorf("persisted settings.yml lacks %q:\n%s", fragment, content)
		}
	}

	again, err := Validate(dataDir, testBundle(), nil)
	if err != nil {
		t.Fatalf("second Validate: %v", err)
	}
	if again.Changed() {
		t.Error("second validation should be a no-op")
	}
}

func TestValidate_UnbundledLanguageStartsFromEnglish(t *testing.T) {
	t.Parallel()

	dataDir := testutil.DataDir(t, map[string]string{
		"settings.yml": "plugin-language: pirate\n",
	})

	cfg, err := Validate(dataDir, testBundle(), nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	path := filepath.Join(dataDir, "languages", "pirate.yml")
	reloaded, err := document.Load(path)
	if err != nil {
		t.Fatalf("loading created language file: %v", err)
	}
	if prefix, _ := reloaded.String("general.prefix"); prefix != "Oraxen" {
		t.Errorf("pirate general.prefix = %q, want the english default", prefix)
	}
	if cfg.Language().StringOr("general.no_permission", "") != "denied" {
		t.Error("language view not reconciled")
	}

	report := cfg.Reports[len(cfg.Reports)-1]
	if report.Name != "languages/pirate.yml" || report.Defaults != "languages/english.yml" {
		t.Errorf("language report = %s against %s", report.Name, report.Defaults)
	}
}

func TestValidate_ExistingDefinitionFoldersAreLeftAlone(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dataDir, "items"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Validate(dataDir, testBundle(), nil); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "items", "default.yml")); !os.IsNotExist(err) {
		t.Errorf("examples extracted into an existing items folder (stat err = %v)", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "glyphs", "default.yml")); err != nil {
		t.Errorf("glyph examples not extracted: %v", err)
	}
}

func TestValidate_MissingBundledResourceIsFatal(t *testing.T) {
	t.Parallel()

	bundle := resources.New(fstest.MapFS{
		"settings.yml": {Data: []byte("plugin-language: english\n")},
	})

	_, err := Validate(t.TempDir(), bundle, nil)
	if !errors.Is(err, resources.ErrMissingResource) {
		t.Fatalf("Validate error = %v, want ErrMissingResource", err)
	}
}

func TestValidate_UnparseableUserFileIsFatal(t *testing.T) {
	t.Parallel()

	dataDir := testutil.DataDir(t, map[string]string{
		"font.yml": "font: [unterminated\n",
	})

	_, err := Validate(dataDir, testBundle(), nil)
	if err == nil {
		t.Fatal("expected an error for an unparseable font.yml")
	}
	if !strings.Contains(err.Error(), "font.yml") {
		t.Errorf("error does not name the file: %v", err)
	}
}

func TestValidate_RejectsPathLikeLanguage(t *testing.T) {
	t.Parallel()

	dataDir := testutil.DataDir(t, map[string]string{
		"settings.yml": "plugin-language: ../../etc/passwd\n",
	})

	if _, err := Validate(dataDir, testBundle(), nil); err == nil {
		t.Fatal("expected an error for a path-like plugin-language")
	}
}

func TestReadSettings_Defaults(t *testing.T) {
	t.Parallel()

	settings := ReadSettings(document.New().View())
	if settings.PluginLanguage != DefaultLanguage {
		t.Errorf("PluginLanguage = %q", settings.PluginLanguage)
	}
	if !settings.AutomaticallySetGlyphCode {
		t.Error("AutomaticallySetGlyphCode should default to true")
	}
	if settings.ErrorItem != nil {
		t.Error("ErrorItem should be nil without an error_item section")
	}
}

func TestResolveDataDir(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	if got := ResolveDataDir(""); got != DefaultDataDir {
		t.Errorf("ResolveDataDir(\"\") = %q, want %q", got, DefaultDataDir)
	}

	t.Setenv(EnvDataDir, "/srv/oraxen")
	if got := ResolveDataDir(""); got != "/srv/oraxen" {
		t.Errorf("ResolveDataDir with env = %q", got)
	}
	if got := ResolveDataDir("/flag/wins"); got != "/flag/wins" {
		t.Errorf("ResolveDataDir with flag = %q", got)
	}

	t.Setenv("ORAXEN_TEST_ROOT", "/data")
	if got := ResolveDataDir("${ORAXEN_TEST_ROOT}/Oraxen"); got != "/data/Oraxen" {
		t.Errorf("expansion = %q", got)
	}
	if got := ResolveDataDir("${ORAXEN_TEST_UNSET:-/fallback}/Oraxen"); got != "/fallback/Oraxen" {
		t.Errorf("default expansion = %q", got)
	}
}
