// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"github.com/RehanPlayz/oraxen/lib/document"
	"github.com/RehanPlayz/oraxen/lib/reconcile"
	"github.com/RehanPlayz/oraxen/lib/resources"
)

// Bundled configuration files and data directory layout.
const (
	SettingsFile = "settings.yml"
	FontFile     = "font.yml"
	SoundFile    = "sound.yml"

	LanguagesDir = "languages"
	ItemsDir     = "items"
	GlyphsDir    = "glyphs"

	// DefinitionExt is the extension of item and glyph definition files.
	DefinitionExt = ".yml"

	// DefaultLanguage is the language whose bundled pack backs every
	// language without one of its own.
	DefaultLanguage = "english"
)

// Settings keys read by the loader.
const (
	KeyPluginLanguage = "plugin-language"
	KeyAutoGlyphCode  = "automatically-set-glyph-code"
	KeyErrorItem      = "error_item"
)

// EnvDataDir names the environment variable consulted by
// [ResolveDataDir].
const EnvDataDir = "ORAXEN_DATA_DIR"

// DefaultDataDir is the data directory used when neither a flag nor
// the environment names one.
const DefaultDataDir = "plugins/Oraxen"

// Settings holds the typed values of settings.yml.
type Settings struct {
	// PluginLanguage selects languages/<name>.yml.
	PluginLanguage string

	// AutomaticallySetGlyphCode controls whether glyph codes assigned
	// during loading are written back to their files.
	AutomaticallySetGlyphCode bool

	// ErrorItem is a standalone copy of the error_item section, the
	// template for placeholder items. Nil when settings.yml has none.
	ErrorItem *document.Document
}

var languagePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate checks the settings for values the loader cannot use.
func (s Settings) Validate() error {
	var errs []error

	if s.PluginLanguage == "" {
		errs = append(errs, fmt.Errorf("%s is required", KeyPluginLanguage))
	} else if !languagePattern.MatchString(s.PluginLanguage) {
		errs = append(errs, fmt.Errorf("%s %q must be a plain file name", KeyPluginLanguage, s.PluginLanguage))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ReadSettings extracts typed settings from a settings document. Absent
// keys take the bundled defaults' values.
func ReadSettings(view document.View) Settings {
	settings := Settings{
		PluginLanguage:            view.StringOr(KeyPluginLanguage, DefaultLanguage),
		AutomaticallySetGlyphCode: view.BoolOr(KeyAutoGlyphCode, true),
	}
	if template, ok := view.Sub(KeyErrorItem); ok {
		settings.ErrorItem = template.Detach()
	}
	return settings
}

// Report records what validation did to one configuration file.
type Report struct {
	// Name is the bundled resource name, for example "settings.yml".
	Name string

	// Path is the user copy on disk.
	Path string

	// Defaults is the bundled resource the copy was reconciled against.
	Defaults string

	reconcile.Result
}

// Config is the validated configuration of a data directory. Its
// documents are read-only views; callers never write through them.
type Config struct {
	// DataDir is the root of the data directory.
	DataDir string

	// Reports lists one entry per reconciled file in validation order:
	// settings, font, sound, language.
	Reports []Report

	options   Settings
	documents map[string]*document.Document
}

// Options returns the typed settings.
func (c *Config) Options() Settings {
	return c.options
}

// Settings returns the reconciled settings.yml.
func (c *Config) Settings() document.View {
	return c.view(SettingsFile)
}

// Font returns the reconciled font.yml.
func (c *Config) Font() document.View {
	return c.view(FontFile)
}

// Sound returns the reconciled sound.yml.
func (c *Config) Sound() document.View {
	return c.view(SoundFile)
}

// Language returns the reconciled language pack.
func (c *Config) Language() document.View {
	return c.view(languageFile(c.options.PluginLanguage))
}

// ItemsDir returns the directory holding item definition files.
func (c *Config) ItemsDir() string {
	return filepath.Join(c.DataDir, ItemsDir)
}

// GlyphsDir returns the directory holding glyph definition files.
func (c *Config) GlyphsDir() string {
	return filepath.Join(c.DataDir, GlyphsDir)
}

// Changed reports whether validation filled any key in any file.
func (c *Config) Changed() bool {
	for _, report := range c.Reports {
		if report.Changed() {
			return true
		}
	}
	return false
}

func (c *Config) view(name string) document.View {
	doc, ok := c.documents[name]
	if !ok {
		return document.View{}
	}
	return doc.View()
}

func languageFile(language string) string {
	return path.Join(LanguagesDir, language+".yml")
}

// Validate runs the startup sequence on dataDir:
//
//  1. settings.yml, font.yml and sound.yml are extracted when missing
//     and reconciled against their bundled defaults.
//  2. The language pack named by plugin-language is reconciled the same
//     way. A language with no bundled pack starts from an empty file.
//  3. The items and glyphs folders are created from the bundled
//     examples when they do not exist.
//
// A resource missing from the bundle with no user copy, an unparseable
// user file, or unusable settings is fatal. Failing to persist a
// reconciled file is not: it is logged and recorded in the file's
// [Report], and the in-memory document is used.
func Validate(dataDir string, bundle *resources.Bundle, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	materializer := resources.NewMaterializer(bundle, dataDir, logger)
	config := &Config{
		DataDir:   dataDir,
		documents: make(map[string]*document.Document),
	}

	for _, name := range []string{SettingsFile, FontFile, SoundFile} {
		if err := config.reconcileFile(materializer, bundle, name, name, logger); err != nil {
			return nil, err
		}
	}

	config.options = ReadSettings(config.Settings())
	if err := config.options.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", materializer.Path(SettingsFile), err)
	}

	if err := config.reconcileLanguage(materializer, bundle, logger); err != nil {
		return nil, err
	}

	for _, dir := range []string{ItemsDir, GlyphsDir} {
		if err := extractIfAbsent(materializer, dir, logger); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// reconcileFile ensures a user copy of name exists and reconciles it
// against the bundled defaults resource.
func (c *Config) reconcileFile(materializer *resources.Materializer, bundle *resources.Bundle, name, defaults string, logger *slog.Logger) error {
	defaultView, err := bundle.Document(defaults)
	if err != nil {
		return err
	}

	userPath, err := materializer.EnsurePresent(name)
	if err != nil {
		return err
	}
	user, err := document.Load(userPath)
	if err != nil {
		return err
	}

	c.record(name, defaults, user, defaultView, logger)
	return nil
}

// reconcileLanguage reconciles languages/<plugin-language>.yml. A
// language with a bundled pack is extracted and reconciled against it.
// Any other language is reconciled against the english pack, starting
// from an empty document when no user copy exists.
func (c *Config) reconcileLanguage(materializer *resources.Materializer, bundle *resources.Bundle, logger *slog.Logger) error {
	name := languageFile(c.options.PluginLanguage)
	if bundle.Has(name) {
		return c.reconcileFile(materializer, bundle, name, name, logger)
	}

	defaults := languageFile(DefaultLanguage)
	defaultView, err := bundle.Document(defaults)
	if err != nil {
		return err
	}

	userPath := materializer.Path(name)
	user, err := document.Load(userPath)
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(userPath), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(userPath), err)
		}
		logger.Info("creating language file", "language", c.options.PluginLanguage, "path", userPath)
		user = document.New()
		user.SetFile(userPath)
	} else if err != nil {
		return err
	}

	c.record(name, defaults, user, defaultView, logger)
	return nil
}

func (c *Config) record(name, defaults string, user *document.Document, defaultView document.View, logger *slog.Logger) {
	reconciled, result := reconcile.Reconcile(user, defaultView, logger)
	c.documents[name] = reconciled
	c.Reports = append(c.Reports, Report{
		Name:     name,
		Path:     user.File(),
		Defaults: defaults,
		Result:   result,
	})
}

// extractIfAbsent creates dir under the data directory from the bundled
// examples when it does not exist yet. An existing folder, even an
// empty one, is left alone so that deleted examples stay deleted.
func extractIfAbsent(materializer *resources.Materializer, dir string, logger *slog.Logger) error {
	target := materializer.Path(dir)
	if _, err := os.Stat(target); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", target, err)
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", target, err)
	}
	names, err := materializer.ExtractFolder(dir, DefinitionExt)
	if err != nil {
		return err
	}
	logger.Info("extracted example definitions", "folder", dir, "files", len(names))
	return nil
}

// ResolveDataDir returns the data directory to use: flagValue when set,
// else $ORAXEN_DATA_DIR, else [DefaultDataDir]. ${VAR} and
// ${VAR:-default} patterns in the result are expanded.
func ResolveDataDir(flagValue string) string {
	dataDir := flagValue
	if dataDir == "" {
		dataDir = os.Getenv(EnvDataDir)
	}
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	return expandVars(dataDir)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
