// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/RehanPlayz/oraxen/lib/config"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Language string        `flag:"language" desc:"plugin language"`
		Verbose  bool          `flag:"verbose,v" desc:"enable verbose output"`
		Limit    int           `flag:"limit" desc:"number of items"`
		Debounce time.Duration `flag:"debounce" desc:"quiet interval"`
		Files    []string      `flag:"files" desc:"file list"`
		Untagged string        // no flag tag, skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--language", "french",
		"-v",
		"--limit", "42",
		"--debounce", "500ms",
		"--files", "a.yml,b.yml",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Language != "french" {
		t.Errorf("Language = %q, want %q", p.Language, "french")
	}
	if !p.Verbose {
		t.Error("Verbose = false, want true")
	}
	if p.Limit != 42 {
		t.Errorf("Limit = %d, want 42", p.Limit)
	}
	if p.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", p.Debounce)
	}
	if len(p.Files) != 2 || p.Files[0] != "a.yml" || p.Files[1] != "b.yml" {
		t.Errorf("Files = %v, want [a.yml b.yml]", p.Files)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Language string        `flag:"language" default:"english"`
		Enabled  bool          `flag:"enabled" default:"true"`
		Limit    int           `flag:"limit" default:"10"`
		Debounce time.Duration `flag:"debounce" default:"250ms"`
		Files    []string      `flag:"files" default:"a,b"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Language != "english" || !p.Enabled || p.Limit != 10 || p.Debounce != 250*time.Millisecond {
		t.Errorf("defaults not applied: %+v", p)
	}
	if len(p.Files) != 2 {
		t.Errorf("Files = %v, want [a b]", p.Files)
	}
}

func TestBindFlags_EmbeddedStructs(t *testing.T) {
	type params struct {
		JSONOutput
		DataDirFlags
		Failures bool `flag:"failures"`
	}

	var p params
	flagSet := FlagsFromParams("items", &p)
	if err := flagSet.Parse([]string{"--json", "--data-dir", "/srv/oraxen", "--failures", "extra"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !p.OutputJSON {
		t.Error("OutputJSON = false, want true")
	}
	if p.DataDir != "/srv/oraxen" {
		t.Errorf("DataDir = %q, want /srv/oraxen", p.DataDir)
	}
	if !p.Failures {
		t.Error("Failures = false, want true")
	}
	if args := flagSet.Args(); len(args) != 1 || args[0] != "extra" {
		t.Errorf("Args() = %v, want [extra]", args)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)

	var notStruct int
	if err := BindFlags(&notStruct, flagSet); err == nil {
		t.Error("BindFlags(*int) = nil, want error")
	}

	type value struct {
		Name string `flag:"name"`
	}
	if err := BindFlags(value{}, flagSet); err == nil {
		t.Error("BindFlags(struct) = nil, want error")
	}

	type badDefault struct {
		Limit int `flag:"limit" default:"many"`
	}
	err := BindFlags(&badDefault{}, flagSet)
	if err == nil || !strings.Contains(err.Error(), "--limit") {
		t.Errorf("BindFlags(bad default) = %v, want error naming --limit", err)
	}

	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	if err := BindFlags(&unsupported{}, flagSet); err == nil {
		t.Error("BindFlags(float32) = nil, want error")
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic on a non-pointer")
		}
	}()
	FlagsFromParams("test", struct{}{})
}

func TestDataDirFlags_Resolve(t *testing.T) {
	flagDir := filepath.Join(t.TempDir(), "flag")
	t.Setenv(config.EnvDataDir, "/from/env")

	explicit := DataDirFlags{DataDir: flagDir}
	if got := explicit.Resolve(); got != flagDir {
		t.Errorf("Resolve() with flag = %q, want %q", got, flagDir)
	}

	var unset DataDirFlags
	if got := unset.Resolve(); got != "/from/env" {
		t.Errorf("Resolve() from env = %q, want /from/env", got)
	}
}
