// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestEmitJSON(t *testing.T) {
	var output JSONOutput
	var buffer bytes.Buffer

	done, err := output.EmitJSON(&buffer, []string{"ruby"})
	if done || err != nil || buffer.Len() != 0 {
		t.Fatalf("EmitJSON without --json = %v, %v, wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	var entries []string
	done, err = output.EmitJSON(&buffer, entries)
	if !done || err != nil {
		t.Fatalf("EmitJSON = %v, %v", done, err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "[]" {
		t.Errorf("nil slice encoded as %q, want []", got)
	}
}
