// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Oraxen packages.
//
// [DataDir] builds a temporary data directory from a map of relative
// paths to file contents. [WriteFile] and [ReadFile] are the single-file
// forms for tests that modify a directory between steps.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that individual
// tests do not need direct time.After calls. They are the only place in
// the test suite where real wall-clock timeouts are used.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Oraxen-internal dependencies.
package testutil
