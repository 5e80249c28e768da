// Copyright 2026 The Oraxen Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the oraxen
// binary.
//
// Three package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- semantic version string (set manually for releases)
//
// When GitCommit is not injected, the VCS revision recorded by the Go
// toolchain in the binary's build info is used instead, so `go install`
// builds still report their commit.
package version
