// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the Skyline
// forwarder.
//
// Four package-level variables are injected at build time via
// -ldflags -X:
//
//   - [GitCommit] -- short git SHA of the build
//   - [GitDirty] -- "true" if there were uncommitted changes
//   - [BuildTime] -- UTC timestamp of the build
//   - [Version] -- the release version reported to the host TSDB
//
// For example:
//
//	go build -ldflags "-X github.com/bureau-foundation/skyline/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// [Short] is the static identifying string the publisher reports to
// its host; [Info] and [Full] are for --version output.
package version
