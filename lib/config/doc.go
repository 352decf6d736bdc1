// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the Skyline endpoint configuration.
//
// The configuration is two values, the Skyline host and UDP port. It is
// loaded from a single file specified by:
//   - SKYLINE_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The file format is
// chosen by extension:
//
//   - .yaml, .yml: YAML with top-level keys host and port.
//   - .json, .jsonc: JSON with the same keys; // and /* */ comments and
//     trailing commas are accepted.
//   - .conf, .properties: the host TSDB's own opentsdb.conf. Only
//     tsd.plugin.skyline.host and tsd.plugin.skyline.port are read;
//     every other key belongs to the TSDB and is ignored.
//
// ${VAR} and ${VAR:-default} in the host are expanded from the
// environment after loading.
package config
