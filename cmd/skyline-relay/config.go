// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/skyline/lib/config"
	"github.com/bureau-foundation/skyline/lib/skyline"
)

// resolveConfig loads --config (or $SKYLINE_CONFIG when --config is
// absent) and applies --host and --port on top. With neither a file nor
// the environment variable, the flags alone must describe the endpoint.
func resolveConfig(flags relayFlags, flagSet *pflag.FlagSet) (skyline.Config, error) {
	var loaded skyline.Config
	var err error

	switch {
	case flags.configPath != "":
		loaded, err = config.LoadFile(flags.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		loaded, err = config.Load()
	default:
		// Overrides must be complete on their own.
		if !flagSet.Changed("host") || !flagSet.Changed("port") {
			return skyline.Config{}, fmt.Errorf("no configuration: pass --config, set %s, or pass both --host and --port",
				config.EnvironmentVariable)
		}
	}
	if err != nil {
		return skyline.Config{}, err
	}

	if flagSet.Changed("host") {
		loaded.Host = flags.host
	}
	if flagSet.Changed("port") {
		loaded.Port = flags.port
	}

	if err := loaded.Validate(); err != nil {
		return skyline.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}
