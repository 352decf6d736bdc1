// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/skyline/lib/skyline"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "SKYLINE_CONFIG"

// Property keys read from opentsdb.conf.
const (
	HostProperty = "tsd.plugin.skyline.host"
	PortProperty = "tsd.plugin.skyline.port"
)

// Load loads configuration from the file named by SKYLINE_CONFIG.
//
// There are no fallbacks or defaults - if SKYLINE_CONFIG is not set,
// this fails.
func Load() (skyline.Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return skyline.Config{}, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your skyline config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads and validates configuration from path.
func LoadFile(path string) (skyline.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return skyline.Config{}, err
	}

	config, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return skyline.Config{}, fmt.Errorf("%s: %w", path, err)
	}

	config.Host = expandVariables(config.Host)

	if err := config.Validate(); err != nil {
		return skyline.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Parse decodes data in the format named by extension (including the
// leading dot). It does not validate or expand variables.
func Parse(extension string, data []byte) (skyline.Config, error) {
	var config skyline.Config

	switch strings.ToLower(extension) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return skyline.Config{}, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &config); err != nil {
			return skyline.Config{}, fmt.Errorf("parsing JSON: %w", err)
		}
	case ".conf", ".properties":
		properties, err := parseProperties(data)
		if err != nil {
			return skyline.Config{}, err
		}
		config.Host = properties[HostProperty]
		if port, ok := properties[PortProperty]; ok {
			config.Port, err = strconv.Atoi(port)
			if err != nil {
				return skyline.Config{}, fmt.Errorf("%s: %w", PortProperty, err)
			}
		}
	default:
		return skyline.Config{}, fmt.Errorf("unsupported config format %q (use .yaml, .json, .jsonc, or .conf)", extension)
	}

	return config, nil
}

// parseProperties reads the key = value format of opentsdb.conf.
// Lines starting with # or ! are comments; the separator may be = or
// :; surrounding whitespace is trimmed. A later key overrides an
// earlier one, matching java.util.Properties.
func parseProperties(data []byte) (map[string]string, error) {
	properties := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == '!' {
			continue
		}

		separator := strings.IndexAny(line, "=:")
		if separator < 0 {
			return nil, fmt.Errorf("line %d: expected key = value", lineNumber)
		}
		key := strings.TrimSpace(line[:separator])
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNumber)
		}
		properties[key] = strings.TrimSpace(line[separator+1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVariables(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}
