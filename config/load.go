// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
)

const (
	// DefaultFile is the config file looked up in the current
	// directory when none is given explicitly.
	DefaultFile = "recordpanel.yaml"

	// EnvPrefix is the prefix of the environment variables that
	// override config file values: RECORDPANEL_GROUP_FIELD -> group_field.
	EnvPrefix = "RECORDPANEL_"
)

// Defaults returns the default option values, keyed like the config file.
func Defaults() map[string]any {
	return map[string]any{
		"records":                "records.yaml",
		"group_field":            "",
		"title_field":            "name",
		"title_index":            0,
		"keep_single_row_groups": false,
		"show_hidden":            false,
	}
}

// findFile returns the config file to use: the explicit one if given,
// otherwise [DefaultFile] or its .yml variant if present, otherwise "".
func findFile(explicit string) (string, error) {
	if explicit != "" {
		return homedir.Expand(explicit)
	}
	for _, name := range []string{DefaultFile, strings.TrimSuffix(DefaultFile, ".yaml") + ".yml"} {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// Load loads the configuration from, in increasing precedence:
// the defaults, the config file, RECORDPANEL_ environment variables
// and the flags that were explicitly set. The flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used, err := findFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("invalid config file path %q: %w", cfgFile, err)
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	recordsFlag := false
	if flags != nil {
		recordsFlag = flags.Changed("records")
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	cfg.Records, err = homedir.Expand(cfg.Records)
	if err != nil {
		return nil, fmt.Errorf("invalid records path: %w", err)
	}
	// records not given by flag or env are relative to the config file
	_, recordsEnv := os.LookupEnv(EnvPrefix + "RECORDS")
	if used != "" && !recordsFlag && !recordsEnv && cfg.Records != "" && !filepath.IsAbs(cfg.Records) {
		cfg.Records = filepath.Join(filepath.Dir(used), cfg.Records)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
