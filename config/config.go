// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the recordpanel tool:
// layered command-line options and declarative affordance definitions.
package config

import (
	"fmt"
	"log/slog"

	"cogentcore.org/recordpanel/recordpanel"
)

// Config is the main config struct that contains all of the
// configuration options for the recordpanel tool.
type Config struct {

	// Records is the records file to present (.json, .yaml, .yml or .toml).
	Records string `koanf:"records"`

	// GroupField is the record field that groups the records;
	// the panel is flat if it is empty.
	GroupField string `koanf:"group_field"`

	// TitleField is the record field that provides row titles.
	TitleField string `koanf:"title_field"`

	// TitleIndex is the position of the title among the row tools.
	TitleIndex int `koanf:"title_index"`

	// KeepSingleRowGroups keeps groups alive while they have a member.
	KeepSingleRowGroups bool `koanf:"keep_single_row_groups"`

	// ShowHidden also prints rows and groups that are filtered out.
	ShowHidden bool `koanf:"show_hidden"`

	// Affordances are the tools shown in every row header.
	Affordances []AffordanceConfig `koanf:"affordances"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Validate checks the options that do not depend on the records.
func (c *Config) Validate() error {
	if c.Records == "" {
		return fmt.Errorf("config: no records file")
	}
	if c.TitleIndex < 0 {
		return fmt.Errorf("config: title_index must not be negative, got %d", c.TitleIndex)
	}
	for i := range c.Affordances {
		if err := c.Affordances[i].validate(); err != nil {
			return fmt.Errorf("config: affordance %d: %w", i, err)
		}
	}
	return nil
}

// Panel returns the panel configuration described by c, compiling
// the declared affordances. Clicks on affordances with click_log set
// are logged to the given logger.
func (c *Config) Panel(logger *slog.Logger) (recordpanel.Config, error) {
	if logger == nil {
		logger = slog.Default()
	}
	afs := make([]*recordpanel.Affordance, len(c.Affordances))
	for i := range c.Affordances {
		af, err := c.Affordances[i].Compile(logger)
		if err != nil {
			return recordpanel.Config{}, fmt.Errorf("config: affordance %d: %w", i, err)
		}
		afs[i] = af
	}
	return recordpanel.Config{
		TitleField:          c.TitleField,
		TitleIndex:          c.TitleIndex,
		Affordances:         afs,
		KeepSingleRowGroups: c.KeepSingleRowGroups,
		Logger:              logger,
	}, nil
}
