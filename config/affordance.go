// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/gomarkdown/markdown"
	"github.com/iancoleman/strcase"

	"cogentcore.org/recordpanel/base/errors"
	"cogentcore.org/recordpanel/recordpanel"
)

// AffordanceConfig declares one affordance. The icon of the
// affordance is looked up in Icons by the printed value of its
// primary field, falling back to DefaultIcon and then to the value
// itself.
type AffordanceConfig struct {

	// ID is the affordance id; it is derived from Name if empty.
	ID string `koanf:"id"`

	// Name is the human readable name of the affordance.
	Name string `koanf:"name"`

	// Fields are the bound record fields; the first is primary.
	Fields []string `koanf:"fields"`

	// StopEvent stops clicks from reaching the row header.
	StopEvent bool `koanf:"stop_event"`

	// Icons maps a printed primary field value to an icon.
	Icons map[string]string `koanf:"icons"`

	// DefaultIcon is the icon for values missing from Icons.
	DefaultIcon string `koanf:"default_icon"`

	// Tip is a markdown template for the tooltip content, with
	// {{.Value}} the primary field value and {{.Field "name"}}
	// any field of the record. No tooltip is shown if it is empty.
	Tip string `koanf:"tip"`

	// ClickLog logs clicks and double-clicks on the affordance.
	ClickLog bool `koanf:"click_log"`
}

// AffordanceID returns the id of the affordance: ID if set,
// otherwise the kebab case of Name, otherwise "" so that the
// panel generates one.
func (ac *AffordanceConfig) AffordanceID() string {
	if ac.ID != "" {
		return ac.ID
	}
	if ac.Name != "" {
		return strcase.ToKebab(ac.Name)
	}
	return ""
}

func (ac *AffordanceConfig) validate() error {
	for _, f := range ac.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("empty field name in %q", ac.AffordanceID())
		}
	}
	if ac.Tip != "" {
		if _, err := ac.tipTemplate(); err != nil {
			return err
		}
	}
	return nil
}

func (ac *AffordanceConfig) tipTemplate() (*template.Template, error) {
	return template.New(ac.AffordanceID()).Option("missingkey=zero").Parse(ac.Tip)
}

// Icon returns the icon for the given primary field value.
func (ac *AffordanceConfig) Icon(value any) string {
	s := ""
	if value != nil {
		s = fmt.Sprint(value)
	}
	if icon, ok := ac.Icons[s]; ok {
		return icon
	}
	if ac.DefaultIcon != "" {
		return ac.DefaultIcon
	}
	return s
}

// tipData is the data of a tip template.
type tipData struct {
	Value any
	rec   recordpanel.Record
}

// Field returns the value of the given field of the record.
func (td tipData) Field(name string) any {
	if td.rec == nil {
		return nil
	}
	return td.rec.Get(name)
}

// Compile returns the [recordpanel.Affordance] declared by ac.
func (ac *AffordanceConfig) Compile(logger *slog.Logger) (*recordpanel.Affordance, error) {
	if err := ac.validate(); err != nil {
		return nil, err
	}
	af := &recordpanel.Affordance{
		ID:        ac.AffordanceID(),
		Fields:    recordpanel.Fields(ac.Fields...),
		StopEvent: ac.StopEvent,
		Icon: func(value any, rec recordpanel.Record) string {
			return ac.Icon(value)
		},
	}
	if ac.Tip != "" {
		tmpl, err := ac.tipTemplate()
		if err != nil {
			return nil, err
		}
		af.Tip = func(value any, rec recordpanel.Record, tip *recordpanel.Tooltip) string {
			var b bytes.Buffer
			if errors.Log(tmpl.Execute(&b, tipData{Value: value, rec: rec})) != nil {
				return ""
			}
			return string(markdown.ToHTML(b.Bytes(), nil, nil))
		}
	}
	if ac.ClickLog {
		name := af.ID
		af.Click = func(value any, rec recordpanel.Record) {
			logger.Info("affordance clicked", "affordance", name, "record", rec.ID(), "value", value)
		}
		af.DoubleClick = func(value any, rec recordpanel.Record) {
			logger.Info("affordance double-clicked", "affordance", name, "record", rec.ID(), "value", value)
		}
	}
	return af, nil
}
