// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

import (
	"fmt"
	"slices"

	"cogentcore.org/recordpanel/base/errors"
)

// Handler is called when an affordance is clicked or double-clicked,
// with the current value of the affordance's primary field.
type Handler func(value any, rec Record)

// TipRenderer returns the HTML content of an affordance tooltip for
// the current value of the affordance's primary field. It is called
// immediately before the tooltip is shown.
type TipRenderer func(value any, rec Record, tip *Tooltip) string

// IconRenderer returns the icon (typically a URL or icon name)
// displayed by an affordance for the given primary field value.
type IconRenderer func(value any, rec Record) string

// Affordance configures one bindable visual control shown in the
// header of every row. Renderers and handlers are never recovered
// from a panic: a panic propagates to the caller of the event that
// triggered it.
type Affordance struct {

	// ID uniquely identifies the affordance within a panel.
	// If it is empty, one is generated on construction.
	ID string

	// Fields are the record fields this affordance depends on.
	// A change to any of them refreshes the icon; the first one
	// is the primary field whose value is passed to callbacks.
	Fields []string

	// StopEvent stops click and double-click events from
	// propagating from this affordance to the row header.
	StopEvent bool

	// Click is called when the affordance is clicked.
	Click Handler

	// DoubleClick is called when the affordance is double-clicked.
	DoubleClick Handler

	// Tip renders the tooltip content; no tooltip is installed
	// when it is nil.
	Tip TipRenderer

	// Icon renders the icon of the affordance. It is mandatory.
	Icon IconRenderer
}

// Sentinel configuration errors returned by [New].
var (
	ErrMissingIconRenderer = errors.New("recordpanel: affordance has no icon renderer")
	ErrDuplicateAffordance = errors.New("recordpanel: duplicate affordance id")
	ErrNilAffordance       = errors.New("recordpanel: nil affordance")
	ErrNilCollection       = errors.New("recordpanel: nil collection")
)

// Fields is a convenience for building [Affordance.Fields].
func Fields(fields ...string) []string {
	return fields
}

// PrimaryField returns the first bound field, or "" if the
// affordance binds nothing.
func (af *Affordance) PrimaryField() string {
	if len(af.Fields) == 0 {
		return ""
	}
	return af.Fields[0]
}

// primaryValue returns the value of the primary field of rec.
func (af *Affordance) primaryValue(rec Record) any {
	pf := af.PrimaryField()
	if pf == "" || rec == nil {
		return nil
	}
	return rec.Get(pf)
}

// prepareAffordances validates the given affordances and returns
// panel-owned copies with ids assigned in configuration order.
func prepareAffordances(afs []*Affordance) ([]*Affordance, error) {
	res := make([]*Affordance, 0, len(afs))
	seen := make(map[string]bool, len(afs))
	for i, af := range afs {
		if af == nil {
			return nil, fmt.Errorf("affordance %d: %w", i, ErrNilAffordance)
		}
		if af.Icon == nil {
			return nil, fmt.Errorf("affordance %d (%q): %w", i, af.ID, ErrMissingIconRenderer)
		}
		cp := *af
		cp.Fields = slices.Clone(af.Fields)
		if cp.ID == "" {
			cp.ID = fmt.Sprintf("recordpanel-tool-%d", i+1)
		}
		if seen[cp.ID] {
			return nil, fmt.Errorf("affordance %d: %w: %q", i, ErrDuplicateAffordance, cp.ID)
		}
		seen[cp.ID] = true
		res = append(res, &cp)
	}
	return res, nil
}
