// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

import "cogentcore.org/recordpanel/events"

// Tooltip is the tooltip resource of one affordance in one row.
// It is owned by its [Row] and released only when the row is
// destroyed. Its content is computed lazily, immediately before
// it is shown, from the live value of the affordance's primary field.
type Tooltip struct {

	// Affordance is the affordance this tooltip is anchored to.
	Affordance *Affordance

	// Content is the HTML content computed for the last show.
	Content string

	// Visible is whether the tooltip is currently shown.
	Visible bool

	// Listeners receive [events.TooltipShow] and [events.TooltipHide].
	Listeners events.Listeners

	row       *Row
	destroyed bool
}

// Anchor returns the affordance instance the tooltip is attached to.
func (tt *Tooltip) Anchor() *Tool {
	return tt.row.Tool(tt.Affordance.ID)
}

// Row returns the row that owns the tooltip.
func (tt *Tooltip) Row() *Row {
	return tt.row
}

// Destroyed returns whether the tooltip has been released.
func (tt *Tooltip) Destroyed() bool {
	return tt.destroyed
}

// Show recomputes the content of the tooltip and marks it visible,
// returning the content. It does nothing for a destroyed tooltip.
func (tt *Tooltip) Show() string {
	if tt.destroyed {
		return ""
	}
	tt.Listeners.Call(events.New(events.TooltipShow, tt.row.RecordID, tt.Affordance.ID))
	tt.Visible = true
	return tt.Content
}

// Hide hides the tooltip.
func (tt *Tooltip) Hide() {
	if tt.destroyed || !tt.Visible {
		return
	}
	tt.Visible = false
	tt.Listeners.Call(events.New(events.TooltipHide, tt.row.RecordID, tt.Affordance.ID))
}

// destroy releases the tooltip.
func (tt *Tooltip) destroy() {
	tt.Visible = false
	tt.destroyed = true
	tt.Listeners.Reset()
}
