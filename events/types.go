// Copyright (c) 2023, The GoKi Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "strconv"

// Types determines the type of panel event, and also the
// level at which one can select which events to listen to.
// Events travel from the affordance that received them up to
// the row header that contains it, unless a listener marks
// them as handled on the way.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// Click is a single activation of an affordance or row header.
	Click

	// DoubleClick represents two Click events in a row in rapid succession.
	DoubleClick

	// TooltipShow is sent immediately before a tooltip is displayed,
	// giving listeners the chance to recompute its content.
	TooltipShow

	// TooltipHide is sent after a tooltip has been hidden.
	TooltipHide

	// Expand is sent when a row or group is expanded.
	Expand

	// Collapse is sent when a row or group is collapsed.
	Collapse
)

var typeNames = [...]string{
	UnknownType: "UnknownType",
	Click:       "Click",
	DoubleClick: "DoubleClick",
	TooltipShow: "TooltipShow",
	TooltipHide: "TooltipHide",
	Expand:      "Expand",
	Collapse:    "Collapse",
}

// String returns the name of the event type.
func (tp Types) String() string {
	if tp < 0 || int(tp) >= len(typeNames) {
		return "Types(" + strconv.Itoa(int(tp)) + ")"
	}
	return typeNames[tp]
}
