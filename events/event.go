// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the events that flow through a record panel
// and the [Listeners] that receive them.
package events

import "fmt"

// Event is one occurrence of an event [Types], delivered to the
// listeners of the element it was sent to and then to the
// listeners of that element's container, until it is handled.
type Event struct {

	// Typ is the type of the event.
	Typ Types

	// RecordID is the id of the record whose row received the event.
	RecordID string

	// AffordanceID is the id of the affordance that received the event,
	// or "" for events sent to a row header or group.
	AffordanceID string

	// handled is set once a listener has consumed the event.
	handled bool
}

// New returns a new event of the given type for the given record
// and affordance.
func New(typ Types, recordID, affordanceID string) *Event {
	return &Event{Typ: typ, RecordID: recordID, AffordanceID: affordanceID}
}

// Type returns the type of the event.
func (ev *Event) Type() Types {
	return ev.Typ
}

// IsHandled returns whether the event has been consumed.
func (ev *Event) IsHandled() bool {
	return ev.handled
}

// SetHandled marks the event as consumed, stopping its propagation
// to any further listeners and containers.
func (ev *Event) SetHandled() {
	ev.handled = true
}

// ClearHandled resets the handled state so the event can be re-sent.
func (ev *Event) ClearHandled() {
	ev.handled = false
}

func (ev *Event) String() string {
	return fmt.Sprintf("%v{Record: %q, Affordance: %q, Handled: %v}", ev.Typ, ev.RecordID, ev.AffordanceID, ev.handled)
}
