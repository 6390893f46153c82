// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "cogentcore.org/recordpanel/events"
)

func TestListenersReverseOrder(t *testing.T) {
	var ls Listeners
	var order []int
	ls.Add(Click, func(ev *Event) { order = append(order, 1) })
	ls.Add(Click, func(ev *Event) { order = append(order, 2) })
	ls.Call(New(Click, "r1", ""))
	assert.Equal(t, []int{2, 1}, order)
}

func TestListenersStopOnHandled(t *testing.T) {
	var ls Listeners
	called := 0
	ls.Add(Click, func(ev *Event) { called++ })
	ls.Add(Click, func(ev *Event) { ev.SetHandled() })
	ev := New(Click, "r1", "t1")
	ls.Call(ev)
	assert.Equal(t, 0, called)
	assert.True(t, ev.IsHandled())

	// already handled events are not delivered at all
	ls.Call(ev)
	assert.Equal(t, 0, called)
}

func TestListenersByType(t *testing.T) {
	var ls Listeners
	clicks, doubles := 0, 0
	ls.Add(Click, func(ev *Event) { clicks++ })
	ls.Add(DoubleClick, func(ev *Event) { doubles++ })
	ls.Call(New(DoubleClick, "r1", ""))
	assert.Equal(t, 0, clicks)
	assert.Equal(t, 1, doubles)
	assert.True(t, ls.Has(Click))
	assert.False(t, ls.Has(TooltipShow))
	assert.Equal(t, "DoubleClick", DoubleClick.String())
	assert.Equal(t, "Types(42)", Types(42).String())
}
