// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

import "slices"

// ChildKind is the kind of a top-level [Child] of a [Panel].
type ChildKind int32

const (
	// PlaceholderChild is the reserved leading slot of the panel.
	// It always exists at index 0 and is never a row or group.
	PlaceholderChild ChildKind = iota

	// GroupChild is a [Group] (grouped mode).
	GroupChild

	// RowChild is a [Row] (flat mode).
	RowChild
)

func (ck ChildKind) String() string {
	switch ck {
	case PlaceholderChild:
		return "placeholder"
	case GroupChild:
		return "group"
	case RowChild:
		return "row"
	}
	return "unknown"
}

// Child is one top-level child of a [Panel], tagged by its kind.
// Exactly one of Group and Row is set for group and row children.
type Child struct {
	Kind  ChildKind
	Group *Group
	Row   *Row
}

func (ch Child) same(o Child) bool {
	return ch.Kind == o.Kind && ch.Group == o.Group && ch.Row == o.Row
}

// appendChild adds the given child at the end of the top level.
func (p *Panel) appendChild(ch Child) {
	p.children = append(p.children, ch)
}

// insertChildren inserts the given children at the given top-level
// index, clamped to the valid range; a negative index appends.
// It returns the index of the first inserted child.
func (p *Panel) insertChildren(idx int, chs ...Child) int {
	if idx < 0 || idx > len(p.children) {
		idx = len(p.children)
	}
	if idx < 1 {
		idx = 1 // never before the placeholder
	}
	p.children = slices.Insert(p.children, idx, chs...)
	return idx
}

// removeChild removes the given child from the top level,
// returning false if it is not there.
func (p *Panel) removeChild(ch Child) bool {
	idx := slices.IndexFunc(p.children, ch.same)
	if idx < 0 {
		return false
	}
	p.children = slices.Delete(p.children, idx, idx+1)
	return true
}
