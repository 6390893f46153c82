// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

import (
	"fmt"
	"slices"

	"cogentcore.org/recordpanel/events"
)

// GroupID identifies a [Group] within its [Panel]. Ids are never reused.
type GroupID int

// Group is the presentation of one group key in grouped mode.
// It owns its member rows.
type Group struct {

	// Key is the group key, displayed verbatim.
	Key string

	// Title is the key followed by the visible member count.
	Title string

	// Rows are the member rows, in insertion order.
	Rows []*Row

	// Hidden is whether the group has no visible members.
	Hidden bool

	// Expanded is whether the group body is expanded.
	Expanded bool

	// Listeners receive clicks on the group header and
	// expansion changes.
	Listeners events.Listeners

	id        GroupID
	panel     *Panel
	visible   int
	destroyed bool
}

// ID returns the handle id of the group.
func (g *Group) ID() GroupID {
	return g.id
}

// NumRows returns the number of member rows.
func (g *Group) NumRows() int {
	return len(g.Rows)
}

// NumVisible returns the number of member rows that were visible
// at the last title refresh.
func (g *Group) NumVisible() int {
	return g.visible
}

// Destroyed returns whether the group has been destroyed.
func (g *Group) Destroyed() bool {
	return g.destroyed
}

// Click sends a click to the group header, which toggles expansion.
func (g *Group) Click() *events.Event {
	if g.destroyed {
		return nil
	}
	ev := events.New(events.Click, "", "")
	g.Listeners.Call(ev)
	return ev
}

// refreshTitleCount recounts the visible members and updates the title.
func (g *Group) refreshTitleCount() {
	n := 0
	for _, rw := range g.Rows {
		if !rw.Hidden {
			n++
		}
	}
	g.visible = n
	g.Title = fmt.Sprintf("%s (%d)", g.Key, n)
}

// detachRow removes the row from the members without destroying it.
func (g *Group) detachRow(rw *Row) {
	g.Rows = slices.DeleteFunc(g.Rows, func(r *Row) bool { return r == rw })
}

func (g *Group) String() string {
	return fmt.Sprintf("Group(%d %q)", g.id, g.Key)
}

// groupByKey returns the live group for the given key, or nil.
func (p *Panel) groupByKey(key string) *Group {
	id, ok := p.groupKeys[key]
	if !ok {
		return nil
	}
	return p.groups[id]
}

// ensureGroup returns the group for the given key, creating,
// registering and appending an empty one if it does not exist.
func (p *Panel) ensureGroup(key string) *Group {
	if g := p.groupByKey(key); g != nil {
		return g
	}
	p.nextGroupID++
	g := &Group{id: p.nextGroupID, panel: p, Key: key}
	g.refreshTitleCount()
	g.Listeners.Add(events.Click, func(ev *events.Event) {
		p.setGroupExpanded(g, !g.Expanded)
	})
	p.groups[g.id] = g
	p.groupKeys[key] = g.id
	p.appendChild(Child{Kind: GroupChild, Group: g})
	p.logger.Debug("group created", "key", key)
	return g
}

// addRows appends the given rows to the group, installs their tooltips
// and recomputes the visible count and title.
func (p *Panel) addRows(g *Group, rows ...*Row) {
	for _, rw := range rows {
		rw.groupKey = g.Key
		rw.inGroup = true
		g.Rows = append(g.Rows, rw)
		p.installTooltips(rw)
		rw.Hidden = !p.coll.IsVisible(rw.RecordID)
	}
	p.refreshVisibility(g)
}

// minGroupRows is the member count at or below which a group is
// destroyed after one of its rows is removed.
func (p *Panel) minGroupRows() int {
	if p.cfg.KeepSingleRowGroups {
		return 0
	}
	return 1
}

// removeRow destroys the row and detaches it from the group. If the
// group is left with no more than [Panel.minGroupRows] members, the
// group is destroyed together with its remaining rows.
func (p *Panel) removeRow(g *Group, rw *Row) {
	p.destroyRow(rw)
	g.detachRow(rw)
	if len(g.Rows) <= p.minGroupRows() {
		p.destroyGroup(g)
		return
	}
	p.refreshVisibility(g)
}

// refreshVisibility recomputes the visible count and title of the
// group and hides it iff no member is visible.
func (p *Panel) refreshVisibility(g *Group) {
	g.refreshTitleCount()
	g.Hidden = g.visible == 0
}

// destroyGroup destroys every member row, then the group itself.
func (p *Panel) destroyGroup(g *Group) {
	if g.destroyed {
		return
	}
	for _, rw := range slices.Clone(g.Rows) {
		p.destroyRow(rw)
	}
	g.Rows = nil
	p.removeChild(Child{Kind: GroupChild, Group: g})
	delete(p.groups, g.id)
	if p.groupKeys[g.Key] == g.id {
		delete(p.groupKeys, g.Key)
	}
	g.destroyed = true
	g.Listeners.Reset()
	p.logger.Debug("group destroyed", "key", g.Key)
}

// setGroupExpanded expands or collapses the group.
func (p *Panel) setGroupExpanded(g *Group, expand bool) {
	if g.destroyed || g.Expanded == expand {
		return
	}
	g.Expanded = expand
	typ := events.Collapse
	if expand {
		typ = events.Expand
	}
	g.Listeners.Call(events.New(typ, "", ""))
}
