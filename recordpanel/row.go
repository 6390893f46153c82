// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel

import (
	"fmt"

	"cogentcore.org/recordpanel/events"
)

// RowID identifies a [Row] within its [Panel]. Ids are never reused.
type RowID int

// Tool is one affordance bound to the record of a [Row].
type Tool struct {

	// Affordance is the configuration of this tool.
	Affordance *Affordance

	// Icon is the output of the icon renderer for the
	// most recent value of the primary field.
	Icon string

	// Listeners receive the click and double-click events of this tool
	// before the row header does.
	Listeners events.Listeners

	row *Row
}

// Row returns the row that contains the tool.
func (tl *Tool) Row() *Row {
	return tl.row
}

// Row is the presentation of one record. It is created when the
// record first becomes presentable and destroyed when the record is
// removed or the panel reloads; a field change only refreshes the
// icons of the affected tools in place.
type Row struct {

	// RecordID is the id of the presented record.
	RecordID string

	// Title is read from the title field when the row is created.
	Title string

	// Tools are the affordance instances, in configuration order.
	Tools []*Tool

	// Content is the child content produced for the record.
	Content any

	// Expanded is whether the row body is expanded.
	Expanded bool

	// Hidden is whether the record is filtered out.
	Hidden bool

	// Listeners receive events that reach the row header:
	// clicks that were not stopped by a tool, and expansion changes.
	Listeners events.Listeners

	id     RowID
	panel  *Panel
	record Record

	// groupKey is the key of the owning group, valid when inGroup.
	// The group owns the row; this is only a back reference.
	groupKey string
	inGroup  bool

	tips          map[string]*Tooltip
	tipsInstalled bool
	destroyed     bool
}

// ID returns the handle id of the row.
func (rw *Row) ID() RowID {
	return rw.id
}

// GroupKey returns the key of the group that owns the row,
// and false for rows at the top level.
func (rw *Row) GroupKey() (string, bool) {
	return rw.groupKey, rw.inGroup
}

// Destroyed returns whether the row has been destroyed.
func (rw *Row) Destroyed() bool {
	return rw.destroyed
}

// Record returns the live record for this row, falling back to the
// record the row was last bound to when the collection no longer has it.
func (rw *Row) Record() Record {
	if rw.panel != nil {
		if rec, ok := rw.panel.coll.ByID(rw.RecordID); ok {
			return rec
		}
	}
	return rw.record
}

// Tool returns the tool for the given affordance id, or nil.
func (rw *Row) Tool(affordanceID string) *Tool {
	for _, tl := range rw.Tools {
		if tl.Affordance.ID == affordanceID {
			return tl
		}
	}
	return nil
}

// Tooltip returns the tooltip for the given affordance id, or nil.
func (rw *Row) Tooltip(affordanceID string) *Tooltip {
	return rw.tips[affordanceID]
}

// NumTooltips returns the number of live tooltips of the row.
func (rw *Row) NumTooltips() int {
	return len(rw.tips)
}

// Click sends a click to the tool with the given affordance id,
// or to the row header if affordanceID is "". The event reaches the
// header unless the tool stops it. It returns the delivered event,
// or nil for a destroyed row.
func (rw *Row) Click(affordanceID string) *events.Event {
	return rw.send(events.Click, affordanceID)
}

// DoubleClick is like [Row.Click] for a double-click.
func (rw *Row) DoubleClick(affordanceID string) *events.Event {
	return rw.send(events.DoubleClick, affordanceID)
}

func (rw *Row) send(typ events.Types, affordanceID string) *events.Event {
	if rw.destroyed {
		return nil
	}
	ev := events.New(typ, rw.RecordID, affordanceID)
	if affordanceID != "" {
		if tl := rw.Tool(affordanceID); tl != nil {
			tl.Listeners.Call(ev)
		}
	}
	rw.Listeners.Call(ev)
	return ev
}

// HeaderItem is one item of a row header: either the title or a tool.
type HeaderItem struct {
	Title string
	Tool  *Tool
}

// HeaderItems returns the header items of the row, with the title
// placed among the tools at the configured title index.
func (rw *Row) HeaderItems() []HeaderItem {
	ti := 0
	if rw.panel != nil {
		ti = min(max(rw.panel.cfg.TitleIndex, 0), len(rw.Tools))
	}
	items := make([]HeaderItem, 0, len(rw.Tools)+1)
	for i, tl := range rw.Tools {
		if i == ti {
			items = append(items, HeaderItem{Title: rw.Title})
		}
		items = append(items, HeaderItem{Tool: tl})
	}
	if ti == len(rw.Tools) {
		items = append(items, HeaderItem{Title: rw.Title})
	}
	return items
}

func (rw *Row) String() string {
	return fmt.Sprintf("Row(%d %q)", rw.id, rw.RecordID)
}

// createRow creates the row for the given record, binding every
// affordance to the record's current field values, and registers it
// in the identity map. The row is visible and collapsed.
func (p *Panel) createRow(rec Record) *Row {
	p.nextRowID++
	rw := &Row{
		id:       p.nextRowID,
		panel:    p,
		RecordID: rec.ID(),
		record:   rec,
	}
	if tv := rec.Get(p.cfg.TitleField); tv != nil {
		rw.Title = fmt.Sprint(tv)
	}
	rw.Tools = make([]*Tool, 0, len(p.affordances))
	for _, af := range p.affordances {
		tl := &Tool{
			Affordance: af,
			Icon:       af.Icon(af.primaryValue(rec), rec),
			row:        rw,
		}
		bindTool(tl)
		rw.Tools = append(rw.Tools, tl)
	}
	if p.cfg.ChildContent != nil {
		rw.Content = p.cfg.ChildContent(rec)
	}
	rw.Listeners.Add(events.Click, func(ev *events.Event) {
		p.setRowExpanded(rw, !rw.Expanded)
	})
	p.rows[rw.id] = rw
	p.recordRows[rw.RecordID] = rw.id
	return rw
}

// bindTool wires the click and double-click handlers of the tool's
// affordance. Handlers receive the primary field value of the live
// record at the time of the click.
func bindTool(tl *Tool) {
	af := tl.Affordance
	rw := tl.row
	if af.StopEvent {
		stop := func(ev *events.Event) { ev.SetHandled() }
		tl.Listeners.Add(events.Click, stop)
		tl.Listeners.Add(events.DoubleClick, stop)
	}
	if af.Click != nil {
		tl.Listeners.Add(events.Click, func(ev *events.Event) {
			rec := rw.Record()
			af.Click(af.primaryValue(rec), rec)
		})
	}
	if af.DoubleClick != nil {
		tl.Listeners.Add(events.DoubleClick, func(ev *events.Event) {
			rec := rw.Record()
			af.DoubleClick(af.primaryValue(rec), rec)
		})
	}
}

// installTooltips creates one tooltip for every affordance of the row
// that has a tip renderer. It must only take effect once per row;
// later calls are ignored.
func (p *Panel) installTooltips(rw *Row) {
	if rw.destroyed {
		return
	}
	if rw.tipsInstalled {
		p.logger.Debug("tooltips already installed", "record", rw.RecordID)
		return
	}
	rw.tipsInstalled = true
	rw.tips = make(map[string]*Tooltip)
	for _, tl := range rw.Tools {
		af := tl.Affordance
		if af.Tip == nil {
			continue
		}
		tt := &Tooltip{Affordance: af, row: rw}
		tt.Listeners.Add(events.TooltipShow, func(ev *events.Event) {
			rec := rw.Record()
			tt.Content = af.Tip(af.primaryValue(rec), rec, tt)
		})
		rw.tips[af.ID] = tt
		p.liveTips++
	}
}

// updateFields refreshes, in place, the icons of the tools that depend
// on any of the given fields, using the current values of rec.
// It returns whether anything was refreshed.
func (p *Panel) updateFields(rw *Row, rec Record, fields []string) bool {
	affected := p.index.Affected(fields)
	if len(affected) == 0 {
		return false
	}
	if rw == nil || rw.destroyed {
		p.logger.Debug("update for detached row ignored", "fields", fields)
		return false
	}
	if rec == nil {
		rec = rw.Record()
	} else {
		rw.record = rec
	}
	for _, af := range affected {
		tl := rw.Tool(af.ID)
		if tl == nil {
			continue
		}
		tl.Icon = af.Icon(af.primaryValue(rec), rec)
	}
	return true
}

// destroyRow releases the tooltips and child content of the row,
// detaches it from its parent and removes it from the identity map.
func (p *Panel) destroyRow(rw *Row) {
	if rw.destroyed {
		return
	}
	for _, tt := range rw.tips {
		tt.destroy()
		p.liveTips--
	}
	rw.tips = nil
	if d, ok := rw.Content.(interface{ Destroy() }); ok {
		d.Destroy()
	}
	if rw.inGroup {
		if g := p.groupByKey(rw.groupKey); g != nil {
			g.detachRow(rw)
		}
	} else {
		p.removeChild(Child{Kind: RowChild, Row: rw})
	}
	delete(p.rows, rw.id)
	if p.recordRows[rw.RecordID] == rw.id {
		delete(p.recordRows, rw.RecordID)
	}
	rw.destroyed = true
	rw.Expanded = false
	rw.Listeners.Reset()
	for _, tl := range rw.Tools {
		tl.Listeners.Reset()
	}
}

// setRowExpanded expands or collapses the row. In flat mode at most
// one row is expanded at a time.
func (p *Panel) setRowExpanded(rw *Row, expand bool) {
	if rw.destroyed || rw.Expanded == expand {
		return
	}
	if expand && !p.grouped {
		for _, ch := range p.children {
			if ch.Kind == RowChild && ch.Row != rw && ch.Row.Expanded {
				p.setRowExpanded(ch.Row, false)
			}
		}
	}
	rw.Expanded = expand
	typ := events.Collapse
	if expand {
		typ = events.Expand
	}
	rw.Listeners.Call(events.New(typ, rw.RecordID, ""))
}
