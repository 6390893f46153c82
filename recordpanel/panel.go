// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recordpanel incrementally synchronizes a two-level tree of
// group and row presentations against a mutable, optionally grouped
// collection of records.
//
// A [Panel] listens to the change notifications of its [Collection]
// and applies the minimal structural edits to its tree: a full load
// rebuilds everything, while adds, removes, field updates and filter
// changes touch only the affected rows and groups. Per-row state
// (expansion, tooltips, child content) survives as long as the
// record does.
package recordpanel

import (
	"fmt"
	"log/slog"
)

// Config is the configuration of a [Panel].
type Config struct {

	// TitleField is the record field that provides the row title.
	// It defaults to "name".
	TitleField string

	// TitleIndex is the position of the title among the tools of
	// a row header.
	TitleIndex int

	// Affordances are the tools shown in every row header, in order.
	Affordances []*Affordance

	// ChildContent produces the child content of a row. It is called
	// exactly once per row, on creation. If the content has a
	// Destroy method it is called when the row is destroyed.
	ChildContent func(rec Record) any

	// KeepSingleRowGroups keeps a group alive while it has at least
	// one member. By default a group is destroyed, together with its
	// last row, as soon as a removal leaves it with a single member.
	KeepSingleRowGroups bool

	// Logger is the logger used by the panel; it defaults to
	// [slog.Default].
	Logger *slog.Logger
}

// Panel presents the records of a [Collection] as a tree of [Group]
// and [Row] handles, kept in sync with the collection by its event
// handlers. A Panel must only be used from the goroutine that delivers
// the collection's events.
type Panel struct {
	cfg         Config
	coll        Collection
	grouped     bool
	affordances []*Affordance
	index       *FieldIndex
	logger      *slog.Logger

	// children are the top-level children; index 0 is the placeholder.
	children []Child

	// handle tables and the identity maps keyed into them
	rows        map[RowID]*Row
	recordRows  map[string]RowID
	groups      map[GroupID]*Group
	groupKeys   map[string]GroupID
	nextRowID   RowID
	nextGroupID GroupID

	liveTips int

	surface      Surface
	batchSurface Surface
	batchDepth   int
	batches      int
	busy         bool

	dispatching bool
	pending     []func()
}

// New returns a new empty [Panel] for the given collection. The
// affordance configuration is validated and a configuration error
// aborts construction. If the collection is [Observable] the panel
// registers itself as a listener, and if the collection already holds
// records they are loaded immediately.
func New(coll Collection, cfg Config) (*Panel, error) {
	if coll == nil {
		return nil, ErrNilCollection
	}
	afs, err := prepareAffordances(cfg.Affordances)
	if err != nil {
		return nil, err
	}
	if cfg.TitleField == "" {
		cfg.TitleField = "name"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	p := &Panel{
		cfg:         cfg,
		coll:        coll,
		grouped:     coll.IsGrouped(),
		affordances: afs,
		index:       NewFieldIndex(afs),
		logger:      cfg.Logger,
		children:    []Child{{Kind: PlaceholderChild}},
		rows:        make(map[RowID]*Row),
		recordRows:  make(map[string]RowID),
		groups:      make(map[GroupID]*Group),
		groupKeys:   make(map[string]GroupID),
	}
	if ob, ok := coll.(Observable); ok {
		ob.AddListener(p)
	}
	if coll.Count() > 0 {
		p.OnLoad(coll.Records(), true)
	}
	return p, nil
}

// Collection returns the collection presented by the panel.
func (p *Panel) Collection() Collection {
	return p.coll
}

// IsGrouped returns whether the panel is in grouped mode.
func (p *Panel) IsGrouped() bool {
	return p.grouped
}

// Affordances returns the validated affordances of the panel.
func (p *Panel) Affordances() []*Affordance {
	return p.affordances
}

// Index returns the field binding index of the panel.
func (p *Panel) Index() *FieldIndex {
	return p.index
}

// dispatch runs the given event handler. Events raised while another
// handler is running are queued and run once it completes, so that
// every event is fully applied before the next one starts.
func (p *Panel) dispatch(handler func()) {
	if p.dispatching {
		p.pending = append(p.pending, handler)
		return
	}
	p.dispatching = true
	done := false
	defer func() {
		p.dispatching = false
		if !done && len(p.pending) > 0 {
			p.logger.Error("event handler panicked; dropping queued events", "events", len(p.pending))
		}
		p.pending = nil
	}()
	handler()
	for len(p.pending) > 0 {
		next := p.pending[0]
		p.pending = p.pending[1:]
		next()
	}
	done = true
}

// OnBeforeLoad shows the busy indicator on the attached surface.
// It does nothing when no surface is attached.
func (p *Panel) OnBeforeLoad() {
	if p.surface == nil {
		return
	}
	p.busy = true
	p.surface.SetBusy(true)
}

// OnLoad tears down the whole tree and rebuilds it from the current
// contents of the collection. A failed load only hides the busy
// indicator and leaves the tree as it was.
func (p *Panel) OnLoad(records []Record, ok bool) {
	p.dispatch(func() {
		if p.busy {
			p.busy = false
			if p.surface != nil {
				p.surface.SetBusy(false)
			}
		}
		if !ok {
			p.logger.Warn("record load failed; keeping current rows", "rows", len(p.rows))
			return
		}
		defer p.batch()()
		p.teardown()
		if p.grouped {
			p.generateGrouped(nil)
		} else {
			p.generateFlat(nil, -1)
		}
		p.logger.Debug("panel loaded", "rows", len(p.rows), "groups", len(p.groups))
	})
}

// OnAdd creates rows for the given records. In grouped mode each row
// is appended to its group, which is created if needed; in flat mode
// the rows are inserted at the given collection index, offset by the
// reserved leading slot. Existing rows are never touched.
func (p *Panel) OnAdd(records []Record, index int) {
	if len(records) == 0 {
		return
	}
	p.dispatch(func() {
		defer p.batch()()
		if p.grouped {
			p.generateGrouped(records)
			return
		}
		if index < 0 {
			p.generateFlat(records, -1)
			return
		}
		p.generateFlat(records, index+1)
	})
}

// OnRemove destroys the rows of the given records. In grouped mode the
// owning group may be destroyed as well. Records without a row are ignored.
func (p *Panel) OnRemove(records []Record, index int, isMove bool) {
	if len(records) == 0 {
		return
	}
	p.dispatch(func() {
		defer p.batch()()
		for _, rec := range records {
			rw := p.Row(rec.ID())
			if rw == nil {
				p.logger.Debug("remove for unknown record ignored", "record", rec.ID())
				continue
			}
			if key, ok := rw.GroupKey(); ok {
				if g := p.groupByKey(key); g != nil {
					p.removeRow(g, rw)
					continue
				}
			}
			p.destroyRow(rw)
		}
	})
}

// OnUpdate refreshes the tools of the record's row that depend on the
// changed fields. Groups are never touched, and the row title is not
// re-derived.
func (p *Panel) OnUpdate(rec Record, op Operation, fields []string) {
	if rec == nil {
		return
	}
	p.dispatch(func() {
		if len(p.rows) == 0 {
			return
		}
		if len(p.index.Affected(fields)) == 0 {
			return
		}
		rw := p.Row(rec.ID())
		if rw == nil {
			p.logger.Debug("update for unknown record ignored", "record", rec.ID(), "op", op)
			return
		}
		p.updateFields(rw, rec, fields)
	})
}

// OnFilterChange recomputes the visibility of every row from the
// filtered view of the collection, then the visible count and
// visibility of every group. Nothing is created or destroyed.
func (p *Panel) OnFilterChange(filters []Filter) {
	p.dispatch(func() {
		defer p.batch()()
		p.WalkRows(func(rw *Row) bool {
			rw.Hidden = !p.coll.IsVisible(rw.RecordID)
			return Continue
		})
		for _, g := range p.Groups() {
			p.refreshVisibility(g)
		}
	})
}

// teardown destroys every row and group and clears the identity maps.
func (p *Panel) teardown() {
	for i := len(p.children) - 1; i >= 1; i-- {
		ch := p.children[i]
		switch ch.Kind {
		case GroupChild:
			p.destroyGroup(ch.Group)
		case RowChild:
			p.destroyRow(ch.Row)
		}
	}
	p.children = p.children[:1]
	clear(p.rows)
	clear(p.recordRows)
	clear(p.groups)
	clear(p.groupKeys)
}

// selection returns the function that reports whether a record is in
// the given selection. A nil selection selects every record; records
// are matched by id.
func selection(records []Record) func(rec Record) bool {
	if records == nil {
		return func(Record) bool { return true }
	}
	ids := make(map[string]bool, len(records))
	for _, rec := range records {
		ids[rec.ID()] = true
	}
	return func(rec Record) bool { return ids[rec.ID()] }
}

// generateGrouped creates rows for the selected records that do not
// have one yet, adding each row to its group as soon as it is created.
// For a full load the groups of the collection are walked in their
// native order; for an add to a [GroupKeyer] collection the key of each
// record is resolved directly. Groups that would have no rows are
// never created.
func (p *Panel) generateGrouped(records []Record) {
	if gk, ok := p.coll.(GroupKeyer); ok && records != nil {
		for _, rec := range records {
			if rw := p.newRow(rec); rw != nil {
				p.addRows(p.ensureGroup(gk.GroupKey(rec)), rw)
			}
		}
		return
	}
	selected := selection(records)
	for _, rg := range p.coll.Groups() {
		for _, rec := range rg.Records {
			if !selected(rec) {
				continue
			}
			if rw := p.newRow(rec); rw != nil {
				p.addRows(p.ensureGroup(rg.Key), rw)
			}
		}
	}
}

// generateFlat creates rows for the given records, or for every record
// of the collection if records is nil, and inserts each one as soon as
// it is created, starting at the given top-level index (appending for
// a negative index).
func (p *Panel) generateFlat(records []Record, index int) {
	if records == nil {
		records = p.coll.Records()
	}
	for _, rec := range records {
		rw := p.newRow(rec)
		if rw == nil {
			continue
		}
		at := p.insertChildren(index, Child{Kind: RowChild, Row: rw})
		if index >= 0 {
			index = at + 1
		}
		p.installTooltips(rw)
		rw.Hidden = !p.coll.IsVisible(rw.RecordID)
	}
}

// newRow creates the row for the record, or returns nil if the record
// is already presented.
func (p *Panel) newRow(rec Record) *Row {
	if p.Row(rec.ID()) != nil {
		p.logger.Debug("record already presented", "record", rec.ID())
		return nil
	}
	return p.createRow(rec)
}

// ExpandRecordByID expands the row of the record with the given id,
// and its group in grouped mode. It does nothing if there is no such row.
func (p *Panel) ExpandRecordByID(id string) {
	rw := p.Row(id)
	if rw == nil {
		return
	}
	if key, ok := rw.GroupKey(); ok {
		if g := p.groupByKey(key); g != nil {
			p.setGroupExpanded(g, true)
		}
	}
	p.setRowExpanded(rw, true)
}

// CollapseRecordByID collapses the row of the record with the given id.
// It does nothing if there is no such row.
func (p *Panel) CollapseRecordByID(id string) {
	if rw := p.Row(id); rw != nil {
		p.setRowExpanded(rw, false)
	}
}

// Row returns the row presenting the record with the given id, or nil.
func (p *Panel) Row(recordID string) *Row {
	id, ok := p.recordRows[recordID]
	if !ok {
		return nil
	}
	return p.rows[id]
}

// Group returns the group for the given key, or nil.
func (p *Panel) Group(key string) *Group {
	return p.groupByKey(key)
}

// Children returns the top-level children, including the leading
// placeholder. The returned slice must not be modified.
func (p *Panel) Children() []Child {
	return p.children
}

// Groups returns the groups in tree order.
func (p *Panel) Groups() []*Group {
	var gs []*Group
	for _, ch := range p.children {
		if ch.Kind == GroupChild {
			gs = append(gs, ch.Group)
		}
	}
	return gs
}

// Rows returns all rows in tree order.
func (p *Panel) Rows() []*Row {
	rows := make([]*Row, 0, len(p.rows))
	p.WalkRows(func(rw *Row) bool {
		rows = append(rows, rw)
		return Continue
	})
	return rows
}

// NumRows returns the number of rows in the tree.
func (p *Panel) NumRows() int {
	return len(p.rows)
}

// NumGroups returns the number of groups in the tree.
func (p *Panel) NumGroups() int {
	return len(p.groups)
}

// NumVisibleRows returns the number of rows that are not filtered out.
func (p *Panel) NumVisibleRows() int {
	n := 0
	p.WalkRows(func(rw *Row) bool {
		if !rw.Hidden {
			n++
		}
		return Continue
	})
	return n
}

// NumTooltips returns the number of live tooltips across all rows.
func (p *Panel) NumTooltips() int {
	return p.liveTips
}

const (
	// Continue = true can be returned from walk functions to continue.
	Continue = true

	// Break = false can be returned from walk functions to stop.
	Break = false
)

// WalkRows calls fun on every row in tree order until it returns [Break].
func (p *Panel) WalkRows(fun func(rw *Row) bool) {
	for _, ch := range p.children {
		switch ch.Kind {
		case RowChild:
			if !fun(ch.Row) {
				return
			}
		case GroupChild:
			for _, rw := range ch.Group.Rows {
				if !fun(rw) {
					return
				}
			}
		}
	}
}

// CheckIntegrity verifies that the identity maps and the tree agree:
// every attached row has exactly one identity entry and vice versa,
// and every group has members and is registered under its key.
func (p *Panel) CheckIntegrity() error {
	seen := make(map[RowID]bool, len(p.rows))
	var err error
	p.WalkRows(func(rw *Row) bool {
		switch {
		case rw.destroyed:
			err = fmt.Errorf("destroyed row %v attached", rw)
		case seen[rw.id]:
			err = fmt.Errorf("row %v attached twice", rw)
		case p.recordRows[rw.RecordID] != rw.id || p.rows[rw.id] != rw:
			err = fmt.Errorf("row %v has no identity entry", rw)
		}
		seen[rw.id] = true
		return err == nil
	})
	if err != nil {
		return err
	}
	if len(seen) != len(p.rows) || len(p.rows) != len(p.recordRows) {
		return fmt.Errorf("identity map holds %d rows, %d records, tree holds %d", len(p.rows), len(p.recordRows), len(seen))
	}
	gs := p.Groups()
	if len(gs) != len(p.groups) || len(gs) != len(p.groupKeys) {
		return fmt.Errorf("group map holds %d groups, tree holds %d", len(p.groups), len(gs))
	}
	for _, g := range gs {
		if len(g.Rows) == 0 {
			return fmt.Errorf("group %v has no rows", g)
		}
		if p.groupByKey(g.Key) != g {
			return fmt.Errorf("group %v not registered", g)
		}
		for _, rw := range g.Rows {
			if key, ok := rw.GroupKey(); !ok || key != g.Key {
				return fmt.Errorf("row %v has wrong group back reference", rw)
			}
		}
	}
	if len(p.children) == 0 || p.children[0].Kind != PlaceholderChild {
		return fmt.Errorf("placeholder missing")
	}
	return nil
}

var _ Listener = (*Panel)(nil)
