// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recordpanel_test

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/recordpanel/events"
	. "cogentcore.org/recordpanel/recordpanel"
	"cogentcore.org/recordpanel/store"
)

func rec(id, name, group, status string) *store.Record {
	return store.NewRecord(id, map[string]any{"name": name, "group": group, "status": status})
}

// spyIcon returns an icon renderer that counts its calls under name.
func spyIcon(name string, calls map[string]int) IconRenderer {
	return func(value any, r Record) string {
		calls[name]++
		return fmt.Sprintf("%s:%v", name, value)
	}
}

func spyAffordances(calls map[string]int) []*Affordance {
	return []*Affordance{
		{ID: "T1", Fields: Fields("status"), Icon: spyIcon("T1", calls)},
		{ID: "T2", Fields: Fields("name"), Icon: spyIcon("T2", calls)},
	}
}

func rowIDs(p *Panel) []string {
	var ids []string
	for _, rw := range p.Rows() {
		ids = append(ids, rw.RecordID)
	}
	return ids
}

func groupRowIDs(g *Group) []string {
	var ids []string
	for _, rw := range g.Rows {
		ids = append(ids, rw.RecordID)
	}
	return ids
}

func newPanel(t *testing.T, st *store.Store, cfg Config) *Panel {
	t.Helper()
	p, err := New(st, cfg)
	require.NoError(t, err)
	return p
}

func TestGroupedScenario(t *testing.T) {
	st := store.New("group")
	require.NoError(t, st.Load(rec("r1", "one", "A", "on"), rec("r2", "two", "A", "on"), rec("r3", "three", "B", "on")))
	p := newPanel(t, st, Config{Affordances: spyAffordances(map[string]int{})})

	gs := p.Groups()
	require.Len(t, gs, 2)
	ga, gb := gs[0], gs[1]
	assert.Equal(t, "A", ga.Key)
	assert.Equal(t, "A (2)", ga.Title)
	assert.Equal(t, []string{"r1", "r2"}, groupRowIDs(ga))
	assert.Equal(t, "B", gb.Key)
	assert.Equal(t, []string{"r3"}, groupRowIDs(gb))
	assert.Equal(t, 3, p.NumRows())
	require.NoError(t, p.CheckIntegrity())

	r2 := p.Row("r2")
	require.NotNil(t, r2)
	key, ok := r2.GroupKey()
	assert.True(t, ok)
	assert.Equal(t, "A", key)

	st.Remove("r1")
	assert.True(t, ga.Destroyed())
	assert.True(t, r2.Destroyed())
	assert.Nil(t, p.Row("r2"))
	assert.Nil(t, p.Group("A"))
	assert.Equal(t, 1, p.NumRows())
	assert.Equal(t, 1, p.NumGroups())
	require.NoError(t, p.CheckIntegrity())

	// r2 is still in the store but its row went with group A
	assert.NotPanics(t, func() { st.Remove("r2") })
	assert.Equal(t, 1, p.NumRows())
	assert.Equal(t, 1, p.NumGroups())
	require.NoError(t, p.CheckIntegrity())

	st.Remove("r3")
	assert.True(t, gb.Destroyed())
	assert.Equal(t, 0, p.NumRows())
	assert.Equal(t, 0, p.NumGroups())
	assert.Len(t, p.Children(), 1)
	require.NoError(t, p.CheckIntegrity())
}

func TestRemoveUnknownRecord(t *testing.T) {
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", "on"), rec("r2", "two", "", "on")))
	p := newPanel(t, st, Config{})

	p.OnRemove([]Record{rec("ghost", "ghost", "", "on")}, 0, false)
	assert.Equal(t, []string{"r1", "r2"}, rowIDs(p))
	require.NoError(t, p.CheckIntegrity())
}

// groupCounter counts the calls to Groups of the store it wraps.
type groupCounter struct {
	*store.Store
	calls int
}

func (gc *groupCounter) Groups() []RecordGroup {
	gc.calls++
	return gc.Store.Groups()
}

func TestGroupedAddResolvesKeys(t *testing.T) {
	st := store.New("group")
	require.NoError(t, st.Load(rec("r1", "one", "B", "on"), rec("r2", "two", "B", "on")))
	gc := &groupCounter{Store: st}
	p, err := New(gc, Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, gc.calls)

	require.NoError(t, st.Add(rec("r3", "three", "A", "on"), rec("r4", "four", "B", "on")))
	assert.Equal(t, 1, gc.calls)
	assert.Equal(t, []string{"r1", "r2", "r4"}, groupRowIDs(p.Group("B")))
	assert.Equal(t, []string{"r3"}, groupRowIDs(p.Group("A")))
	assert.Equal(t, "B (3)", p.Group("B").Title)
	require.NoError(t, p.CheckIntegrity())

	require.NoError(t, st.Load(rec("r1", "one", "B", "on")))
	assert.Equal(t, 2, gc.calls)
	assert.Equal(t, []string{"r1"}, rowIDs(p))
}

func TestKeepSingleRowGroups(t *testing.T) {
	st := store.New("group")
	require.NoError(t, st.Load(rec("r1", "one", "A", "on"), rec("r2", "two", "A", "on")))
	p := newPanel(t, st, Config{KeepSingleRowGroups: true})

	st.Remove("r1")
	ga := p.Group("A")
	require.NotNil(t, ga)
	assert.Equal(t, []string{"r2"}, groupRowIDs(ga))
	assert.Equal(t, "A (1)", ga.Title)

	st.Remove("r2")
	assert.True(t, ga.Destroyed())
	assert.Equal(t, 0, p.NumGroups())
}

func TestFlatInsertion(t *testing.T) {
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", ""), rec("r2", "two", "", ""), rec("r3", "three", "", "")))
	p := newPanel(t, st, Config{})

	require.NoError(t, st.Insert(1, rec("r4", "four", "", "")))
	assert.Equal(t, []string{"r1", "r4", "r2", "r3"}, rowIDs(p))
	assert.Equal(t, PlaceholderChild, p.Children()[0].Kind)
	assert.Equal(t, RowChild, p.Children()[2].Kind)

	require.NoError(t, st.Insert(0, rec("r0", "zero", "", "")))
	require.NoError(t, st.Add(rec("r5", "five", "", "")))
	assert.Equal(t, []string{"r0", "r1", "r4", "r2", "r3", "r5"}, rowIDs(p))

	st.Remove("r4", "missing")
	assert.Equal(t, []string{"r0", "r1", "r2", "r3", "r5"}, rowIDs(p))
	assert.Equal(t, 0, p.NumGroups())
	require.NoError(t, p.CheckIntegrity())
}

func TestLoadRebuilds(t *testing.T) {
	st := store.New("")
	p := newPanel(t, st, Config{})
	assert.Equal(t, 0, p.NumRows())

	require.NoError(t, st.Load(rec("r1", "one", "", ""), rec("r2", "two", "", "")))
	old := p.Row("r1")
	require.NotNil(t, old)
	assert.Equal(t, "one", old.Title)

	require.NoError(t, st.Load(rec("r1", "uno", "", ""), rec("r3", "three", "", "")))
	assert.True(t, old.Destroyed())
	assert.Equal(t, []string{"r1", "r3"}, rowIDs(p))
	assert.Equal(t, "uno", p.Row("r1").Title)
	require.NoError(t, p.CheckIntegrity())
}

func TestFailedLoadKeepsRows(t *testing.T) {
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", "")))
	p := newPanel(t, st, Config{})
	rw := p.Row("r1")

	assert.Error(t, st.Load(rec("r2", "a", "", ""), rec("r2", "b", "", "")))
	assert.Same(t, rw, p.Row("r1"))
	assert.False(t, rw.Destroyed())
}

func TestSurgicalUpdate(t *testing.T) {
	calls := map[string]int{}
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", "active"), rec("r2", "two", "", "active")))
	p := newPanel(t, st, Config{Affordances: spyAffordances(calls)})
	assert.Equal(t, map[string]int{"T1": 2, "T2": 2}, calls)
	clear(calls)

	rw := p.Row("r1")
	require.NoError(t, st.Set("r1", "status", "done"))
	assert.Equal(t, map[string]int{"T1": 1}, calls)
	assert.Equal(t, "T1:done", rw.Tool("T1").Icon)
	assert.Equal(t, "T2:one", rw.Tool("T2").Icon)
	assert.Equal(t, "T1:active", p.Row("r2").Tool("T1").Icon)

	clear(calls)
	require.NoError(t, st.Set("r1", "color", "red"))
	assert.Empty(t, calls)

	require.NoError(t, st.Set("r1", "name", "uno"))
	assert.Equal(t, map[string]int{"T2": 1}, calls)
	assert.Equal(t, "T2:uno", rw.Tool("T2").Icon)
	assert.Equal(t, "one", rw.Title)
	assert.Same(t, rw, p.Row("r1"))
}

func TestUpdateAbsentRecord(t *testing.T) {
	calls := map[string]int{}
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", "active")))
	p := newPanel(t, st, Config{Affordances: spyAffordances(calls)})
	clear(calls)

	ghost := rec("ghost", "ghost", "", "gone")
	assert.NotPanics(t, func() {
		p.OnUpdate(ghost, Edit, []string{"status", "name"})
		p.OnUpdate(nil, Commit, []string{"status"})
	})
	assert.Empty(t, calls)
	assert.Equal(t, "T1:active", p.Row("r1").Tool("T1").Icon)

	empty := newPanel(t, store.New(""), Config{Affordances: spyAffordances(calls)})
	assert.NotPanics(t, func() { empty.OnUpdate(ghost, Edit, []string{"status"}) })
	assert.Empty(t, calls)
}

type visibility struct {
	rows   map[string]bool
	groups map[string]string
}

func snapshot(p *Panel) visibility {
	v := visibility{rows: map[string]bool{}, groups: map[string]string{}}
	for _, rw := range p.Rows() {
		v.rows[rw.RecordID] = rw.Hidden
	}
	for _, g := range p.Groups() {
		v.groups[g.Key] = fmt.Sprintf("%s hidden=%v", g.Title, g.Hidden)
	}
	return v
}

func TestFilterChange(t *testing.T) {
	st := store.New("group")
	require.NoError(t, st.Load(
		rec("r1", "one", "A", "active"),
		rec("r2", "two", "A", "inactive"),
		rec("r3", "three", "B", "inactive"),
		rec("r4", "four", "B", "inactive"),
	))
	p := newPanel(t, st, Config{})

	st.AddFilter(store.FieldFilter{Field: "status", Value: "active"})
	first := snapshot(p)
	assert.Equal(t, map[string]bool{"r1": false, "r2": true, "r3": true, "r4": true}, first.rows)
	assert.Equal(t, map[string]string{"A": "A (1) hidden=false", "B": "B (0) hidden=true"}, first.groups)
	assert.Equal(t, 4, p.NumRows())
	assert.Equal(t, 1, p.NumVisibleRows())

	p.OnFilterChange(nil)
	assert.Equal(t, first, snapshot(p))

	// rows added under a filter are created hidden
	require.NoError(t, st.Add(rec("r5", "five", "C", "inactive")))
	assert.True(t, p.Row("r5").Hidden)
	assert.True(t, p.Group("C").Hidden)

	st.ClearFilters()
	assert.Equal(t, 5, p.NumVisibleRows())
	assert.Equal(t, "B (2)", p.Group("B").Title)
	assert.False(t, p.Group("B").Hidden)
	require.NoError(t, p.CheckIntegrity())
}

func checkPresence(t *testing.T, st *store.Store, p *Panel) {
	t.Helper()
	var want []string
	for _, r := range st.Records() {
		want = append(want, r.ID())
	}
	got := rowIDs(p)
	assert.ElementsMatch(t, want, got)
	require.NoError(t, p.CheckIntegrity())
	for _, g := range p.Groups() {
		assert.GreaterOrEqual(t, g.NumRows(), 1)
		assert.Equal(t, g.NumVisible() == 0, g.Hidden)
	}
}

func randomEvents(t *testing.T, groupField string) {
	rnd := rand.New(rand.NewPCG(3, 7))
	keys := []string{"A", "B", "C", "D"}
	st := store.New(groupField)
	next := 0
	newRec := func() *store.Record {
		next++
		id := fmt.Sprintf("r%d", next)
		return rec(id, id, keys[rnd.IntN(len(keys))], "on")
	}
	var initial []*store.Record
	for range 10 {
		initial = append(initial, newRec())
	}
	p := newPanel(t, st, Config{KeepSingleRowGroups: true})
	require.NoError(t, st.Load(initial...))
	checkPresence(t, st, p)

	for range 300 {
		switch n := st.Count(); {
		case n == 0 || rnd.IntN(2) == 0:
			recs := []*store.Record{newRec()}
			if rnd.IntN(3) == 0 {
				recs = append(recs, newRec())
			}
			require.NoError(t, st.Insert(rnd.IntN(n+1), recs...))
		default:
			all := st.Records()
			ids := []string{all[rnd.IntN(n)].ID()}
			if n > 1 && rnd.IntN(3) == 0 {
				ids = append(ids, all[rnd.IntN(n)].ID())
			}
			st.Remove(ids...)
		}
		checkPresence(t, st, p)
		if groupField == "" {
			var want []string
			for _, r := range st.Records() {
				want = append(want, r.ID())
			}
			require.Equal(t, want, rowIDs(p))
		}
	}
}

func TestRandomEventsFlat(t *testing.T) {
	randomEvents(t, "")
}

func TestRandomEventsGrouped(t *testing.T) {
	randomEvents(t, "group")
}

func TestExpandRecordByID(t *testing.T) {
	st := store.New("group")
	require.NoError(t, st.Load(rec("r1", "one", "A", ""), rec("r2", "two", "A", ""), rec("r3", "three", "B", "")))
	p := newPanel(t, st, Config{})

	var expanded []string
	rw := p.Row("r3")
	rw.Listeners.Add(events.Expand, func(ev *events.Event) {
		expanded = append(expanded, ev.RecordID)
	})
	p.ExpandRecordByID("r3")
	assert.True(t, p.Group("B").Expanded)
	assert.False(t, p.Group("A").Expanded)
	assert.True(t, rw.Expanded)
	assert.Equal(t, []string{"r3"}, expanded)

	p.ExpandRecordByID("r3")
	assert.Len(t, expanded, 1)

	assert.NotPanics(t, func() { p.ExpandRecordByID("missing") })

	// grouped mode allows several expanded rows
	p.ExpandRecordByID("r1")
	assert.True(t, p.Row("r1").Expanded)
	assert.True(t, rw.Expanded)

	p.CollapseRecordByID("r3")
	assert.False(t, rw.Expanded)
	assert.True(t, p.Group("B").Expanded)
}

func TestFlatAccordion(t *testing.T) {
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", ""), rec("r2", "two", "", "")))
	p := newPanel(t, st, Config{})

	p.ExpandRecordByID("r1")
	assert.True(t, p.Row("r1").Expanded)
	p.ExpandRecordByID("r2")
	assert.False(t, p.Row("r1").Expanded)
	assert.True(t, p.Row("r2").Expanded)
}

func TestConfigErrors(t *testing.T) {
	st := store.New("")
	icon := func(any, Record) string { return "" }

	_, err := New(st, Config{Affordances: []*Affordance{{ID: "a", Fields: Fields("x")}}})
	assert.ErrorIs(t, err, ErrMissingIconRenderer)

	_, err = New(st, Config{Affordances: []*Affordance{{ID: "a", Icon: icon}, {ID: "a", Icon: icon}}})
	assert.ErrorIs(t, err, ErrDuplicateAffordance)

	_, err = New(st, Config{Affordances: []*Affordance{nil}})
	assert.ErrorIs(t, err, ErrNilAffordance)

	_, err = New(nil, Config{})
	assert.ErrorIs(t, err, ErrNilCollection)

	cfg := []*Affordance{{Icon: icon}, {ID: "named", Icon: icon}}
	p, err := New(st, Config{Affordances: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{"recordpanel-tool-1", "named"}, affordanceIDs(p.Affordances()))
	assert.Equal(t, "", cfg[0].ID)
}

type content struct {
	id        string
	destroyed int
}

func (c *content) Destroy() { c.destroyed++ }

func TestChildContent(t *testing.T) {
	made := map[string]*content{}
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", ""), rec("r2", "two", "", "")))
	p := newPanel(t, st, Config{ChildContent: func(r Record) any {
		c := &content{id: r.ID()}
		made[r.ID()] = c
		return c
	}})
	require.Len(t, made, 2)
	assert.Same(t, made["r1"], p.Row("r1").Content)

	require.NoError(t, st.Set("r1", "status", "x"))
	assert.Len(t, made, 2)

	st.Remove("r1")
	assert.Equal(t, 1, made["r1"].destroyed)
	assert.Equal(t, 0, made["r2"].destroyed)
}

func TestReentrantEvents(t *testing.T) {
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "one", "", "")))
	var seenDuring *Row
	var p *Panel
	p = newPanel(t, st, Config{ChildContent: func(r Record) any {
		if r.ID() == "r4" {
			require.NoError(t, st.Add(rec("r5", "five", "", "")))
			seenDuring = p.Row("r5")
		}
		return nil
	}})

	require.NoError(t, st.Add(rec("r4", "four", "", "")))
	assert.Nil(t, seenDuring)
	assert.Equal(t, []string{"r1", "r4", "r5"}, rowIDs(p))
	require.NoError(t, p.CheckIntegrity())
}

func TestWalkRowsBreak(t *testing.T) {
	st := store.New("")
	require.NoError(t, st.Load(rec("r1", "", "", ""), rec("r2", "", "", ""), rec("r3", "", "", "")))
	p := newPanel(t, st, Config{})
	var ids []string
	p.WalkRows(func(rw *Row) bool {
		ids = append(ids, rw.RecordID)
		return !slices.Contains(ids, "r2")
	})
	assert.Equal(t, []string{"r1", "r2"}, ids)
}
