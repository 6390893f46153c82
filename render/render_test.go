// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render_test

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/recordpanel/recordpanel"
	. "cogentcore.org/recordpanel/render"
	"cogentcore.org/recordpanel/store"
)

func testPanel(t *testing.T, groupField string) (*store.Store, *recordpanel.Panel) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	st := store.New(groupField)
	require.NoError(t, st.Load(
		store.NewRecord("r1", map[string]any{"name": "one", "group": "A", "status": "on"}),
		store.NewRecord("r2", map[string]any{"name": "two", "group": "A", "status": "off"}),
		store.NewRecord("r3", map[string]any{"name": "three", "group": "B", "status": "on"}),
	))
	p, err := recordpanel.New(st, recordpanel.Config{
		Affordances: []*recordpanel.Affordance{{
			ID:     "status",
			Fields: recordpanel.Fields("status"),
			Icon:   func(v any, r recordpanel.Record) string { return v.(string) },
		}},
		ChildContent: func(r recordpanel.Record) any { return "status: " + r.Get("status").(string) },
	})
	require.NoError(t, err)
	return st, p
}

func TestTreeFlat(t *testing.T) {
	st, p := testPanel(t, "")
	opts := Options{Styles: DefaultStyles()}
	assert.Equal(t, "▸ one [on]\n▸ two [off]\n▸ three [on]\n", Tree(p, opts))

	p.ExpandRecordByID("r2")
	assert.Equal(t, "▸ one [on]\n▾ two [off]\n    status: off\n▸ three [on]\n", Tree(p, opts))

	st.AddFilter(store.FieldFilter{Field: "status", Value: "on"})
	assert.Len(t, Lines(p, opts), 2)
	opts.ShowHidden = true
	assert.Len(t, Lines(p, opts), 3)
}

func TestTreeGrouped(t *testing.T) {
	_, p := testPanel(t, "group")
	opts := Options{Styles: DefaultStyles()}
	assert.Equal(t, "▸ A (2)\n▸ B (1)\n", Tree(p, opts))

	p.ExpandRecordByID("r3")
	lines := Lines(p, opts)
	require.Len(t, lines, 3)
	assert.Equal(t, "B", lines[1].Group.Key)
	assert.Equal(t, "r3", lines[2].Row.RecordID)
	assert.Equal(t, 1, lines[2].Depth)
	assert.Equal(t, "▸ A (2)\n▾ B (1)\n  ▾ three [on]\n      status: on\n", Tree(p, opts))

	opts.ExpandAll = true
	assert.Len(t, Lines(p, opts), 5)
}

func TestHeaderTitleIndex(t *testing.T) {
	_, p := testPanel(t, "")
	assert.Equal(t, "one [on]", Header(p.Row("r1"), DefaultStyles()))
}

func TestTipText(t *testing.T) {
	assert.Equal(t, "active by ann & co", TipText("<p><strong>active</strong> by ann &amp; co</p>\n"))
	assert.Equal(t, "", TipText(""))
}
