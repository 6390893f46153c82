// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render renders the tree of a [recordpanel.Panel] as styled
// terminal text.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	strip "github.com/grokify/html-strip-tags-go"

	"cogentcore.org/recordpanel/recordpanel"
)

// Styles are the lipgloss styles used to render a panel.
type Styles struct {
	Group    lipgloss.Style
	Title    lipgloss.Style
	Tool     lipgloss.Style
	Content  lipgloss.Style
	Hidden   lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns the default [Styles].
func DefaultStyles() Styles {
	return Styles{
		Group:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Title:    lipgloss.NewStyle().Bold(true),
		Tool:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Content:  lipgloss.NewStyle().Faint(true),
		Hidden:   lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Selected: lipgloss.NewStyle().Reverse(true),
	}
}

// Options are the options of [Lines] and [Tree].
type Options struct {

	// ExpandAll shows the rows of collapsed groups.
	ExpandAll bool

	// ShowHidden also shows filtered out rows and groups.
	ShowHidden bool

	// ShowCursor highlights the line at index Cursor.
	ShowCursor bool
	Cursor     int

	Styles Styles
}

// Line is one line of a rendered panel: a group header or a row header.
type Line struct {
	Group *recordpanel.Group
	Row   *recordpanel.Row
	Depth int
}

// Lines returns the navigable lines of the panel in tree order.
func Lines(p *recordpanel.Panel, opts Options) []Line {
	var lines []Line
	for _, ch := range p.Children() {
		switch ch.Kind {
		case recordpanel.GroupChild:
			g := ch.Group
			if g.Hidden && !opts.ShowHidden {
				continue
			}
			lines = append(lines, Line{Group: g})
			if !g.Expanded && !opts.ExpandAll {
				continue
			}
			for _, rw := range g.Rows {
				if rw.Hidden && !opts.ShowHidden {
					continue
				}
				lines = append(lines, Line{Row: rw, Depth: 1})
			}
		case recordpanel.RowChild:
			if ch.Row.Hidden && !opts.ShowHidden {
				continue
			}
			lines = append(lines, Line{Row: ch.Row})
		}
	}
	return lines
}

func marker(expanded bool) string {
	if expanded {
		return "▾"
	}
	return "▸"
}

// Header returns the styled header text of a row: its title and
// tool icons in header order.
func Header(rw *recordpanel.Row, st Styles) string {
	items := rw.HeaderItems()
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if it.Tool != nil {
			parts = append(parts, st.Tool.Render("["+it.Tool.Icon+"]"))
			continue
		}
		parts = append(parts, st.Title.Render(it.Title))
	}
	return strings.Join(parts, " ")
}

// Tree renders the panel, one line per group or row, with the child
// content of expanded rows below them.
func Tree(p *recordpanel.Panel, opts Options) string {
	var b strings.Builder
	for i, ln := range Lines(p, opts) {
		indent := strings.Repeat("  ", ln.Depth)
		var s string
		hidden := false
		var content any
		if ln.Group != nil {
			s = marker(ln.Group.Expanded) + " " + opts.Styles.Group.Render(ln.Group.Title)
			hidden = ln.Group.Hidden
		} else {
			s = marker(ln.Row.Expanded) + " " + Header(ln.Row, opts.Styles)
			hidden = ln.Row.Hidden
			if ln.Row.Expanded {
				content = ln.Row.Content
			}
		}
		if hidden {
			s = opts.Styles.Hidden.Render(s)
		}
		if opts.ShowCursor && i == opts.Cursor {
			s = opts.Styles.Selected.Render(s)
		}
		b.WriteString(indent + s + "\n")
		if content != nil {
			for _, cl := range strings.Split(fmt.Sprint(content), "\n") {
				b.WriteString(indent + "    " + opts.Styles.Content.Render(cl) + "\n")
			}
		}
	}
	return b.String()
}

// TipText converts tooltip HTML to plain terminal text, with tags
// removed, entities decoded and whitespace collapsed.
func TipText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(strip.StripTags(s))), " ")
}
