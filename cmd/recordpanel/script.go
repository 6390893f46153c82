// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"

	"cogentcore.org/recordpanel/render"
	"cogentcore.org/recordpanel/store"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Apply a script of record changes and print the panel",
		Long: `run applies the commands of SCRIPT ("-" for standard input), one per line,
to the loaded records. Lines are split like shell words; blank lines and
lines starting with # are ignored. Commands:

  add ID [FIELD=VALUE...] [@INDEX]   add a record, at INDEX in flat mode
  remove ID...                       remove records
  set ID FIELD VALUE                 set a field of a record
  filter FIELD VALUE                 add an exact match filter
  similar FIELD QUERY [THRESHOLD]    add a fuzzy match filter
  clear-filters                      remove all filters
  expand ID | collapse ID            expand or collapse the row of a record
  click ID TOOL                      click a tool of the row of a record
  tip ID TOOL                        print the tooltip of a tool
  reload                             reload the records file
  print                              print the panel`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			if args[0] == "-" {
				return a.runScript(cmd.InOrStdin())
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return a.runScript(f)
		},
	}
}

// runScript runs the commands read from r, stopping at the first error.
func (a *app) runScript(r io.Reader) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		args, err := shellwords.Parse(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if len(args) == 0 {
			continue
		}
		if err := a.exec(args[0], args[1:]); err != nil {
			return fmt.Errorf("line %d: %s: %w", line, args[0], err)
		}
	}
	return sc.Err()
}

func wantArgs(args []string, lo, hi int) error {
	if len(args) < lo || (hi >= 0 && len(args) > hi) {
		return fmt.Errorf("wrong number of arguments: %d", len(args))
	}
	return nil
}

// exec runs one script command.
func (a *app) exec(cmd string, args []string) error {
	switch cmd {
	case "add":
		if err := wantArgs(args, 1, -1); err != nil {
			return err
		}
		index := -1
		fields := map[string]any{}
		for _, arg := range args[1:] {
			if rest, ok := strings.CutPrefix(arg, "@"); ok {
				n, err := strconv.Atoi(rest)
				if err != nil {
					return fmt.Errorf("invalid index %q", arg)
				}
				index = n
				continue
			}
			f, v, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("expected FIELD=VALUE, got %q", arg)
			}
			fields[f] = v
		}
		rec := store.NewRecord(args[0], fields)
		if index < 0 {
			return a.store.Add(rec)
		}
		return a.store.Insert(index, rec)
	case "remove":
		if err := wantArgs(args, 1, -1); err != nil {
			return err
		}
		if a.store.Remove(args...) == 0 {
			a.logger.Warn("nothing removed", "ids", args)
		}
	case "set":
		if err := wantArgs(args, 3, 3); err != nil {
			return err
		}
		return a.store.Set(args[0], args[1], args[2])
	case "filter":
		if err := wantArgs(args, 2, 2); err != nil {
			return err
		}
		a.store.AddFilter(store.FieldFilter{Field: args[0], Value: args[1]})
	case "similar":
		if err := wantArgs(args, 2, 3); err != nil {
			return err
		}
		sf := store.SimilarFilter{Field: args[0], Query: args[1]}
		if len(args) == 3 {
			th, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid threshold %q", args[2])
			}
			sf.Threshold = th
		}
		a.store.AddFilter(sf)
	case "clear-filters":
		a.store.ClearFilters()
	case "expand", "collapse":
		if err := wantArgs(args, 1, 1); err != nil {
			return err
		}
		if cmd == "expand" {
			a.panel.ExpandRecordByID(args[0])
		} else {
			a.panel.CollapseRecordByID(args[0])
		}
	case "click":
		if err := wantArgs(args, 2, 2); err != nil {
			return err
		}
		rw := a.panel.Row(args[0])
		if rw == nil {
			return fmt.Errorf("no row for record %q", args[0])
		}
		if rw.Tool(args[1]) == nil {
			return fmt.Errorf("no tool %q", args[1])
		}
		rw.Click(args[1])
	case "tip":
		if err := wantArgs(args, 2, 2); err != nil {
			return err
		}
		rw := a.panel.Row(args[0])
		if rw == nil {
			return fmt.Errorf("no row for record %q", args[0])
		}
		tt := rw.Tooltip(args[1])
		if tt == nil {
			return fmt.Errorf("no tooltip for tool %q", args[1])
		}
		fmt.Fprintf(a.out, "%s %s: %s\n", args[0], args[1], render.TipText(tt.Show()))
		tt.Hide()
	case "reload":
		return a.load()
	case "print":
		a.print()
	default:
		return fmt.Errorf("unknown command")
	}
	return nil
}
