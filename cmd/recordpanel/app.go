// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"cogentcore.org/recordpanel/config"
	"cogentcore.org/recordpanel/recordpanel"
	"cogentcore.org/recordpanel/render"
	"cogentcore.org/recordpanel/store"
)

// app is a store presented by a panel, as shared by the commands.
type app struct {
	cfg    *config.Config
	store  *store.Store
	panel  *recordpanel.Panel
	out    io.Writer
	logger *slog.Logger
}

// newApp returns a new app with an empty store; call [app.load]
// to read the records file.
func newApp(cfg *config.Config, out io.Writer, logger *slog.Logger) (*app, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pcfg, err := cfg.Panel(logger)
	if err != nil {
		return nil, err
	}
	pcfg.ChildContent = details
	st := store.New(cfg.GroupField)
	p, err := recordpanel.New(st, pcfg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, store: st, panel: p, out: out, logger: logger}, nil
}

// appFromCmd returns the app for the config of the given command,
// with its records loaded.
func appFromCmd(cmd *cobra.Command) (*app, error) {
	a, err := newApp(getConfig(cmd.Context()), cmd.OutOrStdout(), slog.Default())
	if err != nil {
		return nil, err
	}
	if err := a.load(); err != nil {
		return nil, err
	}
	return a, nil
}

// details is the child content of a row: the fields of the record
// when it was presented.
func details(rec recordpanel.Record) any {
	sr, ok := rec.(*store.Record)
	if !ok {
		return nil
	}
	var b strings.Builder
	for i, f := range sr.Fields() {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s=%v", f, sr.Get(f))
	}
	return b.String()
}

// load reads the records file into the store.
func (a *app) load() error {
	if err := a.store.LoadFile(a.cfg.Records); err != nil {
		return err
	}
	a.logger.Debug("records loaded", "file", a.cfg.Records, "records", a.store.Count(), "rows", a.panel.NumRows())
	return nil
}

func (a *app) renderOptions() render.Options {
	return render.Options{
		ExpandAll:  true,
		ShowHidden: a.cfg.ShowHidden,
		Styles:     render.DefaultStyles(),
	}
}

// print writes the tree of the panel.
func (a *app) print() {
	fmt.Fprint(a.out, render.Tree(a.panel, a.renderOptions()))
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the panel for the records file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			a.print()
			return nil
		},
	}
}
