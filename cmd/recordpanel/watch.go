// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"cogentcore.org/recordpanel/base/errors"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the panel and reprint it whenever the records file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFromCmd(cmd)
			if err != nil {
				return err
			}
			a.print()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx)
		},
	}
}

// watch reloads and reprints the records file every time it is
// written, until ctx is done. The directory is watched rather than
// the file so that editors that replace the file are followed.
func (a *app) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Errorf("error creating records file watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(a.cfg.Records)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Errorf("error watching %s: %w", a.cfg.Records, err)
	}
	a.logger.Info("watching records file", "file", a.cfg.Records)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if name, _ := filepath.Abs(event.Name); name != target {
				continue
			}
			// a failed load keeps the current rows
			if errors.Log(a.load()) == nil {
				a.print()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("records file watcher error", "err", err)
		}
	}
}
