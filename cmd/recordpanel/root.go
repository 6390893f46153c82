// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"cogentcore.org/recordpanel/config"
	"cogentcore.org/recordpanel/logx"
)

// configKey is used to store the config in the command context.
type configKey struct{}

// newRootCmd returns the root command with all subcommands.
func newRootCmd() *cobra.Command {
	var cfgFile string
	var vv, v, q bool

	root := &cobra.Command{
		Use:   "recordpanel",
		Short: "Present a records file as a panel of groups and rows",
		Long: `recordpanel loads a JSON, YAML or TOML records file into an in-memory
store and presents it as a tree of groups and rows, kept in sync with the
store as records are added, removed, updated and filtered.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			logx.UserLevel = logx.LevelFromFlags(vv, v, q)
			logx.SetDefault(cmd.ErrOrStderr())

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", fmt.Sprintf("config file (default: ./%s)", config.DefaultFile))
	pf.BoolVar(&vv, "vv", false, "debug output")
	pf.BoolVarP(&v, "verbose", "v", false, "verbose output")
	pf.BoolVarP(&q, "quiet", "q", false, "only print warnings and errors")
	pf.StringP("records", "r", "", "records file (.json, .yaml, .yml or .toml)")
	pf.StringP("group-field", "g", "", "field that groups the records (flat if empty)")
	pf.String("title-field", "", "field that provides row titles")
	pf.Int("title-index", 0, "position of the title among the row tools")
	pf.Bool("keep-single-row-groups", false, "keep groups alive while they have a member")
	pf.Bool("show-hidden", false, "also print filtered out rows and groups")

	root.AddCommand(newShowCmd(), newRunCmd(), newWatchCmd(), newViewCmd())
	return root
}

// getConfig returns the config loaded by the root command.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{Records: "records.yaml", TitleField: "name"}
}
