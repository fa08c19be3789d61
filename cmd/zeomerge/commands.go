/*
 * commands.go, part of zeomerge.
 *
 * Copyright 2026 The zeomerge Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rmera/zeomerge/batch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//app holds what the commands share: the settings and the logger,
//both set up before any command runs.
type app struct {
	configPath string
	verbose    bool

	config *batch.Config
	log    *zap.Logger
	out    io.Writer
}

//newLogger returns a development logger at debug level if verbose is set, and
//a production one that only reports warnings otherwise. Logs go to stderr, in
//color only if it is a terminal.
func newLogger(verbose bool) (*zap.Logger, error) {
	var config zap.Config
	if verbose {
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		if isatty.IsTerminal(os.Stderr.Fd()) {
			config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		config.Sampling = nil
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}

//setup loads the settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.config, err = batch.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
	} else {
		a.config = batch.DefaultConfig()
	}
	a.log, err = newLogger(a.verbose)
	return err
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}
	root := &cobra.Command{
		Use:   "zeomerge",
		Short: "Merge molecules from Si zeolites into metal-substituted frameworks",
		Long: `zeomerge takes the organic molecule out of a set of Si zeolite structures
and places it in the matching metal-substituted frameworks, dropping the
atoms that the framework already has. It can also select the region around
some framework atoms, and check that the merged files are consistent.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML file with settings")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debugging information")

	root.AddCommand(
		newMergeCmd(a),
		newSelectCmd(a),
		newCheckCmd(a),
		newCheckRefCmd(a),
	)
	return root
}
