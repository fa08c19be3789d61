/*
 * cmd_check.go, part of zeomerge.
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
	"github.com/rmera/zeomerge/batch"
	"github.com/spf13/cobra"
)

//Both checks print their report and succeed even if some files fail it.
//Only unreadable directories make them fail.

func newCheckCmd(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that merged files for the same zeolite and reaction have the same number of atoms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = a.config.OutputDir
			}
			R, err := batch.CheckConsistency(dir, a.config.Reactions, a.log)
			if err != nil {
				return err
			}
			return R.WriteTable(a.out)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory with the merged files (default: the output directory)")
	return cmd
}

func newCheckRefCmd(a *app) *cobra.Command {
	var dir, ref string
	cmd := &cobra.Command{
		Use:   "checkref",
		Short: "Check that each merged file has as many atoms as its Si reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir = a.config.OutputDir
			}
			if !cmd.Flags().Changed("ref") {
				ref = a.config.GuestDir
			}
			R, err := batch.CheckReference(dir, ref, a.config.Reactions, a.log)
			if err != nil {
				return err
			}
			return R.WriteTable(a.out)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory with the merged files (default: the output directory)")
	cmd.Flags().StringVar(&ref, "ref", "", "Directory with the Si reference structures (default: the guest directory)")
	return cmd
}
