/*
 * cmd_select.go, part of zeomerge.
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
	"fmt"
	"path/filepath"

	"github.com/rmera/zeomerge"
	"github.com/rmera/zeomerge/regionplot"
	"github.com/rmera/zeomerge/structio"
	"github.com/spf13/cobra"
)

func newSelectCmd(a *app) *cobra.Command {
	var (
		seeds, safe               string
		shells                    int
		scale                     float64
		plotName                  string
		outSelected, outRemaining string
	)
	cmd := &cobra.Command{
		Use:   "select FILE",
		Short: "Select the atoms within some bond shells of the seed elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			C := a.config
			f := cmd.Flags()
			if f.Changed("seeds") {
				C.SeedElements = zeomerge.ParseElements(seeds).Sorted()
			}
			if f.Changed("safe") {
				C.SafeElements = zeomerge.ParseElements(safe).Sorted()
			}
			if f.Changed("shells") {
				C.Shells = shells
			}
			if f.Changed("scale") {
				C.Scale = scale
			}
			if err := C.Validate(); err != nil {
				return err
			}
			S, err := structio.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts := C.GrowOptions()
			opts.Logger = a.log
			sel, rem, G, err := zeomerge.SelectShellRegion(S, C.Builder(), opts)
			if err != nil {
				return err
			}
			for k, n := range G.Counts() {
				fmt.Fprintf(a.out, "shell %d: %d selected\n", k, n)
			}
			fmt.Fprintf(a.out, "selected %d, remaining %d\n", sel.Len(), rem.Len())
			if outSelected != "" {
				if err := structio.WriteFile(outSelected, sel); err != nil {
					return err
				}
			}
			if outRemaining != "" {
				if err := structio.WriteFile(outRemaining, rem); err != nil {
					return err
				}
			}
			if plotName != "" {
				return regionplot.Save(S, G, filepath.Base(args[0]), plotName)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&seeds, "seeds", "", "Elements the selection starts from, as in Si,Al")
	cmd.Flags().StringVar(&safe, "safe", "", "Elements that are never selected, as in Na,K")
	cmd.Flags().IntVar(&shells, "shells", 0, "Number of bond shells to grow")
	cmd.Flags().Float64Var(&scale, "scale", zeomerge.DefaultScale, "Factor on the sum of covalent radii for two atoms to be bonded")
	cmd.Flags().StringVar(&plotName, "plot", "", "Plot the selection per shell to this file (png, svg or pdf)")
	cmd.Flags().StringVar(&outSelected, "out-selected", "", "Write the selected atoms to this file")
	cmd.Flags().StringVar(&outRemaining, "out-remaining", "", "Write the atoms not selected to this file")
	return cmd
}
