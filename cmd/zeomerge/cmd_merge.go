/*
 * cmd_merge.go, part of zeomerge.
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

func newMergeCmd(a *app) *cobra.Command {
	var (
		hosts, guests, out string
		workers            int
		asJSON             bool
		anySymbol          bool
		tol                float64
	)
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge the molecule of each Si guest into the matching host frameworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			C := a.config
			f := cmd.Flags()
			if f.Changed("hosts") {
				C.HostDir = hosts
			}
			if f.Changed("guests") {
				C.GuestDir = guests
			}
			if f.Changed("out") {
				C.OutputDir = out
			}
			if f.Changed("workers") {
				C.Workers = workers
			}
			if f.Changed("any-symbol") {
				C.AnySymbol = anySymbol
			}
			if f.Changed("tol") {
				C.TolSame = tol
			}
			sum, err := batch.NewDriver(C, a.log).Run(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return sum.WriteJSON(a.out)
			}
			return sum.WriteTable(a.out)
		},
	}
	cmd.Flags().StringVar(&hosts, "hosts", "", "Directory with the host frameworks")
	cmd.Flags().StringVar(&guests, "guests", "", "Directory with the Si structures that contain the molecules")
	cmd.Flags().StringVar(&out, "out", "", "Directory for the merged structures")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Number of structures processed at the same time")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().BoolVar(&anySymbol, "any-symbol", false, "Drop molecule atoms close to any host atom, whatever the element")
	cmd.Flags().Float64Var(&tol, "tol", 0, "Distance under which a molecule atom duplicates a host atom")
	return cmd
}
