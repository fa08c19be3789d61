/*
 * contacts.go, part of zeomerge.
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

package zeomerge

import "sort"

//Contact is a pair of atoms closer than some cutoff.
type Contact struct {
	I, J     int
	Distance float64 //to the closest image of J
}

//ShortContacts returns the pairs made of one atom marked in a and another marked
//in b that are closer than cutoff in S, taking periodic images into account.
//Each pair appears once, with I from a and J from b, and the list is sorted
//by distance. An atom marked in both masks is not paired with itself.
func ShortContacts(S *Structure, a, b Mask, cutoff float64) ([]Contact, error) {
	if cutoff <= 0 {
		return nil, newStructureError("ShortContacts", "non-positive cutoff %g", cutoff)
	}
	if len(a) != S.Len() || len(b) != S.Len() {
		return nil, newStructureError("ShortContacts", "masks for %d and %d atoms used on a structure with %d", len(a), len(b), S.Len())
	}
	if a.Count() == 0 || b.Count() == 0 {
		return nil, nil
	}
	F, err := newFrame(S.Cell, S.PBC, "ShortContacts")
	if err != nil {
		return nil, err
	}
	C := newCellList(F, S.Coords, cutoff)
	closest := make(map[[2]int]float64)
	for _, i := range a.Indexes() {
		C.visit(i, cutoff, func(j int, off [3]int, d float64) {
			if !b[j] || j == i || d >= cutoff {
				return
			}
			k := [2]int{i, j}
			if prev, ok := closest[k]; !ok || d < prev {
				closest[k] = d
			}
		})
	}
	ret := make([]Contact, 0, len(closest))
	for k, d := range closest {
		ret = append(ret, Contact{I: k[0], J: k[1], Distance: d})
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Distance != ret[j].Distance {
			return ret[i].Distance < ret[j].Distance
		}
		if ret[i].I != ret[j].I {
			return ret[i].I < ret[j].I
		}
		return ret[i].J < ret[j].J
	})
	return ret, nil
}

//Clashes returns the host/molecule pairs of the merged structure that are
//closer than cutoff. With cutoff equal to the merge tolerance, these are the
//close pairs the match function didn't take as duplicates. I is always the
//host atom.
func (R *MergeResult) Clashes(cutoff float64) ([]Contact, error) {
	host := make(Mask, R.Len())
	for i := 0; i < R.NHost; i++ {
		host[i] = true
	}
	c, err := ShortContacts(R.Structure, host, host.Not(), cutoff)
	return c, errDecorate(err, "MergeResult.Clashes")
}
