/*
 * merge.go, part of zeomerge.
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

import (
	v3 "github.com/rmera/zeomerge/v3"
)

//DefaultTolSame is the distance, in A, under which a host atom and a molecule
//atom are taken to be the same atom.
const DefaultTolSame = 1.20

//MatchFunc tells whether a host atom and a molecule atom that are closer than
//the merge tolerance are duplicates of each other.
type MatchFunc func(host, mol *Atom) bool

//SameSymbol matches atoms of the same element.
func SameSymbol(host, mol *Atom) bool {
	return host.Symbol == mol.Symbol
}

//AnySymbol matches any two atoms, regardless of their elements.
func AnySymbol(host, mol *Atom) bool {
	return true
}

//Merger puts a molecule into a host structure, dropping the molecule
//atoms that duplicate a host atom.
type Merger struct {
	Tol   float64   //atoms closer than this are duplicates
	Match MatchFunc //nil means SameSymbol
}

//NewMerger returns a merger with the default tolerance and symbol matching.
func NewMerger() *Merger {
	return &Merger{Tol: DefaultTolSame, Match: SameSymbol}
}

//MergeResult is the merged structure and the indexes, in the molecule,
//of the atoms that were dropped as duplicates. The first NHost atoms
//of the structure come from the host.
type MergeResult struct {
	*Structure
	NHost   int
	Dropped []int
}

//Merge returns a new structure with all the atoms of host, followed by the atoms of mol
//that don't duplicate a host atom. mol takes the cell and periodicity of host, without any
//scaling of its coordinates, and its atoms are wrapped into the host cell. Only pairs
//made of one host atom and one molecule atom are compared, so close pairs within
//the host or within the molecule are left alone. A LatticeMismatchError is returned
//when only one of host and mol is periodic.
func (M *Merger) Merge(host, mol *Structure) (*MergeResult, error) {
	if M.Tol <= 0 {
		return nil, newStructureError("Merger.Merge", "non-positive tolerance %g", M.Tol)
	}
	if host.Periodic() != mol.Periodic() {
		err := &LatticeMismatchError{Host: host.PBC, Guest: mol.PBC}
		err.Decorate("Merger.Merge")
		return nil, err
	}
	F, err := newFrame(host.Cell, host.PBC, "Merger.Merge")
	if err != nil {
		return nil, err
	}
	match := M.Match
	if match == nil {
		match = SameSymbol
	}
	nh, nm := host.Len(), mol.Len()
	wrapped := v3.Zeros(nm)
	for k := 0; k < nm; k++ {
		w, _ := F.wrap(mol.Coord(k))
		wrapped.SetVec(k, w)
	}
	all := v3.Zeros(nh + nm)
	all.Stack(host.Coords, wrapped)
	drop := make(Mask, nm)
	if nh > 0 && nm > 0 {
		C := newCellList(F, all, M.Tol)
		for k := 0; k < nm; k++ {
			C.visit(nh+k, M.Tol, func(j int, off [3]int, d float64) {
				if drop[k] || j >= nh || d >= M.Tol {
					return
				}
				if match(host.Atoms[j], mol.Atoms[k]) {
					drop[k] = true
				}
			})
		}
	}
	keep := drop.Not().Indexes()
	atoms := make([]*Atom, 0, nh+len(keep))
	for _, v := range host.Atoms {
		atoms = append(atoms, v.Copy())
	}
	list := make([]int, 0, nh+len(keep))
	for i := 0; i < nh; i++ {
		list = append(list, i)
	}
	for _, k := range keep {
		atoms = append(atoms, mol.Atoms[k].Copy())
		list = append(list, nh+k)
	}
	coords := v3.Zeros(len(list))
	coords.SomeVecs(all, list)
	S := &Structure{Cell: host.Cell.Copy(), PBC: host.PBC, Atoms: atoms, Coords: coords}
	return &MergeResult{Structure: S, NHost: nh, Dropped: drop.Indexes()}, nil
}

//Merge merges mol into host with the default Merger.
func Merge(host, mol *Structure) (*MergeResult, error) {
	R, err := NewMerger().Merge(host, mol)
	if err != nil {
		return nil, errDecorate(err, "Merge")
	}
	return R, nil
}
