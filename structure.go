/*
 * structure.go, part of zeomerge.
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
	"fmt"

	v3 "github.com/rmera/zeomerge/v3"
)

//Atom contains the atom information except for the coordinates,
//which are in the Coords matrix of the Structure owning the atom.
type Atom struct {
	Symbol string
	Covrad float64 //covalent radius, 0 if unknown
}

//NewAtom returns an atom with the given symbol and its covalent radius
//from the default table.
func NewAtom(symbol string) *Atom {
	return &Atom{Symbol: symbol, Covrad: symbolCovrad[symbol]}
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

//Structure is a periodic arrangement of atoms. The order of the atoms
//is the insertion order. Atom i has its coordinates in the row i of Coords.
type Structure struct {
	Cell   *Lattice
	PBC    [3]bool
	Atoms  []*Atom
	Coords *v3.Matrix
}

//NewStructure returns a structure with the given data. It returns an error if
//the number of atoms and coordinates don't match. A nil cell is taken as
//a zero cell, and nil coordinates are accepted only for an empty structure.
func NewStructure(cell *Lattice, pbc [3]bool, atoms []*Atom, coords *v3.Matrix) (*Structure, error) {
	if coords == nil {
		coords = v3.Zeros(0)
	}
	if len(atoms) != coords.NVecs() {
		return nil, newStructureError("NewStructure", "%d atoms but %d coordinates", len(atoms), coords.NVecs())
	}
	for i, v := range atoms {
		if v == nil {
			return nil, newStructureError("NewStructure", "atom %d is nil", i)
		}
	}
	if cell == nil {
		cell = new(Lattice)
	}
	return &Structure{Cell: cell, PBC: pbc, Atoms: atoms, Coords: coords}, nil
}

//FromSymbols builds a structure from symbols and their positions, one
//after the other. Mostly a convenience for tests and small programs.
func FromSymbols(cell *Lattice, pbc [3]bool, symbols []string, positions [][3]float64) (*Structure, error) {
	if len(symbols) != len(positions) {
		return nil, newStructureError("FromSymbols", "%d symbols but %d positions", len(symbols), len(positions))
	}
	atoms := make([]*Atom, len(symbols))
	coords := v3.Zeros(len(symbols))
	for i, s := range symbols {
		atoms[i] = NewAtom(s)
		coords.SetVec(i, positions[i])
	}
	return NewStructure(cell, pbc, atoms, coords)
}

//Atom returns the Atom corresponding to the index i. Panics if
//out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= S.Len() || i < 0 {
		panic(fmt.Sprintf("Structure: Requested Atom %d out of bounds", i))
	}
	return S.Atoms[i]
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

//Coord returns the cartesian coordinates of atom i.
func (S *Structure) Coord(i int) [3]float64 {
	return S.Coords.Vec(i)
}

//Symbols returns the element symbols of all atoms, in order.
func (S *Structure) Symbols() []string {
	ret := make([]string, S.Len())
	for i, v := range S.Atoms {
		ret[i] = v.Symbol
	}
	return ret
}

//Periodic returns true if any axis is periodic.
func (S *Structure) Periodic() bool {
	return S.PBC[0] || S.PBC[1] || S.PBC[2]
}

//Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	atoms := make([]*Atom, S.Len())
	for i, v := range S.Atoms {
		atoms[i] = v.Copy()
	}
	return &Structure{Cell: S.Cell.Copy(), PBC: S.PBC, Atoms: atoms, Coords: v3.Clone(S.Coords)}
}

//SomeAtoms returns a new structure with copies of the atoms with indexes
//in list, in the order of list. It shares the cell and periodicity of S.
func (S *Structure) SomeAtoms(list []int) (*Structure, error) {
	atoms := make([]*Atom, len(list))
	for k, j := range list {
		if j >= S.Len() || j < 0 {
			return nil, newStructureError("SomeAtoms", "Atom requested (Number: %d, value: %d) out of range", k, j)
		}
		atoms[k] = S.Atoms[j].Copy()
	}
	coords := v3.Zeros(len(list))
	coords.SomeVecs(S.Coords, list)
	return &Structure{Cell: S.Cell.Copy(), PBC: S.PBC, Atoms: atoms, Coords: coords}, nil
}

//Select returns a new structure with the atoms for which mask is true.
//Panics if mask doesn't have one element per atom.
func (S *Structure) Select(mask Mask) *Structure {
	if len(mask) != S.Len() {
		panic(fmt.Sprintf("Structure.Select: mask of length %d for %d atoms", len(mask), S.Len()))
	}
	ret, _ := S.SomeAtoms(mask.Indexes()) //can't fail, indexes come from the mask.
	return ret
}

//Without returns a new structure with all the atoms of S except those whose
//element is in elems. It is used, for instance, to strip hydrogens from a host.
func (S *Structure) Without(elems Elements) *Structure {
	return S.Select(SymbolMask(S, elems).Not())
}

//Formula returns the number of atoms of each element.
func (S *Structure) Formula() map[string]int {
	ret := make(map[string]int)
	for _, v := range S.Atoms {
		ret[v.Symbol]++
	}
	return ret
}
