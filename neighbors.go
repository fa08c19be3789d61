/*
 * neighbors.go, part of zeomerge.
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
	"sort"
)

//DefaultScale is the default factor applied to the sum of the covalent radii
//of two atoms to decide whether they are bonded.
const DefaultScale = 1.05

//tieTol lets pairs exactly at the cutoff through despite rounding.
const tieTol = 1e-10

//Neighbor is an atom bonded to another one. The neighbor is the image
//of atom J displaced by Offset lattice vectors.
type Neighbor struct {
	J      int
	Offset [3]int
}

//NeighborGraph is the undirected bonding relation of a Structure.
//It doesn't own the atoms, only refers to them by index, and it is never
//modified after it is built: if the structure or the parameters change, build a new one.
type NeighborGraph struct {
	adj   [][]Neighbor
	scale float64
	skin  float64
}

//Neighbors returns the neighbors of atom i. The slice must not be modified.
func (G *NeighborGraph) Neighbors(i int) []Neighbor {
	return G.adj[i]
}

//Len returns the number of atoms in the graph.
func (G *NeighborGraph) Len() int {
	return len(G.adj)
}

//Degree returns the number of neighbors of atom i.
func (G *NeighborGraph) Degree(i int) int {
	return len(G.adj[i])
}

//Scale returns the factor the graph was built with.
func (G *NeighborGraph) Scale() float64 { return G.scale }

//Skin returns the additive tolerance the graph was built with.
func (G *NeighborGraph) Skin() float64 { return G.skin }

//Bonded returns true if some image of j is a neighbor of i.
func (G *NeighborGraph) Bonded(i, j int) bool {
	for _, v := range G.adj[i] {
		if v.J == j {
			return true
		}
	}
	return false
}

//NBonds returns the number of bonds, each counted once.
func (G *NeighborGraph) NBonds() int {
	n := 0
	for _, v := range G.adj {
		n += len(v)
	}
	return n / 2
}

//GraphBuilder builds NeighborGraphs. Two atoms i and j are bonded if
//their distance is at most Scale*(R_i+R_j)+Skin.
type GraphBuilder struct {
	//Radii is the bonding radius table. If nil, the Covrad of each atom is used.
	Radii Radii
	//Scale multiplies the sum of radii, it must be larger than 1.
	Scale float64
	//Skin is added to every cutoff. ASE neighbor lists use 0.3 by default.
	Skin float64
}

//NewGraphBuilder returns a builder with the default covalent radii and the given scale.
func NewGraphBuilder(scale float64) *GraphBuilder {
	return &GraphBuilder{Radii: DefaultRadii(), Scale: scale}
}

//radii returns the bonding radius of each atom in S.
func (B *GraphBuilder) radii(S Atomer) ([]float64, error) {
	ret := make([]float64, S.Len())
	for i := range ret {
		at := S.Atom(i)
		if B.Radii == nil {
			if at.Covrad <= 0 {
				return nil, &LookupError{Symbol: at.Symbol, Index: i}
			}
			ret[i] = at.Covrad
			continue
		}
		r, ok := B.Radii[at.Symbol]
		if !ok {
			return nil, &LookupError{Symbol: at.Symbol, Index: i}
		}
		ret[i] = r
	}
	return ret, nil
}

//Build returns the neighbor graph of S. Periodic images are considered along
//the periodic axes of S. It uses a cell list, so the cost grows linearly with
//the number of atoms for structures of a fixed density.
func (B *GraphBuilder) Build(S *Structure) (*NeighborGraph, error) {
	if B.Scale <= 1.0 {
		return nil, newStructureError("GraphBuilder.Build", "bonding scale must be larger than 1, not %g", B.Scale)
	}
	if B.Skin < 0 {
		return nil, newStructureError("GraphBuilder.Build", "negative skin %g", B.Skin)
	}
	rad, err := B.radii(S)
	if err != nil {
		return nil, errDecorate(err, "GraphBuilder.Build")
	}
	F, err := newFrame(S.Cell, S.PBC, "GraphBuilder.Build")
	if err != nil {
		return nil, err
	}
	G := &NeighborGraph{adj: make([][]Neighbor, S.Len()), scale: B.Scale, skin: B.Skin}
	if S.Len() == 0 {
		return G, nil
	}
	maxr := 0.0
	for _, r := range rad {
		if r > maxr {
			maxr = r
		}
	}
	maxcut := B.Scale*2*maxr + B.Skin
	C := newCellList(F, S.Coords, maxcut+tieTol)
	for i := range G.adj {
		C.visit(i, maxcut+tieTol, func(j int, off [3]int, d float64) {
			if d <= B.Scale*(rad[i]+rad[j])+B.Skin+tieTol {
				G.adj[i] = append(G.adj[i], Neighbor{J: j, Offset: off})
			}
		})
		sortNeighbors(G.adj[i])
	}
	return G, nil
}

//BuildNeighborGraph is a shortcut for building a graph with the given radius table and scale, and no skin.
func BuildNeighborGraph(S *Structure, radii Radii, scale float64) (*NeighborGraph, error) {
	B := &GraphBuilder{Radii: radii, Scale: scale}
	return B.Build(S)
}

func sortNeighbors(n []Neighbor) {
	sort.Slice(n, func(a, b int) bool {
		if n[a].J != n[b].J {
			return n[a].J < n[b].J
		}
		for k := 0; k < 3; k++ {
			if n[a].Offset[k] != n[b].Offset[k] {
				return n[a].Offset[k] < n[b].Offset[k]
			}
		}
		return false
	})
}
