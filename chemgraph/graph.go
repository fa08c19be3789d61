/*
 * graph.go, part of zeomerge.
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

//Package chemgraph exposes zeomerge neighbor graphs as gonum graphs.
package chemgraph

import (
	"fmt"
	"sort"

	"github.com/rmera/zeomerge"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Atom is a graph node. Its ID is the index of the atom in the structure.
type Atom struct {
	*zeomerge.Atom
	Index int
}

func (A *Atom) ID() int64 {
	return int64(A.Index)
}

func (A *Atom) String() string {
	return fmt.Sprintf("%s%d", A.Symbol, A.Index)
}

//Topology is an undirected gonum graph of the atoms of a structure.
type Topology struct {
	*simple.UndirectedGraph
}

//Atom returns the node for the atom with index i, or nil if it is not in the graph.
func (T *Topology) Atom(i int) *Atom {
	n := T.Node(int64(i))
	if n == nil {
		return nil
	}
	return n.(*Atom)
}

//Undirected returns a gonum graph with one node per atom in S and
//one edge for each pair of atoms bonded in N. Periodic images are collapsed,
//so two atoms bonded through several images share one edge, and bonds
//between an atom and its own images are not represented.
func Undirected(S zeomerge.Atomer, N zeomerge.Neighborer) *Topology {
	g := simple.NewUndirectedGraph()
	for i := 0; i < S.Len(); i++ {
		g.AddNode(&Atom{Atom: S.Atom(i), Index: i})
	}
	addEdges(g, N, nil)
	return &Topology{g}
}

//adds an edge for every bond between nodes already in g. Only atoms in mask
//are considered, unless mask is nil.
func addEdges(g *simple.UndirectedGraph, N zeomerge.Neighborer, mask zeomerge.Mask) {
	for i := 0; i < N.Len(); i++ {
		if mask != nil && !mask[i] {
			continue
		}
		for _, n := range N.Neighbors(i) {
			if n.J <= i || (mask != nil && !mask[n.J]) {
				continue
			}
			if g.HasEdgeBetween(int64(i), int64(n.J)) {
				continue
			}
			g.SetEdge(simple.Edge{F: g.Node(int64(i)), T: g.Node(int64(n.J))})
		}
	}
}

//Fragments returns the connected components of the subgraph of N with the atoms
//in mask (all the atoms, if mask is nil). Each fragment is a sorted slice of atom
//indexes, and fragments are sorted by their lowest index.
func Fragments(N zeomerge.Neighborer, mask zeomerge.Mask) [][]int {
	g := simple.NewUndirectedGraph()
	for i := 0; i < N.Len(); i++ {
		if mask == nil || mask[i] {
			g.AddNode(simple.Node(i))
		}
	}
	addEdges(g, N, mask)
	comps := topo.ConnectedComponents(g)
	ret := make([][]int, 0, len(comps))
	for _, c := range comps {
		ret = append(ret, nodeIndexes(c))
	}
	sort.Slice(ret, func(a, b int) bool { return ret[a][0] < ret[b][0] })
	return ret
}

func nodeIndexes(nodes []graph.Node) []int {
	ret := make([]int, len(nodes))
	for i, v := range nodes {
		ret[i] = int(v.ID())
	}
	sort.Ints(ret)
	return ret
}
