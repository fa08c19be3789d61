package zeomerge

import (
	"testing"
)

var allPBC = [3]bool{true, true, true}

func cubic(a float64) *Lattice {
	return NewLattice([3]float64{a, 0, 0}, [3]float64{0, a, 0}, [3]float64{0, 0, a})
}

func mustStructure(Te *testing.T, cell *Lattice, pbc [3]bool, symbols []string, pos [][3]float64) *Structure {
	Te.Helper()
	S, err := FromSymbols(cell, pbc, symbols, pos)
	if err != nil {
		Te.Fatal(err)
	}
	return S
}

//framework returns a chain of 4 Si atoms bridged by O, with some
//terminal O, and the given molecule atoms at the end.
func framework(Te *testing.T, molsym []string, molpos [][3]float64) *Structure {
	symbols := []string{"Si", "Si", "Si", "Si", "O", "O", "O", "O", "O", "O", "O", "O", "O"}
	pos := [][3]float64{
		{0, 0, 0}, {3.2, 0, 0}, {6.4, 0, 0}, {9.6, 0, 0},
		{1.6, 0, 0}, {4.8, 0, 0}, {8.0, 0, 0},
		{0, 1.6, 0}, {3.2, 1.6, 0}, {6.4, 1.6, 0},
		{0, -1.6, 0}, {3.2, -1.6, 0}, {9.6, -1.6, 0},
	}
	symbols = append(symbols, molsym...)
	pos = append(pos, molpos...)
	return mustStructure(Te, cubic(30), allPBC, symbols, pos)
}

//methane-like fragment far from the framework.
func scenarioFar(Te *testing.T) *Structure {
	return framework(Te, []string{"C", "H", "H", "H"}, [][3]float64{{0, 0, 10}, {1.09, 0, 10}, {-1.09, 0, 10}, {0, 1.09, 10}})
}

//the fragment's C is bonded to a terminal O of the framework.
func scenarioBridged(Te *testing.T) *Structure {
	return framework(Te, []string{"C", "H", "H", "H"}, [][3]float64{{9.6, -3.0, 0}, {10.69, -3.0, 0}, {8.51, -3.0, 0}, {9.6, -4.09, 0}})
}

//the Na is bonded to the Si and to an O, the C is bonded to the Si and to another O.
func scenarioSafe(Te *testing.T) *Structure {
	return mustStructure(Te, cubic(30), allPBC,
		[]string{"Si", "Na", "O", "C", "O"},
		[][3]float64{{0, 0, 0}, {2.6, 0, 0}, {4.8, 0, 0}, {0, -1.9, 0}, {0, -3.3, 0}})
}

//a 5x4 grid of alternating Si and O with a spacing of 3 A, in a
//15x12x10 periodic cell.
func gridHost(Te *testing.T) *Structure {
	var symbols []string
	var pos [][3]float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			s := "O"
			if (i+j)%2 == 0 {
				s = "Si"
			}
			symbols = append(symbols, s)
			pos = append(pos, [3]float64{3 * float64(i), 3 * float64(j), 0})
		}
	}
	cell := NewLattice([3]float64{15, 0, 0}, [3]float64{0, 12, 0}, [3]float64{0, 0, 10})
	return mustStructure(Te, cell, allPBC, symbols, pos)
}

func mustGraph(Te *testing.T, S *Structure) *NeighborGraph {
	Te.Helper()
	G, err := NewGraphBuilder(DefaultScale).Build(S)
	if err != nil {
		Te.Fatal(err)
	}
	return G
}
