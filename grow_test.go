/*
 * grow_test.go, part of zeomerge.
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
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

//TestSafeBlocks grows two shells from a Si. The Na next to it is safe, so
//neither it nor the O behind it are selected, while the path through the C is.
func TestSafeBlocks(Te *testing.T) {
	S := scenarioSafe(Te)
	core, logs := observer.New(zap.InfoLevel)
	opts := GrowOptions{Seeds: NewElements("Si"), Safe: NewElements("Na"), Shells: 2, Logger: zap.New(core)}
	sel, rem, G, err := SelectShellRegion(S, NewGraphBuilder(DefaultScale), opts)
	if err != nil {
		Te.Fatal(err)
	}
	expected := Mask{true, false, false, true, true}
	for i, v := range expected {
		if G.Selected()[i] != v {
			Te.Errorf("Atom %d (%s): selected is %t, expected %t", i, S.Atom(i).Symbol, G.Selected()[i], v)
		}
	}
	if sel.Len() != 3 || rem.Len() != 2 {
		Te.Errorf("Expected 3 selected and 2 remaining atoms, got %d and %d", sel.Len(), rem.Len())
	}
	counts := G.Counts()
	if len(counts) != 3 || counts[0] != 1 || counts[1] != 2 || counts[2] != 3 {
		Te.Errorf("Unexpected counts per shell %v", counts)
	}
	if logs.Len() != 3 {
		Te.Errorf("Expected one log entry per round, got %d", logs.Len())
	}
}

func TestGrowMonotone(Te *testing.T) {
	S := scenarioBridged(Te)
	N := mustGraph(Te, S)
	var prev Mask
	for n := 0; n < 5; n++ {
		G, err := GrowRegion(S, N, GrowOptions{Seeds: NewElements("Si"), Safe: NewElements("H"), Shells: n})
		if err != nil {
			Te.Fatal(err)
		}
		sel := G.Selected()
		if prev != nil && !sel.Contains(prev) {
			Te.Errorf("Selection with %d shells doesn't contain the one with %d", n, n-1)
		}
		for i, s := range G.Safe {
			if s && sel[i] {
				Te.Errorf("Safe atom %d selected after %d shells", i, n)
			}
		}
		prev = sel
	}
	//4 Si, 9 O, then the C, nothing else can be reached.
	if prev.Count() != 14 {
		Te.Errorf("Expected 14 atoms selected at the end, got %d", prev.Count())
	}
}

func TestGrowZeroAndNegative(Te *testing.T) {
	S := scenarioSafe(Te)
	N := mustGraph(Te, S)
	G, err := GrowRegion(S, N, GrowOptions{Seeds: NewElements("Si", "Na"), Safe: NewElements("Na")})
	if err != nil {
		Te.Fatal(err)
	}
	if G.Selected().Count() != 1 || !G.Selected()[0] {
		Te.Errorf("With no shells only the non-safe seeds are selected, got %v", G.Selected())
	}
	_, err = GrowRegion(S, N, GrowOptions{Seeds: NewElements("Si"), Shells: -1})
	var serr *StructureError
	if !errors.As(err, &serr) {
		Te.Errorf("Expected a StructureError for negative shells, got %v", err)
	}
}

func TestGrowOneShellClamp(Te *testing.T) {
	S := scenarioSafe(Te)
	N := mustGraph(Te, S)
	safe := Mask{false, true, false, false, false}
	sel := GrowOneShell(Mask{true, true, false, false, false}, N, safe)
	if sel[1] {
		Te.Errorf("A safe atom in the input should be cleared")
	}
	if !sel[0] || !sel[3] {
		Te.Errorf("The Si and the C should be selected, got %v", sel)
	}
	//a safe atom in the input still selects its neighbors before being cleared.
	if !sel[2] {
		Te.Errorf("The O next to the Na should be selected, got %v", sel)
	}
}
