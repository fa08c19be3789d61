/*
 * classify_test.go, part of zeomerge.
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
	"testing"
)

//TestExtractFar extracts a molecule that doesn't touch the framework.
func TestExtractFar(Te *testing.T) {
	S := scenarioFar(Te)
	mol, C, err := ExtractMolecule(S, NewGraphBuilder(DefaultScale), ClassifyOptions{})
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 4 {
		Te.Fatalf("Expected 4 atoms in the molecule, got %d", mol.Len())
	}
	f := mol.Formula()
	if f["C"] != 1 || f["H"] != 3 {
		Te.Errorf("Wrong molecule %v", f)
	}
	if C.Skeleton.Count() != 13 || C.Seed.Count() != 4 || C.Protected.Count() != 1 {
		Te.Errorf("Wrong intermediate masks: %d skeleton, %d seeds, %d protected", C.Skeleton.Count(), C.Seed.Count(), C.Protected.Count())
	}
	if mol.Cell.Vectors() != S.Cell.Vectors() || mol.PBC != S.PBC {
		Te.Errorf("The molecule should keep the cell of the original structure")
	}
}

//TestExtractBridged extracts a molecule bonded to a terminal O of the framework.
//The O is skeleton, but it is kept, as it is bonded to the C.
func TestExtractBridged(Te *testing.T) {
	S := scenarioBridged(Te)
	mol, C, err := ExtractMolecule(S, NewGraphBuilder(DefaultScale), ClassifyOptions{})
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 5 {
		Te.Fatalf("Expected 5 atoms in the molecule, got %d", mol.Len())
	}
	const bridge = 12
	if !C.Skeleton[bridge] || !C.Keep[bridge] {
		Te.Errorf("The bridging O should be both skeleton and kept")
	}
	f := mol.Formula()
	if f["C"] != 1 || f["H"] != 3 || f["O"] != 1 {
		Te.Errorf("Wrong molecule %v", f)
	}
}

//TestProtectedKept checks that protected atoms and their neighbors
//are always kept, whatever the seeds.
func TestProtectedKept(Te *testing.T) {
	S := scenarioBridged(Te)
	G := mustGraph(Te, S)
	for _, seeds := range []Elements{NewElements("Si"), NewElements("Si", "O"), NewElements("Si", "O", "H", "C")} {
		C, err := Classify(S, G, ClassifyOptions{Seeds: seeds})
		if err != nil {
			Te.Fatal(err)
		}
		for i, p := range C.Protected {
			if !p {
				continue
			}
			if !C.Keep[i] {
				Te.Errorf("Seeds %s: protected atom %d not kept", seeds, i)
			}
			for _, n := range G.Neighbors(i) {
				if !C.Keep[n.J] {
					Te.Errorf("Seeds %s: neighbor %d of protected atom %d not kept", seeds, n.J, i)
				}
			}
		}
	}
}

//TestSeedMonotone checks that the seeds are always in the skeleton, and
//that more seeds never give a smaller skeleton.
func TestSeedMonotone(Te *testing.T) {
	for _, S := range []*Structure{scenarioFar(Te), scenarioBridged(Te)} {
		G := mustGraph(Te, S)
		sets := []Elements{NewElements(), NewElements("Si"), NewElements("Si", "O"), NewElements("Si", "O", "H")}
		var prev *Classification
		for _, seeds := range sets {
			C, err := Classify(S, G, ClassifyOptions{Seeds: seeds})
			if err != nil {
				Te.Fatal(err)
			}
			if !C.Skeleton.Contains(C.Seed) {
				Te.Errorf("Seeds %s: some seed is not skeleton", seeds)
			}
			if prev != nil && !C.Skeleton.Contains(prev.Skeleton) {
				Te.Errorf("Skeleton with seeds %s doesn't contain the previous one", seeds)
			}
			prev = C
		}
	}
}

//A seed that is also protected is skeleton, and still kept.
func TestProtectedSeed(Te *testing.T) {
	S := scenarioBridged(Te)
	G := mustGraph(Te, S)
	C, err := Classify(S, G, ClassifyOptions{Seeds: NewElements("Si", "C")})
	if err != nil {
		Te.Fatal(err)
	}
	if !C.Skeleton.Contains(C.Seed) {
		Te.Error("Some seed is not skeleton")
	}
	carbons := SymbolMask(S, NewElements("C"))
	if carbons.Count() == 0 {
		Te.Fatal("The test structure has no C")
	}
	if !C.Skeleton.Contains(carbons) {
		Te.Error("C seeds should be skeleton")
	}
	if !C.Keep.Contains(carbons) {
		Te.Error("Protected C atoms should be kept even as seeds")
	}
}

func TestNoSeeds(Te *testing.T) {
	S := scenarioFar(Te)
	_, C, err := ExtractMolecule(S, NewGraphBuilder(DefaultScale), ClassifyOptions{Seeds: NewElements("Al")})
	if err != nil {
		Te.Fatal(err)
	}
	if C.Keep.Count() != S.Len() {
		Te.Errorf("Without seeds everything should be kept, got %d of %d", C.Keep.Count(), S.Len())
	}
}

func TestCustomSteps(Te *testing.T) {
	S := scenarioBridged(Te)
	G := mustGraph(Te, S)
	//without the forcing step the bridging O goes with the skeleton.
	steps := []MaskStep{SeedStep(DefaultSeeds()), ProtectStep(DefaultProtected()), ExpandStep()}
	C, err := RunSteps(S, G, steps)
	if err != nil {
		Te.Fatal(err)
	}
	if C.Keep != nil {
		Te.Errorf("Keep should not be set without the last step")
	}
	if C.Skeleton.Count() != 13 {
		Te.Errorf("Expected 13 skeleton atoms, got %d", C.Skeleton.Count())
	}
	//a graph for another structure.
	if _, err := RunSteps(scenarioSafe(Te), G, steps); err == nil {
		Te.Errorf("Expected an error for a graph of the wrong size")
	}
}
