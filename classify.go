/*
 * classify.go, part of zeomerge.
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

//DefaultSeeds returns the framework-forming elements used as seeds
//when separating a host from a guest molecule.
func DefaultSeeds() Elements {
	return NewElements("Si", "Al", "P", "Ge", "Mg", "Zn")
}

//DefaultProtected returns the elements that expansion never adds to the skeleton.
func DefaultProtected() Elements {
	return NewElements("C")
}

//ClassifyOptions are the element roles for skeleton/molecule separation.
//nil sets mean the defaults.
type ClassifyOptions struct {
	Seeds     Elements
	Protected Elements
}

func (o ClassifyOptions) seeds() Elements {
	if o.Seeds == nil {
		return DefaultSeeds()
	}
	return o.Seeds
}

func (o ClassifyOptions) protected() Elements {
	if o.Protected == nil {
		return DefaultProtected()
	}
	return o.Protected
}

//Classification holds every mask computed while separating a skeleton
//from a molecule, so each step can be inspected. Keep is the molecule.
type Classification struct {
	Seed      Mask
	Protected Mask
	Skeleton  Mask
	Keep      Mask
}

//MaskStep is one step of a classification. It reads the masks filled
//by previous steps and fills its own.
type MaskStep struct {
	Name string
	Run  func(S Atomer, G Neighborer, C *Classification)
}

//SeedStep marks the atoms whose element is in seeds.
func SeedStep(seeds Elements) MaskStep {
	return MaskStep{Name: "seed", Run: func(S Atomer, G Neighborer, C *Classification) {
		C.Seed = SymbolMask(S, seeds)
	}}
}

//ProtectStep marks the atoms whose element is in protected.
func ProtectStep(protected Elements) MaskStep {
	return MaskStep{Name: "protect", Run: func(S Atomer, G Neighborer, C *Classification) {
		C.Protected = SymbolMask(S, protected)
	}}
}

//ExpandStep starts the skeleton from the seeds and adds every non-protected
//direct neighbor of a seed. Exactly one shell.
func ExpandStep() MaskStep {
	return MaskStep{Name: "expand", Run: func(S Atomer, G Neighborer, C *Classification) {
		C.Skeleton = C.Seed.Copy()
		for i, seed := range C.Seed {
			if !seed {
				continue
			}
			for _, n := range G.Neighbors(i) {
				if !C.Protected[n.J] {
					C.Skeleton[n.J] = true
				}
			}
		}
	}}
}

//ForceProtectedStep keeps everything that is not skeleton, and then, regardless
//of the skeleton, every protected atom and every direct neighbor of one.
func ForceProtectedStep() MaskStep {
	return MaskStep{Name: "force-protected", Run: func(S Atomer, G Neighborer, C *Classification) {
		C.Keep = C.Skeleton.Not()
		for i, p := range C.Protected {
			if !p {
				continue
			}
			C.Keep[i] = true
			for _, n := range G.Neighbors(i) {
				C.Keep[n.J] = true
			}
		}
	}}
}

//ExtractionSteps returns the ordered steps for molecule extraction:
//seed, protect, expand and force-protected.
func ExtractionSteps(opts ClassifyOptions) []MaskStep {
	return []MaskStep{SeedStep(opts.seeds()), ProtectStep(opts.protected()), ExpandStep(), ForceProtectedStep()}
}

//RunSteps runs steps, in order, on S with the neighbor relation G.
func RunSteps(S Atomer, G Neighborer, steps []MaskStep) (*Classification, error) {
	if S.Len() != G.Len() {
		return nil, newStructureError("RunSteps", "graph for %d atoms used on a structure with %d", G.Len(), S.Len())
	}
	C := new(Classification)
	for _, st := range steps {
		st.Run(S, G, C)
	}
	return C, nil
}

//Classify separates the atoms of S into skeleton and molecule, using the
//neighbor relation G built for S.
func Classify(S Atomer, G Neighborer, opts ClassifyOptions) (*Classification, error) {
	C, err := RunSteps(S, G, ExtractionSteps(opts))
	if err != nil {
		return nil, errDecorate(err, "Classify")
	}
	return C, nil
}

//ExtractMolecule recovers the guest molecule from S, which contains a host framework
//with the molecule inside. The framework atoms are discarded. B builds the neighbor graph.
//The classification is returned too, for inspection.
func ExtractMolecule(S *Structure, B *GraphBuilder, opts ClassifyOptions) (*Structure, *Classification, error) {
	G, err := B.Build(S)
	if err != nil {
		return nil, nil, errDecorate(err, "ExtractMolecule")
	}
	C, err := Classify(S, G, opts)
	if err != nil {
		return nil, nil, errDecorate(err, "ExtractMolecule")
	}
	return S.Select(C.Keep), C, nil
}
