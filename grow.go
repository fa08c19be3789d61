/*
 * grow.go, part of zeomerge.
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

import "go.uber.org/zap"

//GrowOptions are the parameters for region growth.
type GrowOptions struct {
	Seeds  Elements //the region starts from these atoms
	Safe   Elements //these are never selected and don't propagate the selection
	Shells int      //rounds of expansion, 0 or more

	//Logger gets the selection count after each round, at Info level. nil means no logging.
	Logger *zap.Logger
}

//Growth is the result of a region growth. Rounds[0] is the initial
//selection and Rounds[k] the selection after k shells.
type Growth struct {
	Safe   Mask
	Rounds []Mask
}

//Selected returns the final selection.
func (G *Growth) Selected() Mask {
	return G.Rounds[len(G.Rounds)-1]
}

//Remaining returns the atoms not in the final selection.
func (G *Growth) Remaining() Mask {
	return G.Selected().Not()
}

//Counts returns the number of selected atoms after each round, starting from round 0.
func (G *Growth) Counts() []int {
	ret := make([]int, len(G.Rounds))
	for i, v := range G.Rounds {
		ret[i] = v.Count()
	}
	return ret
}

//GrowOneShell returns a new mask with the atoms in selected plus all their
//neighbors in N, except for the atoms marked in safe. safe can be nil.
func GrowOneShell(selected Mask, N Neighborer, safe Mask) Mask {
	ret := selected.Copy()
	for i, sel := range selected {
		if !sel {
			continue
		}
		for _, n := range N.Neighbors(i) {
			if safe != nil && safe[n.J] {
				continue
			}
			ret[n.J] = true
		}
	}
	//clamp, in case something put a safe atom in the input.
	for i, s := range safe {
		if s {
			ret[i] = false
		}
	}
	return ret
}

//GrowRegion selects the atoms of S with a seed element, and grows the selection
//opts.Shells times over the neighbor relation N. Atoms with a safe element are never
//selected, so they also block the growth through them.
func GrowRegion(S Atomer, N Neighborer, opts GrowOptions) (*Growth, error) {
	if opts.Shells < 0 {
		return nil, newStructureError("GrowRegion", "negative number of shells %d", opts.Shells)
	}
	if S.Len() != N.Len() {
		return nil, newStructureError("GrowRegion", "graph for %d atoms used on a structure with %d", N.Len(), S.Len())
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	safe := SymbolMask(S, opts.Safe)
	sel := SymbolMask(S, opts.Seeds)
	for i, s := range safe {
		if s {
			sel[i] = false
		}
	}
	G := &Growth{Safe: safe, Rounds: make([]Mask, 1, opts.Shells+1)}
	G.Rounds[0] = sel
	log.Info("initial seeds", zap.Int("selected", sel.Count()))
	for shell := 1; shell <= opts.Shells; shell++ {
		sel = GrowOneShell(sel, N, safe)
		G.Rounds = append(G.Rounds, sel)
		log.Info("grew shell", zap.Int("shell", shell), zap.Int("selected", sel.Count()))
	}
	return G, nil
}

//SelectShellRegion builds the neighbor graph of S with B, grows a region on it, and returns
//the selected and the remaining atoms as new structures, together with the growth record.
func SelectShellRegion(S *Structure, B *GraphBuilder, opts GrowOptions) (selected, remaining *Structure, growth *Growth, err error) {
	N, err := B.Build(S)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "SelectShellRegion")
	}
	growth, err = GrowRegion(S, N, opts)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "SelectShellRegion")
	}
	return S.Select(growth.Selected()), S.Select(growth.Remaining()), growth, nil
}
