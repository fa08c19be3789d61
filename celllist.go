/*
 * celllist.go, part of zeomerge.
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
	"math"

	v3 "github.com/rmera/zeomerge/v3"
)

const maxBinsPerAxis = 512

//cellList puts the atoms of a structure in bins of fractional space, so
//all the atoms within a cutoff of a given one can be found looking only at a few
//bins around it. Bins are at least one cutoff thick along each plane normal.
//Along periodic axes the bins cover the cell and wrap around, along the others
//they cover the span of the atoms.
type cellList struct {
	f      *frame
	coords *v3.Matrix
	nbins  [3]int
	reach  [3]int //bins to look at on each side
	lo     [3]float64
	span   [3]float64
	woff   [][3]int //r = wrapped + woff*cell
	bin    [][3]int
	bins   map[[3]int][]int
}

func newCellList(F *frame, coords *v3.Matrix, cutoff float64) *cellList {
	n := coords.NVecs()
	C := &cellList{f: F, coords: coords, woff: make([][3]int, n), bin: make([][3]int, n), bins: make(map[[3]int][]int)}
	//a little margin so rounding can't put two atoms within the cutoff
	//farther apart than the reach.
	bincut := cutoff*(1+1e-6) + 1e-9
	fr := make([][3]float64, n)
	for i := 0; i < n; i++ {
		f := F.frac(coords.Vec(i))
		for k := 0; k < 3; k++ {
			if !F.pbc[k] {
				continue
			}
			w := math.Floor(f[k])
			f[k] -= w
			if f[k] >= 1 {
				f[k] = 0
				w++
			}
			C.woff[i][k] = int(w)
		}
		fr[i] = f
	}
	for k := 0; k < 3; k++ {
		extent := F.spacing[k]
		C.span[k] = 1
		if !F.pbc[k] {
			C.lo[k], C.span[k] = fracRange(fr, k)
			extent = C.span[k] * F.spacing[k]
		}
		nb := int(extent / bincut)
		if nb < 1 {
			nb = 1
		}
		if nb > maxBinsPerAxis {
			nb = maxBinsPerAxis
		}
		C.nbins[k] = nb
		width := extent / float64(nb)
		switch {
		case width <= 0:
			C.reach[k] = 0
		default:
			C.reach[k] = int(math.Ceil(bincut / width))
		}
		//no point in going past the last bin without periodicity
		if !F.pbc[k] && C.reach[k] > nb-1 {
			C.reach[k] = nb - 1
		}
	}
	for i, f := range fr {
		var b [3]int
		for k := 0; k < 3; k++ {
			x := f[k]
			if !F.pbc[k] {
				x = 0
				if C.span[k] > 0 {
					x = (f[k] - C.lo[k]) / C.span[k]
				}
			}
			b[k] = int(x * float64(C.nbins[k]))
			if b[k] >= C.nbins[k] {
				b[k] = C.nbins[k] - 1
			}
			if b[k] < 0 {
				b[k] = 0
			}
		}
		C.bin[i] = b
		C.bins[b] = append(C.bins[b], i)
	}
	return C
}

//fracRange returns the lowest fractional coordinate along axis k, and the span.
func fracRange(fr [][3]float64, k int) (float64, float64) {
	if len(fr) == 0 {
		return 0, 0
	}
	lo, hi := fr[0][k], fr[0][k]
	for _, f := range fr[1:] {
		lo = math.Min(lo, f[k])
		hi = math.Max(hi, f[k])
	}
	return lo, hi - lo
}

//floorDiv returns a/b rounded towards minus infinity, and the non-negative remainder.
func floorDiv(a, b int) (int, int) {
	q := a / b
	r := a % b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

//visit calls fn for every atom j and image offset such that the
//image of j is within cutoff of atom i. The self pair with zero offset
//is skipped. d is the distance and off is given so that the image of j
//is at r_j + off*cell. Every (j, off) pair is visited at most once.
func (C *cellList) visit(i int, cutoff float64, fn func(j int, off [3]int, d float64)) {
	ri := C.coords.Vec(i)
	bi := C.bin[i]
	var t, sh, wb [3]int
	for dx := -C.reach[0]; dx <= C.reach[0]; dx++ {
		t[0] = bi[0] + dx
		for dy := -C.reach[1]; dy <= C.reach[1]; dy++ {
			t[1] = bi[1] + dy
			for dz := -C.reach[2]; dz <= C.reach[2]; dz++ {
				t[2] = bi[2] + dz
				ok := true
				for k := 0; k < 3; k++ {
					if C.f.pbc[k] {
						sh[k], wb[k] = floorDiv(t[k], C.nbins[k])
						continue
					}
					if t[k] < 0 || t[k] >= C.nbins[k] {
						ok = false
						break
					}
					sh[k], wb[k] = 0, t[k]
				}
				if !ok {
					continue
				}
				for _, j := range C.bins[wb] {
					var off [3]int
					for k := 0; k < 3; k++ {
						off[k] = sh[k] + C.woff[i][k] - C.woff[j][k]
					}
					if j == i && off == [3]int{} {
						continue
					}
					rj := C.coords.Vec(j)
					s := C.f.shift(off)
					ex, ey, ez := rj[0]+s[0]-ri[0], rj[1]+s[1]-ri[1], rj[2]+s[2]-ri[2]
					d := math.Sqrt(ex*ex + ey*ey + ez*ez)
					if d <= cutoff {
						fn(j, off, d)
					}
				}
			}
		}
	}
}
