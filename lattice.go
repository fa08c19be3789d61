/*
 * lattice.go, part of zeomerge.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	singularTol = 1e-10 //cells with |det| below this are singular
	wrapEps     = 1e-7  //see frame.wrap
)

//Lattice is a 3x3 cell. Rows are the lattice vectors a, b and c, in A.
type Lattice struct {
	v [3][3]float64
}

//NewLattice returns a lattice with the vectors a, b and c.
func NewLattice(a, b, c [3]float64) *Lattice {
	return &Lattice{v: [3][3]float64{a, b, c}}
}

//LatticeFromSlice returns a lattice from 9 numbers, a vector after the other.
//Panics if v doesn't have 9 elements.
func LatticeFromSlice(v []float64) *Lattice {
	if len(v) != 9 {
		panic("LatticeFromSlice: need exactly 9 numbers")
	}
	L := new(Lattice)
	for i := 0; i < 3; i++ {
		copy(L.v[i][:], v[3*i:3*i+3])
	}
	return L
}

//LatticeFromParameters builds a cell from its lengths (A) and angles (degrees),
//with a along x and b in the xy plane, as it is customary.
func LatticeFromParameters(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, newStructureError("LatticeFromParameters", "non-positive cell length (%g %g %g)", a, b, c)
	}
	ca := cosDeg(alpha)
	cb := cosDeg(beta)
	cg := cosDeg(gamma)
	sg := math.Sin(gamma * math.Pi / 180)
	if math.Abs(sg) < singularTol {
		return nil, newStructureError("LatticeFromParameters", "gamma angle of %g degrees gives a flat cell", gamma)
	}
	cx := c * cb
	cy := c * (ca - cb*cg) / sg
	cz2 := c*c - cx*cx - cy*cy
	if cz2 <= 0 {
		return nil, newStructureError("LatticeFromParameters", "angles %g %g %g don't define a cell", alpha, beta, gamma)
	}
	return NewLattice([3]float64{a, 0, 0}, [3]float64{b * cg, b * sg, 0}, [3]float64{cx, cy, math.Sqrt(cz2)}), nil
}

//cosDeg returns the cosine of an angle in degrees, with the
//right angle giving an exact zero.
func cosDeg(angle float64) float64 {
	if angle == 90 {
		return 0
	}
	return math.Cos(angle * math.Pi / 180)
}

//Vectors returns a copy of the three lattice vectors.
func (L *Lattice) Vectors() [3][3]float64 {
	if L == nil {
		return [3][3]float64{}
	}
	return L.v
}

//Copy returns a copy of the lattice.
func (L *Lattice) Copy() *Lattice {
	if L == nil {
		return new(Lattice)
	}
	ret := *L
	return &ret
}

//Lengths returns the lengths of the three lattice vectors.
func (L *Lattice) Lengths() [3]float64 {
	var ret [3]float64
	for i := range ret {
		ret[i] = floats.Norm(L.v[i][:], 2)
	}
	return ret
}

//Angles returns the cell angles alpha, beta and gamma, in degrees.
func (L *Lattice) Angles() [3]float64 {
	angle := func(i, j int) float64 {
		n := floats.Norm(L.v[i][:], 2) * floats.Norm(L.v[j][:], 2)
		if n == 0 {
			return 90
		}
		return math.Acos(floats.Dot(L.v[i][:], L.v[j][:])/n) * 180 / math.Pi
	}
	return [3]float64{angle(1, 2), angle(0, 2), angle(0, 1)}
}

func (L *Lattice) dense() *mat.Dense {
	data := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		data = append(data, L.v[i][:]...)
	}
	return mat.NewDense(3, 3, data)
}

//Volume returns the (signed) volume of the cell.
func (L *Lattice) Volume() float64 {
	if L == nil {
		return 0
	}
	return mat.Det(L.dense())
}

//Singular returns true if the cell has no volume.
func (L *Lattice) Singular() bool {
	return math.Abs(L.Volume()) < singularTol
}

//Equal returns true if both lattices have the same vectors within tol.
func (L *Lattice) Equal(o *Lattice, tol float64) bool {
	a := L.Vectors()
	b := o.Vectors()
	for i := 0; i < 3; i++ {
		if !floats.EqualApprox(a[i][:], b[i][:], tol) {
			return false
		}
	}
	return true
}

//Fractional returns the fractional coordinates, in the cell, of the Cartesian coordinates
//in coords. It returns an error for a singular cell.
func (L *Lattice) Fractional(coords *v3.Matrix) (*v3.Matrix, error) {
	if L == nil || L.Singular() {
		return nil, newStructureError("Lattice.Fractional", "singular cell")
	}
	ret := v3.Zeros(coords.NVecs())
	if coords.NVecs() == 0 {
		return ret, nil
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(L.dense()); err != nil {
		return nil, newStructureError("Lattice.Fractional", "can't invert cell: %s", err.Error())
	}
	ret.Mul(coords.Dense, inv)
	return ret, nil
}

//Cartesian returns the Cartesian coordinates of the fractional coordinates frac.
func (L *Lattice) Cartesian(frac *v3.Matrix) *v3.Matrix {
	ret := v3.Zeros(frac.NVecs())
	if frac.NVecs() == 0 {
		return ret
	}
	ret.Mul(frac.Dense, L.Copy().dense())
	return ret
}

//frame holds what is needed to move between cartesian and fractional
//coordinates in a cell, and to wrap along its periodic axes.
type frame struct {
	cell    [3][3]float64
	inv     [3][3]float64
	spacing [3]float64 //distance between lattice planes
	pbc     [3]bool
}

//newFrame prepares a frame for the lattice L with periodicity pbc. A singular
//cell is an error only if some axis is periodic. Fully non-periodic structures
//with no usable cell get the identity, so fractional coordinates are cartesian.
func newFrame(L *Lattice, pbc [3]bool, caller string) (*frame, error) {
	periodic := pbc[0] || pbc[1] || pbc[2]
	if L == nil || L.Singular() {
		if periodic {
			return nil, newStructureError(caller, "singular cell with periodic boundary conditions %v", pbc)
		}
		L = NewLattice([3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	}
	F := &frame{cell: L.v, pbc: pbc}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(L.dense()); err != nil {
		if periodic {
			return nil, newStructureError(caller, "can't invert cell: %s", err.Error())
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			F.inv[i][j] = inv.At(i, j)
		}
	}
	for i := 0; i < 3; i++ {
		col := []float64{F.inv[0][i], F.inv[1][i], F.inv[2][i]}
		F.spacing[i] = 1 / floats.Norm(col, 2)
	}
	return F, nil
}

//frac returns the fractional coordinates of the cartesian point r.
func (F *frame) frac(r [3]float64) [3]float64 {
	var f [3]float64
	for j := 0; j < 3; j++ {
		f[j] = r[0]*F.inv[0][j] + r[1]*F.inv[1][j] + r[2]*F.inv[2][j]
	}
	return f
}

//cart returns the cartesian coordinates of the fractional point f.
func (F *frame) cart(f [3]float64) [3]float64 {
	var r [3]float64
	for j := 0; j < 3; j++ {
		r[j] = f[0]*F.cell[0][j] + f[1]*F.cell[1][j] + f[2]*F.cell[2][j]
	}
	return r
}

//shift returns the cartesian translation for the integer image offset o.
func (F *frame) shift(o [3]int) [3]float64 {
	return F.cart([3]float64{float64(o[0]), float64(o[1]), float64(o[2])})
}

//wrap brings r into the cell along the periodic axes, and returns the
//wrapped point and the image offset that was removed, so that
//r = wrapped + offset*cell. A point less than wrapEps below an upper cell
//face goes to the lower one, as ASE does it.
func (F *frame) wrap(r [3]float64) ([3]float64, [3]int) {
	f := F.frac(r)
	var off [3]int
	for i := 0; i < 3; i++ {
		if !F.pbc[i] {
			continue
		}
		n := math.Floor(f[i] + wrapEps)
		f[i] -= n
		off[i] = int(n)
	}
	return F.cart(f), off
}
