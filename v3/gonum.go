/*
 * gonum.go, part of zeomerge.
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

//gonum.go contains what is needed for handling the gonum mat types.
//All the *Vec functions operate on row vectors, i.e. the cartesian
//coordinates of one point.

package v3

import "gonum.org/v1/gonum/mat"

//Matrix is a set of vectors in 3D space, backed by a gonum Dense.
//A Matrix with zero vectors has a nil Dense, since gonum
//does not allow zero-sized matrices. Use NVecs instead of Dims
//when the matrix could be empty.
type Matrix struct {
	*mat.Dense
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Len is the same as NVecs
func (F *Matrix) Len() int {
	return F.NVecs()
}

//Vec returns a copy of the vector i as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	row := F.RawRowView(i)
	return [3]float64{row[0], row[1], row[2]}
}

//SetVec sets the vector i of F to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	if i >= F.NVecs() || i < 0 {
		panic(ErrIndexOutOfRange)
	}
	copy(F.RawRowView(i), v[:])
}

//Stack puts A stacked over B in F. F must have exactly
//as many vectors as A and B together.
func (F *Matrix) Stack(A, B *Matrix) {
	ar := A.NVecs()
	br := B.NVecs()
	if F.NVecs() != ar+br {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		copy(F.RawRowView(i), A.RawRowView(i))
	}
	for i := 0; i < br; i++ {
		copy(F.RawRowView(ar+i), B.RawRowView(i))
	}
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("zeomerge/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("zeomerge/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("zeomerge/v3: index out of range")
)
