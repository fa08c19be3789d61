/*
 * gocoords.go, part of zeomerge.
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

package v3

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	if vecs == 0 {
		return &Matrix{}
	}
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//Clone returns a copy of A that doesn't share data with it.
func Clone(A *Matrix) *Matrix {
	F := Zeros(A.NVecs())
	if F.Dense != nil {
		F.Copy(A.Dense)
	}
	return F
}

//SomeVecs puts in F the vectors of A with indexes in clist,
//in the same order as clist. F must have len(clist) vectors.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar || val < 0 {
			panic(ErrIndexOutOfRange)
		}
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	if r == 0 {
		return "[ ]"
	}
	v := make([]string, 0, r)
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf("%8.3f %8.3f %8.3f", row[0], row[1], row[2]))
	}
	return "\n[" + strings.Join(v, "\n ") + " ]"
}
