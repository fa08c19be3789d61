/*
 * interfaces.go, part of zeomerge.
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

// Atomer is the basic interface for anything holding an ordered set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i.
	//Should panic if out of range.
	Atom(i int) *Atom

	Len() int
}

// Neighborer gives the neighbors of an atom. NeighborGraph implements it,
// and the classification steps only need this.
type Neighborer interface {
	Neighbors(i int) []Neighbor
	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it just returns the current value.
	//The decoration slice contains a list of functions in the calling stack, plus, for each function any relevant information, or nothing, in the format "FunctionName: Extra info"
}

// CriticalError is an Error that can tell whether the whole operation that
// produced it has to be abandoned.
type CriticalError interface {
	Error
	Critical() bool
}
