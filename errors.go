/*
 * errors.go, part of zeomerge.
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
	"fmt"
	"strings"
)

//deco is embedded in all the error types of the package and
//keeps the list of functions the error went through.
type deco struct {
	funcs []string
}

//Decorate adds dec to the decoration slice of the error and returns the slice.
//An empty string just returns the current slice.
func (d *deco) Decorate(dec string) []string {
	if dec != "" {
		d.funcs = append(d.funcs, dec)
	}
	return d.funcs
}

func (d *deco) trace() string {
	if len(d.funcs) == 0 {
		return ""
	}
	return " [" + strings.Join(d.funcs, " <- ") + "]"
}

//StructureError is returned for malformed or degenerate structures, such as
//a singular cell, and for invalid parameters given to work on a structure.
//It is fatal for the structure being processed.
type StructureError struct {
	deco
	message string
}

func (err *StructureError) Error() string {
	return fmt.Sprintf("structure error: %s%s", err.message, err.trace())
}

//Critical returns true, a structure error always aborts the structure.
func (err *StructureError) Critical() bool { return true }

func newStructureError(caller, format string, args ...interface{}) *StructureError {
	err := &StructureError{message: fmt.Sprintf(format, args...)}
	err.Decorate(caller)
	return err
}

//LookupError is returned when an atom's element has no entry in
//a radius table.
type LookupError struct {
	deco
	Symbol string
	Index  int //index of the first offending atom
}

func (err *LookupError) Error() string {
	return fmt.Sprintf("no bonding radius for element %q (atom %d)%s", err.Symbol, err.Index, err.trace())
}

func (err *LookupError) Critical() bool { return true }

//LatticeMismatchError is returned when two structures can't be put
//in the same periodic frame.
type LatticeMismatchError struct {
	deco
	Host, Guest [3]bool //the periodic flags of both structures
}

func (err *LatticeMismatchError) Error() string {
	return fmt.Sprintf("can't put a structure with periodicity %v in a cell with periodicity %v%s", err.Guest, err.Host, err.trace())
}

func (err *LatticeMismatchError) Critical() bool { return true }

//MissingCollaboratorError is returned when a companion structure,
//like the guest file matching a host, is absent. It is not critical:
//the caller should record it and go on with the rest of the inputs.
type MissingCollaboratorError struct {
	deco
	Name   string //what was missing, usually a file name
	Wanted string //who needed it
}

func (err *MissingCollaboratorError) Error() string {
	if err.Wanted == "" {
		return fmt.Sprintf("missing %s%s", err.Name, err.trace())
	}
	return fmt.Sprintf("missing %s, needed by %s%s", err.Name, err.Wanted, err.trace())
}

func (err *MissingCollaboratorError) Critical() bool { return false }

//NewMissingCollaboratorError returns a MissingCollaboratorError for name, which was
//needed to process wanted.
func NewMissingCollaboratorError(name, wanted string) *MissingCollaboratorError {
	return &MissingCollaboratorError{Name: name, Wanted: wanted}
}

//errDecorate decorates err with the caller's name if it implements Error,
//and returns it. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

//IsCritical returns false only for errors that report themselves as non-critical.
func IsCritical(err error) bool {
	var c CriticalError
	if errors.As(err, &c) {
		return c.Critical()
	}
	return err != nil
}
