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

package structio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/zeomerge"
)

//Error is the error type for structure files. It fulfills zeomerge.Error.
type Error struct {
	message  string
	filename string //the file with problems, or an empty string if none.
	format   string
	deco     []string
	critical bool
}

func newError(message, filename, format, caller string) *Error {
	return &Error{message: message, filename: filename, format: format, deco: []string{caller}, critical: true}
}

func (err *Error) Error() string {
	var name string
	if err.filename != "" {
		name = " " + err.filename
	}
	return fmt.Sprintf("%s file%s error: %s [%s]", err.format, name, err.message, strings.Join(err.deco, " <- "))
}

//Decorate adds new information to the error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err *Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error.
func (err *Error) Format() string { return err.format }

//Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

//setFile records the file name in err, if it is one of ours, and decorates it.
func setFile(err error, filename, caller string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) && e.filename == "" {
		e.filename = filename
	}
	var d zeomerge.Error
	if errors.As(err, &d) {
		d.Decorate(caller)
	}
	return err
}
