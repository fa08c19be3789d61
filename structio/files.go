/*
 * files.go, part of zeomerge.
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

//Package structio reads and writes periodic structures as extended XYZ and P1 CIF
//files. Files ending in .gz, .zst or .zz are transparently compressed with gzip, zstd
//or raw deflate.
package structio

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/rmera/zeomerge"
)

//Format is a structure file format.
type Format string

const (
	XYZ Format = "xyz"
	CIF Format = "cif"
)

//FormatOf returns the format of the file name, given by its extension
//before any compression suffix.
func FormatOf(name string) (Format, error) {
	_, base := SplitCompression(name)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".xyz", ".extxyz":
		return XYZ, nil
	case ".cif":
		return CIF, nil
	}
	return "", newError("unknown file extension", name, "structure", "FormatOf")
}

//Read reads a structure in the format f from r.
func Read(r io.Reader, f Format) (*zeomerge.Structure, error) {
	switch f {
	case XYZ:
		return ReadXYZ(r)
	case CIF:
		return ReadCIF(r)
	}
	return nil, newError("unknown format "+string(f), "", "structure", "Read")
}

//ReadFile reads the structure in the file name. The format and the
//compression are deduced from the name.
func ReadFile(name string) (*zeomerge.Structure, error) {
	f, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	in, err := openFile(name)
	if err != nil {
		return nil, newError(err.Error(), name, string(f), "ReadFile")
	}
	defer in.Close()
	S, err := Read(in, f)
	if err != nil {
		return nil, setFile(err, name, "ReadFile")
	}
	return S, nil
}

//Write writes S in the format f to w.
func Write(w io.Writer, S *zeomerge.Structure, f Format, title string) error {
	switch f {
	case XYZ:
		return WriteXYZ(w, S)
	case CIF:
		return WriteCIF(w, S, title)
	}
	return newError("unknown format "+string(f), "", "structure", "Write")
}

//WriteFile writes S to the file name, with the format and compression
//deduced from the name. The file is replaced only if the whole structure
//could be written.
func WriteFile(name string, S *zeomerge.Structure) error {
	f, err := FormatOf(name)
	if err != nil {
		return err
	}
	_, base := SplitCompression(filepath.Base(name))
	title := strings.TrimSuffix(base, filepath.Ext(base))
	err = atomicWrite(name, func(w io.Writer) error { return Write(w, S, f, title) })
	if err != nil {
		var e zeomerge.Error
		if errors.As(err, &e) {
			return setFile(err, name, "WriteFile")
		}
		return newError(err.Error(), name, string(f), "WriteFile")
	}
	return nil
}
