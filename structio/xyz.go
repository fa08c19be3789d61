/*
 * xyz.go, part of zeomerge.
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
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/zeomerge"
	v3 "github.com/rmera/zeomerge/v3"
)

//key=value or key="value with spaces" in an extended XYZ comment line.
var xyzKeyValue = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)=("[^"]*"|\S+)`)

//ReadXYZ reads the first frame of an XYZ file from r. If the comment line has
//an extended XYZ Lattice key, the structure gets that cell, and the periodicity
//from the pbc key, which defaults to periodic along all axes. Otherwise the structure
//is not periodic and has a zero cell.
func ReadXYZ(r io.Reader) (*zeomerge.Structure, error) {
	in := bufio.NewScanner(r)
	in.Buffer(make([]byte, 64*1024), 1024*1024)
	if !in.Scan() {
		return nil, newError("empty file", "", "xyz", "ReadXYZ")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(in.Text()))
	if err != nil || natoms < 0 {
		return nil, newError(fmt.Sprintf("can't read the number of atoms from %q", in.Text()), "", "xyz", "ReadXYZ")
	}
	if !in.Scan() {
		return nil, newError("missing comment line", "", "xyz", "ReadXYZ")
	}
	cell, pbc, err := parseXYZComment(in.Text())
	if err != nil {
		return nil, err
	}
	//the count is not trusted for allocation, storage grows with the atoms read.
	var atoms []*zeomerge.Atom
	var pos [][3]float64
	for i := 0; i < natoms; i++ {
		if !in.Scan() {
			return nil, newError(fmt.Sprintf("expected %d atoms, found %d", natoms, i), "", "xyz", "ReadXYZ")
		}
		fields := strings.Fields(in.Text())
		if len(fields) < 4 {
			return nil, newError(fmt.Sprintf("malformed atom line %d: %q", i+1, in.Text()), "", "xyz", "ReadXYZ")
		}
		var r [3]float64
		for k := 0; k < 3; k++ {
			r[k], err = strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, newError(fmt.Sprintf("can't read coordinates of atom %d: %s", i+1, err), "", "xyz", "ReadXYZ")
			}
		}
		atoms = append(atoms, zeomerge.NewAtom(fields[0]))
		pos = append(pos, r)
	}
	if err := in.Err(); err != nil {
		return nil, newError(err.Error(), "", "xyz", "ReadXYZ")
	}
	coords := v3.Zeros(len(pos))
	for i, r := range pos {
		coords.SetVec(i, r)
	}
	return zeomerge.NewStructure(cell, pbc, atoms, coords)
}

func parseXYZComment(line string) (*zeomerge.Lattice, [3]bool, error) {
	var pbc [3]bool
	kv := make(map[string]string)
	for _, m := range xyzKeyValue.FindAllStringSubmatch(line, -1) {
		kv[strings.ToLower(m[1])] = strings.Trim(m[2], `"`)
	}
	lat, ok := kv["lattice"]
	if !ok {
		return nil, pbc, nil
	}
	fields := strings.Fields(lat)
	if len(fields) != 9 {
		return nil, pbc, newError(fmt.Sprintf("Lattice needs 9 numbers, got %q", lat), "", "xyz", "parseXYZComment")
	}
	v := make([]float64, 9)
	for i, f := range fields {
		var err error
		if v[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, pbc, newError(fmt.Sprintf("bad Lattice value %q", f), "", "xyz", "parseXYZComment")
		}
	}
	pbc = [3]bool{true, true, true}
	if p, ok := kv["pbc"]; ok {
		flags := strings.Fields(p)
		if len(flags) != 3 {
			return nil, pbc, newError(fmt.Sprintf("pbc needs 3 flags, got %q", p), "", "xyz", "parseXYZComment")
		}
		for i, f := range flags {
			switch strings.ToUpper(f) {
			case "T", "TRUE", "1":
				pbc[i] = true
			case "F", "FALSE", "0":
				pbc[i] = false
			default:
				return nil, pbc, newError(fmt.Sprintf("bad pbc flag %q", f), "", "xyz", "parseXYZComment")
			}
		}
	}
	return zeomerge.LatticeFromSlice(v), pbc, nil
}

func flag(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

//WriteXYZ writes S to w as extended XYZ. A structure with a zero cell and no periodicity
//gets a plain XYZ comment line.
func WriteXYZ(w io.Writer, S *zeomerge.Structure) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%d\n", S.Len())
	vecs := S.Cell.Vectors()
	if S.Periodic() || vecs != [3][3]float64{} {
		l := make([]string, 0, 9)
		for _, v := range vecs {
			for _, x := range v {
				l = append(l, strconv.FormatFloat(x, 'f', -1, 64))
			}
		}
		fmt.Fprintf(out, "Lattice=\"%s\" Properties=species:S:1:pos:R:3 pbc=\"%s %s %s\"\n", strings.Join(l, " "), flag(S.PBC[0]), flag(S.PBC[1]), flag(S.PBC[2]))
	} else {
		fmt.Fprintf(out, "Properties=species:S:1:pos:R:3 pbc=\"F F F\"\n")
	}
	for i := 0; i < S.Len(); i++ {
		r := S.Coord(i)
		fmt.Fprintf(out, "%-2s %15.8f %15.8f %15.8f\n", S.Atom(i).Symbol, r[0], r[1], r[2])
	}
	if err := out.Flush(); err != nil {
		return newError(err.Error(), "", "xyz", "WriteXYZ")
	}
	return nil
}
