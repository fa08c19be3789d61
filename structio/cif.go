/*
 * cif.go, part of zeomerge.
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
	"strconv"
	"strings"
	"unicode"

	"github.com/rmera/zeomerge"
	v3 "github.com/rmera/zeomerge/v3"
)

//Only the first data block of a CIF file is read, and only P1 structures
//(a single x,y,z symmetry operation) are supported.

type cifToken struct {
	text   string
	quoted bool
}

func (t cifToken) isTag() bool {
	return !t.quoted && strings.HasPrefix(t.text, "_")
}

func (t cifToken) isKeyword() bool {
	if t.quoted {
		return false
	}
	l := strings.ToLower(t.text)
	return strings.HasPrefix(l, "data_") || l == "loop_" || strings.HasPrefix(l, "save_") || l == "global_" || l == "stop_"
}

//cifTokens splits a CIF file into tokens. Comments are dropped, and
//quoted strings and semicolon text fields give one token each.
func cifTokens(r io.Reader) ([]cifToken, error) {
	in := bufio.NewScanner(r)
	in.Buffer(make([]byte, 64*1024), 1024*1024)
	var ret []cifToken
	var text []string
	intext := false
	for in.Scan() {
		line := in.Text()
		if strings.HasPrefix(line, ";") {
			if intext {
				ret = append(ret, cifToken{text: strings.Join(text, "\n"), quoted: true})
				text = text[:0]
				intext = false
				continue
			}
			intext = true
			text = append(text, line[1:])
			continue
		}
		if intext {
			text = append(text, line)
			continue
		}
		ret = append(ret, lineTokens(line)...)
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	if intext {
		return nil, fmt.Errorf("unterminated text field")
	}
	return ret, nil
}

func lineTokens(line string) []cifToken {
	var ret []cifToken
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case c == '#':
			return ret
		case c == '\'' || c == '"':
			//the closing quote must be followed by a blank or the end of the line.
			j := i + 1
			for j < len(line) && !(line[j] == c && (j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t')) {
				j++
			}
			ret = append(ret, cifToken{text: line[i+1 : j], quoted: true})
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' && line[j] != '\r' {
				j++
			}
			ret = append(ret, cifToken{text: line[i:j]})
			i = j
		}
	}
	return ret
}

type cifLoop struct {
	tags []string
	rows [][]string
}

func (L *cifLoop) column(tags ...string) int {
	for _, t := range tags {
		for i, v := range L.tags {
			if v == t {
				return i
			}
		}
	}
	return -1
}

type cifBlock struct {
	items map[string]string
	loops []*cifLoop
}

func (B *cifBlock) loopWith(tag string) *cifLoop {
	for _, l := range B.loops {
		if l.column(tag) >= 0 {
			return l
		}
	}
	return nil
}

//parseCIFBlock reads the first data block in tokens. Tags are lowercased.
func parseCIFBlock(tokens []cifToken) (*cifBlock, error) {
	B := &cifBlock{items: make(map[string]string)}
	started := false
	for i := 0; i < len(tokens); {
		t := tokens[i]
		l := strings.ToLower(t.text)
		switch {
		case !t.quoted && strings.HasPrefix(l, "data_"):
			if started {
				return B, nil
			}
			started = true
			i++
		case !t.quoted && l == "loop_":
			i++
			L := new(cifLoop)
			for i < len(tokens) && tokens[i].isTag() {
				L.tags = append(L.tags, strings.ToLower(tokens[i].text))
				i++
			}
			if len(L.tags) == 0 {
				return nil, fmt.Errorf("loop with no tags")
			}
			var vals []string
			for i < len(tokens) && !tokens[i].isTag() && !tokens[i].isKeyword() {
				vals = append(vals, tokens[i].text)
				i++
			}
			if len(vals)%len(L.tags) != 0 {
				return nil, fmt.Errorf("loop with tags %v has %d values", L.tags, len(vals))
			}
			for k := 0; k < len(vals); k += len(L.tags) {
				L.rows = append(L.rows, vals[k:k+len(L.tags)])
			}
			B.loops = append(B.loops, L)
		case t.isTag():
			if i+1 >= len(tokens) || tokens[i+1].isTag() || tokens[i+1].isKeyword() {
				return nil, fmt.Errorf("tag %s has no value", t.text)
			}
			B.items[l] = tokens[i+1].text
			i += 2
		default:
			i++
		}
	}
	if !started {
		return nil, fmt.Errorf("no data block")
	}
	return B, nil
}

//cifNumber parses a CIF number, dropping the standard uncertainty in parentheses.
func cifNumber(s string) (float64, error) {
	if p := strings.IndexByte(s, '('); p >= 0 {
		s = s[:p]
	}
	return strconv.ParseFloat(s, 64)
}

//symbolFromLabel gets an element symbol from an atom type, such as "Si", "O2-"
//or "AL". If label is true, s is an atom label instead, such as "Si1" or "CA1",
//and an uppercase second letter starts a new word, so "CA1" is a C, not a Ca.
func symbolFromLabel(s string, label bool) string {
	letters := make([]rune, 0, 2)
	for _, r := range s {
		if !unicode.IsLetter(r) || len(letters) == 2 {
			break
		}
		letters = append(letters, r)
	}
	if len(letters) == 0 {
		return s
	}
	radii := zeomerge.DefaultRadii()
	first := strings.ToUpper(string(letters[0]))
	if len(letters) == 2 {
		if _, ok := radii.Radius(first); ok && label && unicode.IsUpper(letters[1]) {
			return first
		}
		two := first + strings.ToLower(string(letters[1]))
		if _, ok := radii.Radius(two); ok {
			return two
		}
	}
	return first
}

//p1 returns true if op, a symmetry operation, is the identity.
func p1(op string) bool {
	op = strings.ToLower(strings.Join(strings.Fields(op), ""))
	return op == "x,y,z" || op == "+x,+y,+z"
}

func checkP1(B *cifBlock) error {
	for _, tag := range []string{"_symmetry_space_group_name_h-m", "_space_group_name_h-m_alt"} {
		if sg, ok := B.items[tag]; ok {
			sg = strings.Join(strings.Fields(sg), "")
			if sg != "P1" && sg != "?" && sg != "." {
				return fmt.Errorf("space group %s is not supported, only P1", B.items[tag])
			}
		}
	}
	for _, tag := range []string{"_symmetry_equiv_pos_as_xyz", "_space_group_symop_operation_xyz"} {
		L := B.loopWith(tag)
		if L == nil {
			if op, ok := B.items[tag]; ok && !p1(op) {
				return fmt.Errorf("symmetry operation %s is not supported, only P1", op)
			}
			continue
		}
		c := L.column(tag)
		for _, row := range L.rows {
			if !p1(row[c]) {
				return fmt.Errorf("symmetry operation %s is not supported, only P1", row[c])
			}
		}
	}
	return nil
}

//ReadCIF reads a P1 structure from the first data block of the CIF file in r. The structure
//is periodic along all axes, with the cell oriented with a along x and b in the xy plane.
func ReadCIF(r io.Reader) (*zeomerge.Structure, error) {
	tokens, err := cifTokens(r)
	if err != nil {
		return nil, newError(err.Error(), "", "cif", "ReadCIF")
	}
	B, err := parseCIFBlock(tokens)
	if err != nil {
		return nil, newError(err.Error(), "", "cif", "ReadCIF")
	}
	if err = checkP1(B); err != nil {
		return nil, newError(err.Error(), "", "cif", "ReadCIF")
	}
	var par [6]float64
	for i, tag := range []string{"_cell_length_a", "_cell_length_b", "_cell_length_c", "_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma"} {
		v, ok := B.items[tag]
		if !ok {
			if i < 3 {
				return nil, newError("missing "+tag, "", "cif", "ReadCIF")
			}
			par[i] = 90
			continue
		}
		if par[i], err = cifNumber(v); err != nil {
			return nil, newError(fmt.Sprintf("bad value %q for %s", v, tag), "", "cif", "ReadCIF")
		}
	}
	cell, err := zeomerge.LatticeFromParameters(par[0], par[1], par[2], par[3], par[4], par[5])
	if err != nil {
		return nil, err
	}
	L := B.loopWith("_atom_site_fract_x")
	if L == nil {
		return nil, newError("no _atom_site_fract_ loop", "", "cif", "ReadCIF")
	}
	cols := [3]int{L.column("_atom_site_fract_x"), L.column("_atom_site_fract_y"), L.column("_atom_site_fract_z")}
	if cols[1] < 0 || cols[2] < 0 {
		return nil, newError("incomplete fractional coordinates", "", "cif", "ReadCIF")
	}
	symcol := L.column("_atom_site_type_symbol")
	fromLabel := symcol < 0
	if fromLabel {
		symcol = L.column("_atom_site_label")
	}
	if symcol < 0 {
		return nil, newError("atoms have no symbol nor label", "", "cif", "ReadCIF")
	}
	atoms := make([]*zeomerge.Atom, len(L.rows))
	frac := v3.Zeros(len(L.rows))
	for i, row := range L.rows {
		var f [3]float64
		for k, c := range cols {
			if f[k], err = cifNumber(row[c]); err != nil {
				return nil, newError(fmt.Sprintf("bad coordinate %q for atom %d", row[c], i+1), "", "cif", "ReadCIF")
			}
		}
		frac.SetVec(i, f)
		atoms[i] = zeomerge.NewAtom(symbolFromLabel(row[symcol], fromLabel))
	}
	return zeomerge.NewStructure(cell, [3]bool{true, true, true}, atoms, cell.Cartesian(frac))
}

//formulaSum returns the formula of S as in "O48 Si24", elements in alphabetical order.
func formulaSum(S *zeomerge.Structure) string {
	f := S.Formula()
	names := make(zeomerge.Elements, len(f))
	for k := range f {
		names[k] = struct{}{}
	}
	parts := make([]string, 0, len(f))
	for _, k := range names.Sorted() {
		parts = append(parts, fmt.Sprintf("%s%d", k, f[k]))
	}
	return strings.Join(parts, " ")
}

//WriteCIF writes S to w as a P1 CIF file with a data block called name. The
//cell must not be singular. The periodicity of S is not recorded: CIF
//structures are always periodic.
func WriteCIF(w io.Writer, S *zeomerge.Structure, name string) error {
	frac, err := S.Cell.Fractional(S.Coords)
	if err != nil {
		return err
	}
	if name == "" {
		name = "image0"
	}
	out := bufio.NewWriter(w)
	l := S.Cell.Lengths()
	a := S.Cell.Angles()
	fmt.Fprintf(out, "data_%s\n", strings.Join(strings.Fields(name), "_"))
	fmt.Fprintf(out, "_chemical_formula_sum '%s'\n", formulaSum(S))
	for i, tag := range []string{"_cell_length_a", "_cell_length_b", "_cell_length_c"} {
		fmt.Fprintf(out, "%-20s %.8f\n", tag, l[i])
	}
	for i, tag := range []string{"_cell_angle_alpha", "_cell_angle_beta", "_cell_angle_gamma"} {
		fmt.Fprintf(out, "%-20s %.8f\n", tag, a[i])
	}
	fmt.Fprintf(out, "\n_space_group_name_H-M_alt 'P 1'\n_space_group_IT_number 1\n\n")
	fmt.Fprintf(out, "loop_\n  _space_group_symop_operation_xyz\n  'x, y, z'\n\n")
	fmt.Fprintf(out, "loop_\n  _atom_site_type_symbol\n  _atom_site_label\n  _atom_site_symmetry_multiplicity\n")
	fmt.Fprintf(out, "  _atom_site_fract_x\n  _atom_site_fract_y\n  _atom_site_fract_z\n  _atom_site_occupancy\n")
	count := make(map[string]int)
	for i := 0; i < S.Len(); i++ {
		sym := S.Atom(i).Symbol
		count[sym]++
		f := frac.Vec(i)
		fmt.Fprintf(out, "  %-2s %-6s 1.0 %12.8f %12.8f %12.8f 1.0000\n", sym, fmt.Sprintf("%s%d", sym, count[sym]), f[0], f[1], f[2])
	}
	if err := out.Flush(); err != nil {
		return newError(err.Error(), "", "cif", "WriteCIF")
	}
	return nil
}
