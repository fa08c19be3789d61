/*
 * check.go, part of zeomerge.
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

package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/rmera/zeomerge/structio"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

//Merged files of the same zeolite and reaction must have the same number of atoms,
//whatever the metal site, and the same number as the Si reference structure.

//Series is a set of merged files with the same zeolite and reaction.
type Series struct {
	Zeo      string           `json:"zeo"`
	Reaction string           `json:"reaction"`
	Counts   map[int][]string `json:"counts"` //files per atom count
	Mean     float64          `json:"mean"`
	StdDev   float64          `json:"std_dev"`
}

//Consistent returns true if all files in the series have the same number of atoms.
func (S *Series) Consistent() bool {
	return len(S.Counts) <= 1
}

//ConsistencyReport is the result of CheckConsistency.
type ConsistencyReport struct {
	Series []*Series `json:"series"`
	Errors []string  `json:"errors"` //files that could not be read
}

//Consistent returns true if every series is consistent.
func (R *ConsistencyReport) Consistent() bool {
	for _, s := range R.Series {
		if !s.Consistent() {
			return false
		}
	}
	return true
}

//countAtoms reads the file name and returns its number of atoms.
func countAtoms(name string) (int, error) {
	S, err := structio.ReadFile(name)
	if err != nil {
		return 0, err
	}
	return S.Len(), nil
}

//CheckConsistency groups the merged files in dir by zeolite and reaction, and
//reports the number of atoms in each file of each group. Files with no known
//reaction in their names are ignored.
func CheckConsistency(dir string, reactions []string, log *zap.Logger) (*ConsistencyReport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	files, err := structureFiles(dir)
	if err != nil {
		return nil, err
	}
	R := new(ConsistencyReport)
	series := make(map[[2]string]*Series)
	for _, f := range files {
		mn, ok := ParseMergedName(f, reactions)
		if !ok {
			continue
		}
		n, err := countAtoms(filepath.Join(dir, f))
		if err != nil {
			log.Error("can't read merged file", zap.String("file", f), zap.Error(err))
			R.Errors = append(R.Errors, fmt.Sprintf("%s: %s", f, err))
			continue
		}
		key := [2]string{mn.Zeo, mn.Reaction}
		s, ok := series[key]
		if !ok {
			s = &Series{Zeo: mn.Zeo, Reaction: mn.Reaction, Counts: make(map[int][]string)}
			series[key] = s
			R.Series = append(R.Series, s)
		}
		s.Counts[n] = append(s.Counts[n], f)
	}
	for _, s := range R.Series {
		var x []float64
		for n, f := range s.Counts {
			for range f {
				x = append(x, float64(n))
			}
		}
		s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
		if len(x) < 2 {
			s.StdDev = 0
		}
	}
	sort.Slice(R.Series, func(i, j int) bool {
		if R.Series[i].Zeo != R.Series[j].Zeo {
			return R.Series[i].Zeo < R.Series[j].Zeo
		}
		return R.Series[i].Reaction < R.Series[j].Reaction
	})
	return R, nil
}

//WriteTable writes a human-readable report to w.
func (R *ConsistencyReport) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ZEO\tREACTION\tSTATUS")
	for _, s := range R.Series {
		if s.Consistent() {
			for n := range s.Counts {
				fmt.Fprintf(tw, "%s\t%s\tconsistent (%d atoms)\n", s.Zeo, s.Reaction, n)
			}
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\tCONFLICT (mean %.1f, sd %.2f)\n", s.Zeo, s.Reaction, s.Mean, s.StdDev)
		counts := make([]int, 0, len(s.Counts))
		for n := range s.Counts {
			counts = append(counts, n)
		}
		sort.Ints(counts)
		for _, n := range counts {
			fmt.Fprintf(tw, "\t\t%d atoms: %d files (e.g. %s)\n", n, len(s.Counts[n]), s.Counts[n][0])
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, e := range R.Errors {
		fmt.Fprintf(w, "error: %s\n", e)
	}
	var err error
	if R.Consistent() {
		_, err = fmt.Fprintln(w, "all series are consistent")
	} else {
		_, err = fmt.Fprintln(w, "some series have different atom counts, check the merge settings")
	}
	return err
}

//RefMismatch is a merged file with a number of atoms different from its reference.
type RefMismatch struct {
	File    string `json:"file"`
	N       int    `json:"n"`
	RefFile string `json:"ref_file"`
	RefN    int    `json:"ref_n"`
}

//ReferenceReport is the result of CheckReference.
type ReferenceReport struct {
	Pass       int           `json:"pass"`
	Fail       []RefMismatch `json:"fail"`
	MissingRef []string      `json:"missing_ref"`
	Errors     []string      `json:"errors"`
}

//OK returns true if all files passed and none lacked a reference.
func (R *ReferenceReport) OK() bool {
	return len(R.Fail) == 0 && len(R.MissingRef) == 0 && len(R.Errors) == 0
}

//CheckReference compares the number of atoms of each merged file in dir with
//that of the Si structure for the same zeolite and reaction in refdir.
func CheckReference(dir, refdir string, reactions []string, log *zap.Logger) (*ReferenceReport, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if _, err := os.Stat(refdir); err != nil {
		return nil, err
	}
	files, err := structureFiles(dir)
	if err != nil {
		return nil, err
	}
	R := new(ReferenceReport)
	refCounts := make(map[string]int)
	for _, f := range files {
		mn, ok := ParseMergedName(f, reactions)
		if !ok {
			continue
		}
		ref := GuestName(mn.Zeo, mn.Reaction, ".cif")
		refpath := filepath.Join(refdir, ref)
		if _, err := os.Stat(refpath); err != nil {
			R.MissingRef = append(R.MissingRef, fmt.Sprintf("%s (needs %s)", f, ref))
			continue
		}
		n, err := countAtoms(filepath.Join(dir, f))
		if err != nil {
			log.Error("can't read merged file", zap.String("file", f), zap.Error(err))
			R.Errors = append(R.Errors, fmt.Sprintf("%s: %s", f, err))
			continue
		}
		nref, ok := refCounts[ref]
		if !ok {
			if nref, err = countAtoms(refpath); err != nil {
				log.Error("can't read reference file", zap.String("file", ref), zap.Error(err))
				R.Errors = append(R.Errors, fmt.Sprintf("%s: %s", ref, err))
				continue
			}
			refCounts[ref] = nref
		}
		if n == nref {
			R.Pass++
			continue
		}
		R.Fail = append(R.Fail, RefMismatch{File: f, N: n, RefFile: ref, RefN: nref})
	}
	return R, nil
}

//WriteTable writes a human-readable report to w.
func (R *ReferenceReport) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range R.Fail {
		fmt.Fprintf(tw, "FAIL\t%s\t%d atoms, reference %s has %d\n", f.File, f.N, f.RefFile, f.RefN)
	}
	for _, m := range R.MissingRef {
		fmt.Fprintf(tw, "NOREF\t%s\t\n", m)
	}
	for _, e := range R.Errors {
		fmt.Fprintf(tw, "ERROR\t%s\t\n", e)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "passed %d, failed %d, missing reference %d\n", R.Pass, len(R.Fail), len(R.MissingRef))
	return err
}
