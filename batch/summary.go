/*
 * summary.go, part of zeomerge.
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
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
)

//JobResult describes one merged file.
type JobResult struct {
	Host      string `json:"host"`
	Guest     string `json:"guest"`
	Output    string `json:"output"`
	Atoms     int    `json:"atoms"`
	Molecule  int    `json:"molecule_atoms"`
	Fragments int    `json:"fragments"` //connected pieces in the extracted molecule
	Dropped   int    `json:"dropped"`   //molecule atoms dropped as duplicates
	Clashes   int    `json:"clashes"`   //close host/molecule pairs that were kept
}

//Failure is a job that could not be completed.
type Failure struct {
	Job      string `json:"job"`
	Error    string `json:"error"`
	Critical bool   `json:"critical"`
}

//Summary collects the results of a batch run. It is safe for concurrent use.
type Summary struct {
	mu        sync.Mutex
	RunID     string      `json:"run_id"`
	Processed int         `json:"processed"`
	Written   int         `json:"written"`
	Results   []JobResult `json:"results"`
	Missing   []string    `json:"missing"` //companion files that were not found
	Failures  []Failure   `json:"failures"`
	Skipped   []string    `json:"skipped"` //files with names we couldn't parse
}

func (S *Summary) addResult(r JobResult) {
	S.mu.Lock()
	defer S.mu.Unlock()
	S.Processed++
	S.Written++
	S.Results = append(S.Results, r)
}

func (S *Summary) addMissing(name string) {
	S.mu.Lock()
	defer S.mu.Unlock()
	S.Processed++
	S.Missing = append(S.Missing, name)
}

func (S *Summary) addFailure(job string, err error, critical bool) {
	S.mu.Lock()
	defer S.mu.Unlock()
	S.Processed++
	S.Failures = append(S.Failures, Failure{Job: job, Error: err.Error(), Critical: critical})
}

func (S *Summary) addSkipped(name string) {
	S.mu.Lock()
	defer S.mu.Unlock()
	S.Skipped = append(S.Skipped, name)
}

//sort puts everything in a deterministic order, as jobs finish in any order.
func (S *Summary) sort() {
	S.mu.Lock()
	defer S.mu.Unlock()
	sort.Slice(S.Results, func(i, j int) bool { return S.Results[i].Output < S.Results[j].Output })
	sort.Slice(S.Failures, func(i, j int) bool { return S.Failures[i].Job < S.Failures[j].Job })
	sort.Strings(S.Missing)
	sort.Strings(S.Skipped)
}

//WriteTable writes a human-readable report of the run to w.
func (S *Summary) WriteTable(w io.Writer) error {
	S.mu.Lock()
	defer S.mu.Unlock()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTPUT\tATOMS\tMOLECULE\tFRAGMENTS\tDROPPED\tCLASHES")
	for _, r := range S.Results {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", r.Output, r.Atoms, r.Molecule, r.Fragments, r.Dropped, r.Clashes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, m := range S.Missing {
		fmt.Fprintf(w, "missing: %s\n", m)
	}
	for _, f := range S.Failures {
		fmt.Fprintf(w, "failed: %s: %s\n", f.Job, f.Error)
	}
	for _, s := range S.Skipped {
		fmt.Fprintf(w, "skipped: %s\n", s)
	}
	_, err := fmt.Fprintf(w, "run %s: processed %d, written %d, missing %d, failed %d\n", S.RunID, S.Processed, S.Written, len(S.Missing), len(S.Failures))
	return err
}

//WriteJSON writes the summary to w as JSON.
func (S *Summary) WriteJSON(w io.Writer) error {
	S.mu.Lock()
	defer S.mu.Unlock()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(S)
}
