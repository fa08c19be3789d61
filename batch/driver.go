/*
 * driver.go, part of zeomerge.
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

//Package batch merges the molecules of a set of guest structures into a set of
//host frameworks, matching them by file name, and checks the results.
package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/rmera/zeomerge"
	"github.com/rmera/zeomerge/chemgraph"
	"github.com/rmera/zeomerge/structio"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//Job is one host/reaction pair.
type Job struct {
	Host     string //path to the host file
	Guest    string //path to the guest file
	Output   string //path to the merged file
	Reaction string
}

func (J Job) String() string {
	return filepath.Base(J.Host) + " + " + J.Reaction
}

//Driver runs batch merges.
type Driver struct {
	Config *Config
	Logger *zap.Logger
}

//NewDriver returns a driver for C. A nil logger means no logging.
func NewDriver(C *Config, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{Config: C, Logger: log}
}

//structureFiles returns the names of the files in dir that look like structure files, sorted.
func structureFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ret []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := structio.FormatOf(e.Name()); err == nil {
			ret = append(ret, e.Name())
		}
	}
	sort.Strings(ret)
	return ret, nil
}

//Jobs returns the jobs for the files in the host directory. A host whose name
//carries a reaction gets only that reaction, the others get every reaction
//in the configuration. Hosts with names that don't follow the pattern are
//recorded in the summary as skipped.
func (D *Driver) Jobs(sum *Summary) ([]Job, error) {
	C := D.Config
	hosts, err := structureFiles(C.HostDir)
	if err != nil {
		return nil, err
	}
	var jobs []Job
	for _, h := range hosts {
		hn, ok := ParseHostName(h, C.Reactions)
		if !ok {
			D.Logger.Warn("host name doesn't follow the pattern", zap.String("file", h))
			if sum != nil {
				sum.addSkipped(h)
			}
			continue
		}
		reactions := C.Reactions
		if hn.Reaction != "" {
			reactions = []string{hn.Reaction}
		}
		for _, r := range reactions {
			jobs = append(jobs, Job{
				Host:     filepath.Join(C.HostDir, h),
				Guest:    filepath.Join(C.GuestDir, GuestName(hn.Zeo, r, ".cif")),
				Output:   filepath.Join(C.OutputDir, OutputName(hn.Zeo, hn.Metal, r, C.OutputExt)),
				Reaction: r,
			})
		}
	}
	return jobs, nil
}

//Run processes every job with a pool of Config.Workers goroutines. Failed jobs
//are recorded in the summary and don't stop the others. Run returns an error only
//if the jobs can't be listed or ctx is canceled, in which case the remaining jobs
//are not started.
func (D *Driver) Run(ctx context.Context) (*Summary, error) {
	if err := D.Config.Validate(); err != nil {
		return nil, err
	}
	sum := &Summary{RunID: uuid.NewString()}
	log := D.Logger.With(zap.String("run", sum.RunID))
	jobs, err := D.Jobs(sum)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(D.Config.OutputDir, 0o755); err != nil {
		return nil, err
	}
	log.Info("starting batch", zap.Int("jobs", len(jobs)), zap.Int("workers", D.Config.Workers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(D.Config.Workers)
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := D.Process(j)
			switch {
			case err == nil:
				sum.addResult(*res)
				log.Info("merged", zap.String("file", res.Output), zap.Int("atoms", res.Atoms), zap.Int("dropped", res.Dropped))
			case !zeomerge.IsCritical(err):
				sum.addMissing(filepath.Base(j.Guest))
				log.Warn("skipping job", zap.Stringer("job", j), zap.Error(err))
			default:
				sum.addFailure(j.String(), err, true)
				log.Error("job failed", zap.Stringer("job", j), zap.Error(err))
			}
			return nil
		})
	}
	err = g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	sum.sort()
	return sum, err
}

//Process runs one job: reads the host and strips it, extracts the molecule from
//the guest, merges it into the host and writes the result. A missing guest gives
//a non-critical MissingCollaboratorError.
func (D *Driver) Process(j Job) (*JobResult, error) {
	C := D.Config
	if _, err := os.Stat(j.Guest); errors.Is(err, os.ErrNotExist) {
		return nil, zeomerge.NewMissingCollaboratorError(filepath.Base(j.Guest), filepath.Base(j.Host))
	}
	host, err := structio.ReadFile(j.Host)
	if err != nil {
		return nil, err
	}
	host = host.Without(zeomerge.NewElements(C.StripElements...))
	guest, err := structio.ReadFile(j.Guest)
	if err != nil {
		return nil, err
	}
	G, err := C.Builder().Build(guest)
	if err != nil {
		return nil, err
	}
	cl, err := zeomerge.Classify(guest, G, C.ClassifyOptions())
	if err != nil {
		return nil, err
	}
	mol := guest.Select(cl.Keep)
	D.Logger.Debug("extracted molecule", zap.String("guest", j.Guest), zap.Int("atoms", mol.Len()), zap.Int("skeleton", cl.Skeleton.Count()))
	merged, err := C.Merger().Merge(host, mol)
	if err != nil {
		return nil, err
	}
	clashes, err := merged.Clashes(C.TolSame)
	if err != nil {
		return nil, err
	}
	if len(clashes) > 0 {
		c := clashes[0]
		D.Logger.Warn("molecule atoms too close to the host", zap.String("output", j.Output), zap.Int("pairs", len(clashes)),
			zap.String("closest", merged.Atom(c.I).Symbol+"-"+merged.Atom(c.J).Symbol), zap.Float64("distance", c.Distance))
	}
	if err := structio.WriteFile(j.Output, merged.Structure); err != nil {
		return nil, err
	}
	return &JobResult{
		Host:      filepath.Base(j.Host),
		Guest:     filepath.Base(j.Guest),
		Output:    filepath.Base(j.Output),
		Atoms:     merged.Len(),
		Molecule:  mol.Len(),
		Fragments: len(chemgraph.Fragments(G, cl.Keep)),
		Dropped:   len(merged.Dropped),
		Clashes:   len(clashes),
	}, nil
}
