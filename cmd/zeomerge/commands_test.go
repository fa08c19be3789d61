package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/zeomerge"
	"github.com/rmera/zeomerge/batch"
	"github.com/rmera/zeomerge/structio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func write(t *testing.T, path string, symbols []string, pos [][3]float64) {
	t.Helper()
	cell := zeomerge.NewLattice([3]float64{10, 0, 0}, [3]float64{0, 10, 0}, [3]float64{0, 0, 10})
	S, err := zeomerge.FromSymbols(cell, [3]bool{true, true, true}, symbols, pos)
	require.NoError(t, err)
	require.NoError(t, structio.WriteFile(path, S))
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "chain.xyz")
	write(t, in, []string{"Si", "O", "C", "H", "Na"},
		[][3]float64{{1, 1, 1}, {2.6, 1, 1}, {4.0, 1, 1}, {5.0, 1, 1}, {1, 3.5, 1}})
	sel := filepath.Join(dir, "sel.cif")
	rem := filepath.Join(dir, "rem.xyz.gz")
	plot := filepath.Join(dir, "growth.png")
	out, err := run(t, "select", in, "--seeds", "Si", "--safe", "Na", "--shells", "3",
		"--out-selected", sel, "--out-remaining", rem, "--plot", plot)
	require.NoError(t, err)
	assert.Contains(t, out, "shell 0: 1 selected")
	assert.Contains(t, out, "shell 3: 4 selected")
	assert.Contains(t, out, "selected 4, remaining 1")

	S, err := structio.ReadFile(sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"Si", "O", "C", "H"}, S.Symbols())
	R, err := structio.ReadFile(rem)
	require.NoError(t, err)
	assert.Equal(t, []string{"Na"}, R.Symbols())
	_, err = os.Stat(plot)
	assert.NoError(t, err)

	_, err = run(t, "select")
	assert.Error(t, err)
	_, err = run(t, "select", in, "--shells", "-1")
	assert.Error(t, err)
	_, err = run(t, "select", filepath.Join(dir, "nothere.xyz"))
	assert.Error(t, err)
}

func TestMergeAndCheck(t *testing.T) {
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts")
	guests := filepath.Join(dir, "guests")
	outdir := filepath.Join(dir, "merged")
	require.NoError(t, os.MkdirAll(hosts, 0o755))
	require.NoError(t, os.MkdirAll(guests, 0o755))
	write(t, filepath.Join(hosts, "Scaling-CHA-Mg-HZ-a_2.cif"), []string{"Si", "O", "Mg", "H"},
		[][3]float64{{1, 1, 1}, {2.6, 1, 1}, {1, 3, 1}, {8, 8, 8}})
	write(t, filepath.Join(hosts, "Scaling-CHA-Zn-HZ-a_2.cif"), []string{"Si", "O", "Zn"},
		[][3]float64{{1, 1, 1}, {2.6, 1, 1}, {1, 3, 1}})
	write(t, filepath.Join(guests, batch.GuestName("CHA", "CH3Z-HMB", ".cif")), []string{"Si", "O", "C", "H"},
		[][3]float64{{1, 1, 1}, {2.6, 1, 1}, {5, 5, 5}, {6, 5, 5}})

	config := filepath.Join(dir, "zeomerge.yaml")
	yml := fmt.Sprintf("reactions: [CH3Z-HMB]\nhost_dir: %s\nguest_dir: %s\noutput_dir: %s\n", hosts, guests, outdir)
	require.NoError(t, os.WriteFile(config, []byte(yml), 0o644))

	out, err := run(t, "--config", config, "merge", "--json", "-j", "1")
	require.NoError(t, err)
	var sum struct {
		Processed int `json:"processed"`
		Written   int `json:"written"`
		Results   []struct {
			Output string `json:"output"`
			Atoms  int    `json:"atoms"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &sum))
	assert.Equal(t, 2, sum.Processed)
	assert.Equal(t, 2, sum.Written)
	require.Len(t, sum.Results, 2)
	assert.Equal(t, "Scaling-CHA-Mg-CH3Z-HMB-a_2.cif", sum.Results[0].Output)
	assert.Equal(t, 5, sum.Results[0].Atoms)
	assert.Equal(t, 5, sum.Results[1].Atoms)

	out, err = run(t, "--config", config, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "consistent (5 atoms)")
	assert.Contains(t, out, "all series are consistent")

	//the Si reference has 4 atoms, the merged files 5
	out, err = run(t, "--config", config, "checkref")
	require.NoError(t, err)
	assert.Contains(t, out, "passed 0, failed 2, missing reference 0")

	out, err = run(t, "checkref", "--dir", outdir, "--ref", outdir)
	require.NoError(t, err)
	assert.Contains(t, out, "missing reference 2")
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "--config", filepath.Join(dir, "nothere.yaml"), "check")
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tol_same: -1\n"), 0o644))
	_, err = run(t, "--config", bad, "check")
	assert.Error(t, err)

	_, err = run(t, "merge", "--hosts", filepath.Join(dir, "nothere"))
	assert.Error(t, err)
}

func TestVerbose(t *testing.T) {
	for _, v := range []bool{true, false} {
		log, err := newLogger(v)
		require.NoError(t, err)
		assert.Equal(t, v, log.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	}
	out, err := run(t, "--verbose", "check", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "all series are consistent")
}
