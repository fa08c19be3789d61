package structio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/zeomerge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(v [3]float64) []float64 { return v[:] }

const aseCIF = `data_image0
_chemical_formula_structural       Si2O2CH4
_chemical_formula_sum              "Si2 O2 C1 H4"
_cell_length_a       10.0(2)
_cell_length_b       12
_cell_length_c       14
_cell_angle_alpha    90
_cell_angle_beta     90
_cell_angle_gamma    90

_space_group_name_H-M_alt    "P 1"
_space_group_IT_number       1

loop_
  _space_group_symop_operation_xyz
  'x, y, z'

# a comment
loop_
  _atom_site_type_symbol
  _atom_site_label
  _atom_site_symmetry_multiplicity
  _atom_site_fract_x
  _atom_site_fract_y
  _atom_site_fract_z
  _atom_site_occupancy
  Si  Si1       1.0  0.00000  0.00000  0.00000  1.0000
  Si  Si2       1.0  0.50000  0.00000  0.00000  1.0000
  O   O1        1.0  0.16000  0.00000  0.00000  1.0000
  O   O2        1.0  0.66(1)  0.00000  0.00000  1.0000
  C   C1        1.0  0.50000  0.50000  0.50000  1.0000
  H   H1        1.0  0.60900  0.50000  0.50000  1.0000
  H   H2        1.0  0.39100  0.50000  0.50000  1.0000
  H   H3        1.0  0.50000  0.59083  0.50000  1.0000
  H   H4        1.0  0.50000  0.50000  0.42214  1.0000
`

func TestReadCIF(t *testing.T) {
	S, err := ReadCIF(strings.NewReader(aseCIF))
	require.NoError(t, err)
	require.Equal(t, 9, S.Len())
	assert.Equal(t, [3]bool{true, true, true}, S.PBC)
	assert.Equal(t, []string{"Si", "Si", "O", "O", "C", "H", "H", "H", "H"}, S.Symbols())
	assert.InDeltaSlice(t, []float64{6.6, 0, 0}, vec(S.Coord(3)), 1e-9)
	assert.InDeltaSlice(t, []float64{5, 6, 7}, vec(S.Coord(4)), 1e-9)
	assert.InDelta(t, 10*12*14, S.Cell.Volume(), 1e-6)
	assert.InDelta(t, 0.31, S.Atom(5).Covrad, 1e-12)
}

func TestReadCIFLabels(t *testing.T) {
	cif := `data_x
_cell_length_a 5
_cell_length_b 5
_cell_length_c 5
loop_
_atom_site_label
_atom_site_fract_x
_atom_site_fract_y
_atom_site_fract_z
Si1 0 0 0
O12 0.5 0 0
Al3 0 0.5 0
C 0 0 0.5
CA1 0.5 0.5 0
HO2 0.5 0 0.5
AL4 0 0.5 0.5
`
	S, err := ReadCIF(strings.NewReader(cif))
	require.NoError(t, err)
	assert.Equal(t, []string{"Si", "O", "Al", "C", "C", "H", "Al"}, S.Symbols())
	assert.InDelta(t, 90, S.Cell.Angles()[1], 1e-9)

	//type symbols are not labels, so CA is calcium there.
	typed := strings.Replace(cif, "_atom_site_label\n", "_atom_site_type_symbol\n", 1)
	S, err = ReadCIF(strings.NewReader(typed))
	require.NoError(t, err)
	assert.Equal(t, "Ca", S.Symbols()[4])
}

func TestReadCIFSymmetry(t *testing.T) {
	cif := strings.Replace(aseCIF, "'x, y, z'", "'x, y, z'\n  '-x, -y, -z'", 1)
	_, err := ReadCIF(strings.NewReader(cif))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only P1")

	cif = strings.Replace(aseCIF, `"P 1"`, `"P -1"`, 1)
	_, err = ReadCIF(strings.NewReader(cif))
	require.Error(t, err)

	_, err = ReadCIF(strings.NewReader("_cell_length_a 5\n"))
	require.Error(t, err)
}

func TestReadXYZ(t *testing.T) {
	xyz := `3
Lattice="10.0 0.0 0.0 0.0 11.0 0.0 0.0 0.0 12.0" Properties=species:S:1:pos:R:3 pbc="T T F" energy=-1.5
Si 0.0 0.0 0.0
O  1.6 0.0 0.0
H  0.0 0.0 5.0 extra columns
`
	S, err := ReadXYZ(strings.NewReader(xyz))
	require.NoError(t, err)
	require.Equal(t, 3, S.Len())
	assert.Equal(t, [3]bool{true, true, false}, S.PBC)
	assert.Equal(t, [3]float64{0, 11, 0}, S.Cell.Vectors()[1])

	plain := "2\nwater fragment\nO 0 0 0\nH 0.96 0 0\n"
	S, err = ReadXYZ(strings.NewReader(plain))
	require.NoError(t, err)
	assert.False(t, S.Periodic())
	assert.True(t, S.Cell.Singular())

	_, err = ReadXYZ(strings.NewReader("3\ncomment\nO 0 0 0\n"))
	require.Error(t, err)
	//a corrupted count fails on the missing atoms, without allocating for them.
	_, err = ReadXYZ(strings.NewReader("2000000000\ncomment\nO 0 0 0\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2000000000 atoms, found 1")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "xyz", e.Format())
}

func sample(t *testing.T) *zeomerge.Structure {
	cell, err := zeomerge.LatticeFromParameters(9, 10, 11, 85, 95, 100)
	require.NoError(t, err)
	S, err := zeomerge.FromSymbols(cell, [3]bool{true, true, true},
		[]string{"Si", "O", "C", "H"},
		[][3]float64{{0.1, 0.2, 0.3}, {1.7, 0.2, 0.3}, {4, 4, 4}, {5.09, 4, 4}})
	require.NoError(t, err)
	return S
}

//TestFiles writes and reads back a structure in every format and compression.
func TestFiles(t *testing.T) {
	dir := t.TempDir()
	S := sample(t)
	for _, name := range []string{"s.xyz", "s.cif", "s.cif.gz", "s.xyz.zst", "s.cif.zz"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, S), name)
		R, err := ReadFile(path)
		require.NoError(t, err, name)
		require.Equal(t, S.Symbols(), R.Symbols(), name)
		assert.True(t, R.Cell.Equal(S.Cell, 1e-6), name)
		for i := 0; i < S.Len(); i++ {
			assert.InDeltaSlice(t, vec(S.Coord(i)), vec(R.Coord(i)), 1e-6, name)
		}
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "temporary files left behind")
	for _, e := range entries {
		info, err := e.Info()
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), info.Mode().Perm(), e.Name())
	}
}

func TestCompressedOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.cif.gz")
	require.NoError(t, WriteFile(path, sample(t)))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, len(raw) > 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2], "not a gzip file")

	c, base := SplitCompression("a/b.xyz.ZST")
	assert.Equal(t, Zstd, c)
	assert.Equal(t, "a/b.xyz", base)
}

func TestWriteFailure(t *testing.T) {
	dir := t.TempDir()
	S := sample(t)
	_, err := FormatOf(filepath.Join(dir, "s.pdb"))
	require.Error(t, err)

	//a cif needs a cell.
	flat, err := zeomerge.FromSymbols(nil, [3]bool{}, []string{"C"}, [][3]float64{{0, 0, 0}})
	require.NoError(t, err)
	path := filepath.Join(dir, "flat.cif")
	require.Error(t, WriteFile(path, flat))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	//an existing file is only replaced on success.
	require.NoError(t, WriteFile(path, S))
	require.Error(t, WriteFile(path, flat))
	R, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, S.Len(), R.Len())

	_, err = ReadFile(filepath.Join(dir, "missing.cif"))
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, filepath.Join(dir, "missing.cif"), e.FileName())
}
