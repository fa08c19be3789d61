package zeomerge

import (
	"errors"
	"math"
	"testing"
)

func TestLatticeParameters(Te *testing.T) {
	L, err := LatticeFromParameters(10, 11, 12, 90, 90, 90)
	if err != nil {
		Te.Fatal(err)
	}
	v := L.Vectors()
	if v[0] != [3]float64{10, 0, 0} || math.Abs(v[1][1]-11) > 1e-12 || math.Abs(v[2][2]-12) > 1e-12 {
		Te.Errorf("Wrong orthorhombic cell %v", v)
	}
	if math.Abs(L.Volume()-1320) > 1e-9 {
		Te.Errorf("Wrong volume %f", L.Volume())
	}
	L, err = LatticeFromParameters(8.1, 7.6, 9.3, 80, 85, 100)
	if err != nil {
		Te.Fatal(err)
	}
	lengths := L.Lengths()
	angles := L.Angles()
	for i, e := range [3]float64{8.1, 7.6, 9.3} {
		if math.Abs(lengths[i]-e) > 1e-9 {
			Te.Errorf("Length %d is %f, expected %f", i, lengths[i], e)
		}
	}
	for i, e := range [3]float64{80, 85, 100} {
		if math.Abs(angles[i]-e) > 1e-9 {
			Te.Errorf("Angle %d is %f, expected %f", i, angles[i], e)
		}
	}
	var serr *StructureError
	if _, err = LatticeFromParameters(10, 10, 10, 10, 10, 100); !errors.As(err, &serr) {
		Te.Errorf("Impossible angles should be rejected, got %v", err)
	}
	if _, err = LatticeFromParameters(0, 10, 10, 90, 90, 90); !errors.As(err, &serr) {
		Te.Errorf("A zero length should be rejected, got %v", err)
	}
}

func TestFrameWrap(Te *testing.T) {
	L, err := LatticeFromParameters(8.1, 7.6, 9.3, 80, 85, 100)
	if err != nil {
		Te.Fatal(err)
	}
	F, err := newFrame(L, [3]bool{true, true, false}, "test")
	if err != nil {
		Te.Fatal(err)
	}
	r := F.cart([3]float64{1.25, -0.5, 1.5})
	w, off := F.wrap(r)
	if off != [3]int{1, -1, 0} {
		Te.Errorf("Wrong wrap offset %v", off)
	}
	back := F.shift(off)
	for i := range r {
		if math.Abs(w[i]+back[i]-r[i]) > 1e-9 {
			Te.Errorf("Wrapped point plus offset should give the original point: %v %v %v", w, back, r)
			break
		}
	}
	f := F.frac(w)
	if math.Abs(f[0]-0.25) > 1e-9 || math.Abs(f[1]-0.5) > 1e-9 || math.Abs(f[2]-1.5) > 1e-9 {
		Te.Errorf("Wrong wrapped fractional coordinates %v", f)
	}
}

func TestStructureSelect(Te *testing.T) {
	S := scenarioFar(Te)
	noH := S.Without(NewElements("H"))
	if noH.Len() != S.Len()-3 {
		Te.Errorf("Expected %d atoms without H, got %d", S.Len()-3, noH.Len())
	}
	sub, err := S.SomeAtoms([]int{13, 0})
	if err != nil {
		Te.Fatal(err)
	}
	if sub.Atom(0).Symbol != "C" || sub.Coord(0) != [3]float64{0, 0, 10} || sub.Atom(1).Symbol != "Si" {
		Te.Errorf("Wrong atoms in the subset")
	}
	sub.Atom(0).Symbol = "N"
	if S.Atom(13).Symbol != "C" {
		Te.Errorf("Subsets should have copies of the atoms")
	}
	if _, err = S.SomeAtoms([]int{100}); err == nil {
		Te.Errorf("Expected an error for an index out of range")
	}
	if _, err = FromSymbols(nil, allPBC, []string{"C"}, nil); err == nil {
		Te.Errorf("Expected an error for symbols without positions")
	}
}

func TestErrorCriticality(Te *testing.T) {
	miss := NewMissingCollaboratorError("guest.cif", "host.cif")
	if IsCritical(miss) {
		Te.Errorf("A missing companion file should not be critical")
	}
	if !IsCritical(errors.New("plain")) || IsCritical(nil) {
		Te.Errorf("Plain errors are critical, nil is not")
	}
	err := errDecorate(miss, "Caller")
	if d := miss.Decorate(""); len(d) != 1 || d[0] != "Caller" || err.Error() != "missing guest.cif, needed by host.cif [Caller]" {
		Te.Errorf("Unexpected decorated error %q %v", err.Error(), d)
	}
}

func TestElements(Te *testing.T) {
	E := ParseElements("Si,Al, P\tGe")
	if len(E) != 4 || !E.Has("P") || E.Has("") {
		Te.Errorf("Wrong parsed set %s", E)
	}
	if E.String() != "{Al,Ge,P,Si}" {
		Te.Errorf("Wrong string %s", E)
	}
	var none Elements
	if none.Has("Si") {
		Te.Errorf("A nil set has no elements")
	}
}
