package zeomerge

import (
	"sort"
	"strings"
)

//Elements is a set of element symbols.
type Elements map[string]struct{}

//NewElements returns a set with the given symbols.
func NewElements(symbols ...string) Elements {
	E := make(Elements, len(symbols))
	for _, v := range symbols {
		E[v] = struct{}{}
	}
	return E
}

//ParseElements reads a comma or space separated list of symbols,
//as in "Si,Al, P".
func ParseElements(list string) Elements {
	f := func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }
	return NewElements(strings.FieldsFunc(list, f)...)
}

//Has returns true if symbol is in the set. A nil set has nothing.
func (E Elements) Has(symbol string) bool {
	_, ok := E[symbol]
	return ok
}

//Sorted returns the symbols in the set, sorted.
func (E Elements) Sorted() []string {
	ret := make([]string, 0, len(E))
	for k := range E {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

func (E Elements) String() string {
	return "{" + strings.Join(E.Sorted(), ",") + "}"
}

//Mask is a boolean value per atom in a structure.
type Mask []bool

//SymbolMask returns a mask that is true for the atoms of S whose element is in elems.
func SymbolMask(S Atomer, elems Elements) Mask {
	M := make(Mask, S.Len())
	for i := range M {
		M[i] = elems.Has(S.Atom(i).Symbol)
	}
	return M
}

//Copy returns a copy of the mask.
func (M Mask) Copy() Mask {
	ret := make(Mask, len(M))
	copy(ret, M)
	return ret
}

//Not returns a new mask with every value negated.
func (M Mask) Not() Mask {
	ret := make(Mask, len(M))
	for i, v := range M {
		ret[i] = !v
	}
	return ret
}

//Count returns the number of true values.
func (M Mask) Count() int {
	n := 0
	for _, v := range M {
		if v {
			n++
		}
	}
	return n
}

//Indexes returns the indexes of the true values, in order.
func (M Mask) Indexes() []int {
	ret := make([]int, 0, M.Count())
	for i, v := range M {
		if v {
			ret = append(ret, i)
		}
	}
	return ret
}

//Contains returns true if every true value of O is also true in M.
//Both masks must have the same length, otherwise false is returned.
func (M Mask) Contains(O Mask) bool {
	if len(M) != len(O) {
		return false
	}
	for i, v := range O {
		if v && !M[i] {
			return false
		}
	}
	return true
}
