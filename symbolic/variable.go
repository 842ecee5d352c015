// Package symbolic implements component B of the checker: the symbolic value store that maps AST declarations
// and expressions to SSA-indexed SMT terms, plus the per-root-function bookkeeping (path conditions, snapshots,
// loop/mapping flags) the statement traverser and expression encoder build on.
package symbolic

import (
	"fmt"
	"math/big"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/ascendlabs/symcheck/utils"
)

// Variable is a symbolic variable: an identity (uniqueName), the sort it lives in, its bounds (for integer
// sorts), and its current SSA index. Each call to the solver asks for the term at a specific index via
// valueAtIndex; currentValue always asks for the live one.
type Variable struct {
	UniqueName string
	Sort       smt.Sort
	Signed     bool
	Min, Max   *big.Int // nil for non-integer sorts

	ArrayKeySort, ArrayValSort smt.Sort // only meaningful when Sort == smt.SortArray

	index int // the live pointer: which SSA index currentValue()/ValueAtIndex(index) reads
	high  int // monotonic high-water mark: the highest index ever allocated by IncreaseIndex, never reused
}

// Index reports the variable's current SSA index.
func (v *Variable) Index() int { return v.index }

// termName renders the SMT-LIB2 identifier for the term at index i.
func (v *Variable) termName(i int) string {
	return fmt.Sprintf("%s!%d", v.UniqueName, i)
}

// ValueAtIndex returns the term for a specific SSA index, without mutating the variable.
func (v *Variable) ValueAtIndex(i int) *smt.Term {
	switch v.Sort {
	case smt.SortArray:
		return smt.ArrayVar(v.termName(i), v.ArrayKeySort, v.ArrayValSort)
	default:
		return smt.Var(v.termName(i), v.Sort)
	}
}

// CurrentValue returns the term at the live SSA index (§4.4's currentValue(decl)).
func (v *Variable) CurrentValue() *smt.Term { return v.ValueAtIndex(v.index) }

// IncreaseIndex bumps the SSA index to a fresh value — one higher than any index ever allocated for this
// variable, not merely one higher than the current live pointer — and returns the new term, without adding any
// assertion (§4.2: "Index bumping is pure bookkeeping on the symvar; it does not by itself add assertions.").
// The distinction matters after a snapshot restore moves the live pointer backward (§9's "reset is a mass
// overwrite" on the pointer only): a subsequent IncreaseIndex must still not reissue an index some other branch
// of the merge already used, or §3 invariant 1 ("the highest index ever assigned along the currently active
// path") and invariant 4 ("re-visits bump the SSA index so the old value term is not lost") both break.
func (v *Variable) IncreaseIndex() *smt.Term {
	v.high++
	v.index = v.high
	return v.CurrentValue()
}

// SetIndex moves only the live pointer to i, used by snapshot/merge machinery (§9: "a snapshot is a plain
// mapping (decl-id -> index). Reset is a mass overwrite" of the pointer). It never lowers the high-water mark,
// so a later IncreaseIndex still allocates a fresh index above every index issued so far, even ones now
// unreachable from the restored pointer.
func (v *Variable) SetIndex(i int) {
	v.index = i
	if i > v.high {
		v.high = i
	}
}

// SetZero bumps the index and asserts, against store, that the new value is zero/false/an empty array, per the
// sort table of §4.2. It is used to initialize locals and return parameters on function entry (§4.7).
func (v *Variable) SetZero(store *Store) *smt.Term {
	term := v.IncreaseIndex()
	switch v.Sort {
	case smt.SortBool:
		store.AddAssertion(smt.Eq(term, smt.BoolConst(false)))
	case smt.SortInt:
		store.AddAssertion(smt.Eq(term, smt.IntConstInt64(0)))
	case smt.SortArray:
		// an array's "zero" is simply a fresh unconstrained array; without aliasing tracking there is nothing
		// more precise to assert, matching SetUnknown below.
	}
	return term
}

// SetUnknown bumps the index and, for integer sorts, asserts only the sort's bounds — the Havoc operation of the
// GLOSSARY ("bump the SSA index and attach only sort-bounds"). Boolean and array sorts get no constraint at all.
func (v *Variable) SetUnknown(store *Store) *smt.Term {
	term := v.IncreaseIndex()
	if v.Sort == smt.SortInt && v.Min != nil && v.Max != nil {
		store.AddAssertion(smt.Ge(term, smt.IntConst(v.Min)))
		store.AddAssertion(smt.Le(term, smt.IntConst(v.Max)))
	}
	return term
}

// newSymbolicVariable implements the factory of §4.2: it builds a Variable whose sort/bounds mirror typ, and
// reports unsupported = true (with a fallback integer symvar so traversal can continue) for any type the table
// does not model.
func newSymbolicVariable(typ *ast.TypeDescription, uniqueName string) (unsupported bool, v *Variable) {
	if typ == nil {
		return true, fallbackVariable(uniqueName)
	}

	switch typ.Kind {
	case ast.TypeKindBool:
		return false, &Variable{UniqueName: uniqueName, Sort: smt.SortBool}
	case ast.TypeKindInt, ast.TypeKindUint, ast.TypeKindAddress:
		min, max := utils.GetIntegerConstraints(typ.Signed(), typ.Width())
		return false, &Variable{UniqueName: uniqueName, Sort: smt.SortInt, Signed: typ.Signed(), Min: min, Max: max}
	case ast.TypeKindMapping:
		keySort := sortOf(typ.KeyType)
		valSort := sortOf(typ.ValueType)
		return false, &Variable{UniqueName: uniqueName, Sort: smt.SortArray, ArrayKeySort: keySort, ArrayValSort: valSort}
	default:
		return true, fallbackVariable(uniqueName)
	}
}

// sortOf maps a type to the SMT sort it would occupy as an array key/value, defaulting to SortInt for anything
// not itself bool/integer-like (mapping-of-mapping keys/values are out of scope per the declared Non-goals).
func sortOf(typ *ast.TypeDescription) smt.Sort {
	if typ != nil && typ.Kind == ast.TypeKindBool {
		return smt.SortBool
	}
	return smt.SortInt
}

func fallbackVariable(uniqueName string) *Variable {
	min, max := utils.GetIntegerConstraints(false, 256)
	return &Variable{UniqueName: uniqueName, Sort: smt.SortInt, Min: min, Max: max}
}
