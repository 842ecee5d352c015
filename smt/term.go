package smt

import (
	"fmt"
	"math/big"
	"strings"
)

// Sort is one of the three SMT theories this checker's formulas live in (§1): integers, booleans, and extensional
// arrays. All integer arithmetic is unbounded (§4.4) — signedness and bit width are a property of the Source type
// a value came from, tracked by the symbolic value store, not of the SMT term itself.
type Sort int

const (
	SortInt Sort = iota
	SortBool
	SortArray
)

// op identifies the operator at a Term's root.
type op int

const (
	opIntConst op = iota
	opBoolConst
	opVar
	opITE
	opEq
	opNe
	opLt
	opLe
	opGt
	opGe
	opAdd
	opSub
	opMul
	opDiv // SMT-LIB integer division, rounding toward -infinity
	opMod
	opAnd
	opOr
	opNot
	opImplies
	opSelect
	opStore
	opArrayConst // an unconstrained array-sorted symbol
	opApply      // uninterpreted function application
)

// Term is a node in a small formula/expression tree built by the expression encoder (component D) and consumed by
// a solver Backend. It is immutable once built; all constructors return a fresh *Term.
type Term struct {
	kind op
	args []*Term

	intVal  *big.Int
	boolVal bool
	name    string // variable, array, or uninterpreted-function identifier
	sort    Sort

	// domain/codomain describe the sort of an array-sorted term (opVar/opArrayConst/opStore/opSelect's base).
	domain, codomain Sort
}

// Sort reports the SMT sort this term evaluates to.
func (t *Term) Sort() Sort { return t.sort }

// IntConst builds an integer literal term.
func IntConst(v *big.Int) *Term { return &Term{kind: opIntConst, intVal: new(big.Int).Set(v), sort: SortInt} }

// IntConstInt64 is a convenience wrapper around IntConst for small literals.
func IntConstInt64(v int64) *Term { return IntConst(big.NewInt(v)) }

// BoolConst builds a boolean literal term.
func BoolConst(v bool) *Term { return &Term{kind: opBoolConst, boolVal: v, sort: SortBool} }

// Var builds a free integer- or boolean-sorted variable term, named name.
func Var(name string, sort Sort) *Term { return &Term{kind: opVar, name: name, sort: sort} }

// ArrayVar builds a free array-sorted variable term mapping domain to codomain.
func ArrayVar(name string, domain, codomain Sort) *Term {
	return &Term{kind: opVar, name: name, sort: SortArray, domain: domain, codomain: codomain}
}

// UnconstrainedArray builds a fresh, wholly unconstrained array-sorted term — used by setUnknown() on an array
// sort, which per §4.2 adds no constraint at all.
func UnconstrainedArray(name string, domain, codomain Sort) *Term {
	return &Term{kind: opArrayConst, name: name, sort: SortArray, domain: domain, codomain: codomain}
}

func bin(k op, sort Sort, a, b *Term) *Term { return &Term{kind: k, args: []*Term{a, b}, sort: sort} }

func ITE(cond, then, els *Term) *Term { return &Term{kind: opITE, args: []*Term{cond, then, els}, sort: then.sort} }
func Eq(a, b *Term) *Term             { return bin(opEq, SortBool, a, b) }
func Ne(a, b *Term) *Term             { return bin(opNe, SortBool, a, b) }
func Lt(a, b *Term) *Term             { return bin(opLt, SortBool, a, b) }
func Le(a, b *Term) *Term             { return bin(opLe, SortBool, a, b) }
func Gt(a, b *Term) *Term             { return bin(opGt, SortBool, a, b) }
func Ge(a, b *Term) *Term             { return bin(opGe, SortBool, a, b) }
func Add(a, b *Term) *Term            { return bin(opAdd, SortInt, a, b) }
func Sub(a, b *Term) *Term            { return bin(opSub, SortInt, a, b) }
func Mul(a, b *Term) *Term            { return bin(opMul, SortInt, a, b) }
func Div(a, b *Term) *Term            { return bin(opDiv, SortInt, a, b) }
func Mod(a, b *Term) *Term            { return bin(opMod, SortInt, a, b) }
func Not(a *Term) *Term               { return &Term{kind: opNot, args: []*Term{a}, sort: SortBool} }
func Implies(a, b *Term) *Term        { return bin(opImplies, SortBool, a, b) }

// And builds the conjunction of terms, collapsing the empty conjunction to true.
func And(terms ...*Term) *Term {
	if len(terms) == 0 {
		return BoolConst(true)
	}
	result := terms[0]
	for _, t := range terms[1:] {
		result = bin(opAnd, SortBool, result, t)
	}
	return result
}

// Or builds the disjunction of terms, collapsing the empty disjunction to false.
func Or(terms ...*Term) *Term {
	if len(terms) == 0 {
		return BoolConst(false)
	}
	result := terms[0]
	for _, t := range terms[1:] {
		result = bin(opOr, SortBool, result, t)
	}
	return result
}

// Select builds `arr[index]` for an array-sorted term arr.
func Select(arr, index *Term) *Term {
	return &Term{kind: opSelect, args: []*Term{arr, index}, sort: arr.codomain}
}

// Store builds the array resulting from writing value at index into arr.
func Store(arr, index, value *Term) *Term {
	return &Term{kind: opStore, args: []*Term{arr, index, value}, sort: SortArray, domain: arr.domain, codomain: arr.codomain}
}

// Apply builds an application of the uninterpreted function named fn to args, with result sort resultSort.
func Apply(fn string, resultSort Sort, args ...*Term) *Term {
	return &Term{kind: opApply, name: fn, args: args, sort: resultSort}
}

// String renders the term as an SMT-LIB2 S-expression, used both to build queries for the process-oracle backend
// and to compute the canned-response fingerprint for a query.
func (t *Term) String() string {
	if t == nil {
		return "true"
	}
	switch t.kind {
	case opIntConst:
		if t.intVal.Sign() < 0 {
			return fmt.Sprintf("(- %s)", new(big.Int).Neg(t.intVal).String())
		}
		return t.intVal.String()
	case opBoolConst:
		if t.boolVal {
			return "true"
		}
		return "false"
	case opVar, opArrayConst:
		return t.name
	case opITE:
		return sexpr("ite", t.args...)
	case opEq:
		return sexpr("=", t.args...)
	case opNe:
		return sexpr("distinct", t.args...)
	case opLt:
		return sexpr("<", t.args...)
	case opLe:
		return sexpr("<=", t.args...)
	case opGt:
		return sexpr(">", t.args...)
	case opGe:
		return sexpr(">=", t.args...)
	case opAdd:
		return sexpr("+", t.args...)
	case opSub:
		return sexpr("-", t.args...)
	case opMul:
		return sexpr("*", t.args...)
	case opDiv:
		return sexpr("div", t.args...)
	case opMod:
		return sexpr("mod", t.args...)
	case opAnd:
		return sexpr("and", t.args...)
	case opOr:
		return sexpr("or", t.args...)
	case opNot:
		return sexpr("not", t.args...)
	case opImplies:
		return sexpr("=>", t.args...)
	case opSelect:
		return sexpr("select", t.args...)
	case opStore:
		return sexpr("store", t.args...)
	case opApply:
		if len(t.args) == 0 {
			return t.name
		}
		return sexpr(t.name, t.args...)
	default:
		return "true"
	}
}

func sexpr(op string, args ...*Term) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	for _, a := range args {
		parts = append(parts, a.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}
