package checker

import (
	"testing"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeFunctionInitializesParametersUnknownAndReturnsZero(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)

	p := newVarDecl("p", uintType(256))
	r := newVarDecl("", uintType(256))
	fn := newFunction("f", []*ast.VariableDeclaration{p}, []*ast.VariableDeclaration{r}, newBlock())
	unit := newSourceUnit(fn)
	c := newTestChecker(sink, backend, unit)

	c.AnalyzeFunction(unit.Contracts[0], fn)

	assert.True(t, c.store.HasVariable(p))
	assert.True(t, c.store.HasVariable(r))
	assert.Equal(t, 0, len(c.returnParams)) // popped symmetrically by the deferred pop
}

func TestAnalyzeResetsStateBetweenRootFunctions(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Satisfiable)

	x := newVarDecl("x", uintType(256))
	loc := ast.SrcLocation{Start: 1, Length: 1}

	f1 := newFunction("f1", []*ast.VariableDeclaration{x}, nil, newBlock())
	f2 := newFunction("f2", nil, nil, newBlock())
	unit := newSourceUnit(f1, f2)
	c := newTestChecker(sink, backend, unit)

	c.store.EnterFunction(f1.GetID())
	c.checkCondition(smt.BoolConst(true), loc, "Assertion violation", "", nil)
	c.store.ExitFunction()
	assert.Len(t, sink.warnings, 1)

	// a fresh root function must not inherit the prior function's dedup table or declared variables.
	c.AnalyzeFunction(unit.Contracts[0], f2)
	assert.False(t, c.store.HasVariable(x))
}

func TestGoalsCheckedCountsAcrossRootFunctions(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)

	f1 := newFunction("f1", nil, nil, newBlock())
	f2 := newFunction("f2", nil, nil, newBlock())
	unit := newSourceUnit(f1, f2)
	c := newTestChecker(sink, backend, unit)

	loc := ast.SrcLocation{Start: 1, Length: 1}
	c.store.EnterFunction(f1.GetID())
	c.checkCondition(smt.BoolConst(true), loc, "Assertion violation", "", nil)
	c.store.ExitFunction()

	c.AnalyzeFunction(unit.Contracts[0], f2)
	c.store.EnterFunction(f2.GetID())
	c.checkCondition(smt.BoolConst(true), loc, "Assertion violation", "", nil)
	c.store.ExitFunction()

	assert.Equal(t, 2, c.GoalsChecked())
}

// TestAnalyzeFunctionHavocsStateVariablesWithBounds guards §3's Lifecycle rule ("havoc all state variables (new
// index + unknown value)"): a state variable must carry its declared integer bounds on entry to every root
// function, or an assertion that only fails for out-of-range values is spuriously provable-safe.
func TestAnalyzeFunctionHavocsStateVariablesWithBounds(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)

	s := newVarDecl("s", uintType(8))
	fn := newFunction("f", nil, nil, newBlock())
	nextTestID++
	contract := &ast.ContractDefinition{Name: "C", StateVars: []*ast.VariableDeclaration{s}, Functions: []*ast.FunctionDefinition{fn}}
	contract.ID = nextTestID
	nextTestID++
	unit := &ast.SourceUnit{Contracts: []*ast.ContractDefinition{contract}}
	unit.ID = nextTestID

	c := newTestChecker(sink, backend, unit)
	c.AnalyzeFunction(contract, fn)

	assert.True(t, c.store.HasVariable(s))
	assert.Equal(t, 1, c.store.Variable(s).Index())

	var sawLowerBound, sawUpperBound bool
	for _, term := range backend.asserted {
		switch term.String() {
		case "(>= s!1 0)":
			sawLowerBound = true
		case "(<= s!1 255)":
			sawUpperBound = true
		}
	}
	assert.True(t, sawLowerBound, "expected a lower-bound assertion on the havoced state variable")
	assert.True(t, sawUpperBound, "expected an upper-bound assertion on the havoced state variable")
}

func TestAnalyzeDrivesEveryFunctionWithABody(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)

	withBody := newFunction("withBody", nil, nil, newBlock())
	var noBody *ast.Block
	abstract := newFunction("abstract", nil, nil, noBody)
	unit := newSourceUnit(withBody, abstract)
	c := newTestChecker(sink, backend, unit)

	assert.NotPanics(t, func() { c.Analyze(unit) })
}
