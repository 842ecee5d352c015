package checker

import (
	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/ascendlabs/symcheck/symbolic"
)

// Checker ties components C through F together: it holds the symbolic value store and declaration index for a
// single SourceUnit's analysis, and the per-root-function dedup table and return-parameter stack the traverser and
// goal-check protocol share.
type Checker struct {
	sink  diagnostics.Sink
	store *symbolic.Store
	decls *declIndex
	dedup *diagnostics.Dedup
	fresh int

	returnParams []*ast.VariableDeclaration

	// doWhileCond carries the loop condition term out of a do-while body-visit closure for use by the merge
	// step in runLoopHavoc, since do-while (unlike while/for) never re-encodes the condition afterward.
	doWhileCond *smt.Term

	// goalsChecked counts every checkCondition call that reached the solver (i.e. was not suppressed by dedup),
	// across every root function analyzed by this Checker. Used for the end-of-run diagnostic summary.
	goalsChecked int
}

// GoalsChecked reports how many verification goals this Checker has dispatched to the solver so far.
func (c *Checker) GoalsChecked() int {
	return c.goalsChecked
}

// NewChecker constructs a Checker for analyzing unit's functions, reporting through sink and solving through
// backend (typically a *smt.Portfolio).
func NewChecker(sink diagnostics.Sink, backend smt.Backend, unit *ast.SourceUnit) *Checker {
	return &Checker{
		sink:  sink,
		store: symbolic.NewStore(backend),
		decls: buildDeclIndex(unit),
		dedup: diagnostics.NewDedup(),
	}
}

// Analyze runs the checker over every function in unit that has a body, resetting all per-root-function state
// between functions (§5: "the solver state ... is only reset() between root functions").
func (c *Checker) Analyze(unit *ast.SourceUnit) {
	for _, contract := range unit.Contracts {
		for _, fn := range contract.Functions {
			if fn.Body == nil {
				continue
			}
			c.AnalyzeFunction(contract, fn)
		}
	}
}

// AnalyzeFunction analyzes a single root function in isolation: fresh store state, fresh dedup table. Per §3's
// Lifecycle, every state variable of the enclosing contract is re-havoced first (new index + unknown value — it
// represents arbitrary inbound transaction state), then parameters are left unconstrained integers within their
// declared bounds (matching an external caller able to supply any value) and return parameters start at zero
// per §4.7's initialization rule extended to the outermost frame.
func (c *Checker) AnalyzeFunction(contract *ast.ContractDefinition, fn *ast.FunctionDefinition) {
	c.store.ResetForRootFunction()
	c.dedup.Reset()
	c.returnParams = nil

	c.store.EnterFunction(fn.GetID())
	defer c.store.ExitFunction()

	for _, s := range contract.StateVars {
		c.ensureDeclared(s)
		c.store.Variable(s).SetUnknown(c.store)
	}
	for _, p := range fn.Parameters {
		c.ensureDeclared(p)
		c.store.Variable(p).SetUnknown(c.store)
	}
	for _, r := range fn.ReturnParameters {
		c.ensureDeclared(r)
		c.store.Variable(r).SetZero(c.store)
	}

	if len(fn.ReturnParameters) == 1 {
		c.pushReturnParam(fn.ReturnParameters[0])
	} else {
		c.pushReturnParam(nil)
	}
	defer c.popReturnParam()

	c.visitStatement(fn.Body)
}

func (c *Checker) pushReturnParam(decl *ast.VariableDeclaration) {
	c.returnParams = append(c.returnParams, decl)
}

func (c *Checker) popReturnParam() {
	c.returnParams = c.returnParams[:len(c.returnParams)-1]
}

func (c *Checker) topReturnParam() *ast.VariableDeclaration {
	if len(c.returnParams) == 0 {
		return nil
	}
	return c.returnParams[len(c.returnParams)-1]
}
