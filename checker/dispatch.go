package checker

import (
	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/smt"
)

// abstractCallees names the opaque pure functions of §4.7 dispatched to an uninterpreted function rather than a
// warning. Any other callee that is neither a built-in handled below nor a resolvable user function gets the
// unsupported warning instead.
var abstractCallees = map[string]bool{
	"keccak256":  true,
	"ecrecover":  true,
	"sha256":     true,
	"ripemd160":  true,
	"blockhash":  true,
	"addmod":     true,
	"mulmod":     true,
}

// dispatchCall implements the function-call dispatch of §4.7.
func (c *Checker) dispatchCall(call *ast.FunctionCall) *smt.Term {
	callee, ok := call.Expression.(*ast.Identifier)
	if !ok || callee.Kind != ast.IdentifierKindFunction {
		diagnostics.Unsupported(c.sink, srcLoc(call), "a call whose callee is not a plain function identifier")
		return c.unknownFallback(call.TypeDesc)
	}

	switch callee.Name {
	case "assert":
		return c.dispatchAssert(call)
	case "require":
		return c.dispatchRequire(call)
	case "gasleft":
		return c.dispatchGasleft()
	}

	if fn, found := c.decls.Function(callee.ReferencedDeclaration); found {
		return c.inlineCall(call, fn)
	}

	if abstractCallees[callee.Name] {
		return c.dispatchAbstractCall(call, callee)
	}

	diagnostics.Unsupported(c.sink, srcLoc(call), "the call to "+callee.Name)
	return c.unknownFallback(call.TypeDesc)
}

func (c *Checker) dispatchAssert(call *ast.FunctionCall) *smt.Term {
	if len(call.Arguments) != 1 {
		diagnostics.Unsupported(c.sink, srcLoc(call), "assert() with other than one argument")
		return smt.BoolConst(true)
	}
	cond := c.encode(call.Arguments[0])
	c.checkCondition(smt.Not(cond), srcLoc(call), diagnostics.AssertionViolationDescription(), "", nil)
	c.store.AddAssertion(smt.Implies(c.store.PathCondition(), cond))
	return smt.BoolConst(true)
}

func (c *Checker) dispatchRequire(call *ast.FunctionCall) *smt.Term {
	if len(call.Arguments) == 0 {
		diagnostics.Unsupported(c.sink, srcLoc(call), "require() with no arguments")
		return smt.BoolConst(true)
	}
	cond := c.encode(call.Arguments[0])
	if c.store.InRootFunction() {
		c.checkBooleanNotConstant(call.Arguments[0], cond, srcLoc(call), diagnostics.PlainConditionTemplate)
	}
	c.store.AddAssertion(smt.Implies(c.store.PathCondition(), cond))
	return smt.BoolConst(true)
}

// dispatchGasleft implements §4.7's `gasleft()`: a fresh value every call, non-increasing across the
// transaction. The monotonicity assertion is skipped on the very first call (index 0 -> 1, nothing yet to be
// non-increasing relative to), matching the original's `index > 0` gate.
func (c *Checker) dispatchGasleft() *smt.Term {
	g := c.store.Global("gasleft", smt.SortInt)
	previousIndex := g.Index()
	previous := g.CurrentValue()
	current := g.SetUnknown(c.store)
	if previousIndex > 0 {
		c.store.AddAssertion(smt.Le(current, previous))
	}
	return current
}

// inlineCall implements the internal-call inlining protocol of §4.7.
func (c *Checker) inlineCall(call *ast.FunctionCall, fn *ast.FunctionDefinition) *smt.Term {
	if c.store.OnFunctionPath(fn.GetID()) {
		diagnostics.Unsupported(c.sink, srcLoc(call), "recursive calls")
		return c.unknownFallback(call.TypeDesc)
	}
	if fn.Body == nil {
		diagnostics.Unsupported(c.sink, srcLoc(call), "a call to a function with no implementation")
		return c.unknownFallback(call.TypeDesc)
	}
	if len(fn.ReturnParameters) > 1 {
		diagnostics.Unsupported(c.sink, srcLoc(call), "a call to a function with more than one return value")
		return c.unknownFallback(call.TypeDesc)
	}

	args := make([]*smt.Term, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		args = append(args, c.encode(a))
	}
	if len(args) != len(fn.Parameters) {
		diagnostics.Unsupported(c.sink, srcLoc(call), "a call whose argument count does not match the callee's parameters")
		return c.unknownFallback(call.TypeDesc)
	}

	c.store.EnterFunction(fn.GetID())
	defer c.store.ExitFunction()

	for i, p := range fn.Parameters {
		c.ensureDeclared(p)
		param := c.store.Variable(p)
		newTerm := param.IncreaseIndex()
		c.store.AddAssertion(smt.Eq(newTerm, args[i]))
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

	if len(fn.ReturnParameters) == 0 {
		return smt.BoolConst(true)
	}
	return c.store.Variable(fn.ReturnParameters[0]).CurrentValue()
}

// dispatchAbstractCall implements §4.7's opaque pure functions: an uninterpreted function keyed by callee identity,
// applied to the argument terms, so identical arguments yield identical results.
func (c *Checker) dispatchAbstractCall(call *ast.FunctionCall, callee *ast.Identifier) *smt.Term {
	args := make([]*smt.Term, 0, len(call.Arguments))
	for _, a := range call.Arguments {
		args = append(args, c.encode(a))
	}
	result := smt.Apply(callee.Name, sortFor(call.TypeDesc), args...)
	c.store.RecordUninterpreted(exprText(call.Expression)+"(...)", result)
	return result
}
