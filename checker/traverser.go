package checker

import (
	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/ascendlabs/symcheck/symbolic"
	"golang.org/x/exp/slices"
)

// visitStatement implements component E, the statement traverser of §4.5, dispatching on the node's Go type.
func (c *Checker) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.Block:
		for _, inner := range s.Statements {
			c.visitStatement(inner)
		}
	case *ast.ExpressionStatement:
		c.encode(s.Expr)
	case *ast.VariableDeclarationStatement:
		c.visitVariableDeclarationStatement(s)
	case *ast.IfStatement:
		c.visitIf(s)
	case *ast.WhileStatement:
		c.visitWhile(s)
	case *ast.DoWhileStatement:
		c.visitDoWhile(s)
	case *ast.ForStatement:
		c.visitFor(s)
	case *ast.ReturnStatement:
		c.visitReturn(s)
	case *ast.UnsupportedStatement:
		diagnostics.Unsupported(c.sink, srcLoc(s), "the "+s.OriginalNodeType+" statement form")
	default:
		diagnostics.Unsupported(c.sink, ast.SrcLocation{Start: -1}, "an unrecognized statement form")
	}
}

func (c *Checker) visitVariableDeclarationStatement(s *ast.VariableDeclarationStatement) {
	if len(s.Declarations) != 1 || s.Declarations[0] == nil {
		diagnostics.Unsupported(c.sink, srcLoc(s), "a multi-declarator variable declaration statement")
		return
	}
	decl := s.Declarations[0]
	c.ensureDeclared(decl)
	if s.InitialValue == nil {
		c.store.Variable(decl).SetZero(c.store)
		return
	}
	value := c.encode(s.InitialValue)
	c.assign(decl, value, srcLoc(s))
}

// visitIf implements §4.5's if-statement: condition, optional root-only tautology check, branch-and-merge.
func (c *Checker) visitIf(s *ast.IfStatement) {
	cond := c.encode(s.Condition)
	if c.store.InRootFunction() {
		c.checkBooleanNotConstant(s.Condition, cond, srcLoc(s), diagnostics.PlainConditionTemplate)
	}

	touched := dedupDecls(append(
		touchedVariables(c.decls, s.TrueBody),
		touchedVariables(c.decls, s.FalseBody)...,
	))
	for _, decl := range touched {
		c.ensureDeclared(decl)
	}

	pre := c.store.Snapshot()

	c.store.PushPathCondition(cond)
	c.visitStatement(s.TrueBody)
	c.store.PopPathCondition()
	trueExit := c.store.Snapshot()

	c.store.RestoreSnapshot(pre)

	var falseExit symbolic.Snapshot
	if s.FalseBody != nil {
		c.store.PushPathCondition(smt.Not(cond))
		c.visitStatement(s.FalseBody)
		c.store.PopPathCondition()
		falseExit = c.store.Snapshot()
		c.store.RestoreSnapshot(pre)
	} else {
		falseExit = pre
	}

	c.mergeBranches(touched, cond, trueExit, falseExit)
}

// mergeBranches implements §4.5's merge step: for each touched variable, bump its index and assert
// `v_new == ite(cond, v_trueExit, v_falseExit)`.
func (c *Checker) mergeBranches(touched []*ast.VariableDeclaration, cond *smt.Term, trueExit, falseExit symbolic.Snapshot) {
	for _, decl := range touched {
		v := c.store.Variable(decl)
		thenTerm := v.ValueAtIndex(trueExit[decl.GetID()])
		elseTerm := v.ValueAtIndex(falseExit[decl.GetID()])
		newTerm := v.IncreaseIndex()
		c.store.AddAssertion(smt.Eq(newTerm, smt.ITE(cond, thenTerm, elseTerm)))
	}
}

// visitWhile implements §4.5's one-shot while-loop havoc abstraction. Since this is not a do-while, the
// condition is re-encoded against the restored pre-loop indices before the merge (step 5).
func (c *Checker) visitWhile(s *ast.WhileStatement) {
	touched := dedupDecls(touchedVariables(c.decls, s.Body))
	c.runLoopHavoc(touched, func() symbolic.Snapshot {
		cond := c.encode(s.Condition)
		if c.store.InRootFunction() {
			c.checkBooleanNotConstant(s.Condition, cond, srcLoc(s), diagnostics.WhileConditionTemplate)
		}
		c.store.PushPathCondition(cond)
		c.visitStatement(s.Body)
		c.store.PopPathCondition()
		return c.store.Snapshot()
	}, func() *smt.Term { return c.encode(s.Condition) })
}

// visitDoWhile implements §4.5's do-while: the body runs unconditionally before the condition is evaluated at
// all, and the condition is only ever evaluated once — against the post-body (havoced-and-run) indices — so
// there is no outer-scope re-evaluation step.
func (c *Checker) visitDoWhile(s *ast.DoWhileStatement) {
	touched := dedupDecls(touchedVariables(c.decls, s.Body))
	c.runLoopHavoc(touched, func() symbolic.Snapshot {
		c.visitStatement(s.Body)
		cond := c.encode(s.Condition)
		if c.store.InRootFunction() {
			c.checkBooleanNotConstant(s.Condition, cond, srcLoc(s), diagnostics.DoWhileConditionTemplate)
		}
		c.doWhileCond = cond
		return c.store.Snapshot()
	}, nil)
}

// visitFor implements §4.5's for-loop: the init expression runs once, unconditionally, before the havoc step,
// and (being a non-do-while loop) the condition is re-encoded against the restored pre-loop indices for the merge.
func (c *Checker) visitFor(s *ast.ForStatement) {
	c.visitStatement(s.InitExpr)

	touched := dedupDecls(touchedVariables(c.decls, s.Body))
	if s.Condition != nil {
		touched = dedupDecls(append(touched, touchedVariablesInExpression(c.decls, s.Condition)...))
	}
	if s.LoopExpr != nil {
		touched = dedupDecls(append(touched, touchedVariablesInExpression(c.decls, s.LoopExpr.Expr)...))
	}

	reEncodeCond := func() *smt.Term { return smt.BoolConst(true) }
	if s.Condition != nil {
		reEncodeCond = func() *smt.Term { return c.encode(s.Condition) }
	}

	c.runLoopHavoc(touched, func() symbolic.Snapshot {
		var cond *smt.Term
		if s.Condition != nil {
			cond = c.encode(s.Condition)
			if c.store.InRootFunction() {
				c.checkBooleanNotConstant(s.Condition, cond, srcLoc(s), diagnostics.ForConditionTemplate)
			}
		} else {
			cond = smt.BoolConst(true)
		}
		c.store.PushPathCondition(cond)
		c.visitStatement(s.Body)
		if s.LoopExpr != nil {
			c.encode(s.LoopExpr.Expr)
		}
		c.store.PopPathCondition()
		return c.store.Snapshot()
	}, reEncodeCond)
}

// runLoopHavoc implements steps 1-7 of §4.5's loop abstraction shared by while/do-while/for: snapshot, havoc the
// touched set, run the caller's single body-visit, reset to the pre-loop snapshot, and merge. For while/for,
// reEncodeCond re-encodes the loop condition against the restored (pre-loop) indices per step 5 — the term used
// in the merge is then the condition "as seen on loop entry", not the one evaluated against the havoced values
// during the body visit. reEncodeCond is nil for do-while, whose condition is only ever evaluated once.
func (c *Checker) runLoopHavoc(touched []*ast.VariableDeclaration, runBody func() symbolic.Snapshot, reEncodeCond func() *smt.Term) {
	for _, decl := range touched {
		c.ensureDeclared(decl)
	}

	pre := c.store.Snapshot()
	for _, decl := range touched {
		c.store.Variable(decl).SetUnknown(c.store)
	}

	c.doWhileCond = nil
	post := runBody()

	c.store.RestoreSnapshot(pre)

	var mergeCond *smt.Term
	if reEncodeCond != nil {
		mergeCond = reEncodeCond()
	} else {
		mergeCond = c.doWhileCond
	}

	c.mergeBranches(touched, mergeCond, post, pre)
	c.store.LoopExecutionHappened = true
}

// visitReturn implements §4.5's return statement: single-return-param functions only.
func (c *Checker) visitReturn(s *ast.ReturnStatement) {
	if s.Expr == nil {
		return
	}
	decl := c.topReturnParam()
	if decl == nil {
		diagnostics.Unsupported(c.sink, srcLoc(s), "a return statement in a function without exactly one return parameter")
		return
	}
	value := c.encode(s.Expr)
	v := c.store.Variable(decl)
	newTerm := v.IncreaseIndex()
	c.store.AddAssertion(smt.Eq(newTerm, value))
}

// dedupDecls removes duplicate declarations from touched (by node identity) per §4.3's "callers deduplicate"
// contract. Merge order doesn't matter (mergeBranches treats each declaration independently), so this sorts by
// node ID and compacts rather than tracking a seen-set by hand.
func dedupDecls(touched []*ast.VariableDeclaration) []*ast.VariableDeclaration {
	result := make([]*ast.VariableDeclaration, 0, len(touched))
	for _, decl := range touched {
		if decl != nil {
			result = append(result, decl)
		}
	}
	slices.SortFunc(result, func(a, b *ast.VariableDeclaration) int {
		switch {
		case a.GetID() < b.GetID():
			return -1
		case a.GetID() > b.GetID():
			return 1
		default:
			return 0
		}
	})
	return slices.CompactFunc(result, func(a, b *ast.VariableDeclaration) bool { return a.GetID() == b.GetID() })
}
