package checker

import (
	"testing"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/stretchr/testify/assert"
)

func TestVisitIfMergesBothBranches(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	cond := newVarDecl("cond", boolType())
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x, cond}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)
	c.ensureDeclared(cond)

	trueBody := newExprStmt(newAssignment(newIdentifier(x), newLiteral("1", uintType(256)), uintType(256)))
	falseBody := newExprStmt(newAssignment(newIdentifier(x), newLiteral("2", uintType(256)), uintType(256)))
	ifStmt := &ast.IfStatement{Condition: newIdentifier(cond), TrueBody: trueBody, FalseBody: falseBody}
	ifStmt.ID = 6001
	ifStmt.Src = "0:0:0"

	before := c.store.Variable(x).Index()
	c.visitIf(ifStmt)
	after := c.store.Variable(x).Index()

	// true/false branches each bump x once, then the merge step bumps it once more.
	assert.Greater(t, after, before)
}

func TestVisitIfWithNoElseKeepsPreValueOnFalsePath(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	cond := newVarDecl("cond", boolType())
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x, cond}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)
	c.ensureDeclared(cond)

	trueBody := newExprStmt(newAssignment(newIdentifier(x), newLiteral("1", uintType(256)), uintType(256)))
	ifStmt := &ast.IfStatement{Condition: newIdentifier(cond), TrueBody: trueBody, FalseBody: nil}
	ifStmt.ID = 6002
	ifStmt.Src = "0:0:0"

	c.visitIf(ifStmt)
	// no panic, and x's merged value is some ite(cond, 1, preValue) term — just check it encodes without error.
	assert.NotNil(t, c.store.Variable(x).CurrentValue())
}

func TestVisitWhileHavocsTouchedVariables(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	cond := newVarDecl("cond", boolType())
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x, cond}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)
	c.ensureDeclared(cond)

	body := newBlock(newExprStmt(newAssignment(newIdentifier(x), newLiteral("1", uintType(256)), uintType(256))))
	whileStmt := &ast.WhileStatement{Condition: newIdentifier(cond), Body: body}
	whileStmt.ID = 6003
	whileStmt.Src = "0:0:0"

	before := c.store.Variable(x).Index()
	c.visitWhile(whileStmt)
	after := c.store.Variable(x).Index()

	assert.Greater(t, after, before)
	assert.True(t, c.store.LoopExecutionHappened)
}

func TestVisitDoWhileRunsBodyBeforeCondition(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	cond := newVarDecl("cond", boolType())
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x, cond}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)
	c.ensureDeclared(cond)

	body := newBlock(newExprStmt(newAssignment(newIdentifier(x), newLiteral("1", uintType(256)), uintType(256))))
	doWhile := &ast.DoWhileStatement{Condition: newIdentifier(cond), Body: body}
	doWhile.ID = 6004
	doWhile.Src = "0:0:0"

	c.visitDoWhile(doWhile)
	assert.True(t, c.store.LoopExecutionHappened)
}

func TestVisitForExcludesInitFromHavocSet(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	i := newVarDecl("i", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{i}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(i)

	initStmt := newExprStmt(newAssignment(newIdentifier(i), newLiteral("0", uintType(256)), uintType(256)))
	cond := newBinary("<", newIdentifier(i), newLiteral("10", uintType(256)), uintType(256), boolType())
	loopExpr := newExprStmt(&ast.UnaryOperation{Operator: "++", SubExpression: newIdentifier(i), Prefix: true, TypeDesc: uintType(256)})
	loopExpr.Expr.(*ast.UnaryOperation).ID = 6010
	loopExpr.Expr.(*ast.UnaryOperation).Src = "0:0:0"

	forStmt := &ast.ForStatement{InitExpr: initStmt, Condition: cond, LoopExpr: loopExpr, Body: newBlock()}
	forStmt.ID = 6005
	forStmt.Src = "0:0:0"

	c.visitFor(forStmt)
	assert.True(t, c.store.LoopExecutionHappened)
}

func TestVisitReturnAssignsReturnParameter(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	ret := newVarDecl("", uintType(256))
	unit := newSourceUnit(newFunction("f", nil, []*ast.VariableDeclaration{ret}, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(ret)
	c.pushReturnParam(ret)

	before := c.store.Variable(ret).Index()
	retStmt := &ast.ReturnStatement{Expr: newLiteral("5", uintType(256))}
	retStmt.ID = 6006
	retStmt.Src = "0:0:0"
	c.visitReturn(retStmt)

	assert.Greater(t, c.store.Variable(ret).Index(), before)
}

func TestVisitReturnWithoutReturnParamWarnsUnsupported(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.pushReturnParam(nil)

	retStmt := &ast.ReturnStatement{Expr: newLiteral("5", uintType(256))}
	retStmt.ID = 6007
	retStmt.Src = "0:0:0"
	c.visitReturn(retStmt)

	assert.Len(t, sink.warnings, 1)
	assert.Contains(t, sink.warnings[0], "[unsupported]")
}

func TestVisitStatementUnsupportedStatementWarns(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)

	stmt := &ast.UnsupportedStatement{OriginalNodeType: "InlineAssembly"}
	stmt.ID = 6008
	stmt.Src = "0:0:0"
	c.visitStatement(stmt)

	assert.Len(t, sink.warnings, 1)
	assert.Contains(t, sink.warnings[0], "InlineAssembly")
}
