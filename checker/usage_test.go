package checker

import (
	"testing"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/stretchr/testify/assert"
)

func declIDs(decls []*ast.VariableDeclaration) []int64 {
	ids := make([]int64, len(decls))
	for i, d := range decls {
		ids[i] = d.GetID()
	}
	return ids
}

func TestTouchedVariablesCollectsAssignmentTarget(t *testing.T) {
	x := newVarDecl("x", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, nil))
	idx := buildDeclIndex(unit)

	stmt := newExprStmt(newAssignment(newIdentifier(x), newLiteral("1", uintType(256)), uintType(256)))
	touched := touchedVariables(idx, stmt)

	assert.Equal(t, []int64{x.GetID()}, declIDs(touched))
}

func TestTouchedVariablesCollectsIncDecTarget(t *testing.T) {
	x := newVarDecl("x", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, nil))
	idx := buildDeclIndex(unit)

	inc := &ast.UnaryOperation{Operator: "++", SubExpression: newIdentifier(x), Prefix: true, TypeDesc: uintType(256)}
	inc.ID = 9001
	inc.Src = "0:0:0"

	touched := touchedVariables(idx, newExprStmt(inc))
	assert.Equal(t, []int64{x.GetID()}, declIDs(touched))
}

func TestTouchedVariablesExcludesForInitExpression(t *testing.T) {
	i := newVarDecl("i", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{i}, nil, nil))
	idx := buildDeclIndex(unit)

	initStmt := newExprStmt(newAssignment(newIdentifier(i), newLiteral("0", uintType(256)), uintType(256)))
	forStmt := &ast.ForStatement{InitExpr: initStmt, Body: newBlock()}
	forStmt.ID = 9002
	forStmt.Src = "0:0:0"

	// touchedVariables only walks the body/condition/loopExpr, never InitExpr (§4.5 step 2).
	touched := touchedVariables(idx, forStmt)
	assert.Empty(t, touched)
}

func TestTouchedVariablesInExpressionCoversLoopCondition(t *testing.T) {
	i := newVarDecl("i", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{i}, nil, nil))
	idx := buildDeclIndex(unit)

	cond := newBinary("<", newIdentifier(i), newLiteral("10", uintType(256)), uintType(256), boolType())
	touched := touchedVariablesInExpression(idx, cond)

	// a read-only occurrence is walked but never appended to touched, since touchedVariables only records writes.
	assert.Empty(t, touched)
}

func TestDedupDeclsRemovesDuplicatesRegardlessOfOrder(t *testing.T) {
	x := newVarDecl("x", uintType(256))
	y := newVarDecl("y", uintType(256))

	result := dedupDecls([]*ast.VariableDeclaration{x, y, x, nil, y})
	ids := declIDs(result)

	assert.ElementsMatch(t, []int64{x.GetID(), y.GetID()}, ids)
	assert.Len(t, result, 2)
}
