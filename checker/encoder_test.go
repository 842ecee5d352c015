package checker

import (
	"testing"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/stretchr/testify/assert"
)

func TestEncodeLiteralNumber(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)

	term := c.encode(newLiteral("42", uintType(256)))
	assert.Equal(t, "42", term.String())
}

func TestEncodeLiteralBool(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)

	term := c.encode(newLiteral("true", boolType()))
	assert.Equal(t, "true", term.String())
}

func TestEncodeIdentifierReadsCurrentValue(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)

	term := c.encode(newIdentifier(x))
	assert.Equal(t, c.store.Variable(x).CurrentValue().String(), term.String())
}

func TestEncodeBinaryAddEmitsOverflowUnderflowGoals(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(8))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)

	add := newBinary("+", newIdentifier(x), newLiteral("1", uintType(8)), uintType(8), uintType(8))
	c.encode(add)

	assert.Equal(t, 2, backend.checkCount) // underflow probe + overflow probe
}

func TestEncodeDivisionChecksZeroDivisorFirst(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Satisfiable)
	x := newVarDecl("x", uintType(256))
	y := newVarDecl("y", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x, y}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)
	c.ensureDeclared(y)

	div := newBinary("/", newIdentifier(x), newIdentifier(y), uintType(256), uintType(256))
	c.encode(div)

	assert.Contains(t, sink.warnings[0], "Division by zero")
}

func TestEncodeUnaryNot(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)

	not := &ast.UnaryOperation{Operator: "!", SubExpression: newLiteral("true", boolType()), TypeDesc: boolType()}
	not.ID = 7001
	not.Src = "0:0:0"

	term := c.encode(not)
	assert.Equal(t, "(not true)", term.String())
}

func TestEncodeIncDecPostfixReturnsOldValue(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)
	x.TypeDesc = uintType(256)

	old := c.store.Variable(x).CurrentValue().String()
	inc := &ast.UnaryOperation{Operator: "++", SubExpression: newIdentifier(x), Prefix: false, TypeDesc: uintType(256)}
	inc.ID = 7002
	inc.Src = "0:0:0"

	result := c.encode(inc)
	assert.Equal(t, old, result.String())
}

func TestEncodeAssignmentToIdentifier(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)

	before := c.store.Variable(x).Index()
	c.encode(newAssignment(newIdentifier(x), newLiteral("9", uintType(256)), uintType(256)))
	assert.Greater(t, c.store.Variable(x).Index(), before)
}

func TestEncodeAssignmentCompoundOperatorUnsupported(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	x := newVarDecl("x", uintType(256))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{x}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(x)

	assign := newAssignment(newIdentifier(x), newLiteral("1", uintType(256)), uintType(256))
	assign.Operator = "+="
	c.encode(assign)

	assert.Len(t, sink.warnings, 1)
	assert.Contains(t, sink.warnings[0], "[unsupported]")
}

func TestEncodeTupleSingleElementPassesThrough(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)

	tup := &ast.TupleExpression{Components: []ast.Expression{newLiteral("1", uintType(256))}, TypeDesc: uintType(256)}
	tup.ID = 7003
	tup.Src = "0:0:0"

	term := c.encode(tup)
	assert.Equal(t, "1", term.String())
}

func TestEncodeTupleMultiElementUnsupported(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	unit := newSourceUnit(newFunction("f", nil, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)

	tup := &ast.TupleExpression{Components: []ast.Expression{
		newLiteral("1", uintType(256)),
		newLiteral("2", uintType(256)),
	}, TypeDesc: uintType(256)}
	tup.ID = 7004
	tup.Src = "0:0:0"

	c.encode(tup)
	assert.Len(t, sink.warnings, 1)
	assert.Contains(t, sink.warnings[0], "[unsupported]")
}

func TestEncodeIndexAccessRecordsUninterpretedTerm(t *testing.T) {
	sink := &recordingSink{}
	backend := newFakeBackend(smt.Unsatisfiable)
	m := newVarDecl("balances", mappingType(uintType(256), uintType(256)))
	unit := newSourceUnit(newFunction("f", []*ast.VariableDeclaration{m}, nil, newBlock()))
	c := newTestChecker(sink, backend, unit)
	c.store.EnterFunction(1)
	c.ensureDeclared(m)

	ix := &ast.IndexAccess{BaseExpression: newIdentifier(m), IndexExpression: newLiteral("1", uintType(256)), TypeDesc: uintType(256)}
	ix.ID = 7005
	ix.Src = "0:0:0"

	c.encode(ix)
	found := false
	for _, nt := range c.store.UninterpretedTerms() {
		if nt.Name == "balances[1]" {
			found = true
		}
	}
	assert.True(t, found)
}
