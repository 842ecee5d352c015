package checker

import (
	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/smt"
)

// fakeBackend is an smt.Backend test double: every Check call returns the same preconfigured result/model
// regardless of what was asserted (or, while queued is non-empty, the next queued result in order), and
// push/pop/assert calls are merely recorded for inspection.
type fakeBackend struct {
	result     smt.CheckResult
	queued     []smt.CheckResult
	model      []string
	pushDepth  int
	checkCount int
	asserted   []*smt.Term
}

func newFakeBackend(result smt.CheckResult, model ...string) *fakeBackend {
	return &fakeBackend{result: result, model: model}
}

func (f *fakeBackend) Name() string { return "fake" }
func (f *fakeBackend) Reset()       { f.pushDepth = 0; f.asserted = nil }
func (f *fakeBackend) Push()        { f.pushDepth++ }
func (f *fakeBackend) Pop() {
	if f.pushDepth == 0 {
		panic("fakeBackend: Pop without matching Push")
	}
	f.pushDepth--
}
func (f *fakeBackend) AddAssertion(t *smt.Term) { f.asserted = append(f.asserted, t) }
func (f *fakeBackend) Check(evalTerms []*smt.Term) (smt.CheckResult, []string, error) {
	f.checkCount++
	model := make([]string, len(evalTerms))
	for i := range evalTerms {
		if i < len(f.model) {
			model[i] = f.model[i]
		} else {
			model[i] = "0"
		}
	}
	if len(f.queued) > 0 {
		next := f.queued[0]
		f.queued = f.queued[1:]
		return next, model, nil
	}
	return f.result, model, nil
}

// recordingSink collects every warning emitted during a test, in emission order.
type recordingSink struct {
	warnings []string
}

func (r *recordingSink) Warning(loc ast.SrcLocation, message string, secondaryLoc *ast.SrcLocation) {
	r.warnings = append(r.warnings, message)
}

var _ diagnostics.Sink = (*recordingSink)(nil)

func uintType(width int) *ast.TypeDescription {
	return &ast.TypeDescription{Kind: ast.TypeKindUint, BitWidth: width}
}

func intType(width int) *ast.TypeDescription {
	return &ast.TypeDescription{Kind: ast.TypeKindInt, BitWidth: width}
}

func boolType() *ast.TypeDescription {
	return &ast.TypeDescription{Kind: ast.TypeKindBool}
}

func mappingType(key, val *ast.TypeDescription) *ast.TypeDescription {
	return &ast.TypeDescription{Kind: ast.TypeKindMapping, KeyType: key, ValueType: val}
}

var nextTestID int64

func newVarDecl(name string, typ *ast.TypeDescription) *ast.VariableDeclaration {
	nextTestID++
	v := &ast.VariableDeclaration{Name: name, TypeDesc: typ}
	v.ID = nextTestID
	v.Src = "0:0:0"
	return v
}

func newIdentifier(decl *ast.VariableDeclaration) *ast.Identifier {
	nextTestID++
	id := &ast.Identifier{Name: decl.Name, Kind: ast.IdentifierKindVariable, ReferencedDeclaration: decl.GetID(), TypeDesc: decl.TypeDesc}
	id.ID = nextTestID
	id.Src = "0:0:0"
	return id
}

func newLiteral(value string, typ *ast.TypeDescription) *ast.Literal {
	nextTestID++
	kind := "number"
	if typ != nil && typ.Kind == ast.TypeKindBool {
		kind = "bool"
	}
	l := &ast.Literal{Kind: kind, Value: value, TypeDesc: typ}
	l.ID = nextTestID
	l.Src = "0:0:0"
	return l
}

func newBinary(op string, left, right ast.Expression, common, result *ast.TypeDescription) *ast.BinaryOperation {
	nextTestID++
	b := &ast.BinaryOperation{Operator: op, LeftExpression: left, RightExpression: right, CommonType: common, TypeDesc: result}
	b.ID = nextTestID
	b.Src = "0:0:0"
	return b
}

func newAssignment(lhs, rhs ast.Expression, typ *ast.TypeDescription) *ast.Assignment {
	nextTestID++
	a := &ast.Assignment{Operator: "=", LeftHandSide: lhs, RightHandSide: rhs, TypeDesc: typ}
	a.ID = nextTestID
	a.Src = "0:0:0"
	return a
}

func newExprStmt(expr ast.Expression) *ast.ExpressionStatement {
	nextTestID++
	s := &ast.ExpressionStatement{Expr: expr}
	s.ID = nextTestID
	s.Src = "0:0:0"
	return s
}

func newBlock(stmts ...ast.Statement) *ast.Block {
	nextTestID++
	b := &ast.Block{Statements: stmts}
	b.ID = nextTestID
	b.Src = "0:0:0"
	return b
}

// newFunction builds a minimal FunctionDefinition for root-function-level tests.
func newFunction(name string, params, returns []*ast.VariableDeclaration, body *ast.Block) *ast.FunctionDefinition {
	nextTestID++
	fn := &ast.FunctionDefinition{Name: name, Parameters: params, ReturnParameters: returns, Body: body}
	fn.ID = nextTestID
	fn.Src = "0:0:0"
	return fn
}

func newSourceUnit(fns ...*ast.FunctionDefinition) *ast.SourceUnit {
	nextTestID++
	contract := &ast.ContractDefinition{Name: "C", Functions: fns}
	contract.ID = nextTestID
	nextTestID++
	u := &ast.SourceUnit{Contracts: []*ast.ContractDefinition{contract}}
	u.ID = nextTestID
	return u
}

// newTestChecker builds a Checker wired to backend and sink, analyzing a throwaway single-function unit so the
// declIndex covers whatever decls the caller later references.
func newTestChecker(sink diagnostics.Sink, backend smt.Backend, unit *ast.SourceUnit) *Checker {
	return NewChecker(sink, backend, unit)
}
