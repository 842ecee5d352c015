package checker

import (
	"fmt"
	"math/big"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/smt"
)

// encode implements component D: it turns a single expression node into an SMT term, dispatching on the node's
// Go type the way §4.4 dispatches on expression form. Anything it cannot encode emits an unsupported warning and
// falls back to a fresh unknown symbolic value, never a zero value, so downstream comparisons do not spuriously
// "prove" anything.
func (c *Checker) encode(expr ast.Expression) *smt.Term {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.encodeLiteral(e)
	case *ast.Identifier:
		return c.encodeIdentifier(e)
	case *ast.MemberAccess:
		return c.encodeMemberAccess(e)
	case *ast.UnaryOperation:
		return c.encodeUnary(e)
	case *ast.BinaryOperation:
		return c.encodeBinary(e)
	case *ast.Assignment:
		return c.encodeAssignment(e)
	case *ast.IndexAccess:
		return c.encodeIndexAccess(e)
	case *ast.FunctionCall:
		return c.dispatchCall(e)
	case *ast.TupleExpression:
		return c.encodeTuple(e)
	case *ast.UnsupportedExpression:
		diagnostics.Unsupported(c.sink, srcLoc(e), "the "+e.OriginalNodeType+" expression form")
		return c.unknownFallback(e.GetTypeDescriptions())
	default:
		diagnostics.Unsupported(c.sink, ast.SrcLocation{Start: -1}, fmt.Sprintf("the %T expression form", expr))
		return c.unknownFallback(nil)
	}
}

func (c *Checker) encodeLiteral(l *ast.Literal) *smt.Term {
	switch l.Kind {
	case "bool":
		return smt.BoolConst(l.Value == "true")
	case "number":
		n, ok := new(big.Int).SetString(l.Value, 10)
		if !ok {
			diagnostics.Unsupported(c.sink, srcLoc(l), "a non-decimal numeric literal")
			return c.unknownFallback(l.TypeDesc)
		}
		return smt.IntConst(n)
	default:
		diagnostics.Unsupported(c.sink, srcLoc(l), "a "+l.Kind+" literal")
		return c.unknownFallback(l.TypeDesc)
	}
}

func (c *Checker) encodeIdentifier(id *ast.Identifier) *smt.Term {
	switch id.Kind {
	case ast.IdentifierKindVariable:
		decl := c.decls.Variable(id.ReferencedDeclaration)
		c.ensureDeclared(decl)
		return c.store.Variable(decl).CurrentValue()
	case ast.IdentifierKindGlobal:
		g := c.store.Global(id.Name, sortFor(id.TypeDesc))
		return g.CurrentValue()
	case ast.IdentifierKindFunction:
		key := id.TypeDesc.RichIdentifier()
		return smt.Apply(c.store.UninterpretedFunction(key), sortFor(id.TypeDesc))
	default:
		diagnostics.Unsupported(c.sink, srcLoc(id), "an identifier of unknown kind")
		return c.unknownFallback(id.TypeDesc)
	}
}

// encodeMemberAccess only supports magic/global member reads (`msg.sender`, `block.timestamp`, ...), modelled as
// a pseudo-global named "x.m" (§4.4).
func (c *Checker) encodeMemberAccess(m *ast.MemberAccess) *smt.Term {
	base, ok := m.Expression.(*ast.Identifier)
	if !ok || base.Kind != ast.IdentifierKindGlobal {
		diagnostics.Unsupported(c.sink, srcLoc(m), "a member access on a non-global expression")
		return c.unknownFallback(m.TypeDesc)
	}
	name := base.Name + "." + m.MemberName
	g := c.store.Global(name, sortFor(m.TypeDesc))
	return g.CurrentValue()
}

func (c *Checker) encodeUnary(u *ast.UnaryOperation) *smt.Term {
	switch u.Operator {
	case "!":
		return smt.Not(c.encode(u.SubExpression))
	case "-":
		result := smt.Sub(smt.IntConstInt64(0), c.encode(u.SubExpression))
		c.emitOverflowUnderflowGoals(result, u.TypeDesc, srcLoc(u))
		return result
	case "++", "--":
		return c.encodeIncDec(u)
	default:
		diagnostics.Unsupported(c.sink, srcLoc(u), "the unary operator "+u.Operator)
		return c.unknownFallback(u.TypeDesc)
	}
}

func (c *Checker) encodeIncDec(u *ast.UnaryOperation) *smt.Term {
	decl := c.identifierDecl(u.SubExpression)
	if decl == nil {
		diagnostics.Unsupported(c.sink, srcLoc(u), "increment/decrement of a non-identifier")
		return c.unknownFallback(u.TypeDesc)
	}
	c.ensureDeclared(decl)
	v := c.store.Variable(decl)
	old := v.CurrentValue()

	delta := int64(1)
	if u.Operator == "--" {
		delta = -1
	}
	newValue := smt.Add(old, smt.IntConstInt64(delta))
	c.assign(decl, newValue, srcLoc(u))

	if u.Prefix {
		return v.CurrentValue()
	}
	return old
}

func (c *Checker) encodeBinary(b *ast.BinaryOperation) *smt.Term {
	left := c.encode(b.LeftExpression)
	right := c.encode(b.RightExpression)

	switch b.Operator {
	case "&&":
		return smt.And(left, right)
	case "||":
		return smt.Or(left, right)
	case "=", "==":
		return smt.Eq(left, right)
	case "!=":
		return smt.Ne(left, right)
	case "<":
		return smt.Lt(left, right)
	case "<=":
		return smt.Le(left, right)
	case ">":
		return smt.Gt(left, right)
	case ">=":
		return smt.Ge(left, right)
	case "+":
		return c.encodeArith(smt.Add(left, right), b)
	case "-":
		return c.encodeArith(smt.Sub(left, right), b)
	case "*":
		return c.encodeArith(smt.Mul(left, right), b)
	case "/":
		return c.encodeDivision(left, right, b)
	default:
		diagnostics.Unsupported(c.sink, srcLoc(b), "the binary operator "+b.Operator)
		return c.unknownFallback(b.TypeDesc)
	}
}

func (c *Checker) encodeArith(result *smt.Term, b *ast.BinaryOperation) *smt.Term {
	c.emitOverflowUnderflowGoals(result, b.CommonType, srcLoc(b))
	return result
}

// encodeDivision implements §4.4's division-by-zero goal and signed-division case split.
func (c *Checker) encodeDivision(left, right *smt.Term, b *ast.BinaryOperation) *smt.Term {
	c.checkCondition(smt.Eq(right, smt.IntConstInt64(0)), srcLoc(b), diagnostics.DivisionByZeroDescription(), "", nil)
	// the division is assumed nonzero for the remainder of this path, per §4.4: "then assume right != 0 along
	// the continuation (assert it unconditionally)" — unconditionally, not guarded by the path condition.
	c.store.AddAssertion(smt.Ne(right, smt.IntConstInt64(0)))

	var result *smt.Term
	if b.CommonType != nil && b.CommonType.Signed() {
		result = signedDivision(left, right)
	} else {
		result = smt.Div(left, right)
	}
	c.emitOverflowUnderflowGoals(result, b.CommonType, srcLoc(b))
	return result
}

// signedDivision encodes `ite(L>=0, ite(R>=0, L/R, -(L/(-R))), ite(R>=0, -((-L)/R), (-L)/(-R)))` — SMT-LIB
// integer division rounds toward negative infinity, but the source's `/` rounds toward zero (§4.4).
func signedDivision(l, r *smt.Term) *smt.Term {
	zero := smt.IntConstInt64(0)
	negL := smt.Sub(zero, l)
	negR := smt.Sub(zero, r)

	lNonNeg := smt.Ge(l, zero)
	rNonNeg := smt.Ge(r, zero)

	bothNonNeg := smt.Div(l, r)
	lNonNegRNeg := smt.Sub(zero, smt.Div(l, negR))
	lNegRNonNeg := smt.Sub(zero, smt.Div(negL, r))
	bothNeg := smt.Div(negL, negR)

	return smt.ITE(lNonNeg,
		smt.ITE(rNonNeg, bothNonNeg, lNonNegRNeg),
		smt.ITE(rNonNeg, lNegRNonNeg, bothNeg),
	)
}

func (c *Checker) encodeAssignment(a *ast.Assignment) *smt.Term {
	if a.Operator != "=" {
		diagnostics.Unsupported(c.sink, srcLoc(a), "the compound assignment operator "+a.Operator)
		return c.unknownFallback(a.TypeDesc)
	}

	value := c.encode(a.RightHandSide)

	if index, ok := a.LeftHandSide.(*ast.IndexAccess); ok {
		return c.arrayIndexWrite(index, value)
	}

	decl := c.identifierDecl(a.LeftHandSide)
	if decl == nil {
		diagnostics.Unsupported(c.sink, srcLoc(a), "assignment to a non-identifier, non-index l-value")
		return value
	}
	c.ensureDeclared(decl)
	c.assign(decl, value, srcLoc(a))
	return value
}

func (c *Checker) encodeIndexAccess(ix *ast.IndexAccess) *smt.Term {
	decl := c.identifierDecl(ix.BaseExpression)
	if decl == nil {
		diagnostics.Unsupported(c.sink, srcLoc(ix), "index access on a non-identifier base")
		return c.unknownFallback(ix.TypeDesc)
	}
	c.ensureDeclared(decl)
	base := c.store.Variable(decl).CurrentValue()
	key := c.encode(ix.IndexExpression)

	result := smt.Select(base, key)
	c.store.RecordUninterpreted(renderIndexAccessSource(decl.Name, ix), result)
	return result
}

func (c *Checker) encodeTuple(t *ast.TupleExpression) *smt.Term {
	if len(t.Components) == 1 {
		return c.encode(t.Components[0])
	}
	diagnostics.Unsupported(c.sink, srcLoc(t), "a multi-element tuple expression")
	return c.unknownFallback(t.TypeDesc)
}

// identifierDecl resolves expr to the VariableDeclaration it names if expr is a plain identifier, else nil.
func (c *Checker) identifierDecl(expr ast.Expression) *ast.VariableDeclaration {
	id, ok := expr.(*ast.Identifier)
	if !ok || id.Kind != ast.IdentifierKindVariable {
		return nil
	}
	return c.decls.Variable(id.ReferencedDeclaration)
}

// unknownFallback builds a fresh, wholly unconstrained term standing in for a construct the checker could not
// encode, typed as closely to typ as it can (§7 taxon 1: "fall back to a fresh unknown symvar").
func (c *Checker) unknownFallback(typ *ast.TypeDescription) *smt.Term {
	c.fresh++
	name := fmt.Sprintf("unsupported!%d", c.fresh)
	sort := sortFor(typ)
	if sort == smt.SortArray {
		return smt.UnconstrainedArray(name, smt.SortInt, smt.SortInt)
	}
	return smt.Var(name, sort)
}

func sortFor(typ *ast.TypeDescription) smt.Sort {
	if typ == nil {
		return smt.SortInt
	}
	switch typ.Kind {
	case ast.TypeKindBool:
		return smt.SortBool
	case ast.TypeKindMapping:
		return smt.SortArray
	default:
		return smt.SortInt
	}
}

func renderIndexAccessSource(baseName string, ix *ast.IndexAccess) string {
	return fmt.Sprintf("%s[%s]", baseName, exprText(ix.IndexExpression))
}

// exprText renders a best-effort source-like text for an expression, used only to name uninterpreted index-access
// terms in counter-examples; it need not round-trip to valid source, only be stable and readable.
func exprText(expr ast.Expression) string {
	switch e := expr.(type) {
	case *ast.Identifier:
		return e.Name
	case *ast.Literal:
		return e.Value
	case *ast.MemberAccess:
		return exprText(e.Expression) + "." + e.MemberName
	case *ast.IndexAccess:
		return exprText(e.BaseExpression) + "[" + exprText(e.IndexExpression) + "]"
	default:
		return "?"
	}
}

func srcLoc(n ast.Node) ast.SrcLocation {
	return ast.ParseSrc(n.GetSrc())
}
