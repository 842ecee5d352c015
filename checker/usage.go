package checker

import "github.com/ascendlabs/symcheck/ast"

// touchedVariables implements component C: it returns every variable declaration that is assigned,
// incremented/decremented, or is the base of an index-write anywhere inside stmt's subtree. Duplicates are
// allowed by design (§4.3: "callers deduplicate"); order follows AST traversal order.
func touchedVariables(idx *declIndex, stmt ast.Statement) []*ast.VariableDeclaration {
	var touched []*ast.VariableDeclaration
	walkStatement(idx, stmt, &touched)
	return touched
}

// touchedVariablesInExpression collects the touched declarations inside a standalone expression (used for a
// for-loop's condition and iteration expression, which §4.5 step 2 includes without wrapping them in statements).
func touchedVariablesInExpression(idx *declIndex, expr ast.Expression) []*ast.VariableDeclaration {
	var touched []*ast.VariableDeclaration
	walkExpression(idx, expr, &touched)
	return touched
}

func walkStatement(idx *declIndex, stmt ast.Statement, touched *[]*ast.VariableDeclaration) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.Block:
		for _, inner := range s.Statements {
			walkStatement(idx, inner, touched)
		}
	case *ast.ExpressionStatement:
		walkExpression(idx, s.Expr, touched)
	case *ast.VariableDeclarationStatement:
		walkExpression(idx, s.InitialValue, touched)
	case *ast.IfStatement:
		walkExpression(idx, s.Condition, touched)
		walkStatement(idx, s.TrueBody, touched)
		walkStatement(idx, s.FalseBody, touched)
	case *ast.WhileStatement:
		walkExpression(idx, s.Condition, touched)
		walkStatement(idx, s.Body, touched)
	case *ast.DoWhileStatement:
		walkExpression(idx, s.Condition, touched)
		walkStatement(idx, s.Body, touched)
	case *ast.ForStatement:
		// the init expression is deliberately excluded (§4.5 step 2: "but not the init expression, which is
		// evaluated once beforehand unconditionally").
		walkExpression(idx, s.Condition, touched)
		walkStatement(idx, s.Body, touched)
		if s.LoopExpr != nil {
			walkExpression(idx, s.LoopExpr.Expr, touched)
		}
	case *ast.ReturnStatement:
		walkExpression(idx, s.Expr, touched)
	}
}

func walkExpression(idx *declIndex, expr ast.Expression, touched *[]*ast.VariableDeclaration) {
	switch e := expr.(type) {
	case nil:
		return
	case *ast.Assignment:
		if decl := resolveLValue(idx, e.LeftHandSide); decl != nil {
			*touched = append(*touched, decl)
		} else {
			walkExpression(idx, e.LeftHandSide, touched)
		}
		walkExpression(idx, e.RightHandSide, touched)
	case *ast.UnaryOperation:
		if e.Operator == "++" || e.Operator == "--" {
			if decl := resolveLValue(idx, e.SubExpression); decl != nil {
				*touched = append(*touched, decl)
			}
		}
		walkExpression(idx, e.SubExpression, touched)
	case *ast.BinaryOperation:
		walkExpression(idx, e.LeftExpression, touched)
		walkExpression(idx, e.RightExpression, touched)
	case *ast.IndexAccess:
		// the base of an index-write is touched only when this IndexAccess is itself the l-value of an
		// Assignment, which is handled by resolveLValue above; a plain read walks through unchanged.
		walkExpression(idx, e.BaseExpression, touched)
		walkExpression(idx, e.IndexExpression, touched)
	case *ast.MemberAccess:
		walkExpression(idx, e.Expression, touched)
	case *ast.FunctionCall:
		walkExpression(idx, e.Expression, touched)
		for _, arg := range e.Arguments {
			walkExpression(idx, arg, touched)
		}
	case *ast.TupleExpression:
		for _, c := range e.Components {
			walkExpression(idx, c, touched)
		}
	}
}

// resolveLValue returns the VariableDeclaration a plain-identifier or mapping-index l-value ultimately touches
// (the mapping variable itself for an index-write), or nil if expr is not a recognized l-value shape.
func resolveLValue(idx *declIndex, expr ast.Expression) *ast.VariableDeclaration {
	switch e := expr.(type) {
	case *ast.Identifier:
		if e.Kind == ast.IdentifierKindVariable {
			return idx.Variable(e.ReferencedDeclaration)
		}
		return nil
	case *ast.IndexAccess:
		return resolveLValue(idx, e.BaseExpression)
	default:
		return nil
	}
}
