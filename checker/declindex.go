// Package checker implements components C through F of the checker: the variable-usage analyzer, the expression
// encoder, the statement traverser and path engine, and the verification-goal/assignment protocol, tied together
// by a top-level Checker that drives one root function at a time.
package checker

import "github.com/ascendlabs/symcheck/ast"

// declIndex resolves an Identifier's ReferencedDeclaration (a node ID) back to the *ast.VariableDeclaration it
// names, and a function call's callee identity back to the *ast.FunctionDefinition to inline. Front-ends
// typically hand a flat symbol table alongside the tree; here it is built once per SourceUnit by walking every
// contract's state variables and function signatures/bodies.
type declIndex struct {
	vars  map[int64]*ast.VariableDeclaration
	funcs map[int64]*ast.FunctionDefinition
}

func buildDeclIndex(unit *ast.SourceUnit) *declIndex {
	idx := &declIndex{vars: make(map[int64]*ast.VariableDeclaration), funcs: make(map[int64]*ast.FunctionDefinition)}
	for _, contract := range unit.Contracts {
		for _, v := range contract.StateVars {
			idx.vars[v.GetID()] = v
		}
		for _, fn := range contract.Functions {
			idx.funcs[fn.GetID()] = fn
			for _, p := range fn.Parameters {
				idx.vars[p.GetID()] = p
			}
			for _, r := range fn.ReturnParameters {
				idx.vars[r.GetID()] = r
			}
			if fn.Body != nil {
				idx.indexLocals(fn.Body)
			}
		}
	}
	return idx
}

func (idx *declIndex) indexLocals(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
		return
	case *ast.Block:
		for _, inner := range s.Statements {
			idx.indexLocals(inner)
		}
	case *ast.VariableDeclarationStatement:
		for _, d := range s.Declarations {
			if d != nil {
				idx.vars[d.GetID()] = d
			}
		}
	case *ast.IfStatement:
		idx.indexLocals(s.TrueBody)
		idx.indexLocals(s.FalseBody)
	case *ast.WhileStatement:
		idx.indexLocals(s.Body)
	case *ast.DoWhileStatement:
		idx.indexLocals(s.Body)
	case *ast.ForStatement:
		idx.indexLocals(s.InitExpr)
		idx.indexLocals(s.Body)
	}
}

// Variable resolves declID, panicking if absent — per §7, a declaration the encoder expects to find is an
// internal invariant, not a recoverable condition.
func (idx *declIndex) Variable(declID int64) *ast.VariableDeclaration {
	v, ok := idx.vars[declID]
	if !ok {
		panic("checker: referencedDeclaration does not name a known variable declaration")
	}
	return v
}

// Function resolves a callee declaration ID to its FunctionDefinition, or reports ok=false if it names something
// else (a variable, or a declaration this SourceUnit never indexed) — used by the call dispatcher of §4.7 to tell
// "no implementation" apart from a resolvable user function.
func (idx *declIndex) Function(declID int64) (*ast.FunctionDefinition, bool) {
	fn, ok := idx.funcs[declID]
	return fn, ok
}
