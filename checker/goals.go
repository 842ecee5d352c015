package checker

import (
	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/diagnostics"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/ascendlabs/symcheck/utils"
)

// ensureDeclared declares decl in the store on first reference, emitting the unsupported warning once if its type
// fell outside the sort table of §4.2.
func (c *Checker) ensureDeclared(decl *ast.VariableDeclaration) {
	if c.store.HasVariable(decl) {
		return
	}
	unsupported, _ := c.store.DeclareVariable(decl, c.uniqueName(decl))
	if unsupported {
		diagnostics.Unsupported(c.sink, declLoc(decl), "the type of "+decl.Name)
	}
}

func (c *Checker) uniqueName(decl *ast.VariableDeclaration) string {
	if decl.Name == "" {
		return c.freshName("v")
	}
	return decl.Name
}

func declLoc(decl *ast.VariableDeclaration) ast.SrcLocation {
	return ast.ParseSrc(decl.GetSrc())
}

// assign implements the assignment protocol of §4.6.
func (c *Checker) assign(decl *ast.VariableDeclaration, valueTerm *smt.Term, loc ast.SrcLocation) {
	if decl.TypeDesc != nil && decl.TypeDesc.IsIntegerLike() {
		c.emitOverflowUnderflowGoals(valueTerm, decl.TypeDesc, loc)
	}
	if decl.TypeDesc != nil && decl.TypeDesc.Kind == ast.TypeKindMapping {
		c.store.ArrayAssignmentHappened = true
		c.havocAllMappings()
	}

	v := c.store.Variable(decl)
	newTerm := v.IncreaseIndex()
	c.store.AddAssertion(smt.Eq(newTerm, valueTerm))
}

// havocAllMappings bumps every mapping-sorted variable's index with no constraint, per the aliasing approximation
// of §4.6 step 2.
func (c *Checker) havocAllMappings() {
	for _, v := range c.store.AllVariables() {
		if v.Sort == smt.SortArray {
			v.SetUnknown(c.store)
		}
	}
}

// arrayIndexWrite implements the array index-write protocol of §4.6: `a[i] = v`.
func (c *Checker) arrayIndexWrite(index *ast.IndexAccess, value *smt.Term) *smt.Term {
	decl := c.identifierDecl(index.BaseExpression)
	if decl == nil {
		diagnostics.Unsupported(c.sink, srcLoc(index), "an array-index write whose base is not a plain identifier")
		return value
	}
	c.ensureDeclared(decl)

	v := c.store.Variable(decl)
	key := c.encode(index.IndexExpression)
	stored := smt.Store(v.CurrentValue(), key, value)

	newTerm := v.IncreaseIndex()
	c.store.AddAssertion(smt.Eq(newTerm, stored))
	return value
}

// checkCondition implements the goal-check protocol of §4.6. extraName/extraTerm may both be empty/nil when the
// goal has no distinguished "result" term to print first.
func (c *Checker) checkCondition(cond *smt.Term, loc ast.SrcLocation, description, extraName string, extraTerm *smt.Term) {
	if c.dedup.Seen(loc, description) {
		return
	}
	c.goalsChecked++

	c.store.PushPathCondition(cond)
	defer c.store.PopPathCondition()
	c.store.Backend().Push()
	defer c.store.Backend().Pop()
	c.store.AddAssertion(c.store.PathCondition())

	evalTerms, names := c.buildEvaluationList(extraName, extraTerm)
	result, model, _ := c.store.Backend().Check(evalTerms)

	var counterExample []diagnostics.CounterExampleEntry
	if result == smt.Satisfiable {
		counterExample = zipCounterExample(names, model)
	}
	diagnostics.GoalOutcome(c.sink, loc, result, description, counterExample, c.activeHints())
}

// buildEvaluationList builds the ordered (name, term) evaluation list of §4.6 step 2: extraTerm first, then every
// live value-typed local/state variable, then every value-typed global, then every uninterpreted term.
func (c *Checker) buildEvaluationList(extraName string, extraTerm *smt.Term) (terms []*smt.Term, names []string) {
	if extraTerm != nil {
		terms = append(terms, extraTerm)
		names = append(names, extraName)
	}
	for _, v := range c.store.AllVariables() {
		if v.Sort == smt.SortArray {
			continue
		}
		terms = append(terms, v.CurrentValue())
		names = append(names, v.UniqueName)
	}
	for _, v := range c.store.AllGlobals() {
		if v.Sort == smt.SortArray {
			continue
		}
		terms = append(terms, v.CurrentValue())
		names = append(names, v.UniqueName)
	}
	for _, nt := range c.store.UninterpretedTerms() {
		terms = append(terms, nt.Term)
		names = append(names, nt.Name)
	}
	return terms, names
}

func zipCounterExample(names, model []string) []diagnostics.CounterExampleEntry {
	entries := make([]diagnostics.CounterExampleEntry, 0, len(names))
	for i, name := range names {
		if i >= len(model) {
			break
		}
		entries = append(entries, diagnostics.CounterExampleEntry{Name: name, Value: model[i]})
	}
	return entries
}

func (c *Checker) activeHints() []string {
	var hints []string
	if c.store.LoopExecutionHappened {
		hints = append(hints, diagnostics.LoopHint())
	}
	if c.store.ArrayAssignmentHappened {
		hints = append(hints, diagnostics.MappingHint())
	}
	return hints
}

// emitOverflowUnderflowGoals implements §4.6's overflow/underflow goal pair for an integer (or address) type.
func (c *Checker) emitOverflowUnderflowGoals(valueTerm *smt.Term, typ *ast.TypeDescription, loc ast.SrcLocation) {
	if typ == nil || !typ.IsIntegerLike() {
		return
	}
	min, max := utils.GetIntegerConstraints(typ.Signed(), typ.Width())

	c.checkCondition(smt.Lt(valueTerm, smt.IntConst(min)), loc,
		diagnostics.UnderflowDescription(min.String()), "<result>", valueTerm)
	c.checkCondition(smt.Gt(valueTerm, smt.IntConst(max)), loc,
		diagnostics.OverflowDescription(max.String()), "<result>", valueTerm)
}

// checkBooleanNotConstant implements the tautology/contradiction check of §4.6. It is a no-op outside the root
// function (§9: "the source suppresses it, only at root. Follow suit.") and when condExpr is itself a literal or a
// unary-not directly wrapping one (`!true`, `!false`) — trivially constant-foldable without a general
// constant-folding pass.
func (c *Checker) checkBooleanNotConstant(condExpr ast.Expression, cond *smt.Term, loc ast.SrcLocation, template diagnostics.LoopConditionTemplate) {
	if !c.store.InRootFunction() {
		return
	}
	if isConstantFoldable(condExpr) {
		return
	}

	positive := c.probe(cond)
	negative := c.probe(smt.Not(cond))
	diagnostics.TautologyOutcome(c.sink, loc, positive, negative, template)
}

// isConstantFoldable reports whether expr is a literal, or a unary-not directly wrapping one.
func isConstantFoldable(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.Literal:
		return true
	case *ast.UnaryOperation:
		if e.Operator != "!" {
			return false
		}
		_, isLiteral := e.SubExpression.(*ast.Literal)
		return isLiteral
	default:
		return false
	}
}

// probe checks satisfiability of pathCondition ∧ cond in a fresh push/pop scope, with no evaluation list (the
// tautology check never needs a counter-example).
func (c *Checker) probe(cond *smt.Term) smt.CheckResult {
	c.store.PushPathCondition(cond)
	defer c.store.PopPathCondition()
	c.store.Backend().Push()
	defer c.store.Backend().Pop()
	c.store.AddAssertion(c.store.PathCondition())

	result, _, _ := c.store.Backend().Check(nil)
	return result
}

func (c *Checker) freshName(prefix string) string {
	return c.store.FreshName(prefix)
}
