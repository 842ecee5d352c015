// Package diagnostics implements component G: the checker's sole error sink. Every unsupported construct and
// every satisfiable verification goal surfaces here as a warning; the checker never emits a hard error (§6/§7).
package diagnostics

import "fmt"

// The exact wording below matters: property tests and the end-to-end scenarios of the governing specification
// assert on these strings verbatim.
const (
	assertionViolationTemplate = "Assertion violation"
	overflowTemplate           = "Overflow (resulting value larger than %s)"
	underflowTemplate          = "Underflow (resulting value less than %s)"
	divisionByZeroTemplate     = "Division by zero"

	conditionAlwaysTrue  = "Condition is always true."
	conditionAlwaysFalse = "Condition is always false."
	conditionUnreachable = "Condition unreachable."

	whileConditionTemplate    = "While loop condition is always %s."
	forConditionTemplate      = "For loop condition is always %s."
	doWhileConditionTemplate  = "Do-while loop condition is always %s."

	unsupportedTemplate = "Assertion checker does not yet support %s"

	solversDisagreedMessage = "solvers disagreed"
	solverErrorMessage      = "SMT solver error"

	loopHint    = "Note: the loop above was abstracted by havocing its touched variables; this may produce spurious counter-examples."
	mappingHint = "Note: a mapping assignment above invalidated all prior knowledge of mapping contents."
)

// OverflowDescription renders the Overflow goal's description, substituting the type's maximum bound.
func OverflowDescription(max string) string {
	return fmt.Sprintf(overflowTemplate, max)
}

// UnderflowDescription renders the Underflow goal's description, substituting the type's minimum bound.
func UnderflowDescription(min string) string {
	return fmt.Sprintf(underflowTemplate, min)
}

// AssertionViolationDescription is the goal description passed to checkCondition for an assert(cond) statement.
func AssertionViolationDescription() string { return assertionViolationTemplate }

// DivisionByZeroDescription is the goal description passed to checkCondition for a division's zero-divisor check.
func DivisionByZeroDescription() string { return divisionByZeroTemplate }

// LoopConditionTemplate selects the per-loop-kind tautology template named by §6.
type LoopConditionTemplate int

const (
	WhileConditionTemplate LoopConditionTemplate = iota
	ForConditionTemplate
	DoWhileConditionTemplate
	PlainConditionTemplate // if-statement and other non-loop boolean conditions
)

// substituteConditionTemplate fills in template with value ("true" or "false"), or returns the fixed
// always-true/always-false wording for a plain (non-loop) condition.
func substituteConditionTemplate(template LoopConditionTemplate, value string) string {
	switch template {
	case WhileConditionTemplate:
		return fmt.Sprintf(whileConditionTemplate, value)
	case ForConditionTemplate:
		return fmt.Sprintf(forConditionTemplate, value)
	case DoWhileConditionTemplate:
		return fmt.Sprintf(doWhileConditionTemplate, value)
	default:
		if value == "true" {
			return conditionAlwaysTrue
		}
		return conditionAlwaysFalse
	}
}

// UnsupportedDescription names the construct kind that fell outside the modelled subset.
func UnsupportedDescription(constructKind string) string {
	return fmt.Sprintf(unsupportedTemplate, constructKind)
}
