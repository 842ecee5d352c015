package diagnostics

import (
	"testing"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/logging"
	"github.com/ascendlabs/symcheck/smt"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestSink() (*EventSink, *Report) {
	logger := logging.NewLogger(zerolog.Disabled, false)
	sink := NewEventSink(logger)
	report := NewReport(sink)
	return sink, report
}

func TestGoalOutcomeSatisfiableEmitsViolation(t *testing.T) {
	sink, report := newTestSink()
	entries := []CounterExampleEntry{{Name: "x", Value: "115792089237316195423570985008687907853269984665640564039457584007913129639935"}}

	GoalOutcome(sink, ast.SrcLocation{Start: 1, Length: 2}, smt.Satisfiable, AssertionViolationDescription(), entries, nil)

	assert.Len(t, report.Entries, 1)
	assert.Contains(t, report.Entries[0].Message, "[violation] Assertion violation happens here for:")
	assert.Contains(t, report.Entries[0].Message, "x = 115,792,089,237,316,195,423,570,985,008,687,907,853,269,984,665,640,564,039,457,584,007,913,129,639,935")
}

func TestGoalOutcomeUnsatisfiableIsSilent(t *testing.T) {
	sink, report := newTestSink()
	GoalOutcome(sink, ast.SrcLocation{}, smt.Unsatisfiable, AssertionViolationDescription(), nil, nil)
	assert.Empty(t, report.Entries)
}

func TestGoalOutcomeUnknownEmitsMightHappen(t *testing.T) {
	sink, report := newTestSink()
	GoalOutcome(sink, ast.SrcLocation{}, smt.Unknown, AssertionViolationDescription(), nil, nil)
	assert.Len(t, report.Entries, 1)
	assert.Equal(t, "[might happen] Assertion violation might happen here.", report.Entries[0].Message)
}

func TestGoalOutcomeConflictingEmitsDisagreement(t *testing.T) {
	sink, report := newTestSink()
	GoalOutcome(sink, ast.SrcLocation{}, smt.Conflicting, AssertionViolationDescription(), nil, nil)
	assert.Equal(t, "[solvers disagreed] solvers disagreed", report.Entries[0].Message)
}

func TestGoalOutcomeErrorEmitsSolverError(t *testing.T) {
	sink, report := newTestSink()
	GoalOutcome(sink, ast.SrcLocation{}, smt.Error, AssertionViolationDescription(), nil, nil)
	assert.Equal(t, "[solver error] SMT solver error", report.Entries[0].Message)
}

func TestGoalOutcomeSuppressesIdentityRows(t *testing.T) {
	sink, report := newTestSink()
	entries := []CounterExampleEntry{{Name: "x!3", Value: "x!3"}, {Name: "y", Value: "7"}}
	GoalOutcome(sink, ast.SrcLocation{}, smt.Satisfiable, AssertionViolationDescription(), entries, nil)
	assert.Contains(t, report.Entries[0].Message, "y = 7")
	assert.NotContains(t, report.Entries[0].Message, "x!3 =")
}

func TestGoalOutcomeAppendsLoopHint(t *testing.T) {
	sink, report := newTestSink()
	entries := []CounterExampleEntry{{Name: "x", Value: "0"}}
	GoalOutcome(sink, ast.SrcLocation{}, smt.Satisfiable, AssertionViolationDescription(), entries, []string{LoopHint()})
	assert.Contains(t, report.Entries[0].Message, loopHint)
}

func TestTautologyOutcomeBothSatIsSilent(t *testing.T) {
	sink, report := newTestSink()
	TautologyOutcome(sink, ast.SrcLocation{}, smt.Satisfiable, smt.Satisfiable, PlainConditionTemplate)
	assert.Empty(t, report.Entries)
}

func TestTautologyOutcomeAlwaysTrue(t *testing.T) {
	sink, report := newTestSink()
	TautologyOutcome(sink, ast.SrcLocation{}, smt.Satisfiable, smt.Unsatisfiable, PlainConditionTemplate)
	assert.Equal(t, "[violation] Condition is always true.", report.Entries[0].Message)
}

func TestTautologyOutcomeAlwaysFalse(t *testing.T) {
	sink, report := newTestSink()
	TautologyOutcome(sink, ast.SrcLocation{}, smt.Unsatisfiable, smt.Satisfiable, PlainConditionTemplate)
	assert.Equal(t, "[violation] Condition is always false.", report.Entries[0].Message)
}

func TestTautologyOutcomeUnreachable(t *testing.T) {
	sink, report := newTestSink()
	TautologyOutcome(sink, ast.SrcLocation{}, smt.Unsatisfiable, smt.Unsatisfiable, PlainConditionTemplate)
	assert.Equal(t, "[violation] Condition unreachable.", report.Entries[0].Message)
}

func TestTautologyOutcomeWhileLoopTemplate(t *testing.T) {
	sink, report := newTestSink()
	TautologyOutcome(sink, ast.SrcLocation{}, smt.Satisfiable, smt.Unsatisfiable, WhileConditionTemplate)
	assert.Equal(t, "[violation] While loop condition is always true.", report.Entries[0].Message)
}

func TestTautologyOutcomeUnknownIsSilent(t *testing.T) {
	sink, report := newTestSink()
	TautologyOutcome(sink, ast.SrcLocation{}, smt.Unknown, smt.Satisfiable, PlainConditionTemplate)
	assert.Empty(t, report.Entries)
}

func TestUnsupportedEmitsTaggedWarning(t *testing.T) {
	sink, report := newTestSink()
	Unsupported(sink, ast.SrcLocation{}, "tuple destructuring")
	assert.Equal(t, "[unsupported] Assertion checker does not yet support tuple destructuring", report.Entries[0].Message)
}

func TestDedupSuppressesRepeatGoalAtSameLocation(t *testing.T) {
	d := NewDedup()
	loc := ast.SrcLocation{Start: 5, Length: 1}
	assert.False(t, d.Seen(loc, "Assertion violation"))
	assert.True(t, d.Seen(loc, "Assertion violation"))
	assert.False(t, d.Seen(loc, "Overflow (resulting value larger than 1)"))
}

func TestDedupResetClearsBetweenRootFunctions(t *testing.T) {
	d := NewDedup()
	loc := ast.SrcLocation{Start: 5, Length: 1}
	d.Seen(loc, "Assertion violation")
	d.Reset()
	assert.False(t, d.Seen(loc, "Assertion violation"))
}

func TestReportViolationAndUnsupportedCounts(t *testing.T) {
	sink, report := newTestSink()
	GoalOutcome(sink, ast.SrcLocation{}, smt.Satisfiable, AssertionViolationDescription(), []CounterExampleEntry{{Name: "x", Value: "1"}}, nil)
	Unsupported(sink, ast.SrcLocation{}, "compound assignment")
	assert.Equal(t, 1, report.ViolationCount())
	assert.Equal(t, 1, report.UnsupportedCount())
}
