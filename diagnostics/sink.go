package diagnostics

import (
	"fmt"
	"strings"

	"github.com/ascendlabs/symcheck/ast"
	"github.com/ascendlabs/symcheck/events"
	"github.com/ascendlabs/symcheck/logging"
	"github.com/ascendlabs/symcheck/smt"
)

// Warning is a single emitted diagnostic: a location, the fully rendered message text (tagged and, where
// applicable, carrying a counter-example trailer), and an optional secondary location (§6: "warning(loc?,
// message, secondaryLoc?)").
type Warning struct {
	Loc          ast.SrcLocation
	Message      string
	SecondaryLoc *ast.SrcLocation
}

// CounterExampleEntry is one row of a satisfiable goal's counter-example table: a display name and its
// humanized model value.
type CounterExampleEntry struct {
	Name  string
	Value string
}

// Sink is the checker's only error-reporting surface (§6). It never returns an error and never panics on a
// caller's behalf — per §7, "No exception escapes the checker's entry point: all failures become warnings."
type Sink interface {
	Warning(loc ast.SrcLocation, message string, secondaryLoc *ast.SrcLocation)
}

// EventSink is a Sink that republishes every warning through an EventEmitter, so a console logger, an in-memory
// Report, and test assertions can all observe the same stream without the checker coupling to any one of them.
type EventSink struct {
	emitter *events.EventEmitter[Warning]
	logger  *logging.Logger
}

// NewEventSink constructs an EventSink that logs every warning through logger (typically a sub-logger scoped with
// logging.CHECKER_SERVICE) in addition to whatever else is subscribed via Subscribe.
func NewEventSink(logger *logging.Logger) *EventSink {
	sink := &EventSink{emitter: &events.EventEmitter[Warning]{}, logger: logger}
	sink.emitter.Subscribe(func(w Warning) {
		logger.Warn(locPrefix(w.Loc) + w.Message)
	})
	return sink
}

// Subscribe registers an additional observer of every warning this sink emits (e.g. a Report or a test's
// assertion callback).
func (s *EventSink) Subscribe(handler events.EventHandler[Warning]) {
	s.emitter.Subscribe(handler)
}

func (s *EventSink) Warning(loc ast.SrcLocation, message string, secondaryLoc *ast.SrcLocation) {
	s.emitter.Publish(Warning{Loc: loc, Message: message, SecondaryLoc: secondaryLoc})
}

func locPrefix(loc ast.SrcLocation) string {
	if loc.Start < 0 {
		return ""
	}
	return fmt.Sprintf("[%d:%d] ", loc.Start, loc.Length)
}

// Unsupported renders and emits the "unsupported construct" warning of §7 taxon 1.
func Unsupported(sink Sink, loc ast.SrcLocation, constructKind string) {
	sink.Warning(loc, "[unsupported] "+UnsupportedDescription(constructKind), nil)
}

// GoalOutcome renders and emits the checkCondition dispatch of §4.6 for a single verification goal, given the
// solver's CheckResult, the goal's description, and (when SATISFIABLE) the counter-example rows to print and any
// hint trailers to append.
func GoalOutcome(sink Sink, loc ast.SrcLocation, result smt.CheckResult, description string, counterExample []CounterExampleEntry, hints []string) {
	switch result {
	case smt.Satisfiable:
		sink.Warning(loc, "[violation] "+description+" happens here"+renderCounterExample(counterExample, hints), nil)
	case smt.Unsatisfiable:
		// silent success, per §4.6 step 3.
	case smt.Unknown:
		sink.Warning(loc, "[might happen] "+description+" might happen here.", nil)
	case smt.Conflicting:
		sink.Warning(loc, "[solvers disagreed] "+solversDisagreedMessage, nil)
	case smt.Error:
		sink.Warning(loc, "[solver error] "+solverErrorMessage, nil)
	}
}

// TautologyOutcome renders and emits the checkBooleanNotConstant dispatch of §4.6's table.
func TautologyOutcome(sink Sink, loc ast.SrcLocation, positive, negative smt.CheckResult, template LoopConditionTemplate) {
	if positive == smt.Conflicting || negative == smt.Conflicting {
		sink.Warning(loc, "[solvers disagreed] "+solversDisagreedMessage, nil)
		return
	}
	if positive == smt.Error || negative == smt.Error {
		sink.Warning(loc, "[solver error] "+solverErrorMessage, nil)
		return
	}
	if positive == smt.Unknown || negative == smt.Unknown {
		return
	}

	switch {
	case positive == smt.Satisfiable && negative == smt.Satisfiable:
		// genuinely variable condition, silent.
	case positive == smt.Satisfiable && negative == smt.Unsatisfiable:
		sink.Warning(loc, "[violation] "+substituteConditionTemplate(template, "true"), nil)
	case positive == smt.Unsatisfiable && negative == smt.Satisfiable:
		sink.Warning(loc, "[violation] "+substituteConditionTemplate(template, "false"), nil)
	case positive == smt.Unsatisfiable && negative == smt.Unsatisfiable:
		sink.Warning(loc, "[violation] "+conditionUnreachable, nil)
	}
}

// renderCounterExample builds the " for:\n  name = value\n..." trailer, suppressing rows whose humanized value is
// identical to the term's own solver name (§4.6 step 3's "suppresses trivial identity rows"), then appends any
// active hint trailers.
func renderCounterExample(entries []CounterExampleEntry, hints []string) string {
	var rows strings.Builder
	hadRow := false
	for _, e := range entries {
		if e.Value == e.Name {
			continue
		}
		hadRow = true
		rows.WriteString("  ")
		rows.WriteString(e.Name)
		rows.WriteString(" = ")
		rows.WriteString(Humanize(e.Value))
		rows.WriteString("\n")
	}
	if !hadRow {
		return appendHints("", hints)
	}
	return appendHints(" for:\n"+rows.String(), hints)
}

func appendHints(trailer string, hints []string) string {
	for _, h := range hints {
		trailer += "\n" + h
	}
	return trailer
}

// LoopHint and MappingHint are the standard hint trailers appended to a satisfiable goal's counter-example when
// loopExecutionHappened / arrayAssignmentHappened is set (§4.6).
func LoopHint() string    { return loopHint }
func MappingHint() string { return mappingHint }
