package formatters

import "github.com/ascendlabs/symcheck/logging/colors"

// The constants below locate and colorize the fixed diagnostic tags emitted by the goal-check protocol (§4.6) and
// the diagnostic sink (component G) when rendering warnings for console output.
const (
	safeRegex           = `(\[safe\])`
	violationRegex      = `(\[violation\])`
	maybeRegex          = `(\[might happen\])`
	unsupportedRegex    = `(\[unsupported\])`
	solverErrorRegex    = `(\[solver error\])`
	conflictingRegex    = `(\[solvers disagreed\])`
	counterexampleRegex = `(for:\n(?:\s+\S+ = .*\n?)+)`
)

const (
	safeColor        = colors.GREEN
	violationColor   = colors.RED
	maybeColor       = colors.YELLOW
	unsupportedColor = colors.CYAN
	solverErrorColor = colors.MAGENTA
	conflictingColor = colors.MAGENTA
)
