package formatters

import (
	"regexp"

	"github.com/ascendlabs/symcheck/logging/colors"
)

// DiagnosticFormatter colorizes and formats a rendered warning (built from the §6 diagnostic templates) for console
// output. Every [tag] that the sink prepends to a warning's message is located and recolored; the counter-example
// trailer, if present, is bolded so it stands out from the description line above it.
func DiagnosticFormatter(fields map[string]any, msg string) string {
	msg = recolorTag(msg, safeRegex, safeColor)
	msg = recolorTag(msg, violationRegex, violationColor)
	msg = recolorTag(msg, maybeRegex, maybeColor)
	msg = recolorTag(msg, unsupportedRegex, unsupportedColor)
	msg = recolorTag(msg, solverErrorRegex, solverErrorColor)
	msg = recolorTag(msg, conflictingRegex, conflictingColor)

	re := regexp.MustCompile(counterexampleRegex)
	msg = re.ReplaceAllStringFunc(msg, func(s string) string {
		return colors.Colorize(s, colors.BOLD)
	})

	return msg
}

func recolorTag(msg string, pattern string, color colors.Color) string {
	re := regexp.MustCompile(pattern)
	return re.ReplaceAllString(msg, colors.Colorize(colors.Colorize(`$1`, color), colors.BOLD))
}
