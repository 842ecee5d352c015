package formatters

import (
	"fmt"

	"github.com/ascendlabs/symcheck/logging/colors"
)

// SummaryFormatter renders an end-of-run diagnostic summary (total goals checked, violations found, and
// unsupported constructs skipped) with the violation and unsupported counts colorized for console output.
func SummaryFormatter(checked, violations, unsupported int) string {
	violationsStr := fmt.Sprintf("%d", violations)
	if violations > 0 {
		violationsStr = colors.Colorize(colors.Colorize(violationsStr, violationColor), colors.BOLD)
	} else {
		violationsStr = colors.Colorize(colors.Colorize(violationsStr, safeColor), colors.BOLD)
	}

	unsupportedStr := fmt.Sprintf("%d", unsupported)
	if unsupported > 0 {
		unsupportedStr = colors.Colorize(colors.Colorize(unsupportedStr, unsupportedColor), colors.BOLD)
	}

	return fmt.Sprintf("checked %d goal(s), %s violation(s), %s unsupported construct(s) skipped",
		checked, violationsStr, unsupportedStr)
}
