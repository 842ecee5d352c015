package diagnostics

import (
	"math/big"
	"strings"
)

// Humanize implements the §4.6 "decimal humanizer": if s parses as a big integer, it is reformatted with
// thousands separators; any value that does not parse as an integer (a boolean, an array-select expression the
// solver could not fully evaluate, etc.) passes through unchanged.
func Humanize(s string) string {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return s
	}
	return groupDigits(n)
}

// groupDigits inserts a comma every three digits from the right, preserving a leading minus sign.
func groupDigits(n *big.Int) string {
	digits := new(big.Int).Abs(n).String()

	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}

	if n.Sign() < 0 {
		return "-" + grouped.String()
	}
	return grouped.String()
}
