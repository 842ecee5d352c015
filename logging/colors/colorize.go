package colors

import "fmt"

// Colorize wraps s in the ANSI escape code for color c.
func Colorize(s any, c Color) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
