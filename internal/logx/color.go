package logx

import (
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether log output to stdout should use ANSI colors.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ColorizeStatusWith renders an HTTP status code, optionally wrapped in the
// gin-style status colors.
func ColorizeStatusWith(status int, color bool) string {
	s := strconv.Itoa(status)
	if !color {
		return s
	}
	switch {
	case status >= 200 && status < 300:
		return "\x1b[42m " + s + " \x1b[0m"
	case status >= 400 && status < 500:
		return "\x1b[43m " + s + " \x1b[0m"
	case status >= 500:
		return "\x1b[41m " + s + " \x1b[0m"
	default:
		return "\x1b[47m " + s + " \x1b[0m"
	}
}
