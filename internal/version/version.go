// Package version carries build metadata injected via -ldflags.
package version

import "strings"

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

func Get() string {
	var b strings.Builder
	b.WriteString("ddnsadmin ")
	b.WriteString(Version)
	if Commit != "" {
		b.WriteString(" (")
		b.WriteString(Commit)
		b.WriteString(")")
	}
	if Date != "" {
		b.WriteString(" built ")
		b.WriteString(Date)
	}
	return b.String()
}
