// Package uci reads UCI-style configuration files as found under
// /etc/config on OpenWrt-family firmware.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Section is one `config <type> '<name>'` block with its options and lists.
type Section struct {
	Type      string
	Name      string
	Anonymous bool
	Options   map[string]string
	Lists     map[string][]string
}

// File is a parsed UCI file. Sections keeps document order.
type File struct {
	Path     string
	Sections []*Section
}

// Load reads and parses the UCI file at path.
func Load(path string) (*File, error) {
	// #nosec G304 -- path comes from trusted config/flag.
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse reads UCI syntax from r. Anonymous sections are addressable as
// "@<type>[<n>]" with n counting sections of that type in document order.
func Parse(r io.Reader) (*File, error) {
	doc := &File{}
	typeCount := map[string]int{}
	var cur *Section

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields, err := splitFields(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "config":
			if len(fields) < 2 || len(fields) > 3 {
				return nil, fmt.Errorf("line %d: config wants a type and optional name", lineNo)
			}
			cur = &Section{
				Type:    fields[1],
				Options: map[string]string{},
				Lists:   map[string][]string{},
			}
			if len(fields) == 3 && fields[2] != "" {
				cur.Name = fields[2]
			} else {
				cur.Anonymous = true
				cur.Name = fmt.Sprintf("@%s[%d]", cur.Type, typeCount[cur.Type])
			}
			typeCount[cur.Type]++
			doc.Sections = append(doc.Sections, cur)
		case "option":
			if cur == nil {
				return nil, fmt.Errorf("line %d: option outside config section", lineNo)
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: option wants a name and a value", lineNo)
			}
			cur.Options[fields[1]] = fields[2]
		case "list":
			if cur == nil {
				return nil, fmt.Errorf("line %d: list outside config section", lineNo)
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: list wants a name and a value", lineNo)
			}
			cur.Lists[fields[1]] = append(cur.Lists[fields[1]], fields[2])
		default:
			return nil, fmt.Errorf("line %d: unknown keyword %q", lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// splitFields tokenizes one line honoring single and double quotes.
func splitFields(line string) ([]string, error) {
	out := make([]string, 0, 3)
	i := 0
	for i < len(line) {
		for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= len(line) {
			break
		}
		var b strings.Builder
		for i < len(line) && line[i] != ' ' && line[i] != '\t' {
			c := line[i]
			if c == '\'' || c == '"' {
				close := strings.IndexByte(line[i+1:], c)
				if close < 0 {
					return nil, fmt.Errorf("unterminated quote")
				}
				b.WriteString(line[i+1 : i+1+close])
				i += close + 2
				continue
			}
			b.WriteByte(c)
			i++
		}
		out = append(out, b.String())
	}
	return out, nil
}

// Section returns the named section.
func (f *File) Section(name string) (*Section, bool) {
	for _, s := range f.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// SectionsByType returns all sections of the given type in document order.
func (f *File) SectionsByType(typ string) []*Section {
	out := make([]*Section, 0, len(f.Sections))
	for _, s := range f.Sections {
		if s.Type == typ {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the option value, or "" when the option is absent.
func (s *Section) Get(option string) string {
	if s == nil {
		return ""
	}
	return s.Options[option]
}

// GetBool reads an option as a UCI boolean ("1", "yes", "on", "true", ...).
// Absent or unrecognized values return def.
func (s *Section) GetBool(option string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(s.Get(option)))
	switch v {
	case "1", "true", "yes", "y", "on", "enabled":
		return true
	case "0", "false", "no", "n", "off", "disabled":
		return false
	default:
		return def
	}
}

// GetInt reads an option as an integer, returning def when absent or
// malformed.
func (s *Section) GetInt(option string, def int) int {
	v := strings.TrimSpace(s.Get(option))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// List returns the values collected for a list option. A plain option of the
// same name is returned as a one-element list so callers can treat both
// spellings alike.
func (s *Section) List(option string) []string {
	if s == nil {
		return nil
	}
	if vs, ok := s.Lists[option]; ok {
		return append([]string(nil), vs...)
	}
	if v, ok := s.Options[option]; ok && v != "" {
		return []string{v}
	}
	return nil
}
