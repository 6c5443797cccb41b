package logx

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"
)

type formatPart struct {
	literal string
	varName string
}

// AccessLogFormatter renders access log lines from a compiled $var template.
type AccessLogFormatter struct {
	parts []formatPart
}

var accessLogFormatPresets = map[string]string{
	"ddns_combined": "$time_local | $status | $latency | $client_ip | $method $path | request_id=$request_id service=$service url=$url",
	"ddns_minimal":  "$time_local | $status | $method $path | request_id=$request_id",
}

var allowedAccessLogVars = map[string]struct{}{
	"time_local": {},
	"status":     {},
	"latency":    {},
	"latency_ms": {},
	"client_ip":  {},
	"method":     {},
	"path":       {},
	"request_id": {},
	"service":    {},
	"url":        {},
}

// ResolveAccessLogFormat picks the explicit format when set, otherwise the
// named preset.
func ResolveAccessLogFormat(format string, preset string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}
	p := strings.ToLower(strings.TrimSpace(preset))
	if p == "" {
		return "", nil
	}
	out, ok := accessLogFormatPresets[p]
	if !ok {
		return "", fmt.Errorf("invalid access_log_format_preset: %q", preset)
	}
	return out, nil
}

// CompileAccessLogFormat parses a $var template. "$$" escapes a literal
// dollar sign. An empty format compiles to nil, meaning the default line.
func CompileAccessLogFormat(format string) (*AccessLogFormatter, error) {
	s := strings.TrimSpace(format)
	if s == "" {
		return nil, nil
	}
	parts := make([]formatPart, 0, 8)
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() == 0 {
			return
		}
		parts = append(parts, formatPart{literal: lit.String()})
		lit.Reset()
	}

	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '$' {
			lit.WriteByte(ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '$' {
			lit.WriteByte('$')
			i++
			continue
		}
		flushLiteral()
		j := i + 1
		for j < len(format) {
			r := rune(format[j])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
				break
			}
			j++
		}
		if j == i+1 {
			return nil, fmt.Errorf("invalid access_log_format: missing variable name after '$' at pos %d", i)
		}
		name := format[i+1 : j]
		if _, ok := allowedAccessLogVars[name]; !ok {
			return nil, fmt.Errorf("invalid access_log_format: unknown variable $%s", name)
		}
		parts = append(parts, formatPart{varName: name})
		i = j - 1
	}
	flushLiteral()
	return &AccessLogFormatter{parts: parts}, nil
}

func (f *AccessLogFormatter) Format(
	ts time.Time,
	status int,
	latency time.Duration,
	clientIP string,
	method string,
	path string,
	fields map[string]any,
	color bool,
) string {
	if f == nil || len(f.parts) == 0 {
		return FormatRequestLineWithColor(ts, status, latency, clientIP, method, path, fields, color)
	}
	vars := baseVars(ts, status, latency, clientIP, method, path, color)
	for k, v := range fields {
		s := strings.TrimSpace(fmt.Sprintf("%v", v))
		if s == "" || s == "<nil>" {
			continue
		}
		vars[k] = s
	}

	var b strings.Builder
	for _, p := range f.parts {
		if p.literal != "" {
			b.WriteString(p.literal)
			continue
		}
		v := strings.TrimSpace(vars[p.varName])
		if v == "" {
			b.WriteByte('-')
			continue
		}
		b.WriteString(v)
	}
	return b.String()
}

// FormatRequestLineWithColor is the default access line: fixed prefix plus
// sorted key=value pairs for whatever fields the request collected.
func FormatRequestLineWithColor(
	ts time.Time,
	status int,
	latency time.Duration,
	clientIP string,
	method string,
	path string,
	fields map[string]any,
	color bool,
) string {
	var b strings.Builder
	b.WriteString(ts.Format("2006/01/02 - 15:04:05"))
	b.WriteString(" | ")
	b.WriteString(ColorizeStatusWith(status, color))
	b.WriteString(" | ")
	b.WriteString(latency.String())
	b.WriteString(" | ")
	b.WriteString(strings.TrimSpace(clientIP))
	b.WriteString(" | ")
	b.WriteString(strings.TrimSpace(method))
	b.WriteByte(' ')
	b.WriteString(path)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := strings.TrimSpace(fmt.Sprintf("%v", fields[k]))
		if v == "" || v == "<nil>" {
			continue
		}
		b.WriteString(" | ")
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String()
}

func baseVars(ts time.Time, status int, latency time.Duration, clientIP, method, path string, color bool) map[string]string {
	return map[string]string{
		"time_local": ts.Format("2006/01/02 - 15:04:05"),
		"status":     ColorizeStatusWith(status, color),
		"latency":    latency.String(),
		"latency_ms": fmt.Sprintf("%d", latency.Milliseconds()),
		"client_ip":  strings.TrimSpace(clientIP),
		"method":     strings.TrimSpace(method),
		"path":       path,
	}
}

// AccessLogAllowedVars lists the variables a format string may reference.
func AccessLogAllowedVars() []string {
	keys := make([]string, 0, len(allowedAccessLogVars))
	for k := range allowedAccessLogVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
