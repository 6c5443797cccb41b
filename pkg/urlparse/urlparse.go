// Package urlparse decomposes URL strings into their RFC 2396 parts.
//
// Decompose is deliberately not a general URI library: it performs the same
// ordered, destructive substring extraction the router web UI has always
// relied on. No percent-decoding, no host validation, no relative resolution.
package urlparse

import "strings"

// URL holds the parts extracted from one URL string. Path is always present
// (possibly empty); every other field is nil unless its pattern matched.
// Pointer fields distinguish "absent" from "matched but empty" (a trailing
// "?" yields an empty, non-nil Query).
type URL struct {
	Scheme    *string `json:"scheme,omitempty"`
	Authority *string `json:"authority,omitempty"`
	Userinfo  *string `json:"userinfo,omitempty"`
	User      *string `json:"user,omitempty"`
	Password  *string `json:"password,omitempty"`
	Host      *string `json:"host,omitempty"`
	Port      *string `json:"port,omitempty"`
	Path      string  `json:"path"`
	Params    *string `json:"params,omitempty"`
	Query     *string `json:"query,omitempty"`
	Fragment  *string `json:"fragment,omitempty"`
}

// Decompose splits raw into its RFC 2396 components. It never fails:
// malformed input simply leaves the unmatched fields nil. Each step consumes
// the matched text before the next step runs, so extraction order determines
// the result for degenerate inputs (repeated delimiters and the like).
func Decompose(raw string) URL {
	var u URL
	rest := raw

	// Fragment: first '#' to end of string.
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.Fragment = capture(rest[i+1:])
		rest = rest[:i]
	}

	// Scheme: anchored letter-led prefix up to ':'.
	if scheme, after, ok := splitScheme(rest); ok {
		u.Scheme = capture(strings.ToLower(scheme))
		rest = after
	}

	// Authority: "//" up to the next '/' or end.
	if strings.HasPrefix(rest, "//") {
		auth := rest[2:]
		if i := strings.IndexByte(auth, '/'); i >= 0 {
			u.Authority = capture(auth[:i])
			rest = auth[i:]
		} else {
			u.Authority = capture(auth)
			rest = ""
		}
	}

	// Query before params: first '?' to end, then first ';' to end.
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.Query = capture(rest[i+1:])
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		u.Params = capture(rest[i+1:])
		rest = rest[:i]
	}

	u.Path = rest

	if u.Authority == nil {
		return u
	}

	// Userinfo: everything before the first '@' in the authority.
	auth := *u.Authority
	if i := strings.IndexByte(auth, '@'); i >= 0 {
		u.Userinfo = capture(auth[:i])
		auth = auth[i+1:]
	}

	// Port: trailing ":<digits>". A bare trailing ':' is stripped but
	// captures nothing.
	if i := strings.LastIndexByte(auth, ':'); i >= 0 && allDigits(auth[i+1:]) {
		if digits := auth[i+1:]; digits != "" {
			u.Port = capture(digits)
		}
		auth = auth[:i]
	}

	if auth != "" {
		u.Host = capture(auth)
	}

	if u.Userinfo == nil {
		return u
	}

	// Password: after the last ':' in userinfo; user is what remains.
	info := *u.Userinfo
	if i := strings.LastIndexByte(info, ':'); i >= 0 {
		u.Password = capture(info[i+1:])
		info = info[:i]
	}
	if info != "" {
		u.User = capture(info)
	}

	return u
}

// Format reassembles a decomposed URL in RFC 2396 order. It is the inverse
// of Decompose for inputs whose parts carry no stray delimiters; fields that
// Decompose derives from others (userinfo, user, password, host, port) are
// preferred over the composite authority only when authority is nil.
func Format(u URL) string {
	var b strings.Builder
	if u.Scheme != nil {
		b.WriteString(*u.Scheme)
		b.WriteByte(':')
	}
	switch {
	case u.Authority != nil:
		b.WriteString("//")
		b.WriteString(*u.Authority)
	case u.Host != nil:
		b.WriteString("//")
		if u.Userinfo != nil {
			b.WriteString(*u.Userinfo)
			b.WriteByte('@')
		} else if u.User != nil {
			b.WriteString(*u.User)
			if u.Password != nil {
				b.WriteByte(':')
				b.WriteString(*u.Password)
			}
			b.WriteByte('@')
		}
		b.WriteString(*u.Host)
		if u.Port != nil {
			b.WriteByte(':')
			b.WriteString(*u.Port)
		}
	}
	b.WriteString(u.Path)
	if u.Params != nil {
		b.WriteByte(';')
		b.WriteString(*u.Params)
	}
	if u.Query != nil {
		b.WriteByte('?')
		b.WriteString(*u.Query)
	}
	if u.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.Fragment)
	}
	return b.String()
}

// splitScheme matches an anchored [A-Za-z][A-Za-z0-9+.-]* prefix followed by
// ':'. Anything else, including a digit-led prefix, leaves the string
// untouched so a stray ':' stays in the residual.
func splitScheme(s string) (scheme, rest string, ok bool) {
	if s == "" || !isAlpha(s[0]) {
		return "", s, false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case isAlpha(c) || isDigit(c) || c == '+' || c == '-' || c == '.':
		case c == ':':
			return s[:i], s[i+1:], true
		default:
			return "", s, false
		}
	}
	return "", s, false
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func capture(s string) *string {
	return &s
}
