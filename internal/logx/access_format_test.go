package logx

import (
	"strings"
	"testing"
	"time"
)

func TestCompileAccessLogFormat_RendersVarsAndLiterals(t *testing.T) {
	f, err := CompileAccessLogFormat("$method $path cost=$$1 request_id=$request_id")
	if err != nil {
		t.Fatalf("compile err=%v", err)
	}
	got := f.Format(
		time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		200,
		25*time.Millisecond,
		"127.0.0.1",
		"GET",
		"/api/services",
		map[string]any{"request_id": "rid-1"},
		false,
	)
	want := "GET /api/services cost=$1 request_id=rid-1"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestCompileAccessLogFormat_MissingFieldRendersDash(t *testing.T) {
	f, err := CompileAccessLogFormat("service=$service")
	if err != nil {
		t.Fatalf("compile err=%v", err)
	}
	got := f.Format(time.Now(), 200, 0, "", "GET", "/", nil, false)
	if got != "service=-" {
		t.Fatalf("got %q", got)
	}
}

func TestCompileAccessLogFormat_RejectsUnknownVar(t *testing.T) {
	if _, err := CompileAccessLogFormat("$nope"); err == nil {
		t.Fatalf("expected error for unknown variable")
	}
	if _, err := CompileAccessLogFormat("trailing $"); err == nil {
		t.Fatalf("expected error for missing variable name")
	}
}

func TestResolveAccessLogFormat(t *testing.T) {
	if got, err := ResolveAccessLogFormat("$method", "ddns_minimal"); err != nil || got != "$method" {
		t.Fatalf("explicit format got=%q err=%v", got, err)
	}
	got, err := ResolveAccessLogFormat("", "ddns_minimal")
	if err != nil || !strings.Contains(got, "$request_id") {
		t.Fatalf("preset got=%q err=%v", got, err)
	}
	if _, err := ResolveAccessLogFormat("", "bogus"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
	if got, err := ResolveAccessLogFormat("", ""); err != nil || got != "" {
		t.Fatalf("empty resolve got=%q err=%v", got, err)
	}
}

func TestFormatRequestLineWithColor_SortsFields(t *testing.T) {
	got := FormatRequestLineWithColor(
		time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC),
		404,
		time.Millisecond,
		"::1",
		"GET",
		"/api/service",
		map[string]any{"service": "myddns", "request_id": "rid-2"},
		false,
	)
	if !strings.Contains(got, "404") {
		t.Fatalf("status missing from %q", got)
	}
	ri := strings.Index(got, "request_id=rid-2")
	si := strings.Index(got, "service=myddns")
	if ri < 0 || si < 0 || ri > si {
		t.Fatalf("fields not sorted in %q", got)
	}
}

func TestColorizeStatusWith(t *testing.T) {
	if got := ColorizeStatusWith(200, false); got != "200" {
		t.Fatalf("plain status=%q", got)
	}
	if got := ColorizeStatusWith(500, true); !strings.Contains(got, "500") || !strings.Contains(got, "\x1b[") {
		t.Fatalf("colored status=%q", got)
	}
}
