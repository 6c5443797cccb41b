package adminserver

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/uciweb/ddnsadmin/internal/logx"
)

func mustCompile(t *testing.T, format string) *logx.AccessLogFormatter {
	t.Helper()
	f, err := logx.CompileAccessLogFormat(format)
	if err != nil {
		t.Fatalf("compile %q: %v", format, err)
	}
	return f
}

func TestRequestIDMiddleware_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(requestIDMiddleware(requestIDHeaderKey))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Header().Get(requestIDHeaderKey) == "" {
		t.Fatalf("expected generated request id header")
	}
}

func TestRequestIDMiddleware_KeepsProvidedID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(requestIDMiddleware(requestIDHeaderKey))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeaderKey, "rid-keep")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeaderKey); got != "rid-keep" {
		t.Fatalf("request id header=%q", got)
	}
}

func TestRequestLogger_IncludesRequestIDAndService(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var out bytes.Buffer
	l := log.New(&out, "", 0)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(requestIDHeaderKey, "rid-1")
		c.Next()
	})
	r.Use(requestLoggerWithColor(l, false, requestIDHeaderKey, nil))
	r.GET("/api/service", func(c *gin.Context) {
		c.Set(ctxKeyService, "myddns")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/service", nil))

	line := out.String()
	if !strings.Contains(line, "request_id=rid-1") {
		t.Fatalf("request_id missing in %q", line)
	}
	if !strings.Contains(line, "service=myddns") {
		t.Fatalf("service missing in %q", line)
	}
	if !strings.Contains(line, "GET /api/service") {
		t.Fatalf("method/path missing in %q", line)
	}
}

func TestRequestLogger_UsesCompiledFormatter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var out bytes.Buffer
	l := log.New(&out, "", 0)
	f := mustCompile(t, "$method $path rid=$request_id")

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(requestIDHeaderKey, "rid-9")
		c.Next()
	})
	r.Use(requestLoggerWithColor(l, false, requestIDHeaderKey, f))
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if got := strings.TrimSpace(out.String()); got != "GET /healthz rid=rid-9" {
		t.Fatalf("formatted line=%q", got)
	}
}
