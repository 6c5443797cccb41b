package adminserver

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/uciweb/ddnsadmin/internal/logx"
	"github.com/uciweb/ddnsadmin/pkg/requestid"
)

// context keys the handlers may set for the access log line.
const (
	ctxKeyService = "ddnsadmin.service"
	ctxKeyURL     = "ddnsadmin.url"
)

type accessLogRecord struct {
	RequestID string
	Service   string
	URL       string
	LatencyMS int64
}

func (r accessLogRecord) Fields() map[string]any {
	out := make(map[string]any, 4)
	if strings.TrimSpace(r.RequestID) != "" {
		out["request_id"] = r.RequestID
	}
	if strings.TrimSpace(r.Service) != "" {
		out["service"] = r.Service
	}
	if strings.TrimSpace(r.URL) != "" {
		out["url"] = r.URL
	}
	out["latency_ms"] = r.LatencyMS
	return out
}

func requestIDMiddleware(headerKey string) gin.HandlerFunc {
	headerKey = requestid.ResolveHeaderKey(headerKey)
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerKey))
		if id == "" {
			id = requestid.Gen()
		}
		c.Header(headerKey, id)
		c.Set(headerKey, id)
		c.Next()
	}
}

func requestLoggerWithColor(l *log.Logger, color bool, requestIDHeaderKey string, accessFormatter *logx.AccessLogFormatter) gin.HandlerFunc {
	requestIDHeaderKey = requestid.ResolveHeaderKey(requestIDHeaderKey)
	if l == nil {
		l = log.New(os.Stdout, "", log.LstdFlags)
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		rec := accessLogRecord{
			RequestID: c.GetString(requestIDHeaderKey),
			Service:   c.GetString(ctxKeyService),
			URL:       c.GetString(ctxKeyURL),
			LatencyMS: latency.Milliseconds(),
		}
		fields := rec.Fields()

		ts := time.Now()
		if accessFormatter != nil {
			l.Println(accessFormatter.Format(ts, status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
			return
		}
		l.Println(logx.FormatRequestLineWithColor(ts, status, latency, c.ClientIP(), c.Request.Method, c.Request.URL.Path, fields, color))
	}
}
