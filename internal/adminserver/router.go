package adminserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/uciweb/ddnsadmin/internal/logx"
	"github.com/uciweb/ddnsadmin/pkg/config"
	"github.com/uciweb/ddnsadmin/pkg/ddnsenv"
	"github.com/uciweb/ddnsadmin/pkg/requestid"
	"github.com/uciweb/ddnsadmin/pkg/uci"
	"github.com/uciweb/ddnsadmin/pkg/urlparse"
)

type serviceSummary struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Host    string `json:"lookup_host,omitempty"`
	File    string `json:"file,omitempty"`
}

type serviceDetail struct {
	Name      string              `json:"name"`
	Enabled   bool                `json:"enabled"`
	File      string              `json:"file,omitempty"`
	Options   map[string]string   `json:"options"`
	Lists     map[string][]string `json:"lists,omitempty"`
	UpdateURL *urlparse.URL       `json:"update_url,omitempty"`
}

func NewRouter(
	cfg *config.Config,
	reg *uci.Registry,
	envDeps ddnsenv.Deps,
	accessLogger *log.Logger,
	accessLoggerColor bool,
	requestIDHeaderKey string,
	accessFormatter *logx.AccessLogFormatter,
) *gin.Engine {
	resolvedRequestIDHeaderKey := requestid.ResolveHeaderKey(requestIDHeaderKey)
	r := gin.New()
	r.Use(requestIDMiddleware(resolvedRequestIDHeaderKey))
	if cfg.Logging.AccessLog {
		r.Use(requestLoggerWithColor(accessLogger, accessLoggerColor, resolvedRequestIDHeaderKey, accessFormatter))
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")

	api.GET("/url/decompose", func(c *gin.Context) {
		raw, ok := c.GetQuery("url")
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "url parameter is required"})
			return
		}
		u := urlparse.Decompose(raw)
		c.Set(ctxKeyURL, raw)
		c.JSON(http.StatusOK, gin.H{"ok": true, "url": u})
	})

	api.GET("/services", func(c *gin.Context) {
		names := reg.ListServiceNames()
		out := make([]serviceSummary, 0, len(names))
		for _, name := range names {
			svc, ok := reg.GetService(name)
			if !ok {
				continue
			}
			out = append(out, serviceSummary{
				Name:    svc.Name,
				Enabled: svc.Enabled(),
				Host:    svc.Section.Get("lookup_host"),
				File:    svc.Path,
			})
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "services": out})
	})

	api.GET("/service", func(c *gin.Context) {
		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name parameter is required"})
			return
		}
		svc, ok := reg.GetService(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
			return
		}
		c.Set(ctxKeyService, svc.Name)
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": buildServiceDetail(svc)})
	})

	api.GET("/env", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": ddnsenv.Check(envDeps)})
	})

	return r
}

func buildServiceDetail(svc uci.Service) serviceDetail {
	detail := serviceDetail{
		Name:    svc.Name,
		Enabled: svc.Enabled(),
		File:    svc.Path,
		Options: svc.Section.Options,
	}
	if len(svc.Section.Lists) > 0 {
		detail.Lists = svc.Section.Lists
	}
	if raw := strings.TrimSpace(svc.Section.Get("update_url")); raw != "" {
		u := urlparse.Decompose(raw)
		detail.UpdateURL = &u
	}
	return detail
}
