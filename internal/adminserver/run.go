package adminserver

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/netutil"

	"github.com/uciweb/ddnsadmin/internal/logx"
	"github.com/uciweb/ddnsadmin/pkg/config"
	"github.com/uciweb/ddnsadmin/pkg/ddnsenv"
	"github.com/uciweb/ddnsadmin/pkg/uci"
)

const requestIDHeaderKey = "X-Ddnsadmin-Request-Id"

func Run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	accessLogger, accessClose, accessColor, err := openAccessLogger(cfg)
	if err != nil {
		return fmt.Errorf("init access log: %w", err)
	}
	if accessClose != nil {
		defer func() { _ = accessClose.Close() }()
	}

	pidCleanup, err := writePIDFile(cfg)
	if err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	if pidCleanup != nil {
		defer func() { _ = pidCleanup.Close() }()
	}

	reg := uci.NewRegistry()
	loadRes, err := reg.ReloadFromDir(cfg.Services.Dir)
	if err != nil {
		return fmt.Errorf("load services dir %q: %w", cfg.Services.Dir, err)
	}
	logSkippedServices(cfg.Services.Dir, loadRes.SkippedFiles, false)

	reloadMu := &sync.Mutex{}
	installReloadSignalHandler(cfg, reg, reloadMu)
	autoReloadClose, err := installServicesAutoReload(cfg, reg, reloadMu)
	if err != nil {
		return fmt.Errorf("init services auto reload: %w", err)
	}
	if autoReloadClose != nil {
		defer func() { _ = autoReloadClose.Close() }()
	}

	accessFormat, err := logx.ResolveAccessLogFormat(cfg.Logging.AccessLogFormat, cfg.Logging.AccessLogFormatPreset)
	if err != nil {
		return fmt.Errorf("resolve access log format: %w", err)
	}
	accessFormatter, err := logx.CompileAccessLogFormat(accessFormat)
	if err != nil {
		return fmt.Errorf("compile access_log_format: %w", err)
	}

	engine := NewRouter(cfg, reg, ddnsenv.Deps{}, accessLogger, accessColor, requestIDHeaderKey, accessFormatter)

	ln, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("listen %q: %w", cfg.Server.Listen, err)
	}
	if cfg.Server.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.Server.MaxConns)
	}

	srv := &http.Server{
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
	}

	log.Printf("ddnsadmin listening on %s (services_dir=%q)", cfg.Server.Listen, cfg.Services.Dir)
	if err := srv.Serve(ln); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func openAccessLogger(cfg *config.Config) (*log.Logger, io.Closer, bool, error) {
	if cfg == nil || !cfg.Logging.AccessLog {
		return nil, nil, false, nil
	}

	path := strings.TrimSpace(cfg.Logging.AccessLogPath)
	if path == "" {
		return log.New(os.Stdout, "", log.LstdFlags), nil, logx.ColorEnabled(), nil
	}

	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, false, err
		}
	}
	// #nosec G304 -- access_log_path comes from trusted config/env.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, false, err
	}
	return log.New(f, "", log.LstdFlags), f, false, nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

func writePIDFile(cfg *config.Config) (io.Closer, error) {
	if cfg == nil {
		return nil, nil
	}
	path := strings.TrimSpace(cfg.Server.PidFile)
	if path == "" {
		return nil, nil
	}
	dir := filepath.Dir(path)
	if strings.TrimSpace(dir) != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	tmp := path + ".tmp"
	pid := strconv.Itoa(os.Getpid()) + "\n"
	// #nosec G304 -- pid_file comes from trusted config/env.
	if err := os.WriteFile(tmp, []byte(pid), 0o600); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	return closerFunc(func() error { return os.Remove(path) }), nil
}

func installReloadSignalHandler(cfg *config.Config, reg *uci.Registry, mu *sync.Mutex) {
	if cfg == nil || reg == nil || mu == nil {
		return
	}
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGHUP)
	go func() {
		for range ch {
			mu.Lock()
			res, err := reg.ReloadFromDir(cfg.Services.Dir)
			mu.Unlock()
			if err != nil {
				log.Printf("reload failed (signal): %v", err)
				continue
			}
			logSkippedServices(cfg.Services.Dir, res.SkippedFiles, true)
			log.Printf(
				"reload ok (signal): services_dir=%q services=%s",
				cfg.Services.Dir,
				namesForLog(res.LoadedServices),
			)
		}
	}()
}

func logSkippedServices(servicesDir string, skipped []string, reloading bool) {
	if len(skipped) == 0 {
		return
	}
	phase := "load"
	if reloading {
		phase = "reload"
	}
	warn := "WARNING"
	if logx.ColorEnabled() {
		warn = "\x1b[1;33mWARNING\x1b[0m"
	}
	log.Printf("[DDNSADMIN] %s [services/%s] dir=%q skipped_invalid_files=%s", warn, phase, servicesDir, strings.Join(skipped, ", "))
}
