package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ServicesConfig struct {
	Dir string `yaml:"dir"`
	// AutoReload watches services.dir and reloads UCI service files at runtime.
	AutoReload struct {
		Enabled    bool `yaml:"enabled"`
		DebounceMs int  `yaml:"debounce_ms"`
	} `yaml:"auto_reload"`
}

type LoggingConfig struct {
	AccessLog             bool   `yaml:"access_log"`
	AccessLogPath         string `yaml:"access_log_path"`
	AccessLogFormat       string `yaml:"access_log_format"`
	AccessLogFormatPreset string `yaml:"access_log_format_preset"`
}

type Config struct {
	Server struct {
		Listen         string `yaml:"listen"`
		ReadTimeoutMs  int    `yaml:"read_timeout_ms"`
		WriteTimeoutMs int    `yaml:"write_timeout_ms"`
		PidFile        string `yaml:"pid_file"`
		// MaxConns caps concurrent admin connections; 0 disables the cap.
		MaxConns int `yaml:"max_conns"`
	} `yaml:"server"`

	Services ServicesConfig `yaml:"services"`

	Logging LoggingConfig `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is provided by trusted config/flag.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadIfExists returns nil without error when the file is absent, so CLI
// commands can fall back to built-in defaults.
func LoadIfExists(path string) (*Config, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, nil
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Load(p)
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = "127.0.0.1:8045"
	}
	if cfg.Server.ReadTimeoutMs <= 0 {
		cfg.Server.ReadTimeoutMs = 30000
	}
	if cfg.Server.WriteTimeoutMs <= 0 {
		cfg.Server.WriteTimeoutMs = 30000
	}
	if strings.TrimSpace(cfg.Server.PidFile) == "" {
		cfg.Server.PidFile = "/var/run/ddnsadmin.pid"
	}
	if strings.TrimSpace(cfg.Services.Dir) == "" {
		cfg.Services.Dir = "/etc/config"
	}
	if cfg.Services.AutoReload.DebounceMs <= 0 {
		cfg.Services.AutoReload.DebounceMs = 300
	}
	// default true for local debugging
	if !cfg.Logging.AccessLog {
		cfg.Logging.AccessLog = true
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DDNSADM_LISTEN")); v != "" {
		cfg.Server.Listen = v
	}
	if n, ok := envInt("DDNSADM_READ_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.ReadTimeoutMs = n
	}
	if n, ok := envInt("DDNSADM_WRITE_TIMEOUT_MS"); ok && n > 0 {
		cfg.Server.WriteTimeoutMs = n
	}
	if v := strings.TrimSpace(os.Getenv("DDNSADM_PID_FILE")); v != "" {
		cfg.Server.PidFile = v
	}
	if n, ok := envInt("DDNSADM_MAX_CONNS"); ok && n >= 0 {
		cfg.Server.MaxConns = n
	}
	if v := strings.TrimSpace(os.Getenv("DDNSADM_SERVICES_DIR")); v != "" {
		cfg.Services.Dir = v
	}
	cfg.Services.AutoReload.Enabled = envBool("DDNSADM_SERVICES_AUTO_RELOAD_ENABLED", cfg.Services.AutoReload.Enabled)
	if n, ok := envInt("DDNSADM_SERVICES_AUTO_RELOAD_DEBOUNCE_MS"); ok {
		cfg.Services.AutoReload.DebounceMs = n
	}
	cfg.Logging.AccessLog = envBool("DDNSADM_ACCESS_LOG", cfg.Logging.AccessLog)
	if v := strings.TrimSpace(os.Getenv("DDNSADM_ACCESS_LOG_PATH")); v != "" {
		cfg.Logging.AccessLogPath = v
	}
	if v := os.Getenv("DDNSADM_ACCESS_LOG_FORMAT"); strings.TrimSpace(v) != "" {
		cfg.Logging.AccessLogFormat = v
	}
	if v := strings.TrimSpace(os.Getenv("DDNSADM_ACCESS_LOG_FORMAT_PRESET")); v != "" {
		cfg.Logging.AccessLogFormatPreset = v
	}
}

func validate(cfg *Config) error {
	if cfg.Server.MaxConns < 0 {
		return errors.New("server.max_conns must be non-negative")
	}
	if cfg.Services.AutoReload.Enabled && cfg.Services.AutoReload.DebounceMs <= 0 {
		return errors.New("services.auto_reload.debounce_ms must be > 0 when services.auto_reload.enabled=true")
	}
	return nil
}

func envInt(name string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func envBool(name string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
