// Package config resolves the client's settings from defaults, an optional
// JSONC file, a .env file, the environment, and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

const (
	// DefaultAPIURL is where the extraction backend listens by default.
	DefaultAPIURL = "http://localhost:4000"
	// DefaultTimeout bounds each backend request.
	DefaultTimeout = 15 * time.Second

	EnvAPIURL  = "MINUTES_API_URL"
	EnvTimeout = "MINUTES_TIMEOUT"
	EnvLogFile = "MINUTES_LOG_FILE"

	appDir         = "minutes"
	configFileName = "config.json"
	dotenvFileName = ".env"
)

var (
	// ErrInvalidConfig wraps every validation or parse failure.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrConfigNotFound is returned when an explicit config path is missing.
	ErrConfigNotFound = errors.New("config file not found")
)

// Config is the resolved client configuration.
type Config struct {
	APIURL  string
	Timeout time.Duration
	LogFile string
}

// Sources records which files contributed to a Config.
type Sources struct {
	File   string
	Dotenv string
}

// Overrides carries values set explicitly on the command line. Zero values
// mean "not set".
type Overrides struct {
	APIURL  string
	Timeout time.Duration
	LogFile string
}

// Options controls where Load looks.
type Options struct {
	// ConfigPath is an explicit config file; it must exist when set.
	ConfigPath string
	// WorkDir is where .env is looked up. Defaults to the current directory.
	WorkDir string
	// Getenv defaults to os.Getenv.
	Getenv    func(string) string
	Overrides Overrides
}

type fileConfig struct {
	APIURL  string `json:"api_url"`
	Timeout string `json:"timeout"`
	LogFile string `json:"log_file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{APIURL: DefaultAPIURL, Timeout: DefaultTimeout}
}

// Load resolves the configuration. Precedence, lowest to highest: defaults,
// config file, .env, environment, overrides.
func Load(opts Options) (Config, Sources, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	var sources Sources

	path, mustExist := opts.ConfigPath, true
	if path == "" {
		path, mustExist = defaultConfigPath(getenv), false
	}
	if path != "" {
		fc, loaded, err := loadFile(path, mustExist)
		if err != nil {
			return Config{}, Sources{}, err
		}
		if loaded {
			sources.File = path
			if err := apply(&cfg, fc.APIURL, fc.Timeout, fc.LogFile); err != nil {
				return Config{}, Sources{}, fmt.Errorf("%w %s: %w", ErrInvalidConfig, path, err)
			}
		}
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	dotenvPath := filepath.Join(workDir, dotenvFileName)
	dotenv, err := godotenv.Read(dotenvPath)
	switch {
	case err == nil:
		sources.Dotenv = dotenvPath
		if err := apply(&cfg, dotenv[EnvAPIURL], dotenv[EnvTimeout], dotenv[EnvLogFile]); err != nil {
			return Config{}, Sources{}, fmt.Errorf("%w %s: %w", ErrInvalidConfig, dotenvPath, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, Sources{}, fmt.Errorf("%w %s: %w", ErrInvalidConfig, dotenvPath, err)
	}

	if err := apply(&cfg, getenv(EnvAPIURL), getenv(EnvTimeout), getenv(EnvLogFile)); err != nil {
		return Config{}, Sources{}, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
	}

	o := opts.Overrides
	if v := strings.TrimSpace(o.APIURL); v != "" {
		cfg.APIURL = v
	}
	if o.Timeout != 0 {
		cfg.Timeout = o.Timeout
	}
	if v := strings.TrimSpace(o.LogFile); v != "" {
		cfg.LogFile = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, Sources{}, err
	}
	return cfg, sources, nil
}

// Validate checks the final values.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api url %q must be an http(s) URL", ErrInvalidConfig, c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// apply layers non-blank raw values onto cfg.
func apply(cfg *Config, apiURL, timeout, logFile string) error {
	if v := strings.TrimSpace(apiURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("timeout %q: %w", v, err)
		}
		cfg.Timeout = d
	}
	if v := strings.TrimSpace(logFile); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// defaultConfigPath returns $XDG_CONFIG_HOME/minutes/config.json, falling
// back to ~/.config. Empty when no home directory can be found.
func defaultConfigPath(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir, configFileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDir, configFileName)
}

func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return fileConfig{}, false, nil
		}
		return fileConfig{}, false, fmt.Errorf("read config %s: %w", path, err)
	}
	fc, err := parseFile(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrInvalidConfig, path, err)
	}
	return fc, true, nil
}

func parseFile(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return fc, nil
}
