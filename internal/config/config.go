package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const appName = "techmood"

// EnvAPIURL overrides api_url when set.
const EnvAPIURL = "TECHMOOD_API_URL"

// Theme selects the color palette.
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

type Config struct {
	APIURL     string  `yaml:"api_url"`
	Timeout    string  `yaml:"timeout"`
	RateLimit  float64 `yaml:"rate_limit"`
	Breakpoint int     `yaml:"breakpoint"`
	Theme      Theme   `yaml:"theme"`
	Shuffle    bool    `yaml:"shuffle"`
	Prefetch   bool    `yaml:"prefetch"`
	SeenLimit  int     `yaml:"seen_limit"`
	CachePages int     `yaml:"cache_pages"`
	LogLevel   string  `yaml:"log_level"`
}

func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// RateBurst is the burst allowed on top of RateLimit.
func (c *Config) RateBurst() int {
	if c.RateLimit <= 0 {
		return 0
	}
	return max(1, int(c.RateLimit/2))
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// StorePath is the sqlite file holding bookmarks and seen articles.
func StorePath() string {
	return filepath.Join(xdg.DataHome, appName, appName+".db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path, or the default path when empty. Keys the
// file leaves out keep their default values. A missing file is created with
// the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: the embedded defaults still apply.
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url: missing host")
	}
	if cfg.Timeout != "" {
		if _, err := time.ParseDuration(cfg.Timeout); err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", cfg.RateLimit)
	}
	if cfg.Breakpoint <= 0 {
		return fmt.Errorf("breakpoint must be positive, got %d", cfg.Breakpoint)
	}
	switch cfg.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return fmt.Errorf("unknown theme %q (valid: auto, dark, light)", cfg.Theme)
	}
	if cfg.SeenLimit <= 0 {
		return fmt.Errorf("seen_limit must be positive, got %d", cfg.SeenLimit)
	}
	if cfg.CachePages < 0 {
		return fmt.Errorf("cache_pages must not be negative, got %d", cfg.CachePages)
	}
	switch strings.ToLower(cfg.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", cfg.LogLevel)
	}
	return nil
}
