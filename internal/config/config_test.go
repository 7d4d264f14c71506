package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.APIURL != "https://tech-mood-backend-production.up.railway.app" {
		t.Errorf("unexpected default api_url %q", cfg.APIURL)
	}
	if cfg.Breakpoint != 100 {
		t.Errorf("expected breakpoint 100, got %d", cfg.Breakpoint)
	}
	if cfg.SeenLimit != 2000 {
		t.Errorf("expected seen_limit 2000, got %d", cfg.SeenLimit)
	}
	if cfg.CachePages != 128 {
		t.Errorf("expected cache_pages 128, got %d", cfg.CachePages)
	}
	if err := validate(cfg); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestTimeoutDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"1m", time.Minute},
		{"", 10 * time.Second},
		{"invalid", 10 * time.Second},
		{"-5s", 10 * time.Second},
	}
	for _, tt := range tests {
		cfg := &Config{Timeout: tt.input}
		if got := cfg.TimeoutDuration(); got != tt.want {
			t.Errorf("TimeoutDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRateBurst(t *testing.T) {
	tests := []struct {
		limit float64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 5},
	}
	for _, tt := range tests {
		cfg := &Config{RateLimit: tt.limit}
		if got := cfg.RateBurst(); got != tt.want {
			t.Errorf("RateBurst(%v) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestLoadFromFileMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `theme: light
breakpoint: 120
shuffle: false
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != ThemeLight {
		t.Errorf("expected light theme, got %s", cfg.Theme)
	}
	if cfg.Breakpoint != 120 {
		t.Errorf("expected breakpoint 120, got %d", cfg.Breakpoint)
	}
	if cfg.Shuffle {
		t.Error("expected shuffle disabled by user config")
	}
	// Keys missing from the file keep their defaults
	if cfg.APIURL == "" || !cfg.Prefetch || cfg.SeenLimit != 2000 {
		t.Errorf("expected defaults for unset keys, got %+v", cfg)
	}
}

func TestLoadNonexistentWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "sub", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != ThemeAuto {
		t.Errorf("expected default theme, got %s", cfg.Theme)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(cfgPath, []byte("theme: [unclosed"), 0o644)

	if _, err := Load(cfgPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://localhost:8080")
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("expected env override, got %s", cfg.APIURL)
	}
}

func TestLoadEnvOverrideValidated(t *testing.T) {
	t.Setenv(EnvAPIURL, "ftp://example.com")
	if _, err := Load(filepath.Join(t.TempDir(), "config.yaml")); err == nil {
		t.Error("expected error for ftp api_url")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			APIURL:     "https://example.com",
			Timeout:    "5s",
			RateLimit:  2,
			Breakpoint: 100,
			Theme:      ThemeDark,
			SeenLimit:  10,
			LogLevel:   "info",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"http accepted", func(c *Config) { c.APIURL = "http://example.com" }, false},
		{"missing url", func(c *Config) { c.APIURL = "" }, true},
		{"file scheme", func(c *Config) { c.APIURL = "file:///etc/passwd" }, true},
		{"no host", func(c *Config) { c.APIURL = "https://" }, true},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, true},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, true},
		{"zero breakpoint", func(c *Config) { c.Breakpoint = 0 }, true},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, true},
		{"zero seen limit", func(c *Config) { c.SeenLimit = 0 }, true},
		{"negative cache pages", func(c *Config) { c.CachePages = -1 }, true},
		{"default cache pages", func(c *Config) { c.CachePages = 0 }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, false},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		err := validate(cfg)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestPaths(t *testing.T) {
	for name, p := range map[string]string{
		"config": DefaultConfigPath(),
		"store":  StorePath(),
		"log":    LogPath(),
	} {
		if !filepath.IsAbs(p) {
			t.Errorf("%s path %q is not absolute", name, p)
		}
		if filepath.Base(filepath.Dir(p)) != appName {
			t.Errorf("%s path %q is not under a %s directory", name, p, appName)
		}
	}
}
