package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topicnet/pkg/cache"
	"github.com/matzehuels/topicnet/pkg/errors"
	"github.com/matzehuels/topicnet/pkg/ingest"
	"github.com/matzehuels/topicnet/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/custom-config")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-config", appName, "config.toml"); path != want {
		t.Errorf("configPath() = %q, want %q", path, want)
	}
}

const sampleConfig = `
delimiter = ";"

[columns]
from_id = "institution"
to_id = "subject"

[layout]
width = 1200
height = 900
iterations = 80

[size]
min = 3
max = 20

[cache]
backend = "redis"
namespace = "team-a"

[cache.redis]
addr = "localhost:6379"
prefix = "topicnet:"

[server]
addr = ":9090"
metrics = false
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Delimiter != ";" {
		t.Errorf("Delimiter = %q, want ;", cfg.Delimiter)
	}
	if cfg.Columns.FromID != "institution" || cfg.Columns.ToID != "subject" {
		t.Errorf("Columns = %+v", cfg.Columns)
	}
	if cfg.Layout != (LayoutConfig{Width: 1200, Height: 900, Iterations: 80}) {
		t.Errorf("Layout = %+v", cfg.Layout)
	}
	if cfg.Size != (SizeConfig{Min: 3, Max: 20}) {
		t.Errorf("Size = %+v", cfg.Size)
	}
	if cfg.Cache.Backend != cache.BackendRedis || cfg.Cache.Redis.Addr != "localhost:6379" || cfg.Cache.Redis.Prefix != "topicnet:" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.Namespace != "team-a" {
		t.Errorf("Cache.Namespace = %q, want team-a", cfg.Cache.Namespace)
	}
	if got := cfg.serverAddr(":8080"); got != ":9090" {
		t.Errorf("serverAddr() = %q, want :9090", got)
	}
	if cfg.metricsEnabled() {
		t.Error("metricsEnabled() = true, want false")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() without a default file should succeed, got %v", err)
	}
	if got := cfg.serverAddr(":8080"); got != ":8080" {
		t.Errorf("serverAddr() = %q, want fallback", got)
	}
	if !cfg.metricsEnabled() {
		t.Error("metrics should default to enabled")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"explicit missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }},
		{"syntax error", func(t *testing.T) string { return writeConfig(t, "[layout\nwidth = 1") }},
		{"unknown key", func(t *testing.T) string { return writeConfig(t, "[layout]\nwidht = 1200\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path(t))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigApply(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{Use: "test"}
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	var noCache bool
	loadFlags(cmd, &opts, &noCache)
	layoutFlags(cmd, &opts)
	if err := cmd.Flags().Parse([]string{"--width", "640"}); err != nil {
		t.Fatal(err)
	}

	cfg.apply(&opts, cmd.Flags())

	if opts.Width != 640 {
		t.Errorf("Width = %g, flag should win over config", opts.Width)
	}
	if opts.Height != 900 || opts.Iterations != 80 {
		t.Errorf("Height, Iterations = %g, %d, want config values", opts.Height, opts.Iterations)
	}
	if opts.MinSize != 3 || opts.MaxSize != 20 {
		t.Errorf("size range = %g..%g, want 3..20", opts.MinSize, opts.MaxSize)
	}
	if opts.Delimiter != ";" {
		t.Errorf("Delimiter = %q, want ;", opts.Delimiter)
	}
	want := ingest.Columns{FromID: "institution", ToID: "subject"}
	if opts.Columns != want {
		t.Errorf("Columns = %+v, want %+v", opts.Columns, want)
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(os.Stderr, LogInfo)

	ch, err := c.newCache(t.Context(), true)
	if err != nil {
		t.Fatalf("newCache(noCache) error: %v", err)
	}
	if _, ok := ch.(cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want NullCache", ch)
	}

	c.config.Cache = cache.Config{Dir: t.TempDir()}
	ch, err = c.newCache(t.Context(), false)
	if err != nil {
		t.Fatalf("newCache(file) error: %v", err)
	}
	if _, ok := ch.(*cache.FileCache); !ok {
		t.Errorf("newCache(file) = %T, want *FileCache", ch)
	}

	c.config.Cache = cache.Config{Backend: "memcached"}
	if _, err := c.newCache(t.Context(), false); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("newCache(unknown) error = %v, want INVALID_CONFIG", err)
	}
}
