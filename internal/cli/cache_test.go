package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eddi-weiss/mavenizor/pkg/cache"
	"github.com/eddi-weiss/mavenizor/pkg/config"
)

func TestCacheDir(t *testing.T) {
	tests := []struct {
		name string
		env  string
		xdg  string
		want string
	}{
		{"env", "/tmp/mz-cache", "/tmp/xdg", "/tmp/mz-cache"},
		{"xdg", "", "/tmp/xdg", filepath.Join("/tmp/xdg", "mavenizor")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(envCacheDir, tt.env)
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCacheDirHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(envCacheDir, "")
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", home)

	got, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(home, ".cache", "mavenizor"); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestNewCacheBackends(t *testing.T) {
	t.Setenv(envRedisURL, "")
	ctx := context.Background()

	cfg := config.Default()
	cfg.Cache.Backend = config.BackendNone
	c, err := newCache(ctx, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("backend none gave %T", c)
	}

	cfg = config.Default()
	cfg.Cache.Dir = t.TempDir()
	if c, err = newCache(ctx, cfg, true); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("noCache gave %T", c)
	}

	if c, err = newCache(ctx, cfg, false); err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("file backend gave %T", c)
	}
	if fc.Dir() != cfg.Cache.Dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), cfg.Cache.Dir)
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "results")
	cfgPath := writeFile(t, dir, "mavenizor.toml", "[cache]\nbackend = \"file\"\ndir = \"results\"\n")
	t.Setenv(envRedisURL, "")

	fc, err := cache.NewFileCache(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "k", []byte("v"), cache.DefaultTTL); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "cache", "path", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", out, cacheDir)
	}

	out, err = execute(t, "cache", "clear", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 1 cached results") {
		t.Errorf("cache clear output = %q", out)
	}
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := New(&stderr, LogInfo).RootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}
