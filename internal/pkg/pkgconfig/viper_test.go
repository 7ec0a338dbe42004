package pkgconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "int: 42\nbool: true\nstring: hi\narray: a, b,c\n")

	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := cfg.GetArray("array"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GetArray: unexpected value: %#v", got)
	}
	if got := cfg.GetArray("missing"); got != nil {
		t.Fatalf("GetArray: expected nil for missing key, got %#v", got)
	}
}

func TestViperGetDuration(t *testing.T) {
	path := writeConfigFile(t, "notifications:\n  delay: 3000\nupstream:\n  timeout: 5s\n")
	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetDuration("notifications.delay"); got != 3*time.Second {
		t.Fatalf("expected 3s from milliseconds, got %v", got)
	}
	if got := cfg.GetDuration("upstream.timeout"); got != 5*time.Second {
		t.Fatalf("expected 5s, got %v", got)
	}
	if got := cfg.GetDuration("missing"); got != 0 {
		t.Fatalf("expected 0 for missing key, got %v", got)
	}
}

func TestViperDefaultsAndEnv(t *testing.T) {
	path := writeConfigFile(t, "server:\n  address:\n    http: \":8080\"\n")
	t.Setenv("SLUGLINE_UPSTREAM_BASE_URL", "http://upstream/api")

	cfg, err := NewViper(path, map[string]any{
		"upstream.base_url":       "/api",
		"modules.profile.enabled": true,
		"server.address.http":     ":9999",
	})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("upstream.base_url"); got != "http://upstream/api" {
		t.Fatalf("expected env override, got %q", got)
	}
	if got := cfg.GetBool("modules.profile.enabled"); !got {
		t.Fatalf("expected default to apply")
	}
	if got := cfg.GetString("server.address.http"); got != ":8080" {
		t.Fatalf("expected file to win over default, got %q", got)
	}
}

func TestNewViperMissingFile(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "config.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
