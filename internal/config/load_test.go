package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_NoConfig(t *testing.T) {
	tmp := t.TempDir()
	cfg, path, xe := LoadConfig(Options{WorkDir: tmp, ConfigHome: tmp})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if path != "" {
		t.Fatalf("expected empty path, got %q", path)
	}
	if cfg.Profiles == nil {
		t.Fatal("expected non-nil Profiles map")
	}
	if len(cfg.Profiles) != 0 {
		t.Fatalf("expected empty profiles, got %d", len(cfg.Profiles))
	}
}

func TestLoadConfig_ExplicitConfigMissing(t *testing.T) {
	tmp := t.TempDir()
	_, _, xe := LoadConfig(Options{WorkDir: tmp, ConfigHome: tmp, ConfigPath: "no_such.yaml"})
	if xe == nil {
		t.Fatal("expected error")
	}
	if xe.Code != "XKEYRING_CFG_NOT_FOUND" {
		t.Fatalf("expected XKEYRING_CFG_NOT_FOUND, got %s", xe.Code)
	}
}

func TestLoadConfig_WorkDirConfig(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "xkeyring.yaml")
	writeConfig(t, path, `profiles:
  dev:
    service: myapp-dev
    format: json
  prod:
    service: myapp
    target: work
    description: production credentials
mcp:
  transport: streamable_http
  allow_reveal: true
  http:
    addr: 127.0.0.1:9000
    auth_token: keyring:mcp/token
`)

	file, cfgPath, xe := LoadConfig(Options{WorkDir: tmp, ConfigHome: t.TempDir()})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != path {
		t.Fatalf("expected path %q, got %q", path, cfgPath)
	}
	if len(file.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(file.Profiles))
	}
	prod := file.Profiles["prod"]
	if prod.Service != "myapp" || prod.Target != "work" || prod.Description != "production credentials" {
		t.Errorf("unexpected prod profile: %+v", prod)
	}
	if file.MCP.Transport != "streamable_http" || !file.MCP.AllowReveal {
		t.Errorf("unexpected mcp config: %+v", file.MCP)
	}
	if file.MCP.HTTP.Addr != "127.0.0.1:9000" || file.MCP.HTTP.AuthToken != "keyring:mcp/token" {
		t.Errorf("unexpected mcp http config: %+v", file.MCP.HTTP)
	}
}

func TestLoadConfig_ConfigHome(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "xkeyring", "xkeyring.yaml")
	writeConfig(t, path, "profiles:\n  default:\n    service: fromhome\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: t.TempDir(), ConfigHome: home})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != path {
		t.Fatalf("expected path %q, got %q", path, cfgPath)
	}
	if file.Profiles["default"].Service != "fromhome" {
		t.Errorf("unexpected profile: %+v", file.Profiles["default"])
	}
}

func TestLoadConfig_WorkDirTakesPrecedence(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()
	writeConfig(t, filepath.Join(work, "xkeyring.yaml"), "profiles:\n  default:\n    service: fromwork\n")
	writeConfig(t, filepath.Join(home, "xkeyring", "xkeyring.yaml"), "profiles:\n  default:\n    service: fromhome\n")

	file, _, xe := LoadConfig(Options{WorkDir: work, ConfigHome: home})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if file.Profiles["default"].Service != "fromwork" {
		t.Errorf("work dir config should win, got %+v", file.Profiles["default"])
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "xkeyring.yaml"), "profiles: [unclosed\n")

	_, _, xe := LoadConfig(Options{WorkDir: tmp, ConfigHome: tmp})
	if xe == nil {
		t.Fatal("expected error")
	}
	if xe.Code != "XKEYRING_CFG_INVALID" {
		t.Fatalf("expected XKEYRING_CFG_INVALID, got %s", xe.Code)
	}
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "custom.yaml"), "profiles:\n  x:\n    service: custom\n")

	file, cfgPath, xe := LoadConfig(Options{WorkDir: tmp, ConfigHome: tmp, ConfigPath: "custom.yaml"})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if cfgPath != filepath.Join(tmp, "custom.yaml") {
		t.Errorf("relative path should resolve against work dir, got %q", cfgPath)
	}
	if file.Profiles["x"].Service != "custom" {
		t.Errorf("unexpected profile: %+v", file.Profiles["x"])
	}
}
