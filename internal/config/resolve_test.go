package config

import (
	"path/filepath"
	"testing"
)

func TestResolve_DefaultPaths_NoConfig(t *testing.T) {
	tmp := t.TempDir()
	r, xe := Resolve(Options{WorkDir: tmp, ConfigHome: tmp})
	if xe != nil {
		t.Fatalf("unexpected error: %v", xe)
	}
	if r.ConfigPath != "" || r.ProfileName != "" {
		t.Fatalf("unexpected resolved: %+v", r)
	}
	if r.Format != "auto" || r.Service != DefaultService || r.Target != "" {
		t.Fatalf("unexpected defaults: %+v", r)
	}
}

func TestResolve_ExplicitConfigMissingIsError(t *testing.T) {
	tmp := t.TempDir()
	_, xe := Resolve(Options{WorkDir: tmp, ConfigHome: tmp, ConfigPath: "missing.yaml"})
	if xe == nil || xe.Code != "XKEYRING_CFG_NOT_FOUND" {
		t.Fatalf("expected XKEYRING_CFG_NOT_FOUND, got %v", xe)
	}
}

const precedenceConfig = `profiles:
  default:
    service: defsvc
    format: yaml
  dev:
    service: devsvc
    target: devcoll
    format: table
mcp:
  allow_reveal: true
`

func TestResolve_Precedence(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "xkeyring.yaml"), precedenceConfig)
	base := Options{WorkDir: tmp, ConfigHome: tmp}

	cases := []struct {
		name        string
		mutate      func(*Options)
		wantProfile string
		wantFormat  string
		wantService string
		wantTarget  string
	}{
		{"default_profile", func(*Options) {}, "default", "yaml", "defsvc", ""},
		{"env_profile", func(o *Options) { o.EnvProfile = "dev" }, "dev", "table", "devsvc", "devcoll"},
		{"cli_profile_beats_env", func(o *Options) {
			o.EnvProfile = "dev"
			o.CLIProfile, o.CLIProfileSet = "default", true
		}, "default", "yaml", "defsvc", ""},
		{"env_beats_profile", func(o *Options) {
			o.EnvProfile = "dev"
			o.EnvFormat, o.EnvService, o.EnvTarget = "csv", "envsvc", "envtgt"
		}, "dev", "csv", "envsvc", "envtgt"},
		{"cli_beats_env", func(o *Options) {
			o.EnvFormat, o.EnvService, o.EnvTarget = "csv", "envsvc", "envtgt"
			o.CLIFormat, o.CLIFormatSet = "json", true
			o.CLIService, o.CLIServiceSet = "clisvc", true
			o.CLITarget, o.CLITargetSet = "", true
		}, "default", "json", "clisvc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := base
			tc.mutate(&opts)
			r, xe := Resolve(opts)
			if xe != nil {
				t.Fatalf("unexpected error: %v", xe)
			}
			if r.ProfileName != tc.wantProfile || r.Format != tc.wantFormat ||
				r.Service != tc.wantService || r.Target != tc.wantTarget {
				t.Fatalf("got %+v", r)
			}
			if !r.MCP.AllowReveal {
				t.Fatal("mcp config should be carried through")
			}
		})
	}
}

func TestResolve_UnknownProfile(t *testing.T) {
	tmp := t.TempDir()
	writeConfig(t, filepath.Join(tmp, "xkeyring.yaml"), precedenceConfig)

	_, xe := Resolve(Options{WorkDir: tmp, ConfigHome: tmp, CLIProfile: "nope", CLIProfileSet: true})
	if xe == nil || xe.Code != "XKEYRING_CFG_INVALID" {
		t.Fatalf("expected XKEYRING_CFG_INVALID, got %v", xe)
	}
	if xe.Details["profile"] != "nope" {
		t.Errorf("details should name the profile, got %v", xe.Details)
	}
}

func TestResolve_EmptyServiceRejected(t *testing.T) {
	tmp := t.TempDir()
	_, xe := Resolve(Options{WorkDir: tmp, ConfigHome: tmp, CLIService: "", CLIServiceSet: true})
	if xe == nil || xe.Code != "XKEYRING_CFG_INVALID" {
		t.Fatalf("expected XKEYRING_CFG_INVALID, got %v", xe)
	}
}
