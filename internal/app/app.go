package app

import (
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/internal/spec"
	"github.com/zx06/xkeyring/pkg/keyring"
)

type App struct {
	Version string
	Commit  string
	Date    string
}

func New(version, commit, date string) App {
	return App{Version: version, Commit: commit, Date: date}
}

func (a App) BuildSpec() spec.Spec {
	globalFlags := []spec.FlagSpec{
		{Name: "config", Default: "", Description: "Config file path (YAML); default: ./xkeyring.yaml or $XDG_CONFIG_HOME/xkeyring/xkeyring.yaml"},
		{Name: "profile", Shorthand: "p", Env: "XKEYRING_PROFILE", Default: "", Description: "Profile name (config: profiles.<name>)"},
		{Name: "service", Shorthand: "s", Env: "XKEYRING_SERVICE", Default: "xkeyring", Description: "Service name"},
		{Name: "target", Shorthand: "t", Env: "XKEYRING_TARGET", Default: "", Description: "Collection (Linux), keychain domain (macOS) or target name (Windows)"},
		{Name: "format", Shorthand: "f", Env: "XKEYRING_FORMAT", Default: "auto", Description: "Output format: json|yaml|table|csv|auto"},
		{Name: "verbose", Shorthand: "v", Env: "XKEYRING_VERBOSE", Default: "false", Description: "Debug logging on stderr"},
	}
	with := func(extra ...spec.FlagSpec) []spec.FlagSpec {
		out := make([]spec.FlagSpec, 0, len(globalFlags)+len(extra))
		out = append(out, globalFlags...)
		return append(out, extra...)
	}
	return spec.Spec{
		SchemaVersion: output.SchemaVersion,
		Platform:      string(keyring.Current()),
		Commands: []spec.CommandSpec{
			{
				Name:        "spec",
				Description: "Export tool spec for AI/agents",
				Flags:       globalFlags,
			},
			{
				Name:        "version",
				Description: "Print version information",
				Flags:       globalFlags,
			},
			{
				Name:        "set",
				Args:        "<account>",
				Description: "Store a password, replacing any existing value",
				Flags: with(
					spec.FlagSpec{Name: "password-stdin", Default: "false", Description: "Read the password from stdin instead of prompting"},
				),
			},
			{
				Name:        "get",
				Args:        "<account>",
				Description: "Print a stored password",
				Flags: with(
					spec.FlagSpec{Name: "with-credential", Default: "false", Description: "Also print the platform credential the password was read from"},
				),
			},
			{
				Name:        "delete",
				Args:        "<account>",
				Description: "Delete a stored password; fails if none exists",
				Flags:       globalFlags,
			},
			{
				Name:        "credential",
				Args:        "<account>",
				Description: "Show the platform storage key without touching the store",
				Flags:       globalFlags,
			},
			{
				Name:        "config show",
				Description: "Show the resolved configuration",
				Flags:       globalFlags,
			},
			{
				Name:        "mcp server",
				Description: "Start MCP server for AI assistant integration",
				Flags: with(
					spec.FlagSpec{Name: "transport", Env: "XKEYRING_MCP_TRANSPORT", Default: "stdio", Description: "MCP transport: stdio|streamable_http"},
					spec.FlagSpec{Name: "http-addr", Env: "XKEYRING_MCP_HTTP_ADDR", Default: "127.0.0.1:8787", Description: "Streamable HTTP listen address"},
					spec.FlagSpec{Name: "http-auth-token", Env: "XKEYRING_MCP_HTTP_AUTH_TOKEN", Default: "", Description: "Streamable HTTP auth token"},
					spec.FlagSpec{Name: "allow-reveal", Env: "XKEYRING_MCP_ALLOW_REVEAL", Default: "false", Description: "Let keyring_get return stored passwords"},
				),
			},
		},
		ErrorCodes: errors.AllCodes(),
	}
}

type VersionInfo struct {
	Version  string `json:"version" yaml:"version"`
	Commit   string `json:"commit" yaml:"commit"`
	Date     string `json:"date" yaml:"date"`
	Platform string `json:"platform" yaml:"platform"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date, Platform: string(keyring.Current())}
}
