package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/internal/secret"
)

// NewConfigCommand creates the config command group
func NewConfigCommand(w *output.Writer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	configCmd.AddCommand(newConfigShowCommand(w))

	return configCmd
}

// newConfigShowCommand creates the config show command
func newConfigShowCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			r := GlobalConfig.Resolved

			profiles := []string{}
			if r.ConfigPath != "" {
				// profile 列表需要完整配置；Resolve 只保留选中的那个
				cfg, _, xe := loadConfig()
				if xe != nil {
					return xe
				}
				for name := range cfg.Profiles {
					profiles = append(profiles, name)
				}
				sort.Strings(profiles)
			}

			return w.WriteOK(format, map[string]any{
				"config_path": r.ConfigPath,
				"profile":     r.ProfileName,
				"profiles":    profiles,
				"format":      r.Format,
				"service":     r.Service,
				"target":      r.Target,
				"mcp": map[string]any{
					"transport":    r.MCP.Transport,
					"allow_reveal": r.MCP.AllowReveal,
					"http": map[string]any{
						"addr":       r.MCP.HTTP.Addr,
						"auth_token": redactToken(r.MCP.HTTP.AuthToken),
					},
				},
			})
		},
	}
}

// redactToken keeps keyring references visible and hides literal tokens.
func redactToken(v string) string {
	if v == "" || secret.IsKeyringRef(v) {
		return v
	}
	return "***"
}
