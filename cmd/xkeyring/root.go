package main

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/log"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr  string
	ConfigStr  string
	ProfileStr string
	ServiceStr string
	TargetStr  string
	Verbose    bool
	Resolved   config.Resolved
	Logger     *slog.Logger
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "xkeyring",
		Short:         "Store and read secrets in the platform keyring",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose := GlobalConfig.Verbose
			if !cmd.Flags().Changed("verbose") {
				verbose, _ = strconv.ParseBool(os.Getenv("XKEYRING_VERBOSE"))
			}
			GlobalConfig.Logger = log.NewWithLevel(os.Stderr, verbose)

			// CLI > ENV > Config
			configSet := cmd.Flags().Changed("config")
			if configSet && GlobalConfig.ConfigStr == "" {
				return errors.New(errors.CodeCfgInvalid, "config path is empty", nil)
			}

			r, xe := config.Resolve(config.Options{
				ConfigPath:    GlobalConfig.ConfigStr,
				CLIProfile:    GlobalConfig.ProfileStr,
				CLIProfileSet: cmd.Flags().Changed("profile"),
				CLIFormat:     GlobalConfig.FormatStr,
				CLIFormatSet:  cmd.Flags().Changed("format"),
				CLIService:    GlobalConfig.ServiceStr,
				CLIServiceSet: cmd.Flags().Changed("service"),
				CLITarget:     GlobalConfig.TargetStr,
				CLITargetSet:  cmd.Flags().Changed("target"),
				EnvProfile:    os.Getenv("XKEYRING_PROFILE"),
				EnvFormat:     os.Getenv("XKEYRING_FORMAT"),
				EnvService:    os.Getenv("XKEYRING_SERVICE"),
				EnvTarget:     os.Getenv("XKEYRING_TARGET"),
			})
			if xe != nil {
				return xe
			}
			GlobalConfig.Resolved = r
			GlobalConfig.FormatStr = r.Format
			GlobalConfig.ProfileStr = r.ProfileName
			GlobalConfig.Logger.Debug("config resolved",
				"config_path", r.ConfigPath, "profile", r.ProfileName, "service", r.Service, "target", r.Target)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./xkeyring.yaml or $XDG_CONFIG_HOME/xkeyring/xkeyring.yaml")
	root.PersistentFlags().StringVarP(&GlobalConfig.ProfileStr, "profile", "p", "", "Profile name (config: profiles.<name>)")
	root.PersistentFlags().StringVarP(&GlobalConfig.ServiceStr, "service", "s", config.DefaultService, "Service name")
	root.PersistentFlags().StringVarP(&GlobalConfig.TargetStr, "target", "t", "", "Collection (Linux), keychain domain (macOS) or target name (Windows)")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: json|yaml|table|csv|auto")
	root.PersistentFlags().BoolVarP(&GlobalConfig.Verbose, "verbose", "v", false, "Debug logging on stderr")

	return root
}
