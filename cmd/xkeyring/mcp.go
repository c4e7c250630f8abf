package main

import (
	"context"
	"net/http"
	"os"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	mcp_pkg "github.com/zx06/xkeyring/internal/mcp"
	"github.com/zx06/xkeyring/internal/secret"
)

// NewMCPCommand creates the MCP command group
func NewMCPCommand() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP (Model Context Protocol) server commands",
	}

	mcpCmd.AddCommand(newMCPServerCommand())

	return mcpCmd
}

// newMCPServerCommand creates the MCP server command
func newMCPServerCommand() *cobra.Command {
	opts := &mcpServerOptions{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start MCP server for AI assistant integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.transportSet = cmd.Flags().Changed("transport")
			opts.httpAddrSet = cmd.Flags().Changed("http-addr")
			opts.httpAuthTokenSet = cmd.Flags().Changed("http-auth-token")
			opts.allowRevealSet = cmd.Flags().Changed("allow-reveal")
			return runMCPServer(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.transport, "transport", mcp_pkg.TransportStdio, "MCP transport: stdio|streamable_http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", "127.0.0.1:8787", "Streamable HTTP listen address")
	cmd.Flags().StringVar(&opts.httpAuthToken, "http-auth-token", "", "Streamable HTTP auth token (required for streamable_http)")
	cmd.Flags().BoolVar(&opts.allowReveal, "allow-reveal", false, "Let keyring_get return stored passwords")
	return cmd
}

// runMCPServer runs the MCP server
func runMCPServer(ctx context.Context, opts *mcpServerOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load config
	cfg, _, xe := loadConfig()
	if xe != nil {
		return xe
	}

	resolved, xe := resolveMCPServerOptions(opts, cfg)
	if xe != nil {
		return xe
	}

	service := GlobalConfig.Resolved.Service
	if service == "" {
		service = config.DefaultService
	}

	// Create MCP server using official SDK
	server, err := mcp_pkg.CreateServer(version, mcp_pkg.Options{
		Config:         &cfg,
		DefaultService: service,
		DefaultTarget:  GlobalConfig.Resolved.Target,
		AllowReveal:    resolved.allowReveal,
		Logger:         logger(),
	})
	if err != nil {
		if xe, ok := errors.As(err); ok {
			return xe
		}
		return errors.Wrap(errors.CodeInternal, "failed to create MCP server", nil, err)
	}

	logger().Info("mcp server starting", "transport", resolved.transport, "allow_reveal", resolved.allowReveal)
	switch resolved.transport {
	case mcp_pkg.TransportStdio:
		return server.Run(ctx, &mcp.StdioTransport{})
	case mcp_pkg.TransportStreamableHTTP:
		handler, err := mcp_pkg.NewStreamableHTTPHandler(server, resolved.httpAuthToken, logger())
		if err != nil {
			if xe, ok := errors.As(err); ok {
				return xe
			}
			return errors.Wrap(errors.CodeInternal, "failed to create streamable http handler", nil, err)
		}
		httpServer := &http.Server{
			Addr:    resolved.httpAddr,
			Handler: handler,
		}
		logger().Info("mcp http listening", "addr", resolved.httpAddr)
		return httpServer.ListenAndServe()
	default:
		return errors.New(errors.CodeCfgInvalid, "unsupported mcp transport", map[string]any{"transport": resolved.transport})
	}
}

type mcpServerOptions struct {
	transport        string
	transportSet     bool
	httpAddr         string
	httpAddrSet      bool
	httpAuthToken    string
	httpAuthTokenSet bool
	allowReveal      bool
	allowRevealSet   bool
}

type mcpServerResolved struct {
	transport     string
	httpAddr      string
	httpAuthToken string
	allowReveal   bool
}

func resolveMCPServerOptions(opts *mcpServerOptions, cfg config.File) (mcpServerResolved, *errors.XError) {
	if opts == nil {
		opts = &mcpServerOptions{}
	}

	transport := firstNonEmpty(
		valueIfSet(opts.transportSet, opts.transport),
		os.Getenv("XKEYRING_MCP_TRANSPORT"),
		cfg.MCP.Transport,
	)
	if transport == "" {
		transport = mcp_pkg.TransportStdio
	}
	if transport != mcp_pkg.TransportStdio && transport != mcp_pkg.TransportStreamableHTTP {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "invalid mcp transport", map[string]any{"transport": transport})
	}

	httpAddr := firstNonEmpty(
		valueIfSet(opts.httpAddrSet, opts.httpAddr),
		os.Getenv("XKEYRING_MCP_HTTP_ADDR"),
		cfg.MCP.HTTP.Addr,
	)
	if httpAddr == "" {
		httpAddr = "127.0.0.1:8787"
	}

	authToken := firstNonEmpty(
		valueIfSet(opts.httpAuthTokenSet, opts.httpAuthToken),
		os.Getenv("XKEYRING_MCP_HTTP_AUTH_TOKEN"),
	)
	if authToken == "" && cfg.MCP.HTTP.AuthToken != "" {
		secretValue, xe := secret.Resolve(cfg.MCP.HTTP.AuthToken, secret.Options{
			AllowPlaintext: cfg.MCP.HTTP.AllowPlaintextToken,
		})
		if xe != nil {
			return mcpServerResolved{}, xe
		}
		authToken = secretValue
	}

	if transport == mcp_pkg.TransportStreamableHTTP && authToken == "" {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "streamable http transport requires auth token", nil)
	}

	allowReveal := cfg.MCP.AllowReveal
	if v := os.Getenv("XKEYRING_MCP_ALLOW_REVEAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "invalid XKEYRING_MCP_ALLOW_REVEAL", map[string]any{"value": v})
		}
		allowReveal = b
	}
	if opts.allowRevealSet {
		allowReveal = opts.allowReveal
	}

	return mcpServerResolved{
		transport:     transport,
		httpAddr:      httpAddr,
		httpAuthToken: authToken,
		allowReveal:   allowReveal,
	}, nil
}

func valueIfSet(set bool, value string) string {
	if !set {
		return ""
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
