package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/log"
	"github.com/zx06/xkeyring/pkg/keyring"
)

// EntryInput 定位一个 keyring 条目；service/target 缺省时取 profile 或服务端默认值。
type EntryInput struct {
	Service string `json:"service,omitempty" jsonschema:"Service name"`
	Account string `json:"account" jsonschema:"Account name"`
	Target  string `json:"target,omitempty" jsonschema:"Collection, keychain domain or Windows target name"`
	Profile string `json:"profile,omitempty" jsonschema:"Profile name supplying service/target"`
}

// SetInput 是 keyring_set 的输入。
type SetInput struct {
	EntryInput
	Password string `json:"password" jsonschema:"Secret to store"`
}

// Options 控制工具行为。
type Options struct {
	Config         *config.File
	DefaultService string
	DefaultTarget  string
	// AllowReveal 为 false 时 keyring_get 只报告是否存在，不返回密码。
	AllowReveal bool
	Logger      *slog.Logger
}

// ToolHandler manages MCP tools
type ToolHandler struct {
	opts   Options
	logger *slog.Logger
}

// NewToolHandler creates a new tool handler
func NewToolHandler(opts Options) *ToolHandler {
	if opts.Config == nil {
		opts.Config = &config.File{Profiles: map[string]config.Profile{}}
	}
	if opts.DefaultService == "" {
		opts.DefaultService = config.DefaultService
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	return &ToolHandler{opts: opts, logger: logger}
}

// getProfileNames returns the sorted profile names
func (h *ToolHandler) getProfileNames() []string {
	names := make([]string, 0, len(h.opts.Config.Profiles))
	for name := range h.opts.Config.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *ToolHandler) entrySchema(extra map[string]*jsonschema.Schema, required ...string) *jsonschema.Schema {
	props := map[string]*jsonschema.Schema{
		"service": {Type: "string", Description: "Service name (defaults to the profile or server service)"},
		"account": {Type: "string", Description: "Account name"},
		"target":  {Type: "string", Description: "Collection (Linux), keychain domain (macOS) or target name (Windows)"},
	}
	if names := h.getProfileNames(); len(names) > 0 {
		enum := make([]any, len(names))
		for i, name := range names {
			enum[i] = name
		}
		props["profile"] = &jsonschema.Schema{Type: "string", Description: "Profile name supplying service/target", Enum: enum}
	}
	for k, v := range extra {
		props[k] = v
	}
	return &jsonschema.Schema{
		Type:       "object",
		Required:   append([]string{"account"}, required...),
		Properties: props,
	}
}

// RegisterTools registers all tools with the MCP server
func (h *ToolHandler) RegisterTools(server *mcp.Server) {
	server.AddTool(&mcp.Tool{
		Name:        "keyring_set",
		Description: "Store a password in the platform keyring, replacing any existing value",
		InputSchema: h.entrySchema(map[string]*jsonschema.Schema{
			"password": {Type: "string", Description: "Secret to store"},
		}, "password"),
	}, h.setHandler)

	getDesc := "Check whether a keyring entry exists"
	if h.opts.AllowReveal {
		getDesc = "Read a password from the platform keyring"
	}
	server.AddTool(&mcp.Tool{
		Name:        "keyring_get",
		Description: getDesc,
		InputSchema: h.entrySchema(nil),
	}, h.getHandler)

	server.AddTool(&mcp.Tool{
		Name:        "keyring_delete",
		Description: "Delete a password from the platform keyring; fails if it does not exist",
		InputSchema: h.entrySchema(nil),
	}, h.deleteHandler)

	server.AddTool(&mcp.Tool{
		Name:        "keyring_credential",
		Description: "Show the platform storage key for an entry without touching the store",
		InputSchema: h.entrySchema(nil),
	}, h.credentialHandler)

	mcp.AddTool[struct{}, any](server, &mcp.Tool{
		Name:        "profile_list",
		Description: "List all configured profiles",
	}, h.ProfileList)
}

func decodeInput[T any](req *mcp.CallToolRequest, input *T) *errors.XError {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, input); err != nil {
		return errors.Wrap(errors.CodeCfgInvalid, "invalid input", nil, err)
	}
	return nil
}

func (h *ToolHandler) setHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SetInput
	if xe := decodeInput(req, &input); xe != nil {
		return h.errorResult(xe), nil
	}
	result, _, err := h.Set(ctx, req, input)
	return result, err
}

func (h *ToolHandler) getHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input EntryInput
	if xe := decodeInput(req, &input); xe != nil {
		return h.errorResult(xe), nil
	}
	result, _, err := h.Get(ctx, req, input)
	return result, err
}

func (h *ToolHandler) deleteHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input EntryInput
	if xe := decodeInput(req, &input); xe != nil {
		return h.errorResult(xe), nil
	}
	result, _, err := h.Delete(ctx, req, input)
	return result, err
}

func (h *ToolHandler) credentialHandler(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input EntryInput
	if xe := decodeInput(req, &input); xe != nil {
		return h.errorResult(xe), nil
	}
	result, _, err := h.Credential(ctx, req, input)
	return result, err
}

// entry 解析 service/target 并构造 keyring.Entry。
func (h *ToolHandler) entry(input EntryInput) (*keyring.Entry, *errors.XError) {
	service, target := h.opts.DefaultService, h.opts.DefaultTarget
	if input.Profile != "" {
		p, ok := h.opts.Config.Profiles[input.Profile]
		if !ok {
			return nil, errors.New(errors.CodeCfgInvalid, "profile does not exist", map[string]any{"name": input.Profile, "reason": "profile_not_found"})
		}
		if p.Service != "" {
			service = p.Service
		}
		target = p.Target
	}
	if input.Service != "" {
		service = input.Service
	}
	if input.Target != "" {
		target = input.Target
	}
	if input.Account == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "account is required", nil)
	}
	if service == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "service is required", nil)
	}
	return keyring.NewEntryWithTarget(target, service, input.Account), nil
}

func entryDetails(e *keyring.Entry) map[string]any {
	return map[string]any{"service": e.Service(), "account": e.Account()}
}

// Set stores a password
func (h *ToolHandler) Set(ctx context.Context, req *mcp.CallToolRequest, input SetInput) (*mcp.CallToolResult, any, error) {
	e, xe := h.entry(input.EntryInput)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	h.logger.Debug("mcp keyring_set", "service", e.Service(), "account", e.Account())
	if err := e.SetPassword(input.Password); err != nil {
		return h.keyringError("keyring_set", e, err), nil, nil
	}
	data := entryDetails(e)
	data["stored"] = true
	return h.okResult(data), nil, nil
}

// Get reads a password; a missing entry is reported as exists=false.
func (h *ToolHandler) Get(ctx context.Context, req *mcp.CallToolRequest, input EntryInput) (*mcp.CallToolResult, any, error) {
	e, xe := h.entry(input)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	h.logger.Debug("mcp keyring_get", "service", e.Service(), "account", e.Account(), "reveal", h.opts.AllowReveal)
	pw, err := e.GetPassword()
	data := entryDetails(e)
	switch {
	case keyring.IsNoEntry(err):
		data["exists"] = false
	case err != nil:
		return h.keyringError("keyring_get", e, err), nil, nil
	default:
		data["exists"] = true
		if h.opts.AllowReveal {
			data["password"] = pw
		}
	}
	return h.okResult(data), nil, nil
}

// Delete removes a password
func (h *ToolHandler) Delete(ctx context.Context, req *mcp.CallToolRequest, input EntryInput) (*mcp.CallToolResult, any, error) {
	e, xe := h.entry(input)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	h.logger.Debug("mcp keyring_delete", "service", e.Service(), "account", e.Account())
	if err := e.DeletePassword(); err != nil {
		return h.keyringError("keyring_delete", e, err), nil, nil
	}
	data := entryDetails(e)
	data["deleted"] = true
	return h.okResult(data), nil, nil
}

// Credential shows the derived platform key
func (h *ToolHandler) Credential(ctx context.Context, req *mcp.CallToolRequest, input EntryInput) (*mcp.CallToolResult, any, error) {
	e, xe := h.entry(input)
	if xe != nil {
		return h.errorResult(xe), nil, nil
	}
	data := entryDetails(e)
	data["credential"] = e.Credential()
	return h.okResult(data), nil, nil
}

// ProfileList lists all profiles
func (h *ToolHandler) ProfileList(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	type profileInfo struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		Service     string `json:"service,omitempty"`
		Target      string `json:"target,omitempty"`
	}

	profiles := make([]profileInfo, 0, len(h.opts.Config.Profiles))
	for _, name := range h.getProfileNames() {
		p := h.opts.Config.Profiles[name]
		profiles = append(profiles, profileInfo{
			Name:        name,
			Description: p.Description,
			Service:     p.Service,
			Target:      p.Target,
		})
	}
	return h.okResult(map[string]any{"profiles": profiles}), nil, nil
}

func (h *ToolHandler) keyringError(tool string, e *keyring.Entry, err error) *mcp.CallToolResult {
	xe := errors.FromKeyring(err, entryDetails(e))
	if xe.Code == errors.CodePlatformFailure {
		h.logger.Warn("mcp keyring failure", "tool", tool, "service", e.Service(), "account", e.Account(), "err", err)
	}
	return h.errorResult(xe)
}

func (h *ToolHandler) okResult(data any) *mcp.CallToolResult {
	out := map[string]any{
		"ok":             true,
		"schema_version": 1,
		"data":           data,
	}
	jsonData, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return h.errorResult(errors.Wrap(errors.CodeInternal, "failed to marshal result", nil, err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonData)},
		},
	}
}

func (h *ToolHandler) errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: h.formatError(err)},
		},
	}
}

// formatError formats an error as JSON
func (h *ToolHandler) formatError(err error) string {
	var xe *errors.XError
	if err != nil {
		xe = errors.AsOrWrap(err)
	} else {
		xe = errors.New(errors.CodeInternal, "unknown error", nil)
	}
	output := map[string]any{
		"ok":             false,
		"schema_version": 1,
		"error": map[string]any{
			"code":    xe.Code,
			"message": xe.Message,
			"details": xe.Details,
		},
	}
	jsonData, _ := json.MarshalIndent(output, "", "  ")
	return string(jsonData)
}

// CreateServer creates a new MCP server
func CreateServer(version string, opts Options) (*mcp.Server, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "xkeyring",
		Version: version,
	}, nil)

	handler := NewToolHandler(opts)
	handler.RegisterTools(server)

	return server, nil
}
