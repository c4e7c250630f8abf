package mcp

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/log"
)

const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable_http"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

// NewStreamableHTTPHandler 返回带 bearer token 校验的 streamable HTTP handler。
// keyring 工具可读写密码，因此 token 必填。
func NewStreamableHTTPHandler(server *mcp.Server, authToken string, logger *slog.Logger) (http.Handler, error) {
	if server == nil {
		return nil, errors.New(errors.CodeInternal, "mcp server is nil", nil)
	}
	if authToken == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "mcp streamable http auth token is required", nil)
	}
	if logger == nil {
		logger = log.Discard()
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
	return requireAuth(handler, authToken, logger), nil
}

func requireAuth(next http.Handler, token string, logger *slog.Logger) http.Handler {
	want := []byte(token)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		reason := checkBearer(req.Header.Get(authHeader), want)
		if reason != "" {
			logger.Warn("mcp http request rejected", "remote", req.RemoteAddr, "reason", reason)
			w.Header().Set("WWW-Authenticate", `Bearer realm="xkeyring"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// checkBearer 返回拒绝原因；空串表示通过。比较为常量时间。
func checkBearer(header string, want []byte) string {
	auth := strings.TrimSpace(header)
	switch {
	case auth == "":
		return "missing authorization header"
	case !strings.HasPrefix(auth, bearerPrefix):
		return "unsupported authorization scheme"
	case subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(auth, bearerPrefix)), want) != 1:
		return "token mismatch"
	}
	return ""
}
