package main

import (
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/zx06/xkeyring/internal/config"
	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/log"
	"github.com/zx06/xkeyring/internal/output"
	"github.com/zx06/xkeyring/pkg/keyring"
)

// parseOutputFormat parses and validates the output format string
func parseOutputFormat(s string) (output.Format, error) {
	f := output.Format(s)
	if !output.IsValid(f) {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": s})
	}
	return resolveAuto(f), nil
}

// resolveFormatForError resolves the format for error output
func resolveFormatForError(s string) output.Format {
	f := output.Format(s)
	if !output.IsValid(f) {
		f = output.FormatAuto
	}
	return resolveAuto(f)
}

// resolveAuto resolves "auto" format to appropriate format based on TTY
func resolveAuto(f output.Format) output.Format {
	if f != output.FormatAuto {
		return f
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return output.FormatTable
	}
	return output.FormatJSON
}

// normalizeErr normalizes any error to XError
func normalizeErr(err error) *errors.XError {
	if xe, ok := errors.As(err); ok {
		return xe
	}
	// Preserve original error message
	return errors.Wrap(errors.CodeInternal, err.Error(), nil, err)
}

// logger returns the logger set up by the root command, or a discarding one
// when a subcommand runs on its own.
func logger() *slog.Logger {
	if GlobalConfig.Logger != nil {
		return GlobalConfig.Logger
	}
	return log.Discard()
}

// newEntry builds the keyring entry for account using the resolved service and target.
func newEntry(account string) (*keyring.Entry, error) {
	if account == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "account must not be empty", nil)
	}
	service := GlobalConfig.Resolved.Service
	if service == "" {
		service = config.DefaultService
	}
	return keyring.NewEntryWithTarget(GlobalConfig.Resolved.Target, service, account), nil
}

func entryData(e *keyring.Entry) map[string]any {
	return map[string]any{"service": e.Service(), "account": e.Account()}
}

// keyringErr converts a keyring failure into an XError, logging platform failures.
func keyringErr(op string, e *keyring.Entry, err error) *errors.XError {
	xe := errors.FromKeyring(err, entryData(e))
	if xe.Code == errors.CodePlatformFailure {
		logger().Warn("keyring operation failed", "op", op, "service", e.Service(), "account", e.Account(), "err", err)
	} else {
		logger().Debug("keyring operation rejected", "op", op, "code", string(xe.Code))
	}
	return xe
}

// loadConfig reads the full config file the root command resolved, or the
// --config path when a subcommand runs on its own.
func loadConfig() (config.File, string, *errors.XError) {
	path := GlobalConfig.Resolved.ConfigPath
	if path == "" {
		path = GlobalConfig.ConfigStr
	}
	return config.LoadConfig(config.Options{ConfigPath: path})
}
