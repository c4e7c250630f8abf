package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zx06/xkeyring/internal/errors"
	"github.com/zx06/xkeyring/internal/output"
)

// NewSetCommand creates the set command
func NewSetCommand(w *output.Writer) *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "set <account>",
		Short: "Store a password, replacing any existing value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			e, err := newEntry(args[0])
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), fromStdin)
			if err != nil {
				return err
			}
			logger().Debug("keyring set", "service", e.Service(), "account", e.Account())
			if err := e.SetPassword(password); err != nil {
				return keyringErr("set", e, err)
			}
			data := entryData(e)
			data["stored"] = true
			return w.WriteOK(format, data)
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "password-stdin", false, "Read the password from stdin instead of prompting")
	return cmd
}

// readPassword prompts twice without echo when in is a terminal; otherwise it
// reads one line.
func readPassword(in io.Reader, prompt io.Writer, fromStdin bool) (string, error) {
	if f, ok := in.(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		first, err := promptHidden(f, prompt, "Password: ")
		if err != nil {
			return "", err
		}
		second, err := promptHidden(f, prompt, "Retype password: ")
		if err != nil {
			return "", err
		}
		if first != second {
			return "", errors.New(errors.CodeCfgInvalid, "passwords do not match", nil)
		}
		return first, nil
	}
	return readLine(in)
}

func promptHidden(f *os.File, prompt io.Writer, label string) (string, error) {
	_, _ = fmt.Fprint(prompt, label)
	b, err := term.ReadPassword(int(f.Fd()))
	_, _ = fmt.Fprintln(prompt)
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, "failed to read password", nil, err)
	}
	return string(b), nil
}

// readLine 读取第一行并去掉行尾换行；其余输入忽略。
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(errors.CodeInternal, "failed to read password from stdin", nil, err)
	}
	if err == io.EOF && line == "" {
		return "", errors.New(errors.CodeCfgInvalid, "no password on stdin", nil)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewGetCommand creates the get command
func NewGetCommand(w *output.Writer) *cobra.Command {
	var withCredential bool
	cmd := &cobra.Command{
		Use:   "get <account>",
		Short: "Print a stored password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			e, err := newEntry(args[0])
			if err != nil {
				return err
			}
			logger().Debug("keyring get", "service", e.Service(), "account", e.Account())
			data := entryData(e)
			if withCredential {
				password, cred, err := e.GetPasswordAndCredential()
				if err != nil {
					return keyringErr("get", e, err)
				}
				data["password"] = password
				data["credential"] = cred
			} else {
				password, err := e.GetPassword()
				if err != nil {
					return keyringErr("get", e, err)
				}
				data["password"] = password
			}
			return w.WriteOK(format, data)
		},
	}
	cmd.Flags().BoolVar(&withCredential, "with-credential", false, "Also print the platform credential the password was read from")
	return cmd
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete a stored password; fails if none exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			e, err := newEntry(args[0])
			if err != nil {
				return err
			}
			logger().Debug("keyring delete", "service", e.Service(), "account", e.Account())
			if err := e.DeletePassword(); err != nil {
				return keyringErr("delete", e, err)
			}
			data := entryData(e)
			data["deleted"] = true
			return w.WriteOK(format, data)
		},
	}
}

// NewCredentialCommand creates the credential command
func NewCredentialCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "credential <account>",
		Short: "Show the platform storage key without touching the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			e, err := newEntry(args[0])
			if err != nil {
				return err
			}
			data := entryData(e)
			data["credential"] = e.Credential()
			return w.WriteOK(format, data)
		},
	}
}
