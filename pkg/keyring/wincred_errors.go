//go:build !plan9

package keyring

import (
	"errors"
	"syscall"
)

// Win32 error codes returned by the Cred* functions. They are declared here
// rather than taken from x/sys/windows so the mapping compiles and is tested
// off Windows. plan9 has no syscall.Errno.
const (
	winErrorInvalidParameter   syscall.Errno = 87
	winErrorInvalidFlags       syscall.Errno = 1004
	winErrorNotFound           syscall.Errno = 1168
	winErrorNoSuchLogonSession syscall.Errno = 1312
	winErrorBadUsername        syscall.Errno = 2202
)

func decodeWinError(err error) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return errPlatformFailure(err)
	}
	switch errno {
	case winErrorNotFound:
		return errNoEntry()
	case winErrorBadUsername:
		return errInvalid("username", errno.Error())
	case winErrorInvalidFlags:
		return errInvalid("flags", errno.Error())
	case winErrorInvalidParameter:
		return errInvalid("parameter", errno.Error())
	case winErrorNoSuchLogonSession:
		// No credential set for this logon session, e.g. a service account.
		return errPlatformFailure(err)
	default:
		return errPlatformFailure(err)
	}
}
