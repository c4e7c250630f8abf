//go:build !linux && !freebsd && !openbsd && !netbsd && !dragonfly && !windows && !darwin

package keyring

import (
	"errors"
	"runtime"
)

const currentPlatform = PlatformUnsupported

// ErrUnsupportedPlatform is wrapped in the platform failure every operation
// returns on a GOOS without a secure store.
var ErrUnsupportedPlatform = errors.New("no secure credential store for " + runtime.GOOS)

type unsupportedProvider struct{}

func newPlatformProvider() provider {
	return unsupportedProvider{}
}

func (unsupportedProvider) set(*Credential, string) error {
	return errPlatformFailure(ErrUnsupportedPlatform)
}

func (unsupportedProvider) get(*Credential) (string, *Credential, error) {
	return "", nil, errPlatformFailure(ErrUnsupportedPlatform)
}

func (unsupportedProvider) delete(*Credential) error {
	return errPlatformFailure(ErrUnsupportedPlatform)
}
