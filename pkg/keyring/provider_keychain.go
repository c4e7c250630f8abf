//go:build darwin

package keyring

import (
	"errors"

	gokeyring "github.com/zalando/go-keyring"
)

const currentPlatform = PlatformKeychain

// keychainProvider goes through go-keyring, which drives /usr/bin/security
// against the login keychain. Other domains are not reachable that way.
type keychainProvider struct{}

func newPlatformProvider() provider {
	return keychainProvider{}
}

func checkKeychain(c *Credential) (*KeychainCredential, error) {
	kc := c.Keychain
	if kc == nil {
		return nil, errInvalid("credential", "not a keychain credential")
	}
	if kc.Domain != "" && kc.Domain != DomainUser {
		return nil, errInvalid("domain", "only the user keychain is supported, got "+string(kc.Domain))
	}
	return kc, nil
}

func (keychainProvider) set(c *Credential, password string) error {
	kc, err := checkKeychain(c)
	if err != nil {
		return err
	}
	return decodeKeychainError(gokeyring.Set(kc.Service, kc.Account, password))
}

func (keychainProvider) get(c *Credential) (string, *Credential, error) {
	kc, err := checkKeychain(c)
	if err != nil {
		return "", nil, err
	}
	raw, err := gokeyring.Get(kc.Service, kc.Account)
	if err != nil {
		return "", nil, decodeKeychainError(err)
	}
	password, err := decodePassword([]byte(raw))
	if err != nil {
		return "", nil, err
	}
	return password, c.Clone(), nil
}

func (keychainProvider) delete(c *Credential) error {
	kc, err := checkKeychain(c)
	if err != nil {
		return err
	}
	return decodeKeychainError(gokeyring.Delete(kc.Service, kc.Account))
}

func decodeKeychainError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gokeyring.ErrNotFound):
		return errNoEntry()
	case errors.Is(err, gokeyring.ErrSetDataTooBig):
		return errTooLong("password", keychainMaxDataSize)
	default:
		return errPlatformFailure(err)
	}
}

// keychainMaxDataSize mirrors go-keyring's limit on the combined
// service, account and password passed to security(1).
const keychainMaxDataSize = 4096
