package keyring

import "fmt"

// Entry is a handle on one (service, account) slot in the platform store.
// It is immutable and caches nothing: every call goes to the store, and
// dropping an Entry leaves the stored secret in place.
type Entry struct {
	service string
	account string
	target  *Credential
}

// NewEntry maps (service, account) to the platform default location.
func NewEntry(service, account string) *Entry {
	return NewEntryWithTarget("", service, account)
}

// NewEntryWithTarget is NewEntry with an explicit target. On Secret Service
// the target names the collection, on macOS the keychain domain, and on
// Windows it is used verbatim as the credential's target name.
//
// The collection must already exist: lookups in a missing one report
// ErrNoEntry and writes report ErrPlatformFailure. On macOS only the user
// domain is reachable; "system", "common" and "dynamic" are accepted here but
// every operation on them fails with ErrInvalid (field "domain").
func NewEntryWithTarget(target, service, account string) *Entry {
	return &Entry{
		service: service,
		account: account,
		target:  DefaultCredential(currentPlatform, target, service, account),
	}
}

// NewEntryWithCredential binds an Entry to a caller-built credential. The
// credential must be addressed to the platform compiled into this binary.
func NewEntryWithCredential(c *Credential) (*Entry, error) {
	if c == nil {
		return nil, errInvalid("credential", "credential is nil")
	}
	if !c.MatchesPlatform(currentPlatform) {
		return nil, errInvalid("credential", fmt.Sprintf("credential is for %s, this build uses %s", c.Platform, currentPlatform))
	}
	e := &Entry{target: c.Clone()}
	switch {
	case c.SecretService != nil:
		e.service = c.SecretService.Attributes[AttrService]
		e.account = c.SecretService.Attributes[AttrUsername]
	case c.WinCred != nil:
		e.account = c.WinCred.Username
	case c.Keychain != nil:
		e.service = c.Keychain.Service
		e.account = c.Keychain.Account
	}
	return e, nil
}

func (e *Entry) Service() string { return e.service }

func (e *Entry) Account() string { return e.account }

// Credential returns a copy of the platform key this entry addresses.
func (e *Entry) Credential() *Credential { return e.target.Clone() }

// SetPassword stores password, replacing any existing value. It makes a
// single attempt; contention errors from the store are returned as is.
func (e *Entry) SetPassword(password string) error {
	return active.set(e.target, password)
}

// GetPassword returns the stored password, or an error of kind KindNoEntry
// when nothing is stored for this identity.
func (e *Entry) GetPassword() (string, error) {
	password, _, err := active.get(e.target)
	if err != nil {
		return "", err
	}
	return password, nil
}

// GetPasswordAndCredential also returns the credential as the store reports
// it, including metadata written by other applications.
func (e *Entry) GetPasswordAndCredential() (string, *Credential, error) {
	return active.get(e.target)
}

// DeletePassword removes the stored password. Deleting an absent entry
// fails with KindNoEntry, so a second delete in a row always fails.
func (e *Entry) DeletePassword() error {
	return active.delete(e.target)
}
