// Package keyring stores, reads and deletes secrets in the operating
// system's credential store, addressed by a (service, account) pair.
//
// One provider is compiled into each binary: the freedesktop Secret Service
// over D-Bus on Linux and the BSDs, the Credential Manager on Windows and the
// login keychain on macOS. Every failure is returned as an *Error whose Kind
// is one of a closed set, so callers can write platform-independent checks:
//
//	entry := keyring.NewEntry("myapp", "alice")
//	if err := entry.SetPassword("s3kr3t!"); err != nil {
//		return err
//	}
//	password, err := entry.GetPassword()
//	if keyring.IsNoEntry(err) {
//		// nothing stored yet
//	}
//
// The package adds no encryption, caching, retries or locking of its own.
package keyring
