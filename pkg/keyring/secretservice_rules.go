package keyring

import (
	"strings"
	"unicode/utf8"
)

// validateSecretService rejects values D-Bus cannot marshal as strings. The
// bus would fail the call anyway, but with an opaque IPC error.
func validateSecretService(c *SecretServiceCredential) error {
	if strings.Contains(c.Collection, "/") {
		return errInvalid("collection", "collection name must not contain '/'")
	}
	if !utf8.ValidString(c.Collection) {
		return errInvalid("collection", "not valid UTF-8")
	}
	if !utf8.ValidString(c.Label) {
		return errInvalid("label", "not valid UTF-8")
	}
	for k, v := range c.Attributes {
		if !utf8.ValidString(k) {
			return errInvalid("attribute name", "not valid UTF-8")
		}
		if !utf8.ValidString(v) {
			return errInvalid(k, "not valid UTF-8")
		}
		if strings.ContainsRune(k, 0) || strings.ContainsRune(v, 0) {
			return errInvalid(k, "contains a NUL character")
		}
	}
	return nil
}
