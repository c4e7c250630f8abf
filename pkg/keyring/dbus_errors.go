//go:build linux || freebsd || openbsd || netbsd || dragonfly

package keyring

import (
	"errors"
	"fmt"
	"slices"

	dbus "github.com/godbus/dbus/v5"
)

const (
	dbusErrNoSuchObject = "org.freedesktop.Secret.Error.NoSuchObject"
	dbusErrInvalidArgs  = "org.freedesktop.DBus.Error.InvalidArgs"
)

// decodeDBusError maps a Secret Service failure into the keyring taxonomy.
// Locked collections, a missing daemon and dismissed prompts all stay
// platform failures; only the error name is inspected, never the message.
func decodeDBusError(err error) error {
	if err == nil {
		return nil
	}
	var ke *Error
	if errors.As(err, &ke) {
		return err
	}
	name := dbusErrorName(err)
	switch name {
	case dbusErrNoSuchObject:
		return errNoEntry()
	case dbusErrInvalidArgs:
		return errInvalid("attributes", err.Error())
	default:
		return errPlatformFailure(err)
	}
}

func dbusErrorName(err error) string {
	var byValue dbus.Error
	if errors.As(err, &byValue) {
		return byValue.Name
	}
	var byPointer *dbus.Error
	if errors.As(err, &byPointer) && byPointer != nil {
		return byPointer.Name
	}
	return ""
}

// collectionLookup classifies a named collection against the service's
// Collections property. A failed read is a platform failure. A collection
// that is absent is NoEntry for lookups, and a platform failure for writes
// since nothing creates it.
func collectionLookup(paths []dbus.ObjectPath, readErr error, name string, forWrite bool) error {
	if readErr != nil {
		var ke *Error
		if errors.As(readErr, &ke) {
			return readErr
		}
		return errPlatformFailure(readErr)
	}
	want := dbus.ObjectPath(collectionPathBase + name)
	if slices.Contains(paths, want) {
		return nil
	}
	if forWrite {
		return errPlatformFailure(fmt.Errorf("secret service collection %q does not exist", name))
	}
	return errNoEntry()
}
