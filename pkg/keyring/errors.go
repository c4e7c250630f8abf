package keyring

import (
	"errors"
	"fmt"
)

// Kind classifies every failure a provider can report. The set is closed:
// callers branch on the kind, never on the wrapped platform detail.
type Kind int

const (
	// KindNoEntry means nothing is stored for the identity.
	KindNoEntry Kind = iota + 1
	// KindBadEncoding means the stored value is not a valid text secret.
	KindBadEncoding
	// KindTooLong means an identity component or the secret exceeds a platform limit.
	KindTooLong
	// KindInvalid means the platform store rejected an identity component.
	KindInvalid
	// KindPlatformFailure wraps any native error not otherwise classified.
	KindPlatformFailure
)

func (k Kind) String() string {
	switch k {
	case KindNoEntry:
		return "no entry"
	case KindBadEncoding:
		return "bad encoding"
	case KindTooLong:
		return "too long"
	case KindInvalid:
		return "invalid"
	case KindPlatformFailure:
		return "platform failure"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the only error type returned by Entry operations.
type Error struct {
	Kind Kind

	// Field names the offending attribute for KindTooLong and KindInvalid.
	Field string
	// Limit is the platform limit for KindTooLong.
	Limit int
	// Reason explains a KindInvalid rejection.
	Reason string
	// Data holds the undecodable bytes for KindBadEncoding.
	Data []byte
	// Err is the native error for KindPlatformFailure.
	Err error
}

// Sentinels for errors.Is. Matching compares the kind only, so
// errors.Is(err, ErrTooLong) holds whatever the field and limit are.
var (
	ErrNoEntry         = &Error{Kind: KindNoEntry}
	ErrBadEncoding     = &Error{Kind: KindBadEncoding}
	ErrTooLong         = &Error{Kind: KindTooLong}
	ErrInvalid         = &Error{Kind: KindInvalid}
	ErrPlatformFailure = &Error{Kind: KindPlatformFailure}
)

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindNoEntry:
		return "keyring: no matching entry found in secure storage"
	case KindBadEncoding:
		return "keyring: stored password is not valid UTF-8"
	case KindTooLong:
		return fmt.Sprintf("keyring: attribute %q is longer than platform limit of %d", e.Field, e.Limit)
	case KindInvalid:
		return fmt.Sprintf("keyring: attribute %q is invalid: %s", e.Field, e.Reason)
	case KindPlatformFailure:
		if e.Err == nil {
			return "keyring: platform secure storage failure"
		}
		return fmt.Sprintf("keyring: platform secure storage failure: %v", e.Err)
	default:
		return fmt.Sprintf("keyring: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a keyring error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the kind of the first keyring error in err's chain, or zero
// when err carries none.
func KindOf(err error) Kind {
	var ke *Error
	if errors.As(err, &ke) && ke != nil {
		return ke.Kind
	}
	return 0
}

// IsNoEntry is shorthand for errors.Is(err, ErrNoEntry).
func IsNoEntry(err error) bool {
	return errors.Is(err, ErrNoEntry)
}

func errNoEntry() *Error {
	return &Error{Kind: KindNoEntry}
}

func errBadEncoding(data []byte) *Error {
	return &Error{Kind: KindBadEncoding, Data: data}
}

func errTooLong(field string, limit int) *Error {
	return &Error{Kind: KindTooLong, Field: field, Limit: limit}
}

func errInvalid(field, reason string) *Error {
	return &Error{Kind: KindInvalid, Field: field, Reason: reason}
}

func errPlatformFailure(err error) *Error {
	return &Error{Kind: KindPlatformFailure, Err: err}
}
