package keyring

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{name: "no_entry", err: errNoEntry(), want: "keyring: no matching entry found in secure storage"},
		{name: "bad_encoding", err: errBadEncoding([]byte{0x80}), want: "keyring: stored password is not valid UTF-8"},
		{name: "too_long", err: errTooLong("username", 513), want: `keyring: attribute "username" is longer than platform limit of 513`},
		{name: "invalid", err: errInvalid("service", "contains NUL"), want: `keyring: attribute "service" is invalid: contains NUL`},
		{name: "platform", err: errPlatformFailure(errors.New("dbus down")), want: "keyring: platform secure storage failure: dbus down"},
		{name: "platform_no_cause", err: errPlatformFailure(nil), want: "keyring: platform secure storage failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	var nilErr *Error
	assert.Empty(t, nilErr.Error())
}

func TestError_IsMatchesKindOnly(t *testing.T) {
	err := fmt.Errorf("saving token: %w", errTooLong("password", 2560))

	assert.ErrorIs(t, err, ErrTooLong)
	assert.NotErrorIs(t, err, ErrInvalid)
	assert.NotErrorIs(t, err, ErrNoEntry)
	assert.Equal(t, KindTooLong, KindOf(err))
}

func TestError_UnwrapsPlatformDetail(t *testing.T) {
	cause := errors.New("org.freedesktop.DBus.Error.ServiceUnknown")
	err := errPlatformFailure(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPlatformFailure)
	assert.Nil(t, errNoEntry().Unwrap())
}

func TestKindOf_NonKeyringError(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
	assert.False(t, IsNoEntry(errors.New("not found")))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "no entry", KindNoEntry.String())
	assert.Equal(t, "platform failure", KindPlatformFailure.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
