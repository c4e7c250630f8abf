package keyring

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWinCredential(t *testing.T) {
	base := func() *WinCredential {
		return DefaultCredential(PlatformWinCred, "", "svc", "acct").WinCred
	}

	tests := []struct {
		name      string
		mutate    func(*WinCredential)
		password  string
		wantField string
		wantLimit int
	}{
		{name: "ok", mutate: func(*WinCredential) {}, password: "pw"},
		{name: "password_at_limit", mutate: func(*WinCredential) {}, password: strings.Repeat("a", winMaxBlobSize/2)},
		{name: "password", mutate: func(*WinCredential) {}, password: strings.Repeat("a", winMaxBlobSize/2+1), wantField: "password", wantLimit: winMaxBlobSize},
		{name: "username", mutate: func(c *WinCredential) { c.Username = strings.Repeat("u", winMaxUsernameLength+1) }, wantField: "username", wantLimit: winMaxUsernameLength},
		{name: "target", mutate: func(c *WinCredential) { c.TargetName = strings.Repeat("t", winMaxTargetNameLength+1) }, wantField: "target", wantLimit: winMaxTargetNameLength},
		{name: "alias", mutate: func(c *WinCredential) { c.TargetAlias = strings.Repeat("a", winMaxStringLength+1) }, wantField: "target alias", wantLimit: winMaxStringLength},
		{name: "comment", mutate: func(c *WinCredential) { c.Comment = strings.Repeat("c", winMaxStringLength+1) }, wantField: "comment", wantLimit: winMaxStringLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := validateWinCredential(c, tt.password)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ke *Error
			require.True(t, errors.As(err, &ke))
			assert.Equal(t, KindTooLong, ke.Kind)
			assert.Equal(t, tt.wantField, ke.Field)
			assert.Equal(t, tt.wantLimit, ke.Limit)
		})
	}
}

func TestValidateWinCredential_CountsUTF16Units(t *testing.T) {
	// Each key emoji takes two UTF-16 units, four blob bytes.
	password := strings.Repeat("🔑", winMaxBlobSize/4)
	assert.NoError(t, validateWinCredential(&WinCredential{}, password))
	assert.ErrorIs(t, validateWinCredential(&WinCredential{}, password+"a"), ErrTooLong)
}
