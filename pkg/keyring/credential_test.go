package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allPlatforms = []Platform{PlatformSecretService, PlatformWinCred, PlatformKeychain, PlatformUnsupported}

func TestDefaultCredential_SecretService(t *testing.T) {
	c := DefaultCredential(PlatformSecretService, "", "myapp", "alice")
	require.NotNil(t, c.SecretService)
	assert.Nil(t, c.WinCred)
	assert.Nil(t, c.Keychain)

	assert.Equal(t, "default", c.SecretService.Collection)
	assert.Equal(t, map[string]string{
		"service":     "myapp",
		"username":    "alice",
		"application": "xkeyring",
	}, c.SecretService.Attributes)
	assert.Equal(t, "xkeyring entry for service 'myapp', user 'alice'", c.SecretService.Label)

	custom := DefaultCredential(PlatformSecretService, "work", "myapp", "alice")
	assert.Equal(t, "work", custom.SecretService.Collection)
	assert.Equal(t, "xkeyring custom entry for service 'myapp', user 'alice'", custom.SecretService.Label)
}

func TestDefaultCredential_WinCred(t *testing.T) {
	c := DefaultCredential(PlatformWinCred, "", "myapp", "alice")
	require.NotNil(t, c.WinCred)
	assert.Equal(t, "alice", c.WinCred.Username)
	assert.Equal(t, "alice.myapp", c.WinCred.TargetName)
	assert.Empty(t, c.WinCred.TargetAlias)
	assert.Equal(t, "xkeyring entry for service 'myapp', user 'alice'", c.WinCred.Comment)

	custom := DefaultCredential(PlatformWinCred, "my-target", "myapp", "alice")
	assert.Equal(t, "my-target", custom.WinCred.TargetName)
}

func TestDefaultCredential_Keychain(t *testing.T) {
	tests := []struct {
		target string
		want   KeychainDomain
	}{
		{target: "", want: DomainUser},
		{target: "System", want: DomainSystem},
		{target: "common", want: DomainCommon},
		{target: " dynamic ", want: DomainDynamic},
		{target: "nonsense", want: DomainUser},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			c := DefaultCredential(PlatformKeychain, tt.target, "myapp", "alice")
			require.NotNil(t, c.Keychain)
			assert.Equal(t, tt.want, c.Keychain.Domain)
			assert.Equal(t, "myapp", c.Keychain.Service)
			assert.Equal(t, "alice", c.Keychain.Account)
		})
	}
}

func TestWinTargetName_Escaping(t *testing.T) {
	tests := []struct {
		service string
		account string
		want    string
	}{
		{service: "myapp", account: "alice", want: "alice.myapp"},
		{service: "c", account: "a.b", want: "a%2Eb.c"},
		{service: "b.c", account: "a", want: "a.b.c"},
		{service: "svc", account: "100%", want: "100%25.svc"},
		{service: "svc", account: "%2E", want: "%252E.svc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, winTargetName(tt.service, tt.account), "service=%q account=%q", tt.service, tt.account)
	}
}

func TestStorageID_DeterministicAndCollisionFree(t *testing.T) {
	identities := [][2]string{
		{"A", "X"}, {"A", "Y"}, {"B", "X"},
		{"a.b", "c"}, {"a", "b.c"}, {"c", "a.b"}, {"b.c", "a"},
		{"a,b", "c"}, {"a", "b,c"},
		{"a\"", "b"}, {"a", "\"b"},
		{"x=y", "z"}, {"x", "y=z"},
		{"100%", "svc"}, {"100%25", "svc"},
	}
	for _, p := range allPlatforms {
		t.Run(string(p), func(t *testing.T) {
			seen := map[string][2]string{}
			for _, id := range identities {
				key := DefaultCredential(p, "", id[0], id[1]).storageID()
				again := DefaultCredential(p, "", id[0], id[1]).storageID()
				require.Equal(t, key, again)
				if prev, ok := seen[key]; ok {
					t.Fatalf("%v and %v share storage id %q", prev, id, key)
				}
				seen[key] = id
			}
		})
	}
}

func TestStorageID_SecretServiceDefaultCollectionAliases(t *testing.T) {
	c := DefaultCredential(PlatformSecretService, "", "svc", "acct")
	empty := c.Clone()
	empty.SecretService.Collection = ""
	assert.Equal(t, c.storageID(), empty.storageID())
}

func TestStorageID_WinCredIgnoresMetadata(t *testing.T) {
	c := DefaultCredential(PlatformWinCred, "", "svc", "acct")
	other := c.Clone()
	other.WinCred.Comment = "written elsewhere"
	other.WinCred.Username = "someone"
	assert.Equal(t, c.storageID(), other.storageID())
}

func TestCredential_Clone(t *testing.T) {
	for _, p := range allPlatforms {
		c := DefaultCredential(p, "", "svc", "acct")
		cp := c.Clone()
		require.Equal(t, c, cp)
		assert.NotSame(t, c, cp)
	}

	c := DefaultCredential(PlatformSecretService, "", "svc", "acct")
	cp := c.Clone()
	cp.SecretService.Attributes["service"] = "changed"
	assert.Equal(t, "svc", c.SecretService.Attributes["service"])

	var nilCred *Credential
	assert.Nil(t, nilCred.Clone())
}

func TestCredential_MatchesPlatform(t *testing.T) {
	for _, p := range allPlatforms {
		c := DefaultCredential(p, "", "svc", "acct")
		for _, q := range allPlatforms {
			assert.Equal(t, p == q, c.MatchesPlatform(q), "credential for %s checked against %s", p, q)
		}
	}

	var nilCred *Credential
	assert.False(t, nilCred.MatchesPlatform(PlatformSecretService))
	assert.False(t, (&Credential{Platform: PlatformWinCred}).MatchesPlatform(PlatformWinCred))
}

func TestParseKeychainDomain(t *testing.T) {
	d, ok := ParseKeychainDomain("USER")
	assert.True(t, ok)
	assert.Equal(t, DomainUser, d)

	_, ok = ParseKeychainDomain("login")
	assert.False(t, ok)
}
