//go:build integration

package keyring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests talk to the real platform store. Run them on a desktop session:
//
//	go test -tags integration ./pkg/keyring/
func TestIntegration_Lifecycle(t *testing.T) {
	active = newPlatformProvider()
	name := uuid.NewString()
	entry := NewEntry(name, name)
	t.Cleanup(func() { _ = entry.DeletePassword() })

	_, err := entry.GetPassword()
	require.ErrorIs(t, err, ErrNoEntry)

	require.NoError(t, entry.SetPassword("first"))
	require.NoError(t, entry.SetPassword("s3kr3t!"))

	got, cred, err := entry.GetPasswordAndCredential()
	require.NoError(t, err)
	assert.Equal(t, "s3kr3t!", got)
	assert.Equal(t, entry.target.storageID(), cred.storageID())

	require.NoError(t, entry.DeletePassword())
	assert.ErrorIs(t, entry.DeletePassword(), ErrNoEntry)
}

func TestIntegration_TargetedEntry(t *testing.T) {
	if Current() != PlatformWinCred {
		t.Skip("targets name an existing collection or domain outside Windows")
	}
	active = newPlatformProvider()
	name := uuid.NewString()
	entry := NewEntryWithTarget(name, name, name)
	t.Cleanup(func() { _ = entry.DeletePassword() })

	require.NoError(t, entry.SetPassword("ignored"))
	_, cred, err := entry.GetPasswordAndCredential()
	require.NoError(t, err)
	assert.Equal(t, entry.Credential(), cred)
}
