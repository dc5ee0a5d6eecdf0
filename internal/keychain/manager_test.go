// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/cli/internal/config"
)

func TestManagerTokenLifecycle(t *testing.T) {
	m := NewWithRing(keyring.NewArrayKeyring(nil))

	tok, err := m.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.False(t, m.HasToken())

	require.NoError(t, m.SaveToken("tok1"))
	tok, err = m.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok1", tok)
	assert.True(t, m.HasToken())

	require.NoError(t, m.SaveToken("tok2"))
	tok, _ = m.LoadToken()
	assert.Equal(t, "tok2", tok)

	require.NoError(t, m.ClearToken())
	assert.False(t, m.HasToken())
	require.NoError(t, m.ClearToken(), "clearing twice must not fail")
}

func TestSaveTokenRejectsEmpty(t *testing.T) {
	m := NewWithRing(keyring.NewArrayKeyring(nil))
	require.Error(t, m.SaveToken("  "))
	assert.False(t, m.HasToken())
}

func TestManagerReadsExistingRing(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: KeyAccessToken, Data: []byte("persisted")}})
	m := NewWithRing(ring)
	assert.True(t, m.HasToken())
}

func TestAllowedBackends(t *testing.T) {
	got, err := allowedBackends("file")
	require.NoError(t, err)
	assert.Equal(t, []keyring.BackendType{keyring.FileBackend}, got)

	_, err = allowedBackends("floppy")
	require.Error(t, err)

	got, err = allowedBackends("")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestFileBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(config.KeyringConfig{Backend: "file", FileDir: dir, Password: "pass"})
	require.NoError(t, err)

	require.NoError(t, m.SaveToken("tok-file"))

	reopened, err := NewManager(config.KeyringConfig{Backend: "file", FileDir: dir, Password: "pass"})
	require.NoError(t, err)
	tok, err := reopened.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-file", tok)
}

func TestFileBackendNeedsPassphrase(t *testing.T) {
	_, err := NewManager(config.KeyringConfig{Backend: "file", FileDir: t.TempDir()})
	require.Error(t, err)
}

func TestFileBackendClearWithoutToken(t *testing.T) {
	m, err := NewManager(config.KeyringConfig{Backend: "file", FileDir: t.TempDir(), Password: "pass"})
	require.NoError(t, err)

	require.NoError(t, m.ClearToken())
	require.NoError(t, m.SaveToken("tok"))
	require.NoError(t, m.ClearToken())
	require.NoError(t, m.ClearToken())
	assert.False(t, m.HasToken())
}
