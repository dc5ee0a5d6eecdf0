// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain persists the taskdeck bearer token in the OS keychain/credential store.
// The stored token is the single durable authentication signal: its presence is what the
// route guard consults, independently of whether a session store has been constructed.
//
// The package supports macOS Keychain, Windows Credential Manager, Secret Service,
// KWallet and pass, with an encrypted file keyring for headless machines.
// All operations are thread-safe.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/99designs/keyring"

	"taskdeck/cli/internal/config"
	"taskdeck/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "taskdeck"

// KeyAccessToken is the keychain entry holding the bearer token.
const KeyAccessToken = "auth_access_token"

// Manager provides thread-safe token operations over a keyring.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the keyring selected by cfg.
func NewManager(cfg config.KeyringConfig) (*Manager, error) {
	ring, err := openRing(cfg)
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// NewWithRing wraps an already opened keyring, e.g. keyring.NewArrayKeyring in tests.
func NewWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

var backendNames = map[string]keyring.BackendType{
	"keychain":       keyring.KeychainBackend,
	"wincred":        keyring.WinCredBackend,
	"secret-service": keyring.SecretServiceBackend,
	"kwallet":        keyring.KWalletBackend,
	"pass":           keyring.PassBackend,
	"file":           keyring.FileBackend,
}

// allowedBackends resolves the configured backend name, or the platform defaults.
func allowedBackends(name string) ([]keyring.BackendType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name != "" {
		b, ok := backendNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown keyring backend %q", name)
		}
		return []keyring.BackendType{b}, nil
	}
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}, nil
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}, nil
	default:
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}, nil
	}
}

// openRing opens the keyring. The file backend is only used when explicitly configured.
func openRing(c config.KeyringConfig) (keyring.Keyring, error) {
	allowed, err := allowedBackends(c.Backend)
	if err != nil {
		return nil, err
	}

	cfg := keyring.Config{
		ServiceName:             ServiceName,
		AllowedBackends:         allowed,
		PassPrefix:              ServiceName,
		WinCredPrefix:           ServiceName,
		KWalletAppID:            ServiceName,
		KWalletFolder:           ServiceName,
		LibSecretCollectionName: ServiceName,
	}

	if len(allowed) == 1 && allowed[0] == keyring.FileBackend {
		dir := c.FileDir
		if dir == "" {
			if dir, err = xdg.DataDir(); err != nil {
				return nil, err
			}
		}
		if c.Password == "" {
			return nil, fmt.Errorf("file keyring needs a passphrase in %s", config.EnvKeyringPassword)
		}
		cfg.FileDir = dir
		cfg.FilePasswordFunc = keyring.FixedStringPrompt(c.Password)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open keyring (set keyring.backend to \"file\" on headless machines): %w", err)
	}
	return ring, nil
}

// SaveToken stores the bearer token.
func (m *Manager) SaveToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("empty access token")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyAccessToken, Data: []byte(token), Label: "taskdeck access token"})
}

// LoadToken returns the stored bearer token, or "" when none is stored.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyAccessToken)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

// ClearToken removes the bearer token. Removing an absent token is not an error.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(KeyAccessToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// HasToken reports whether a non-empty token is stored. Read errors count as absent.
func (m *Manager) HasToken() bool {
	tok, err := m.LoadToken()
	return err == nil && tok != ""
}
