// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/pterm/pterm"

	"taskdeck/cli/internal/auth"
	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/config"
	"taskdeck/cli/internal/keychain"
	"taskdeck/cli/internal/logging"
	"taskdeck/cli/internal/router"
)

// app holds the components wired for one invocation.
type app struct {
	cfg   config.Config
	log   *pterm.Logger
	keys  *keychain.Manager
	api   backend.API
	store *auth.Store
	nav   *router.Navigator

	// expired is set when the backend rejected the token during this invocation.
	expired atomic.Bool
}

func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.LoadFile(configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if apiURLFlag != "" {
		cfg.APIURL = strings.TrimRight(apiURLFlag, "/")
	}
	return cfg, nil
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := logging.New(level, nil)

	keys, err := keychain.NewManager(cfg.Keyring)
	if err != nil {
		return nil, fmt.Errorf("open keychain: %w", err)
	}

	a := &app{cfg: cfg, log: log, keys: keys}
	client := backend.New(cfg.APIURL,
		backend.WithTimeout(cfg.Timeout),
		backend.WithTokenSource(keys),
		backend.WithLogger(log),
		backend.WithUserAgent(userAgent()),
	)
	a.api = client
	a.store = auth.NewStore(client, keys, auth.WithLogger(log))
	client.SetUnauthorizedHandler(a.teardown)
	a.nav = router.NewNavigator(router.DefaultTable(), keys)
	return a, nil
}

// teardown is the backend's 401 hook.
func (a *app) teardown() {
	a.expired.Store(true)
	a.store.Teardown()
}
