// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import "fmt"

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

func userAgent() string { return "taskdeck-cli/" + Version }

func printVersion() {
	fmt.Printf("taskdeck %s\n", Version)
	if cfg, err := loadConfig(); err == nil {
		fmt.Printf("backend  %s\n", cfg.APIURL)
	}
}
