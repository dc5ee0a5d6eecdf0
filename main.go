// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the Taskdeck CLI application.
package main

import (
	"taskdeck/cli/cmd"
)

func main() {
	cmd.Execute()
}
