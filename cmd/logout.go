// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskdeck/cli/internal/router"
)

// logoutCmd ends the session. The backend is told on a best-effort basis; the
// local token is removed no matter what it answers.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the stored token",
	Long: `The logout command invalidates the current access token on the backend when
it can reach it, then always removes the token from the OS keychain.`,
	Args: cobra.NoArgs,
	RunE: guarded(router.None, at("/"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
		a.store.Restore()
		withSpinner("Signing out", func() { a.store.Logout(ctx) })
		a.expired.Store(false)
		fmt.Println("✅ Signed out. The stored token has been removed.")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
