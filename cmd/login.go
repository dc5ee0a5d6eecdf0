// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"taskdeck/cli/internal/auth"
	"taskdeck/cli/internal/router"
	"taskdeck/cli/internal/terminal"
)

var (
	loginEmail    string
	loginPassword string
	loginRedirect string
)

// loginCmd signs in with email and password. It is a guest-only page: with a
// stored token it shows the dashboard instead.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your email and password",
	Long: `The login command signs in to the Taskdeck backend. When run in a terminal it
prompts for anything not passed as a flag. The access token is stored in the OS
keychain and sent with every later command.

Use --redirect to continue to a page after signing in, for example
'taskdeck login --redirect /projects/5'.`,
	Args: cobra.NoArgs,
	RunE: guarded(router.RequiresGuest, at("/login"), runLogin),
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginRedirect, router.RedirectParam, "", "Page to open after signing in")
}

func runLogin(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
	email, password := loginEmail, loginPassword
	if email == "" || password == "" {
		if !terminal.IsInteractive() {
			return errors.New("--email and --password are required when not running in a terminal")
		}
		if err := promptInput("Email", &email, false); err != nil {
			return err
		}
		if err := promptInput("Password", &password, true); err != nil {
			return err
		}
	}

	var ok bool
	withSpinner("Signing in", func() { ok = a.store.Login(ctx, email, password) })
	if !ok {
		return fmt.Errorf("login failed: %s", a.store.LastError())
	}

	showLoginGreeting(a.store.User())
	if loginRedirect != "" {
		fmt.Println()
		return openPage(ctx, a, loginRedirect)
	}
	return nil
}

func showLoginGreeting(u *auth.User) {
	if u == nil {
		fmt.Println("✅ Login successful!")
		return
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	fmt.Println(getRandomLoginGreeting(name))
}

func getRandomLoginGreeting(identifier string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"👋 Hello %s! Ready to ship?",
		"🎯 You're in, %s!",
		"🔓 Access granted! Welcome %s!",
	}
	return fmt.Sprintf(greetings[rand.IntN(len(greetings))], identifier)
}
