// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/router"
	"taskdeck/cli/internal/terminal"
)

var registerForm backend.RegisterRequest

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `The register command creates a Taskdeck account and signs in with it.
Validation problems reported by the backend are listed per field.`,
	Args: cobra.NoArgs,
	RunE: guarded(router.RequiresGuest, at("/register"), runRegister),
}

func init() {
	rootCmd.AddCommand(registerCmd)
	f := registerCmd.Flags()
	f.StringVar(&registerForm.Name, "name", "", "Full name")
	f.StringVar(&registerForm.Email, "email", "", "Email address")
	f.StringVar(&registerForm.Password, "password", "", "Password (prompted when omitted)")
	f.StringVar(&registerForm.PasswordConfirmation, "password-confirmation", "", "Repeat the password (defaults to --password)")
	f.StringVar(&registerForm.Position, "position", "", "Job title")
	f.StringVar(&registerForm.Department, "department", "", "Department")
}

func runRegister(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
	req := registerForm
	if req.Name == "" || req.Email == "" || req.Password == "" {
		if !terminal.IsInteractive() {
			return errors.New("--name, --email and --password are required when not running in a terminal")
		}
		for _, p := range []struct {
			title  string
			value  *string
			secret bool
		}{
			{"Name", &req.Name, false},
			{"Email", &req.Email, false},
			{"Password", &req.Password, true},
			{"Confirm password", &req.PasswordConfirmation, true},
		} {
			if err := promptInput(p.title, p.value, p.secret); err != nil {
				return err
			}
		}
	}
	if req.PasswordConfirmation == "" {
		req.PasswordConfirmation = req.Password
	}

	var ok bool
	withSpinner("Creating your account", func() { ok = a.store.Register(ctx, req) })
	if ok {
		showLoginGreeting(a.store.User())
		return nil
	}

	snap := a.store.Snapshot()
	if len(snap.FieldErrors) == 0 {
		return errors.New("registration failed: " + snap.LastError)
	}
	pterm.Error.Println("Registration failed")
	names := make([]string, 0, len(snap.FieldErrors))
	for name := range snap.FieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strings.Join(snap.FieldErrors[name], "\n")})
	}
	if err := renderTable([]string{"Field", "Problem"}, rows); err != nil {
		return err
	}
	return errors.New("registration failed")
}
