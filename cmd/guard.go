// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	apperr "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/logging"
	"taskdeck/cli/internal/router"
)

type runFunc func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error

// targetFunc returns the application path a command invocation stands for.
type targetFunc func(args []string) string

func at(path string) targetFunc {
	return func([]string) string { return path }
}

func atf(format string) targetFunc {
	return func(args []string) string {
		if len(args) == 0 {
			return fmt.Sprintf(format, "")
		}
		return fmt.Sprintf(format, args[0])
	}
}

var errSessionExpired = errors.New("session expired")

// guarded wires the app, applies req to the command's target path and runs fn
// only when navigation is allowed. Commands that require a session restore it
// first; a token the backend rejects ends the command with a notice.
func guarded(req router.Requirement, target targetFunc, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		res, err := a.nav.Guard(req, target(args))
		if err != nil {
			return err
		}
		if !res.Allowed() {
			return a.follow(ctx, res)
		}

		if req == router.RequiresAuth {
			<-a.store.Init(ctx)
			if !a.store.IsAuthenticated() {
				printSessionExpired(res.Target)
				return errSessionExpired
			}
		}

		err = fn(ctx, a, cmd, args)
		if a.expired.Load() {
			printSessionExpired(res.Target)
			return errSessionExpired
		}
		return a.present("running "+cmd.CommandPath(), err)
	}
}

// follow acts on a guard redirect.
func (a *app) follow(ctx context.Context, res router.Resolution) error {
	switch res.Decision.RouteName {
	case router.RouteLogin:
		printNotLoggedIn(res.Decision.Query[router.RedirectParam])
		return nil
	case router.RouteDashboard:
		pterm.Info.Println("You're already logged in. Run 'taskdeck logout' to switch accounts.")
		pterm.Println()
		<-a.store.Init(ctx)
		if !a.store.IsAuthenticated() {
			printSessionExpired("")
			return errSessionExpired
		}
		return a.present("loading the dashboard", showDashboard(ctx, a))
	default:
		return fmt.Errorf("redirected to %s", res.RedirectURL)
	}
}

// present turns backend errors into user-facing ones.
func (a *app) present(action string, err error) error {
	if err == nil {
		return nil
	}
	a.log.Debug("command failed", a.log.Args("error", logging.Mask(err.Error())))
	if apperr.Is(err, apperr.TransportFailure) {
		cause := errors.Unwrap(err)
		if cause == nil {
			cause = err
		}
		return httperrors.FormatNetworkError(cause, action, a.cfg.APIURL)
	}
	if apperr.KindOf(err) == "" {
		return err
	}
	return errors.New(logging.PresentError("", err))
}

func printNotLoggedIn(redirect string) {
	pterm.Println("🔒 You're not logged in yet!")
	if redirect == "" || redirect == "/" {
		pterm.Println("   Run 'taskdeck login' to get started.")
		return
	}
	pterm.Printf("   Run 'taskdeck login --redirect %s' to get started.\n", redirect)
}

func printSessionExpired(target string) {
	pterm.Warning.Println("Your session has expired or was revoked.")
	if target == "" || target == "/" {
		pterm.Println("   Run 'taskdeck login' to sign in again.")
		return
	}
	pterm.Printf("   Run 'taskdeck login --redirect %s' to sign in again.\n", target)
}
