// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/router"
)

type pageFunc func(ctx context.Context, a *app, vars map[string]string) error

// pages maps route names to their terminal views.
var pages = map[string]pageFunc{
	"home": func(context.Context, *app, map[string]string) error {
		pterm.Println("Taskdeck. Run 'taskdeck routes' to see every page you can open.")
		return nil
	},
	"about": func(context.Context, *app, map[string]string) error {
		printVersion()
		return nil
	},
	router.RouteDashboard: func(ctx context.Context, a *app, _ map[string]string) error {
		return showDashboard(ctx, a)
	},
	"projects": func(ctx context.Context, a *app, _ map[string]string) error {
		return listProjects(ctx, a)
	},
	"project-detail": func(ctx context.Context, a *app, vars map[string]string) error {
		id, err := parseID(vars["id"], "project")
		if err != nil {
			return err
		}
		return showProject(ctx, a, id)
	},
	"tasks": func(ctx context.Context, a *app, _ map[string]string) error {
		return listTasks(ctx, a)
	},
	"task-detail": func(ctx context.Context, a *app, vars map[string]string) error {
		id, err := parseID(vars["id"], "task")
		if err != nil {
			return err
		}
		return showTask(ctx, a, id)
	},
	"users": func(ctx context.Context, a *app, _ map[string]string) error {
		return listUsers(ctx, a, false)
	},
	"profile": func(_ context.Context, a *app, _ map[string]string) error {
		showProfile(a)
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open PATH",
	Short: "Open an application page by path",
	Long: `The open command resolves an application path such as /projects/5 against the
route table, applies the page's access rule and shows the page.

Pages that need a session send you to login when no token is stored; login and
register send you to the dashboard when one is.`,
	Example: "  taskdeck open /projects/5\n  taskdeck open /tasks",
	Args:    cobra.ExactArgs(1),
	RunE: guarded(router.None, atf("%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
		return openPage(ctx, a, args[0])
	}),
}

func init() {
	rootCmd.AddCommand(openCmd)
}

// openPage navigates to path and renders the page when navigation is allowed.
func openPage(ctx context.Context, a *app, path string) error {
	res, err := a.nav.Navigate(path)
	if err != nil {
		return err
	}
	if !res.Allowed() {
		return a.follow(ctx, res)
	}
	if res.Route.Requirement == router.RequiresAuth {
		<-a.store.Init(ctx)
		if !a.store.IsAuthenticated() {
			printSessionExpired(path)
			return errSessionExpired
		}
	}

	if res.Route.CatchAll {
		pterm.Warning.Printf("No page at %s\n", path)
		return nil
	}
	page, ok := pages[res.Route.Name]
	if !ok {
		pterm.Info.Printf("%s (%s) has no terminal view yet; see 'taskdeck --help' for the matching command.\n", res.Route.Title, path)
		return nil
	}
	return page(ctx, a, res.Vars)
}
