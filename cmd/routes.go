// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"taskdeck/cli/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List application pages and whether you can open them now",
	Args:  cobra.NoArgs,
	RunE: guarded(router.None, at("/"), func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
		table := a.nav.Table()
		rows := [][]string{}
		for _, r := range table.Routes() {
			if r.CatchAll {
				continue
			}
			access := "open"
			res, err := a.nav.Guard(r.Requirement, r.Template())
			if err != nil {
				return err
			}
			if !res.Allowed() {
				access = "→ " + res.RedirectURL
			}
			rows = append(rows, []string{r.Name, r.Template(), r.Requirement.String(), access})
		}
		return renderTable([]string{"Name", "Path", "Requires", "Now"}, rows)
	}),
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
