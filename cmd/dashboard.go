// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/router"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a summary of your projects and tasks",
	Args:  cobra.NoArgs,
	RunE: guarded(router.RequiresAuth, at("/dashboard"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
		return showDashboard(ctx, a)
	}),
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func showDashboard(ctx context.Context, a *app) error {
	if u := a.store.User(); u != nil {
		pterm.DefaultSection.Printf("Hello, %s", u.Name)
		pterm.Printf("Roles: %s\n", roleSummary(u))
	}

	projects, err := fetch("Loading projects", func() ([]backend.Project, error) { return a.api.ListProjects(ctx) })
	if err != nil {
		return err
	}
	tasks, err := fetch("Loading tasks", func() ([]backend.Task, error) { return a.api.ListTasks(ctx) })
	if err != nil {
		return err
	}

	byStatus := map[string]int{}
	for _, t := range tasks {
		status := t.Status
		if status == "" {
			status = "unknown"
		}
		byStatus[status]++
	}
	statuses := make([]string, 0, len(byStatus))
	for s := range byStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)

	rows := [][]string{
		{"Projects", fmt.Sprint(len(projects))},
		{"Tasks", fmt.Sprint(len(tasks))},
	}
	for _, s := range statuses {
		rows = append(rows, []string{"  " + s, fmt.Sprint(byStatus[s])})
	}
	return renderTable([]string{"", "Count"}, rows)
}
