// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/router"
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"user"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	RunE: guarded(router.RequiresAuth, at("/users"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
		return listUsers(ctx, a, false)
	}),
}

func init() {
	rootCmd.AddCommand(usersCmd)

	list := &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: guarded(router.RequiresAuth, at("/users"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			return listUsers(ctx, a, false)
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/users/%s/edit"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			u, err := fetch("Loading user", func() (*backend.User, error) { return a.api.GetUser(ctx, id) })
			if err != nil {
				return err
			}
			renderFields(u.Name, [][2]string{
				{"ID", formatID(u.ID)},
				{"Email", u.Email},
				{"Position", u.Position},
				{"Department", u.Department},
			})
			return nil
		}),
	}

	assignees := &cobra.Command{
		Use:   "assignees",
		Short: "List users that tasks can be assigned to",
		Args:  cobra.NoArgs,
		RunE: guarded(router.RequiresAuth, at("/tasks"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			return listUsers(ctx, a, true)
		}),
	}

	usersCmd.AddCommand(list, get, assignees)
}

func listUsers(ctx context.Context, a *app, assignable bool) error {
	call := a.api.ListUsers
	if assignable {
		call = a.api.ListTaskAssignees
	}
	users, err := fetch("Loading users", func() ([]backend.User, error) { return call(ctx) })
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{formatID(u.ID), u.Name, u.Email, u.Position, u.Department})
	}
	return renderTable([]string{"ID", "Name", "Email", "Position", "Department"}, rows)
}
