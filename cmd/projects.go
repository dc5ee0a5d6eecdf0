// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/router"
)

var (
	projectForm    backend.ProjectInput
	projectProg    int
	memberRole     string
	confirmDeletes bool
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "List and manage projects",
	Args:    cobra.NoArgs,
	RunE: guarded(router.RequiresAuth, at("/projects"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
		return listProjects(ctx, a)
	}),
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: guarded(router.RequiresAuth, at("/projects"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			return listProjects(ctx, a)
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a project and its members",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "project")
			if err != nil {
				return err
			}
			return showProject(ctx, a, id)
		}),
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: guarded(router.RequiresAuth, at("/projects/create"), func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			in := projectInput(cmd)
			if in.Name == "" {
				return fmt.Errorf("--name is required")
			}
			p, err := fetch("Creating project", func() (*backend.Project, error) { return a.api.CreateProject(ctx, in) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Created project #%d %s\n", p.ID, p.Name)
			return nil
		}),
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s/edit"), func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "project")
			if err != nil {
				return err
			}
			in := projectInput(cmd)
			p, err := fetch("Updating project", func() (*backend.Project, error) { return a.api.UpdateProject(ctx, id, in) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Updated project #%d %s\n", p.ID, p.Name)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "project")
			if err != nil {
				return err
			}
			if !confirmDeletes {
				ok, err := confirm(fmt.Sprintf("Delete project #%d?", id))
				if err != nil || !ok {
					return err
				}
			}
			if _, err := fetch("Deleting project", func() (struct{}, error) { return struct{}{}, a.api.DeleteProject(ctx, id) }); err != nil {
				return err
			}
			pterm.Success.Printf("Deleted project #%d\n", id)
			return nil
		}),
	}

	members := &cobra.Command{
		Use:   "members ID",
		Short: "List project members",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "project")
			if err != nil {
				return err
			}
			return listMembers(ctx, a, id)
		}),
	}

	addMember := &cobra.Command{
		Use:   "add-member PROJECT_ID USER_ID",
		Short: "Add a user to a project",
		Args:  cobra.ExactArgs(2),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s/edit"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			pid, uid, err := parseMemberArgs(args)
			if err != nil {
				return err
			}
			in := backend.MemberInput{UserID: uid, Role: memberRole}
			if _, err := fetch("Adding member", func() (struct{}, error) { return struct{}{}, a.api.AddProjectMember(ctx, pid, in) }); err != nil {
				return err
			}
			pterm.Success.Printf("Added user #%d to project #%d\n", uid, pid)
			return nil
		}),
	}

	removeMember := &cobra.Command{
		Use:   "remove-member PROJECT_ID USER_ID",
		Short: "Remove a user from a project",
		Args:  cobra.ExactArgs(2),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s/edit"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			pid, uid, err := parseMemberArgs(args)
			if err != nil {
				return err
			}
			if _, err := fetch("Removing member", func() (struct{}, error) { return struct{}{}, a.api.RemoveProjectMember(ctx, pid, uid) }); err != nil {
				return err
			}
			pterm.Success.Printf("Removed user #%d from project #%d\n", uid, pid)
			return nil
		}),
	}

	setRole := &cobra.Command{
		Use:   "set-role PROJECT_ID USER_ID ROLE",
		Short: "Change a member's role in a project",
		Args:  cobra.ExactArgs(3),
		RunE: guarded(router.RequiresAuth, atf("/projects/%s/edit"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			pid, uid, err := parseMemberArgs(args)
			if err != nil {
				return err
			}
			role := args[2]
			if _, err := fetch("Updating role", func() (struct{}, error) { return struct{}{}, a.api.UpdateProjectMemberRole(ctx, pid, uid, role) }); err != nil {
				return err
			}
			pterm.Success.Printf("User #%d is now %s in project #%d\n", uid, role, pid)
			return nil
		}),
	}

	for _, c := range []*cobra.Command{create, update} {
		f := c.Flags()
		f.StringVar(&projectForm.Name, "name", "", "Project name")
		f.StringVar(&projectForm.Description, "description", "", "Description")
		f.StringVar(&projectForm.Status, "status", "", "Status, e.g. planning, active, completed")
		f.IntVar(&projectProg, "progress", 0, "Progress in percent")
		f.StringVar(&projectForm.StartDate, "start-date", "", "Start date (YYYY-MM-DD)")
		f.StringVar(&projectForm.EndDate, "end-date", "", "End date (YYYY-MM-DD)")
	}
	del.Flags().BoolVarP(&confirmDeletes, "yes", "y", false, "Do not ask for confirmation")
	addMember.Flags().StringVar(&memberRole, "role", "", "Role in the project")

	projectsCmd.AddCommand(list, get, create, update, del, members, addMember, removeMember, setRole)
}

func projectInput(cmd *cobra.Command) backend.ProjectInput {
	in := projectForm
	if cmd.Flags().Changed("progress") {
		p := projectProg
		in.Progress = &p
	}
	return in
}

func parseMemberArgs(args []string) (int64, int64, error) {
	pid, err := parseID(args[0], "project")
	if err != nil {
		return 0, 0, err
	}
	uid, err := parseID(args[1], "user")
	if err != nil {
		return 0, 0, err
	}
	return pid, uid, nil
}

func listProjects(ctx context.Context, a *app) error {
	projects, err := fetch("Loading projects", func() ([]backend.Project, error) { return a.api.ListProjects(ctx) })
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{formatID(p.ID), p.Name, p.Status, fmt.Sprintf("%d%%", p.Progress), p.EndDate})
	}
	return renderTable([]string{"ID", "Name", "Status", "Progress", "Due"}, rows)
}

func showProject(ctx context.Context, a *app, id int64) error {
	p, err := fetch("Loading project", func() (*backend.Project, error) { return a.api.GetProject(ctx, id) })
	if err != nil {
		return err
	}
	renderFields(p.Name, [][2]string{
		{"ID", formatID(p.ID)},
		{"Status", p.Status},
		{"Progress", fmt.Sprintf("%d%%", p.Progress)},
		{"Start", p.StartDate},
		{"End", p.EndDate},
		{"Description", p.Description},
	})
	return listMembers(ctx, a, id)
}

func listMembers(ctx context.Context, a *app, projectID int64) error {
	members, err := fetch("Loading members", func() ([]backend.Member, error) { return a.api.ListProjectMembers(ctx, projectID) })
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{formatID(m.ID), m.Name, m.Email, m.Role})
	}
	return renderTable([]string{"ID", "Name", "Email", "Role"}, rows)
}
