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
	taskForm     backend.TaskInput
	taskAssignee int64
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"task"},
	Short:   "List and manage tasks",
	Args:    cobra.NoArgs,
	RunE: guarded(router.RequiresAuth, at("/tasks"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
		return listTasks(ctx, a)
	}),
}

func init() {
	rootCmd.AddCommand(tasksCmd)

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: guarded(router.RequiresAuth, at("/tasks"), func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			return listTasks(ctx, a)
		}),
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show a task and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			return showTask(ctx, a, id)
		}),
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: guarded(router.RequiresAuth, at("/tasks/create"), func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			in := taskInput(cmd)
			if in.Title == "" || in.ProjectID == 0 {
				return fmt.Errorf("--title and --project are required")
			}
			t, err := fetch("Creating task", func() (*backend.Task, error) { return a.api.CreateTask(ctx, in) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Created task #%d %s\n", t.ID, t.Title)
			return nil
		}),
	}

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s/edit"), func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			in := taskInput(cmd)
			t, err := fetch("Updating task", func() (*backend.Task, error) { return a.api.UpdateTask(ctx, id, in) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Updated task #%d %s\n", t.ID, t.Title)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			if !confirmDeletes {
				ok, err := confirm(fmt.Sprintf("Delete task #%d?", id))
				if err != nil || !ok {
					return err
				}
			}
			if _, err := fetch("Deleting task", func() (struct{}, error) { return struct{}{}, a.api.DeleteTask(ctx, id) }); err != nil {
				return err
			}
			pterm.Success.Printf("Deleted task #%d\n", id)
			return nil
		}),
	}

	status := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a task to another status",
		Args:  cobra.ExactArgs(2),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			t, err := fetch("Updating status", func() (*backend.Task, error) { return a.api.UpdateTaskStatus(ctx, id, args[1]) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Task #%d is now %s\n", t.ID, t.Status)
			return nil
		}),
	}

	assign := &cobra.Command{
		Use:   "assign ID USER_ID",
		Short: "Assign a task to a user",
		Args:  cobra.ExactArgs(2),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			uid, err := parseID(args[1], "user")
			if err != nil {
				return err
			}
			t, err := fetch("Assigning task", func() (*backend.Task, error) { return a.api.AssignTask(ctx, id, uid) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Task #%d assigned to user #%s\n", t.ID, optionalID(t.AssignedTo))
			return nil
		}),
	}

	for _, c := range []*cobra.Command{create, update} {
		f := c.Flags()
		f.Int64Var(&taskForm.ProjectID, "project", 0, "Project ID")
		f.StringVar(&taskForm.Title, "title", "", "Title")
		f.StringVar(&taskForm.Description, "description", "", "Description")
		f.StringVar(&taskForm.Status, "status", "", "Status, e.g. todo, in_progress, done")
		f.StringVar(&taskForm.Priority, "priority", "", "Priority, e.g. low, medium, high")
		f.StringVar(&taskForm.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")
		f.Int64Var(&taskAssignee, "assignee", 0, "Assigned user ID")
	}
	del.Flags().BoolVarP(&confirmDeletes, "yes", "y", false, "Do not ask for confirmation")

	tasksCmd.AddCommand(list, get, create, update, del, status, assign)
}

func taskInput(cmd *cobra.Command) backend.TaskInput {
	in := taskForm
	if cmd.Flags().Changed("assignee") {
		id := taskAssignee
		in.AssignedTo = &id
	}
	return in
}

func listTasks(ctx context.Context, a *app) error {
	tasks, err := fetch("Loading tasks", func() ([]backend.Task, error) { return a.api.ListTasks(ctx) })
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{formatID(t.ID), formatID(t.ProjectID), t.Title, t.Status, t.Priority, t.DueDate, optionalID(t.AssignedTo)})
	}
	return renderTable([]string{"ID", "Project", "Title", "Status", "Priority", "Due", "Assignee"}, rows)
}

func showTask(ctx context.Context, a *app, id int64) error {
	t, err := fetch("Loading task", func() (*backend.Task, error) { return a.api.GetTask(ctx, id) })
	if err != nil {
		return err
	}
	renderFields(t.Title, [][2]string{
		{"ID", formatID(t.ID)},
		{"Project", formatID(t.ProjectID)},
		{"Status", t.Status},
		{"Priority", t.Priority},
		{"Due", t.DueDate},
		{"Assignee", optionalID(t.AssignedTo)},
		{"Description", t.Description},
	})
	return listComments(ctx, a, id)
}
