// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/router"
)

var commentsCmd = &cobra.Command{
	Use:     "comments",
	Aliases: []string{"comment"},
	Short:   "Read and write task comments",
}

func init() {
	rootCmd.AddCommand(commentsCmd)

	list := &cobra.Command{
		Use:   "list TASK_ID",
		Short: "List the comments on a task",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			return listComments(ctx, a, id)
		}),
	}

	add := &cobra.Command{
		Use:   "add TASK_ID TEXT...",
		Short: "Comment on a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: guarded(router.RequiresAuth, atf("/tasks/%s"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task")
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")
			c, err := fetch("Posting comment", func() (*backend.Comment, error) { return a.api.CreateComment(ctx, id, content) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Added comment #%d to task #%d\n", c.ID, id)
			return nil
		}),
	}

	edit := &cobra.Command{
		Use:   "edit COMMENT_ID TEXT...",
		Short: "Edit a comment",
		Args:  cobra.MinimumNArgs(2),
		RunE: guarded(router.RequiresAuth, at("/tasks"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			content := strings.Join(args[1:], " ")
			if _, err := fetch("Saving comment", func() (*backend.Comment, error) { return a.api.UpdateComment(ctx, id, content) }); err != nil {
				return err
			}
			pterm.Success.Printf("Updated comment #%d\n", id)
			return nil
		}),
	}

	del := &cobra.Command{
		Use:   "delete COMMENT_ID",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, at("/tasks"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			if _, err := fetch("Deleting comment", func() (struct{}, error) { return struct{}{}, a.api.DeleteComment(ctx, id) }); err != nil {
				return err
			}
			pterm.Success.Printf("Deleted comment #%d\n", id)
			return nil
		}),
	}

	commentsCmd.AddCommand(list, add, edit, del)
}

func listComments(ctx context.Context, a *app, taskID int64) error {
	comments, err := fetch("Loading comments", func() ([]backend.Comment, error) { return a.api.ListTaskComments(ctx, taskID) })
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		author := fmt.Sprintf("#%d", c.UserID)
		if c.User != nil && c.User.Name != "" {
			author = c.User.Name
		}
		rows = append(rows, []string{formatID(c.ID), author, c.CreatedAt, c.Content})
	}
	return renderTable([]string{"ID", "Author", "When", "Comment"}, rows)
}
