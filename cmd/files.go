// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/router"
)

var (
	uploadType      string
	uploadRelatedID int64
	downloadOut     string
)

var filesCmd = &cobra.Command{
	Use:     "files",
	Aliases: []string{"file"},
	Short:   "Upload and download attachments",
}

func init() {
	rootCmd.AddCommand(filesCmd)

	upload := &cobra.Command{
		Use:   "upload PATH",
		Short: "Attach a file to a project or task",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, at("/dashboard"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			if uploadType != "project" && uploadType != "task" {
				return fmt.Errorf("--type must be project or task")
			}
			if uploadRelatedID <= 0 {
				return fmt.Errorf("--related-id is required")
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			req := backend.UploadRequest{
				Filename:  filepath.Base(args[0]),
				Content:   f,
				Type:      uploadType,
				RelatedID: uploadRelatedID,
			}
			out, err := fetch("Uploading", func() (*backend.UploadedFile, error) { return a.api.Upload(ctx, req) })
			if err != nil {
				return err
			}
			pterm.Success.Printf("Uploaded %s\n", out.Filename)
			if out.URL != "" {
				pterm.Println(out.URL)
			}
			return nil
		}),
	}

	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Download an uploaded file",
		Args:  cobra.ExactArgs(1),
		RunE: guarded(router.RequiresAuth, at("/dashboard"), func(ctx context.Context, a *app, _ *cobra.Command, args []string) error {
			name := args[0]
			var w io.Writer = os.Stdout
			if downloadOut != "" && downloadOut != "-" {
				f, err := os.Create(downloadOut)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			n, err := a.api.GetFile(ctx, name, w)
			if err != nil {
				return err
			}
			if downloadOut != "" && downloadOut != "-" {
				pterm.Success.Printf("Saved %s (%d bytes) to %s\n", name, n, downloadOut)
			}
			return nil
		}),
	}

	upload.Flags().StringVar(&uploadType, "type", "task", "What the file belongs to: project or task")
	upload.Flags().Int64Var(&uploadRelatedID, "related-id", 0, "ID of the project or task")
	get.Flags().StringVarP(&downloadOut, "output", "o", "", "Write to this file instead of stdout")

	filesCmd.AddCommand(upload, get)
}
