// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskdeck/cli/internal/auth"
	"taskdeck/cli/internal/router"
)

// meCmd shows the signed-in user's profile, roles and permissions.
var meCmd = &cobra.Command{
	Use:     "me",
	Aliases: []string{"whoami", "profile"},
	Short:   "Show the signed-in account",
	Long: `The me command refreshes the profile of the signed-in user from the backend
and shows it with the user's roles, permissions and token expiry.`,
	Args: cobra.NoArgs,
	RunE: guarded(router.RequiresAuth, at("/profile"), func(_ context.Context, a *app, _ *cobra.Command, _ []string) error {
		showProfile(a)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(meCmd)
}

func showProfile(a *app) {
	snap := a.store.Snapshot()
	u := snap.User
	if u == nil {
		// Profile refresh failed for a reason other than authorization.
		fmt.Println("👤 Signed in (profile unavailable right now)")
		showTokenInfo(snap.Token)
		return
	}

	renderFields(u.Name, [][2]string{
		{"ID", formatID(u.ID)},
		{"Email", u.Email},
		{"Position", u.Position},
		{"Department", u.Department},
		{"Roles", roleSummary(u)},
	})
	if len(u.Permissions) > 0 {
		items := make([]pterm.BulletListItem, 0, len(u.Permissions))
		for _, p := range u.Permissions {
			items = append(items, pterm.BulletListItem{Level: 0, Text: p})
		}
		pterm.DefaultSection.WithLevel(2).Println("Permissions")
		_ = pterm.DefaultBulletList.WithItems(items).Render()
	}
	showTokenInfo(snap.Token)
}

func roleSummary(u *auth.User) string {
	if u == nil || len(u.Roles) == 0 {
		return "none"
	}
	return strings.Join(u.Roles, ", ")
}

func showTokenInfo(token string) {
	info, ok := auth.InspectToken(token)
	if !ok || info.ExpiresAt.IsZero() {
		return
	}
	left := time.Until(info.ExpiresAt).Round(time.Minute)
	if info.Expired(time.Now()) {
		pterm.Warning.Printf("Access token expired at %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
		return
	}
	pterm.Info.Printf("Access token expires in %s (%s)\n", left, info.ExpiresAt.Local().Format(time.RFC1123))
}
