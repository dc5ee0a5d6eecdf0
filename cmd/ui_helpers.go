// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"taskdeck/cli/internal/terminal"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// withSpinner runs fn while an inline spinner shows text. The spinner is only
// drawn on a terminal; otherwise fn just runs.
func withSpinner(text string, fn func()) {
	if !terminal.IsInteractive() {
		fn()
		return
	}

	cursor.Hide()
	defer cursor.Show()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		fn()
		return
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		for i := 0; ; i++ {
			area.Update(fmt.Sprintf("%s %s", spinnerFrames[i%len(spinnerFrames)], text))
			select {
			case <-t.C:
			case <-stop:
				return
			}
		}
	}()

	fn()
	close(stop)
	wg.Wait()
	_ = area.Stop()
}

// fetch runs call under a spinner and returns its result.
func fetch[T any](text string, call func() (T, error)) (T, error) {
	var (
		out T
		err error
	)
	withSpinner(text, func() { out, err = call() })
	return out, err
}

func renderTable(header []string, rows [][]string) error {
	if len(rows) == 0 {
		pterm.Info.Println("Nothing to show.")
		return nil
	}
	data := pterm.TableData{header}
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderFields(title string, fields [][2]string) {
	var b strings.Builder
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", pterm.Bold.Sprint(f[0]), f[1])
	}
	pterm.DefaultBox.WithTitle(title).WithPadding(1).Println(strings.TrimRight(b.String(), "\n"))
}

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return formatID(*id)
}

// promptInput asks for a single value unless it is already set.
func promptInput(title string, value *string, secret bool) error {
	if *value != "" {
		return nil
	}
	input := huh.NewInput().Title(title).Value(value)
	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

func confirm(message string) (bool, error) {
	if !terminal.IsInteractive() {
		return false, fmt.Errorf("%s: pass --yes to confirm when not running in a terminal", message)
	}
	var ok bool
	field := huh.NewConfirm().Title(message).Value(&ok)
	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return ok, nil
}
