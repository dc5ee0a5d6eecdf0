// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import "fmt"

// FlagReader reports whether a bearer token is persisted. It must not fail;
// an unreadable store reads as absent.
type FlagReader interface {
	HasToken() bool
}

// Resolution is the result of resolving a navigation target.
type Resolution struct {
	Route    Route
	Vars     map[string]string
	Target   string
	Decision Decision
	// RedirectURL is the rendered redirect target, empty when allowed.
	RedirectURL string
}

// Allowed reports whether navigation may proceed.
func (r Resolution) Allowed() bool { return !r.Decision.Redirect }

// Navigator resolves paths against a Table and guards them with the persisted flag.
type Navigator struct {
	table *Table
	flag  FlagReader
}

// NewNavigator returns a Navigator guarding table with the persisted token flag.
func NewNavigator(table *Table, flag FlagReader) *Navigator {
	return &Navigator{table: table, flag: flag}
}

// Table returns the navigator's route table.
func (n *Navigator) Table() *Table { return n.table }

// Navigate matches target and applies the matched route's requirement.
func (n *Navigator) Navigate(target string) (Resolution, error) {
	route, vars, ok := n.table.Match(target)
	if !ok {
		return Resolution{}, fmt.Errorf("no route matches %q", target)
	}
	res, err := n.Guard(route.Requirement, target)
	if err != nil {
		return Resolution{}, err
	}
	res.Route = route
	res.Vars = vars
	return res, nil
}

// Guard applies req to target without matching it against the table.
// Commands that are not application routes use this directly.
func (n *Navigator) Guard(req Requirement, target string) (Resolution, error) {
	d := Decide(req, n.flag.HasToken(), target)
	res := Resolution{Target: target, Decision: d}
	if !d.Redirect {
		return res, nil
	}
	u, err := n.table.URL(d.RouteName, d.Query)
	if err != nil {
		return Resolution{}, err
	}
	res.RedirectURL = u
	return res, nil
}
