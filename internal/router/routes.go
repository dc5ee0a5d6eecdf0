// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
)

// Route is a named application route.
type Route struct {
	Name        string
	Path        string
	Title       string
	Requirement Requirement
	// CatchAll routes match any path not claimed by an earlier route.
	CatchAll bool
}

var varPattern = regexp.MustCompile(`\{(\w+):[^}]+\}`)

// Template returns Path with variable patterns removed, e.g. /projects/{id}.
func (r Route) Template() string {
	return varPattern.ReplaceAllString(r.Path, "{$1}")
}

// Routes is the application's route table. Order matters: the first match wins.
var Routes = []Route{
	{Name: "home", Path: "/", Title: "Home"},
	{Name: RouteLogin, Path: "/login", Title: "Login", Requirement: RequiresGuest},
	{Name: "register", Path: "/register", Title: "Register", Requirement: RequiresGuest},
	{Name: RouteDashboard, Path: "/dashboard", Title: "Dashboard", Requirement: RequiresAuth},
	{Name: "projects", Path: "/projects", Title: "Projects", Requirement: RequiresAuth},
	{Name: "project-create", Path: "/projects/create", Title: "New project", Requirement: RequiresAuth},
	{Name: "project-detail", Path: "/projects/{id}", Title: "Project", Requirement: RequiresAuth},
	{Name: "project-edit", Path: "/projects/{id}/edit", Title: "Edit project", Requirement: RequiresAuth},
	{Name: "tasks", Path: "/tasks", Title: "Tasks", Requirement: RequiresAuth},
	{Name: "task-create", Path: "/tasks/create", Title: "New task", Requirement: RequiresAuth},
	{Name: "task-detail", Path: "/tasks/{id}", Title: "Task", Requirement: RequiresAuth},
	{Name: "task-edit", Path: "/tasks/{id}/edit", Title: "Edit task", Requirement: RequiresAuth},
	{Name: "users", Path: "/users", Title: "Users", Requirement: RequiresAuth},
	{Name: "user-edit", Path: "/users/{id}/edit", Title: "Edit user", Requirement: RequiresAuth},
	{Name: "profile", Path: "/profile", Title: "Profile", Requirement: RequiresAuth},
	{Name: "settings", Path: "/settings", Title: "Settings", Requirement: RequiresAuth},
	{Name: "about", Path: "/about", Title: "About"},
	{Name: "not-found", Path: "/", Title: "Not found", CatchAll: true},
}

// Table matches paths against named routes and builds URLs from route names.
type Table struct {
	mux    *mux.Router
	routes []Route
	byName map[string]Route
}

// NewTable registers routes in order.
func NewTable(routes []Route) *Table {
	t := &Table{
		mux:    mux.NewRouter(),
		routes: append([]Route(nil), routes...),
		byName: make(map[string]Route, len(routes)),
	}
	for _, r := range t.routes {
		if r.CatchAll {
			t.mux.PathPrefix(r.Path).Name(r.Name)
		} else {
			t.mux.Path(r.Path).Name(r.Name)
		}
		t.byName[r.Name] = r
	}
	return t
}

// DefaultTable returns the table built from Routes.
func DefaultTable() *Table { return NewTable(Routes) }

// Routes returns the registered routes in match order.
func (t *Table) Routes() []Route { return append([]Route(nil), t.routes...) }

// Lookup returns the route registered under name.
func (t *Table) Lookup(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match finds the route for path, ignoring any query string and a trailing slash.
func (t *Table) Match(path string) (Route, map[string]string, bool) {
	u, err := url.Parse(path)
	if err != nil {
		return Route{}, nil, false
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}

	req, err := http.NewRequest(http.MethodGet, p, nil)
	if err != nil {
		return Route{}, nil, false
	}
	var m mux.RouteMatch
	if !t.mux.Match(req, &m) || m.Route == nil {
		return Route{}, nil, false
	}
	r, ok := t.byName[m.Route.GetName()]
	return r, m.Vars, ok
}

// URL builds the path of the named route with the given variables and query.
func (t *Table) URL(name string, query map[string]string, pairs ...string) (string, error) {
	route := t.mux.Get(name)
	if route == nil {
		return "", fmt.Errorf("unknown route %q", name)
	}
	u, err := route.URL(pairs...)
	if err != nil {
		return "", fmt.Errorf("build %s: %w", name, err)
	}
	if len(query) > 0 {
		q := url.Values{}
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
