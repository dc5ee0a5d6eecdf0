// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router decides whether navigation to an application route may proceed.
// Decide is a pure function of the route's requirement and the persisted-token
// flag, so it can run before any session store exists.
package router

// Requirement is a route's access requirement.
type Requirement int

const (
	None Requirement = iota
	RequiresAuth
	RequiresGuest
)

func (r Requirement) String() string {
	switch r {
	case RequiresAuth:
		return "auth"
	case RequiresGuest:
		return "guest"
	default:
		return "none"
	}
}

// Names of the routes the guard redirects to.
const (
	RouteLogin     = "login"
	RouteDashboard = "dashboard"
)

// RedirectParam carries the originally requested path to the login route.
const RedirectParam = "redirect"

// Decision is the outcome of Decide: allow, or redirect to a named route.
type Decision struct {
	Redirect  bool
	RouteName string
	Query     map[string]string
}

// Allow returns the decision that lets navigation proceed.
func Allow() Decision { return Decision{} }

// RedirectTo returns a redirect decision to the named route.
func RedirectTo(name string, query map[string]string) Decision {
	if query == nil {
		query = map[string]string{}
	}
	return Decision{Redirect: true, RouteName: name, Query: query}
}

// Decide applies the access rules in order:
//
//	auth required, no token   -> login?redirect=target
//	auth required, token      -> allow
//	guest only, token         -> dashboard
//	guest only, no token      -> allow
//	no requirement            -> allow
//
// It is total and has no side effects. authenticated is the persisted-token flag,
// not a validated session.
func Decide(req Requirement, authenticated bool, target string) Decision {
	switch {
	case req == RequiresAuth && !authenticated:
		return RedirectTo(RouteLogin, map[string]string{RedirectParam: target})
	case req == RequiresGuest && authenticated:
		return RedirectTo(RouteDashboard, nil)
	default:
		return Allow()
	}
}
