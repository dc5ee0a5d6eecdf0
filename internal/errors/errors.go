// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure coming back from the Taskdeck backend is decoded into an *E at the
// transport boundary, so callers branch on a Kind instead of inspecting status codes
// or response bodies.
//
// The package supports wrapping underlying errors while maintaining error kind information,
// making it easier to handle different types of failures appropriately.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// ValidationFailure indicates a 422 response with field-keyed messages.
	ValidationFailure Kind = "validation_failure"
	// AuthenticationFailure indicates rejected credentials (401 without a bearer token).
	AuthenticationFailure Kind = "authentication_failure"
	// AuthorizationExpired indicates a 401 on a request that presented a bearer token.
	AuthorizationExpired Kind = "authorization_expired"
	// TransportFailure indicates a network, TLS or timeout failure.
	TransportFailure Kind = "transport_failure"
	// Forbidden indicates a 403 response.
	Forbidden Kind = "forbidden"
	// NotFound indicates a 404 response.
	NotFound Kind = "not_found"
	// ServerFailure indicates a 5xx response.
	ServerFailure Kind = "server_failure"
	// RequestFailure indicates any other 4xx response.
	RequestFailure Kind = "request_failure"
	// DecodeFailure indicates a successful status with a body we could not decode.
	DecodeFailure Kind = "decode_failure"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code, zero for transport failures.
	Status int
	// Fields holds per-field validation messages for ValidationFailure.
	Fields map[string][]string
	Err    error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.text(), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.text())
}

// text is the message, or the status text when the server sent none.
func (e *E) text() string {
	if strings.TrimSpace(e.Message) == "" && e.Status > 0 {
		return http.StatusText(e.Status)
	}
	return e.Message
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// KindOf returns the Kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the server-provided message of err, or fallback when err has none.
func MessageOf(err error, fallback string) string {
	var e *E
	if stderrors.As(err, &e) && strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fallback
}

// Describe returns the server-provided message of err, falling back to the
// HTTP status text and then to err.Error().
func Describe(err error) string {
	var e *E
	if !stderrors.As(err, &e) {
		return err.Error()
	}
	if t := strings.TrimSpace(e.text()); t != "" {
		return t
	}
	return err.Error()
}

// FieldsOf returns the validation fields attached to err, if any.
func FieldsOf(err error) map[string][]string {
	var e *E
	if stderrors.As(err, &e) {
		return e.Fields
	}
	return nil
}

// FlattenFields renders field messages as "field: msg, msg; field: msg" in field order.
func FlattenFields(fields map[string][]string) string {
	if len(fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}
	return strings.Join(parts, "; ")
}
