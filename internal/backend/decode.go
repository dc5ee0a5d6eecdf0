// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	apperr "taskdeck/cli/internal/errors"
)

// decodeBody unmarshals a 2xx body into out. Be liberal in what we accept:
// a top-level {"data": ...} envelope is unwrapped when present.
func decodeBody(raw []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			trimmed = env.Data
		}
	}
	return json.Unmarshal(trimmed, out)
}

// errorBody covers the error payload shapes the backend produces:
// {"error": "..."}, {"message": "..."}, {"errors": {"field": ["..."]}} and {"errors": "..."}.
type errorBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// decodeError classifies a non-2xx response. Message stays empty when the body
// carries no text, so callers pick their own fallback. bearer reports whether the request
// presented a token, which separates expired sessions from rejected credentials.
func decodeError(status int, raw []byte, bearer bool) *apperr.E {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	fields, errorsText := parseErrors(body.Errors)
	msg := firstNonEmpty(body.Error, body.Message, errorsText)

	e := &apperr.E{Message: msg, Status: status}
	switch {
	case status == http.StatusUnprocessableEntity:
		e.Kind = apperr.ValidationFailure
		e.Fields = fields
		if errorsText != "" && len(fields) == 0 {
			e.Message = errorsText
		}
	case status == http.StatusUnauthorized && bearer:
		e.Kind = apperr.AuthorizationExpired
	case status == http.StatusUnauthorized:
		e.Kind = apperr.AuthenticationFailure
	case status == http.StatusForbidden:
		e.Kind = apperr.Forbidden
	case status == http.StatusNotFound:
		e.Kind = apperr.NotFound
	case status >= 500:
		e.Kind = apperr.ServerFailure
	default:
		e.Kind = apperr.RequestFailure
		if len(fields) > 0 {
			e.Fields = fields
		}
	}
	return e
}

// parseErrors accepts {"field": ["msg", ...]}, {"field": "msg"} or a bare string.
func parseErrors(raw json.RawMessage) (map[string][]string, string) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return nil, strings.TrimSpace(text)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, ""
	}
	fields := make(map[string][]string, len(obj))
	for name, v := range obj {
		var list []string
		if err := json.Unmarshal(v, &list); err == nil {
			fields[name] = list
			continue
		}
		var one string
		if err := json.Unmarshal(v, &one); err == nil {
			fields[name] = []string{one}
		}
	}
	if len(fields) == 0 {
		return nil, ""
	}
	return fields, ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
