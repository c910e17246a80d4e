/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dproblem

import (
	"fmt"
	"net/http"
)

// Error is a general-purpose problem error whose type, title and status are
// chosen per instance rather than per Go type.
//
// It carries:
//   - Type: problem type identifier (any URI; may be empty);
//   - Title: short summary of the problem type (may be empty);
//   - Status: HTTP status (0 defers to the wrapped cause and conventions);
//   - Message: occurrence-specific explanation, rendered as "detail";
//   - Instance: reference identifying this occurrence;
//   - Details: extension members rendered at the top level of the body;
//   - Cause: wrapped underlying error for errors.Is / errors.As.
//
// All mutation helpers (WithX) return a shallow copy, so Error instances
// can be safely shared and modified in a functional style.
type Error struct {
	Type   string
	Title  string
	Status int

	// Message is the human-readable explanation of this occurrence.
	Message string `problem:"detail"`

	// Instance identifies the occurrence, e.g. "/accounts/12345/msgs/abc".
	Instance string `problem:"instance"`

	// Details is an optional, shallow map of extension members. The map is
	// treated as immutable: WithDetail/WithDetails always copy it.
	Details map[string]any `problem:"extensions"`

	// Cause holds the wrapped underlying error (if any).
	Cause error
}

// E is a convenience constructor for Error.
//
// Usage:
//
//	return dproblem.E(http.StatusForbidden, "Your current balance is 30, but that costs 50.",
//	    dproblem.WithTypeOption("https://example.com/probs/out-of-credit"),
//	    dproblem.WithDetailOption("balance", 30),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func E(status int, msg string, opts ...Option) *Error {
	e := &Error{Status: status, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<title>: <message>
//
// where the title falls back to the HTTP reason phrase of the status.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	title := e.Title
	if title == "" {
		title = http.StatusText(e.Status)
	}
	switch {
	case title == "":
		return e.Message
	case e.Message == "":
		return title
	}
	return fmt.Sprintf("%s: %s", title, e.Message)
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) ProblemType() string  { return e.Type }
func (e *Error) ProblemTitle() string { return e.Title }
func (e *Error) ProblemStatus() int   { return e.Status }

// WithType returns a shallow copy of e with the given problem type.
func (e *Error) WithType(typ string) *Error {
	cp := *e
	cp.Type = typ
	return &cp
}

// WithTitle returns a shallow copy of e with the given title.
func (e *Error) WithTitle(title string) *Error {
	cp := *e
	cp.Title = title
	return &cp
}

// WithStatus returns a shallow copy of e with the given HTTP status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// WithMessage returns a shallow copy of e with a replaced message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithInstance returns a shallow copy of e with the given instance reference.
func (e *Error) WithInstance(instance string) *Error {
	cp := *e
	cp.Instance = instance
	return &cp
}

// WithDetail returns a shallow copy of e with one extra key/value in Details.
//
// The method always copies the map to preserve immutability.
func (e *Error) WithDetail(k string, v any) *Error {
	cp := *e
	if len(cp.Details) == 0 {
		cp.Details = map[string]any{k: v}
		return &cp
	}
	m := make(map[string]any, len(cp.Details)+1)
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	m[k] = v
	cp.Details = m
	return &cp
}

// WithDetails returns a shallow copy of e with all provided kv merged into
// Details, kv taking precedence on key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(cp.Details)+len(kv))
	for k0, v0 := range cp.Details {
		m[k0] = v0
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a shallow copy of e with the given underlying cause attached.
// If err is nil, the original error is returned unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
