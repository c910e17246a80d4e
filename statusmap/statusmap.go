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

package statusmap

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dproblem/apis"
)

// ErrInvalidStatus is returned by New when an option names an HTTP status
// outside 100..599 or a class other than 4 or 5.
var ErrInvalidStatus = errors.New("dproblem: invalid status mapping")

// New constructs an immutable apis.StatusMapper snapshot.
//
// Build process:
//
//  1. Seed the builder with library defaults (both directions).
//  2. Apply user-provided options.
//  3. Validate every HTTP status and class named by the options.
//  4. Freeze all maps into fresh copies.
func New(opts ...Option) (apis.StatusMapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	var errs []error
	for s := range b.grpcDefaults {
		errs = appendInvalid(errs, s)
	}
	for s := range b.grpcOverride {
		errs = appendInvalid(errs, s)
	}
	for class := range b.grpcClass {
		if class != 4 && class != 5 {
			errs = append(errs, fmt.Errorf("%w: class %d", ErrInvalidStatus, class))
		}
	}
	for _, s := range b.httpDefaults {
		errs = appendInvalid(errs, s)
	}
	for _, s := range b.httpOverride {
		errs = appendInvalid(errs, s)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("statusmap: %w", err)
	}

	return &mapper{
		grpcDefault:  freeze(b.grpcDefaults),
		grpcOverride: freeze(b.grpcOverride),
		grpcClass:    freeze(b.grpcClass),
		httpDefault:  freeze(b.httpDefaults),
		httpOverride: freeze(b.httpOverride),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

func appendInvalid(errs []error, status int) []error {
	if status < 100 || status > 599 {
		return append(errs, fmt.Errorf("%w: HTTP status %d", ErrInvalidStatus, status))
	}
	return errs
}

// mapper is an immutable apis.StatusMapper. Lookups are map reads and safe
// for concurrent use once constructed.
type mapper struct {
	grpcDefault  map[int]codes.Code
	grpcOverride map[int]codes.Code
	grpcClass    map[int]codes.Code

	httpDefault  map[codes.Code]int
	httpOverride map[codes.Code]int

	fallbackHTTP int
	fallbackGRPC codes.Code
}

// GRPCCode resolves a gRPC code for an HTTP status.
//
// Resolution order (highest to lowest):
//  1. exact override;
//  2. default for the status;
//  3. class rule (4xx, 5xx);
//  4. fallback (codes.Unknown).
func (m *mapper) GRPCCode(status int) codes.Code {
	_, c := m.explainGRPC(status)
	return c
}

// HTTPStatus resolves an HTTP status for a gRPC code: override, then
// default, then 500.
func (m *mapper) HTTPStatus(c codes.Code) int {
	if v, ok := m.httpOverride[c]; ok {
		return v
	}
	if v, ok := m.httpDefault[c]; ok {
		return v
	}
	return m.fallbackHTTP
}

// Status resolves both transports for one HTTP status. The HTTP half is the
// status itself when it is a valid HTTP status.
func (m *mapper) Status(status int) apis.Status {
	c := m.GRPCCode(status)
	if status < 100 || status > 599 {
		status = m.HTTPStatus(c)
	}
	return apis.Status{HTTP: status, GRPC: c}
}

// Explain produces a textual trace of how the gRPC code for status was
// chosen, e.g.
//
//	status=503 text="Service Unavailable"
//	grpc: source=default -> UNAVAILABLE(14)
//
// source is one of override, default, class, fallback.
func (m *mapper) Explain(status int) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "status=%d text=%q\n", status, http.StatusText(status))
	src, c := m.explainGRPC(status)
	_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)", src, strings.ToUpper(c.String()), int(c))
	return b.String()
}

func (m *mapper) explainGRPC(status int) (string, codes.Code) {
	if v, ok := m.grpcOverride[status]; ok {
		return "override", v
	}
	if v, ok := m.grpcDefault[status]; ok {
		return "default", v
	}
	if v, ok := m.grpcClass[status/100]; ok && status >= 100 && status <= 599 {
		return "class", v
	}
	return "fallback", m.fallbackGRPC
}
