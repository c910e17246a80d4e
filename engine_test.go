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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc/codes"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/builder"
	"dirpx.dev/dproblem/reverse"
)

type InsufficientFundsError struct {
	Account string `problem:"instance"`
	Missing int    `problem:"extension"`
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("account %s is missing %d", e.Account, e.Missing)
}

func newEngine(t *testing.T, opts ...EngineOption) (*Engine, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	e, err := NewEngine(append([]EngineOption{WithLogger(zap.New(core))}, opts...)...)
	require.NoError(t, err)
	return e, logs
}

func TestEngine_HandleError(t *testing.T) {
	e, logs := newEngine(t)

	body, err := e.Handle(E(404, "no account 42", WithDetailOption("account", 42)))
	require.NoError(t, err)
	assert.Equal(t, apis.Body{
		Type:       "urn:problem-type:not-found",
		Title:      "Not Found",
		Status:     404,
		Detail:     "no account 42",
		Extensions: map[string]any{"account": 42},
	}, body)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "dirpx.dev/dproblem.Error", entry.LoggerName)
	assert.Contains(t, entry.Message, "ProblemDetail:")
}

func TestEngine_HandleExplicitType(t *testing.T) {
	e, logs := newEngine(t)
	body, err := e.Handle(E(503, "down",
		WithTypeOption("https://example.com/probs/maintenance"),
		WithTitleOption("Maintenance"),
		WithInstanceOption("/status"),
	))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/probs/maintenance", body.Type)
	assert.Equal(t, "Maintenance", body.Title)
	assert.Equal(t, "/status", body.Instance)
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestEngine_NilError(t *testing.T) {
	e, _ := newEngine(t)
	_, err := e.Handle(nil)
	assert.ErrorIs(t, err, builder.ErrNilError)
}

func TestEngine_RoundTrip(t *testing.T) {
	e, _ := newEngine(t, WithTypes(reflect.TypeFor[*InsufficientFundsError]()))

	body, err := e.Handle(&InsufficientFundsError{Account: "/accounts/7", Missing: 20})
	require.NoError(t, err)
	assert.Equal(t, "urn:problem-type:insufficient-funds", body.Type)
	assert.Equal(t, 400, body.Status)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var received apis.Body
	require.NoError(t, json.Unmarshal(raw, &received))

	got, err := e.Reconstruct(received)
	require.NoError(t, err)
	var ife *InsufficientFundsError
	require.ErrorAs(t, got, &ife)
	assert.Equal(t, &InsufficientFundsError{Account: "/accounts/7", Missing: 20}, ife)
}

func TestEngine_ReconstructUnregistered(t *testing.T) {
	e, _ := newEngine(t)
	got, err := e.Reconstruct(apis.Body{Type: "urn:problem-type:nope", Title: "Nope", Status: 418})
	require.NoError(t, err)
	var ute *reverse.UnregisteredTypeError
	assert.ErrorAs(t, got, &ute)
}

func TestEngine_ValidationRoundTrip(t *testing.T) {
	e, _ := newEngine(t)
	verr := NewValidationError(
		apis.Violation{Field: "name", Message: "must not be empty", Reason: "required"},
		apis.Violation{Message: "too many fields"},
	)

	body, err := e.Handle(fmt.Errorf("create user: %w", verr))
	require.NoError(t, err)
	assert.Equal(t, 400, body.Status, "status of the direct cause")

	body, err = e.Handle(verr)
	require.NoError(t, err)
	assert.Equal(t, ValidationType, body.Type)
	assert.Equal(t, "Validation Failed", body.Title)
	assert.Equal(t, "validation failed: name: must not be empty; too many fields", body.Detail)

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var received apis.Body
	require.NoError(t, json.Unmarshal(raw, &received))
	got, err := e.Reconstruct(received)
	require.NoError(t, err)
	var back *ValidationError
	require.True(t, errors.As(got, &back))
	assert.Equal(t, verr.Violations, back.Violations)
}

type creditClient struct{}

func (creditClient) ProblemFailures() []error {
	return []error{&InsufficientFundsError{}}
}

func TestEngine_Declare(t *testing.T) {
	e, _ := newEngine(t)
	n, err := e.Declare(creditClient{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	typ, ok := e.Registry().Resolve("urn:problem-type:insufficient-funds")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*InsufficientFundsError](), typ)
}

func TestEngine_NamespaceConventions(t *testing.T) {
	e, logs := newEngine(t, WithNamespace("dirpx.dev/dproblem", apis.Declaration{
		Status:  402,
		Logging: apis.Logging{Category: "billing", Level: apis.LevelWarn},
	}))
	body, err := e.Handle(&InsufficientFundsError{Missing: 1})
	require.NoError(t, err)
	assert.Equal(t, 402, body.Status)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "billing", logs.All()[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)

	_, err = NewEngine(WithNamespace("bad//path", apis.Declaration{}))
	assert.Error(t, err)
}

func TestEngine_StatusMapperDefault(t *testing.T) {
	e, _ := newEngine(t)
	assert.Equal(t, codes.NotFound, e.StatusMapper().GRPCCode(404))
}
