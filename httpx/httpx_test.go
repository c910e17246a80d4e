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

package httpx

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/reverse"
)

type OutOfCreditError struct {
	Balance int    `problem:"extension"`
	Account string `problem:"instance"`
}

func (e *OutOfCreditError) Error() string { return "out of credit" }

func (*OutOfCreditError) ProblemDeclaration() apis.Declaration {
	return apis.Declaration{Status: http.StatusForbidden}
}

func newEngine(t *testing.T) *dproblem.Engine {
	t.Helper()
	e, err := dproblem.NewEngine(dproblem.WithTypes(reflect.TypeFor[*OutOfCreditError]()))
	require.NoError(t, err)
	return e
}

func TestAccepted(t *testing.T) {
	got := Accepted("text/html;q=0.5, application/yaml, application/json;q=0.9, image/png;q=0")
	assert.Equal(t, []string{"application/yaml", "application/json", "text/html"}, got)
	assert.Empty(t, Accepted(""))
}

func TestWriter_JSON(t *testing.T) {
	w := Writer{Engine: newEngine(t)}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	w.Write(rec, req, &OutOfCreditError{Balance: 30, Account: "/account/1"})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"type": "urn:problem-type:out-of-credit",
		"title": "Out Of Credit",
		"status": 403,
		"detail": "out of credit",
		"instance": "/account/1",
		"balance": 30
	}`, rec.Body.String())
	assert.True(t, strings.HasPrefix(rec.Body.String(), `{"type":`), "type comes first")
}

func TestWriter_YAML(t *testing.T) {
	w := Writer{Engine: newEngine(t)}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/yaml")
	rec := httptest.NewRecorder()

	w.Write(rec, req, dproblem.E(http.StatusConflict, "already there"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+yaml", rec.Header().Get("Content-Type"))
	var body apis.Body
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Conflict", body.Title)
	assert.Equal(t, "already there", body.Detail)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "type: "))
}

func TestWriter_NilError(t *testing.T) {
	rec := httptest.NewRecorder()
	Writer{Engine: newEngine(t)}.Write(rec, nil, nil)
	assert.Zero(t, rec.Body.Len())
}

func TestWrap(t *testing.T) {
	w := Writer{Engine: newEngine(t)}
	h := w.Wrap(func(http.ResponseWriter, *http.Request) error {
		return errors.New("boom")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "errors.New from the standard library")
	assert.Contains(t, rec.Body.String(), `"detail":"boom"`)
}

func TestDecode_RoundTrip(t *testing.T) {
	e := newEngine(t)
	srv := httptest.NewServer(Writer{Engine: e}.Wrap(func(http.ResponseWriter, *http.Request) error {
		return &OutOfCreditError{Balance: 30, Account: "/account/1"}
	}))
	defer srv.Close()

	for _, accept := range []string{"application/json", "application/yaml"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.Header.Set("Accept", accept)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)

		got, err := Decode(e, resp)
		require.NoError(t, err, accept)
		var oce *OutOfCreditError
		require.ErrorAs(t, got, &oce, accept)
		assert.Equal(t, &OutOfCreditError{Balance: 30, Account: "/account/1"}, oce)
	}
}

func TestDecode_StatusFromResponse(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusTeapot,
		Header:     http.Header{"Content-Type": []string{"application/problem+json; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(`{"type":"urn:problem-type:unknown","title":"Unknown"}`)),
	}
	got, err := Decode(newEngine(t), resp)
	require.NoError(t, err)
	var ute *reverse.UnregisteredTypeError
	require.ErrorAs(t, got, &ute)
	assert.Equal(t, http.StatusTeapot, ute.Body.Status)
}

func TestDecode_NotProblem(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Header:     http.Header{"Content-Type": []string{"text/plain"}},
		Body:       io.NopCloser(strings.NewReader("bad gateway")),
	}
	_, err := Decode(newEngine(t), resp)
	assert.ErrorIs(t, err, ErrNotProblem)

	_, err = Decode(nil, resp)
	assert.ErrorIs(t, err, dproblem.ErrNilEngine)
}
