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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"dirpx.dev/dproblem"
	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/builder"
)

// ErrNotProblem is returned by Decode for a response that does not carry a
// problem details body.
var ErrNotProblem = errors.New("dproblem: response is not a problem")

// maxBody bounds how much of a response body Decode reads.
const maxBody = 1 << 20

// Writer turns errors into problem details responses using the engine.
type Writer struct {
	Engine *dproblem.Engine
}

// Write renders err as a problem details response. The media type is
// negotiated against the request's Accept header: YAML subtypes get
// application/problem+yaml, everything else application/problem+json.
// The body is logged through the engine. A nil err writes nothing.
//
// No automatic redaction or filtering is performed here: whatever the error
// exposes through its members is rendered as-is.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error, opts ...builder.Option) {
	if err == nil || w.Engine == nil {
		return
	}
	body, berr := w.Engine.Handle(err, opts...)
	if berr != nil {
		return
	}

	var accept string
	if r != nil {
		accept = r.Header.Get("Accept")
	}
	mt, data, eerr := Encode(body, accept)
	if eerr != nil {
		w.Engine.Logger().Error("problem response encoding failed", zap.Error(eerr))
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", mt)
	rw.Header().Set("X-Content-Type-Options", "nosniff")
	rw.WriteHeader(StatusOf(body))
	_, _ = rw.Write(data)
}

// HandlerFunc is an http handler that reports failures as an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap adapts h into an http.Handler that renders returned errors through
// Write.
func (w Writer) Wrap(h HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if err := h(rw, r); err != nil {
			w.Write(rw, r, err)
		}
	})
}

// Encode serializes body for the given Accept header and returns the media
// type used.
func Encode(body apis.Body, accept string) (string, []byte, error) {
	mt := builder.MediaType(Accepted(accept)...)
	if strings.HasSuffix(mt, "yaml") {
		data, err := yaml.Marshal(body)
		return "application/problem+yaml", data, err
	}
	data, err := json.Marshal(body)
	return builder.DefaultMediaType, data, err
}

// StatusOf returns the HTTP status to send for body: its status, or 500 when
// that is not a valid HTTP status.
func StatusOf(b apis.Body) int {
	if b.Status < 100 || b.Status > 599 {
		return http.StatusInternalServerError
	}
	return b.Status
}

// Accepted parses an Accept header into media types ordered by preference
// (q value, then position). Entries with q=0 are dropped.
func Accepted(header string) []string {
	type entry struct {
		mt string
		q  float64
	}
	var entries []entry
	for _, part := range strings.Split(header, ",") {
		mt, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if s, ok := params["q"]; ok {
			if q, err = strconv.ParseFloat(s, 64); err != nil {
				continue
			}
		}
		if q <= 0 {
			continue
		}
		entries = append(entries, entry{mt, q})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].q > entries[j].q })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.mt
	}
	return out
}

// Decode turns a problem details response into a typed error through the
// engine. The first result is the reconstructed error; the second reports
// why the response could not be decoded (ErrNotProblem for other media
// types) or which members could not be coerced. A body without a status
// takes the response status.
//
// Decode consumes and closes resp.Body.
func Decode(e *dproblem.Engine, resp *http.Response) (error, error) {
	if e == nil {
		return nil, dproblem.ErrNilEngine
	}
	if resp == nil || resp.Body == nil {
		return nil, ErrNotProblem
	}
	defer resp.Body.Close()

	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotProblem, err)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("dproblem: read problem response: %w", err)
	}

	var body apis.Body
	switch {
	case strings.HasSuffix(mt, "+json") || mt == "application/json":
		err = body.UnmarshalJSON(bytes.TrimSpace(raw))
	case strings.HasSuffix(mt, "+yaml") || strings.HasSuffix(mt, "/yaml") || strings.HasSuffix(mt, "/x-yaml"):
		err = yaml.Unmarshal(raw, &body)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotProblem, mt)
	}
	if err != nil {
		return nil, fmt.Errorf("dproblem: decode problem response: %w", err)
	}
	if body.Status == 0 {
		body.Status = resp.StatusCode
	}
	return e.Reconstruct(body)
}
