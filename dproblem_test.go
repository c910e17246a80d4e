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
	"errors"
	"strings"
	"testing"
)

func TestError_Basics(t *testing.T) {
	e := E(403, "Your current balance is 30, but that costs 50.",
		WithTypeOption("https://example.com/probs/out-of-credit"),
		WithTitleOption("You do not have enough credit."),
		WithDetailOption("balance", 30),
	)

	if e.Status != 403 {
		t.Fatal("status mismatch")
	}
	if e.Type == "" {
		t.Fatal("type must be set")
	}
	if e.Details["balance"] != 30 {
		t.Fatal("detail missing")
	}

	s := e.Error()
	wantSubs := []string{"You do not have enough credit.", "balance is 30"}
	for _, sub := range wantSubs {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
}

func TestError_ErrorFallsBackToStatusText(t *testing.T) {
	if got := E(404, "no such account").Error(); got != "Not Found: no such account" {
		t.Fatalf("Error() = %q", got)
	}
	if got := E(0, "bare").Error(); got != "bare" {
		t.Fatalf("Error() = %q", got)
	}
	if got := E(409, "").Error(); got != "Conflict" {
		t.Fatalf("Error() = %q", got)
	}
	var nilErr *Error
	if got := nilErr.Error(); got != "<nil>" {
		t.Fatalf("nil Error() = %q", got)
	}
}

func TestError_Immutability_CopyOnWrite(t *testing.T) {
	e1 := E(400, "bad").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)

	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}
	if _, ok := e1.Details["k2"]; ok {
		t.Fatal("original mutated")
	}

	e3 := e2.WithStatus(409).WithTitle("t").WithType("urn:x").WithInstance("/i").WithMessage("m")
	if e2.Status != 400 || e2.Title != "" || e2.Type != "" || e2.Instance != "" || e2.Message != "bad" {
		t.Fatal("original mutated")
	}
	if e3.ProblemStatus() != 409 || e3.ProblemTitle() != "t" || e3.ProblemType() != "urn:x" {
		t.Fatal("problem accessors mismatch")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := E(500, "x", WithCauseOption(root))
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("nil cause must return the receiver")
	}
}

func TestError_WithDetails_Merge(t *testing.T) {
	e := E(400, "x", WithDetailsOption(map[string]any{"a": 1}))
	e2 := e.WithDetails(map[string]any{"b": 2, "a": 3})
	if e.Details["a"] != 1 {
		t.Fatal("original mutated")
	}
	if e2.Details["a"] != 3 || e2.Details["b"] != 2 {
		t.Fatal("merge failed")
	}
	if e.WithDetails(nil) != e {
		t.Fatal("empty merge must return the receiver")
	}
}
