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
	"net/http"
	"strings"

	"dirpx.dev/dproblem/apis"
)

// ValidationType is the problem type of ValidationError.
const ValidationType = "urn:problem-type:validation-failed"

// ValidationError reports the constraint violations found by a validation
// layer before a request reached the domain. The violations are rendered as
// the "violations" extension and their digest as the detail.
type ValidationError struct {
	Violations []apis.Violation `problem:"extension"`
}

// NewValidationError returns a ValidationError for the given violations.
func NewValidationError(violations ...apis.Violation) *ValidationError {
	return &ValidationError{Violations: violations}
}

// Error returns the violations digest, e.g.
// "validation failed: name: must not be empty; age: must be positive".
func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Digest()
}

// Digest joins the violation messages, each prefixed by its field when set.
func (e *ValidationError) Digest() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		if v.Field != "" {
			parts = append(parts, v.Field+": "+v.Message)
			continue
		}
		parts = append(parts, v.Message)
	}
	return strings.Join(parts, "; ")
}

func (*ValidationError) ProblemDeclaration() apis.Declaration {
	return apis.Declaration{
		Type:   ValidationType,
		Title:  "Validation Failed",
		Status: http.StatusBadRequest,
		Logging: apis.Logging{
			Level: apis.LevelDebug,
		},
	}
}
