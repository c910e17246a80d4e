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
	"testing"

	"dirpx.dev/dproblem/apis"
)

func TestValidationError_Digest(t *testing.T) {
	tests := []struct {
		name string
		in   []apis.Violation
		want string
	}{
		{"none", nil, "validation failed"},
		{"field", []apis.Violation{{Field: "name", Message: "required"}}, "validation failed: name: required"},
		{"mixed", []apis.Violation{{Message: "bad"}, {Field: "age", Message: "negative"}}, "validation failed: bad; age: negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewValidationError(tt.in...).Error(); got != tt.want {
				t.Fatalf("Error() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Declaration(t *testing.T) {
	d := (*ValidationError)(nil).ProblemDeclaration()
	if d.Type != ValidationType || d.Status != 400 {
		t.Fatalf("unexpected declaration %+v", d)
	}
}
