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

package apis

// Violation is a single constraint violation reported by a validation layer.
// It is a *view type*: small, transport-friendly, and suitable for JSON,
// YAML, or a protobuf Struct.
//
// Typical usages:
//   - report which field failed validation;
//   - report the rejected value;
//   - report a short machine-friendly reason.
type Violation struct {
	// Field carries the logical path to the failing field, e.g.
	// "metadata.name" or "spec.replicas". For non-field violations this may
	// be empty.
	Field string `json:"field,omitempty" yaml:"field,omitempty"`

	// Message is the human-readable violation message.
	Message string `json:"message" yaml:"message"`

	// Reason is a short, machine-friendly classifier, e.g. "required",
	// "not_unique", "invalid_format".
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}
