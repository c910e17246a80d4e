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

package reverse

import (
	"fmt"

	"dirpx.dev/dproblem/apis"
)

// UnregisteredTypeError is returned by Reconstruct when the body's type
// identifier resolves to no registered type. It carries the received body
// and renders back to it.
type UnregisteredTypeError struct {
	Body apis.Body
}

func (e *UnregisteredTypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Body.Detail != "" {
		return fmt.Sprintf("unregistered problem type %q: %s", e.Body.Type, e.Body.Detail)
	}
	return fmt.Sprintf("unregistered problem type %q: %s", e.Body.Type, e.Body.Title)
}

func (e *UnregisteredTypeError) ProblemType() string    { return e.Body.Type }
func (e *UnregisteredTypeError) ProblemTitle() string   { return e.Body.Title }
func (e *UnregisteredTypeError) ProblemStatus() int     { return e.Body.Status }
func (e *UnregisteredTypeError) Detail() string         { return e.Body.Detail }
func (e *UnregisteredTypeError) Instance() string       { return e.Body.Instance }
func (e *UnregisteredTypeError) Extras() map[string]any { return e.Body.Extensions }

func (*UnregisteredTypeError) ProblemDeclaration() apis.Declaration {
	return apis.Declaration{
		Accessors: map[string]string{
			"Detail":   "detail",
			"Instance": "instance",
			"Extras":   "extensions",
		},
	}
}
