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

// TypedError is implemented by errors that decide their problem type
// identifier per instance. A non-empty result overrides any declared or
// derived identifier.
type TypedError interface {
	error

	// ProblemType returns the problem type identifier, e.g.
	// "urn:problem-type:out-of-credit". Empty means "not specified".
	ProblemType() string
}

// TitledError is implemented by errors that decide their problem title per
// instance. A non-empty result overrides any declared or derived title.
type TitledError interface {
	error

	// ProblemTitle returns the short human-readable summary of the problem
	// type. Empty means "not specified".
	ProblemTitle() string
}

// StatusError is implemented by errors that carry their own HTTP status.
//
// A value of 0 means "not specified" and lets the builder fall back to the
// next rule in the status precedence.
type StatusError interface {
	error

	// ProblemStatus returns the HTTP status code for this error instance.
	ProblemStatus() int
}

// Declarer is implemented by error types that declare their problem metadata
// in code rather than through an explicit registration call.
//
// ProblemDeclaration is evaluated once per type, on the zero value of the
// type, so implementations MUST NOT depend on instance state and MUST be safe
// to call on a nil pointer receiver.
type Declarer interface {
	ProblemDeclaration() Declaration
}

// FailureDeclarer is implemented by remote-call clients that know which
// error types their operations may return. The registry uses it to register
// those types the first time the client is observed.
//
// Each returned error is used only for its dynamic type; typically a typed
// nil pointer such as (*OutOfCreditError)(nil).
type FailureDeclarer interface {
	ProblemFailures() []error
}
