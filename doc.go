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

// Package dproblem turns Go errors into problem details documents
// (RFC 9457) and problem details documents back into typed Go errors.
//
// # Declaring problems
//
// Any error type can be rendered. Its members are declared with struct tags:
//
//	type OutOfCreditError struct {
//	    Account *url.URL `problem:"instance"`
//	    Balance int64    `problem:"extension"`
//	    Cost    int64    `problem:"extension,price"`
//	    Reason  string   `problem:"detail"`
//	}
//
// The type identifier and title are derived from the type name
// ("urn:problem-type:out-of-credit", "Out Of Credit") unless declared through
// apis.Declarer or per instance through ProblemType, ProblemTitle and
// ProblemStatus methods. Error is a ready-made type whose identity is
// chosen per instance.
//
// # Engine
//
// Engine wires the pieces together:
//
//	e, err := dproblem.NewEngine(dproblem.WithLogger(logger))
//	body, err := e.Handle(err)          // error -> body, logged
//	problem, err := e.Reconstruct(body) // body -> typed error
//
// Transport adapters live in httpx (net/http), ginx (gin) and grpcx (gRPC).
// FromConfig converts a configuration loaded by package config into engine
// options.
package dproblem
