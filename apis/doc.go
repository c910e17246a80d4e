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

// Package apis defines the public Go-level contracts of the problem-details
// engine.
//
// The goal of this package is to provide *small, composable* types and
// interfaces that other dproblem packages (and user error types) can depend
// on without importing the engine itself:
//
//   - Body: the ordered, transport-neutral problem details document;
//   - Declaration / Declarer: type-level declarations (type, title, status,
//     logging policy, accessor members);
//   - TypedError / TitledError / StatusError: per-instance overrides;
//   - FailureDeclarer: client interfaces that announce the failure types they
//     may return, for lazy registration;
//   - Logging / Level: the logging policy vocabulary.
//
// This package must remain lightweight: it contains interfaces, very small
// value types, and their wire encodings.
package apis
