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

// Package namespace defines the package-path prefixes used for
// namespace-level problem declarations.
//
// Where a type-level declaration answers "how is this error type rendered?",
// a namespace-level declaration answers "what is the default for every error
// type declared under this package tree?", e.g. "log every error from
// example.com/bank under the category 'bank' at WARN".
//
// The zero value (Root) is allowed and stands for the process-wide default.
package namespace
