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

// Package registry maps problem type identifiers to concrete error types and
// back.
//
// Registration is explicit (Register, RegisterAs, Add) or lazy
// (RegisterDeclared, for clients implementing apis.FailureDeclarer). An
// optional fallback resolver, enabled with WithFallback, turns an unknown
// identifier into conventional type names and probes them in a Loader:
//
//	urn:problem-type:path  ->  io/fs.PathError  ->  *fs.PathError
//
// Fallback misses are remembered in a bounded, expiring cache and concurrent
// probes of one identifier are collapsed into one.
package registry
