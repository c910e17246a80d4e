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

// Package typeid provides parsing, validation and derivation helpers for
// problem type identifiers.
//
// A problem type identifier is the "type" member of a problem body. It is a
// URI reference that names an error category and is used in both directions:
// outgoing bodies are tagged with it and incoming bodies are resolved back to
// a concrete Go type through it. Identifiers are:
//
//   - non-empty;
//   - syntactically valid URI references;
//   - for derived identifiers, of the form "urn:problem-type:<kebab-case>".
//
// This package defines the canonical representation and the conversions
// between Go-style names and the kebab-case form used on the wire.
package typeid
