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

// Package member builds the member catalog of an error type: the struct
// fields tagged with `problem:"..."` plus the zero-argument accessor methods
// declared for the type, under one read/inject interface.
//
// Tag grammar:
//
//	problem:"detail"             contributes to the detail text
//	problem:"instance"           provides the instance identifier
//	problem:"extension"          one extension keyed by the member name
//	problem:"extension,<name>"   one extension with an explicit name
//	problem:"extensions"         map[string]V whose entries are inlined
//
// Reading a member never panics; see Member.Value.
package member
