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

// Package safeuri builds syntactically valid URI references from arbitrary
// strings.
//
// Problem bodies must always carry valid "type" and "instance" values, even
// when the value was read from an error member that holds free text, embedded
// newlines or control characters. Build is total: malformed input is first
// rewritten into a "urn:" form and, failing that, into a fixed placeholder
// URI that still carries the original text as a query parameter:
//
//	safeuri.Build("/account/12345/msgs/abc") // "/account/12345/msgs/abc"
//	safeuri.Build("not found")               // "urn:not+found"
//	safeuri.Build("line\nbreak")             // "urn:invalid-uri-syntax?message=...&source=line%0Abreak"
package safeuri
