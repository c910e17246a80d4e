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

// Package builder derives the problem details document of one error: status,
// type identifier, title, detail, instance, extensions, media type, and the
// log line, each computed on first access and memoized.
//
// Extraction is failure-contained: misbehaving members and methods of the
// error never make the builder panic; see member.Member.Value.
package builder
