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

// Package naming derives problem type identifiers and titles from Go type
// names.
//
// When an error type declares no explicit identifier or title, its bare name
// is split into words on uppercase boundaries, a trailing "Exception" or
// "Error" word is dropped, and the words are either kebab-joined under the
// "urn:problem-type:" scheme (identifier) or space-joined (title):
//
//	OutOfCreditException -> urn:problem-type:out-of-credit / "Out Of Credit"
//	*fs.PathError        -> urn:problem-type:path          / "Path"
package naming
