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

// Package descriptor computes and caches the problem metadata of error
// types.
//
// A Descriptor is built once per reflect.Type from three layers, most
// specific first:
//
//  1. the explicit declaration registered with Table.Declare;
//  2. the apis.Declarer implementation of the type, if any;
//  3. the namespace-level declaration matched for the type's package path
//     (logging policy and status only).
//
// Namespaces are Go package path prefixes matched on "/" segments with
// longest-prefix-match semantics and a single-segment "*" wildcard.
package descriptor
