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

// Package reverse turns received problem details bodies back into typed
// errors.
//
// The body's type identifier is resolved through a registry.Registry. The
// resolved type is instantiated (by its registered constructor, or as a zero
// value) and its tagged members are filled from the body, coercing wire
// values such as "true" or "1234" into the member types. Bodies whose type
// resolves to nothing come back as *UnregisteredTypeError, which renders to
// the same body again.
package reverse
