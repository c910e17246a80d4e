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

// Package statusmap provides deterministic, immutable mappings between the
// HTTP status of a problem details body and gRPC status codes.
//
// # Resolution model
//
// An HTTP status resolves to a gRPC code in the following order:
//
//  1. exact override for the status;
//  2. default for the status (library or user-adjusted);
//  3. class rule: 4xx -> FAILED_PRECONDITION, 5xx -> INTERNAL;
//  4. fallback (codes.Unknown).
//
// The reverse direction (gRPC code -> HTTP status) is override, default,
// then 500. The library defaults follow the mapping used by common gRPC/HTTP
// gateways.
//
// # Building a mapper
//
//	m, err := statusmap.New(
//	    statusmap.WithGRPCOverride(http.StatusConflict, codes.AlreadyExists),
//	    statusmap.WithHTTPOverride(codes.Canceled, http.StatusRequestTimeout),
//	)
//
//	st := m.Status(http.StatusServiceUnavailable)
//	// st.HTTP == 503, st.GRPC == codes.Unavailable
//
// Mapper.Explain returns a human-readable trace of which rule matched. It is
// intended for inspection and logging, not for stable machine parsing.
//
// All user-provided inputs are copied during New; a Mapper is safe to share
// across goroutines.
package statusmap
