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

package apis

import "google.golang.org/grpc/codes"

// StatusMapper is an immutable, concurrency-safe view of the transport
// status rules. It translates the HTTP status of a problem into a gRPC code
// and back.
type StatusMapper interface {
	// GRPCCode returns the gRPC code for the given HTTP status.
	GRPCCode(httpStatus int) codes.Code

	// HTTPStatus returns the HTTP status for the given gRPC code.
	HTTPStatus(c codes.Code) int

	// Status resolves both transports for one HTTP status.
	Status(httpStatus int) Status

	// Explain returns a human-readable description of which rule matched.
	Explain(httpStatus int) string
}

// Status represents a resolved pair of transport statuses for a single
// problem.
type Status struct {
	HTTP int        // Resolved HTTP status code (net/http compatible).
	GRPC codes.Code // Resolved gRPC status code.
}
