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

package statusmap

import "google.golang.org/grpc/codes"

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithGRPCDefault sets or replaces the default gRPC code for an HTTP status.
func WithGRPCDefault(httpStatus int, c codes.Code) Option {
	return func(b *builder) { b.grpcDefaults[httpStatus] = c }
}

// WithGRPCOverride registers an exact gRPC code for an HTTP status. Overrides
// take precedence over defaults and class rules.
func WithGRPCOverride(httpStatus int, c codes.Code) Option {
	return func(b *builder) { b.grpcOverride[httpStatus] = c }
}

// WithGRPCClass sets the gRPC code used for statuses of a class (4 for 4xx,
// 5 for 5xx) that have neither an override nor a default.
func WithGRPCClass(class int, c codes.Code) Option {
	return func(b *builder) { b.grpcClass[class] = c }
}

// WithHTTPDefault sets or replaces the default HTTP status for a gRPC code.
func WithHTTPDefault(c codes.Code, httpStatus int) Option {
	return func(b *builder) { b.httpDefaults[c] = httpStatus }
}

// WithHTTPOverride registers an exact HTTP status for a gRPC code.
func WithHTTPOverride(c codes.Code, httpStatus int) Option {
	return func(b *builder) { b.httpOverride[c] = httpStatus }
}
