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

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

type builder struct {
	// grpcDefaults holds HTTP status -> gRPC code defaults (library defaults
	// plus user replacements).
	grpcDefaults map[int]codes.Code
	// grpcOverride holds exact HTTP status -> gRPC code overrides.
	grpcOverride map[int]codes.Code
	// grpcClass holds per-class (4, 5) gRPC codes.
	grpcClass map[int]codes.Code

	// httpDefaults holds gRPC code -> HTTP status defaults.
	httpDefaults map[codes.Code]int
	// httpOverride holds exact gRPC code -> HTTP status overrides.
	httpOverride map[codes.Code]int

	// global fallbacks used when nothing else matches.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates a builder seeded with copies of the library defaults.
func newBuilder() *builder {
	b := &builder{
		grpcDefaults: make(map[int]codes.Code, len(defaultGRPC)),
		grpcOverride: make(map[int]codes.Code),
		grpcClass:    make(map[int]codes.Code, len(defaultClass)),
		httpDefaults: make(map[codes.Code]int, len(defaultHTTP)),
		httpOverride: make(map[codes.Code]int),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Unknown,
	}
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = v
	}
	for k, v := range defaultClass {
		b.grpcClass[k] = v
	}
	for k, v := range defaultHTTP {
		b.httpDefaults[k] = v
	}
	return b
}

// freeze makes an immutable copy of m, normalizing an empty map to nil.
func freeze[K comparable, V any](m map[K]V) map[K]V {
	if len(m) == 0 {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
