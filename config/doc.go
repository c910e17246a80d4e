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

// Package config loads the engine configuration from a YAML file and
// DPROBLEM_* environment variables.
//
//	builder:
//	  client_level: debug
//	  platform_namespaces: [example.com/platform]
//	  application_namespaces: [myservice]
//	fallback:
//	  enabled: true
//	  namespaces: [io/fs, os]
//	  miss_cache_ttl: 5m
//	status:
//	  grpc_overrides:
//	    "409": ALREADY_EXISTS
//	namespaces:
//	  - path: example.com/billing
//	    category: billing
//	    level: warn
//	    status: 402
//
// Environment variables use the upper-cased key path with "." replaced by
// "_": DPROBLEM_FALLBACK_ENABLED=true. The values are kept as text; they are
// validated when converted into engine options (dproblem.FromConfig).
package config
