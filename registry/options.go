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

package registry

import (
	"time"

	"go.uber.org/zap"

	"dirpx.dev/dproblem/naming"
	"dirpx.dev/dproblem/typeid"
)

// Option configures a Registry.
type Option func(*options)

type options struct {
	deriver naming.Deriver
	logger  *zap.Logger

	// fallback resolver, disabled while loader is nil
	loader     Loader
	prefix     string
	namespaces []string
	suffixes   []string
	missSize   int
	missTTL    time.Duration
}

// DefaultSuffixes are the type name suffixes probed by the fallback
// resolver, in order. The empty suffix probes the bare name.
var DefaultSuffixes = []string{"Error", "Exception", ""}

// DefaultMissCacheSize bounds the number of remembered fallback misses.
const DefaultMissCacheSize = 1024

func defaultOptions() options {
	return options{
		deriver:    naming.Default,
		logger:     zap.NewNop(),
		prefix:     typeid.Prefix,
		namespaces: append([]string(nil), StdlibNamespaces...),
		suffixes:   append([]string(nil), DefaultSuffixes...),
		missSize:   DefaultMissCacheSize,
		missTTL:    missTTL,
	}
}

// WithLogger sets the logger used to report identifier collisions.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDeriver replaces the type identity deriver used by Register.
func WithDeriver(d naming.Deriver) Option {
	return func(o *options) { o.deriver = d }
}

// WithFallback enables the conventional fallback resolver over loader.
//
// The negative cache of the resolver expires entries in a background
// goroutine that lives as long as the process. A fallback-enabled registry is
// meant to be created once and shared, not built per request or per test
// case.
func WithFallback(loader Loader) Option {
	return func(o *options) { o.loader = loader }
}

// WithFallbackPrefix sets the identifier prefix stripped by the fallback
// resolver. Defaults to typeid.Prefix.
func WithFallbackPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithFallbackNamespaces replaces the package paths probed by the fallback
// resolver, in order. Defaults to StdlibNamespaces.
func WithFallbackNamespaces(namespaces ...string) Option {
	return func(o *options) { o.namespaces = append([]string(nil), namespaces...) }
}

// WithFallbackSuffixes replaces the type name suffixes probed by the
// fallback resolver, in order. Defaults to DefaultSuffixes.
func WithFallbackSuffixes(suffixes ...string) Option {
	return func(o *options) { o.suffixes = append([]string(nil), suffixes...) }
}

// WithMissCache sizes the negative cache of the fallback resolver.
// Non-positive values keep the defaults.
func WithMissCache(size int, ttl time.Duration) Option {
	return func(o *options) {
		if size > 0 {
			o.missSize = size
		}
		if ttl > 0 {
			o.missTTL = ttl
		}
	}
}
