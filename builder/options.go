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

package builder

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/naming"
)

// Option configures a Builder.
type Option func(*options)

type options struct {
	deriver naming.Deriver

	// externally supplied by the inbound binding layer
	status int
	typ    string
	title  string

	suppressDefaultDetail bool
	clientLevel           apis.Level
	platform              []string
	application           []string
	newInstance           func() string
	logger                *zap.Logger
}

func defaultOptions() options {
	return options{
		deriver:               naming.Default,
		suppressDefaultDetail: true,
		clientLevel:           apis.LevelInfo,
		newInstance:           func() string { return "urn:uuid:" + uuid.NewString() },
		logger:                zap.NewNop(),
	}
}

// WithStatus supplies the status already known to the protocol layer, e.g.
// the status of a framework response. It applies when neither the error
// nor its direct cause declares a status.
func WithStatus(status int) Option {
	return func(o *options) { o.status = status }
}

// WithFallbackType supplies the type identifier used for errors without an
// identity of their own (unnamed types and generic wrappers).
func WithFallbackType(typ string) Option {
	return func(o *options) { o.typ = typ }
}

// WithFallbackTitle supplies the title used for errors without an identity
// of their own.
func WithFallbackTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithSuppressDefaultDetail controls whether an error message shaped like a
// synthesized default ("HTTP 404 Not Found") is dropped from the detail.
// Enabled by default.
func WithSuppressDefaultDetail(on bool) Option {
	return func(o *options) { o.suppressDefaultDetail = on }
}

// WithClientLevel sets the level AUTO resolves to for statuses below 500.
// Defaults to INFO.
func WithClientLevel(l apis.Level) Option {
	return func(o *options) { o.clientLevel = l }
}

// WithPlatformNamespaces adds package path prefixes whose errors default to
// status 500, in addition to the standard library.
func WithPlatformNamespaces(prefixes ...string) Option {
	return func(o *options) { o.platform = append(o.platform, prefixes...) }
}

// WithApplicationNamespaces marks package path prefixes as application code
// whose errors default to status 400. It takes precedence over the platform
// heuristic, e.g. for a local module "myservice/..." whose first path element
// has no dot.
func WithApplicationNamespaces(prefixes ...string) Option {
	return func(o *options) { o.application = append(o.application, prefixes...) }
}

// WithDeriver replaces the type identity deriver.
func WithDeriver(d naming.Deriver) Option {
	return func(o *options) { o.deriver = d }
}

// WithInstanceGenerator replaces the generator of instance identifiers for
// types that declare no Instance member. The default yields
// "urn:uuid:<random uuid>".
func WithInstanceGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newInstance = fn
		}
	}
}

// WithLogger sets the logger used by Builder.Log.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
