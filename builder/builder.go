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
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/descriptor"
	"dirpx.dev/dproblem/logpolicy"
	"dirpx.dev/dproblem/namespace"
	"dirpx.dev/dproblem/safeuri"
	"dirpx.dev/dproblem/typeid"
)

var (
	// ErrNilError is returned by New for a nil error.
	ErrNilError = errors.New("dproblem: nil error")
	// ErrNilTable is returned by New for a nil descriptor table.
	ErrNilTable = errors.New("dproblem: nil descriptor table")
)

// DefaultMediaType is the media type used when no acceptable application/*
// subtype was supplied.
const DefaultMediaType = "application/problem+json"

// defaultDetailRe matches messages synthesized by HTTP layers for a bare
// status, e.g. "HTTP 404 Not Found".
var defaultDetailRe = regexp.MustCompile(`^HTTP \d{3}( .*)?$`)

// Builder derives the problem details of one error. Every derived value is
// computed on first access and memoized; Builder is safe for concurrent use.
type Builder struct {
	err  error
	val  reflect.Value
	desc *descriptor.Descriptor
	tbl  *descriptor.Table
	opt  options

	status     func() int
	typ        func() string
	title      func() string
	detail     func() string
	instance   func() string
	extensions func() map[string]any
	body       func() apis.Body
	logMessage func() string
}

// New returns the builder bound to err.
func New(tbl *descriptor.Table, err error, opts ...Option) (*Builder, error) {
	if err == nil {
		return nil, ErrNilError
	}
	if tbl == nil {
		return nil, ErrNilTable
	}
	b := &Builder{
		err:  err,
		val:  reflect.ValueOf(err),
		desc: tbl.Of(reflect.TypeOf(err)),
		tbl:  tbl,
		opt:  defaultOptions(),
	}
	for _, o := range opts {
		o(&b.opt)
	}
	b.status = sync.OnceValue(b.computeStatus)
	b.typ = sync.OnceValue(b.computeType)
	b.title = sync.OnceValue(b.computeTitle)
	b.detail = sync.OnceValue(b.computeDetail)
	b.instance = sync.OnceValue(b.computeInstance)
	b.extensions = sync.OnceValue(b.computeExtensions)
	b.body = sync.OnceValue(b.computeBody)
	b.logMessage = sync.OnceValue(b.computeLogMessage)
	return b, nil
}

// Err returns the bound error.
func (b *Builder) Err() error { return b.err }

// Descriptor returns the descriptor of the bound error's type.
func (b *Builder) Descriptor() *descriptor.Descriptor { return b.desc }

// Status returns the HTTP status, resolved in this order:
//
//  1. the error's own ProblemStatus or declared status;
//  2. the status of the direct cause (one level of unwrapping only);
//  3. the status supplied with WithStatus;
//  4. the namespace-level declared status;
//  5. 500 for platform namespaces, else 400.
//
// A package is a platform namespace when its first path element has no dot
// (the standard library heuristic of namespace.IsPlatform) or it is under a
// WithPlatformNamespaces prefix, unless it is under a
// WithApplicationNamespaces prefix. Modules with dot-less paths such as
// "myservice/..." therefore need WithApplicationNamespaces to default to 400.
func (b *Builder) Status() int { return b.status() }

// Type returns the problem type identifier.
func (b *Builder) Type() string { return b.typ() }

// Title returns the problem title.
func (b *Builder) Title() string { return b.title() }

// Detail returns the detail text, or "" when it is omitted.
func (b *Builder) Detail() string { return b.detail() }

// Instance returns the instance identifier, or "" when it is omitted.
func (b *Builder) Instance() string { return b.instance() }

// Extensions returns the extension members. The returned map must not be
// modified.
func (b *Builder) Extensions() map[string]any { return b.extensions() }

// Body returns the full problem details document.
func (b *Builder) Body() apis.Body { return b.body() }

// LogMessage returns the textual rendering of the body used for logging.
func (b *Builder) LogMessage() string { return b.logMessage() }

// Logging returns the effective logging policy, with AUTO resolved against
// the status.
func (b *Builder) Logging() apis.Logging {
	p := b.desc.Logging
	p.Level = logpolicy.Effective(p.Level, b.Status(), b.opt.clientLevel)
	return p
}

// Log writes the log message through the effective logging policy.
func (b *Builder) Log() {
	logpolicy.Log(b.opt.logger, b.desc.Logging, b.Status(), b.opt.clientLevel, b.LogMessage(),
		zap.Int("status", b.Status()),
		zap.String("type", b.Type()),
	)
}

// MediaType derives the response media type from the acceptable media
// types supplied by content negotiation, in preference order. The first
// application/* subtype wins and is composed into application/problem+<sub>;
// application/xhtml+xml maps to text/html.
func (b *Builder) MediaType(acceptable ...string) string {
	return MediaType(acceptable...)
}

// MediaType is the error-independent implementation of Builder.MediaType.
func MediaType(acceptable ...string) string {
	for _, a := range acceptable {
		mt, _, _ := strings.Cut(a, ";")
		mt = strings.ToLower(strings.TrimSpace(mt))
		sub, ok := strings.CutPrefix(mt, "application/")
		if !ok || sub == "" || sub == "*" {
			continue
		}
		switch {
		case sub == "xhtml+xml":
			return "text/html"
		case strings.HasPrefix(sub, "problem+"):
			return mt
		default:
			return "application/problem+" + sub
		}
	}
	return DefaultMediaType
}

func (b *Builder) computeStatus() int {
	if st := b.ownStatus(b.err, b.desc); st != 0 {
		return st
	}
	if st := b.causeStatus(); st != 0 {
		return st
	}
	if b.opt.status != 0 {
		return b.opt.status
	}
	if b.desc.Namespace.Status != 0 {
		return b.desc.Namespace.Status
	}
	if b.isPlatform(b.desc.PkgPath) {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func (b *Builder) ownStatus(err error, d *descriptor.Descriptor) int {
	if se, ok := err.(apis.StatusError); ok {
		if st, ok := guard(se.ProblemStatus); ok && st != 0 {
			return st
		}
	}
	return d.Declared.Status
}

func (b *Builder) causeStatus() int {
	var causes []error
	switch u := b.err.(type) {
	case interface{ Unwrap() error }:
		if c, ok := guard(u.Unwrap); ok && c != nil {
			causes = append(causes, c)
		}
	case interface{ Unwrap() []error }:
		if cs, ok := guard(u.Unwrap); ok {
			causes = cs
		}
	}
	for _, c := range causes {
		if c == nil {
			continue
		}
		if st := b.ownStatus(c, b.tbl.Of(reflect.TypeOf(c))); st != 0 {
			return st
		}
	}
	return 0
}

func (b *Builder) isPlatform(pkg string) bool {
	if underAny(pkg, b.opt.application) {
		return false
	}
	return namespace.IsPlatform(pkg) || underAny(pkg, b.opt.platform)
}

func underAny(pkg string, prefixes []string) bool {
	for _, p := range prefixes {
		p = namespace.Normalize(p)
		if p != "" && (pkg == p || strings.HasPrefix(pkg, p+"/")) {
			return true
		}
	}
	return false
}

func (b *Builder) computeType() string {
	if te, ok := b.err.(apis.TypedError); ok {
		if t, ok := guard(te.ProblemType); ok && t != "" {
			return safeuri.Build(t)
		}
	}
	if b.desc.Declared.Type != "" {
		return b.desc.Identifier(b.opt.deriver)
	}
	if !b.desc.Generic {
		if id := b.opt.deriver.Identifier(b.desc.Type); id != typeid.Empty {
			return id.String()
		}
	}
	if b.opt.typ != "" {
		return safeuri.Build(b.opt.typ)
	}
	if id := typeid.FromWords(strings.Fields(http.StatusText(b.Status()))); id != typeid.Empty {
		return id.String()
	}
	return "about:blank"
}

func (b *Builder) computeTitle() string {
	if te, ok := b.err.(apis.TitledError); ok {
		if t, ok := guard(te.ProblemTitle); ok && t != "" {
			return t
		}
	}
	if b.desc.Declared.Title != "" {
		return b.desc.Declared.Title
	}
	if !b.desc.Generic {
		if t := b.opt.deriver.Title(b.desc.Type); t != "" {
			return t
		}
	}
	if b.opt.title != "" {
		return b.opt.title
	}
	if t := http.StatusText(b.Status()); t != "" {
		return t
	}
	return "Unknown"
}

func (b *Builder) computeDetail() string {
	if len(b.desc.Details) > 0 {
		// Declared Detail members that are all nil omit the detail.
		parts := make([]string, 0, len(b.desc.Details))
		for _, m := range b.desc.Details {
			if v := m.Value(b.val); v != nil {
				parts = append(parts, fmt.Sprint(v))
			}
		}
		return strings.Join(parts, ". ")
	}
	msg := b.message()
	if b.opt.suppressDefaultDetail && defaultDetailRe.MatchString(msg) {
		return ""
	}
	return msg
}

func (b *Builder) message() (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fmt.Sprintf("could not invoke %s.Error: %v", b.desc.Type, r)
		}
	}()
	return b.err.Error()
}

func (b *Builder) computeInstance() string {
	if !b.desc.HasInstance() {
		return b.opt.newInstance()
	}
	for _, m := range b.desc.Instances {
		if v := m.Value(b.val); v != nil {
			return safeuri.Build(fmt.Sprint(v))
		}
	}
	return ""
}

// computeExtensions collects Extension members in catalog (name) order; the
// first member to claim a name wins. Inline maps only add names not claimed
// by an Extension member. Standard member names are never used.
func (b *Builder) computeExtensions() map[string]any {
	out := make(map[string]any, len(b.desc.Extensions))
	for _, m := range b.desc.Extensions {
		key := m.Key()
		if apis.IsReserved(key) {
			continue
		}
		if _, dup := out[key]; dup {
			continue
		}
		if v := m.Value(b.val); v != nil {
			out[key] = v
		}
	}
	for _, m := range b.desc.Inline {
		raw := m.Value(b.val)
		if raw == nil {
			continue
		}
		mv := reflect.ValueOf(raw)
		if mv.Kind() != reflect.Map {
			// an access failure string
			if _, dup := out[m.Key()]; !dup {
				out[m.Key()] = raw
			}
			continue
		}
		iter := mv.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			if apis.IsReserved(key) {
				continue
			}
			if _, dup := out[key]; dup {
				continue
			}
			v := iter.Value()
			if (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) && v.IsNil() {
				continue
			}
			out[key] = v.Interface()
		}
	}
	return out
}

func (b *Builder) computeBody() apis.Body {
	return apis.Body{
		Type:       b.Type(),
		Title:      b.Title(),
		Status:     b.Status(),
		Detail:     b.Detail(),
		Instance:   b.Instance(),
		Extensions: b.Extensions(),
	}
}

func (b *Builder) computeLogMessage() string {
	var sb strings.Builder
	sb.WriteString("ProblemDetail:")
	for _, f := range b.Body().Fields() {
		sb.WriteString("\n  ")
		sb.WriteString(f.Key)
		sb.WriteString(": ")
		fmt.Fprint(&sb, f.Value)
	}
	return sb.String()
}

// guard calls fn, converting a panic into ok=false.
func guard[T any](fn func() T) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	return fn(), true
}
