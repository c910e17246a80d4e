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

package reverse

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/descriptor"
	"dirpx.dev/dproblem/member"
	"dirpx.dev/dproblem/registry"
)

var (
	// ErrNilRegistry is returned by New for a nil registry.
	ErrNilRegistry = errors.New("dproblem: nil registry")
	// ErrNilTable is returned by New for a nil descriptor table.
	ErrNilTable = errors.New("dproblem: nil descriptor table")
	// ErrConstructor is reported when a registered constructor returns a
	// value of an unexpected type; the zero value is used instead.
	ErrConstructor = errors.New("dproblem: constructor returned unexpected type")
)

// Builder reconstructs typed errors from received problem details bodies.
// It is safe for concurrent use.
type Builder struct {
	reg    *registry.Registry
	tbl    *descriptor.Table
	logger *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used to report partially reconstructed errors.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// New returns a reverse builder resolving types through reg.
func New(reg *registry.Registry, tbl *descriptor.Table, opts ...Option) (*Builder, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}
	if tbl == nil {
		return nil, ErrNilTable
	}
	b := &Builder{reg: reg, tbl: tbl, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Reconstruct returns the typed error described by doc.
//
// The first result is never nil. When doc.Type resolves to no registered
// type it is an *UnregisteredTypeError carrying doc. Otherwise it is an
// instance of the registered type:
//
//   - built by the registered constructor when doc carries a detail, else
//     the zero value with the detail injected into the first Detail field;
//   - with doc.Instance injected into the first Instance field;
//   - with every Extension field whose name is present in doc set;
//   - with the remaining extensions put into the first inline extensions map.
//
// Values are coerced to the field types (see Coerce). A value that cannot be
// coerced leaves its field unset and is reported in the second result, which
// wraps ErrCoercion; the reconstructed error is returned regardless.
func (b *Builder) Reconstruct(doc apis.Body) (error, error) {
	t, ok := b.reg.Resolve(doc.Type)
	if !ok {
		return &UnregisteredTypeError{Body: doc}, nil
	}
	d := b.tbl.Of(t)

	ptr, detailDone, err := b.construct(t, doc.Detail)
	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	if ptr.Elem().Kind() == reflect.Struct {
		if doc.Detail != "" && !detailDone {
			if m, ok := firstField(d.Details); ok {
				errs = appendErr(errs, inject(m, ptr, doc.Detail))
			}
		}
		if doc.Instance != "" {
			if m, ok := firstField(d.Instances); ok {
				errs = appendErr(errs, inject(m, ptr, doc.Instance))
			}
		}
		consumed := make(map[string]struct{}, len(d.Extensions))
		for _, m := range d.Extensions {
			if m.Kind != member.KindField {
				continue
			}
			key := m.Key()
			v, present := doc.Extensions[key]
			if !present {
				continue
			}
			consumed[key] = struct{}{}
			errs = appendErr(errs, inject(m, ptr, v))
		}
		if m, ok := firstField(d.Inline); ok {
			errs = appendErr(errs, b.inline(m, ptr, doc.Extensions, consumed))
		}
	}

	var out error
	if t.Kind() == reflect.Pointer {
		out = ptr.Interface().(error)
	} else {
		out = ptr.Elem().Interface().(error)
	}
	joined := errors.Join(errs...)
	if joined != nil {
		b.logger.Debug("problem partially reconstructed",
			zap.String("type", doc.Type),
			zap.Error(joined),
		)
	}
	return out, joined
}

// construct returns a non-nil pointer to a new value of t (or of t's element
// type when t is a pointer), and whether a constructor consumed detail.
func (b *Builder) construct(t reflect.Type, detail string) (reflect.Value, bool, error) {
	base := t
	if t.Kind() == reflect.Pointer {
		base = t.Elem()
	}
	if detail == "" {
		return reflect.New(base), false, nil
	}
	ctor, ok := b.reg.Constructor(t)
	if !ok {
		return reflect.New(base), false, nil
	}
	v := reflect.ValueOf(ctor(detail))
	switch {
	case !v.IsValid():
	case t.Kind() == reflect.Pointer && v.Type() == t && !v.IsNil():
		return v, true, nil
	case t.Kind() != reflect.Pointer && v.Type() == t:
		p := reflect.New(base)
		p.Elem().Set(v)
		return p, true, nil
	}
	return reflect.New(base), false, fmt.Errorf("%w: %s", ErrConstructor, t)
}

func (b *Builder) inline(m member.Member, ptr reflect.Value, ext map[string]any, consumed map[string]struct{}) error {
	f, err := m.Field(ptr)
	if err != nil {
		return err
	}
	var errs []error
	for k, v := range ext {
		if _, ok := consumed[k]; ok || apis.IsReserved(k) {
			continue
		}
		cv, err := Coerce(v, f.Type().Elem())
		if err != nil {
			errs = append(errs, fmt.Errorf("%s[%q]: %w", m.Name, k, err))
			continue
		}
		if f.IsNil() {
			f.Set(reflect.MakeMap(f.Type()))
		}
		f.SetMapIndex(reflect.ValueOf(k).Convert(f.Type().Key()), cv)
	}
	return errors.Join(errs...)
}

func inject(m member.Member, ptr reflect.Value, x any) error {
	v, err := Coerce(x, m.Type)
	if err != nil {
		return fmt.Errorf("%s: %w", m.Name, err)
	}
	return m.Set(ptr, v)
}

func firstField(ms []member.Member) (member.Member, bool) {
	for _, m := range ms {
		if m.Kind == member.KindField {
			return m, true
		}
	}
	return member.Member{}, false
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
