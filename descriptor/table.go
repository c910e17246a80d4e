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

package descriptor

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/internal/segmenttrie"
	"dirpx.dev/dproblem/logpolicy"
	"dirpx.dev/dproblem/member"
	"dirpx.dev/dproblem/namespace"
	"dirpx.dev/dproblem/naming"
)

var (
	// ErrNilType is returned when declaring metadata for a nil type.
	ErrNilType = errors.New("dproblem: nil type")
	// ErrNotError is returned when declaring metadata for a type that does
	// not implement error.
	ErrNotError = errors.New("dproblem: type does not implement error")
)

var errorType = reflect.TypeFor[error]()

// Table is the identity-keyed descriptor cache plus the type-level and
// namespace-level declarations it is computed from.
//
// Table is safe for concurrent use. Descriptors are computed lazily on first
// Of call and cached; declaring metadata invalidates the affected entries.
type Table struct {
	logger  *zap.Logger
	generic map[reflect.Type]struct{}

	mu      sync.Mutex
	decls   map[reflect.Type]apis.Declaration
	nsDecls map[namespace.Namespace]apis.Declaration

	// ns is a copy-on-write snapshot, rebuilt on every DeclareNamespace.
	ns    atomic.Pointer[nsSnapshot]
	cache sync.Map // reflect.Type -> *Descriptor

	// gen is bumped under mu by every declaration. A descriptor built while
	// it changed may be stale and is not kept.
	gen atomic.Uint64
}

type nsSnapshot struct {
	root apis.Declaration
	trie *segmenttrie.Trie[apis.Declaration]
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the logger used to report invalid declarations.
func WithLogger(l *zap.Logger) Option {
	return func(t *Table) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithGenericTypes marks additional types as generic wrappers without an
// identity of their own (see Descriptor.Generic).
func WithGenericTypes(types ...reflect.Type) Option {
	return func(t *Table) {
		for _, typ := range types {
			if typ != nil {
				t.generic[typ] = struct{}{}
			}
		}
	}
}

// GenericTypes returns the standard library wrapper types that carry no
// identity: the results of errors.New, fmt.Errorf (fmt.Errorf without %w
// returns the errors.New type) and errors.Join.
func GenericTypes() []reflect.Type {
	base := errors.New("x")
	return []reflect.Type{
		reflect.TypeOf(base),
		reflect.TypeOf(fmt.Errorf("x: %w", base)),
		reflect.TypeOf(fmt.Errorf("x: %w %w", base, base)),
		reflect.TypeOf(errors.Join(base, base)),
	}
}

// NewTable returns an empty table.
func NewTable(opts ...Option) *Table {
	t := &Table{
		logger:  zap.NewNop(),
		generic: make(map[reflect.Type]struct{}),
		decls:   make(map[reflect.Type]apis.Declaration),
		nsDecls: make(map[namespace.Namespace]apis.Declaration),
	}
	for _, typ := range GenericTypes() {
		t.generic[typ] = struct{}{}
	}
	for _, opt := range opts {
		opt(t)
	}
	t.ns.Store(&nsSnapshot{trie: segmenttrie.New[apis.Declaration]()})
	return t
}

// Declare sets the explicit type-level declaration of typ. Declared fields
// override the ones returned by apis.Declarer. Declaring twice replaces the
// previous explicit declaration.
func (t *Table) Declare(typ reflect.Type, d apis.Declaration) error {
	if typ == nil {
		return ErrNilType
	}
	if !typ.Implements(errorType) {
		return fmt.Errorf("%w: %s", ErrNotError, typ)
	}
	t.mu.Lock()
	t.decls[typ] = d
	t.gen.Add(1)
	t.mu.Unlock()
	t.cache.Delete(typ)
	return nil
}

// DeclareNamespace sets the declaration shared by every type declared under
// the package path prefix ns. The empty namespace is the process default.
//
// Namespaces match on whole "/" segments, the longest (most specific)
// declared prefix wins, and "*" matches exactly one segment.
// Only Logging and Status are taken from namespace declarations.
func (t *Table) DeclareNamespace(ns string, d apis.Declaration) error {
	parsed, err := namespace.Parse(ns)
	if err != nil {
		return fmt.Errorf("descriptor: namespace %q: %w", ns, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.nsDecls[parsed] = d

	snap := &nsSnapshot{trie: segmenttrie.New[apis.Declaration]()}
	for k, v := range t.nsDecls {
		if k == namespace.Root {
			snap.root = v
			continue
		}
		if err := snap.trie.Insert(k.String(), v); err != nil {
			delete(t.nsDecls, parsed)
			return fmt.Errorf("descriptor: namespace %q: %w", k, err)
		}
	}
	t.ns.Store(snap)
	t.gen.Add(1)
	t.cache.Clear()
	return nil
}

// Namespace returns the namespace-level declaration for a package path and
// the pattern that matched it ("" when only the process default applies).
func (t *Table) Namespace(pkgPath string) (apis.Declaration, string) {
	snap := t.ns.Load()
	if pkgPath != "" {
		if d, ok, pattern := snap.trie.MatchWithPattern(pkgPath); ok {
			return snap.root.Overlay(d), pattern
		}
	}
	return snap.root, ""
}

// Of returns the descriptor of typ, computing and caching it on first use.
// It returns nil for a nil type.
func (t *Table) Of(typ reflect.Type) *Descriptor {
	if typ == nil {
		return nil
	}
	if d, ok := t.cache.Load(typ); ok {
		return d.(*Descriptor)
	}
	for {
		gen := t.gen.Load()
		d := t.build(typ)
		actual, _ := t.cache.LoadOrStore(typ, d)
		if t.gen.Load() == gen {
			return actual.(*Descriptor)
		}
		t.cache.CompareAndDelete(typ, actual)
	}
}

func (t *Table) build(typ reflect.Type) *Descriptor {
	d := &Descriptor{
		Type:    typ,
		Name:    naming.QualifiedName(typ),
		PkgPath: pkgPath(typ),
	}
	_, d.Generic = t.generic[typ]
	if naming.BareName(typ) == "" {
		d.Generic = true
	}

	var errs []error
	decl, err := declarerOf(typ)
	if err != nil {
		errs = append(errs, err)
	}
	t.mu.Lock()
	explicit, ok := t.decls[typ]
	t.mu.Unlock()
	if ok {
		decl = decl.Overlay(explicit)
	}
	d.Declared = decl
	d.Namespace, d.NamespacePattern = t.Namespace(d.PkgPath)
	d.Logging = logpolicy.Resolve(decl.Logging, d.Namespace.Logging, d.Name)

	members, err := member.Catalog(typ, decl.Accessors)
	if err != nil {
		errs = append(errs, err)
	}
	d.Members = members
	d.split()

	if d.Err = errors.Join(errs...); d.Err != nil {
		t.logger.Warn("invalid problem declaration",
			zap.String("type", d.Name),
			zap.Error(d.Err),
		)
	}
	return d
}
