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
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/descriptor"
	"dirpx.dev/dproblem/naming"
	"dirpx.dev/dproblem/typeid"
)

var (
	// ErrNilTable is returned by New for a nil descriptor table.
	ErrNilTable = errors.New("dproblem: nil descriptor table")
	// ErrNotError is returned when registering a type that does not
	// implement error.
	ErrNotError = errors.New("dproblem: type does not implement error")
	// ErrGeneric is returned when registering a type without an identity of
	// its own (unnamed types, errors.New and fmt.Errorf results).
	ErrGeneric = errors.New("dproblem: type has no problem identity")
)

var errorType = reflect.TypeFor[error]()

// Constructor builds an error from a received detail text.
type Constructor func(detail string) error

// Registry is the bidirectional association between problem type
// identifiers and concrete error types.
//
// Registry is safe for concurrent use: registrations may happen from
// request paths while other goroutines resolve. A resolution of one
// identifier observes either the full association or a clean miss.
// On identifier collisions the last registration wins and the replaced
// association is logged at WARN.
type Registry struct {
	table   *descriptor.Table
	deriver naming.Deriver
	logger  *zap.Logger

	mu     sync.RWMutex
	byID   map[string]reflect.Type
	byType map[reflect.Type]string
	ctors  map[reflect.Type]Constructor

	// declared remembers the FailureDeclarer types already registered.
	declared sync.Map

	fb *fallback
}

// New returns an empty registry using tbl for type declarations.
func New(tbl *descriptor.Table, opts ...Option) (*Registry, error) {
	if tbl == nil {
		return nil, ErrNilTable
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	r := &Registry{
		table:   tbl,
		deriver: o.deriver,
		logger:  o.logger,
		byID:    make(map[string]reflect.Type),
		byType:  make(map[reflect.Type]string),
		ctors:   make(map[reflect.Type]Constructor),
	}
	if o.loader != nil {
		r.fb = &fallback{
			loader:     o.loader,
			prefix:     o.prefix,
			namespaces: o.namespaces,
			suffixes:   o.suffixes,
			misses:     expirable.NewLRU[string, struct{}](o.missSize, nil, o.missTTL),
		}
	}
	return r, nil
}

// Register associates t with the identifier of its descriptor: the declared
// type, or the one derived from the type name.
func (r *Registry) Register(t reflect.Type) (typeid.ID, error) {
	if err := checkType(t); err != nil {
		return typeid.Empty, err
	}
	d := r.table.Of(t)
	if d.Generic && d.Declared.Type == "" {
		return typeid.Empty, fmt.Errorf("%w: %s", ErrGeneric, t)
	}
	id, err := typeid.Parse(d.Identifier(r.deriver))
	if err != nil {
		return typeid.Empty, fmt.Errorf("registry: %s: %w", t, err)
	}
	r.store(id, t)
	return id, nil
}

// RegisterAs associates t with an explicit identifier, e.g. to expose a
// third-party error under a local identifier.
func (r *Registry) RegisterAs(t reflect.Type, id string) (typeid.ID, error) {
	if err := checkType(t); err != nil {
		return typeid.Empty, err
	}
	parsed, err := typeid.Parse(id)
	if err != nil {
		return typeid.Empty, fmt.Errorf("registry: %s: %w", t, err)
	}
	r.store(parsed, t)
	return parsed, nil
}

// SetConstructor registers the constructor used by the reverse builder when
// a received body carries a detail. Without a constructor the zero value is
// used and the detail is injected into the first Detail member.
func (r *Registry) SetConstructor(t reflect.Type, fn Constructor) error {
	if err := checkType(t); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.ctors, t)
		return nil
	}
	r.ctors[t] = fn
	return nil
}

// Constructor returns the constructor registered for t.
func (r *Registry) Constructor(t reflect.Type) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.ctors[t]
	return fn, ok
}

// Resolve returns the type registered for id. On a miss, and only when the
// fallback resolver is enabled, the conventional type name is probed and a
// successful result is registered.
func (r *Registry) Resolve(id string) (reflect.Type, bool) {
	key := typeid.Normalize(id)
	r.mu.RLock()
	t, ok := r.byID[key]
	r.mu.RUnlock()
	if ok || r.fb == nil {
		return t, ok
	}
	return r.resolveFallback(key)
}

// IdentifierOf returns the identifier t is registered under.
func (r *Registry) IdentifierOf(t reflect.Type) (typeid.ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byType[t]
	return typeid.ID(id), ok
}

// Identifiers returns all registered identifiers, sorted.
func (r *Registry) Identifiers() []typeid.ID {
	r.mu.RLock()
	out := make([]typeid.ID, 0, len(r.byID))
	for id := range r.byID {
		out = append(out, typeid.ID(id))
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RegisterDeclared registers the failure types announced by v through
// apis.FailureDeclarer. Each declarer type is processed once; types that are
// already registered keep their association. It returns the number of newly
// registered types.
func (r *Registry) RegisterDeclared(v any) (int, error) {
	fd, ok := v.(apis.FailureDeclarer)
	if !ok {
		return 0, nil
	}
	if _, seen := r.declared.LoadOrStore(reflect.TypeOf(v), struct{}{}); seen {
		return 0, nil
	}
	var (
		n    int
		errs []error
	)
	for _, e := range fd.ProblemFailures() {
		t := reflect.TypeOf(e)
		if t == nil {
			continue
		}
		if _, ok := r.IdentifierOf(t); ok {
			continue
		}
		if _, err := r.Register(t); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

func (r *Registry) store(id typeid.ID, t reflect.Type) {
	key := id.String()

	r.mu.Lock()
	prev, collided := r.byID[key]
	if collided && prev != t {
		delete(r.byType, prev)
	}
	if old, ok := r.byType[t]; ok && old != key {
		delete(r.byID, old)
	}
	r.byID[key] = t
	r.byType[t] = key
	r.mu.Unlock()

	if collided && prev != t {
		r.logger.Warn("problem type identifier re-registered",
			zap.String("id", key),
			zap.Stringer("previous", prev),
			zap.Stringer("type", t),
		)
	}
	if r.fb != nil {
		r.fb.misses.Remove(key)
	}
}

func checkType(t reflect.Type) error {
	if t == nil {
		return fmt.Errorf("%w: nil", ErrNotError)
	}
	if !t.Implements(errorType) {
		return fmt.Errorf("%w: %s", ErrNotError, t)
	}
	return nil
}

// Add registers T under its derived or declared identifier.
func Add[T error](r *Registry) (typeid.ID, error) {
	return r.Register(reflect.TypeFor[T]())
}

// AddWithConstructor registers T and its constructor.
func AddWithConstructor[T error](r *Registry, fn func(detail string) T) (typeid.ID, error) {
	t := reflect.TypeFor[T]()
	id, err := r.Register(t)
	if err != nil {
		return id, err
	}
	if err := r.SetConstructor(t, func(detail string) error { return fn(detail) }); err != nil {
		return id, err
	}
	return id, nil
}

// missTTL bounds how long a fallback miss is remembered.
const missTTL = 10 * time.Minute
