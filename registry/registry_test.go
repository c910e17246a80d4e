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
	"io/fs"
	"reflect"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/builder"
	"dirpx.dev/dproblem/descriptor"
	"dirpx.dev/dproblem/typeid"
)

type OutOfCreditException struct{}

func (*OutOfCreditException) Error() string { return "out of credit" }

type DummyError struct{}

func (DummyError) Error() string { return "dummy" }

func (DummyError) ProblemDeclaration() apis.Declaration {
	return apis.Declaration{Type: "urn:problem-type:dummy-type-name"}
}

type looseError struct{}

func (looseError) Error() string { return "loose" }

func (looseError) ProblemDeclaration() apis.Declaration {
	return apis.Declaration{Type: "out of credit"}
}

type otherError struct{}

func (*otherError) Error() string { return "other" }

func newRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r, err := New(descriptor.NewTable(), opts...)
	require.NoError(t, err)
	return r
}

func TestRegister_DerivedAndDeclared(t *testing.T) {
	r := newRegistry(t)

	id, err := Add[*OutOfCreditException](r)
	require.NoError(t, err)
	assert.Equal(t, typeid.ID("urn:problem-type:out-of-credit"), id)

	id, err = Add[DummyError](r)
	require.NoError(t, err)
	assert.Equal(t, typeid.ID("urn:problem-type:dummy-type-name"), id)

	got, ok := r.Resolve("urn:problem-type:out-of-credit")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*OutOfCreditException](), got)

	back, ok := r.IdentifierOf(reflect.TypeFor[DummyError]())
	require.True(t, ok)
	assert.Equal(t, typeid.ID("urn:problem-type:dummy-type-name"), back)

	assert.Equal(t, []typeid.ID{"urn:problem-type:dummy-type-name", "urn:problem-type:out-of-credit"}, r.Identifiers())
}

func TestRegister_DeclaredTypeMatchesRenderedType(t *testing.T) {
	tbl := descriptor.NewTable()
	r, err := New(tbl)
	require.NoError(t, err)

	id, err := Add[looseError](r)
	require.NoError(t, err)
	assert.Equal(t, typeid.ID("urn:out+of+credit"), id)

	b, err := builder.New(tbl, looseError{})
	require.NoError(t, err)
	assert.Equal(t, id.String(), b.Type())

	got, ok := r.Resolve(b.Type())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[looseError](), got)
}

func TestRegister_Errors(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Register(nil)
	assert.ErrorIs(t, err, ErrNotError)
	_, err = r.Register(reflect.TypeFor[int]())
	assert.ErrorIs(t, err, ErrNotError)
	_, err = r.Register(reflect.TypeOf(errors.New("x")))
	assert.ErrorIs(t, err, ErrGeneric)
	_, err = r.RegisterAs(reflect.TypeFor[*otherError](), "not a uri")
	assert.ErrorIs(t, err, typeid.ErrInvalid)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrNilTable)
}

func TestRegisterAs_CollisionLastWriteWins(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := newRegistry(t, WithLogger(zap.New(core)))

	_, err := r.RegisterAs(reflect.TypeFor[*otherError](), "urn:problem-type:shared")
	require.NoError(t, err)
	_, err = r.RegisterAs(reflect.TypeFor[*OutOfCreditException](), "urn:problem-type:shared")
	require.NoError(t, err)

	got, ok := r.Resolve("urn:problem-type:shared")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*OutOfCreditException](), got)

	_, ok = r.IdentifierOf(reflect.TypeFor[*otherError]())
	assert.False(t, ok, "the replaced type loses its reverse association")
	assert.Equal(t, 1, logs.FilterMessage("problem type identifier re-registered").Len())

	// re-registering the same type under a new identifier moves it
	_, err = r.RegisterAs(reflect.TypeFor[*OutOfCreditException](), "urn:problem-type:moved")
	require.NoError(t, err)
	_, ok = r.Resolve("urn:problem-type:shared")
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	r := newRegistry(t)
	_, err := AddWithConstructor(r, func(detail string) *otherError { return &otherError{} })
	require.NoError(t, err)

	fn, ok := r.Constructor(reflect.TypeFor[*otherError]())
	require.True(t, ok)
	assert.IsType(t, &otherError{}, fn("d"))

	require.NoError(t, r.SetConstructor(reflect.TypeFor[*otherError](), nil))
	_, ok = r.Constructor(reflect.TypeFor[*otherError]())
	assert.False(t, ok)
}

type client struct{}

func (client) ProblemFailures() []error {
	return []error{(*OutOfCreditException)(nil), DummyError{}, errors.New("generic"), nil}
}

func TestRegisterDeclared(t *testing.T) {
	r := newRegistry(t)

	n, err := r.RegisterDeclared(client{})
	assert.ErrorIs(t, err, ErrGeneric)
	assert.Equal(t, 2, n)
	_, ok := r.Resolve("urn:problem-type:out-of-credit")
	assert.True(t, ok)

	n, err = r.RegisterDeclared(client{})
	assert.NoError(t, err)
	assert.Zero(t, n, "declarers are processed once")

	n, err = r.RegisterDeclared(struct{}{})
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestFallback_DisabledByDefault(t *testing.T) {
	r := newRegistry(t)
	_, ok := r.Resolve("urn:problem-type:path")
	assert.False(t, ok)
}

func TestFallback_ResolvesAndCaches(t *testing.T) {
	r := newRegistry(t, WithFallback(NewCatalog(StdlibTypes()...)))

	got, ok := r.Resolve("urn:problem-type:path")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*fs.PathError](), got)

	id, ok := r.IdentifierOf(reflect.TypeFor[*fs.PathError]())
	require.True(t, ok, "fallback hits are registered")
	assert.Equal(t, typeid.ID("urn:problem-type:path"), id)

	got, ok = r.Resolve("urn:problem-type:num")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*strconv.NumError](), got)

	_, ok = r.Resolve("urn:other:path")
	assert.False(t, ok, "foreign prefix")
	_, ok = r.Resolve("urn:problem-type:nothing-here")
	assert.False(t, ok)
}

func TestFallback_MissesDoNotStartGoroutines(t *testing.T) {
	r := newRegistry(t, WithFallback(NewCatalog()), WithMissCache(8, time.Minute))
	before := runtime.NumGoroutine()
	for i := 0; i < 100; i++ {
		_, ok := r.Resolve(fmt.Sprintf("urn:problem-type:missing-%d", i))
		require.False(t, ok)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

type countingLoader struct {
	calls atomic.Int64
	inner Loader
}

func (c *countingLoader) Load(name string) (reflect.Type, bool) {
	c.calls.Add(1)
	return c.inner.Load(name)
}

func TestFallback_NegativeCacheAndDedup(t *testing.T) {
	loader := &countingLoader{inner: NewCatalog()}
	r := newRegistry(t,
		WithFallback(loader),
		WithFallbackNamespaces("example.com/a", "example.com/b"),
		WithFallbackSuffixes("Error"),
	)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.Resolve("urn:problem-type:missing")
			assert.False(t, ok)
		}()
	}
	wg.Wait()
	first := loader.calls.Load()
	assert.LessOrEqual(t, first, int64(2*16))

	_, ok := r.Resolve("urn:problem-type:missing")
	assert.False(t, ok)
	assert.Equal(t, first, loader.calls.Load(), "misses are cached")

	// a later registration clears the miss
	_, err := r.RegisterAs(reflect.TypeFor[*otherError](), "urn:problem-type:missing")
	require.NoError(t, err)
	_, ok = r.Resolve("urn:problem-type:missing")
	assert.True(t, ok)
}

func TestFallback_OnlyErrorTypes(t *testing.T) {
	type Thing struct{}
	r := newRegistry(t,
		WithFallback(Catalog{"example.com/x.ThingError": reflect.TypeFor[Thing]()}),
		WithFallbackNamespaces("example.com/x"),
	)
	_, ok := r.Resolve("urn:problem-type:thing")
	assert.False(t, ok)
}

func TestCandidates(t *testing.T) {
	got := Candidates("urn:problem-type:out-of-credit", typeid.Prefix, []string{"io/fs", "/example.com/bank/"}, []string{"Error", ""})
	assert.Equal(t, []string{
		"io/fs.OutOfCreditError",
		"io/fs.OutOfCredit",
		"example.com/bank.OutOfCreditError",
		"example.com/bank.OutOfCredit",
	}, got)

	assert.Nil(t, Candidates("urn:problem-type:Bad_Name", typeid.Prefix, []string{"x"}, []string{""}))
}

func TestConcurrentRegisterAndResolve(t *testing.T) {
	r := newRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := r.RegisterAs(reflect.TypeFor[*otherError](), fmt.Sprintf("urn:problem-type:t%d", i))
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			if typ, ok := r.Resolve(fmt.Sprintf("urn:problem-type:t%d", i)); ok {
				assert.Equal(t, reflect.TypeFor[*otherError](), typ)
			}
		}(i)
	}
	wg.Wait()
	id, ok := r.IdentifierOf(reflect.TypeFor[*otherError]())
	require.True(t, ok)
	got, ok := r.Resolve(id.String())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[*otherError](), got)
}
