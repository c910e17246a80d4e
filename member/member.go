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

package member

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unsafe"
)

// Kind tells data-holding members from accessor methods.
type Kind int

const (
	KindField Kind = iota + 1
	KindMethod
)

// ErrNotSettable is returned by Set for members that cannot be injected
// (accessor methods).
var ErrNotSettable = errors.New("dproblem: member is not settable")

var errorType = reflect.TypeFor[error]()

// Member is one introspectable member of an error type.
type Member struct {
	// Name is the Go name of the field or method.
	Name string
	// Kind is KindField or KindMethod.
	Kind Kind
	// Tag is the declared role.
	Tag Tag
	// Type is the field type, or the first result type of the method.
	Type reflect.Type

	owner   string
	index   []int
	errLast bool
}

// Key returns the extension name of the member: the explicit tag name, or
// the Go name with its leading upper-case run lowered ("Balance" -> "balance",
// "URLPath" -> "urlPath").
func (m Member) Key() string {
	if m.Tag.Name != "" {
		return m.Tag.Name
	}
	return lowerCamel(m.Name)
}

// Catalog returns every tagged member of t, sorted by name.
//
// Fields are taken from the struct behind t (pointers are dereferenced),
// including unexported and promoted ones. Methods are taken from accessors
// (method name -> tag) and must be exported, take no arguments, and return
// one value optionally followed by an error.
//
// Invalid tags or accessors are reported in the returned error; the valid
// members are returned regardless.
func Catalog(t reflect.Type, accessors map[string]string) ([]Member, error) {
	if t == nil {
		return nil, nil
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	owner := base.String()

	var (
		out  []Member
		errs []error
	)
	if base.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(base) {
			raw, ok := f.Tag.Lookup(TagKey)
			if !ok || raw == "-" {
				continue
			}
			tag, err := ParseTag(raw)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.%s: %w", owner, f.Name, err))
				continue
			}
			if tag.Role == RoleExtensions && (f.Type.Kind() != reflect.Map || f.Type.Key().Kind() != reflect.String) {
				errs = append(errs, fmt.Errorf("%s.%s: %w: extensions member must be map[string]V", owner, f.Name, ErrInvalidTag))
				continue
			}
			out = append(out, Member{
				Name:  f.Name,
				Kind:  KindField,
				Tag:   tag,
				Type:  f.Type,
				owner: owner,
				index: f.Index,
			})
		}
	}

	for name, raw := range accessors {
		tag, err := ParseTag(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", owner, name, err))
			continue
		}
		m, err := method(t, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", owner, name, err))
			continue
		}
		out = append(out, Member{
			Name:    name,
			Kind:    KindMethod,
			Tag:     tag,
			Type:    m.Type.Out(0),
			owner:   owner,
			errLast: m.Type.NumOut() == 2,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, errors.Join(errs...)
}

func method(t reflect.Type, name string) (reflect.Method, error) {
	m, ok := t.MethodByName(name)
	if !ok && t.Kind() != reflect.Pointer {
		m, ok = reflect.PointerTo(t).MethodByName(name)
	}
	if !ok {
		return reflect.Method{}, errors.New("no such exported method")
	}
	// The receiver is In(0).
	if m.Type.NumIn() != 1 {
		return reflect.Method{}, errors.New("accessor must not take arguments")
	}
	switch m.Type.NumOut() {
	case 1:
	case 2:
		if m.Type.Out(1) != errorType {
			return reflect.Method{}, errors.New("second result must be error")
		}
	default:
		return reflect.Method{}, errors.New("accessor must return one value and an optional error")
	}
	return m, nil
}

// Value reads the member from v, which holds an instance of the type the
// catalog was built for.
//
// Value never panics. Access failures are converted to the string
// "could not get <Type>.<member>: <failure>" for fields and
// "could not invoke <Type>.<member>: <failure>" for methods, and that string
// is returned as if it were the member's value.
//
// Nil pointers, maps, slices, interfaces and empty strings read as nil.
func (m Member) Value(v reflect.Value) (out any) {
	switch m.Kind {
	case KindMethod:
		defer func() {
			if r := recover(); r != nil {
				out = m.failure("invoke", r)
			}
		}()
		return m.invoke(v)
	default:
		defer func() {
			if r := recover(); r != nil {
				out = m.failure("get", r)
			}
		}()
		f, ok := m.field(v)
		if !ok {
			return nil
		}
		return nilable(f)
	}
}

func (m Member) invoke(v reflect.Value) any {
	fn := v.MethodByName(m.Name)
	if !fn.IsValid() && v.Kind() != reflect.Pointer {
		// Pointer receiver on a value: call on an addressable copy.
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		fn = p.MethodByName(m.Name)
	}
	if !fn.IsValid() {
		return m.failure("invoke", "method not found")
	}
	res := fn.Call(nil)
	if m.errLast {
		if err, _ := res[1].Interface().(error); err != nil {
			return m.failure("invoke", err)
		}
	}
	return nilable(res[0])
}

// field returns the accessible field value, dereferencing v.
// ok is false when v or an embedded pointer on the path is nil.
func (m Member) field(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if !v.CanAddr() {
		cp := reflect.New(v.Type()).Elem()
		cp.Set(v)
		v = cp
	}
	f, err := v.FieldByIndexErr(m.index)
	if err != nil {
		return reflect.Value{}, false
	}
	return accessible(f), true
}

// Field returns the addressable, settable field behind ptr, which must be a
// non-nil pointer to the struct. Embedded nil pointers on the path are
// allocated.
func (m Member) Field(ptr reflect.Value) (reflect.Value, error) {
	if m.Kind != KindField {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrNotSettable, m.owner, m.Name)
	}
	for ptr.Kind() == reflect.Pointer && ptr.Elem().Kind() == reflect.Pointer {
		ptr = ptr.Elem()
	}
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s: need non-nil pointer", ErrNotSettable, m.owner, m.Name)
	}
	v := ptr.Elem()
	for i, x := range m.index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				accessible(v).Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return accessible(v), nil
}

// Set stores x into the field behind ptr. x must be assignable to the
// member type.
func (m Member) Set(ptr reflect.Value, x reflect.Value) error {
	f, err := m.Field(ptr)
	if err != nil {
		return err
	}
	if !x.Type().AssignableTo(f.Type()) {
		return fmt.Errorf("%w: %s.%s: %s is not assignable to %s", ErrNotSettable, m.owner, m.Name, x.Type(), f.Type())
	}
	f.Set(x)
	return nil
}

func (m Member) failure(verb string, cause any) string {
	return fmt.Sprintf("could not %s %s.%s: %v", verb, m.owner, m.Name, cause)
}

// accessible lifts the read-only flag of unexported fields.
func accessible(f reflect.Value) reflect.Value {
	if f.CanInterface() && f.CanSet() {
		return f
	}
	if !f.CanAddr() {
		return f
	}
	return reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
}

func nilable(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	case reflect.String:
		if v.Len() == 0 {
			return nil
		}
	}
	return v.Interface()
}

func lowerCamel(s string) string {
	rs := []rune(s)
	n := 0
	for n < len(rs) && unicode.IsUpper(rs[n]) {
		n++
	}
	switch {
	case n == 0:
		return s
	case n == 1 || n == len(rs):
		// "Balance" -> "balance", "ID" -> "id"
	default:
		// "URLPath": keep the last upper-case rune, it starts the next word.
		n--
	}
	for i := 0; i < n; i++ {
		rs[i] = unicode.ToLower(rs[i])
	}
	return string(rs)
}
