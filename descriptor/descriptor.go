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

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/member"
	"dirpx.dev/dproblem/naming"
	"dirpx.dev/dproblem/safeuri"
)

// Descriptor is the per-type problem metadata. It is computed once per
// reflect.Type by Table.Of and must be treated as immutable.
type Descriptor struct {
	// Type is the dynamic error type, e.g. *bank.OutOfCreditError.
	Type reflect.Type
	// Name is the qualified type name, e.g. "example.com/bank.OutOfCreditError".
	Name string
	// PkgPath is the package the type is declared in ("" for unnamed types).
	PkgPath string

	// Declared is the merged type-level declaration: Declarer first, then
	// the explicit Table.Declare call on top.
	Declared apis.Declaration
	// Namespace is the namespace-level declaration matched for PkgPath.
	Namespace apis.Declaration
	// NamespacePattern is the namespace pattern that matched ("" for Root).
	NamespacePattern string
	// Logging is the resolved logging policy (AUTO not yet resolved).
	Logging apis.Logging

	// Generic marks unnamed types and generic wrappers such as the ones
	// returned by errors.New and fmt.Errorf, which carry no identity of
	// their own.
	Generic bool

	// Members is the full catalog, sorted by name; the role slices below are
	// views over it in the same order.
	Members    []member.Member
	Details    []member.Member
	Instances  []member.Member
	Extensions []member.Member
	Inline     []member.Member

	// Err reports invalid tags or accessor declarations. The invalid members
	// are left out of the catalog.
	Err error
}

// Identifier returns the declared problem type identifier made safe by
// safeuri.Build, or the one derived from the type name.
func (d *Descriptor) Identifier(deriver naming.Deriver) string {
	if d.Declared.Type != "" {
		return safeuri.Build(d.Declared.Type)
	}
	return string(deriver.Identifier(d.Type))
}

// Title returns the declared title, or the one derived from the type name.
func (d *Descriptor) Title(deriver naming.Deriver) string {
	if d.Declared.Title != "" {
		return d.Declared.Title
	}
	return deriver.Title(d.Type)
}

// HasInstance reports whether the type declares at least one Instance member.
func (d *Descriptor) HasInstance() bool { return len(d.Instances) > 0 }

func (d *Descriptor) split() {
	for _, m := range d.Members {
		switch m.Tag.Role {
		case member.RoleDetail:
			d.Details = append(d.Details, m)
		case member.RoleInstance:
			d.Instances = append(d.Instances, m)
		case member.RoleExtension:
			d.Extensions = append(d.Extensions, m)
		case member.RoleExtensions:
			d.Inline = append(d.Inline, m)
		}
	}
}

// declarerOf evaluates apis.Declarer on a zero instance of t.
func declarerOf(t reflect.Type) (decl apis.Declaration, err error) {
	var v any
	if t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem()).Interface()
	} else {
		v = reflect.Zero(t).Interface()
	}
	d, ok := v.(apis.Declarer)
	if !ok {
		return apis.Declaration{}, nil
	}
	defer func() {
		if r := recover(); r != nil {
			decl = apis.Declaration{}
			err = fmt.Errorf("%w: %s.ProblemDeclaration: %v", ErrDeclarer, t, r)
		}
	}()
	return d.ProblemDeclaration(), nil
}

// ErrDeclarer is reported in Descriptor.Err when ProblemDeclaration panics.
var ErrDeclarer = errors.New("dproblem: declarer failed")

func pkgPath(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath()
}
