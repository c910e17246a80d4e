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

package naming

import (
	"reflect"
	"strings"
	"unicode"

	"dirpx.dev/dproblem/typeid"
)

// Deriver computes problem type identifiers and titles from Go type names.
//
// A Deriver is a plain value and safe for concurrent use.
type Deriver struct {
	// Suffixes lists trailing words that are dropped from a type name before
	// it is turned into an identifier or title. A suffix is only dropped when
	// it is a standalone word and not the only word.
	Suffixes []string
}

// Default strips the Java-style "Exception" word as well as Go's idiomatic
// "Error" word.
var Default = Deriver{Suffixes: []string{"Exception", "Error"}}

// Identifier derives "urn:problem-type:<kebab words>" for t using Default.
func Identifier(t reflect.Type) typeid.ID { return Default.Identifier(t) }

// Title derives a space-joined title for t using Default.
func Title(t reflect.Type) string { return Default.Title(t) }

// Identifier derives the problem type identifier for t. It returns
// typeid.Empty for unnamed types.
func (d Deriver) Identifier(t reflect.Type) typeid.ID {
	return typeid.FromWords(d.words(t))
}

// Title derives the human title for t, e.g. "Out Of Credit" for
// OutOfCreditException. It returns "" for unnamed types.
func (d Deriver) Title(t reflect.Type) string {
	return strings.Join(d.words(t), " ")
}

func (d Deriver) words(t reflect.Type) []string {
	words := Words(BareName(t))
	if n := len(words); n > 1 {
		for _, s := range d.Suffixes {
			if words[n-1] == s {
				return words[:n-1]
			}
		}
	}
	return words
}

// BareName returns the unqualified name of t with pointers dereferenced and
// generic type arguments removed.
func BareName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// QualifiedName returns "<pkg path>.<name>" for named types, or t.String()
// for unnamed ones. Pointers are dereferenced.
func QualifiedName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Words splits name on uppercase boundaries. A run of uppercase letters is
// kept together as one acronym word, and underscores separate words:
//
//	"OutOfCreditException" -> [Out Of Credit Exception]
//	"HTTPClientError"      -> [HTTP Client Error]
//	"errorString"          -> [error String]
func Words(name string) []string {
	rs := []rune(name)
	var words []string
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(rs[start:end]))
		}
	}
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '_' {
			flush(i)
			start = i + 1
			continue
		}
		if i == start || !unicode.IsUpper(r) {
			continue
		}
		prev := rs[i-1]
		nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if !unicode.IsUpper(prev) || nextLower {
			flush(i)
			start = i
		}
	}
	flush(len(rs))
	return words
}
