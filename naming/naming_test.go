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
	"errors"
	"io/fs"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/dproblem/typeid"
)

type OutOfCreditException struct{}

func (OutOfCreditException) Error() string { return "out of credit" }

type HTTPClientError struct{}

type Exception struct{}

type Generic[T any] struct{ v T }

func TestWords(t *testing.T) {
	tests := map[string][]string{
		"OutOfCreditException": {"Out", "Of", "Credit", "Exception"},
		"HTTPClientError":      {"HTTP", "Client", "Error"},
		"errorString":          {"error", "String"},
		"Status404Error":       {"Status404", "Error"},
		"out_of_credit":        {"out", "of", "credit"},
		"X":                    {"X"},
		"":                     nil,
	}
	for in, want := range tests {
		assert.Equal(t, want, Words(in), "Words(%q)", in)
	}
}

func TestIdentifierAndTitle(t *testing.T) {
	tests := []struct {
		typ       reflect.Type
		wantID    typeid.ID
		wantTitle string
	}{
		{reflect.TypeOf(OutOfCreditException{}), "urn:problem-type:out-of-credit", "Out Of Credit"},
		{reflect.TypeOf(&OutOfCreditException{}), "urn:problem-type:out-of-credit", "Out Of Credit"},
		{reflect.TypeOf(HTTPClientError{}), "urn:problem-type:http-client", "HTTP Client"},
		{reflect.TypeOf(Exception{}), "urn:problem-type:exception", "Exception"},
		{reflect.TypeOf(&fs.PathError{}), "urn:problem-type:path", "Path"},
		{reflect.TypeOf(Generic[int]{}), "urn:problem-type:generic", "Generic"},
		{reflect.TypeOf(errors.New("x")), "urn:problem-type:error-string", "error String"},
		{reflect.TypeOf(struct{}{}), typeid.Empty, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantID, Identifier(tt.typ), "Identifier(%v)", tt.typ)
		assert.Equal(t, tt.wantTitle, Title(tt.typ), "Title(%v)", tt.typ)
	}
}

func TestDeriver_CustomSuffixes(t *testing.T) {
	d := Deriver{Suffixes: []string{"Exception"}}
	assert.Equal(t, typeid.ID("urn:problem-type:http-client-error"), d.Identifier(reflect.TypeOf(HTTPClientError{})))
	assert.Equal(t, typeid.ID("urn:problem-type:out-of-credit"), d.Identifier(reflect.TypeOf(OutOfCreditException{})))
}

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "io/fs.PathError", QualifiedName(reflect.TypeOf(&fs.PathError{})))
	assert.Equal(t, "dirpx.dev/dproblem/naming.OutOfCreditException", QualifiedName(reflect.TypeOf(OutOfCreditException{})))
	assert.Equal(t, "struct {}", QualifiedName(reflect.TypeOf(struct{}{})))
	assert.Equal(t, "", QualifiedName(nil))
}
