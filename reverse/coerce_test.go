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
	"math"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestCoerce(t *testing.T) {
	u, _ := url.Parse("https://example.com/a")
	seven := 7

	tests := []struct {
		name   string
		in     any
		target reflect.Type
		want   any
	}{
		{"string", "abc", reflect.TypeFor[string](), "abc"},
		{"number to string", int64(5), reflect.TypeFor[string](), "5"},
		{"bool from text", "TRUE", reflect.TypeFor[bool](), true},
		{"int from text", " 1234 ", reflect.TypeFor[int](), 1234},
		{"int from float", float64(42), reflect.TypeFor[int32](), int32(42)},
		{"int from number", int64(-3), reflect.TypeFor[int8](), int8(-3)},
		{"int64 lower bound", float64(-0x1p63), reflect.TypeFor[int64](), int64(math.MinInt64)},
		{"uint64 from large float", float64(0x1p63), reflect.TypeFor[uint64](), uint64(1 << 63)},
		{"uint from text", "9", reflect.TypeFor[uint16](), uint16(9)},
		{"float from text", "2.5", reflect.TypeFor[float64](), 2.5},
		{"float from int", int64(2), reflect.TypeFor[float32](), float32(2)},
		{"duration", "1500", reflect.TypeFor[time.Duration](), time.Duration(1500)},
		{"url value", "https://example.com/a", reflect.TypeFor[url.URL](), *u},
		{"url pointer", "https://example.com/a", reflect.TypeFor[*url.URL](), u},
		{"int pointer", "7", reflect.TypeFor[*int](), &seven},
		{"nil", nil, reflect.TypeFor[*int](), (*int)(nil)},
		{"slice", []any{"a", "b"}, reflect.TypeFor[[]string](), []string{"a", "b"}},
		{"struct", map[string]any{"x": int64(1), "y": int64(2)}, reflect.TypeFor[point](), point{1, 2}},
		{"assignable", []string{"a"}, reflect.TypeFor[[]string](), []string{"a"}},
		{"interface", int64(1), reflect.TypeFor[any](), int64(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.in, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())
		})
	}
}

func TestCoerce_Failures(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		target reflect.Type
	}{
		{"bool", "maybe", reflect.TypeFor[bool]()},
		{"bool from number", int64(1), reflect.TypeFor[bool]()},
		{"int", "12x", reflect.TypeFor[int]()},
		{"int fraction", 1.5, reflect.TypeFor[int]()},
		{"int8 overflow", int64(300), reflect.TypeFor[int8]()},
		{"uint negative", int64(-1), reflect.TypeFor[uint]()},
		{"float", "pi", reflect.TypeFor[float64]()},
		{"url", "http://[::1", reflect.TypeFor[*url.URL]()},
		{"struct", "not an object", reflect.TypeFor[point]()},
		{"int from bool", true, reflect.TypeFor[int]()},
		{"int64 at 2^63", float64(0x1p63), reflect.TypeFor[int64]()},
		{"int64 below -2^63", float64(-0x1p64), reflect.TypeFor[int64]()},
		{"uint64 at 2^64", float64(0x1p64), reflect.TypeFor[uint64]()},
		{"int64 infinity", math.Inf(1), reflect.TypeFor[int64]()},
		{"int NaN", math.NaN(), reflect.TypeFor[int]()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.in, tt.target)
			assert.ErrorIs(t, err, ErrCoercion)
		})
	}
}
