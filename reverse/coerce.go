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
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ErrCoercion is wrapped by every failure to convert a received value into
// the type of the member it is injected into.
var ErrCoercion = errors.New("dproblem: cannot coerce value")

var urlType = reflect.TypeFor[url.URL]()

// Coerce converts x to the target type.
//
// Supported conversions: strings, url.URL (parsed from a string), signed and
// unsigned integers, booleans and floats, from their native kinds or from
// text, and pointers to any of them. Other targets are filled by encoding x
// as JSON and decoding it into the target. A nil x yields the zero value.
func Coerce(x any, target reflect.Type) (reflect.Value, error) {
	if x == nil {
		return reflect.Zero(target), nil
	}
	v := reflect.ValueOf(x)
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if target.Kind() == reflect.Pointer {
		elem, err := Coerce(x, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(target.Elem())
		p.Elem().Set(elem)
		return p, nil
	}
	if target == urlType {
		u, err := url.Parse(fmt.Sprint(x))
		if err != nil {
			return reflect.Value{}, fail(x, target, err)
		}
		return reflect.ValueOf(*u), nil
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		out.SetString(fmt.Sprint(x))
		return out, nil

	case reflect.Bool:
		switch b := x.(type) {
		case bool:
			out.SetBool(b)
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return reflect.Value{}, fail(x, target, err)
			}
			out.SetBool(parsed)
		default:
			return reflect.Value{}, fail(x, target, nil)
		}
		return out, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt(x)
		if err != nil {
			return reflect.Value{}, fail(x, target, err)
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, fail(x, target, errors.New("overflow"))
		}
		out.SetInt(n)
		return out, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := toUint(x)
		if err != nil {
			return reflect.Value{}, fail(x, target, err)
		}
		if out.OverflowUint(n) {
			return reflect.Value{}, fail(x, target, errors.New("overflow"))
		}
		out.SetUint(n)
		return out, nil

	case reflect.Float32, reflect.Float64:
		f, err := toFloat(x)
		if err != nil {
			return reflect.Value{}, fail(x, target, err)
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, fail(x, target, errors.New("overflow"))
		}
		out.SetFloat(f)
		return out, nil
	}

	// Structured values (slices, maps, structs): round-trip through JSON.
	raw, err := json.Marshal(x)
	if err != nil {
		return reflect.Value{}, fail(x, target, err)
	}
	p := reflect.New(target)
	if err := json.Unmarshal(raw, p.Interface()); err != nil {
		return reflect.Value{}, fail(x, target, err)
	}
	return p.Elem(), nil
}

func fail(x any, target reflect.Type, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %v (%T) into %s", ErrCoercion, x, x, target)
	}
	return fmt.Errorf("%w: %v (%T) into %s: %v", ErrCoercion, x, x, target, cause)
}

func toInt(x any) (int64, error) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > math.MaxInt64 {
			return 0, errors.New("overflow")
		}
		return int64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f >= 0x1p63 || f < -0x1p63 {
			return 0, errors.New("not an integer")
		}
		return int64(f), nil
	case reflect.String:
		return strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
	}
	return 0, errors.New("unsupported kind " + v.Kind().String())
}

func toUint(x any) (uint64, error) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Int() < 0 {
			return 0, errors.New("negative")
		}
		return uint64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < 0 || f >= 0x1p64 {
			return 0, errors.New("not an unsigned integer")
		}
		return uint64(f), nil
	case reflect.String:
		return strconv.ParseUint(strings.TrimSpace(v.String()), 10, 64)
	}
	return 0, errors.New("unsupported kind " + v.Kind().String())
}

func toFloat(x any) (float64, error) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.String:
		return strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	}
	return 0, errors.New("unsupported kind " + v.Kind().String())
}
