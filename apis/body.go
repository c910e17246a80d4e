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

package apis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Standard member names of a problem details body.
const (
	KeyType     = "type"
	KeyTitle    = "title"
	KeyStatus   = "status"
	KeyDetail   = "detail"
	KeyInstance = "instance"
)

// ErrInvalidBody is returned when a decoded document cannot be turned into
// a Body, e.g. because "status" is not an integer.
var ErrInvalidBody = errors.New("dproblem: invalid problem details body")

// IsReserved reports whether name is one of the standard body members and
// therefore cannot be used as an extension name.
func IsReserved(name string) bool {
	switch name {
	case KeyType, KeyTitle, KeyStatus, KeyDetail, KeyInstance:
		return true
	}
	return false
}

// Body is the ordered, transport-neutral problem details document.
//
// Key order is fixed: type, title, status, detail (only when non-empty),
// instance (only when non-empty), then extension keys in lexicographic
// order. Extension keys that collide with standard members are never
// rendered.
type Body struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// Field is one key/value pair of a Body in render order.
type Field struct {
	Key   string
	Value any
}

// Fields returns the body members in render order.
func (b Body) Fields() []Field {
	out := make([]Field, 0, 5+len(b.Extensions))
	out = append(out,
		Field{KeyType, b.Type},
		Field{KeyTitle, b.Title},
		Field{KeyStatus, b.Status},
	)
	if b.Detail != "" {
		out = append(out, Field{KeyDetail, b.Detail})
	}
	if b.Instance != "" {
		out = append(out, Field{KeyInstance, b.Instance})
	}
	for _, k := range b.ExtensionKeys() {
		out = append(out, Field{k, b.Extensions[k]})
	}
	return out
}

// ExtensionKeys returns the renderable extension keys, sorted.
func (b Body) ExtensionKeys() []string {
	keys := make([]string, 0, len(b.Extensions))
	for k := range b.Extensions {
		if IsReserved(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns the body as a plain map (order is lost).
func (b Body) Map() map[string]any {
	fields := b.Fields()
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

// MarshalJSON renders the body as a JSON object in render order.
func (b Body) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range b.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(f.Key)
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("dproblem: marshal %q: %w", f.Key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object through BodyFromMap.
func (b *Body) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	parsed, err := BodyFromMap(m)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalYAML renders the body as an ordered YAML mapping.
func (b Body) MarshalYAML() (interface{}, error) {
	fields := b.Fields()
	ms := make(yaml.MapSlice, 0, len(fields))
	for _, f := range fields {
		ms = append(ms, yaml.MapItem{Key: f.Key, Value: f.Value})
	}
	return ms, nil
}

// UnmarshalYAML decodes a YAML mapping through BodyFromMap.
func (b *Body) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := BodyFromMap(raw)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// BodyFromMap builds a Body from a decoded document. Standard members are
// lifted into their fields; every other key becomes an extension. JSON
// numbers (json.Number) are normalized to int64 or float64.
//
// "status" may be any integral number or a numeric string; anything else
// yields ErrInvalidBody.
func BodyFromMap(m map[string]any) (Body, error) {
	var b Body
	for k, v := range m {
		v = normalize(v)
		switch k {
		case KeyType:
			b.Type = stringOf(v)
		case KeyTitle:
			b.Title = stringOf(v)
		case KeyDetail:
			b.Detail = stringOf(v)
		case KeyInstance:
			b.Instance = stringOf(v)
		case KeyStatus:
			st, err := statusOf(v)
			if err != nil {
				return Body{}, err
			}
			b.Status = st
		default:
			if b.Extensions == nil {
				b.Extensions = make(map[string]any, len(m))
			}
			b.Extensions[k] = v
		}
	}
	return b, nil
}

func stringOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func statusOf(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: status %v is not an integer", ErrInvalidBody, x)
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%w: status %q is not an integer", ErrInvalidBody, x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: status has type %T", ErrInvalidBody, v)
	}
}

// normalize converts decoder-specific scalar representations into plain Go
// values, recursively.
func normalize(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case int:
		return int64(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = normalize(x[i])
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	}
	return v
}
