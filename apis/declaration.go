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

// Declaration is the type-level (or namespace-level) problem metadata.
//
// Zero values mean "not declared" so that declarations can be layered:
// an explicit registration overrides a Declarer, and a type-level logging
// policy overrides a namespace-level one field by field.
type Declaration struct {
	// Type is the explicit problem type identifier, used verbatim.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Title is the explicit problem title, used verbatim.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Status is the declared HTTP status. 0 means "not declared".
	Status int `json:"status,omitempty" yaml:"status,omitempty"`

	// Logging is the declared logging policy.
	Logging Logging `json:"logging,omitempty" yaml:"logging,omitempty"`

	// Accessors declares zero-argument methods that contribute to the body.
	// Keys are method names, values use the same grammar as the `problem`
	// struct tag: "detail", "instance", "extension" or "extension,<name>".
	Accessors map[string]string `json:"accessors,omitempty" yaml:"accessors,omitempty"`
}

// IsZero reports whether nothing is declared.
func (d Declaration) IsZero() bool {
	return d.Type == "" && d.Title == "" && d.Status == 0 &&
		d.Logging == (Logging{}) && len(d.Accessors) == 0
}

// Overlay returns d with every declared (non-zero) field of over applied on
// top. Accessor maps are merged, with over taking precedence per key.
func (d Declaration) Overlay(over Declaration) Declaration {
	out := d
	if over.Type != "" {
		out.Type = over.Type
	}
	if over.Title != "" {
		out.Title = over.Title
	}
	if over.Status != 0 {
		out.Status = over.Status
	}
	if over.Logging.Category != "" {
		out.Logging.Category = over.Logging.Category
	}
	if over.Logging.Level != LevelAuto {
		out.Logging.Level = over.Logging.Level
	}
	if len(over.Accessors) > 0 {
		m := make(map[string]string, len(d.Accessors)+len(over.Accessors))
		for k, v := range d.Accessors {
			m[k] = v
		}
		for k, v := range over.Accessors {
			m[k] = v
		}
		out.Accessors = m
	}
	return out
}
