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

package typeid

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/dproblem/safeuri"
)

// ID is the canonical, validated representation of a problem type
// identifier.
//
// It is defined as a separate type (not just string) so that the registry and
// the builders can tell a validated identifier apart from raw document input.
// Any syntactically valid URI reference is accepted; identifiers derived from
// Go type names have the form Prefix + kebab-case words.
type ID string

// Prefix is the scheme prefix of identifiers derived from type names.
const Prefix = "urn:problem-type:"

// MaxLength bounds identifiers accepted by Parse. Derived identifiers are far
// shorter; the bound keeps hostile documents from growing registry caches.
const MaxLength = 2048

const (
	// kebabFmt validates the name part of a derived identifier.
	//
	//	^[a-z0-9]+ - first word: lowercase ASCII letters or digits;
	//	(-[a-z0-9]+)* - further words, each introduced by a single dash;
	//	$ - end of string.
	kebabFmt = `^[a-z0-9]+(-[a-z0-9]+)*$`
)

var kebabRe = regexp.MustCompile(kebabFmt)

var (
	// ErrInvalid is returned when a value cannot be parsed or validated as a
	// problem type identifier.
	ErrInvalid = errors.New("dproblem: invalid problem type identifier")
)

var (
	_ encoding.TextMarshaler   = (*ID)(nil)
	_ encoding.TextUnmarshaler = (*ID)(nil)
)

// Empty is the zero-value identifier. It means "not declared".
var Empty ID = ""

// Parse normalizes and validates s.
func Parse(s string) (ID, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	return ID(s), nil
}

// MustParse is the panic-on-error variant of Parse. It is useful for
// package-level identifier variables.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Normalize trims surrounding whitespace. Identifiers are case sensitive
// URIs, so nothing else is rewritten.
func Normalize(s string) string {
	return strings.TrimSpace(s)
}

// Validate checks whether id is a valid, non-empty identifier.
func Validate(id ID) error {
	return validate(string(id))
}

// FromWords builds a derived identifier: Prefix followed by the lowercased
// words joined with '-'. It returns Empty when no words are given.
func FromWords(words []string) ID {
	k := Kebab(words)
	if k == "" {
		return Empty
	}
	return ID(Prefix + k)
}

// Kebab lowercases words and joins them with '-'. Characters outside
// [a-z0-9] are dropped from each word; words that end up empty are skipped.
func Kebab(words []string) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		var b strings.Builder
		for _, r := range strings.ToLower(w) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			parts = append(parts, b.String())
		}
	}
	return strings.Join(parts, "-")
}

// PascalFromKebab turns "out-of-credit" into "OutOfCredit". It returns ""
// when s is not a valid kebab-case name.
func PascalFromKebab(s string) string {
	if !kebabRe.MatchString(s) {
		return ""
	}
	var b strings.Builder
	for _, w := range strings.Split(s, "-") {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}

// Name returns the kebab-case name of an identifier that starts with prefix,
// e.g. "out-of-credit" for "urn:problem-type:out-of-credit".
func (id ID) Name(prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(string(id), prefix)
	if !ok || !kebabRe.MatchString(rest) {
		return "", false
	}
	return rest, true
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	if err := Validate(id); err != nil {
		return nil, err
	}
	return []byte(id), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func validate(s string) error {
	if s == "" || len(s) > MaxLength {
		return ErrInvalid
	}
	if safeuri.Valid(s) != nil {
		return ErrInvalid
	}
	return nil
}
