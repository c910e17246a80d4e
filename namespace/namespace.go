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

package namespace

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Namespace is the canonical, validated representation of a Go package path
// prefix used for namespace-level declarations.
//
// Namespaces are slash-separated, like import paths. A declaration made for
// "example.com/bank" applies to every type declared in "example.com/bank" and
// in its sub-packages, unless a longer namespace declares otherwise. The
// segment "*" matches exactly one path segment:
//
//   - "example.com/bank"
//   - "example.com/bank/internal/ledger"
//   - "example.com/*/api"
//   - "net/http"
type Namespace string

// MinLength and MaxLength define the allowed length range for a non-empty
// namespace.
const (
	MinLength = 1
	MaxLength = 256
)

const (
	// namespaceFmt is the canonical regular expression used to validate
	// namespaces: one or more slash-separated segments, each either "*" or a
	// run of import-path characters.
	//
	// Examples that match:
	//
	//	"net/http"
	//	"example.com/bank"
	//	"github.com/gin-gonic/gin"
	//	"example.com/*/api"
	//
	// Examples that DO NOT match:
	//
	//	"example.com//bank" (empty segment)
	//	"example com/bank"  (space)
	//	"a/b*"              (wildcard must be a whole segment)
	namespaceFmt = `^([A-Za-z0-9._~+-]+|\*)(/([A-Za-z0-9._~+-]+|\*))*$`
)

var namespaceRe = regexp.MustCompile(namespaceFmt)

var (
	// ErrNamespaceInvalidFormat is returned when a namespace does not conform
	// to the expected format.
	ErrNamespaceInvalidFormat = errors.New("dproblem: invalid namespace format")
	// ErrNamespaceInvalidLength is returned when a namespace is too long.
	ErrNamespaceInvalidLength = errors.New("dproblem: invalid namespace length")
	// ErrNamespaceWildcardOnly is returned for namespaces made only of "*"
	// segments; they would match everything at a given depth.
	ErrNamespaceWildcardOnly = errors.New("dproblem: namespace cannot consist of '*' only")
)

var (
	_ encoding.TextMarshaler   = (*Namespace)(nil)
	_ encoding.TextUnmarshaler = (*Namespace)(nil)
)

// Root is the empty namespace. Declarations made for Root are process-wide
// defaults that apply to every type.
var Root Namespace = ""

// Normalize trims surrounding whitespace and slashes. It does NOT guarantee
// validity; callers should still call Parse/Validate.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "/")
}

// Parse normalizes and validates s. The empty string yields Root.
func Parse(s string) (Namespace, error) {
	s = Normalize(s)
	if s == "" {
		return Root, nil
	}
	if err := validate(s); err != nil {
		return Root, err
	}
	return Namespace(s), nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Namespace {
	ns, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ns
}

// Validate checks whether ns is in canonical form. Root is valid.
func Validate(ns Namespace) error {
	if ns == Root {
		return nil
	}
	return validate(string(ns))
}

// Segments returns the slash-separated segments of ns. Root has none.
func (ns Namespace) Segments() []string {
	if ns == Root {
		return nil
	}
	return strings.Split(string(ns), "/")
}

// String returns the namespace as a plain string.
func (ns Namespace) String() string {
	return string(ns)
}

// MarshalText implements encoding.TextMarshaler.
func (ns Namespace) MarshalText() ([]byte, error) {
	if err := Validate(ns); err != nil {
		return nil, err
	}
	return []byte(ns), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ns *Namespace) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*ns = parsed
	return nil
}

// IsPlatform reports whether pkgPath belongs to the Go standard library or
// the runtime: its first element has no dot and it is not a main package.
func IsPlatform(pkgPath string) bool {
	if pkgPath == "" {
		return true
	}
	if pkgPath == "main" || pkgPath == "command-line-arguments" {
		return false
	}
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}

func validate(s string) error {
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrNamespaceInvalidLength
	}
	if !namespaceRe.MatchString(s) {
		return ErrNamespaceInvalidFormat
	}
	for _, seg := range strings.Split(s, "/") {
		if seg != "*" {
			return nil
		}
	}
	return ErrNamespaceWildcardOnly
}
