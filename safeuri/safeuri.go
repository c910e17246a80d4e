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

package safeuri

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Invalid is the placeholder URI used when neither the source string nor its
// "urn:" rewrite is a syntactically valid URI reference.
const Invalid = "urn:invalid-uri-syntax"

// ErrSyntax is returned by Valid when a string contains characters that are
// not permitted anywhere in an RFC 3986 URI reference.
var ErrSyntax = errors.New("safeuri: invalid uri syntax")

// Build converts s into a syntactically valid URI reference. It never fails.
//
// The conversion is a bounded fallback chain:
//
//  1. s itself, if it is a valid URI reference;
//  2. "urn:" + s with spaces replaced by '+', if that is valid;
//  3. Invalid with the source string and the parse failure attached as
//     percent-encoded query parameters.
func Build(s string) string {
	err := Valid(s)
	if err == nil {
		return s
	}
	if urn := "urn:" + strings.ReplaceAll(s, " ", "+"); Valid(urn) == nil {
		return urn
	}
	q := url.Values{}
	q.Set("source", s)
	q.Set("message", err.Error())
	return Invalid + "?" + q.Encode()
}

// Valid reports whether s is a syntactically valid URI reference.
//
// net/url alone is lenient (it accepts spaces and most printable bytes in
// paths), so every byte is first checked against the RFC 3986 character set
// and every '%' must start a complete escape.
func Valid(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' {
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return fmt.Errorf("%w: malformed escape at index %d", ErrSyntax, i)
			}
			i += 2
			continue
		}
		if !allowed(c) {
			return fmt.Errorf("%w: illegal character %q at index %d", ErrSyntax, c, i)
		}
	}
	if _, err := url.Parse(s); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return nil
}

// allowed reports whether c is an unreserved or reserved URI character.
func allowed(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~:/?#[]@!$&'()*+,;=", c) >= 0
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
