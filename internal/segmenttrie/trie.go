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

package segmenttrie

import (
	"errors"
	"strings"
)

// Trie is a segment-aware prefix index for slash-separated keys (Go package
// paths). Each node represents one segment; the wildcard "*" matches exactly
// one segment. The trie supports longest-prefix-match (LPM) with segment
// boundaries, so a more specific namespace wins over a shorter one.
//
// A Trie is not safe for concurrent Insert; it is safe for concurrent Match
// once fully built.
type Trie[T any] struct {
	// children contains next segments, including "*" for a single-segment wildcard.
	children map[string]*Trie[T]
	// hasVal marks that this node carries a value for the prefix ending here.
	hasVal bool
	val    T
	// pattern is the prefix as inserted, set only when hasVal=true. It is
	// reported by MatchWithPattern so callers can explain a match.
	pattern string
}

var (
	// ErrInvalidPrefix is returned when inserting a prefix that is empty,
	// has empty segments, contains invalid characters, or consists only of wildcards.
	ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")
)

// New creates an empty trie ready for inserts.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert adds a slash-separated prefix to the trie and associates it with val.
//
// Examples:
//
//	"example.com/bank"
//	"github.com/gin-gonic/gin"
//	"example.com/*/api"
//
// The wildcard "*" matches exactly one segment.
// A prefix made only of "*" segments is rejected, because it is too generic.
// Inserting the same prefix twice replaces the value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil {
		return ErrInvalidPrefix
	}
	segs, ok := splitAndValidate(prefix, true /* allowWildcard */)
	if !ok || len(segs) == 0 {
		return ErrInvalidPrefix
	}

	allWild := true
	for _, s := range segs {
		if s != "*" {
			allWild = false
			break
		}
	}
	if allWild {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		child, exists := cur.children[s]
		if !exists {
			child = New[T]()
			cur.children[s] = child
		}
		cur = child
	}
	cur.hasVal = true
	cur.val = val
	cur.pattern = prefix
	return nil
}

// Match finds the best (deepest) prefix match for a full package path.
// Both exact segment matches and "*" wildcard branches are explored.
// It returns (value, true) on success.
func (t *Trie[T]) Match(path string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(path)
	return v, ok
}

// MatchWithPattern returns the value and the stored pattern of the deepest
// matching prefix.
func (t *Trie[T]) MatchWithPattern(path string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best := t.match(path)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

func (t *Trie[T]) match(path string) *Trie[T] {
	bestDepth := -1
	var best *Trie[T]

	// dfs scans the next segment starting at byte offset 'off', with 'depth'
	// segments already consumed.
	var dfs func(n *Trie[T], off, depth int)
	dfs = func(n *Trie[T], off, depth int) {
		if n.hasVal && depth > bestDepth {
			bestDepth = depth
			best = n
		}
		if off >= len(path) {
			return
		}
		i := off
		for i < len(path) && path[i] != '/' {
			if !validByte(path[i]) {
				return
			}
			i++
		}
		if i == off {
			return // empty segment
		}
		seg := path[off:i] // substring; no heap alloc
		nextOff := i
		if nextOff < len(path) {
			nextOff++ // skip '/'
		}

		if next, ok := n.children[seg]; ok {
			dfs(next, nextOff, depth+1)
		}
		if next, ok := n.children["*"]; ok {
			dfs(next, nextOff, depth+1)
		}
	}

	dfs(t, 0, 0)
	return best
}

// splitAndValidate splits a slash-separated string into segments and
// validates each one. When allowWildcard=true, a segment that is exactly "*"
// is accepted.
func splitAndValidate(s string, allowWildcard bool) ([]string, bool) {
	if s == "" {
		return []string{}, true
	}
	segs := strings.Split(s, "/")
	for _, seg := range segs {
		if !validSegment(seg, allowWildcard) {
			return nil, false
		}
	}
	return segs, true
}

// validSegment reports whether seg is a valid trie segment: non-empty, "*"
// when wildcards are allowed, or a run of import-path characters
// [A-Za-z0-9._~+-].
func validSegment(seg string, allowWildcard bool) bool {
	if seg == "" {
		return false
	}
	if allowWildcard && seg == "*" {
		return true
	}
	for i := 0; i < len(seg); i++ {
		if !validByte(seg[i]) {
			return false
		}
	}
	return true
}

func validByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '.' || c == '_' || c == '~' || c == '+' || c == '-'
}
