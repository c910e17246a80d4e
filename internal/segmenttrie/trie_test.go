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

import "testing"

func TestInsertAndMatch_Simple(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("example.com/bank", 1))
	must(t, tr.Insert("net/http", 2))
	must(t, tr.Insert("github.com/gin-gonic/gin", 3))

	if v, ok, p := tr.MatchWithPattern("example.com/bank/ledger"); !ok || v != 1 || p != "example.com/bank" {
		t.Fatalf("match example.com/bank/ledger => ok=%v v=%v p=%q; want ok=true v=1 p=example.com/bank", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("net/http"); !ok || v != 2 || p != "net/http" {
		t.Fatalf("match net/http => ok=%v v=%v p=%q; want ok=true v=2 p=net/http", ok, v, p)
	}
	if v, ok := tr.Match("github.com/gin-gonic/gin/binding"); !ok || v != 3 {
		t.Fatalf("match gin/binding => ok=%v v=%v; want 3", ok, v)
	}
	if _, ok := tr.Match("net"); ok {
		t.Fatalf("a shorter path must not match a longer prefix")
	}
}

func TestSegmentBoundary(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("example.com/bank", 1))
	if _, ok := tr.Match("example.com/banking"); ok {
		t.Fatalf("unexpected match across segment boundary")
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("example.com/*/api", 7))
	must(t, tr.Insert("example.com/bank/api", 1)) // exact should beat wildcard at same depth

	if v, ok, p := tr.MatchWithPattern("example.com/bank/api"); !ok || v != 1 || p != "example.com/bank/api" {
		t.Fatalf("exact must win over wildcard, got ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("example.com/shop/api/v2"); !ok || v != 7 || p != "example.com/*/api" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	if _, ok, _ := tr.MatchWithPattern("example.com/api"); ok {
		t.Fatalf("wildcard should not match zero segments")
	}
}

func TestLPM_PrefersDeeperEvenIfExactBranchExists(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a/*/c", 7))
	must(t, tr.Insert("a/b", 1))

	if v, ok, p := tr.MatchWithPattern("a/b/c"); !ok || v != 7 || p != "a/*/c" {
		t.Fatalf("LPM must choose wildcard path: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestInsert_ReplacesValue(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("a/b", 1))
	must(t, tr.Insert("a/b", 2))
	if v, _ := tr.Match("a/b"); v != 2 {
		t.Fatalf("second insert must replace value, got %d", v)
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]()
	if err := tr.Insert("", 1); err == nil {
		t.Fatalf("empty prefix must be invalid")
	}
	if err := tr.Insert("a b/c", 1); err == nil {
		t.Fatalf("space must be invalid")
	}
	if err := tr.Insert("a//b", 1); err == nil {
		t.Fatalf("empty segment must be invalid")
	}
	if err := tr.Insert("*", 1); err == nil {
		t.Fatalf("wildcard-only prefix must be invalid")
	}

	if _, ok, _ := tr.MatchWithPattern("a b/c"); ok {
		t.Fatalf("match should be false for invalid path")
	}
	if _, ok, _ := tr.MatchWithPattern("a//b"); ok {
		t.Fatalf("match should be false for invalid path")
	}
	var nilTrie *Trie[int]
	if _, ok := nilTrie.Match("a"); ok {
		t.Fatalf("nil trie must not match")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
