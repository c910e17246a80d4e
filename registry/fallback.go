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

package registry

import (
	"reflect"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dirpx.dev/dproblem/typeid"
)

type fallback struct {
	loader     Loader
	prefix     string
	namespaces []string
	suffixes   []string

	misses *expirable.LRU[string, struct{}]
	group  singleflight.Group
}

// Candidates returns the qualified type names probed for id, in order:
// every namespace combined with every suffix. It returns nil when id does not
// start with prefix or its remainder is not kebab-case.
func Candidates(id, prefix string, namespaces, suffixes []string) []string {
	name, ok := typeid.ID(id).Name(prefix)
	if !ok {
		return nil
	}
	pascal := typeid.PascalFromKebab(name)
	if pascal == "" {
		return nil
	}
	out := make([]string, 0, len(namespaces)*len(suffixes))
	for _, ns := range namespaces {
		ns = strings.Trim(ns, "/")
		if ns == "" {
			continue
		}
		for _, s := range suffixes {
			out = append(out, ns+"."+pascal+s)
		}
	}
	return out
}

func (r *Registry) resolveFallback(id string) (reflect.Type, bool) {
	fb := r.fb
	if fb.misses.Contains(id) {
		return nil, false
	}
	v, _, _ := fb.group.Do(id, func() (any, error) {
		for _, name := range Candidates(id, fb.prefix, fb.namespaces, fb.suffixes) {
			t, ok := fb.loader.Load(name)
			if !ok || t == nil || !t.Implements(errorType) {
				continue
			}
			r.logger.Debug("problem type resolved by convention",
				zap.String("id", id),
				zap.String("type", name),
			)
			return t, nil
		}
		return nil, nil
	})
	t, _ := v.(reflect.Type)
	if t == nil {
		fb.misses.Add(id, struct{}{})
		return nil, false
	}
	parsed, err := typeid.Parse(id)
	if err != nil {
		return t, true
	}
	// Do not steal an identifier a concurrent Register call just claimed.
	r.mu.RLock()
	current, taken := r.byID[id]
	r.mu.RUnlock()
	if taken {
		return current, true
	}
	r.store(parsed, t)
	return t, true
}
