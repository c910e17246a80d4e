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

package dproblem

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strconv"

	"google.golang.org/grpc/codes"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/builder"
	"dirpx.dev/dproblem/config"
	"dirpx.dev/dproblem/registry"
	"dirpx.dev/dproblem/statusmap"
)

// FromConfig converts a loaded configuration into engine options.
//
// The fallback resolver, when enabled, loads from the standard library
// catalog plus the given extra types (e.g. ginx.FrameworkTypes()). Unless the
// configuration lists namespaces, it probes registry.StdlibNamespaces first
// and then the packages of the extra types, in order.
func FromConfig(cfg *config.Config, extra ...reflect.Type) ([]EngineOption, error) {
	if cfg == nil {
		return nil, nil
	}
	var (
		opts []EngineOption
		errs []error
	)

	level, err := apis.ParseLevel(cfg.Builder.ClientLevel)
	if err != nil {
		errs = append(errs, fmt.Errorf("builder.client_level: %w", err))
	}
	opts = append(opts, WithBuilderOptions(
		builder.WithClientLevel(level),
		builder.WithSuppressDefaultDetail(cfg.Builder.SuppressDefaultDetail),
		builder.WithFallbackType(cfg.Builder.FallbackType),
		builder.WithFallbackTitle(cfg.Builder.FallbackTitle),
		builder.WithPlatformNamespaces(cfg.Builder.PlatformNamespaces...),
		builder.WithApplicationNamespaces(cfg.Builder.ApplicationNamespaces...),
	))

	if f := cfg.Fallback; f.Enabled {
		types := append(registry.StdlibTypes(), extra...)
		ropts := []registry.Option{
			registry.WithFallback(registry.NewCatalog(types...)),
			registry.WithMissCache(f.MissCacheSize, f.MissCacheTTL),
		}
		if f.Prefix != "" {
			ropts = append(ropts, registry.WithFallbackPrefix(f.Prefix))
		}
		namespaces := f.Namespaces
		if len(namespaces) == 0 {
			namespaces = appendPackages(registry.StdlibNamespaces, extra)
		}
		ropts = append(ropts, registry.WithFallbackNamespaces(namespaces...))
		if len(f.Suffixes) > 0 {
			ropts = append(ropts, registry.WithFallbackSuffixes(f.Suffixes...))
		}
		opts = append(opts, WithRegistryOptions(ropts...))
	}

	if len(cfg.Status.GRPCOverrides) > 0 {
		var sopts []statusmap.Option
		for k, name := range cfg.Status.GRPCOverrides {
			status, err := strconv.Atoi(k)
			if err != nil {
				errs = append(errs, fmt.Errorf("status.grpc_overrides: %q: %w", k, err))
				continue
			}
			var c codes.Code
			if err := c.UnmarshalJSON([]byte(strconv.Quote(name))); err != nil {
				errs = append(errs, fmt.Errorf("status.grpc_overrides: %q: %w", k, err))
				continue
			}
			sopts = append(sopts, statusmap.WithGRPCOverride(status, c))
		}
		m, err := statusmap.New(sopts...)
		if err != nil {
			errs = append(errs, err)
		} else {
			opts = append(opts, WithStatusMapper(m))
		}
	}

	for _, ns := range cfg.Namespaces {
		d := apis.Declaration{
			Status:  ns.Status,
			Logging: apis.Logging{Category: ns.Category},
		}
		if ns.Level != "" {
			if d.Logging.Level, err = apis.ParseLevel(ns.Level); err != nil {
				errs = append(errs, fmt.Errorf("namespaces[%s].level: %w", ns.Path, err))
				continue
			}
		}
		opts = append(opts, WithNamespace(ns.Path, d))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("dproblem: config: %w", err)
	}
	return opts, nil
}

// appendPackages returns namespaces followed by the package paths of types
// not already listed.
func appendPackages(namespaces []string, types []reflect.Type) []string {
	out := slices.Clone(namespaces)
	for _, t := range types {
		for t != nil && t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == nil || t.PkgPath() == "" || slices.Contains(out, t.PkgPath()) {
			continue
		}
		out = append(out, t.PkgPath())
	}
	return out
}
