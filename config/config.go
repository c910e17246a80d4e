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

package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, e.g.
// DPROBLEM_BUILDER_CLIENT_LEVEL=debug.
const EnvPrefix = "DPROBLEM"

// Config holds the engine configuration.
type Config struct {
	Builder    BuilderConfig
	Fallback   FallbackConfig
	Status     StatusConfig
	Namespaces []NamespaceConfig
}

// BuilderConfig configures forward builds.
type BuilderConfig struct {
	// ClientLevel is the level AUTO resolves to for client errors (< 500).
	ClientLevel           string
	SuppressDefaultDetail bool
	FallbackType          string
	FallbackTitle         string
	// PlatformNamespaces are package path prefixes treated like the
	// standard library when defaulting the status (500 instead of 400).
	PlatformNamespaces []string
	// ApplicationNamespaces are package path prefixes never treated as
	// platform code, e.g. local modules without a dot in their path.
	ApplicationNamespaces []string
}

// FallbackConfig configures the registry fallback resolver.
type FallbackConfig struct {
	Enabled       bool
	Prefix        string
	Namespaces    []string
	Suffixes      []string
	MissCacheSize int
	MissCacheTTL  time.Duration
}

// StatusConfig adjusts the HTTP status to gRPC code mapping.
type StatusConfig struct {
	// GRPCOverrides maps HTTP statuses to gRPC code names, e.g.
	// {"409": "ALREADY_EXISTS"}.
	GRPCOverrides map[string]string
}

// NamespaceConfig declares conventions for the Go packages under Path.
type NamespaceConfig struct {
	Path     string
	Category string
	Level    string
	Status   int
}

// Load reads dproblem.yaml from the given directories (default: ./config
// and .) and overlays DPROBLEM_* environment variables. A missing file is
// not an error.
func Load(dirs ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName("dproblem")
	v.SetConfigType("yaml")
	if len(dirs) == 0 {
		dirs = []string{"./config", "."}
	}
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads the configuration from an explicit file; its type follows
// the extension.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: error reading %s: %w", path, err)
	}
	return decode(v)
}

// LoadReader reads YAML configuration from r.
func LoadReader(r io.Reader) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("config: error reading config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("builder.client_level", "info")
	v.SetDefault("builder.suppress_default_detail", true)
	v.SetDefault("builder.fallback_type", "")
	v.SetDefault("builder.fallback_title", "")
	v.SetDefault("builder.platform_namespaces", []string{})
	v.SetDefault("builder.application_namespaces", []string{})

	v.SetDefault("fallback.enabled", false)
	v.SetDefault("fallback.prefix", "")
	v.SetDefault("fallback.namespaces", []string{})
	v.SetDefault("fallback.suffixes", []string{})
	v.SetDefault("fallback.miss_cache_size", 0)
	v.SetDefault("fallback.miss_cache_ttl", time.Duration(0))
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.Builder.ClientLevel = v.GetString("builder.client_level")
	cfg.Builder.SuppressDefaultDetail = v.GetBool("builder.suppress_default_detail")
	cfg.Builder.FallbackType = v.GetString("builder.fallback_type")
	cfg.Builder.FallbackTitle = v.GetString("builder.fallback_title")
	cfg.Builder.PlatformNamespaces = v.GetStringSlice("builder.platform_namespaces")
	cfg.Builder.ApplicationNamespaces = v.GetStringSlice("builder.application_namespaces")

	cfg.Fallback.Enabled = v.GetBool("fallback.enabled")
	cfg.Fallback.Prefix = v.GetString("fallback.prefix")
	cfg.Fallback.Namespaces = v.GetStringSlice("fallback.namespaces")
	cfg.Fallback.Suffixes = v.GetStringSlice("fallback.suffixes")
	cfg.Fallback.MissCacheSize = v.GetInt("fallback.miss_cache_size")
	cfg.Fallback.MissCacheTTL = v.GetDuration("fallback.miss_cache_ttl")

	cfg.Status.GRPCOverrides = v.GetStringMapString("status.grpc_overrides")

	if err := v.UnmarshalKey("namespaces", &cfg.Namespaces); err != nil {
		return nil, fmt.Errorf("config: namespaces: %w", err)
	}
	return cfg, nil
}
