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

	"go.uber.org/zap"

	"dirpx.dev/dproblem/apis"
	"dirpx.dev/dproblem/builder"
	"dirpx.dev/dproblem/descriptor"
	"dirpx.dev/dproblem/registry"
	"dirpx.dev/dproblem/reverse"
	"dirpx.dev/dproblem/statusmap"
)

// Engine wires the descriptor table, the type registry, the forward and
// reverse builders, the status mapper and the log sink into one value that
// transport adapters share. It is safe for concurrent use.
type Engine struct {
	table    *descriptor.Table
	registry *registry.Registry
	reverse  *reverse.Builder
	statuses apis.StatusMapper
	logger   *zap.Logger
	build    []builder.Option
}

type engineConfig struct {
	logger     *zap.Logger
	tableOpts  []descriptor.Option
	regOpts    []registry.Option
	buildOpts  []builder.Option
	statuses   apis.StatusMapper
	namespaces []namespaceDecl
	types      []reflect.Type
}

type namespaceDecl struct {
	ns   string
	decl apis.Declaration
}

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

// WithLogger sets the logger shared by every component. Problems are
// logged through loggers named after their logging category.
func WithLogger(l *zap.Logger) EngineOption {
	return func(c *engineConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTableOptions passes options to the descriptor table.
func WithTableOptions(opts ...descriptor.Option) EngineOption {
	return func(c *engineConfig) { c.tableOpts = append(c.tableOpts, opts...) }
}

// WithRegistryOptions passes options to the type registry.
func WithRegistryOptions(opts ...registry.Option) EngineOption {
	return func(c *engineConfig) { c.regOpts = append(c.regOpts, opts...) }
}

// WithBuilderOptions sets options applied to every forward build.
func WithBuilderOptions(opts ...builder.Option) EngineOption {
	return func(c *engineConfig) { c.buildOpts = append(c.buildOpts, opts...) }
}

// WithStatusMapper replaces the default HTTP/gRPC status mapper.
func WithStatusMapper(m apis.StatusMapper) EngineOption {
	return func(c *engineConfig) { c.statuses = m }
}

// WithNamespace declares logging and status conventions for the Go
// packages under ns.
func WithNamespace(ns string, d apis.Declaration) EngineOption {
	return func(c *engineConfig) { c.namespaces = append(c.namespaces, namespaceDecl{ns, d}) }
}

// WithTypes registers error types up front.
func WithTypes(types ...reflect.Type) EngineOption {
	return func(c *engineConfig) { c.types = append(c.types, types...) }
}

// NewEngine builds an Engine. *Error is treated as a generic wrapper so that
// instances without a type fall back to the status conventions, and
// *ValidationError is registered.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	c := engineConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&c)
	}

	tableOpts := append([]descriptor.Option{
		descriptor.WithLogger(c.logger),
		descriptor.WithGenericTypes(reflect.TypeFor[*Error]()),
	}, c.tableOpts...)
	tbl := descriptor.NewTable(tableOpts...)
	for _, n := range c.namespaces {
		if err := tbl.DeclareNamespace(n.ns, n.decl); err != nil {
			return nil, fmt.Errorf("dproblem: namespace %q: %w", n.ns, err)
		}
	}

	reg, err := registry.New(tbl, append([]registry.Option{registry.WithLogger(c.logger)}, c.regOpts...)...)
	if err != nil {
		return nil, err
	}
	types := append([]reflect.Type{reflect.TypeFor[*ValidationError]()}, c.types...)
	for _, t := range types {
		if _, err := reg.Register(t); err != nil {
			return nil, fmt.Errorf("dproblem: %w", err)
		}
	}

	rev, err := reverse.New(reg, tbl, reverse.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	statuses := c.statuses
	if statuses == nil {
		if statuses, err = statusmap.New(); err != nil {
			return nil, err
		}
	}

	return &Engine{
		table:    tbl,
		registry: reg,
		reverse:  rev,
		statuses: statuses,
		logger:   c.logger,
		build:    append([]builder.Option{builder.WithLogger(c.logger)}, c.buildOpts...),
	}, nil
}

// Table returns the descriptor table.
func (e *Engine) Table() *descriptor.Table { return e.table }

// Registry returns the type registry.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// StatusMapper returns the HTTP/gRPC status mapper.
func (e *Engine) StatusMapper() apis.StatusMapper { return e.statuses }

// Logger returns the engine logger.
func (e *Engine) Logger() *zap.Logger { return e.logger }

// Builder returns a forward builder for err. Per-call options are applied
// after the engine-wide ones.
func (e *Engine) Builder(err error, opts ...builder.Option) (*builder.Builder, error) {
	all := make([]builder.Option, 0, len(e.build)+len(opts))
	all = append(all, e.build...)
	all = append(all, opts...)
	return builder.New(e.table, err, all...)
}

// Handle renders err as a problem details body and logs it through the
// effective logging policy of its type.
func (e *Engine) Handle(err error, opts ...builder.Option) (apis.Body, error) {
	b, berr := e.Builder(err, opts...)
	if berr != nil {
		return apis.Body{}, berr
	}
	b.Log()
	return b.Body(), nil
}

// Reconstruct returns the typed error described by body. See
// reverse.Builder.Reconstruct.
func (e *Engine) Reconstruct(body apis.Body) (error, error) {
	return e.reverse.Reconstruct(body)
}

// Declare registers the failure types declared by a client value (see
// apis.FailureDeclarer) and returns how many were new.
func (e *Engine) Declare(client any) (int, error) {
	return e.registry.RegisterDeclared(client)
}

// ErrNilEngine is returned by adapters given a nil engine.
var ErrNilEngine = errors.New("dproblem: nil engine")
