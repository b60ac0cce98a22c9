// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package toolregistry

import "context"

// FactoryContextKey is the context key under which the Factory is stored.
type FactoryContextKey struct{}

// Factory builds a fresh registry. Each run gets its own registry so per-run tool
// state such as the todo list is not shared.
type Factory func() *Registry

// NewFactory returns a Factory applying fns to every registry it builds.
func NewFactory(fns ...RegisterFunc) Factory {
	return func() *Registry {
		return New(fns...)
	}
}

// WithFactory returns a copy of ctx carrying f.
func WithFactory(ctx context.Context, f Factory) context.Context {
	return context.WithValue(ctx, FactoryContextKey{}, f)
}

// FactoryFromContext returns the Factory stored in ctx.
func FactoryFromContext(ctx context.Context) (Factory, bool) {
	f, ok := ctx.Value(FactoryContextKey{}).(Factory)
	return f, ok && f != nil
}
