// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package tokens

import (
	"fmt"
)

// Producer yields the final value a token stands for, given the resolution
// context of the current synthesis pass. The returned value may be a Raw
// expression, a plain scalar, a nested list or map, or a string that itself
// contains further token markers.
type Producer func(ctx *ResolveContext) (any, error)

// Raw is already-rendered expression text in the target language, such as
// "test_resource.example.string_value" or "lower(var.name)". When a Raw
// value ends up in a string context the resolver wraps it in the
// interpolation syntax "${...}".
type Raw string

// Registry is the explicit scope that owns token identity. Each stack owns
// one registry; tokens from different registries must never be mixed in one
// resolution pass.
//
// A Registry is not safe for concurrent use. Tree construction and synthesis
// are sequential.
type Registry struct {
	nextID    int
	producers map[int]Producer
}

// NewRegistry returns an empty registry. Token ids are unique within one
// registry, starting from 1 so that the zero Token is never valid.
func NewRegistry() *Registry {
	return &Registry{
		nextID:    1,
		producers: make(map[int]Producer),
	}
}

// New creates a token backed by the given producer. The token is immutable
// after creation.
func (r *Registry) New(p Producer) Token {
	if p == nil {
		panic("tokens: nil producer")
	}
	id := r.nextID
	r.nextID++
	r.producers[id] = p
	return Token{reg: r, id: id}
}

// NewString creates a token and immediately encodes it as a marker string,
// which is the common way tokens travel through attribute values.
func (r *Registry) NewString(p Producer) string {
	return r.New(p).String()
}

// Token is an opaque handle for a deferred value. The zero Token is invalid.
type Token struct {
	reg *Registry
	id  int
}

// IsValid reports whether the token was created by a registry.
func (t Token) IsValid() bool {
	return t.reg != nil && t.id != 0
}

// String encodes the token as a marker that can be embedded in ordinary
// text and later decoded back. The marker syntax deliberately reuses the
// target interpolation introducer so that an unresolved marker leaking into
// output is immediately recognizable.
func (t Token) String() string {
	if !t.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s%d%s", markerPrefix, t.id, markerSuffix)
}

// GoString makes failed test diffs readable.
func (t Token) GoString() string {
	return fmt.Sprintf("tokens.Token(%d)", t.id)
}
