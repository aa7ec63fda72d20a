// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"fmt"

	"github.com/hashicorp/go-version"

	"github.com/ddigitech/terraform-cdk/addrs"
	"github.com/ddigitech/terraform-cdk/tokens"
)

// Stack is the root of one construct tree. It owns the token registry that
// all deferred values in the tree are created against, plus the engine
// settings emitted into the document's "terraform" block.
type Stack struct {
	Scope

	name string
	reg  *tokens.Registry

	requiredVersion   string
	requiredProviders map[string]ProviderRequirement
}

// ProviderRequirement pins where a provider comes from and which versions
// of it the document accepts.
type ProviderRequirement struct {
	Source  string
	Version string
}

// New creates an empty stack.
func New(name string) (*Stack, error) {
	if err := validateLogicalID(name); err != nil {
		return nil, fmt.Errorf("stack name: %w", err)
	}
	root, err := newNode(nil, name, addrs.NoKind, "")
	if err != nil {
		return nil, err
	}
	s := &Stack{
		name:              name,
		reg:               tokens.NewRegistry(),
		requiredProviders: make(map[string]ProviderRequirement),
	}
	root.stack = s
	s.Scope = Scope{node: root, stack: s}
	return s, nil
}

// Name returns the stack name. It does not participate in addresses.
func (s *Stack) Name() string { return s.name }

// Registry returns the stack's token registry, for creating deferred values
// and function calls scoped to this stack.
func (s *Stack) Registry() *tokens.Registry { return s.reg }

// Root returns the root node of the construct tree.
func (s *Stack) Root() *Node { return s.node }

// SetRequiredVersion records the engine version constraint for the
// document's terraform block, validating the constraint syntax.
func (s *Stack) SetRequiredVersion(constraint string) error {
	if _, err := version.NewConstraint(constraint); err != nil {
		return fmt.Errorf("invalid required_version %q: %w", constraint, err)
	}
	s.requiredVersion = constraint
	return nil
}

// RequiredVersion returns the recorded engine version constraint, or "".
func (s *Stack) RequiredVersion() string { return s.requiredVersion }

// RequireProvider records a required_providers entry. The version
// constraint is validated; the source address is passed through opaquely.
func (s *Stack) RequireProvider(localName, source, constraint string) error {
	if err := validateLogicalID(localName); err != nil {
		return fmt.Errorf("provider local name: %w", err)
	}
	if constraint != "" {
		if _, err := version.NewConstraint(constraint); err != nil {
			return fmt.Errorf("invalid version constraint %q for provider %q: %w", constraint, localName, err)
		}
	}
	s.requiredProviders[localName] = ProviderRequirement{Source: source, Version: constraint}
	return nil
}

// RequiredProviders returns the recorded requirements keyed by local name.
func (s *Stack) RequiredProviders() map[string]ProviderRequirement {
	out := make(map[string]ProviderRequirement, len(s.requiredProviders))
	for k, v := range s.requiredProviders {
		out[k] = v
	}
	return out
}

// Scope is a position in the tree that new constructs can be attached to:
// the stack root itself or a grouping construct.
type Scope struct {
	node  *Node
	stack *Stack
}

// Node returns the underlying tree node.
func (sc *Scope) Node() *Node { return sc.node }

// NewGroup attaches a grouping construct, which contributes a path segment
// to the logical ids of everything beneath it but compiles to nothing
// itself.
func (sc *Scope) NewGroup(name string) (*Scope, error) {
	n, err := newNode(sc.node, name, addrs.NoKind, "")
	if err != nil {
		return nil, err
	}
	return &Scope{node: n, stack: sc.stack}, nil
}

// NewResource attaches a resource construct of the given declared type.
func (sc *Scope) NewResource(declType, id string) (*Resource, error) {
	n, err := newNode(sc.node, id, addrs.ResourceKind, declType)
	if err != nil {
		return nil, err
	}
	return &Resource{element{node: n}}, nil
}

// NewDataSource attaches a data source construct of the given declared type.
func (sc *Scope) NewDataSource(declType, id string) (*DataSource, error) {
	n, err := newNode(sc.node, id, addrs.DataSourceKind, declType)
	if err != nil {
		return nil, err
	}
	return &DataSource{element{node: n}}, nil
}

// NewProvider attaches a provider configuration. An empty alias is the
// default configuration for the type; a non-empty alias names an additional
// one.
func (sc *Scope) NewProvider(declType, alias string) (*Provider, error) {
	name := declType
	if alias != "" {
		if err := validateLogicalID(alias); err != nil {
			return nil, fmt.Errorf("provider alias: %w", err)
		}
		name = declType + "_" + alias
	}
	n, err := newNode(sc.node, name, addrs.ProviderKind, declType)
	if err != nil {
		return nil, err
	}
	n.providerAlias = alias
	return &Provider{element{node: n}}, nil
}

// NewOutput attaches an output with the given value, which may embed
// deferred references.
func (sc *Scope) NewOutput(id string, value any) (*Output, error) {
	n, err := newNode(sc.node, id, addrs.OutputKind, "")
	if err != nil {
		return nil, err
	}
	n.attrs["value"] = value
	return &Output{element{node: n}}, nil
}
