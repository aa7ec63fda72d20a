// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"fmt"

	"github.com/ddigitech/terraform-cdk/addrs"
	"github.com/ddigitech/terraform-cdk/tokens"
)

// Construct is any object backed by a tree node; it lets constructs from
// this package be used interchangeably where only the node matters, such as
// DependsOn edges.
type Construct interface {
	Node() *Node
}

// element is the shared behavior of all typed constructs: an attribute bag
// plus deferred accessors for computed attributes.
type element struct {
	node *Node
}

func (e *element) Node() *Node { return e.node }

// SetAttribute stores an attribute value verbatim. Values may embed deferred
// references at any depth; they are resolved during synthesis.
func (e *element) SetAttribute(name string, value any) {
	e.node.attrs[name] = value
}

// ref creates a deferred reference to one of this construct's attributes.
// The address is computed at resolution time, so renames that happen before
// synthesis are reflected, and the first synthesis freezes the id.
func (e *element) ref(attrName string) string {
	n := e.node
	rendered := terraformAttributeName(attrName)
	return n.stack.reg.NewString(func(_ *tokens.ResolveContext) (any, error) {
		addr, err := n.Address()
		if err != nil {
			return nil, err
		}
		return tokens.Raw(addr + "." + rendered), nil
	})
}

// GetString returns a deferred reference to a string-typed computed
// attribute. The attribute name is given in the camelCase form used by the
// construct API and rendered in the engine's snake_case convention.
func (e *element) GetString(attrName string) string { return e.ref(attrName) }

// GetNumber returns a deferred reference to a number-typed attribute.
func (e *element) GetNumber(attrName string) string { return e.ref(attrName) }

// GetList returns a deferred reference to a list-typed attribute. The
// returned marker can stand in wherever a list value is expected.
func (e *element) GetList(attrName string) string { return e.ref(attrName) }

// GetMap returns a deferred reference to a map-typed attribute.
func (e *element) GetMap(attrName string) string { return e.ref(attrName) }

// DependsOn records an explicit ordering dependency on another construct,
// independent of any attribute-level references.
func (e *element) DependsOn(target Construct) {
	e.node.dependsOn = append(e.node.dependsOn, target.Node())
}

// Resource is a managed resource construct.
type Resource struct {
	element
}

// ForEach binds an iterator to this resource, expanding it into a repeated
// declaration driven by the iterator's source. A resource accepts at most
// one iterator, and an iterator binds to at most one construct.
func (r *Resource) ForEach(it *Iterator) error {
	if it.node != nil {
		return fmt.Errorf("iterator is already bound to %q", it.node.Path())
	}
	if r.node.forEach != nil {
		return fmt.Errorf("%q already has an iterator bound", r.node.Path())
	}
	it.node = r.node
	r.node.forEach = it
	return nil
}

// AddProvisioner appends a provisioner. Declaration order is preserved
// verbatim in the compiled output.
func (r *Resource) AddProvisioner(provisionerType string, attributes map[string]any) {
	r.node.provisioners = append(r.node.provisioners, Provisioner{
		Type:       provisionerType,
		Attributes: attributes,
	})
}

// MoveTo records that this resource's state should move to the given target
// address. An optional single key selects one instance of an iterated
// destination; it must be a string or an int.
func (r *Resource) MoveTo(target string, key ...any) error {
	t, err := addrs.ParseTarget(target)
	if err != nil {
		return err
	}
	if len(key) > 1 {
		return fmt.Errorf("at most one iteration key is allowed")
	}
	ep := addrs.MoveEndpoint{To: t}
	if len(key) == 1 {
		k, err := addrs.MakeInstanceKey(key[0])
		if err != nil {
			return err
		}
		ep.Key = k
	}
	r.node.move = &ep
	return nil
}

// RenameResourceID changes the resource's logical id in place and records
// the old address so the compiler can emit a matching moved directive. Like
// any id change, it is only legal before the address has been read.
func (r *Resource) RenameResourceID(newID string) error {
	if r.node.frozen {
		return fmt.Errorf("%w: %q", ErrFrozenIdentity, r.node.Path())
	}
	oldAddr, err := r.node.composeAddress()
	if err != nil {
		return err
	}
	if err := r.node.OverrideLogicalID(newID); err != nil {
		return err
	}
	// Renaming again before synthesis keeps the first recorded address:
	// intermediate ids were never part of any emitted document.
	if r.node.renamedFrom == "" {
		r.node.renamedFrom = oldAddr
	}
	return nil
}

// ImportFrom records that the resource adopts existing external state with
// the given import id, optionally through a non-default provider
// configuration given as "type" or "type.alias". The provider reference is
// checked against the stack's provider nodes at compile time.
func (r *Resource) ImportFrom(importID any, provider ...string) error {
	if len(provider) > 1 {
		return fmt.Errorf("at most one provider reference is allowed")
	}
	rec := &importRecord{id: importID}
	if len(provider) == 1 && provider[0] != "" {
		if _, err := addrs.ParseProviderConfig(provider[0]); err != nil {
			return err
		}
		rec.provider = provider[0]
	}
	r.node.importRec = rec
	return nil
}

// OverrideLogicalID replaces the logical id without emitting any move
// directive; see Node.OverrideLogicalID.
func (r *Resource) OverrideLogicalID(newID string) error {
	return r.node.OverrideLogicalID(newID)
}

// DataSource is a data source construct.
type DataSource struct {
	element
}

// Provider is one provider configuration.
type Provider struct {
	element
}

// Alias returns the configuration alias, or "" for the default
// configuration.
func (p *Provider) Alias() string { return p.node.providerAlias }

// Output is an output value construct.
type Output struct {
	element
}

// SetDescription records a human-readable description for the output.
func (o *Output) SetDescription(desc string) {
	o.node.attrs["description"] = desc
}

// SetSensitive marks the output value as sensitive.
func (o *Output) SetSensitive(sensitive bool) {
	o.node.attrs["sensitive"] = sensitive
}
