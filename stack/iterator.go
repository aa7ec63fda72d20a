// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"fmt"

	"github.com/ddigitech/terraform-cdk/tokens"
)

// Iterator wraps the source of a for_each expansion: an ordered sequence or
// a key/value mapping, either given directly or as a deferred value. An
// iterator binds to exactly one construct via Resource.ForEach; its
// accessors may be created at any time but only resolve once bound, against
// whatever construct the binding ultimately chose.
type Iterator struct {
	reg    *tokens.Registry
	source any
	isMap  bool

	// node is set at binding time; accessors read it through their producer
	// closures, so accessors created before binding still see it.
	node *Node
}

// IteratorFromList wraps an ordered sequence. items may be a []any, a
// []string, or a deferred value standing for a list.
func (s *Stack) IteratorFromList(items any) *Iterator {
	return &Iterator{reg: s.reg, source: items}
}

// IteratorFromMap wraps a key/value mapping. entries may be a
// map[string]any or a deferred value standing for a map.
func (s *Stack) IteratorFromMap(entries any) *Iterator {
	return &Iterator{reg: s.reg, source: entries, isMap: true}
}

// Source returns the iteration source for serialization as the bound
// node's for_each argument.
func (it *Iterator) Source() any { return it.source }

// IsMap reports whether the source is a key/value mapping.
func (it *Iterator) IsMap() bool { return it.isMap }

// Bound returns the construct node the iterator is bound to, or nil.
func (it *Iterator) Bound() *Node { return it.node }

func (it *Iterator) deferred(render func() string) string {
	return it.reg.NewString(func(_ *tokens.ResolveContext) (any, error) {
		if it.node == nil {
			return nil, fmt.Errorf("%w", ErrUnboundIterator)
		}
		return tokens.Raw(render()), nil
	})
}

// Value returns a deferred reference to the current element's value.
func (it *Iterator) Value() string {
	return it.deferred(func() string { return "each.value" })
}

// Key returns a deferred reference to the current element's key: the map
// key for map sources, the element value itself for list sources (which is
// how the engine defines each.key over sets).
func (it *Iterator) Key() string {
	return it.deferred(func() string { return "each.key" })
}

// GetString returns a deferred reference to a string attribute of the
// current element, for map-of-object sources.
func (it *Iterator) GetString(attrName string) string {
	rendered := terraformAttributeName(attrName)
	return it.deferred(func() string { return "each.value." + rendered })
}

// GetMap returns a deferred reference to a map attribute of the current
// element.
func (it *Iterator) GetMap(attrName string) string {
	rendered := terraformAttributeName(attrName)
	return it.deferred(func() string { return "each.value." + rendered })
}

// Element returns a deferred reference to one indexed element of the
// current value, for list-of-list sources.
func (it *Iterator) Element(index int) string {
	return it.deferred(func() string { return fmt.Sprintf("each.value[%d]", index) })
}
