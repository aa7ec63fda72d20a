// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/ddigitech/terraform-cdk/addrs"
	"github.com/ddigitech/terraform-cdk/tokens"
)

// Node is one construct in the tree. Children are ordered and owned by
// their parent; the parent pointer is a non-owning back-reference, so the
// tree never forms a reference cycle that anything needs to break.
type Node struct {
	stack  *Stack
	parent *Node

	// name is the attachment key among siblings; logicalID starts equal to
	// name but can be overridden until the address freezes.
	name      string
	logicalID string

	children   []*Node
	childIndex map[string]*Node

	kind          addrs.ElementKind
	declType      string
	providerAlias string

	// addr caches the fully-qualified address on first read; once set, the
	// logical ids along this node's path are immutable.
	addr   string
	frozen bool

	attrs        map[string]any
	dependsOn    []*Node
	forEach      *Iterator
	provisioners []Provisioner

	move        *addrs.MoveEndpoint
	importRec   *importRecord
	renamedFrom string
}

type importRecord struct {
	id       any
	provider string
}

func newNode(parent *Node, name string, kind addrs.ElementKind, declType string) (*Node, error) {
	if err := validateLogicalID(name); err != nil {
		return nil, err
	}
	if parent != nil {
		if _, exists := parent.childIndex[name]; exists {
			return nil, fmt.Errorf("%w: %q already has a child named %q", ErrNamingCollision, parent.Path(), name)
		}
	}
	n := &Node{
		parent:     parent,
		name:       name,
		logicalID:  name,
		childIndex: make(map[string]*Node),
		kind:       kind,
		declType:   declType,
		attrs:      make(map[string]any),
	}
	if parent != nil {
		n.stack = parent.stack
		parent.children = append(parent.children, n)
		parent.childIndex[name] = n
	}
	return n, nil
}

func validateLogicalID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id must not be empty", ErrInvalidIdentifier)
	}
	if tokens.ContainsMarker(id) {
		return fmt.Errorf("%w: %q contains a deferred value; ids must be known before resolution", ErrInvalidIdentifier, id)
	}
	if !hclsyntax.ValidIdentifier(id) {
		return fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidIdentifier, id)
	}
	return nil
}

// Name returns the attachment name among siblings, which never changes.
func (n *Node) Name() string { return n.name }

// LogicalID returns the current logical id, which equals Name unless it was
// overridden.
func (n *Node) LogicalID() string { return n.logicalID }

// Kind returns the node's element kind, or addrs.NoKind for grouping nodes.
func (n *Node) Kind() addrs.ElementKind { return n.kind }

// DeclaredType returns the declared type string, such as "aws_s3_bucket".
func (n *Node) DeclaredType() string { return n.declType }

// Parent returns the owning node, or nil for the stack root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children in declaration order. The slice is
// shared; callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Path renders the attachment path from the stack root, for error messages.
func (n *Node) Path() string {
	var segs []string
	for p := n; p != nil && p.parent != nil; p = p.parent {
		segs = append(segs, p.name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}

// addressID joins the logical ids along the path from the stack root, which
// makes ids of nested constructs unique within the whole document.
func (n *Node) addressID() string {
	var segs []string
	for p := n; p != nil && p.parent != nil; p = p.parent {
		segs = append(segs, p.logicalID)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "_")
}

// Address returns the node's fully-qualified address, computing and caching
// it on first call. From that point on the logical ids along the node's
// path are frozen. Nodes without an element kind have no address.
func (n *Node) Address() (string, error) {
	if n.addr != "" {
		return n.addr, nil
	}
	addr, err := n.composeAddress()
	if err != nil {
		return "", err
	}
	n.addr = addr
	for p := n; p != nil; p = p.parent {
		p.frozen = true
	}
	return addr, nil
}

func (n *Node) composeAddress() (string, error) {
	id := n.addressID()
	switch n.kind {
	case addrs.ResourceKind:
		return n.declType + "." + id, nil
	case addrs.DataSourceKind:
		return "data." + n.declType + "." + id, nil
	case addrs.ProviderKind:
		return addrs.ProviderConfig{Type: n.declType, Alias: n.providerAlias}.String(), nil
	case addrs.OutputKind:
		return "output." + id, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, n.Path())
	}
}

// CompiledID returns the logical id that keys this node in the compiled
// document: the ids along its path joined together. Reading it freezes the
// ids along the path, exactly like reading the address.
func (n *Node) CompiledID() string {
	id := n.addressID()
	for p := n; p != nil; p = p.parent {
		p.frozen = true
	}
	return id
}

// OverrideLogicalID replaces the node's logical id, changing all subsequent
// address computations. It fails once the address has been read by anyone.
func (n *Node) OverrideLogicalID(newID string) error {
	if n.frozen {
		return fmt.Errorf("%w: %q", ErrFrozenIdentity, n.Path())
	}
	if err := validateLogicalID(newID); err != nil {
		return err
	}
	n.logicalID = newID
	return nil
}

// Attributes returns the node's attribute bag. The map is shared; the
// synthesizer deep-copies it before resolving.
func (n *Node) Attributes() map[string]any { return n.attrs }

// DependsOnNodes returns the explicit ordering dependencies recorded via
// DependsOn, in declaration order.
func (n *Node) DependsOnNodes() []*Node { return n.dependsOn }

// ForEachIterator returns the bound iterator, or nil.
func (n *Node) ForEachIterator() *Iterator { return n.forEach }

// Provisioners returns the node's provisioners in declaration order.
func (n *Node) Provisioners() []Provisioner { return n.provisioners }

// MoveEndpoint returns the recorded move destination, or nil.
func (n *Node) MoveEndpoint() *addrs.MoveEndpoint { return n.move }

// RenamedFrom returns the address the node held before RenameResourceID, or
// "" if it was never renamed.
func (n *Node) RenamedFrom() string { return n.renamedFrom }

// ImportID returns the recorded import id and provider reference; ok is
// false when no import was recorded.
func (n *Node) ImportID() (id any, provider string, ok bool) {
	if n.importRec == nil {
		return nil, "", false
	}
	return n.importRec.id, n.importRec.provider, true
}

// ProviderAlias returns the alias for provider nodes, or "".
func (n *Node) ProviderAlias() string { return n.providerAlias }
