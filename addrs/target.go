// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package addrs

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Target is the parsed fully-qualified address of a resource or data source,
// optionally inside one or more nested modules and optionally carrying an
// instance key when the target itself iterates.
type Target struct {
	// Module holds the names of the enclosing module calls, outermost first.
	// Empty for an object in the root module.
	Module []string

	// Kind is either ResourceKind or DataSourceKind.
	Kind ElementKind

	Type string
	Name string

	// Key is NoKey unless the address selects one instance of an iterated
	// object.
	Key InstanceKey
}

// ParseTarget parses a string like "test_resource.example",
// "data.test_data.example" or `module.a.aws_s3_bucket.b["key"]` into a
// Target. The string must be valid HCL traversal syntax.
func ParseTarget(src string) (Target, error) {
	trav, diags := hclsyntax.ParseTraversalAbs([]byte(src), "", hcl.InitialPos)
	if diags.HasErrors() {
		return Target{}, fmt.Errorf("invalid address %q: %s", src, diags.Error())
	}
	return targetFromTraversal(src, trav)
}

func targetFromTraversal(src string, trav hcl.Traversal) (Target, error) {
	t := Target{Kind: ResourceKind}

	steps := make([]string, 0, len(trav))
	for _, step := range trav {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			steps = append(steps, s.Name)
		case hcl.TraverseAttr:
			steps = append(steps, s.Name)
		case hcl.TraverseIndex:
			if t.Key != NoKey {
				return Target{}, fmt.Errorf("invalid address %q: multiple instance keys", src)
			}
			switch s.Key.Type() {
			case cty.String:
				t.Key = StringKey(s.Key.AsString())
			case cty.Number:
				i, _ := s.Key.AsBigFloat().Int64()
				t.Key = IntKey(int(i))
			default:
				return Target{}, fmt.Errorf("invalid address %q: index must be a string or an integer", src)
			}
		}
	}

	// Peel off module call steps, which always come in "module"/name pairs.
	for len(steps) >= 2 && steps[0] == "module" {
		t.Module = append(t.Module, steps[1])
		steps = steps[2:]
	}
	if len(steps) > 0 && steps[0] == "data" {
		t.Kind = DataSourceKind
		steps = steps[1:]
	}
	if len(steps) != 2 {
		return Target{}, fmt.Errorf("invalid address %q: expected a type and a name", src)
	}
	t.Type, t.Name = steps[0], steps[1]
	if !hclsyntax.ValidIdentifier(t.Type) || !hclsyntax.ValidIdentifier(t.Name) {
		return Target{}, fmt.Errorf("invalid address %q: type and name must be valid identifiers", src)
	}
	return t, nil
}

// String renders the target back into the engine's address syntax.
func (t Target) String() string {
	var buf strings.Builder
	for _, m := range t.Module {
		buf.WriteString("module.")
		buf.WriteString(m)
		buf.WriteByte('.')
	}
	if t.Kind == DataSourceKind {
		buf.WriteString("data.")
	}
	buf.WriteString(t.Type)
	buf.WriteByte('.')
	buf.WriteString(t.Name)
	if t.Key != NoKey {
		buf.WriteString(t.Key.String())
	}
	return buf.String()
}

// WithKey returns a copy of the target selecting one instance of an
// iterated destination.
func (t Target) WithKey(key InstanceKey) Target {
	t.Key = key
	return t
}

// MoveEndpoint is the destination of a recorded move: a target address plus
// an optional iteration key for destinations that themselves iterate.
type MoveEndpoint struct {
	To  Target
	Key InstanceKey
}

// String renders the endpoint, folding the iteration key into the target
// address when present.
func (e MoveEndpoint) String() string {
	if e.Key != NoKey {
		return e.To.WithKey(e.Key).String()
	}
	return e.To.String()
}

// ProviderConfig is the address of one provider configuration, such as
// "aws" or "aws.west" for an aliased configuration.
type ProviderConfig struct {
	Type  string
	Alias string
}

func (p ProviderConfig) String() string {
	if p.Alias != "" {
		return p.Type + "." + p.Alias
	}
	return p.Type
}

// ParseProviderConfig parses a provider reference like "aws" or "aws.west".
func ParseProviderConfig(src string) (ProviderConfig, error) {
	parts := strings.Split(src, ".")
	if len(parts) > 2 {
		return ProviderConfig{}, fmt.Errorf("invalid provider reference %q: expected \"type\" or \"type.alias\"", src)
	}
	for _, p := range parts {
		if !hclsyntax.ValidIdentifier(p) {
			return ProviderConfig{}, fmt.Errorf("invalid provider reference %q: %q is not a valid identifier", src, p)
		}
	}
	pc := ProviderConfig{Type: parts[0]}
	if len(parts) == 2 {
		pc.Alias = parts[1]
	}
	return pc, nil
}
