// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package synth compiles a construct tree into its configuration document.
// Each Synthesize call is one pass: a single depth-first walk of the tree
// with a fresh resolution context, so token producers run exactly once per
// pass and nothing memoized can leak into the next pass.
package synth

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/copystructure"

	"github.com/ddigitech/terraform-cdk/addrs"
	"github.com/ddigitech/terraform-cdk/stack"
	"github.com/ddigitech/terraform-cdk/tokens"
)

// ErrDanglingProviderReference is reported when an import record names a
// provider configuration that no provider node in the stack declares.
var ErrDanglingProviderReference = errors.New("import references an undeclared provider configuration")

// Synthesizer compiles stacks. The zero value is usable; options configure
// logging.
type Synthesizer struct {
	logger hclog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger routes per-pass and per-node progress to the given logger.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Synthesizer) { s.logger = logger }
}

// New returns a Synthesizer.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize compiles the stack into a document. On any failure it returns
// a nil document: there is no partial output. The tree is not modified
// beyond the id freezing that address reads imply, so calling Synthesize
// again over an unmodified tree yields an identical document.
func (s *Synthesizer) Synthesize(st *stack.Stack) (*Document, error) {
	ctx := st.Registry().NewContext()
	s.logger.Debug("starting synthesis pass", "stack", st.Name(), "pass", ctx.PassID())

	doc := newDocument()
	s.addSettings(doc, st)

	providerConfigs := declaredProviderConfigs(st)

	var errs *multierror.Error
	var walk func(n *stack.Node)
	walk = func(n *stack.Node) {
		if n.Kind() != addrs.NoKind {
			if err := s.synthNode(ctx, doc, n, providerConfigs); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", n.Path(), err))
			}
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(st.Root())

	if err := errs.ErrorOrNil(); err != nil {
		s.logger.Error("synthesis failed", "stack", st.Name(), "pass", ctx.PassID(), "error", err)
		return nil, err
	}
	s.logger.Debug("synthesis pass complete", "stack", st.Name(), "pass", ctx.PassID())
	return doc, nil
}

func (s *Synthesizer) addSettings(doc *Document, st *stack.Stack) {
	required := st.RequiredProviders()
	if st.RequiredVersion() == "" && len(required) == 0 {
		return
	}
	settings := &Settings{RequiredVersion: st.RequiredVersion()}
	if len(required) > 0 {
		settings.RequiredProviders = make(map[string]map[string]string, len(required))
		for name, req := range required {
			entry := make(map[string]string, 2)
			if req.Source != "" {
				entry["source"] = req.Source
			}
			if req.Version != "" {
				entry["version"] = req.Version
			}
			settings.RequiredProviders[name] = entry
		}
	}
	doc.Terraform = settings
}

// declaredProviderConfigs collects the addresses of every provider node in
// the stack, for validating import provider references.
func declaredProviderConfigs(st *stack.Stack) map[string]bool {
	configs := make(map[string]bool)
	var walk func(n *stack.Node)
	walk = func(n *stack.Node) {
		if n.Kind() == addrs.ProviderKind {
			configs[addrs.ProviderConfig{Type: n.DeclaredType(), Alias: n.ProviderAlias()}.String()] = true
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(st.Root())
	return configs
}

func (s *Synthesizer) synthNode(ctx *tokens.ResolveContext, doc *Document, n *stack.Node, providerConfigs map[string]bool) error {
	addr, err := n.Address()
	if err != nil {
		return err
	}
	s.logger.Trace("compiling node", "address", addr, "kind", n.Kind().String())

	bag, err := s.resolveAttributes(ctx, n)
	if err != nil {
		return err
	}

	// Compiled ids join path segments, so two nodes on different paths can
	// produce the same id. Overwriting would drop a declared element from
	// the document, so a duplicate is a hard error.
	switch n.Kind() {
	case addrs.ResourceKind:
		typ, id := n.DeclaredType(), n.CompiledID()
		if doc.Resources[typ] == nil {
			doc.Resources[typ] = make(map[string]map[string]any)
		}
		if _, exists := doc.Resources[typ][id]; exists {
			return fmt.Errorf("%w: %s is already declared elsewhere in the stack", stack.ErrNamingCollision, addr)
		}
		doc.Resources[typ][id] = bag
	case addrs.DataSourceKind:
		typ, id := n.DeclaredType(), n.CompiledID()
		if doc.DataSources[typ] == nil {
			doc.DataSources[typ] = make(map[string]map[string]any)
		}
		if _, exists := doc.DataSources[typ][id]; exists {
			return fmt.Errorf("%w: %s is already declared elsewhere in the stack", stack.ErrNamingCollision, addr)
		}
		doc.DataSources[typ][id] = bag
	case addrs.ProviderKind:
		alias := n.ProviderAlias()
		for _, existing := range doc.Providers[n.DeclaredType()] {
			prior, _ := existing["alias"].(string)
			if prior == alias {
				return fmt.Errorf("%w: %s is already declared elsewhere in the stack", stack.ErrNamingCollision, addr)
			}
		}
		if alias != "" {
			bag["alias"] = alias
		}
		doc.Providers[n.DeclaredType()] = append(doc.Providers[n.DeclaredType()], bag)
	case addrs.OutputKind:
		id := n.CompiledID()
		if _, exists := doc.Outputs[id]; exists {
			return fmt.Errorf("%w: %s is already declared elsewhere in the stack", stack.ErrNamingCollision, addr)
		}
		doc.Outputs[id] = bag
	}

	return s.addDirectives(ctx, doc, n, addr, providerConfigs)
}

// resolveAttributes produces the node's fully resolved attribute bag,
// including the for_each source, explicit dependencies and provisioners.
// The user's attribute map is deep-copied first and never mutated.
func (s *Synthesizer) resolveAttributes(ctx *tokens.ResolveContext, n *stack.Node) (map[string]any, error) {
	copied, err := copystructure.Copy(n.Attributes())
	if err != nil {
		return nil, fmt.Errorf("copying attributes: %w", err)
	}
	bag := copied.(map[string]any)

	if it := n.ForEachIterator(); it != nil {
		bag["for_each"] = it.Source()
	}

	resolved, err := ctx.Resolve(bag)
	if err != nil {
		return nil, err
	}
	out := resolved.(map[string]any)

	if deps := n.DependsOnNodes(); len(deps) > 0 {
		addresses := make([]any, len(deps))
		for i, dep := range deps {
			depAddr, err := dep.Address()
			if err != nil {
				return nil, fmt.Errorf("depends_on target: %w", err)
			}
			addresses[i] = depAddr
		}
		out["depends_on"] = addresses
	}

	if provs := n.Provisioners(); len(provs) > 0 {
		blocks := make([]any, len(provs))
		for i, p := range provs {
			attrs, err := ctx.Resolve(p.Attributes)
			if err != nil {
				return nil, fmt.Errorf("provisioner %d (%s): %w", i+1, p.Type, err)
			}
			if attrs == nil {
				attrs = map[string]any{}
			}
			blocks[i] = map[string]any{p.Type: attrs}
		}
		out["provisioner"] = blocks
	}

	return out, nil
}

// addDirectives emits the moved and import blocks a node's structural edit
// record calls for. Directives reference addresses only; they take no part
// in attribute resolution.
func (s *Synthesizer) addDirectives(ctx *tokens.ResolveContext, doc *Document, n *stack.Node, addr string, providerConfigs map[string]bool) error {
	if from := n.RenamedFrom(); from != "" && from != addr {
		doc.Moved = append(doc.Moved, MovedBlock{From: from, To: addr})
	}
	if ep := n.MoveEndpoint(); ep != nil {
		doc.Moved = append(doc.Moved, MovedBlock{From: addr, To: ep.String()})
	}
	if id, provider, ok := n.ImportID(); ok {
		resolvedID, err := ctx.Resolve(id)
		if err != nil {
			return fmt.Errorf("import id: %w", err)
		}
		if provider != "" && !providerConfigs[provider] {
			return fmt.Errorf("%w: %q", ErrDanglingProviderReference, provider)
		}
		doc.Imports = append(doc.Imports, ImportBlock{To: addr, ID: resolvedID, Provider: provider})
	}
	return nil
}
