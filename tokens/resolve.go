// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// maxResolveIterations bounds the fixed-point loop for producer output that
// itself contains token markers. Legitimate chains observed in practice are
// two or three levels deep, so running out of budget means the producers
// reference each other cyclically.
const maxResolveIterations = 16

// ErrCyclicReference is reported when resolution cannot reach a fixed point,
// either because a producer re-enters itself or because nested producer
// output never stops yielding new markers.
var ErrCyclicReference = errors.New("cyclic token reference")

// ErrUnknownToken is reported when a marker names a token id the registry
// has no producer for, which normally means markers from two different
// registries were mixed.
var ErrUnknownToken = errors.New("unknown token")

// ResolveContext carries the per-pass state of one resolution pass: the
// producer memoization table and the pass identity. Contexts must not be
// reused across synthesis passes; each pass creates a fresh one so stale
// memoized values can never leak between independent syntheses.
type ResolveContext struct {
	reg       *Registry
	passID    uuid.UUID
	memo      map[int]any
	resolving map[int]bool
}

// NewContext begins a resolution pass against this registry.
func (r *Registry) NewContext() *ResolveContext {
	return &ResolveContext{
		reg:       r,
		passID:    uuid.New(),
		memo:      make(map[int]any),
		resolving: make(map[int]bool),
	}
}

// PassID identifies this resolution pass, for logging and error reports.
func (c *ResolveContext) PassID() uuid.UUID {
	return c.passID
}

// Scan splits s against the registry this pass belongs to, for callers that
// render token values into expression text rather than plain strings.
func (c *ResolveContext) Scan(s string) []Fragment {
	return c.reg.Scan(s)
}

// Resolve returns v with every reachable token replaced by its final
// representation. Nested lists and maps are resolved depth-first with map
// key casing preserved verbatim. Strings embedding tokens become target
// interpolation text; strings without markers pass through unchanged, so
// Resolve is idempotent on already-resolved input.
func (c *ResolveContext) Resolve(v any) (any, error) {
	return c.resolve(v, maxResolveIterations)
}

// ResolveToken runs the token's producer, memoized for the remainder of the
// pass. The returned value is the producer's output before any further
// post-processing.
func (c *ResolveContext) ResolveToken(t Token) (any, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("%w: zero token", ErrUnknownToken)
	}
	if t.reg != c.reg {
		return nil, fmt.Errorf("%w: token %d belongs to a different registry", ErrUnknownToken, t.id)
	}
	if v, ok := c.memo[t.id]; ok {
		return v, nil
	}
	if c.resolving[t.id] {
		return nil, fmt.Errorf("%w: token %d refers to itself (pass %s)", ErrCyclicReference, t.id, c.passID)
	}
	p, ok := c.reg.producers[t.id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownToken, t.id)
	}
	c.resolving[t.id] = true
	out, err := p(c)
	delete(c.resolving, t.id)
	if err != nil {
		return nil, err
	}
	c.memo[t.id] = out
	return out, nil
}

func (c *ResolveContext) resolve(v any, budget int) (any, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: no fixed point after %d iterations (pass %s)",
			ErrCyclicReference, maxResolveIterations, c.passID)
	}
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return c.resolveString(val, budget)
	case Raw:
		return "${" + string(val) + "}", nil
	case Token:
		out, err := c.ResolveToken(val)
		if err != nil {
			return nil, err
		}
		return c.resolve(out, budget-1)
	case []any:
		resolved := make([]any, len(val))
		for i, elem := range val {
			out, err := c.resolve(elem, budget)
			if err != nil {
				return nil, err
			}
			resolved[i] = out
		}
		return resolved, nil
	case map[string]any:
		resolved := make(map[string]any, len(val))
		for k, elem := range val {
			out, err := c.resolve(elem, budget)
			if err != nil {
				return nil, err
			}
			// Keys are caller data, never normalized.
			resolved[k] = out
		}
		return resolved, nil
	case cty.Value:
		native, err := nativeFromCty(val)
		if err != nil {
			return nil, err
		}
		return c.resolve(native, budget)
	default:
		return v, nil
	}
}

func (c *ResolveContext) resolveString(s string, budget int) (any, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: no fixed point after %d iterations (pass %s)",
			ErrCyclicReference, maxResolveIterations, c.passID)
	}
	frags := c.reg.Scan(s)
	switch {
	case len(frags) == 0:
		return s, nil
	case len(frags) == 1 && !frags[0].IsToken:
		return s, nil
	case len(frags) == 1 && frags[0].IsToken:
		// The string is one whole token reference. Structured producer
		// output surfaces as the structure itself; a Raw expression becomes
		// the bare interpolation with no literal quoting around it.
		out, err := c.ResolveToken(frags[0].Token)
		if err != nil {
			return nil, err
		}
		return c.resolve(out, budget-1)
	}

	var buf strings.Builder
	for _, frag := range frags {
		if !frag.IsToken {
			buf.WriteString(frag.Literal)
			continue
		}
		out, err := c.ResolveToken(frag.Token)
		if err != nil {
			return nil, err
		}
		text, err := c.renderInString(out, budget)
		if err != nil {
			return nil, err
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

// renderInString renders a resolved token value for splicing between string
// fragments.
func (c *ResolveContext) renderInString(v any, budget int) (string, error) {
	switch val := v.(type) {
	case Raw:
		return "${" + string(val) + "}", nil
	case string:
		out, err := c.resolveString(val, budget-1)
		if err != nil {
			return "", err
		}
		text, ok := out.(string)
		if !ok {
			return "", fmt.Errorf("cannot splice %T into a string", out)
		}
		return text, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case json.Number:
		return val.String(), nil
	case Token:
		out, err := c.ResolveToken(val)
		if err != nil {
			return "", err
		}
		return c.renderInString(out, budget-1)
	case nil:
		return "", fmt.Errorf("token resolved to null inside a string")
	default:
		return "", fmt.Errorf("cannot splice %T into a string", v)
	}
}

// nativeFromCty converts a cty value into the plain Go representation the
// resolver works with, going through cty's JSON serialization so that
// object attribute names and map keys survive verbatim.
func nativeFromCty(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, fmt.Errorf("cannot convert cty value: %w", err)
	}
	var native any
	if err := json.Unmarshal(raw, &native); err != nil {
		return nil, fmt.Errorf("cannot convert cty value: %w", err)
	}
	return native, nil
}
