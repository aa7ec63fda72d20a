// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/ddigitech/terraform-cdk/internal/hclstring"
	"github.com/ddigitech/terraform-cdk/tokens"
)

// Expression is the closed set of expression forms the renderer understands.
// User code normally does not construct these directly; they are produced by
// the function builders and consumed during resolution.
type Expression interface {
	exprSigil()
}

// Literal is a plain value rendered in the target's literal syntax.
type Literal struct {
	Value any
}

// Ref is already-rendered reference text, inlined verbatim.
type Ref struct {
	Expr string
}

// Call is a function application. Args hold arbitrary attribute values and
// are rendered lazily, so they may embed tokens or further expressions.
type Call struct {
	Name string
	Args []any
}

// List is a list literal whose elements are rendered independently.
type List struct {
	Elems []any
}

// Map is a map literal. Keys render verbatim (quoted); entries are sorted by
// key for deterministic output.
type Map struct {
	Entries map[string]any
}

func (Literal) exprSigil() {}
func (Ref) exprSigil()     {}
func (Call) exprSigil()    {}
func (List) exprSigil()    {}
func (Map) exprSigil()     {}

// Render produces target-syntax expression text for e, resolving any
// embedded tokens through ctx.
func Render(ctx *tokens.ResolveContext, e Expression) (string, error) {
	switch expr := e.(type) {
	case Literal:
		return renderValue(ctx, expr.Value)
	case Ref:
		return expr.Expr, nil
	case Call:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			text, err := renderValue(ctx, arg)
			if err != nil {
				return "", fmt.Errorf("argument %d of %s: %w", i+1, expr.Name, err)
			}
			args[i] = text
		}
		return expr.Name + "(" + strings.Join(args, ", ") + ")", nil
	case List:
		return renderList(ctx, expr.Elems)
	case Map:
		return renderMap(ctx, expr.Entries)
	default:
		return "", fmt.Errorf("unsupported expression type %T", e)
	}
}

// renderValue renders an arbitrary attribute value as expression text:
// strings are quoted, references inlined, nested structures rendered
// recursively.
func renderValue(ctx *tokens.ResolveContext, v any) (string, error) {
	switch val := v.(type) {
	case Expression:
		return Render(ctx, val)
	case tokens.Raw:
		return string(val), nil
	case tokens.Token:
		out, err := ctx.ResolveToken(val)
		if err != nil {
			return "", err
		}
		return renderResolved(ctx, out)
	case string:
		return renderString(ctx, val)
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case nil:
		return "null", nil
	case []any:
		return renderList(ctx, val)
	case map[string]any:
		return renderMap(ctx, val)
	case []string:
		elems := make([]any, len(val))
		for i, s := range val {
			elems[i] = s
		}
		return renderList(ctx, elems)
	case cty.Value:
		native, err := ctx.Resolve(val)
		if err != nil {
			return "", err
		}
		return renderValue(ctx, native)
	default:
		return "", fmt.Errorf("cannot render %T as an expression", v)
	}
}

// renderResolved renders a resolved token value in expression position. A
// Raw reference inlines without interpolation wrapping; everything else
// renders as a literal.
func renderResolved(ctx *tokens.ResolveContext, v any) (string, error) {
	if raw, ok := v.(tokens.Raw); ok {
		return string(raw), nil
	}
	return renderValue(ctx, v)
}

// renderString renders a string argument, which may embed token markers. A
// string that is exactly one token inlines that token's reference; a mixed
// string becomes a quoted template with interpolations spliced between
// escaped literal parts.
func renderString(ctx *tokens.ResolveContext, s string) (string, error) {
	frags := ctx.Scan(s)
	hasToken := false
	for _, f := range frags {
		if f.IsToken {
			hasToken = true
			break
		}
	}
	if !hasToken {
		return hclstring.Quote(s), nil
	}
	if len(frags) == 1 {
		out, err := ctx.ResolveToken(frags[0].Token)
		if err != nil {
			return "", err
		}
		return renderResolved(ctx, out)
	}

	var buf strings.Builder
	buf.WriteByte('"')
	for _, frag := range frags {
		if !frag.IsToken {
			buf.WriteString(hclstring.Escape(frag.Literal))
			continue
		}
		out, err := ctx.ResolveToken(frag.Token)
		if err != nil {
			return "", err
		}
		switch res := out.(type) {
		case tokens.Raw:
			buf.WriteString("${")
			buf.WriteString(string(res))
			buf.WriteString("}")
		case string:
			nested, err := renderString(ctx, res)
			if err != nil {
				return "", err
			}
			// nested is already a quoted template or inline reference;
			// splice its interpolated form.
			buf.WriteString(spliceTemplate(nested))
		default:
			text, err := renderValue(ctx, res)
			if err != nil {
				return "", err
			}
			buf.WriteString(spliceTemplate(text))
		}
	}
	buf.WriteByte('"')
	return buf.String(), nil
}

// spliceTemplate embeds rendered expression text into the body of a quoted
// template: a quoted string contributes its body, anything else becomes an
// interpolation sequence.
func spliceTemplate(rendered string) string {
	if len(rendered) >= 2 && rendered[0] == '"' && rendered[len(rendered)-1] == '"' {
		return rendered[1 : len(rendered)-1]
	}
	return "${" + rendered + "}"
}

func renderList(ctx *tokens.ResolveContext, elems []any) (string, error) {
	parts := make([]string, len(elems))
	for i, elem := range elems {
		text, err := renderValue(ctx, elem)
		if err != nil {
			return "", err
		}
		parts[i] = text
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func renderMap(ctx *tokens.ResolveContext, entries map[string]any) (string, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		text, err := renderValue(ctx, entries[k])
		if err != nil {
			return "", err
		}
		parts[i] = hclstring.Quote(k) + " = " + text
	}
	return "{ " + strings.Join(parts, ", ") + " }", nil
}
