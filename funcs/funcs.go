// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package funcs

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/ddigitech/terraform-cdk/tokens"
)

// signature describes the arity of a known function. MaxArgs of -1 means
// variadic.
type signature struct {
	MinArgs int
	MaxArgs int
}

func builtinSignatures() map[string]signature {
	return map[string]signature{
		"lower":      {1, 1},
		"upper":      {1, 1},
		"join":       {2, 2},
		"split":      {2, 2},
		"replace":    {3, 3},
		"format":     {1, -1},
		"length":     {1, 1},
		"element":    {2, 2},
		"concat":     {1, -1},
		"lookup":     {2, 3},
		"keys":       {1, 1},
		"values":     {1, 1},
		"jsonencode": {1, 1},
		"tostring":   {1, 1},
		"tonumber":   {1, 1},
	}
}

// Fns builds function-call tokens against one token registry, normally the
// registry owned by the stack the calls will be synthesized in.
type Fns struct {
	reg   *tokens.Registry
	known map[string]signature
}

// New returns a function builder bound to reg.
func New(reg *tokens.Registry) *Fns {
	return &Fns{
		reg:   reg,
		known: builtinSignatures(),
	}
}

// Register adds a function name to the set this builder accepts, for
// engine extensions beyond the built-in table. maxArgs of -1 means variadic.
func (f *Fns) Register(name string, minArgs, maxArgs int) error {
	if !hclsyntax.ValidIdentifier(name) {
		return fmt.Errorf("invalid function name %q", name)
	}
	f.known[name] = signature{MinArgs: minArgs, MaxArgs: maxArgs}
	return nil
}

// Call builds a deferred call to any known function, returning the encoded
// token string. Unknown names and arity mismatches fail immediately, before
// the call ever reaches a resolution pass.
func (f *Fns) Call(name string, args ...any) (string, error) {
	sig, ok := f.known[name]
	if !ok {
		suggestion := nameSuggestion(name, f.knownNames())
		if suggestion != "" {
			return "", fmt.Errorf("unknown function %q; did you mean %q?", name, suggestion)
		}
		return "", fmt.Errorf("unknown function %q", name)
	}
	if len(args) < sig.MinArgs {
		return "", fmt.Errorf("function %q expects at least %d argument(s), got %d", name, sig.MinArgs, len(args))
	}
	if sig.MaxArgs >= 0 && len(args) > sig.MaxArgs {
		return "", fmt.Errorf("function %q expects at most %d argument(s), got %d", name, sig.MaxArgs, len(args))
	}

	call := Call{Name: name, Args: args}
	return f.reg.NewString(func(ctx *tokens.ResolveContext) (any, error) {
		text, err := Render(ctx, call)
		if err != nil {
			return nil, err
		}
		return tokens.Raw(text), nil
	}), nil
}

func (f *Fns) knownNames() []string {
	names := make([]string, 0, len(f.known))
	for name := range f.known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// The fixed-arity wrappers never fail: their names are in the table and
// their Go signatures enforce arity. The variadic wrappers (Format, Concat,
// Lookup) panic when called with an argument count the function rejects;
// use Call to get the error instead.

func (f *Fns) mustCall(name string, args ...any) string {
	s, err := f.Call(name, args...)
	if err != nil {
		panic("funcs: " + err.Error())
	}
	return s
}

// Lower converts a string to lowercase.
func (f *Fns) Lower(s any) string { return f.mustCall("lower", s) }

// Upper converts a string to uppercase.
func (f *Fns) Upper(s any) string { return f.mustCall("upper", s) }

// Join concatenates the elements of list with the separator between them.
func (f *Fns) Join(separator, list any) string { return f.mustCall("join", separator, list) }

// Split divides a string into a list at each occurrence of the separator.
func (f *Fns) Split(separator, s any) string { return f.mustCall("split", separator, s) }

// Replace substitutes occurrences of substr in s with replacement.
func (f *Fns) Replace(s, substr, replacement any) string {
	return f.mustCall("replace", s, substr, replacement)
}

// Format produces a string by formatting the arguments per the template.
func (f *Fns) Format(template any, args ...any) string {
	return f.mustCall("format", append([]any{template}, args...)...)
}

// Length returns the number of elements in a collection or characters in a
// string.
func (f *Fns) Length(v any) string { return f.mustCall("length", v) }

// Element retrieves one element of a list by index, wrapping around when the
// index exceeds the list length.
func (f *Fns) Element(list, index any) string { return f.mustCall("element", list, index) }

// Concat combines two or more lists into one.
func (f *Fns) Concat(lists ...any) string { return f.mustCall("concat", lists...) }

// Lookup retrieves a map value by key, with an optional default.
func (f *Fns) Lookup(args ...any) string { return f.mustCall("lookup", args...) }

// Jsonencode serializes its argument as a JSON string.
func (f *Fns) Jsonencode(v any) string { return f.mustCall("jsonencode", v) }
