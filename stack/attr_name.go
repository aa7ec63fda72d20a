// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"strings"
	"unicode"
)

// terraformAttributeName converts the construct API's camelCase attribute
// names into the engine's snake_case convention: "stringValue" becomes
// "string_value". Names already in snake_case pass through unchanged.
// Nested accessor paths convert per dot-separated segment.
func terraformAttributeName(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return terraformAttributeName(name[:i]) + "." + terraformAttributeName(name[i+1:])
	}
	var buf strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				buf.WriteByte('_')
			}
			buf.WriteRune(unicode.ToLower(r))
			continue
		}
		buf.WriteRune(r)
	}
	return buf.String()
}
