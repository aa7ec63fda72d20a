// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package hclstring formats Go strings as HCL quoted string templates, for
// use when rendering expression text such as instance keys and function
// arguments.
package hclstring

import (
	"fmt"
	"strings"
	"unicode"
)

// Quote formats s in a way that HCL's expression parser would treat as a
// quoted string template: surrounding quote marks, backslash escapes for
// characters that cannot appear directly, and escaping of anything that
// would otherwise introduce a template interpolation or control sequence.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// Escape renders the body of a quoted string template without the
// surrounding quote marks, so callers can splice interpolation sequences
// between escaped literal parts.
func Escape(s string) string {
	if len(s) == 0 {
		return ""
	}
	var buf strings.Builder
	for i, r := range s {
		switch r {
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '$', '%':
			buf.WriteRune(r)
			if remain := s[i+1:]; len(remain) > 0 && remain[0] == '{' {
				// Double the introducer symbol to escape it.
				buf.WriteRune(r)
			}
		default:
			if !unicode.IsPrint(r) {
				if r < 65536 {
					fmt.Fprintf(&buf, "\\u%04x", r)
				} else {
					fmt.Fprintf(&buf, "\\U%08x", r)
				}
			} else {
				buf.WriteRune(r)
			}
		}
	}
	return buf.String()
}
