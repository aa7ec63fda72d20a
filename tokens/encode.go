// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package tokens

import (
	"strings"
)

// The marker scheme: "${TfToken[TOKEN.<id>]}" where <id> is strictly
// numeric. The introducer cannot occur in ordinary attribute text unless a
// caller writes it out deliberately, and the numeric id plus fixed
// terminator make scanning unambiguous without any escaping rules.
const (
	markerPrefix = "${TfToken[TOKEN."
	markerSuffix = "]}"
)

// Fragment is one piece of a scanned string: either literal text or a
// reference to an embedded token.
type Fragment struct {
	Literal string
	Token   Token
	IsToken bool
}

// ContainsMarker reports whether s embeds at least one token marker. It is
// used to reject deferred values in places that must be resolvable without
// running a resolution pass, such as logical ids.
func ContainsMarker(s string) bool {
	return strings.Contains(s, markerPrefix)
}

// Decode returns the token encoded by s if s consists of exactly one marker
// and nothing else, which is how a value that *is* a token (rather than a
// string embedding one) travels.
func (r *Registry) Decode(s string) (Token, bool) {
	frags := r.Scan(s)
	if len(frags) == 1 && frags[0].IsToken {
		return frags[0].Token, true
	}
	return Token{}, false
}

// Scan splits s into literal and token fragments. Text that merely looks
// like a marker but has a malformed id is kept as literal text.
func (r *Registry) Scan(s string) []Fragment {
	var frags []Fragment
	for len(s) > 0 {
		start := strings.Index(s, markerPrefix)
		if start < 0 {
			frags = append(frags, Fragment{Literal: s})
			break
		}
		rest := s[start+len(markerPrefix):]
		idLen := 0
		for idLen < len(rest) && rest[idLen] >= '0' && rest[idLen] <= '9' {
			idLen++
		}
		if idLen == 0 || !strings.HasPrefix(rest[idLen:], markerSuffix) {
			// Not a well-formed marker after all; emit up to and including
			// the introducer and keep scanning.
			frags = append(frags, Fragment{Literal: s[:start+len(markerPrefix)]})
			s = rest
			continue
		}
		if start > 0 {
			frags = append(frags, Fragment{Literal: s[:start]})
		}
		id := 0
		for i := 0; i < idLen; i++ {
			id = id*10 + int(rest[i]-'0')
		}
		frags = append(frags, Fragment{Token: Token{reg: r, id: id}, IsToken: true})
		s = rest[idLen+len(markerSuffix):]
	}
	return frags
}
