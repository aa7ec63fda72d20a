// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package addrs

// ElementKind distinguishes the top-level block kinds a construct can
// compile into. The zero value represents a construct with no element kind
// at all, such as a grouping scope, which therefore has no valid
// fully-qualified address.
type ElementKind rune

const (
	NoKind         ElementKind = 0
	ResourceKind   ElementKind = 'R'
	DataSourceKind ElementKind = 'D'
	ProviderKind   ElementKind = 'P'
	OutputKind     ElementKind = 'O'
)

// BlockName returns the top-level block name used for this kind in the
// compiled document.
func (k ElementKind) BlockName() string {
	switch k {
	case ResourceKind:
		return "resource"
	case DataSourceKind:
		return "data"
	case ProviderKind:
		return "provider"
	case OutputKind:
		return "output"
	default:
		return ""
	}
}

func (k ElementKind) String() string {
	if k == NoKind {
		return "none"
	}
	return k.BlockName()
}
