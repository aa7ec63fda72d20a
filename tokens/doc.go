// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package tokens implements the deferred value engine: opaque placeholders
// for values that are not yet known while the construct tree is being built,
// such as another resource's computed attribute or an iteration variable.
//
// A Token is created against a Registry with a producer function that yields
// its final representation during resolution. Tokens encode into ordinary
// strings through an unambiguous marker scheme, so they can be embedded in
// string, list and map values at arbitrary depth and survive concatenation.
//
// Resolution happens through a ResolveContext, created fresh for each
// synthesis pass. Within one pass each distinct token's producer runs exactly
// once; the result is memoized so that every embedding of the same token
// renders byte-identical text. Producer output that itself contains markers
// is resolved again until a fixed point is reached, bounded by a fixed
// iteration budget whose overrun is reported as a cyclic reference.
package tokens
