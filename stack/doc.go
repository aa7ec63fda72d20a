// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package stack implements the construct tree: an imperative object graph of
// providers, resources, data sources and outputs that the synthesizer later
// compiles into a single configuration document.
//
// A Stack is the tree root and owns the token registry its deferred values
// are created against. Nodes are identified by caller-chosen logical ids,
// unique among siblings; a node's fully-qualified address is derived from
// its path and declared type, and the logical id freezes the first time the
// address is read by anyone.
package stack
