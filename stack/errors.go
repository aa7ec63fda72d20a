// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"errors"
)

// The tree construction error taxonomy. All of these report programmer
// errors in how the tree was built; none are retryable.
var (
	// ErrNamingCollision is reported when two siblings would share a name.
	ErrNamingCollision = errors.New("sibling name collision")

	// ErrInvalidAddress is reported when a fully-qualified address is
	// requested for a node that has no element kind.
	ErrInvalidAddress = errors.New("node has no addressable element kind")

	// ErrFrozenIdentity is reported when a logical id would change after the
	// node's address has already been read.
	ErrFrozenIdentity = errors.New("logical id is frozen because the address was already read")

	// ErrInvalidIdentifier is reported for logical ids that are empty, are
	// not valid identifiers, or contain a deferred value. Addresses must be
	// computable without running a resolution pass, so a token can never
	// stand in for an id.
	ErrInvalidIdentifier = errors.New("invalid logical id")

	// ErrUnboundIterator is reported when an iterator accessor is resolved
	// before the iterator was bound to a node via ForEach.
	ErrUnboundIterator = errors.New("iterator accessor resolved before binding")
)
