// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

// Provisioner is one provisioner block: a type tag such as "local-exec"
// plus a free-form attribute payload the compiler passes through without
// interpreting, beyond resolving embedded references. Provisioners keep
// their declaration order verbatim in the compiled output.
type Provisioner struct {
	Type       string
	Attributes map[string]any
}
