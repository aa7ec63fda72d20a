// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package addrs contains types that represent the logical addresses of
// objects within a compiled configuration: element kinds, resource and data
// source targets, instance keys for iterated objects, and provider
// configuration references.
//
// Addresses in this package are value types that are cheap to copy and
// compare. Parsing goes through HCL's traversal syntax so that anything we
// accept here can also be parsed back by the provisioning engine.
package addrs
