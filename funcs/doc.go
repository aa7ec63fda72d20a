// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package funcs builds lazy expression trees for the engine's built-in
// functions, such as lower(...) and join(...). A function call is a token
// whose producer renders "name(arg, arg, ...)" in the target expression
// syntax; arguments may be plain literals, other tokens, nested calls, or
// lists and maps mixing all of these.
//
// Rendering is reference-identity based: an argument that embeds a token
// resolves through the active pass's memoized context, so the same
// underlying reference renders byte-identically whether it appears inside a
// call, inside several calls, or standalone in attribute text.
package funcs
