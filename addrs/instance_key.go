// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package addrs

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/ddigitech/terraform-cdk/internal/hclstring"
)

// InstanceKey represents the key of one instance within an object that has
// multiple instances because its declaration iterates with "for_each".
//
// IntKey and StringKey are the only two implementations. The single instance
// of an object that does not iterate is represented by NoKey, which is a nil
// InstanceKey.
type InstanceKey interface {
	instanceKeySigil()
	String() string

	// Value returns the cty.Value of the appropriate type for the key.
	Value() cty.Value
}

// NoKey represents the absence of an InstanceKey, for an object that does
// not iterate at all.
var NoKey InstanceKey

// MakeInstanceKey converts a caller-supplied key value into an InstanceKey.
// Integers become IntKey, strings become StringKey; anything else is an
// error.
func MakeInstanceKey(raw any) (InstanceKey, error) {
	switch k := raw.(type) {
	case nil:
		return NoKey, nil
	case int:
		return IntKey(k), nil
	case string:
		return StringKey(k), nil
	case InstanceKey:
		return k, nil
	default:
		return NoKey, fmt.Errorf("instance key must be a string or an integer, not %T", raw)
	}
}

// IntKey is the InstanceKey representation for integer indices, used when
// iterating over a sequence.
type IntKey int

func (k IntKey) instanceKeySigil() {}

func (k IntKey) String() string {
	return fmt.Sprintf("[%d]", int(k))
}

func (k IntKey) Value() cty.Value {
	return cty.NumberIntVal(int64(k))
}

// StringKey is the InstanceKey representation for string indices, used when
// iterating over a map.
type StringKey string

func (k StringKey) instanceKeySigil() {}

func (k StringKey) String() string {
	// HCL's quoting syntax, so that an address rendered by this package can
	// be parsed back as an HCL traversal even if the key contains HCL
	// metacharacters.
	return fmt.Sprintf("[%s]", hclstring.Quote(string(k)))
}

func (k StringKey) Value() cty.Value {
	return cty.StringVal(string(k))
}
