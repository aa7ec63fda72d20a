// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package addrs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		Input   string
		Want    Target
		WantErr bool
	}{
		{
			Input: `test_resource.example`,
			Want:  Target{Kind: ResourceKind, Type: "test_resource", Name: "example"},
		},
		{
			Input: `data.test_data.example`,
			Want:  Target{Kind: DataSourceKind, Type: "test_data", Name: "example"},
		},
		{
			Input: `module.a.test_resource.example`,
			Want:  Target{Module: []string{"a"}, Kind: ResourceKind, Type: "test_resource", Name: "example"},
		},
		{
			Input: `module.a.module.b.data.test_data.example`,
			Want:  Target{Module: []string{"a", "b"}, Kind: DataSourceKind, Type: "test_data", Name: "example"},
		},
		{
			Input: `test_resource.example["blue"]`,
			Want:  Target{Kind: ResourceKind, Type: "test_resource", Name: "example", Key: StringKey("blue")},
		},
		{
			Input: `test_resource.example[3]`,
			Want:  Target{Kind: ResourceKind, Type: "test_resource", Name: "example", Key: IntKey(3)},
		},
		{
			Input:   `just_one_step`,
			WantErr: true,
		},
		{
			Input:   `too.many.steps.here`,
			WantErr: true,
		},
		{
			Input:   `not valid syntax !!`,
			WantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			got, err := ParseTarget(test.Input)
			if test.WantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.Want, got); diff != "" {
				t.Errorf("wrong result\n%s", diff)
			}
		})
	}
}

func TestTargetStringRoundTrip(t *testing.T) {
	inputs := []string{
		`test_resource.example`,
		`data.test_data.example`,
		`module.a.test_resource.example`,
		`test_resource.example["blue"]`,
		`test_resource.example[3]`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			target, err := ParseTarget(input)
			if err != nil {
				t.Fatal(err)
			}
			if got := target.String(); got != input {
				t.Errorf("round trip changed the address: got %s, want %s", got, input)
			}
		})
	}
}

func TestMoveEndpointString(t *testing.T) {
	target, err := ParseTarget(`test_resource.dest`)
	if err != nil {
		t.Fatal(err)
	}

	plain := MoveEndpoint{To: target}
	if got, want := plain.String(), `test_resource.dest`; got != want {
		t.Errorf("wrong plain endpoint: got %s, want %s", got, want)
	}

	keyed := MoveEndpoint{To: target, Key: StringKey("blue")}
	if got, want := keyed.String(), `test_resource.dest["blue"]`; got != want {
		t.Errorf("wrong keyed endpoint: got %s, want %s", got, want)
	}
}

func TestParseProviderConfig(t *testing.T) {
	tests := []struct {
		Input   string
		Want    ProviderConfig
		WantErr bool
	}{
		{Input: `aws`, Want: ProviderConfig{Type: "aws"}},
		{Input: `aws.west`, Want: ProviderConfig{Type: "aws", Alias: "west"}},
		{Input: `aws.west.more`, WantErr: true},
		{Input: `not an identifier`, WantErr: true},
	}
	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			got, err := ParseProviderConfig(test.Input)
			if test.WantErr {
				if err == nil {
					t.Fatalf("expected error, got %#v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.Want {
				t.Errorf("wrong result: got %#v, want %#v", got, test.Want)
			}
			if got.String() != test.Input {
				t.Errorf("String round trip: got %s, want %s", got.String(), test.Input)
			}
		})
	}
}
