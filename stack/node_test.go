// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"errors"
	"testing"

	"github.com/ddigitech/terraform-cdk/tokens"
)

func testStack(t *testing.T) *Stack {
	t.Helper()
	s, err := New("test")
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAddress(t *testing.T) {
	s := testStack(t)
	r, err := s.NewResource("test_resource", "resource")
	if err != nil {
		t.Fatal(err)
	}

	addr, err := r.Node().Address()
	if err != nil {
		t.Fatal(err)
	}
	if want := "test_resource.resource"; addr != want {
		t.Errorf("wrong address: got %s, want %s", addr, want)
	}

	// Reading the address twice returns the same string both times.
	again, err := r.Node().Address()
	if err != nil {
		t.Fatal(err)
	}
	if again != addr {
		t.Errorf("address changed between reads: %s then %s", addr, again)
	}
}

func TestAddressPerKind(t *testing.T) {
	s := testStack(t)

	d, err := s.NewDataSource("test_data", "example")
	if err != nil {
		t.Fatal(err)
	}
	if addr, _ := d.Node().Address(); addr != "data.test_data.example" {
		t.Errorf("wrong data source address: %s", addr)
	}

	p, err := s.NewProvider("aws", "west")
	if err != nil {
		t.Fatal(err)
	}
	if addr, _ := p.Node().Address(); addr != "aws.west" {
		t.Errorf("wrong provider address: %s", addr)
	}

	o, err := s.NewOutput("endpoint", "v")
	if err != nil {
		t.Fatal(err)
	}
	if addr, _ := o.Node().Address(); addr != "output.endpoint" {
		t.Errorf("wrong output address: %s", addr)
	}
}

func TestAddressOnKindlessNode(t *testing.T) {
	s := testStack(t)
	group, err := s.NewGroup("networking")
	if err != nil {
		t.Fatal(err)
	}

	_, err = group.Node().Address()
	if !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestNestedGroupAddress(t *testing.T) {
	s := testStack(t)
	group, err := s.NewGroup("networking")
	if err != nil {
		t.Fatal(err)
	}
	r, err := group.NewResource("test_resource", "subnet")
	if err != nil {
		t.Fatal(err)
	}

	addr, err := r.Node().Address()
	if err != nil {
		t.Fatal(err)
	}
	if want := "test_resource.networking_subnet"; addr != want {
		t.Errorf("wrong address: got %s, want %s", addr, want)
	}
}

func TestSiblingNameCollision(t *testing.T) {
	s := testStack(t)
	if _, err := s.NewResource("test_resource", "dupe"); err != nil {
		t.Fatal(err)
	}
	_, err := s.NewResource("other_type", "dupe")
	if !errors.Is(err, ErrNamingCollision) {
		t.Errorf("wrong error: %v", err)
	}

	// The same name under a different parent is fine.
	group, err := s.NewGroup("grp")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := group.NewResource("test_resource", "dupe"); err != nil {
		t.Errorf("unexpected error for same name under another parent: %v", err)
	}
}

func TestOverrideLogicalID(t *testing.T) {
	s := testStack(t)
	r, err := s.NewResource("test_resource", "original")
	if err != nil {
		t.Fatal(err)
	}

	// Before any address read, the id is mutable and changes the address.
	if err := r.Node().OverrideLogicalID("renamed"); err != nil {
		t.Fatal(err)
	}
	addr, err := r.Node().Address()
	if err != nil {
		t.Fatal(err)
	}
	if want := "test_resource.renamed"; addr != want {
		t.Errorf("wrong address after override: got %s, want %s", addr, want)
	}

	// After the address has been read it is frozen.
	err = r.Node().OverrideLogicalID("again")
	if !errors.Is(err, ErrFrozenIdentity) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestTokenAsLogicalID(t *testing.T) {
	s := testStack(t)
	marker := s.Registry().NewString(func(*tokens.ResolveContext) (any, error) {
		return "x", nil
	})

	_, err := s.NewResource("test_resource", marker)
	if !errors.Is(err, ErrInvalidIdentifier) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestInvalidLogicalID(t *testing.T) {
	s := testStack(t)
	for _, id := range []string{"", "has space", "has.dot"} {
		if _, err := s.NewResource("test_resource", id); !errors.Is(err, ErrInvalidIdentifier) {
			t.Errorf("id %q: wrong error: %v", id, err)
		}
	}
}
