// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package stack

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/ddigitech/terraform-cdk/addrs"
)

// Tree renders the construct tree for debugging, one branch per node with
// its kind and declared type.
func (s *Stack) Tree() string {
	root := treeprint.NewWithRoot(s.name)
	addBranches(root, s.node)
	return root.String()
}

func addBranches(branch treeprint.Tree, n *Node) {
	for _, child := range n.children {
		label := child.name
		switch child.kind {
		case addrs.NoKind:
			// Grouping node; the bare name is enough.
		case addrs.OutputKind:
			label = fmt.Sprintf("%s (%s)", child.name, child.kind)
		default:
			label = fmt.Sprintf("%s (%s %s)", child.name, child.kind, child.declType)
		}
		addBranches(branch.AddBranch(label), child)
	}
}
