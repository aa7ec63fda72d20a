// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

// Package version holds the library's own version number, parsed once so
// misuse fails loudly at startup rather than at some later comparison.
package version

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// Version is the main version number currently in development.
var Version = "0.1.0"

// Prerelease is a pre-release marker such as "dev" or "beta1", or "" for a
// final release.
var Prerelease = "dev"

// SemVer is the parsed form of Version, for constraint checks.
var SemVer = version.Must(version.NewVersion(Version))

// String returns the complete version string, including the pre-release
// suffix when present.
func String() string {
	if Prerelease != "" {
		return fmt.Sprintf("%s-%s", Version, Prerelease)
	}
	return Version
}
