// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package synth

import (
	"encoding/json"
)

// Document is the compiled configuration: top-level buckets for each block
// kind, keyed by declared type and then logical id, plus flat directive
// lists for structural edits. All values are fully resolved; no token
// markers remain anywhere in a Document.
type Document struct {
	Terraform   *Settings                            `json:"terraform,omitempty"`
	Providers   map[string][]map[string]any          `json:"provider,omitempty"`
	Resources   map[string]map[string]map[string]any `json:"resource,omitempty"`
	DataSources map[string]map[string]map[string]any `json:"data,omitempty"`
	Outputs     map[string]map[string]any            `json:"output,omitempty"`
	Moved       []MovedBlock                         `json:"moved,omitempty"`
	Imports     []ImportBlock                        `json:"import,omitempty"`
}

// Settings is the document's terraform block.
type Settings struct {
	RequiredVersion   string                       `json:"required_version,omitempty"`
	RequiredProviders map[string]map[string]string `json:"required_providers,omitempty"`
}

// MovedBlock records that state at one address now lives at another.
type MovedBlock struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ImportBlock adopts existing external state into the resource at To.
type ImportBlock struct {
	To       string `json:"to"`
	ID       any    `json:"id"`
	Provider string `json:"provider,omitempty"`
}

func newDocument() *Document {
	return &Document{
		Providers:   make(map[string][]map[string]any),
		Resources:   make(map[string]map[string]map[string]any),
		DataSources: make(map[string]map[string]map[string]any),
		Outputs:     make(map[string]map[string]any),
	}
}

// Marshal renders the document as indented JSON. Object keys serialize in
// sorted order, so marshaling the same document twice is byte-identical.
func (d *Document) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
