// Copyright (c) The Terraform CDK Authors
// SPDX-License-Identifier: MPL-2.0

package hclstring

import (
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
	}{
		{``, `""`},
		{`hello`, `"hello"`},
		{"hello\nworld", `"hello\nworld"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{`costs ${amount}`, `"costs $${amount}"`},
		{`50% of %{it}`, `"50% of %%{it}"`},
		{`plain $ sign`, `"plain $ sign"`},
		{"tab\there", `"tab\there"`},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			if got := Quote(test.Input); got != test.Want {
				t.Errorf("wrong result\ninput: %s\ngot:   %s\nwant:  %s", test.Input, got, test.Want)
			}
		})
	}
}

func TestEscapeNoQuotes(t *testing.T) {
	if got := Escape(`a "b" c`); got != `a \"b\" c` {
		t.Errorf("wrong result: %s", got)
	}
}
