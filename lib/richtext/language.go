// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// CanonicalLanguage normalizes the language tag of a code block to the
// primary alias of the matching syntax lexer, so "golang" and "Go" both
// become "go". Unknown names are lowercased and otherwise kept.
func CanonicalLanguage(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		return strings.ToLower(name)
	}
	config := lexer.Config()
	if len(config.Aliases) > 0 {
		return config.Aliases[0]
	}
	return strings.ToLower(config.Name)
}
