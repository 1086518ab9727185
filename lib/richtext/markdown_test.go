// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"reflect"
	"testing"
)

func TestFromMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		text     string
		entities Entities
	}{
		{
			name:  "emphasis",
			input: "**bold** and _it_",
			text:  "bold and it",
			entities: Entities{
				Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 4}},
				Styled{Type: KindItalic, Pos: Position{Offset: 9, Length: 2}},
			},
		},
		{
			name:  "offsets after astral characters",
			input: "👍 **ok**",
			text:  "👍 ok",
			entities: Entities{
				Styled{Type: KindBold, Pos: Position{Offset: 3, Length: 2}},
			},
		},
		{
			name:  "inline code",
			input: "run `go test`",
			text:  "run go test",
			entities: Entities{
				Styled{Type: KindCode, Pos: Position{Offset: 4, Length: 7}},
			},
		},
		{
			name:  "link",
			input: "see [the docs](https://core.telegram.org/bots/api)",
			text:  "see the docs",
			entities: Entities{
				TextLink{Pos: Position{Offset: 4, Length: 8}, URL: "https://core.telegram.org/bots/api"},
			},
		},
		{
			name:  "heading and paragraph",
			input: "# Title\n\nBody",
			text:  "Title\n\nBody",
			entities: Entities{
				Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 5}},
			},
		},
		{
			name:  "fenced code with language alias",
			input: "```golang\nfmt.Println()\n```",
			text:  "fmt.Println()",
			entities: Entities{
				Pre{Pos: Position{Offset: 0, Length: 13}, Language: "go"},
			},
		},
		{
			name:  "strikethrough",
			input: "~~gone~~",
			text:  "gone",
			entities: Entities{
				Styled{Type: KindStrikethrough, Pos: Position{Offset: 0, Length: 4}},
			},
		},
		{
			name:  "blockquote",
			input: "intro\n\n> quoted",
			text:  "intro\n\nquoted",
			entities: Entities{
				Styled{Type: KindBlockquote, Pos: Position{Offset: 7, Length: 6}},
			},
		},
		{
			name:  "tight list",
			input: "- one\n- two",
			text:  "• one\n• two",
		},
		{
			name:  "ordered list",
			input: "3. a\n4. b",
			text:  "3. a\n4. b",
		},
		{
			name:  "nested emphasis",
			input: "**a _b_**",
			text:  "a b",
			entities: Entities{
				Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 3}},
				Styled{Type: KindItalic, Pos: Position{Offset: 2, Length: 1}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			text, err := FromMarkdown(test.input)
			if err != nil {
				t.Fatalf("FromMarkdown: %v", err)
			}
			if text.String() != test.text {
				t.Errorf("text = %q, want %q", text.String(), test.text)
			}
			if !reflect.DeepEqual(text.Entities(), test.entities) {
				t.Errorf("entities = %#v, want %#v", text.Entities(), test.entities)
			}
			if text.ParseMode() != "" {
				t.Errorf("ParseMode() = %q, want empty", text.ParseMode())
			}
			if err := text.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestFromMarkdown_Empty(t *testing.T) {
	text, err := FromMarkdown("")
	if err != nil {
		t.Fatalf("FromMarkdown: %v", err)
	}
	if !text.IsEmpty() || text.Entities() != nil {
		t.Errorf("got %q with %d entities, want empty text", text.String(), len(text.Entities()))
	}
}

func TestCanonicalLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "golang", expected: "go"},
		{input: "go", expected: "go"},
		{input: "NoSuchLanguage", expected: "nosuchlanguage"},
	}
	for _, test := range tests {
		if got := CanonicalLanguage(test.input); got != test.expected {
			t.Errorf("CanonicalLanguage(%q) = %q, want %q", test.input, got, test.expected)
		}
	}
}
