// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"errors"
	"slices"
	"testing"
)

func commandText(data string, offset, length uint32) Text {
	return FromWire(data, Entities{
		Styled{Type: KindBotCommand, Pos: Position{Offset: offset, Length: length}},
	})
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     Text
		expected Command
	}{
		{
			name:     "quoted argument",
			text:     commandText("/testcommand 'arg1 v' arg2", 0, 12),
			expected: Command{Name: "/testcommand", Args: []string{"arg1 v", "arg2"}},
		},
		{
			name:     "bot name",
			text:     commandText(`/deploy@tester "eu west" --force`, 0, 14),
			expected: Command{Name: "/deploy", BotName: "tester", Args: []string{"eu west", "--force"}},
		},
		{
			name:     "emoji before the command",
			text:     commandText("🎉 /release v1.2 'notes 🚀'", 3, 8),
			expected: Command{Name: "/release", Args: []string{"v1.2", "notes 🚀"}},
		},
		{
			name:     "no arguments",
			text:     commandText("/start", 0, 6),
			expected: Command{Name: "/start"},
		},
		{
			name: "first command wins",
			text: FromWire("/first a /second b", Entities{
				Styled{Type: KindBotCommand, Pos: Position{Offset: 0, Length: 6}},
				Styled{Type: KindBotCommand, Pos: Position{Offset: 9, Length: 7}},
			}),
			expected: Command{Name: "/first", Args: []string{"a", "/second", "b"}},
		},
		{
			name: "out of range entity is skipped",
			text: FromWire("/ok go", Entities{
				Styled{Type: KindBotCommand, Pos: Position{Offset: 4, Length: 10}},
				Styled{Type: KindBotCommand, Pos: Position{Offset: 0, Length: 3}},
			}),
			expected: Command{Name: "/ok", Args: []string{"go"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			command, err := ParseCommand(test.text)
			if err != nil {
				t.Fatalf("ParseCommand: %v", err)
			}
			if command.Name != test.expected.Name || command.BotName != test.expected.BotName {
				t.Errorf("command = %q@%q, want %q@%q", command.Name, command.BotName, test.expected.Name, test.expected.BotName)
			}
			if !slices.Equal(command.Args, test.expected.Args) {
				t.Errorf("Args = %q, want %q", command.Args, test.expected.Args)
			}
		})
	}
}

func TestParseCommand_NotFound(t *testing.T) {
	tests := []struct {
		name string
		text Text
	}{
		{name: "plain text", text: Plain("/start")},
		{name: "other entities only", text: FromWire("hello", Entities{Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 5}}})},
		{name: "entity outside the text", text: commandText("/a", 1, 5)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseCommand(test.text); !errors.Is(err, ErrCommandNotFound) {
				t.Errorf("expected ErrCommandNotFound, got %v", err)
			}
		})
	}
}

func TestParseCommand_MismatchedQuotes(t *testing.T) {
	_, err := ParseCommand(commandText("/note 'unclosed", 0, 5))
	if !errors.Is(err, ErrCommandArguments) {
		t.Fatalf("expected ErrCommandArguments, got %v", err)
	}
	if errors.Is(err, ErrCommandNotFound) {
		t.Error("a quoting error is not ErrCommandNotFound")
	}
}
