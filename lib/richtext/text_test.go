// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"errors"
	"reflect"
	"testing"
)

func TestTextBuilder_ParseModeAndEntitiesExclusive(t *testing.T) {
	bold := Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 2}}

	text := NewText("hi").WithParseMode(ParseModeHTML).WithEntities(bold).Build()
	if text.ParseMode() != "" {
		t.Errorf("entities after parse mode: ParseMode() = %q, want empty", text.ParseMode())
	}
	if len(text.Entities()) != 1 {
		t.Errorf("entities after parse mode: got %d entities, want 1", len(text.Entities()))
	}

	text = NewText("hi").WithEntities(bold).WithParseMode(ParseModeMarkdownV2).Build()
	if text.ParseMode() != ParseModeMarkdownV2 {
		t.Errorf("parse mode after entities: ParseMode() = %q, want %q", text.ParseMode(), ParseModeMarkdownV2)
	}
	if text.Entities() != nil {
		t.Errorf("parse mode after entities: Entities() = %v, want nil", text.Entities())
	}

	text = NewText("hi").WithParseMode(ParseModeHTML).AddEntity(bold).Build()
	if text.ParseMode() != "" || len(text.Entities()) != 1 {
		t.Errorf("AddEntity should clear parse mode: got mode %q, %d entities", text.ParseMode(), len(text.Entities()))
	}
}

func TestTextBuilder_BuildIsImmutable(t *testing.T) {
	builder := NewText("abc").AddEntity(Styled{Type: KindBold, Pos: Position{Length: 1}})
	first := builder.Build()
	builder.AddEntity(Styled{Type: KindItalic, Pos: Position{Offset: 1, Length: 1}})
	if len(first.Entities()) != 1 {
		t.Errorf("built text changed after builder reuse: %d entities", len(first.Entities()))
	}

	entities := first.Entities()
	entities[0] = Styled{Type: KindCode}
	if first.Entities()[0].Kind() != KindBold {
		t.Error("Entities() must return a copy")
	}
}

func TestTextValidate(t *testing.T) {
	// "👍 ok" is 5 UTF-16 units.
	tests := []struct {
		name     string
		entity   Entity
		expected error
	}{
		{name: "whole text", entity: Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 5}}},
		{name: "after emoji", entity: Styled{Type: KindBold, Pos: Position{Offset: 3, Length: 2}}},
		{name: "offset past end", entity: Styled{Type: KindBold, Pos: Position{Offset: 6}}, expected: ErrBadOffset},
		{name: "length past end", entity: Styled{Type: KindBold, Pos: Position{Offset: 3, Length: 3}}, expected: ErrBadLength},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := NewText("👍 ok").AddEntity(test.entity).Build().Validate()
			if test.expected == nil {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, test.expected) {
				t.Errorf("Validate: got %v, want %v", err, test.expected)
			}
		})
	}
}

func TestTextBotCommands(t *testing.T) {
	text := FromWire("bold /botcommand@tester 🎉 /help", Entities{
		Styled{Type: KindBold, Pos: Position{Offset: 0, Length: 4}},
		Styled{Type: KindBotCommand, Pos: Position{Offset: 5, Length: 18}},
		Styled{Type: KindBotCommand, Pos: Position{Offset: 27, Length: 5}},
	})

	expected := []BotCommand{
		{Command: "/botcommand", BotName: "tester"},
		{Command: "/help"},
	}
	if got := text.BotCommands(); !reflect.DeepEqual(got, expected) {
		t.Errorf("BotCommands() = %+v, want %+v", got, expected)
	}

	if got := Plain("/start").BotCommands(); got != nil {
		t.Errorf("text without entities: BotCommands() = %+v, want nil", got)
	}
}
