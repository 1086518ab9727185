// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// ParseMode selects server-side parsing of formatting markup in a text
// field.
type ParseMode string

const (
	ParseModeMarkdown   ParseMode = "Markdown"
	ParseModeMarkdownV2 ParseMode = "MarkdownV2"
	ParseModeHTML       ParseMode = "HTML"
)

// Text is message text together with its formatting: a parse mode, an
// explicit entity list, or neither. Never both. Text values are
// immutable; build them with [NewText] or [Plain].
type Text struct {
	data      string
	parseMode ParseMode
	entities  []Entity
}

// Plain returns unformatted text.
func Plain(data string) Text {
	return Text{data: data}
}

// String returns the text content.
func (text Text) String() string { return text.data }

// IsEmpty reports whether the text content is empty.
func (text Text) IsEmpty() bool { return text.data == "" }

// ParseMode returns the parse mode, or "" when none is set.
func (text Text) ParseMode() ParseMode { return text.parseMode }

// Entities returns a copy of the explicit entity list, or nil when the
// text has none.
func (text Text) Entities() Entities {
	if len(text.entities) == 0 {
		return nil
	}
	return append(Entities(nil), text.entities...)
}

// Len returns the length of the text in UTF-16 code units.
func (text Text) Len() int {
	return UTF16Len(text.data)
}

// Validate checks that every entity lies within the text.
func (text Text) Validate() error {
	length := UTF16Len(text.data)
	for index, entity := range text.entities {
		if entity == nil {
			return fmt.Errorf("richtext: entity %d is nil", index)
		}
		if err := checkBounds(entity.Position(), length); err != nil {
			return fmt.Errorf("richtext: entity %d (%s): %w", index, entity.Kind(), err)
		}
	}
	return nil
}

// BotCommand is a bot command found in a text: Command keeps its
// leading slash, BotName is the part after "@" when the command was
// addressed to a specific bot.
type BotCommand struct {
	Command string
	BotName string
}

// BotCommands returns the bot commands marked by bot_command entities,
// in entity order.
func (text Text) BotCommands() []BotCommand {
	var units []uint16
	var commands []BotCommand
	for _, entity := range text.entities {
		if entity == nil || entity.Kind() != KindBotCommand {
			continue
		}
		if units == nil {
			units = utf16.Encode([]rune(text.data))
		}
		position := entity.Position()
		if checkBounds(position, len(units)) != nil {
			continue
		}
		content := string(utf16.Decode(units[position.Offset:position.End()]))
		command, botName, _ := strings.Cut(content, "@")
		commands = append(commands, BotCommand{Command: command, BotName: botName})
	}
	return commands
}

// TextBuilder assembles a [Text]. Setting a parse mode discards any
// entities added so far, and adding entities discards the parse mode.
type TextBuilder struct {
	data      string
	parseMode ParseMode
	entities  []Entity
}

// NewText starts a builder for data.
func NewText(data string) *TextBuilder {
	return &TextBuilder{data: data}
}

// WithParseMode formats the text with mode and clears all entities.
func (builder *TextBuilder) WithParseMode(mode ParseMode) *TextBuilder {
	builder.parseMode = mode
	builder.entities = nil
	return builder
}

// WithEntities replaces the entity list and clears the parse mode.
func (builder *TextBuilder) WithEntities(entities ...Entity) *TextBuilder {
	builder.parseMode = ""
	builder.entities = append([]Entity(nil), entities...)
	return builder
}

// AddEntity appends an entity and clears the parse mode.
func (builder *TextBuilder) AddEntity(entity Entity) *TextBuilder {
	builder.parseMode = ""
	builder.entities = append(builder.entities, entity)
	return builder
}

// Build returns the finished text. The builder may continue to be used;
// later changes do not affect texts already built.
func (builder *TextBuilder) Build() Text {
	text := Text{data: builder.data, parseMode: builder.parseMode}
	if len(builder.entities) > 0 {
		text.entities = append([]Entity(nil), builder.entities...)
	}
	return text
}

// FromWire reconstructs a Text received from the Bot API, for example
// a message's text and entities fields.
func FromWire(data string, entities Entities) Text {
	return NewText(data).WithEntities(entities...).Build()
}
