// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/google/shlex"
)

var (
	// ErrCommandNotFound means the text has no bot_command entity
	// inside its bounds.
	ErrCommandNotFound = errors.New("richtext: command not found")

	// ErrCommandArguments means the text after the command could not
	// be split into arguments, usually because of an unclosed quote.
	ErrCommandArguments = errors.New("richtext: malformed command arguments")
)

// Command is a bot command with its arguments.
type Command struct {
	// Name is the command with its leading slash, without the bot
	// name: "/start".
	Name string

	// BotName is the addressed bot from "/start@name", or "".
	BotName string

	// Args are the words following the command.
	Args []string
}

// ParseCommand reads the first bot command of text and splits
// everything after it into arguments. Splitting follows shell rules:
// quotes group words ('arg1 v' is one argument), a backslash escapes
// the next character, and a word starting with # comments out the rest
// of the line.
func ParseCommand(text Text) (Command, error) {
	units := utf16.Encode([]rune(text.data))
	for _, entity := range text.entities {
		if entity == nil || entity.Kind() != KindBotCommand {
			continue
		}
		position := entity.Position()
		if checkBounds(position, len(units)) != nil {
			continue
		}
		content := string(utf16.Decode(units[position.Offset:position.End()]))
		name, botName, _ := strings.Cut(content, "@")
		rest := string(utf16.Decode(units[position.End():]))
		args, err := shlex.Split(rest)
		if err != nil {
			return Command{}, fmt.Errorf("%w after %s: %w", ErrCommandArguments, name, err)
		}
		return Command{Name: name, BotName: botName, Args: args}, nil
	}
	return Command{}, ErrCommandNotFound
}
