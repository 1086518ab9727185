// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tgbot/lib/botapi"
	"github.com/bureau-foundation/tgbot/lib/richtext"
	"github.com/bureau-foundation/tgbot/lib/schema"
)

func runSend(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var options commonOptions
	var chat string
	var text string
	var markdownPath string
	var html bool
	var silent bool
	var replyTo int64

	flagSet := pflag.NewFlagSet("tgbot-call send", pflag.ContinueOnError)
	options.addFlags(flagSet)
	flagSet.StringVar(&chat, "chat", "", "chat identifier or @username (required)")
	flagSet.StringVar(&text, "text", "", "message text")
	flagSet.StringVar(&markdownPath, "markdown", "", "Markdown file to convert into formatted text (- for stdin)")
	flagSet.BoolVar(&html, "html", false, "send --text with the HTML parse mode")
	flagSet.BoolVar(&silent, "silent", false, "send without a notification sound")
	flagSet.Int64Var(&replyTo, "reply-to", 0, "message identifier to reply to")
	if handled, err := parseFlags(flagSet, args, "tgbot-call send --chat <chat> (--text <text> | --markdown <file>) [flags]", stderr); handled || err != nil {
		return err
	}

	chatID, err := parseChatID(chat)
	if err != nil {
		return err
	}
	message, err := composeText(text, markdownPath, html, stdin)
	if err != nil {
		return err
	}

	session, err := options.open(stderr)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	sent, err := session.client.SendMessage(ctx, chatID, message, &botapi.SendOptions{
		DisableNotification: silent,
		ReplyToMessageID:    replyTo,
	})
	if err != nil {
		return err
	}
	session.logger.Info("message sent", "chat_id", sent.Chat.ID, "message_id", sent.MessageID)
	fmt.Fprintf(stdout, "%d\n", sent.MessageID)
	return nil
}

// parseChatID accepts a numeric chat identifier or a public username
// with or without the leading "@".
func parseChatID(value string) (schema.ChatID, error) {
	if value == "" {
		return schema.ChatID{}, errors.New("--chat is required")
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return schema.ChatIDInt(id), nil
	}
	return schema.ChatUsername(value), nil
}

// composeText builds the message from exactly one of text or
// markdownPath.
func composeText(text, markdownPath string, html bool, stdin io.Reader) (richtext.Text, error) {
	switch {
	case text != "" && markdownPath != "":
		return richtext.Text{}, errors.New("--text and --markdown are mutually exclusive")
	case markdownPath != "":
		if html {
			return richtext.Text{}, errors.New("--html applies to --text only")
		}
		var source []byte
		var err error
		if markdownPath == "-" {
			source, err = io.ReadAll(stdin)
		} else {
			source, err = os.ReadFile(markdownPath)
		}
		if err != nil {
			return richtext.Text{}, fmt.Errorf("reading Markdown: %w", err)
		}
		message, err := richtext.FromMarkdown(string(source))
		if err != nil {
			return richtext.Text{}, err
		}
		if message.IsEmpty() {
			return richtext.Text{}, errors.New("the Markdown document has no text")
		}
		return message, nil
	case text != "":
		if html {
			return richtext.NewText(text).WithParseMode(richtext.ParseModeHTML).Build(), nil
		}
		return richtext.Plain(text), nil
	default:
		return richtext.Text{}, errors.New("one of --text or --markdown is required")
	}
}
