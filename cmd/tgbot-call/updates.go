// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/tgbot/lib/botapi"
	"github.com/bureau-foundation/tgbot/lib/codec"
	"github.com/bureau-foundation/tgbot/lib/richtext"
)

// offsetState is the persisted position of "updates" for one bot.
type offsetState struct {
	Host   string `cbor:"host"`
	Offset int64  `cbor:"offset"`
}

func runUpdates(args []string, stdout, stderr io.Writer) error {
	var options commonOptions
	var limit int
	var pollTimeout int
	var allowed []string
	var noCommit bool

	flagSet := pflag.NewFlagSet("tgbot-call updates", pflag.ContinueOnError)
	options.addFlags(flagSet)
	flagSet.IntVar(&limit, "limit", 0, "maximum number of updates, 1-100 (default: server default)")
	flagSet.IntVar(&pollTimeout, "wait", 0, "long polling wait in seconds")
	flagSet.StringSliceVar(&allowed, "allowed", nil, "update kinds to receive, e.g. message,callback_query")
	flagSet.BoolVar(&noCommit, "no-commit", false, "do not advance the stored offset")
	if handled, err := parseFlags(flagSet, args, "tgbot-call updates [flags]", stderr); handled || err != nil {
		return err
	}

	session, err := options.open(stderr)
	if err != nil {
		return err
	}
	if err := session.config.EnsureStateDir(); err != nil {
		return err
	}
	statePath := filepath.Join(session.config.State.Dir, "offset-"+session.botID+".cbor")

	var state offsetState
	if err := codec.ReadFile(statePath, &state); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if state.Host != "" && state.Host != session.client.Host() {
		session.logger.Warn("stored offset belongs to another server, starting over",
			"stored_host", state.Host,
			"host", session.client.Host(),
		)
		state = offsetState{}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	payload, err := botapi.GetUpdatesPayload(botapi.GetUpdatesOptions{
		Offset:         state.Offset,
		Limit:          limit,
		Timeout:        pollTimeout,
		AllowedUpdates: allowed,
	})
	if err != nil {
		return err
	}
	documents, err := botapi.Call[[]json.RawMessage](ctx, session.client, payload)
	if err != nil {
		return err
	}

	printer := &updatePrinter{encoder: json.NewEncoder(stdout), logger: session.logger}
	next := state.Offset
	for _, document := range documents {
		if err := botapi.Dispatch(ctx, document, printer); err != nil {
			session.logger.Warn("skipping update", "error", err)
		}
		var header struct {
			UpdateID int64 `json:"update_id"`
		}
		if json.Unmarshal(document, &header) == nil && header.UpdateID >= next {
			next = header.UpdateID + 1
		}
	}
	session.logger.Debug("fetched updates", "count", len(documents), "next_offset", next)

	if noCommit || next == state.Offset {
		return nil
	}
	return codec.WriteFile(statePath, offsetState{Host: session.client.Host(), Offset: next})
}

// updateSummary is the JSON line printed for each update.
type updateSummary struct {
	UpdateID int64    `json:"update_id"`
	Kind     string   `json:"kind"`
	ChatID   int64    `json:"chat_id,omitempty"`
	From     string   `json:"from,omitempty"`
	Text     string   `json:"text,omitempty"`
	Commands []string `json:"commands,omitempty"`
	Args     []string `json:"args,omitempty"`
	Data     string   `json:"data,omitempty"`
}

// updatePrinter writes one summary line per update.
type updatePrinter struct {
	encoder *json.Encoder
	logger  *slog.Logger
}

func (printer *updatePrinter) HandleUpdate(_ context.Context, update botapi.Update) error {
	summary := updateSummary{UpdateID: update.UpdateID, Kind: update.Kind()}
	if message := update.AnyMessage(); message != nil {
		summary.ChatID = message.Chat.ID
		if message.From != nil {
			summary.From = message.From.Username
		}
		summary.Text = message.Text
		if summary.Text == "" {
			summary.Text = message.Caption
		}
		for _, command := range message.BotCommands() {
			summary.Commands = append(summary.Commands, command.Command)
		}
		command, err := message.Command()
		switch {
		case err == nil:
			summary.Args = command.Args
		case !errors.Is(err, richtext.ErrCommandNotFound):
			printer.logger.Warn("unparsable command arguments",
				"update_id", update.UpdateID,
				"error", err,
			)
		}
	}
	if update.CallbackQuery != nil {
		summary.From = update.CallbackQuery.From.Username
		summary.Data = update.CallbackQuery.Data
	}
	return printer.encoder.Encode(summary)
}
