// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"time"

	"github.com/bureau-foundation/tgbot/lib/richtext"
	"github.com/bureau-foundation/tgbot/lib/schema"
)

// Message is a message in a chat. Only the fields this package works
// with are decoded; unknown fields are ignored.
type Message struct {
	MessageID       int64              `json:"message_id"`
	MessageThreadID int64              `json:"message_thread_id,omitempty"`
	From            *schema.User       `json:"from,omitempty"`
	SenderChat      *schema.Chat       `json:"sender_chat,omitempty"`
	Chat            schema.Chat        `json:"chat"`
	Date            int64              `json:"date"`
	EditDate        int64              `json:"edit_date,omitempty"`
	MediaGroupID    string             `json:"media_group_id,omitempty"`
	ReplyToMessage  *Message           `json:"reply_to_message,omitempty"`
	Text            string             `json:"text,omitempty"`
	Entities        richtext.Entities  `json:"entities,omitempty"`
	Caption         string             `json:"caption,omitempty"`
	CaptionEntities richtext.Entities  `json:"caption_entities,omitempty"`
	Photo           []schema.PhotoSize `json:"photo,omitempty"`
	Document        *schema.Document   `json:"document,omitempty"`
	Video           *schema.Video      `json:"video,omitempty"`
	Audio           *schema.Audio      `json:"audio,omitempty"`
	Animation       *schema.Animation  `json:"animation,omitempty"`

	// Set on the service message sent when a group is upgraded to a
	// supergroup.
	MigrateToChatID   int64 `json:"migrate_to_chat_id,omitempty"`
	MigrateFromChatID int64 `json:"migrate_from_chat_id,omitempty"`
}

// Time returns the send time of the message.
func (message *Message) Time() time.Time {
	return time.Unix(message.Date, 0)
}

// TextValue returns the message text with its entities.
func (message *Message) TextValue() richtext.Text {
	return richtext.FromWire(message.Text, message.Entities)
}

// CaptionValue returns the media caption with its entities.
func (message *Message) CaptionValue() richtext.Text {
	return richtext.FromWire(message.Caption, message.CaptionEntities)
}

// BotCommands returns the bot commands in the message text.
func (message *Message) BotCommands() []richtext.BotCommand {
	return message.TextValue().BotCommands()
}

// Command parses the first bot command of the message text and its
// arguments. See [richtext.ParseCommand].
func (message *Message) Command() (richtext.Command, error) {
	return richtext.ParseCommand(message.TextValue())
}

// CallbackQuery is a press of an inline keyboard button.
type CallbackQuery struct {
	ID              string      `json:"id"`
	From            schema.User `json:"from"`
	Message         *Message    `json:"message,omitempty"`
	InlineMessageID string      `json:"inline_message_id,omitempty"`
	ChatInstance    string      `json:"chat_instance"`
	Data            string      `json:"data,omitempty"`
}

// Update is one incoming update. At most one of the optional fields is
// set.
type Update struct {
	UpdateID          int64          `json:"update_id"`
	Message           *Message       `json:"message,omitempty"`
	EditedMessage     *Message       `json:"edited_message,omitempty"`
	ChannelPost       *Message       `json:"channel_post,omitempty"`
	EditedChannelPost *Message       `json:"edited_channel_post,omitempty"`
	CallbackQuery     *CallbackQuery `json:"callback_query,omitempty"`
}

// Kind returns the name of the field that is set, or "unknown" for
// update kinds this package does not decode.
func (update *Update) Kind() string {
	switch {
	case update.Message != nil:
		return "message"
	case update.EditedMessage != nil:
		return "edited_message"
	case update.ChannelPost != nil:
		return "channel_post"
	case update.EditedChannelPost != nil:
		return "edited_channel_post"
	case update.CallbackQuery != nil:
		return "callback_query"
	default:
		return "unknown"
	}
}

// AnyMessage returns the message carried by the update: a new or
// edited message or channel post, or the message of a callback query.
func (update *Update) AnyMessage() *Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	case update.CallbackQuery != nil:
		return update.CallbackQuery.Message
	default:
		return nil
	}
}
