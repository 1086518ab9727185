// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bureau-foundation/tgbot/lib/richtext"
	"github.com/bureau-foundation/tgbot/lib/schema"
)

// SendOptions are the delivery options shared by the send methods.
type SendOptions struct {
	MessageThreadID     int64
	DisableNotification bool
	ProtectContent      bool

	// ReplyToMessageID makes the message a reply. The call fails if the
	// message does not exist unless AllowSendingWithoutReply is set.
	ReplyToMessageID         int64
	AllowSendingWithoutReply bool

	// ReplyMarkup is an encoded keyboard object, passed through as is.
	ReplyMarkup any
}

func (options *SendOptions) apply(params *Params) {
	if options == nil {
		return
	}
	if options.MessageThreadID != 0 {
		params.Set("message_thread_id", options.MessageThreadID)
	}
	if options.DisableNotification {
		params.Set("disable_notification", true)
	}
	if options.ProtectContent {
		params.Set("protect_content", true)
	}
	if options.ReplyToMessageID != 0 {
		params.Set("reply_parameters", map[string]any{
			"message_id":                  options.ReplyToMessageID,
			"allow_sending_without_reply": options.AllowSendingWithoutReply,
		})
	}
	if options.ReplyMarkup != nil {
		params.Set("reply_markup", options.ReplyMarkup)
	}
}

func chatParams(chatID schema.ChatID) *Params {
	params := NewParams()
	if chatID.IsZero() {
		params.fail(&ValidationError{Field: "chat_id", Err: fmt.Errorf("chat id is not set")})
		return params
	}
	return params.Set("chat_id", chatID)
}

// GetMe returns the bot's own user.
func (client *Client) GetMe(ctx context.Context) (*schema.User, error) {
	return callPointer[schema.User](ctx, client, NewEmptyPayload("getMe"))
}

// GetUpdatesOptions are the parameters of getUpdates.
type GetUpdatesOptions struct {
	// Offset is the identifier of the first update to return. Updates
	// with smaller identifiers are confirmed and forgotten by the
	// server.
	Offset int64

	// Limit bounds the number of updates, 1-100. Zero means the server
	// default of 100.
	Limit int

	// Timeout is the long polling wait in seconds. Zero means short
	// polling.
	Timeout int

	AllowedUpdates []string
}

// GetUpdatesPayload builds a getUpdates call.
func GetUpdatesPayload(options GetUpdatesOptions) (*Payload, error) {
	params := NewParams()
	if options.Offset != 0 {
		params.Set("offset", options.Offset)
	}
	if options.Limit != 0 {
		params.Set("limit", options.Limit)
	}
	if options.Timeout != 0 {
		params.Set("timeout", options.Timeout)
	}
	if options.AllowedUpdates != nil {
		params.Set("allowed_updates", options.AllowedUpdates)
	}
	return params.Payload("getUpdates")
}

// GetUpdates fetches pending updates once.
func (client *Client) GetUpdates(ctx context.Context, options GetUpdatesOptions) ([]Update, error) {
	payload, err := GetUpdatesPayload(options)
	if err != nil {
		return nil, err
	}
	return Call[[]Update](ctx, client, payload)
}

// GetFile returns the download path of a file. Use DownloadFile with
// the returned FilePath.
func (client *Client) GetFile(ctx context.Context, fileID string) (*schema.File, error) {
	payload, err := NewParams().SetString("file_id", fileID).Payload("getFile")
	if err != nil {
		return nil, err
	}
	return callPointer[schema.File](ctx, client, payload)
}

// SendMessagePayload builds a sendMessage call.
func SendMessagePayload(chatID schema.ChatID, text richtext.Text, options *SendOptions) (*Payload, error) {
	params := chatParams(chatID)
	params.SetText("text", "entities", text)
	options.apply(params)
	return params.Payload("sendMessage")
}

// SendMessage sends a text message.
func (client *Client) SendMessage(ctx context.Context, chatID schema.ChatID, text richtext.Text, options *SendOptions) (*Message, error) {
	payload, err := SendMessagePayload(chatID, text, options)
	if err != nil {
		return nil, err
	}
	return callPointer[Message](ctx, client, payload)
}

// SendPhotoPayload builds a sendPhoto call.
func SendPhotoPayload(chatID schema.ChatID, photo InputFile, caption richtext.Text, options *SendOptions) (*Payload, error) {
	params := chatParams(chatID)
	params.SetFile("photo", photo)
	setCaption(params, caption)
	options.apply(params)
	return params.Payload("sendPhoto")
}

// SendPhoto sends a photo.
func (client *Client) SendPhoto(ctx context.Context, chatID schema.ChatID, photo InputFile, caption richtext.Text, options *SendOptions) (*Message, error) {
	payload, err := SendPhotoPayload(chatID, photo, caption, options)
	if err != nil {
		return nil, err
	}
	return callPointer[Message](ctx, client, payload)
}

// DocumentOptions are the document-specific parameters of
// sendDocument.
type DocumentOptions struct {
	Caption                     richtext.Text
	Thumbnail                   InputFile
	DisableContentTypeDetection bool
}

// SendDocumentPayload builds a sendDocument call.
func SendDocumentPayload(chatID schema.ChatID, document InputFile, details DocumentOptions, options *SendOptions) (*Payload, error) {
	params := chatParams(chatID)
	params.SetFile("document", document)
	if details.Thumbnail != nil {
		params.setAttached("thumbnail", keyThumbnail, details.Thumbnail)
	}
	setCaption(params, details.Caption)
	setBool(params, "disable_content_type_detection", details.DisableContentTypeDetection)
	options.apply(params)
	return params.Payload("sendDocument")
}

// SendDocument sends a general file.
func (client *Client) SendDocument(ctx context.Context, chatID schema.ChatID, document InputFile, details DocumentOptions, options *SendOptions) (*Message, error) {
	payload, err := SendDocumentPayload(chatID, document, details, options)
	if err != nil {
		return nil, err
	}
	return callPointer[Message](ctx, client, payload)
}

// VideoOptions are the video-specific parameters of sendVideo.
type VideoOptions struct {
	Caption               richtext.Text
	ShowCaptionAboveMedia bool
	Thumbnail             InputFile
	Cover                 InputFile
	Width                 int
	Height                int
	Duration              int
	StartTimestamp        int
	SupportsStreaming     bool
	HasSpoiler            bool
}

// SendVideoPayload builds a sendVideo call. Uploaded thumbnail and
// cover files travel as separate form fields referenced with attach://.
func SendVideoPayload(chatID schema.ChatID, video InputFile, details VideoOptions, options *SendOptions) (*Payload, error) {
	params := chatParams(chatID)
	params.SetFile("video", video)
	if details.Thumbnail != nil {
		params.setAttached("thumbnail", keyThumbnail, details.Thumbnail)
	}
	if details.Cover != nil {
		params.setAttached("cover", keyCover, details.Cover)
	}
	setCaption(params, details.Caption)
	setBool(params, "show_caption_above_media", details.ShowCaptionAboveMedia)
	setInt(params, "width", details.Width)
	setInt(params, "height", details.Height)
	setInt(params, "duration", details.Duration)
	setInt(params, "start_timestamp", details.StartTimestamp)
	setBool(params, "supports_streaming", details.SupportsStreaming)
	setBool(params, "has_spoiler", details.HasSpoiler)
	options.apply(params)
	return params.Payload("sendVideo")
}

// SendVideo sends a video.
func (client *Client) SendVideo(ctx context.Context, chatID schema.ChatID, video InputFile, details VideoOptions, options *SendOptions) (*Message, error) {
	payload, err := SendVideoPayload(chatID, video, details, options)
	if err != nil {
		return nil, err
	}
	return callPointer[Message](ctx, client, payload)
}

// SendMediaGroupPayload builds a sendMediaGroup call.
func SendMediaGroupPayload(chatID schema.ChatID, group MediaGroup, options *SendOptions) (*Payload, error) {
	if err := checkGroupSize("media", group.Len()); err != nil {
		return nil, err
	}
	params := chatParams(chatID)
	media, err := group.encode(params)
	if err != nil {
		return nil, err
	}
	params.SetRaw("media", media)
	options.apply(params)
	return params.Payload("sendMediaGroup")
}

// SendMediaGroup sends an album. The server returns one message per
// item.
func (client *Client) SendMediaGroup(ctx context.Context, chatID schema.ChatID, group MediaGroup, options *SendOptions) ([]Message, error) {
	payload, err := SendMediaGroupPayload(chatID, group, options)
	if err != nil {
		return nil, err
	}
	return Call[[]Message](ctx, client, payload)
}

// SendPaidMediaPayload builds a sendPaidMedia call.
func SendPaidMediaPayload(chatID schema.ChatID, starCount int, group PaidMediaGroup, caption richtext.Text, options *SendOptions) (*Payload, error) {
	if err := checkGroupSize("media", group.Len()); err != nil {
		return nil, err
	}
	params := chatParams(chatID)
	params.Set("star_count", starCount)
	media, err := group.encode(params)
	if err != nil {
		return nil, err
	}
	params.SetRaw("media", media)
	setCaption(params, caption)
	options.apply(params)
	return params.Payload("sendPaidMedia")
}

// SendPaidMedia sends media that users unlock for starCount stars.
func (client *Client) SendPaidMedia(ctx context.Context, chatID schema.ChatID, starCount int, group PaidMediaGroup, caption richtext.Text, options *SendOptions) (*Message, error) {
	payload, err := SendPaidMediaPayload(chatID, starCount, group, caption, options)
	if err != nil {
		return nil, err
	}
	return callPointer[Message](ctx, client, payload)
}

// EditMessageMediaPayload builds an editMessageMedia call for a message
// sent by the bot.
func EditMessageMediaPayload(chatID schema.ChatID, messageID int64, media InputMedia) (*Payload, error) {
	params := chatParams(chatID)
	params.Set("message_id", messageID)
	encoded, err := media.encode(params, singleMediaKeys)
	if err != nil {
		return nil, err
	}
	params.SetRaw("media", encoded)
	return params.Payload("editMessageMedia")
}

// EditMessageMedia replaces the media of a message.
func (client *Client) EditMessageMedia(ctx context.Context, chatID schema.ChatID, messageID int64, media InputMedia) (*Message, error) {
	payload, err := EditMessageMediaPayload(chatID, messageID, media)
	if err != nil {
		return nil, err
	}
	return callPointer[Message](ctx, client, payload)
}

// Bot command limits.
const (
	MinCommandLength     = 1
	MaxCommandLength     = 32
	MinDescriptionLength = 3
	MaxDescriptionLength = 256
)

// ValidateBotCommand checks a command menu entry: the command is 1-32
// lowercase English letters, digits or underscores, and the description
// is 3-256 characters.
func ValidateBotCommand(command schema.BotCommand) error {
	length := utf8.RuneCountInString(command.Command)
	if length < MinCommandLength {
		return &ValidationError{Field: "command", Limit: MinCommandLength,
			Err: fmt.Errorf("%w: command is empty", ErrInvalidBotCommand)}
	}
	if length > MaxCommandLength {
		return &ValidationError{Field: "command", Limit: MaxCommandLength,
			Err: fmt.Errorf("%w: command has %d characters", ErrInvalidBotCommand, length)}
	}
	for _, r := range command.Command {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return &ValidationError{Field: "command",
				Err: fmt.Errorf("%w: command contains %q", ErrInvalidBotCommand, r)}
		}
	}

	length = utf8.RuneCountInString(command.Description)
	if length < MinDescriptionLength {
		return &ValidationError{Field: "description", Limit: MinDescriptionLength,
			Err: fmt.Errorf("%w: description has %d characters", ErrInvalidBotCommand, length)}
	}
	if length > MaxDescriptionLength {
		return &ValidationError{Field: "description", Limit: MaxDescriptionLength,
			Err: fmt.Errorf("%w: description has %d characters", ErrInvalidBotCommand, length)}
	}
	return nil
}

// SetMyCommandsPayload validates commands and builds a setMyCommands
// call. An empty languageCode applies the commands to all users without
// a dedicated list.
func SetMyCommandsPayload(commands []schema.BotCommand, languageCode string) (*Payload, error) {
	for index, command := range commands {
		if err := ValidateBotCommand(command); err != nil {
			var validationError *ValidationError
			if errors.As(err, &validationError) {
				validationError.Field = fmt.Sprintf("commands[%d].%s", index, validationError.Field)
			}
			return nil, err
		}
	}
	if commands == nil {
		commands = []schema.BotCommand{}
	}
	params := NewParams().Set("commands", commands)
	setString(params, "language_code", languageCode)
	return params.Payload("setMyCommands")
}

// SetMyCommands replaces the bot's command menu.
func (client *Client) SetMyCommands(ctx context.Context, commands []schema.BotCommand, languageCode string) error {
	payload, err := SetMyCommandsPayload(commands, languageCode)
	if err != nil {
		return err
	}
	return client.Execute(ctx, payload, nil)
}

// GetMyCommands returns the bot's command menu for languageCode.
func (client *Client) GetMyCommands(ctx context.Context, languageCode string) ([]schema.BotCommand, error) {
	params := NewParams()
	setString(params, "language_code", languageCode)
	payload, err := params.Payload("getMyCommands")
	if err != nil {
		return nil, err
	}
	return Call[[]schema.BotCommand](ctx, client, payload)
}

// DeleteMyCommands removes the command menu for languageCode.
func (client *Client) DeleteMyCommands(ctx context.Context, languageCode string) error {
	params := NewParams()
	setString(params, "language_code", languageCode)
	payload, err := params.Payload("deleteMyCommands")
	if err != nil {
		return err
	}
	return client.Execute(ctx, payload, nil)
}

func callPointer[T any](ctx context.Context, client *Client, payload *Payload) (*T, error) {
	var result T
	if err := client.Execute(ctx, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
