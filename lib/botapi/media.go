// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"encoding/json"

	"github.com/bureau-foundation/tgbot/lib/richtext"
)

// MediaKind is the kind-specific part of an [InputMedia]: one of
// [InputMediaPhoto], [InputMediaVideo], [InputMediaAnimation],
// [InputMediaAudio] or [InputMediaDocument].
type MediaKind interface {
	mediaType() string
	acceptsThumbnail() bool
	acceptsCover() bool
	writeFields(object *Params)
}

// InputMediaPhoto describes a photo.
type InputMediaPhoto struct {
	Caption               richtext.Text
	ShowCaptionAboveMedia bool
	HasSpoiler            bool
}

// InputMediaVideo describes a video. It is the only kind that accepts a
// cover.
type InputMediaVideo struct {
	Caption               richtext.Text
	ShowCaptionAboveMedia bool
	Width                 int
	Height                int
	Duration              int
	StartTimestamp        int
	SupportsStreaming     bool
	HasSpoiler            bool
}

// InputMediaAnimation describes a GIF or a silent video.
type InputMediaAnimation struct {
	Caption               richtext.Text
	ShowCaptionAboveMedia bool
	Width                 int
	Height                int
	Duration              int
	HasSpoiler            bool
}

// InputMediaAudio describes an audio file to be treated as music.
type InputMediaAudio struct {
	Caption   richtext.Text
	Duration  int
	Performer string
	Title     string
}

// InputMediaDocument describes a general file.
type InputMediaDocument struct {
	Caption                     richtext.Text
	DisableContentTypeDetection bool
}

func (InputMediaPhoto) mediaType() string     { return "photo" }
func (InputMediaVideo) mediaType() string     { return "video" }
func (InputMediaAnimation) mediaType() string { return "animation" }
func (InputMediaAudio) mediaType() string     { return "audio" }
func (InputMediaDocument) mediaType() string  { return "document" }

func (InputMediaPhoto) acceptsThumbnail() bool     { return false }
func (InputMediaVideo) acceptsThumbnail() bool     { return true }
func (InputMediaAnimation) acceptsThumbnail() bool { return true }
func (InputMediaAudio) acceptsThumbnail() bool     { return true }
func (InputMediaDocument) acceptsThumbnail() bool  { return true }

func (InputMediaPhoto) acceptsCover() bool     { return false }
func (InputMediaVideo) acceptsCover() bool     { return true }
func (InputMediaAnimation) acceptsCover() bool { return false }
func (InputMediaAudio) acceptsCover() bool     { return false }
func (InputMediaDocument) acceptsCover() bool  { return false }

func setCaption(object *Params, caption richtext.Text) {
	if !caption.IsEmpty() {
		object.SetText("caption", "caption_entities", caption)
	}
}

func setInt(object *Params, name string, value int) {
	if value != 0 {
		object.Set(name, value)
	}
}

func setBool(object *Params, name string, value bool) {
	if value {
		object.Set(name, true)
	}
}

func setString(object *Params, name, value string) {
	if value != "" {
		object.SetString(name, value)
	}
}

func (kind InputMediaPhoto) writeFields(object *Params) {
	setCaption(object, kind.Caption)
	setBool(object, "show_caption_above_media", kind.ShowCaptionAboveMedia)
	setBool(object, "has_spoiler", kind.HasSpoiler)
}

func (kind InputMediaVideo) writeFields(object *Params) {
	setCaption(object, kind.Caption)
	setBool(object, "show_caption_above_media", kind.ShowCaptionAboveMedia)
	setInt(object, "width", kind.Width)
	setInt(object, "height", kind.Height)
	setInt(object, "duration", kind.Duration)
	setInt(object, "start_timestamp", kind.StartTimestamp)
	setBool(object, "supports_streaming", kind.SupportsStreaming)
	setBool(object, "has_spoiler", kind.HasSpoiler)
}

func (kind InputMediaAnimation) writeFields(object *Params) {
	setCaption(object, kind.Caption)
	setBool(object, "show_caption_above_media", kind.ShowCaptionAboveMedia)
	setInt(object, "width", kind.Width)
	setInt(object, "height", kind.Height)
	setInt(object, "duration", kind.Duration)
	setBool(object, "has_spoiler", kind.HasSpoiler)
}

func (kind InputMediaAudio) writeFields(object *Params) {
	setCaption(object, kind.Caption)
	setInt(object, "duration", kind.Duration)
	setString(object, "performer", kind.Performer)
	setString(object, "title", kind.Title)
}

func (kind InputMediaDocument) writeFields(object *Params) {
	setCaption(object, kind.Caption)
	setBool(object, "disable_content_type_detection", kind.DisableContentTypeDetection)
}

// InputMedia is a media item for sendMediaGroup or editMessageMedia:
// a file, its kind-specific metadata, and optional thumbnail and cover
// files. Values are immutable; the With methods return modified copies.
type InputMedia struct {
	file      InputFile
	kind      MediaKind
	thumbnail InputFile
	cover     InputFile
}

// NewInputMedia returns a media item sending file as kind.
func NewInputMedia(file InputFile, kind MediaKind) InputMedia {
	return InputMedia{file: file, kind: kind}
}

// Kind returns the kind-specific metadata.
func (media InputMedia) Kind() MediaKind { return media.kind }

// WithThumbnail returns a copy of media with a thumbnail. Photos do not
// accept one.
func (media InputMedia) WithThumbnail(thumbnail InputFile) (InputMedia, error) {
	if media.kind == nil || !media.kind.acceptsThumbnail() {
		return media, &ValidationError{Field: "thumbnail", Err: ErrThumbnailNotAcceptable}
	}
	media.thumbnail = thumbnail
	return media, nil
}

// WithCover returns a copy of media with a cover image. Only videos
// accept one.
func (media InputMedia) WithCover(cover InputFile) (InputMedia, error) {
	if media.kind == nil || !media.kind.acceptsCover() {
		return media, &ValidationError{Field: "cover", Err: ErrCoverNotAcceptable}
	}
	media.cover = cover
	return media, nil
}

// encode renders the InputMedia JSON object, attaching uploads to
// params under keys.
func (media InputMedia) encode(params *Params, keys attachKeys) (json.RawMessage, error) {
	if media.kind == nil {
		return nil, &ValidationError{Field: "media", Err: ErrMissingMediaKind}
	}
	object := NewParams()
	object.SetString("type", media.kind.mediaType())
	if err := attachMedia(params, object, keys, media.file, media.thumbnail, media.cover); err != nil {
		return nil, err
	}
	media.kind.writeFields(object)
	if object.err != nil {
		return nil, object.err
	}
	return object.marshalObject()
}

// attachMedia stores the media reference and the optional thumbnail and
// cover references in object.
func attachMedia(params, object *Params, keys attachKeys, file, thumbnail, cover InputFile) error {
	reference, err := params.attach(keys.file, file)
	if err != nil {
		return err
	}
	object.SetString("media", reference)
	if thumbnail != nil {
		reference, err := params.attach(keys.thumbnail, thumbnail)
		if err != nil {
			return err
		}
		object.SetString("thumbnail", reference)
	}
	if cover != nil {
		reference, err := params.attach(keys.cover, cover)
		if err != nil {
			return err
		}
		object.SetString("cover", reference)
	}
	return nil
}

// PaidMediaKind is the kind-specific part of an [InputPaidMedia]:
// [InputPaidMediaPhoto] or [InputPaidMediaVideo].
type PaidMediaKind interface {
	paidMediaType() string
	acceptsThumbnail() bool
	acceptsCover() bool
	writeFields(object *Params)
}

// InputPaidMediaPhoto is a paid photo. It accepts neither thumbnail nor
// cover.
type InputPaidMediaPhoto struct{}

// InputPaidMediaVideo is a paid video.
type InputPaidMediaVideo struct {
	Width             int
	Height            int
	Duration          int
	StartTimestamp    int
	SupportsStreaming bool
}

func (InputPaidMediaPhoto) paidMediaType() string { return "photo" }
func (InputPaidMediaVideo) paidMediaType() string { return "video" }

func (InputPaidMediaPhoto) acceptsThumbnail() bool { return false }
func (InputPaidMediaVideo) acceptsThumbnail() bool { return true }

func (InputPaidMediaPhoto) acceptsCover() bool { return false }
func (InputPaidMediaVideo) acceptsCover() bool { return true }

func (InputPaidMediaPhoto) writeFields(*Params) {}

func (kind InputPaidMediaVideo) writeFields(object *Params) {
	setInt(object, "width", kind.Width)
	setInt(object, "height", kind.Height)
	setInt(object, "duration", kind.Duration)
	setInt(object, "start_timestamp", kind.StartTimestamp)
	setBool(object, "supports_streaming", kind.SupportsStreaming)
}

// InputPaidMedia is one item of a paid media post.
type InputPaidMedia struct {
	file      InputFile
	kind      PaidMediaKind
	thumbnail InputFile
	cover     InputFile
}

// NewInputPaidMedia returns a paid media item sending file as kind.
func NewInputPaidMedia(file InputFile, kind PaidMediaKind) InputPaidMedia {
	return InputPaidMedia{file: file, kind: kind}
}

// WithThumbnail returns a copy of media with a thumbnail. Paid photos
// do not accept one.
func (media InputPaidMedia) WithThumbnail(thumbnail InputFile) (InputPaidMedia, error) {
	if media.kind == nil || !media.kind.acceptsThumbnail() {
		return media, &ValidationError{Field: "thumbnail", Err: ErrThumbnailNotAcceptable}
	}
	media.thumbnail = thumbnail
	return media, nil
}

// WithCover returns a copy of media with a cover image. Paid photos do
// not accept one.
func (media InputPaidMedia) WithCover(cover InputFile) (InputPaidMedia, error) {
	if media.kind == nil || !media.kind.acceptsCover() {
		return media, &ValidationError{Field: "cover", Err: ErrCoverNotAcceptable}
	}
	media.cover = cover
	return media, nil
}

func (media InputPaidMedia) encode(params *Params, keys attachKeys) (json.RawMessage, error) {
	if media.kind == nil {
		return nil, &ValidationError{Field: "media", Err: ErrMissingMediaKind}
	}
	object := NewParams()
	object.SetString("type", media.kind.paidMediaType())
	if err := attachMedia(params, object, keys, media.file, media.thumbnail, media.cover); err != nil {
		return nil, err
	}
	media.kind.writeFields(object)
	if object.err != nil {
		return nil, object.err
	}
	return object.marshalObject()
}
