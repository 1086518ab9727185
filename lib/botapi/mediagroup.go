// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Size bounds of media groups and paid media posts.
const (
	MinGroupItems = 1
	MaxGroupItems = 10
)

func checkGroupSize(field string, count int) error {
	if count < MinGroupItems {
		return &ValidationError{Field: field, Limit: MinGroupItems, Err: ErrNotEnoughItems}
	}
	if count > MaxGroupItems {
		return &ValidationError{Field: field, Limit: MaxGroupItems, Err: ErrTooManyItems}
	}
	return nil
}

func groupKeys(prefixes attachKeys, index int) attachKeys {
	return attachKeys{
		file:      fmt.Sprintf("%s_%d", prefixes.file, index),
		thumbnail: fmt.Sprintf("%s_%d", prefixes.thumbnail, index),
		cover:     fmt.Sprintf("%s_%d", prefixes.cover, index),
	}
}

// MediaGroup is the validated item list of a sendMediaGroup call.
type MediaGroup struct {
	items []InputMedia
}

// NewMediaGroup checks the group size (1 to 10 items) and returns the
// group. Nothing is encoded or read until the group is sent.
func NewMediaGroup(items ...InputMedia) (MediaGroup, error) {
	if err := checkGroupSize("media", len(items)); err != nil {
		return MediaGroup{}, err
	}
	return MediaGroup{items: append([]InputMedia(nil), items...)}, nil
}

// Len returns the number of items.
func (group MediaGroup) Len() int { return len(group.items) }

// encode renders the InputMedia array. Uploads are attached to params
// under tgbot_im_{file,thumb,cover}_{index}.
func (group MediaGroup) encode(params *Params) (json.RawMessage, error) {
	prefixes := attachKeys{file: keyMediaFile, thumbnail: keyMediaThumbnail, cover: keyMediaCover}
	encoded := make([]json.RawMessage, 0, len(group.items))
	for index, item := range group.items {
		object, err := item.encode(params, groupKeys(prefixes, index))
		if err != nil {
			return nil, fmt.Errorf("botapi: media item %d: %w", index, err)
		}
		encoded = append(encoded, object)
	}
	return joinArray(encoded), nil
}

// PaidMediaGroup is the validated item list of a sendPaidMedia call.
type PaidMediaGroup struct {
	items []InputPaidMedia
}

// NewPaidMediaGroup checks the group size (1 to 10 items) and returns
// the group.
func NewPaidMediaGroup(items ...InputPaidMedia) (PaidMediaGroup, error) {
	if err := checkGroupSize("media", len(items)); err != nil {
		return PaidMediaGroup{}, err
	}
	return PaidMediaGroup{items: append([]InputPaidMedia(nil), items...)}, nil
}

// Len returns the number of items.
func (group PaidMediaGroup) Len() int { return len(group.items) }

func (group PaidMediaGroup) encode(params *Params) (json.RawMessage, error) {
	prefixes := attachKeys{file: keyPaidMediaFile, thumbnail: keyPaidMediaThumbnail, cover: keyPaidMediaCover}
	encoded := make([]json.RawMessage, 0, len(group.items))
	for index, item := range group.items {
		object, err := item.encode(params, groupKeys(prefixes, index))
		if err != nil {
			return nil, fmt.Errorf("botapi: paid media item %d: %w", index, err)
		}
		encoded = append(encoded, object)
	}
	return joinArray(encoded), nil
}

func joinArray(items []json.RawMessage) json.RawMessage {
	var buffer bytes.Buffer
	buffer.WriteByte('[')
	for index, item := range items {
		if index > 0 {
			buffer.WriteByte(',')
		}
		buffer.Write(item)
	}
	buffer.WriteByte(']')
	return buffer.Bytes()
}
