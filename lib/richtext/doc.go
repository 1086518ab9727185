// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package richtext models formatted Telegram message text: the text
// itself, how it is formatted, and the entities that annotate it.
//
// Telegram addresses entities by offset and length in UTF-16 code
// units, not bytes and not code points. A character outside the Basic
// Multilingual Plane (most emoji) occupies two units. Go strings are
// UTF-8, so every position handed to or received from the Bot API must
// be converted: [UTF16Len], [UTF16Offset], [PositionFromBytes],
// [PositionFromRunes] and [Slice] do this explicitly. Never compute a
// [Position] from len(s) or a byte index directly.
//
// [Entity] is a closed set of types, one per entity family, each
// carrying only its own fields: [Styled] for the position-only kinds,
// [Pre] with an optional language, [TextLink] with a URL,
// [TextMention] with a user, and [CustomEmoji] with a sticker
// identifier. [Entities] encodes and decodes the wire form; decoding
// rejects entities missing their required field and unknown kinds.
//
// A [Text] is formatted either by a server-side [ParseMode] or by an
// explicit entity list, never both. [TextBuilder] enforces that rule:
// choosing one clears the other. [FromMarkdown] produces a Text with
// explicit entities from CommonMark source, so callers never have to
// escape text for Telegram's own Markdown dialects.
package richtext
