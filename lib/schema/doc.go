// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the leaf Telegram Bot API object types shared
// by the request and text layers: users and chats, chat identifiers,
// file descriptors, and bot command definitions. Go structs mirror the
// JSON objects documented at https://core.telegram.org/bots/api.
//
// [ChatID] is the one non-trivial type: the Bot API accepts either a
// numeric chat identifier or an "@username" string in the same field,
// so ChatID encodes to a JSON number or a JSON string accordingly.
//
// Types that carry formatted text (messages, captions) live in the
// botapi package because they depend on richtext, which in turn
// depends on this package for [User].
//
// This package depends on no other tgbot packages.
package schema
