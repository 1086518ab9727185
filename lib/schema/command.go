// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

// BotCommand is one entry of the bot's command menu.
type BotCommand struct {
	// Command is the text of the command without the leading slash:
	// 1-32 characters, lowercase English letters, digits and
	// underscores only.
	Command string `json:"command"`

	// Description is the text shown in the menu, 3-256 characters.
	Description string `json:"description"`
}
