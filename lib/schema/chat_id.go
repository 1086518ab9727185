// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ChatID identifies the target of a method call: either a numeric chat
// identifier or the username of a public channel or supergroup in the
// form "@channelusername". The zero value is invalid.
type ChatID struct {
	id       int64
	username string
}

// ChatIDInt returns a ChatID for a numeric chat identifier.
func ChatIDInt(id int64) ChatID {
	return ChatID{id: id}
}

// ChatUsername returns a ChatID for a public username. A leading "@"
// is added when missing.
func ChatUsername(username string) ChatID {
	if username != "" && username[0] != '@' {
		username = "@" + username
	}
	return ChatID{username: username}
}

// IsZero reports whether the ChatID was never set.
func (id ChatID) IsZero() bool {
	return id.id == 0 && id.username == ""
}

// Int returns the numeric identifier, or false for a username.
func (id ChatID) Int() (int64, bool) {
	if id.username != "" {
		return 0, false
	}
	return id.id, true
}

// String returns the wire text of the identifier: decimal digits for a
// numeric identifier, "@name" for a username.
func (id ChatID) String() string {
	if id.username != "" {
		return id.username
	}
	return strconv.FormatInt(id.id, 10)
}

// MarshalJSON encodes a numeric identifier as a JSON number and a
// username as a JSON string.
func (id ChatID) MarshalJSON() ([]byte, error) {
	if id.username != "" {
		return json.Marshal(id.username)
	}
	return []byte(strconv.FormatInt(id.id, 10)), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string.
func (id *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var username string
		if err := json.Unmarshal(data, &username); err != nil {
			return err
		}
		// Numeric identifiers occasionally arrive quoted.
		if number, err := strconv.ParseInt(username, 10, 64); err == nil {
			*id = ChatIDInt(number)
			return nil
		}
		*id = ChatUsername(username)
		return nil
	}
	var number int64
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("schema: chat id must be a number or a string: %w", err)
	}
	*id = ChatIDInt(number)
	return nil
}
