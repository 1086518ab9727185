// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"encoding/json"
	"testing"
)

func TestChatID_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		id       ChatID
		expected string
	}{
		{name: "numeric", id: ChatIDInt(-1001234567890), expected: `-1001234567890`},
		{name: "username", id: ChatUsername("@channel"), expected: `"@channel"`},
		{name: "username without at", id: ChatUsername("channel"), expected: `"@channel"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := json.Marshal(test.id)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != test.expected {
				t.Errorf("got %s, want %s", data, test.expected)
			}
		})
	}
}

func TestChatID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected ChatID
	}{
		{input: `42`, expected: ChatIDInt(42)},
		{input: `"42"`, expected: ChatIDInt(42)},
		{input: `"@name"`, expected: ChatUsername("name")},
	}

	for _, test := range tests {
		var id ChatID
		if err := json.Unmarshal([]byte(test.input), &id); err != nil {
			t.Fatalf("Unmarshal(%s): %v", test.input, err)
		}
		if id != test.expected {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", test.input, id, test.expected)
		}
	}

	var id ChatID
	if err := json.Unmarshal([]byte(`{}`), &id); err == nil {
		t.Error("expected error for object chat id")
	}
}

func TestChatID_String(t *testing.T) {
	if got := ChatIDInt(7).String(); got != "7" {
		t.Errorf("String() = %q, want %q", got, "7")
	}
	if got := ChatUsername("x").String(); got != "@x" {
		t.Errorf("String() = %q, want %q", got, "@x")
	}
	if !(ChatID{}).IsZero() {
		t.Error("zero ChatID should report IsZero")
	}
	if _, ok := ChatUsername("x").Int(); ok {
		t.Error("username ChatID should not report a numeric id")
	}
}
