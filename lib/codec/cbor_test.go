// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// pollState mirrors the shape of the CLI's update offset file.
type pollState struct {
	Host    string `cbor:"host"`
	BotID   int64  `cbor:"bot_id"`
	Offset  int64  `cbor:"offset"`
	Comment string `cbor:"comment,omitempty"`
}

// printedState uses json tags, relying on the cbor fallback.
type printedState struct {
	Offset int64  `json:"offset"`
	Host   string `json:"host"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := pollState{Host: "https://api.telegram.org", BotID: 42, Offset: 1001}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded pollState
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	first, err := Marshal(map[string]any{"offset": 1, "host": "h", "bot_id": 2})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for attempt := 0; attempt < 10; attempt++ {
		again, err := Marshal(map[string]any{"bot_id": 2, "host": "h", "offset": 1})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("non-deterministic encoding: %x vs %x", first, again)
		}
	}
}

func TestEncoderDecoderStream(t *testing.T) {
	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for offset := int64(1); offset <= 3; offset++ {
		if err := encoder.Encode(pollState{Offset: offset}); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for offset := int64(1); offset <= 3; offset++ {
		var decoded pollState
		if err := decoder.Decode(&decoded); err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if decoded.Offset != offset {
			t.Errorf("Offset = %d, want %d", decoded.Offset, offset)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	data, err := Marshal(printedState{Offset: 9, Host: "h"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var generic map[string]any
	if err := Unmarshal(data, &generic); err != nil {
		t.Fatalf("Unmarshal into map: %v", err)
	}
	if _, ok := generic["offset"]; !ok {
		t.Errorf("json tag name not used as CBOR key: %v", generic)
	}
}

func TestUnmarshalAnyUsesStringKeys(t *testing.T) {
	data, err := Marshal(map[string]any{"nested": map[string]any{"a": 1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	top, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded %T, want map[string]any", decoded)
	}
	if _, ok := top["nested"].(map[string]any); !ok {
		t.Errorf("nested value %T, want map[string]any", top["nested"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var state pollState
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &state); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestWriteFileReadFile(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, "offset.cbor")

	if err := WriteFile(path, pollState{Offset: 5}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, pollState{Offset: 6, Comment: "replaced"}); err != nil {
		t.Fatalf("WriteFile (replace): %v", err)
	}

	var state pollState
	if err := ReadFile(path, &state); err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if state.Offset != 6 || state.Comment != "replaced" {
		t.Errorf("state = %+v", state)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestReadFile_Missing(t *testing.T) {
	var state pollState
	err := ReadFile(filepath.Join(t.TempDir(), "missing.cbor"), &state)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestReadFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.cbor")
	if err := os.WriteFile(path, []byte{0xFF}, 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	var state pollState
	if err := ReadFile(path, &state); err == nil {
		t.Error("ReadFile accepted corrupt data")
	}
}
