// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration used for
// tgbot's on-disk state.
//
// The Bot API itself speaks JSON, and so do the CLI's --json outputs.
// Local state that only tgbot reads back (the update offset of
// "tgbot-call updates") is stored as CBOR. The encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2): sorted map keys, smallest
// integer encoding, no indefinite-length items, so the same state
// always produces identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// [WriteFile] and [ReadFile] store one value per file; WriteFile
// replaces the file atomically.
//
// Types stored only as CBOR carry `cbor` struct tags. fxamacker/cbor
// falls back to `json` tags when `cbor` tags are absent, so types that
// are also printed as JSON use `json` tags alone.
package codec
