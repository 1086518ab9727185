// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil provides HTTP I/O utilities shared by the Bot API
// client and the command-line tools.
//
// Response helpers (ReadResponse, ErrorBody) bound every body read so a
// misbehaving server or proxy cannot exhaust memory. They are for JSON
// API responses. File downloads are streamed by the caller and never
// read through these helpers.
//
// NewTransport and NewHTTPClient build an HTTP transport that reaches
// the network through an HTTP, HTTPS or SOCKS5 proxy.
package netutil

import (
	"io"
)

// MaxResponseSize is the bound on JSON API response body reads: 256 MB.
// Legitimate Bot API responses are orders of magnitude smaller.
const MaxResponseSize int64 = 256 << 20

// MaxErrorBodySize bounds the part of an error response body kept for
// diagnostic messages.
const MaxErrorBodySize int64 = 4 << 10

// ReadResponse reads a JSON API response body up to MaxResponseSize bytes.
// Use instead of io.ReadAll when reading HTTP response bodies.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// ErrorBody reads the start of an HTTP error response body and returns
// it as a string for diagnostic error messages. Read errors are
// ignored: a partial or empty body is still useful in an error message.
func ErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, MaxErrorBodySize))
	return string(data)
}
