// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"context"
	"encoding/json"
)

// UpdateHandler receives decoded updates. The webhook listener or
// polling loop that produces update documents lives outside this
// package.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update Update) error
}

// HandlerFunc adapts a function to UpdateHandler.
type HandlerFunc func(ctx context.Context, update Update) error

// HandleUpdate calls function(ctx, update).
func (function HandlerFunc) HandleUpdate(ctx context.Context, update Update) error {
	return function(ctx, update)
}

// Dispatch decodes one update document and passes it to handler. The
// handler is called exactly once when decoding succeeds and never when
// it fails; decode failures are *SerializationError values.
func Dispatch(ctx context.Context, raw []byte, handler UpdateHandler) error {
	var update Update
	if err := json.Unmarshal(raw, &update); err != nil {
		return &SerializationError{Side: SideResponse, Method: "update", Err: err}
	}
	return handler.HandleUpdate(ctx, update)
}
