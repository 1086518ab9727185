// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Sentinels wrapped by *ValidationError.
var (
	ErrNotEnoughItems         = errors.New("not enough items")
	ErrTooManyItems           = errors.New("too many items")
	ErrThumbnailNotAcceptable = errors.New("thumbnail is not acceptable for this media kind")
	ErrCoverNotAcceptable     = errors.New("cover is not acceptable for this media kind")
	ErrInvalidBotCommand      = errors.New("invalid bot command")
	ErrMissingMediaKind       = errors.New("media kind is missing")
)

// TransportError is a failure to exchange a request with the server:
// the HTTP client failed, or a file download returned a non-2xx status.
type TransportError struct {
	// Method is the Bot API method name, or "download" for file
	// downloads.
	Method string

	// StatusCode is the HTTP status, zero when no response was
	// received.
	StatusCode int

	// Body is the start of the response body for non-2xx statuses.
	Body string

	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		message := fmt.Sprintf("botapi: %s: HTTP %d", e.Method, e.StatusCode)
		if e.Body != "" {
			message += ": " + e.Body
		}
		return message
	}
	return fmt.Sprintf("botapi: %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Side tells which direction of a call failed to (de)serialize.
type Side int

const (
	// SideRequest means encoding the request parameters failed.
	SideRequest Side = iota
	// SideResponse means decoding the server's response failed.
	SideResponse
)

func (side Side) String() string {
	if side == SideRequest {
		return "request"
	}
	return "response"
}

// SerializationError is a local JSON encode or decode failure. It is
// never a remote error: a response that decodes as a well-formed
// envelope but whose result does not fit the expected type is reported
// here, not as an *APIError.
type SerializationError struct {
	Side   Side
	Method string
	Err    error
}

func (e *SerializationError) Error() string {
	verb := "encoding request"
	if e.Side == SideResponse {
		verb = "decoding response"
	}
	if e.Method == "" {
		return fmt.Sprintf("botapi: %s: %v", verb, e.Err)
	}
	return fmt.Sprintf("botapi: %s: %s: %v", e.Method, verb, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// FormBuildError is a multipart body that cannot be assembled: a file
// part without a source, an already consumed source, a malformed MIME
// type, or an empty field name.
type FormBuildError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FormBuildError) Error() string {
	message := fmt.Sprintf("botapi: form field %q: %s", e.Field, e.Reason)
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *FormBuildError) Unwrap() error { return e.Err }

// ValidationError is a local precondition caught before any network
// I/O. Err is one of the package sentinels, so callers can test the
// cause with errors.Is.
type ValidationError struct {
	// Field names the offending parameter ("media", "thumbnail",
	// "commands[2].command").
	Field string

	// Limit is the bound that was violated, when there is one.
	Limit int

	Err error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNotEnoughItems):
		return fmt.Sprintf("botapi: %s: %v (minimum %d)", e.Field, e.Err, e.Limit)
	case errors.Is(e.Err, ErrTooManyItems):
		return fmt.Sprintf("botapi: %s: %v (maximum %d)", e.Field, e.Err, e.Limit)
	default:
		return fmt.Sprintf("botapi: %s: %v", e.Field, e.Err)
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

// APIError is an error returned by the Bot API in an ok:false envelope.
// Optional parts are exposed through accessors reporting presence.
type APIError struct {
	description     string
	errorCode       *int
	retryAfter      *int64
	migrateToChatID *int64
}

// NewAPIError returns an APIError with only a description. It is used
// for locally detected envelope violations and in tests.
func NewAPIError(description string) *APIError {
	return &APIError{description: description}
}

// Description returns the human-readable error text.
func (e *APIError) Description() string { return e.description }

// ErrorCode returns the numeric error code, when the server sent one.
func (e *APIError) ErrorCode() (int, bool) {
	if e.errorCode == nil {
		return 0, false
	}
	return *e.errorCode, true
}

// CanRetry reports whether the server asked the caller to retry after
// a delay. It is true exactly when retry_after was present.
func (e *APIError) CanRetry() bool { return e.retryAfter != nil }

// RetryAfter returns how long to wait before repeating the request.
// It reports a delay exactly when CanRetry is true; a negative value
// from the server is clamped to zero.
func (e *APIError) RetryAfter() (time.Duration, bool) {
	if e.retryAfter == nil {
		return 0, false
	}
	return time.Duration(max(*e.retryAfter, 0)) * time.Second, true
}

// MigrateToChatID returns the new identifier of a group that was
// upgraded to a supergroup. The request should be sent again to the
// new chat. Whether to do so is the caller's decision.
func (e *APIError) MigrateToChatID() (int64, bool) {
	if e.migrateToChatID == nil {
		return 0, false
	}
	return *e.migrateToChatID, true
}

func (e *APIError) Error() string {
	var builder strings.Builder
	builder.WriteString("botapi: telegram error: ")
	builder.WriteString(e.description)
	if e.errorCode != nil {
		builder.WriteString("; error_code=")
		builder.WriteString(strconv.Itoa(*e.errorCode))
	}
	if e.retryAfter != nil {
		builder.WriteString("; retry_after=")
		builder.WriteString(strconv.FormatInt(*e.retryAfter, 10))
	}
	if e.migrateToChatID != nil {
		builder.WriteString("; migrate_to_chat_id=")
		builder.WriteString(strconv.FormatInt(*e.migrateToChatID, 10))
	}
	return builder.String()
}

// IsRetryable reports whether err is an *APIError carrying a retry
// delay, and returns the delay.
func IsRetryable(err error) (time.Duration, bool) {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return 0, false
	}
	return apiError.RetryAfter()
}

// IsMigrated reports whether err is an *APIError telling the caller
// that the chat moved, and returns the new chat identifier.
func IsMigrated(err error) (int64, bool) {
	var apiError *APIError
	if !errors.As(err, &apiError) {
		return 0, false
	}
	return apiError.MigrateToChatID()
}
