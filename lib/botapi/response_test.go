// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"errors"
	"testing"
	"time"

	"github.com/bureau-foundation/tgbot/lib/schema"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name            string
		data            string
		ok              bool
		description     string
		errorCode       int
		hasErrorCode    bool
		retryAfter      time.Duration
		canRetry        bool
		migrateToChatID int64
		migrated        bool
	}{
		{
			name: "ok with result",
			data: `{"ok":true,"result":{"id":1}}`,
			ok:   true,
		},
		{
			name: "ok with false result",
			data: `{"ok":true,"result":false}`,
			ok:   true,
		},
		{
			name:        "ok without result",
			data:        `{"ok":true}`,
			description: "response is ok, but result is not provided",
		},
		{
			name:        "ok with null result",
			data:        `{"ok":true,"result":null}`,
			description: "response is ok, but result is not provided",
		},
		{
			name:         "error with code",
			data:         `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`,
			description:  "Bad Request: chat not found",
			errorCode:    400,
			hasErrorCode: true,
		},
		{
			name:        "error without description",
			data:        `{"ok":false}`,
			description: "no description",
		},
		{
			name:         "flood wait",
			data:         `{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 30","parameters":{"retry_after":30}}`,
			description:  "Too Many Requests: retry after 30",
			errorCode:    429,
			hasErrorCode: true,
			retryAfter:   30 * time.Second,
			canRetry:     true,
		},
		{
			name:            "migrated group",
			data:            `{"ok":false,"error_code":400,"description":"Bad Request: group chat was upgraded to a supergroup chat","parameters":{"migrate_to_chat_id":-1001234567890}}`,
			description:     "Bad Request: group chat was upgraded to a supergroup chat",
			errorCode:       400,
			hasErrorCode:    true,
			migrateToChatID: -1001234567890,
			migrated:        true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			envelope, err := DecodeEnvelope([]byte(test.data))
			if err != nil {
				t.Fatalf("DecodeEnvelope: %v", err)
			}
			if envelope.OK != test.ok {
				t.Fatalf("OK = %v, want %v", envelope.OK, test.ok)
			}
			if test.ok {
				if envelope.Err != nil {
					t.Errorf("Err = %v, want nil", envelope.Err)
				}
				if len(envelope.Result) == 0 {
					t.Error("Result is empty")
				}
				return
			}

			if envelope.Err == nil {
				t.Fatal("Err is nil for a failed envelope")
			}
			if envelope.Err.Description() != test.description {
				t.Errorf("Description() = %q, want %q", envelope.Err.Description(), test.description)
			}
			code, hasCode := envelope.Err.ErrorCode()
			if hasCode != test.hasErrorCode || code != test.errorCode {
				t.Errorf("ErrorCode() = (%d, %v), want (%d, %v)", code, hasCode, test.errorCode, test.hasErrorCode)
			}
			if envelope.Err.CanRetry() != test.canRetry {
				t.Errorf("CanRetry() = %v, want %v", envelope.Err.CanRetry(), test.canRetry)
			}
			delay, _ := envelope.Err.RetryAfter()
			if delay != test.retryAfter {
				t.Errorf("RetryAfter() = %v, want %v", delay, test.retryAfter)
			}
			chatID, migrated := envelope.Err.MigrateToChatID()
			if migrated != test.migrated || chatID != test.migrateToChatID {
				t.Errorf("MigrateToChatID() = (%d, %v), want (%d, %v)", chatID, migrated, test.migrateToChatID, test.migrated)
			}
		})
	}
}

func TestDecodeEnvelope_NotAnEnvelope(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "invalid JSON", data: `<html>Bad Gateway</html>`},
		{name: "missing ok", data: `{"result":1}`},
		{name: "ok is not a boolean", data: `{"ok":"yes"}`},
		{name: "array", data: `[1,2]`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(test.data))
			var serializationError *SerializationError
			if !errors.As(err, &serializationError) {
				t.Fatalf("expected *SerializationError, got %T: %v", err, err)
			}
			if serializationError.Side != SideResponse {
				t.Errorf("Side = %v, want response", serializationError.Side)
			}
			var apiError *APIError
			if errors.As(err, &apiError) {
				t.Error("decode failure must not be an *APIError")
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	user, err := DecodeResponse[schema.User]("getMe", []byte(`{"ok":true,"result":{"id":42,"is_bot":true,"first_name":"tester","username":"tester_bot"}}`))
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if user.ID != 42 || !user.IsBot || user.Username != "tester_bot" {
		t.Errorf("user = %+v", user)
	}

	deleted, err := DecodeResponse[bool]("deleteMyCommands", []byte(`{"ok":true,"result":true}`))
	if err != nil || !deleted {
		t.Errorf("DecodeResponse[bool] = (%v, %v)", deleted, err)
	}
}

func TestDecodeResponse_RemoteFailure(t *testing.T) {
	_, err := DecodeResponse[schema.User]("getMe", []byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	var apiError *APIError
	if !errors.As(err, &apiError) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiError.Description() != "Unauthorized" {
		t.Errorf("Description() = %q", apiError.Description())
	}
}

func TestDecodeResponse_ResultTypeMismatch(t *testing.T) {
	_, err := DecodeResponse[schema.User]("getMe", []byte(`{"ok":true,"result":"not a user"}`))
	var serializationError *SerializationError
	if !errors.As(err, &serializationError) {
		t.Fatalf("expected *SerializationError, got %T: %v", err, err)
	}
	if serializationError.Method != "getMe" || serializationError.Side != SideResponse {
		t.Errorf("error = %+v", serializationError)
	}
	var apiError *APIError
	if errors.As(err, &apiError) {
		t.Error("type mismatch must not be an *APIError")
	}
}

func TestDecodeResponse_EnvelopeFailureNamesMethod(t *testing.T) {
	_, err := DecodeResponse[bool]("close", []byte(`not json`))
	var serializationError *SerializationError
	if !errors.As(err, &serializationError) {
		t.Fatalf("expected *SerializationError, got %T: %v", err, err)
	}
	if serializationError.Method != "close" {
		t.Errorf("Method = %q, want close", serializationError.Method)
	}
}
