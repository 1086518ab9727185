// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Envelope descriptions for responses that violate the envelope
// contract.
const (
	descriptionNoResult      = "response is ok, but result is not provided"
	descriptionNoDescription = "no description"
)

// Envelope is the outer {ok, result | error} wrapper of every Bot API
// response. When OK is true, Result holds the undecoded result; when it
// is false, Err describes the failure.
type Envelope struct {
	OK     bool
	Result json.RawMessage
	Err    *APIError
}

type wireEnvelope struct {
	OK          *bool           `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description *string         `json:"description"`
	ErrorCode   *int            `json:"error_code"`
	Parameters  *wireParameters `json:"parameters"`
}

// wireParameters is the ResponseParameters object.
type wireParameters struct {
	MigrateToChatID *int64 `json:"migrate_to_chat_id"`
	RetryAfter      *int64 `json:"retry_after"`
}

// DecodeEnvelope decodes the outer wrapper of a response. It fails
// with a *SerializationError only when data is not an envelope at all.
// An ok:true envelope without a result is reported as a failed
// envelope, and an ok:false envelope without a description gets
// "no description".
func DecodeEnvelope(data []byte) (Envelope, error) {
	var wire wireEnvelope
	if err := json.Unmarshal(data, &wire); err != nil {
		return Envelope{}, &SerializationError{Side: SideResponse, Err: err}
	}
	if wire.OK == nil {
		return Envelope{}, &SerializationError{Side: SideResponse, Err: errors.New(`envelope has no "ok" field`)}
	}

	if *wire.OK {
		if len(wire.Result) == 0 || bytes.Equal(wire.Result, []byte("null")) {
			return Envelope{Err: NewAPIError(descriptionNoResult)}, nil
		}
		return Envelope{OK: true, Result: wire.Result}, nil
	}

	apiError := &APIError{description: descriptionNoDescription, errorCode: wire.ErrorCode}
	if wire.Description != nil {
		apiError.description = *wire.Description
	}
	if wire.Parameters != nil {
		apiError.retryAfter = wire.Parameters.RetryAfter
		apiError.migrateToChatID = wire.Parameters.MigrateToChatID
	}
	return Envelope{Err: apiError}, nil
}

// DecodeResult decodes the result of a successful envelope into T.
// Failure is a *SerializationError, never an *APIError.
func DecodeResult[T any](method string, result json.RawMessage) (T, error) {
	var value T
	if err := json.Unmarshal(result, &value); err != nil {
		return value, &SerializationError{Side: SideResponse, Method: method, Err: err}
	}
	return value, nil
}

// DecodeResponse decodes a complete response body: the envelope, then
// the result. A remote failure is returned as an *APIError.
func DecodeResponse[T any](method string, data []byte) (T, error) {
	var zero T
	envelope, err := DecodeEnvelope(data)
	if err != nil {
		var serializationError *SerializationError
		if errors.As(err, &serializationError) {
			serializationError.Method = method
		}
		return zero, err
	}
	if !envelope.OK {
		return zero, envelope.Err
	}
	return DecodeResult[T](method, envelope.Result)
}
