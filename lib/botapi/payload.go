// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Body is the body of a [Payload]: [EmptyBody], [JSONBody] or
// [FormBody].
type Body interface {
	body()
}

// EmptyBody is the body of a parameterless GET request.
type EmptyBody struct{}

// JSONBody is an encoded JSON object.
type JSONBody struct {
	Data []byte
}

// FormBody is a multipart form.
type FormBody struct {
	Form *Form
}

func (EmptyBody) body() {}
func (JSONBody) body()  {}
func (FormBody) body()  {}

// Payload is a fully built method call: the method name, the HTTP verb
// and exactly one body. A Payload carrying file uploads can be sent
// once.
type Payload struct {
	methodName string
	httpMethod string
	body       Body
}

// NewEmptyPayload returns a GET call without parameters.
func NewEmptyPayload(methodName string) *Payload {
	return &Payload{methodName: methodName, httpMethod: http.MethodGet, body: EmptyBody{}}
}

// NewJSONPayload returns a POST call whose body is value encoded as
// JSON.
func NewJSONPayload(methodName string, value any) (*Payload, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &SerializationError{Side: SideRequest, Method: methodName, Err: err}
	}
	return &Payload{methodName: methodName, httpMethod: http.MethodPost, body: JSONBody{Data: data}}, nil
}

// NewFormPayload returns a POST call whose body is form.
func NewFormPayload(methodName string, form *Form) *Payload {
	return &Payload{methodName: methodName, httpMethod: http.MethodPost, body: FormBody{Form: form}}
}

// MethodName returns the Bot API method name.
func (payload *Payload) MethodName() string { return payload.methodName }

// HTTPMethod returns "GET" or "POST".
func (payload *Payload) HTTPMethod() string { return payload.httpMethod }

// Body returns the request body.
func (payload *Payload) Body() Body { return payload.body }

// URL returns the endpoint of the call. See BuildURL.
func (payload *Payload) URL(host, token string) string {
	return BuildURL(host, token, payload.methodName)
}

// BuildURL returns host + "/bot" + token + "/" + method. Nothing is
// escaped and no separators are added or removed.
func BuildURL(host, token, method string) string {
	return host + "/bot" + token + "/" + method
}

// bodyKind names the body type for logs.
func (payload *Payload) bodyKind() string {
	switch payload.body.(type) {
	case JSONBody:
		return "json"
	case FormBody:
		return "multipart"
	default:
		return "empty"
	}
}

// newRequest builds the HTTP request for the call. Form preconditions
// are checked here, before anything is sent.
func (payload *Payload) newRequest(ctx context.Context, host, token string) (*http.Request, error) {
	url := payload.URL(host, token)
	switch body := payload.body.(type) {
	case JSONBody:
		request, err := http.NewRequestWithContext(ctx, payload.httpMethod, url, bytes.NewReader(body.Data))
		if err != nil {
			return nil, fmt.Errorf("botapi: %s: creating request: %w", payload.methodName, err)
		}
		request.Header.Set("Content-Type", "application/json")
		return request, nil

	case FormBody:
		encoded, err := body.Form.Encode()
		if err != nil {
			return nil, err
		}
		request, err := http.NewRequestWithContext(ctx, payload.httpMethod, url, encoded.Reader)
		if err != nil {
			encoded.Reader.Close()
			return nil, fmt.Errorf("botapi: %s: creating request: %w", payload.methodName, err)
		}
		request.Header.Set("Content-Type", encoded.ContentType)
		request.ContentLength = encoded.ContentLength
		return request, nil

	default:
		request, err := http.NewRequestWithContext(ctx, payload.httpMethod, url, nil)
		if err != nil {
			return nil, fmt.Errorf("botapi: %s: creating request: %w", payload.methodName, err)
		}
		return request, nil
	}
}
