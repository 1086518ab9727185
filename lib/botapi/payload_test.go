// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
)

func TestBuildURL(t *testing.T) {
	got := BuildURL("https://api.example.org", "tok", "sendMessage")
	if got != "https://api.example.org/bottok/sendMessage" {
		t.Errorf("BuildURL = %q, want %q", got, "https://api.example.org/bottok/sendMessage")
	}

	payload := NewEmptyPayload("getMe")
	if got := payload.URL("http://127.0.0.1:8081", "123:ABC"); got != "http://127.0.0.1:8081/bot123:ABC/getMe" {
		t.Errorf("URL = %q", got)
	}
}

func TestNewEmptyPayload(t *testing.T) {
	payload := NewEmptyPayload("getMe")
	if payload.HTTPMethod() != http.MethodGet {
		t.Errorf("HTTPMethod() = %q, want GET", payload.HTTPMethod())
	}
	if _, ok := payload.Body().(EmptyBody); !ok {
		t.Errorf("Body() = %T, want EmptyBody", payload.Body())
	}

	request, err := payload.newRequest(context.Background(), "https://api.example.org", "tok")
	if err != nil {
		t.Fatalf("newRequest: %v", err)
	}
	if request.Body != nil {
		t.Error("GET request should have no body")
	}
}

func TestNewJSONPayload(t *testing.T) {
	payload, err := NewJSONPayload("sendMessage", map[string]any{"chat_id": 1, "text": "hi"})
	if err != nil {
		t.Fatalf("NewJSONPayload: %v", err)
	}
	if payload.HTTPMethod() != http.MethodPost {
		t.Errorf("HTTPMethod() = %q, want POST", payload.HTTPMethod())
	}
	body, ok := payload.Body().(JSONBody)
	if !ok {
		t.Fatalf("Body() = %T, want JSONBody", payload.Body())
	}
	if string(body.Data) != `{"chat_id":1,"text":"hi"}` {
		t.Errorf("body = %s", body.Data)
	}

	request, err := payload.newRequest(context.Background(), "https://api.example.org", "tok")
	if err != nil {
		t.Fatalf("newRequest: %v", err)
	}
	if got := request.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	data, _ := io.ReadAll(request.Body)
	if string(data) != string(body.Data) {
		t.Errorf("request body = %s, want %s", data, body.Data)
	}
}

func TestNewJSONPayload_EncodeFailure(t *testing.T) {
	_, err := NewJSONPayload("sendMessage", map[string]any{"bad": make(chan int)})
	var serializationError *SerializationError
	if !errors.As(err, &serializationError) {
		t.Fatalf("expected *SerializationError, got %v", err)
	}
	if serializationError.Side != SideRequest {
		t.Errorf("Side = %v, want request", serializationError.Side)
	}
	if serializationError.Method != "sendMessage" {
		t.Errorf("Method = %q, want sendMessage", serializationError.Method)
	}
}

func TestPayload_FormBuildErrorBeforeSend(t *testing.T) {
	form := NewForm()
	form.Set("document", FileValue{})
	payload := NewFormPayload("sendDocument", form)

	_, err := payload.newRequest(context.Background(), "https://api.example.org", "tok")
	var formError *FormBuildError
	if !errors.As(err, &formError) {
		t.Fatalf("expected *FormBuildError, got %v", err)
	}
	if formError.Field != "document" {
		t.Errorf("Field = %q, want document", formError.Field)
	}
}
