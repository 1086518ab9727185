// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

// CapturedRequest is a request received by a capture server, with its
// body fully read.
type CapturedRequest struct {
	Method        string
	Path          string
	ContentType   string
	UserAgent     string
	ContentLength int64
	Chunked       bool
	Body          []byte
}

// NewCaptureServer starts a server that replies to every request with
// status and response, and sends each request it receives on the
// returned channel. The channel is buffered for 16 requests. The
// server is closed when the test completes.
func NewCaptureServer(t *testing.T, status int, response string) (*httptest.Server, <-chan CapturedRequest) {
	t.Helper()
	requests := make(chan CapturedRequest, 16)
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, err := io.ReadAll(request.Body)
		if err != nil {
			http.Error(writer, err.Error(), http.StatusBadRequest)
			return
		}
		chunked := false
		for _, encoding := range request.TransferEncoding {
			if encoding == "chunked" {
				chunked = true
			}
		}
		requests <- CapturedRequest{
			Method:        request.Method,
			Path:          request.URL.Path,
			ContentType:   request.Header.Get("Content-Type"),
			UserAgent:     request.Header.Get("User-Agent"),
			ContentLength: request.ContentLength,
			Chunked:       chunked,
			Body:          body,
		}
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		io.WriteString(writer, response)
	}))
	t.Cleanup(server.Close)
	return server, requests
}

// FilePart is a file field of a multipart body.
type FilePart struct {
	FileName    string
	ContentType string
	Data        []byte
}

// MultipartForm is a parsed multipart/form-data body.
type MultipartForm struct {
	// Names lists every field name in body order.
	Names []string
	Text  map[string]string
	Files map[string]FilePart
}

// ParseMultipart parses a captured multipart/form-data body. A part
// with a filename, or with a Content-Type header, is a file part; every
// other part is a text field.
func ParseMultipart(t *testing.T, request CapturedRequest) MultipartForm {
	t.Helper()
	mediaType, parameters, err := mime.ParseMediaType(request.ContentType)
	if err != nil {
		t.Fatalf("parsing Content-Type %q: %v", request.ContentType, err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("Content-Type = %q, want multipart/form-data", mediaType)
	}

	form := MultipartForm{Text: make(map[string]string), Files: make(map[string]FilePart)}
	reader := multipart.NewReader(bytes.NewReader(request.Body), parameters["boundary"])
	for {
		part, err := reader.NextRawPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading multipart body: %v", err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("reading part %q: %v", part.FormName(), err)
		}
		name := part.FormName()
		form.Names = append(form.Names, name)
		if part.FileName() != "" || part.Header.Get("Content-Type") != "" {
			form.Files[name] = FilePart{
				FileName:    part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        data,
			}
		} else {
			form.Text[name] = string(data)
		}
	}
	return form
}
