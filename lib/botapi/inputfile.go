// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// InputFile is a file argument of a method call. The implementations
// are [FileID] (a file already stored on the Telegram servers),
// [FileURL] (a file the server downloads itself) and [*FileReader]
// (bytes uploaded with the request). Only *FileReader needs a
// multipart body.
type InputFile interface {
	inputFile()
}

// FileID refers to a file already uploaded to Telegram.
type FileID string

// FileURL refers to a file Telegram downloads from the web.
type FileURL string

func (FileID) inputFile()      {}
func (FileURL) inputFile()     {}
func (*FileReader) inputFile() {}

var errSourceConsumed = errors.New("file source was already consumed")

// FileReader is an upload source: a byte stream with an optional file
// name, MIME type and known size. It is read at most once, while the
// request carrying it is written; building a second request from the
// same FileReader fails with a *FormBuildError.
type FileReader struct {
	reader   io.Reader
	name     string
	mimeType string
	size     int64
	consumed bool
}

// NewFileReader returns an upload source reading from reader. The size
// is detected for *bytes.Reader, *bytes.Buffer and *strings.Reader and
// unknown otherwise. If reader is an io.Closer it is closed after the
// request body has been written.
func NewFileReader(reader io.Reader, name string) *FileReader {
	size := int64(-1)
	switch typed := reader.(type) {
	case *bytes.Reader:
		size = int64(typed.Len())
	case *bytes.Buffer:
		size = int64(typed.Len())
	case *strings.Reader:
		size = int64(typed.Len())
	}
	return &FileReader{reader: reader, name: name, size: size}
}

// NewFileBytes returns an upload source for an in-memory file.
func NewFileBytes(data []byte, name string) *FileReader {
	return NewFileReader(bytes.NewReader(data), name)
}

// OpenFile opens the file at path as an upload source. The name is the
// base name of path and the MIME type is derived from its extension.
func OpenFile(path string) (*FileReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("botapi: opening upload: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("botapi: opening upload: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("botapi: opening upload: %s is a directory", path)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return &FileReader{
		reader:   file,
		name:     filepath.Base(path),
		mimeType: mimeType,
		size:     info.Size(),
	}, nil
}

// WithMimeType sets the Content-Type of the uploaded part.
func (file *FileReader) WithMimeType(mimeType string) *FileReader {
	file.mimeType = mimeType
	return file
}

// WithSize records the exact number of bytes the source will yield,
// letting the request carry a Content-Length instead of being chunked.
func (file *FileReader) WithSize(size int64) *FileReader {
	file.size = size
	return file
}

// Name returns the file name sent in the Content-Disposition header.
func (file *FileReader) Name() string { return file.name }

// MimeType returns the MIME type of the part, or "".
func (file *FileReader) MimeType() string { return file.mimeType }

// Size returns the known size in bytes, or -1.
func (file *FileReader) Size() int64 { return file.size }

// Consumed reports whether the source has been handed to a request.
func (file *FileReader) Consumed() bool { return file.consumed }

// take hands the underlying reader to the encoder. It succeeds once.
func (file *FileReader) take() (io.Reader, error) {
	if file.consumed {
		return nil, errSourceConsumed
	}
	file.consumed = true
	return file.reader, nil
}

// Close releases the underlying reader without sending it.
func (file *FileReader) Close() error {
	file.consumed = true
	if closer, ok := file.reader.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
