// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody is an encoded form ready to be sent. Reader streams the
// body; file contents are read from their sources only as the body is
// read. Closing Reader closes every file source that is an io.Closer.
type MultipartBody struct {
	Reader      io.ReadCloser
	ContentType string

	// ContentLength is the exact body size, or -1 when a file source
	// has an unknown size.
	ContentLength int64
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode renders the form as multipart/form-data. Every precondition is
// checked before any file source is taken, so a failed Encode leaves
// all sources unconsumed.
func (form *Form) Encode() (*MultipartBody, error) {
	sources := make(map[*FileReader]string)
	for _, name := range form.names {
		if err := checkField(name, form.values[name], sources); err != nil {
			return nil, err
		}
	}

	var (
		framing  bytes.Buffer
		segments []io.Reader
		closers  []io.Closer
		length   int64
		known    = true
	)
	writer := multipart.NewWriter(&framing)

	flushFraming := func() {
		if framing.Len() == 0 {
			return
		}
		length += int64(framing.Len())
		segments = append(segments, bytes.NewReader(bytes.Clone(framing.Bytes())))
		framing.Reset()
	}

	for _, name := range form.names {
		switch value := form.values[name].(type) {
		case TextValue:
			if err := writer.WriteField(name, string(value)); err != nil {
				return nil, &FormBuildError{Field: name, Reason: "writing text part", Err: err}
			}
		case FileValue:
			if _, err := writer.CreatePart(fileHeader(name, value)); err != nil {
				return nil, &FormBuildError{Field: name, Reason: "writing file part header", Err: err}
			}
			reader, err := value.Source.take()
			if err != nil {
				closeAll(closers)
				return nil, &FormBuildError{Field: name, Reason: "file source unavailable", Err: err}
			}
			if closer, ok := reader.(io.Closer); ok {
				closers = append(closers, closer)
			}
			flushFraming()
			segments = append(segments, reader)
			if size := value.Source.size; size >= 0 {
				length += size
			} else {
				known = false
			}
		}
	}
	if err := writer.Close(); err != nil {
		closeAll(closers)
		return nil, &FormBuildError{Field: "", Reason: "closing multipart body", Err: err}
	}
	flushFraming()

	if !known {
		length = -1
	}
	return &MultipartBody{
		Reader:        &multipartReader{Reader: io.MultiReader(segments...), closers: closers},
		ContentType:   writer.FormDataContentType(),
		ContentLength: length,
	}, nil
}

// checkField validates one field. sources maps every file source seen
// so far to its field; a source can back only one part.
func checkField(name string, value FormValue, sources map[*FileReader]string) error {
	if name == "" {
		return &FormBuildError{Field: name, Reason: "field name is empty"}
	}
	file, ok := value.(FileValue)
	if !ok {
		return nil
	}
	if file.Source == nil {
		return &FormBuildError{Field: name, Reason: "file source is missing"}
	}
	if file.Source.consumed {
		return &FormBuildError{Field: name, Reason: "file source unavailable", Err: errSourceConsumed}
	}
	if other, seen := sources[file.Source]; seen {
		return &FormBuildError{Field: name, Reason: fmt.Sprintf("file source is already used by field %q", other)}
	}
	sources[file.Source] = name
	if mimeType := file.mimeType(); mimeType != "" {
		if _, _, err := mime.ParseMediaType(mimeType); err != nil {
			return &FormBuildError{Field: name, Reason: fmt.Sprintf("malformed MIME type %q", mimeType), Err: err}
		}
	}
	return nil
}

func (file FileValue) fileName() string {
	if file.Name != "" {
		return file.Name
	}
	return file.Source.name
}

func (file FileValue) mimeType() string {
	if file.MimeType != "" {
		return file.MimeType
	}
	return file.Source.mimeType
}

func fileHeader(name string, file FileValue) textproto.MIMEHeader {
	disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(name))
	if fileName := file.fileName(); fileName != "" {
		disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(fileName))
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", disposition)
	if mimeType := file.mimeType(); mimeType != "" {
		header.Set("Content-Type", mimeType)
	}
	return header
}

type multipartReader struct {
	io.Reader
	closers []io.Closer
}

func (reader *multipartReader) Close() error {
	err := closeAll(reader.closers)
	reader.closers = nil
	return err
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, closer := range closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
