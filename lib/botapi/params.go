// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bureau-foundation/tgbot/lib/richtext"
)

// Params collects the parameters of a method call in order. It becomes
// a JSON body when every parameter is plain data and a multipart form
// as soon as one parameter uploads a file. Errors from Set calls are
// kept and reported by Payload, so calls can be chained without
// checking each one.
type Params struct {
	names  []string
	values map[string]param
	err    error
}

// param is one parameter: either encoded JSON or an upload.
type param struct {
	raw  json.RawMessage
	file *FileReader
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{values: make(map[string]param)}
}

// put stores value under name. An upload source can back only one
// field, since it is read once.
func (params *Params) put(name string, value param) error {
	if params.values == nil {
		params.values = make(map[string]param)
	}
	if value.file != nil {
		for _, existing := range params.names {
			if existing != name && params.values[existing].file == value.file {
				return &FormBuildError{
					Field:  name,
					Reason: fmt.Sprintf("file source is already used by field %q", existing),
				}
			}
		}
	}
	if _, exists := params.values[name]; !exists {
		params.names = append(params.names, name)
	}
	params.values[name] = value
	return nil
}

func (params *Params) fail(err error) {
	if params.err == nil {
		params.err = err
	}
}

// Set stores value encoded as JSON.
func (params *Params) Set(name string, value any) *Params {
	data, err := json.Marshal(value)
	if err != nil {
		params.fail(&SerializationError{Side: SideRequest, Err: fmt.Errorf("parameter %q: %w", name, err)})
		return params
	}
	params.put(name, param{raw: data})
	return params
}

// SetString stores a string parameter.
func (params *Params) SetString(name, value string) *Params {
	return params.Set(name, value)
}

// SetRaw stores an already encoded JSON value.
func (params *Params) SetRaw(name string, value json.RawMessage) *Params {
	if !json.Valid(value) {
		params.fail(&SerializationError{Side: SideRequest, Err: fmt.Errorf("parameter %q: invalid JSON", name)})
		return params
	}
	params.put(name, param{raw: bytes.Clone(value)})
	return params
}

// SetFile stores a file parameter. A [FileID] or [FileURL] is sent as
// its string; a [*FileReader] is uploaded as a multipart file part.
func (params *Params) SetFile(name string, file InputFile) *Params {
	switch file := file.(type) {
	case FileID:
		return params.SetString(name, string(file))
	case FileURL:
		return params.SetString(name, string(file))
	case *FileReader:
		if file == nil {
			params.fail(&FormBuildError{Field: name, Reason: "file source is missing"})
			return params
		}
		if err := params.put(name, param{file: file}); err != nil {
			params.fail(err)
		}
	default:
		params.fail(&FormBuildError{Field: name, Reason: "file is missing"})
	}
	return params
}

// SetText stores formatted text under textField. The parse mode goes to
// "parse_mode" and explicit entities to entitiesField; whichever the
// text does not use is removed, so the two never appear together.
func (params *Params) SetText(textField, entitiesField string, text richtext.Text) *Params {
	params.SetString(textField, text.String())
	params.Delete("parse_mode")
	params.Delete(entitiesField)
	if mode := text.ParseMode(); mode != "" {
		params.SetString("parse_mode", string(mode))
	} else if entities := text.Entities(); len(entities) > 0 {
		params.Set(entitiesField, entities)
	}
	return params
}

// Delete removes a parameter.
func (params *Params) Delete(name string) *Params {
	if _, exists := params.values[name]; !exists {
		return params
	}
	delete(params.values, name)
	for index, existing := range params.names {
		if existing == name {
			params.names = append(params.names[:index], params.names[index+1:]...)
			break
		}
	}
	return params
}

// Has reports whether name is set.
func (params *Params) Has(name string) bool {
	_, ok := params.values[name]
	return ok
}

// Err returns the first error recorded by a Set call.
func (params *Params) Err() error { return params.err }

func (params *Params) hasFiles() bool {
	for _, value := range params.values {
		if value.file != nil {
			return true
		}
	}
	return false
}

// Payload builds the call of method. The result is a JSON body unless a
// parameter uploads a file, in which case every parameter becomes a
// form field: strings as their text, other values as their JSON.
func (params *Params) Payload(method string) (*Payload, error) {
	if params.err != nil {
		var serializationError *SerializationError
		if errors.As(params.err, &serializationError) && serializationError.Method == "" {
			serializationError.Method = method
		}
		return nil, params.err
	}
	if !params.hasFiles() {
		data, err := params.marshalObject()
		if err != nil {
			return nil, &SerializationError{Side: SideRequest, Method: method, Err: err}
		}
		return &Payload{methodName: method, httpMethod: http.MethodPost, body: JSONBody{Data: data}}, nil
	}

	form := NewForm()
	for _, name := range params.names {
		value := params.values[name]
		if value.file != nil {
			form.Set(name, FileValue{Source: value.file})
			continue
		}
		form.Set(name, TextValue(formText(value.raw)))
	}
	return NewFormPayload(method, form), nil
}

// marshalObject renders the parameters as a JSON object in insertion
// order. It fails if a parameter is an upload.
func (params *Params) marshalObject() (json.RawMessage, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, name := range params.names {
		value := params.values[name]
		if value.file != nil {
			return nil, fmt.Errorf("parameter %q is an upload and cannot be inlined", name)
		}
		if index > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value.raw)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// formText returns the form representation of an encoded value: the
// string itself for JSON strings, the JSON text otherwise.
func formText(raw json.RawMessage) string {
	if len(raw) > 0 && raw[0] == '"' {
		var text string
		if json.Unmarshal(raw, &text) == nil {
			return text
		}
	}
	return string(raw)
}
