// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package botapi

// FormValue is the value of one multipart field: [TextValue] or
// [FileValue].
type FormValue interface {
	formValue()
}

// TextValue is a plain text field.
type TextValue string

// FileValue is a file field. Name and MimeType default to those of
// Source when empty.
type FileValue struct {
	Name     string
	MimeType string
	Source   *FileReader
}

func (TextValue) formValue() {}
func (FileValue) formValue() {}

// Form is an ordered set of named multipart fields. Field names are
// unique: setting an existing name replaces its value and keeps its
// original position.
type Form struct {
	names  []string
	values map[string]FormValue
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{values: make(map[string]FormValue)}
}

// Set stores value under name. A nil value removes the field.
func (form *Form) Set(name string, value FormValue) {
	if value == nil {
		form.Delete(name)
		return
	}
	if form.values == nil {
		form.values = make(map[string]FormValue)
	}
	if _, exists := form.values[name]; !exists {
		form.names = append(form.names, name)
	}
	form.values[name] = value
}

// SetText stores a text field.
func (form *Form) SetText(name, value string) {
	form.Set(name, TextValue(value))
}

// SetFile stores a file field backed by source.
func (form *Form) SetFile(name string, source *FileReader) {
	form.Set(name, FileValue{Source: source})
}

// Get returns the value stored under name.
func (form *Form) Get(name string) (FormValue, bool) {
	value, ok := form.values[name]
	return value, ok
}

// Delete removes the field stored under name, if any.
func (form *Form) Delete(name string) {
	if _, exists := form.values[name]; !exists {
		return
	}
	delete(form.values, name)
	for index, existing := range form.names {
		if existing == name {
			form.names = append(form.names[:index], form.names[index+1:]...)
			break
		}
	}
}

// Len returns the number of fields.
func (form *Form) Len() int { return len(form.names) }

// Names returns the field names in insertion order.
func (form *Form) Names() []string {
	return append([]string(nil), form.names...)
}

// FileFields returns the names of the file fields in insertion order.
func (form *Form) FileFields() []string {
	var names []string
	for _, name := range form.names {
		if _, ok := form.values[name].(FileValue); ok {
			names = append(names, name)
		}
	}
	return names
}
