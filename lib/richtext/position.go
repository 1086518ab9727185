// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

var (
	// ErrBadOffset reports a position whose offset lies beyond the end
	// of the text, or a byte offset that does not fall on a character
	// boundary.
	ErrBadOffset = errors.New("richtext: offset out of range")

	// ErrBadLength reports a position whose end lies beyond the end of
	// the text, or whose end precedes its start.
	ErrBadLength = errors.New("richtext: length out of range")
)

// Position locates an entity in its text. Offset and Length are
// measured in UTF-16 code units.
type Position struct {
	Offset uint32 `json:"offset"`
	Length uint32 `json:"length"`
}

// End returns the offset just past the last code unit of the position.
func (position Position) End() uint32 {
	return position.Offset + position.Length
}

// UTF16Len returns the length of s in UTF-16 code units. Invalid UTF-8
// bytes count as one unit each, matching their replacement character.
func UTF16Len(s string) int {
	length := 0
	for _, r := range s {
		length += utf16RuneLen(r)
	}
	return length
}

func utf16RuneLen(r rune) int {
	if r >= 0x10000 && r <= utf8.MaxRune {
		return 2
	}
	return 1
}

// UTF16Offset converts a byte offset into s to a UTF-16 code unit
// offset. The byte offset must be in [0, len(s)] and fall on the start
// of a character.
func UTF16Offset(s string, byteOffset int) (uint32, error) {
	if byteOffset < 0 || byteOffset > len(s) {
		return 0, fmt.Errorf("%w: byte offset %d, text is %d bytes", ErrBadOffset, byteOffset, len(s))
	}
	if byteOffset < len(s) && !utf8.RuneStart(s[byteOffset]) {
		return 0, fmt.Errorf("%w: byte offset %d is inside a character", ErrBadOffset, byteOffset)
	}
	return uint32(UTF16Len(s[:byteOffset])), nil
}

// PositionFromRange returns the position spanning UTF-16 offsets
// [start, end).
func PositionFromRange(start, end uint32) (Position, error) {
	if end < start {
		return Position{}, fmt.Errorf("%w: end %d precedes start %d", ErrBadLength, end, start)
	}
	return Position{Offset: start, Length: end - start}, nil
}

// PositionFromBytes returns the position of the byte range
// s[start:end].
func PositionFromBytes(s string, start, end int) (Position, error) {
	if end < start {
		return Position{}, fmt.Errorf("%w: end %d precedes start %d", ErrBadLength, end, start)
	}
	offset, err := UTF16Offset(s, start)
	if err != nil {
		return Position{}, err
	}
	if end > len(s) {
		return Position{}, fmt.Errorf("%w: byte end %d, text is %d bytes", ErrBadLength, end, len(s))
	}
	if end < len(s) && !utf8.RuneStart(s[end]) {
		return Position{}, fmt.Errorf("%w: byte end %d is inside a character", ErrBadLength, end)
	}
	return Position{Offset: offset, Length: uint32(UTF16Len(s[start:end]))}, nil
}

// PositionFromRunes returns the position of the code point range
// [start, end) of s.
func PositionFromRunes(s string, start, end int) (Position, error) {
	if start < 0 {
		return Position{}, fmt.Errorf("%w: rune offset %d", ErrBadOffset, start)
	}
	if end < start {
		return Position{}, fmt.Errorf("%w: end %d precedes start %d", ErrBadLength, end, start)
	}

	var offset, length uint32
	index := 0
	for _, r := range s {
		if index >= end {
			break
		}
		units := uint32(utf16RuneLen(r))
		if index < start {
			offset += units
		} else {
			length += units
		}
		index++
	}
	if start > index {
		return Position{}, fmt.Errorf("%w: rune offset %d, text has %d runes", ErrBadOffset, start, index)
	}
	if end > index {
		return Position{}, fmt.Errorf("%w: rune end %d, text has %d runes", ErrBadLength, end, index)
	}
	return Position{Offset: offset, Length: length}, nil
}

// Slice returns the part of s addressed by position. A position that
// splits a surrogate pair yields the replacement character for the
// broken half.
func Slice(s string, position Position) (string, error) {
	units := utf16.Encode([]rune(s))
	if err := checkBounds(position, len(units)); err != nil {
		return "", err
	}
	return string(utf16.Decode(units[position.Offset:position.End()])), nil
}

func checkBounds(position Position, textLength int) error {
	if int64(position.Offset) > int64(textLength) {
		return fmt.Errorf("%w: offset %d, text is %d units", ErrBadOffset, position.Offset, textLength)
	}
	if int64(position.Offset)+int64(position.Length) > int64(textLength) {
		return fmt.Errorf("%w: offset %d length %d, text is %d units",
			ErrBadLength, position.Offset, position.Length, textLength)
	}
	return nil
}
