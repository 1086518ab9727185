// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/tgbot/lib/schema"
)

// Kind is the wire name of an entity type.
type Kind string

const (
	KindBlockquote           Kind = "blockquote"
	KindBold                 Kind = "bold"
	KindBotCommand           Kind = "bot_command"
	KindCashtag              Kind = "cashtag"
	KindCode                 Kind = "code"
	KindCustomEmoji          Kind = "custom_emoji"
	KindEmail                Kind = "email"
	KindExpandableBlockquote Kind = "expandable_blockquote"
	KindHashtag              Kind = "hashtag"
	KindItalic               Kind = "italic"
	KindMention              Kind = "mention"
	KindPhoneNumber          Kind = "phone_number"
	KindPre                  Kind = "pre"
	KindSpoiler              Kind = "spoiler"
	KindStrikethrough        Kind = "strikethrough"
	KindTextLink             Kind = "text_link"
	KindTextMention          Kind = "text_mention"
	KindUnderline            Kind = "underline"
	KindURL                  Kind = "url"
)

// styledKinds are the kinds that carry nothing but a position.
var styledKinds = map[Kind]bool{
	KindBlockquote:           true,
	KindBold:                 true,
	KindBotCommand:           true,
	KindCashtag:              true,
	KindCode:                 true,
	KindEmail:                true,
	KindExpandableBlockquote: true,
	KindHashtag:              true,
	KindItalic:               true,
	KindMention:              true,
	KindPhoneNumber:          true,
	KindSpoiler:              true,
	KindStrikethrough:        true,
	KindUnderline:            true,
	KindURL:                  true,
}

// IsStyled reports whether kind carries only a position and is
// therefore represented by [Styled].
func (kind Kind) IsStyled() bool {
	return styledKinds[kind]
}

// Entity is one annotation of a [Text]. The implementations are
// [Styled], [Pre], [TextLink], [TextMention] and [CustomEmoji]; the
// set is closed.
type Entity interface {
	Kind() Kind
	Position() Position
	entity()
}

// Styled is an entity of any kind that carries only a position: bold,
// italic, code, mentions, hashtags, URLs and the like. Type must be a
// kind for which [Kind.IsStyled] is true.
type Styled struct {
	Type Kind
	Pos  Position
}

func (entity Styled) Kind() Kind         { return entity.Type }
func (entity Styled) Position() Position { return entity.Pos }
func (Styled) entity()                   {}

// Pre is a monowidth block, optionally tagged with the programming
// language of its content.
type Pre struct {
	Pos      Position
	Language string
}

func (Pre) Kind() Kind                { return KindPre }
func (entity Pre) Position() Position { return entity.Pos }
func (Pre) entity()                   {}

// TextLink is clickable text that opens URL.
type TextLink struct {
	Pos Position
	URL string
}

func (TextLink) Kind() Kind                { return KindTextLink }
func (entity TextLink) Position() Position { return entity.Pos }
func (TextLink) entity()                   {}

// TextMention mentions a user who has no username.
type TextMention struct {
	Pos  Position
	User *schema.User
}

func (TextMention) Kind() Kind                { return KindTextMention }
func (entity TextMention) Position() Position { return entity.Pos }
func (TextMention) entity()                   {}

// CustomEmoji renders the covered text as a custom emoji sticker.
type CustomEmoji struct {
	Pos           Position
	CustomEmojiID string
}

func (CustomEmoji) Kind() Kind                { return KindCustomEmoji }
func (entity CustomEmoji) Position() Position { return entity.Pos }
func (CustomEmoji) entity()                   {}

// EntityError reports an entity that cannot be encoded or decoded: an
// unknown kind, or a kind whose required field is missing.
type EntityError struct {
	Kind   Kind
	Reason string
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("richtext: invalid %q entity: %s", e.Kind, e.Reason)
}

// wireEntity is the MessageEntity object of the Bot API.
type wireEntity struct {
	Type          Kind         `json:"type"`
	Offset        uint32       `json:"offset"`
	Length        uint32       `json:"length"`
	URL           string       `json:"url,omitempty"`
	User          *schema.User `json:"user,omitempty"`
	Language      string       `json:"language,omitempty"`
	CustomEmojiID string       `json:"custom_emoji_id,omitempty"`
}

func toWire(entity Entity) (wireEntity, error) {
	position := entity.Position()
	wire := wireEntity{Type: entity.Kind(), Offset: position.Offset, Length: position.Length}
	switch entity := entity.(type) {
	case Styled:
		if !entity.Type.IsStyled() {
			return wireEntity{}, &EntityError{Kind: entity.Type, Reason: "kind cannot be represented as a styled entity"}
		}
	case Pre:
		wire.Language = entity.Language
	case TextLink:
		if entity.URL == "" {
			return wireEntity{}, &EntityError{Kind: KindTextLink, Reason: "url is required"}
		}
		wire.URL = entity.URL
	case TextMention:
		if entity.User == nil {
			return wireEntity{}, &EntityError{Kind: KindTextMention, Reason: "user is required"}
		}
		wire.User = entity.User
	case CustomEmoji:
		if entity.CustomEmojiID == "" {
			return wireEntity{}, &EntityError{Kind: KindCustomEmoji, Reason: "custom_emoji_id is required"}
		}
		wire.CustomEmojiID = entity.CustomEmojiID
	}
	return wire, nil
}

func fromWire(wire wireEntity) (Entity, error) {
	position := Position{Offset: wire.Offset, Length: wire.Length}
	switch {
	case wire.Type.IsStyled():
		return Styled{Type: wire.Type, Pos: position}, nil
	case wire.Type == KindPre:
		return Pre{Pos: position, Language: wire.Language}, nil
	case wire.Type == KindTextLink:
		if wire.URL == "" {
			return nil, &EntityError{Kind: wire.Type, Reason: "url is required"}
		}
		return TextLink{Pos: position, URL: wire.URL}, nil
	case wire.Type == KindTextMention:
		if wire.User == nil {
			return nil, &EntityError{Kind: wire.Type, Reason: "user is required"}
		}
		return TextMention{Pos: position, User: wire.User}, nil
	case wire.Type == KindCustomEmoji:
		if wire.CustomEmojiID == "" {
			return nil, &EntityError{Kind: wire.Type, Reason: "custom_emoji_id is required"}
		}
		return CustomEmoji{Pos: position, CustomEmojiID: wire.CustomEmojiID}, nil
	default:
		return nil, &EntityError{Kind: wire.Type, Reason: "unknown entity type"}
	}
}

// MarshalEntity encodes a single entity as a MessageEntity object.
func MarshalEntity(entity Entity) ([]byte, error) {
	wire, err := toWire(entity)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

// UnmarshalEntity decodes a single MessageEntity object.
func UnmarshalEntity(data []byte) (Entity, error) {
	var wire wireEntity
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("richtext: decoding entity: %w", err)
	}
	return fromWire(wire)
}

// Entities is an entity list with the Bot API's JSON array encoding.
// The zero value encodes as an empty array.
type Entities []Entity

// MarshalJSON encodes the list as an array of MessageEntity objects.
func (entities Entities) MarshalJSON() ([]byte, error) {
	wire := make([]wireEntity, 0, len(entities))
	for index, entity := range entities {
		if entity == nil {
			return nil, fmt.Errorf("richtext: entity %d is nil", index)
		}
		encoded, err := toWire(entity)
		if err != nil {
			return nil, fmt.Errorf("richtext: entity %d: %w", index, err)
		}
		wire = append(wire, encoded)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes an array of MessageEntity objects. A JSON null
// leaves the list nil.
func (entities *Entities) UnmarshalJSON(data []byte) error {
	var wire []wireEntity
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("richtext: decoding entities: %w", err)
	}
	if wire == nil {
		*entities = nil
		return nil
	}
	decoded := make(Entities, 0, len(wire))
	for index, raw := range wire {
		entity, err := fromWire(raw)
		if err != nil {
			return fmt.Errorf("richtext: entity %d: %w", index, err)
		}
		decoded = append(decoded, entity)
	}
	*entities = decoded
	return nil
}
