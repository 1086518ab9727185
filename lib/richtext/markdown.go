// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package richtext

import (
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return markdownParserInstance
}

// FromMarkdown converts CommonMark (with GitHub extensions) into plain
// text annotated with explicit entities:
//
//   - *emphasis* becomes italic, **strong** and headings become bold
//   - `code` becomes code, fenced and indented blocks become pre, with
//     the fence language normalized by [CanonicalLanguage]
//   - [links](url) become text_link, autolinks become url or email
//   - ~~strikethrough~~ and > quotes keep their meaning
//
// Blocks are separated by a blank line, list items by a single newline
// in tight lists. Line breaks inside a paragraph are kept. The result
// never carries a parse mode, so no escaping is needed.
func FromMarkdown(source string) (Text, error) {
	if source == "" {
		return Plain(""), nil
	}
	input := []byte(source)
	document := getMarkdownParser().Parser().Parse(text.NewReader(input))

	converter := &markdownConverter{source: input}
	if err := ast.Walk(document, converter.walk); err != nil {
		return Text{}, fmt.Errorf("richtext: converting markdown: %w", err)
	}
	return converter.text(), nil
}

// pendingEntity is an entity whose start is known and whose length is
// filled in when the walk leaves the node that opened it.
type pendingEntity struct {
	start  int
	length int
	build  func(Position) Entity
}

type openEntity struct {
	node  ast.Node
	index int
}

type listState struct {
	ordered bool
	next    int
}

type markdownConverter struct {
	source []byte
	output strings.Builder

	// units is the UTF-16 length of output.
	units int

	// separator is written before the next content; blockMark is the
	// value of units when the last separator or list marker was
	// written, so nested blocks do not separate twice.
	separator string
	blockMark int

	entities []pendingEntity
	open     []openEntity
	lists    []listState
}

func (converter *markdownConverter) text() Text {
	builder := NewText(converter.output.String())
	for _, pending := range converter.entities {
		if pending.length == 0 {
			continue
		}
		builder.AddEntity(pending.build(Position{
			Offset: uint32(pending.start),
			Length: uint32(pending.length),
		}))
	}
	return builder.Build()
}

func (converter *markdownConverter) flush() {
	if converter.separator == "" {
		return
	}
	separator := converter.separator
	converter.separator = ""
	converter.output.WriteString(separator)
	converter.units += UTF16Len(separator)
	converter.blockMark = converter.units
}

func (converter *markdownConverter) write(value string) {
	if value == "" {
		return
	}
	converter.flush()
	converter.output.WriteString(value)
	converter.units += UTF16Len(value)
}

// startBlock schedules the separator that precedes a block, unless
// nothing has been written since the previous one.
func (converter *markdownConverter) startBlock(node ast.Node) {
	if converter.units == converter.blockMark {
		return
	}
	converter.separator = "\n\n"
	for parent := node.Parent(); parent != nil; parent = parent.Parent() {
		if list, ok := parent.(*ast.List); ok && list.IsTight {
			converter.separator = "\n"
			break
		}
	}
}

func (converter *markdownConverter) openEntity(node ast.Node, build func(Position) Entity) {
	converter.flush()
	converter.entities = append(converter.entities, pendingEntity{start: converter.units, build: build})
	converter.open = append(converter.open, openEntity{node: node, index: len(converter.entities) - 1})
}

func (converter *markdownConverter) closeEntity(node ast.Node) {
	last := len(converter.open) - 1
	if last < 0 || converter.open[last].node != node {
		return
	}
	pending := &converter.entities[converter.open[last].index]
	pending.length = converter.units - pending.start
	converter.open = converter.open[:last]
}

func styled(kind Kind) func(Position) Entity {
	return func(position Position) Entity {
		return Styled{Type: kind, Pos: position}
	}
}

func (converter *markdownConverter) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindDocument:

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			converter.startBlock(node)
		}

	case ast.KindHeading:
		if entering {
			converter.startBlock(node)
			converter.openEntity(node, styled(KindBold))
		} else {
			converter.closeEntity(node)
		}

	case ast.KindBlockquote:
		if entering {
			converter.startBlock(node)
			converter.openEntity(node, styled(KindBlockquote))
		} else {
			converter.closeEntity(node)
		}

	case ast.KindFencedCodeBlock:
		if entering {
			block := node.(*ast.FencedCodeBlock)
			language := CanonicalLanguage(string(block.Language(converter.source)))
			converter.writeCodeBlock(node, language)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindCodeBlock:
		if entering {
			converter.writeCodeBlock(node, "")
			return ast.WalkSkipChildren, nil
		}

	case ast.KindHTMLBlock:
		if entering {
			converter.startBlock(node)
			converter.write(strings.TrimRight(converter.lines(node), "\n"))
			return ast.WalkSkipChildren, nil
		}

	case ast.KindThematicBreak:
		if entering {
			converter.startBlock(node)
			converter.write("* * *")
		}

	case ast.KindList:
		if entering {
			list := node.(*ast.List)
			converter.startBlock(node)
			converter.lists = append(converter.lists, listState{ordered: list.IsOrdered(), next: list.Start})
		} else {
			converter.lists = converter.lists[:len(converter.lists)-1]
		}

	case ast.KindListItem:
		if entering {
			converter.startBlock(node)
			converter.write(converter.listMarker())
			converter.blockMark = converter.units
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			converter.write(string(textNode.Segment.Value(converter.source)))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				converter.write("\n")
			}
		}

	case ast.KindString:
		if entering {
			converter.write(string(node.(*ast.String).Value))
		}

	case ast.KindEmphasis:
		if entering {
			kind := KindItalic
			if node.(*ast.Emphasis).Level >= 2 {
				kind = KindBold
			}
			converter.openEntity(node, styled(kind))
		} else {
			converter.closeEntity(node)
		}

	case ast.KindCodeSpan:
		if entering {
			converter.openEntity(node, styled(KindCode))
			converter.write(converter.inlineText(node))
			converter.closeEntity(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		if entering {
			destination := string(node.(*ast.Link).Destination)
			if destination != "" {
				converter.openEntity(node, func(position Position) Entity {
					return TextLink{Pos: position, URL: destination}
				})
			}
		} else {
			converter.closeEntity(node)
		}

	case ast.KindAutoLink:
		if entering {
			link := node.(*ast.AutoLink)
			kind := KindURL
			if link.AutoLinkType == ast.AutoLinkEmail {
				kind = KindEmail
			}
			converter.openEntity(node, styled(kind))
			converter.write(string(link.Label(converter.source)))
			converter.closeEntity(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			rawHTML := node.(*ast.RawHTML)
			for index := 0; index < rawHTML.Segments.Len(); index++ {
				segment := rawHTML.Segments.At(index)
				converter.write(string(segment.Value(converter.source)))
			}
			return ast.WalkSkipChildren, nil
		}

	case extast.KindStrikethrough:
		if entering {
			converter.openEntity(node, styled(KindStrikethrough))
		} else {
			converter.closeEntity(node)
		}

	case extast.KindTable:
		if entering {
			converter.startBlock(node)
		}

	case extast.KindTableHeader, extast.KindTableRow:
		if entering && node.PreviousSibling() != nil {
			converter.write("\n")
		}

	case extast.KindTableCell:
		if entering && node.PreviousSibling() != nil {
			converter.write(" | ")
		}

	case extast.KindTaskCheckBox:
		if entering {
			if node.(*extast.TaskCheckBox).IsChecked {
				converter.write("[x] ")
			} else {
				converter.write("[ ] ")
			}
		}
	}

	return ast.WalkContinue, nil
}

func (converter *markdownConverter) writeCodeBlock(node ast.Node, language string) {
	converter.startBlock(node)
	converter.openEntity(node, func(position Position) Entity {
		return Pre{Pos: position, Language: language}
	})
	converter.write(strings.TrimSuffix(converter.lines(node), "\n"))
	converter.closeEntity(node)
}

func (converter *markdownConverter) lines(node ast.Node) string {
	var content strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		content.Write(segment.Value(converter.source))
	}
	return content.String()
}

func (converter *markdownConverter) inlineText(node ast.Node) string {
	var content strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			content.Write(child.Segment.Value(converter.source))
		case *ast.String:
			content.Write(child.Value)
		}
	}
	return content.String()
}

func (converter *markdownConverter) listMarker() string {
	depth := len(converter.lists)
	if depth == 0 {
		return ""
	}
	indent := strings.Repeat("  ", depth-1)
	state := &converter.lists[depth-1]
	if !state.ordered {
		return indent + "• "
	}
	marker := fmt.Sprintf("%s%d. ", indent, state.next)
	state.next++
	return marker
}
