// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// TOCMarker may be placed in a document to choose where the table of contents goes.
const TOCMarker = "[TOC]"

var (
	firstHeading = regexp.MustCompile(`<h[1-6][ >]`)
	tocParagraph = regexp.MustCompile(`<p>\[TOC\]</p>\n?`)
)

type heading struct {
	level int
	id    string
	text  string
}

// renderer converts Markdown to HTML with a table of contents.
type renderer struct {
	md       goldmark.Markdown
	tocTitle string
}

func newRenderer(tocTitle string) *renderer {
	return &renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
		),
		tocTitle: tocTitle,
	}
}

// Render returns the page body.
func (r *renderer) Render(src []byte) ([]byte, error) {
	doc := r.md.Parser().Parse(text.NewReader(src))

	var body bytes.Buffer
	if err := r.md.Renderer().Render(&body, src, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	return insertTOC(body.Bytes(), r.toc(headings(doc, src))), nil
}

func insertTOC(body, toc []byte) []byte {
	if loc := tocParagraph.FindIndex(body); loc != nil {
		return concat(body[:loc[0]], toc, body[loc[1]:])
	}

	if len(toc) == 0 {
		return body
	}

	loc := firstHeading.FindIndex(body)
	if loc == nil {
		return body
	}

	return concat(body[:loc[0]], toc, body[loc[0]:])
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func headings(doc ast.Node, src []byte) []heading {
	var hs []heading

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}

		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}

		hs = append(hs, heading{level: h.Level, id: id, text: nodeText(h, src)})

		return ast.WalkSkipChildren, nil
	})

	return hs
}

func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))

			if v.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		default:
			sb.WriteString(nodeText(c, src))
		}
	}

	return sb.String()
}

// toc renders nested lists for the headings. Skipped levels are collapsed.
func (r *renderer) toc(hs []heading) []byte {
	if len(hs) == 0 {
		return nil
	}

	base := hs[0].level
	for _, h := range hs {
		base = min(base, h.level)
	}

	var b bytes.Buffer

	b.WriteString(`<nav class="toc">`)
	fmt.Fprintf(&b, `<span class="toctitle">%s</span>`, html.EscapeString(r.tocTitle))

	depth := 0

	for _, h := range hs {
		level := min(h.level-base+1, depth+1)

		if level > depth {
			b.WriteString("<ul>")
			depth++
		} else {
			b.WriteString("</li>")

			for depth > level {
				b.WriteString("</ul></li>")
				depth--
			}
		}

		fmt.Fprintf(&b, `<li><a href="#%s">%s</a>`, html.EscapeString(h.id), html.EscapeString(h.text))
	}

	for depth > 0 {
		b.WriteString("</li></ul>")
		depth--
	}

	b.WriteString("</nav>\n")

	return b.Bytes()
}
