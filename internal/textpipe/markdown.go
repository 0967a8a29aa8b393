// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// =============================================================================
// MARKDOWN RENDERER CAPABILITY
// =============================================================================

// Renderer renders markdown source to HTML.
type Renderer interface {
	Render(src string) (string, error)
}

// MarkdownRenderer is the default Renderer, backed by goldmark with
// GitHub-flavored extensions.
//
// Raw HTML is passed through unescaped because earlier pipeline stages
// (sanitize, linkify) already emit HTML of their own; the final
// sanitize pass is what makes the combined output safe, never this
// renderer.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer creates the default markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{
		md: goldmark.New(
			// No autolink extension here: URL detection is its own
			// pipeline stage with first-match-only semantics.
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Table,
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithUnsafe(),
			),
		),
	}
}

// Render converts markdown source to HTML.
func (r *MarkdownRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderFunc adapts a plain function to the Renderer interface.
type RenderFunc func(string) (string, error)

// Render calls the wrapped function.
func (f RenderFunc) Render(src string) (string, error) { return f(src) }
