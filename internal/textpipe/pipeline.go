// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"math/rand/v2"
)

// =============================================================================
// PIPELINE
// =============================================================================

// Pipeline bundles the sanitizer and markdown renderer capabilities
// with the stateless transformation stages. A single Pipeline is safe
// for concurrent use as long as its capabilities are.
type Pipeline struct {
	sanitizer Sanitizer
	renderer  Renderer
	rng       func(n int) int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSanitizer overrides the default sanitizer.
func WithSanitizer(s Sanitizer) Option {
	return func(p *Pipeline) { p.sanitizer = s }
}

// WithRenderer overrides the default markdown renderer.
func WithRenderer(r Renderer) Option {
	return func(p *Pipeline) { p.renderer = r }
}

// WithRand overrides the uniform generator used by command macros.
// Tests use this to pin macro outcomes.
func WithRand(rng func(n int) int) Option {
	return func(p *Pipeline) { p.rng = rng }
}

// New creates a Pipeline with the default capabilities.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		sanitizer: NewSanitizer(),
		renderer:  NewMarkdownRenderer(),
		rng:       rand.IntN,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Sanitize exposes the pipeline's sanitizer for callers that need the
// bare capability (channel descriptions, welcome text).
func (p *Pipeline) Sanitize(s string) string {
	return p.sanitizer.Sanitize(s)
}

// =============================================================================
// OUTBOUND (compose -> send)
// =============================================================================

// Outbound runs the send-path transformation. Stages run strictly in
// order: sanitize, linkify the first URL, expand a leading command
// macro, render markdown, sanitize the rendered output.
func (p *Pipeline) Outbound(raw string) (string, error) {
	s := p.sanitizer.Sanitize(raw)
	s = LinkifyFirst(s)
	s = expandMacro(s, p.rng)

	rendered, err := p.renderer.Render(s)
	if err != nil {
		return "", err
	}

	// Markdown can reintroduce unsafe constructs from user-supplied
	// link text or raw HTML, so the rendered output is re-sanitized.
	return p.sanitizer.Sanitize(rendered), nil
}

// =============================================================================
// INBOUND (receive -> render)
// =============================================================================

// Inbound runs the receive-path transformation: sanitize, render
// markdown, rewrite the DOM for display, and flatten into render
// nodes. It returns both the rewritten HTML and the node list.
func (p *Pipeline) Inbound(raw string) (string, []Node, error) {
	s := p.sanitizer.Sanitize(raw)

	rendered, err := p.renderer.Render(s)
	if err != nil {
		return "", nil, err
	}
	rendered = p.sanitizer.Sanitize(rendered)

	rewritten, err := RewriteDOM(rendered)
	if err != nil {
		return "", nil, err
	}

	nodes, err := Nodes(rewritten)
	if err != nil {
		return "", nil, err
	}

	return rewritten, nodes, nil
}
