// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
//
// Two pipelines share the same primitives and run symmetric stages on
// the send and receive paths:
//
//   - Outbound (compose -> send): sanitize, linkify the first URL,
//     expand a leading @word command macro, render markdown, sanitize
//     again. Markdown output is re-sanitized because rendering can
//     reintroduce unsafe constructs from user-supplied link text or
//     raw HTML inside markdown.
//   - Inbound (receive -> render): sanitize, render markdown, rewrite
//     the DOM (width-constrain every <img>, open every <a> in a new
//     context), then flatten into a node list the view layer can turn
//     into lightbox images and link previews.
//
// Both pipelines are pure functions of their string input plus the
// injected sanitizer and markdown renderer capabilities. No network or
// store access happens here; link preview fetching belongs to the view
// components consuming the inbound node list.
//
// # Usage
//
//	pipe := textpipe.New()
//	html, err := pipe.Outbound("hello **world**")
//	html, nodes, err := pipe.Inbound(received)
package textpipe
