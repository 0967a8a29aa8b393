// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"github.com/microcosm-cc/bluemonday"
)

// =============================================================================
// SANITIZER CAPABILITY
// =============================================================================

// Sanitizer neutralizes HTML constructs capable of script execution or
// style injection. Allow-list based: everything not explicitly allowed
// is stripped.
type Sanitizer interface {
	Sanitize(s string) string
}

// HTMLSanitizer is the default Sanitizer, backed by a bluemonday
// user-generated-content policy extended with the attributes the
// pipelines themselves emit (link targets, image sizing).
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates the default sanitizer used on both the send and
// receive paths, and for user/channel comments and welcome text.
func NewSanitizer() *HTMLSanitizer {
	p := bluemonday.UGCPolicy()

	// The pipelines emit these themselves: linkified URLs open in a
	// new context, inbound images are width-constrained via style.
	p.AllowAttrs("target", "rel").OnElements("a")
	p.AllowAttrs("style", "alt", "title").OnElements("img")
	p.AllowStyles("max-width", "max-height").OnElements("img")

	// Profile pictures and pasted images arrive as data URIs.
	p.AllowDataURIImages()

	return &HTMLSanitizer{policy: p}
}

// Sanitize strips everything outside the allow-list.
func (s *HTMLSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}

// SanitizeFunc adapts a plain function to the Sanitizer interface.
// Used in tests to observe or stub the sanitize stage.
type SanitizeFunc func(string) string

// Sanitize calls the wrapped function.
func (f SanitizeFunc) Sanitize(s string) string { return f(s) }
