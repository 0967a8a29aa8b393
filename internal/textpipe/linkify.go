// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"regexp"
	"strings"
)

// =============================================================================
// LINK DETECTION
// =============================================================================

// urlPattern matches a scheme-prefixed or bare (www.) URL. Anything up
// to whitespace, a quote or an angle bracket counts as part of the URL.
var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"]+`)

// LinkifyFirst wraps the first URL found in s in an anchor that opens
// in a new context. Only the first match is transformed; later URLs in
// the same message are left as plain text. This mirrors the behavior
// users already rely on and is kept deliberately.
//
// URLs that already sit inside a tag or inside an anchor's text are
// skipped so that running the pipeline over its own output changes
// nothing.
func LinkifyFirst(s string) string {
	for _, loc := range urlPattern.FindAllStringIndex(s, -1) {
		if insideTag(s, loc[0]) || insideAnchor(s, loc[0]) {
			continue
		}

		url := s[loc[0]:loc[1]]
		href := url
		if !strings.HasPrefix(strings.ToLower(href), "http") {
			// Bare www. URLs need a scheme to be a valid href.
			href = "https://" + href
		}

		anchor := `<a href="` + href + `" target="_blank">` + url + `</a>`
		return s[:loc[0]] + anchor + s[loc[1]:]
	}
	return s
}

// insideTag reports whether pos falls between a '<' and its closing
// '>' (i.e. inside a tag's attribute list).
func insideTag(s string, pos int) bool {
	open := strings.LastIndexByte(s[:pos], '<')
	if open < 0 {
		return false
	}
	return strings.IndexByte(s[open:pos], '>') < 0
}

// insideAnchor reports whether pos falls inside the text content of an
// unclosed <a> element.
func insideAnchor(s string, pos int) bool {
	before := strings.ToLower(s[:pos])
	open := strings.LastIndex(before, "<a ")
	if open < 0 {
		open = strings.LastIndex(before, "<a>")
	}
	if open < 0 {
		return false
	}
	return strings.LastIndex(before, "</a>") < open
}
