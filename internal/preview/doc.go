// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview fetches inline previews for URLs found in chat
// messages.
//
// A Fetcher downloads the target page, extracts title, description and
// image metadata, and caches the result in memory. Fetches are rate
// limited so a burst of link-heavy messages does not hammer remote
// hosts. Every result carries the URL it was requested for, so callers
// can discard responses that arrive after the user has moved on.
//
// # Key Types
//
//   - Fetcher: rate-limited, caching metadata fetcher
//   - Result: extracted metadata tied to the requested URL
//
// # Usage
//
//	f := preview.New(policy, logger)
//	res := f.Lookup(ctx, "https://example.com/article")
//	if res.OK {
//	    render(res.Title, res.Description)
//	}
package preview
