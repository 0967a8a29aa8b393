// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/jeranaias/mumble-tui/internal/settings"
)

const (
	fetchTimeout   = 10 * time.Second
	maxBodyBytes   = 512 * 1024
	requestsPerSec = 2
	requestBurst   = 4
)

// Result is the extracted metadata for one URL. URL always echoes the
// requested address, so callers can match a result to the message it
// was fetched for and drop anything stale.
type Result struct {
	// URL is the address the lookup was requested with.
	URL string

	// OK reports whether metadata was fetched. When false the caller
	// should render a plain placeholder instead of a preview card.
	OK bool

	// Title is the page title or OpenGraph title.
	Title string

	// Description is the page or OpenGraph description.
	Description string

	// ImageURL is the OpenGraph image, if any.
	ImageURL string
}

// Fetcher downloads and caches URL preview metadata.
type Fetcher struct {
	mu      sync.Mutex
	cache   map[string]Result
	client  *http.Client
	limiter *rate.Limiter
	policy  settings.LinkPreviewPolicy
	log     zerolog.Logger
}

// New creates a Fetcher honoring the given link preview policy.
func New(policy settings.LinkPreviewPolicy, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		cache:   make(map[string]Result),
		client:  &http.Client{Timeout: fetchTimeout},
		limiter: rate.NewLimiter(requestsPerSec, requestBurst),
		policy:  policy,
		log:     logger,
	}
}

// Lookup returns preview metadata for rawURL, fetching it on a cache
// miss. Failures are cached as placeholders so a dead link is not
// retried on every render.
func (f *Fetcher) Lookup(ctx context.Context, rawURL string) Result {
	f.mu.Lock()
	if cached, ok := f.cache[rawURL]; ok {
		f.mu.Unlock()
		return cached
	}
	policy := f.policy
	f.mu.Unlock()

	res := f.fetch(ctx, rawURL, policy)

	f.mu.Lock()
	f.cache[rawURL] = res
	f.mu.Unlock()
	return res
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string, policy settings.LinkPreviewPolicy) Result {
	res := Result{URL: rawURL}

	if !f.allowed(rawURL, policy) {
		return res
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return res
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return res
	}
	req.Header.Set("User-Agent", "mumble-tui link preview")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Debug().Str("url", rawURL).Err(err).Msg("Preview fetch failed")
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Msg("Preview fetch failed")
		return res
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		return res
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return res
	}

	title, desc, image := extractMetadata(body)
	if title == "" && desc == "" {
		return res
	}

	res.OK = true
	res.Title = title
	res.Description = desc
	res.ImageURL = image
	return res
}

func (f *Fetcher) allowed(rawURL string, policy settings.LinkPreviewPolicy) bool {
	if !policy.Enabled {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false
	}
	if policy.AllowAll {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, allowed := range policy.AllowedHosts {
		if host == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// =============================================================================
// METADATA EXTRACTION
// =============================================================================

func extractMetadata(body []byte) (title, description, image string) {
	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", "", ""
	}

	var ogTitle, ogDesc string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				prop := metaAttr(n, "property")
				name := metaAttr(n, "name")
				content := metaAttr(n, "content")
				switch {
				case prop == "og:title":
					ogTitle = content
				case prop == "og:description":
					ogDesc = content
				case prop == "og:image":
					image = content
				case name == "description" && description == "":
					description = content
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	// OpenGraph values win over plain document metadata.
	if ogTitle != "" {
		title = ogTitle
	}
	if ogDesc != "" {
		description = ogDesc
	}
	return title, description, image
}

func metaAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

// String renders a compact single-line summary, handy for logs.
func (r Result) String() string {
	if !r.OK {
		return fmt.Sprintf("preview(%s: unavailable)", r.URL)
	}
	return fmt.Sprintf("preview(%s: %s)", r.URL, r.Title)
}
