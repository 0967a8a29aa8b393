// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// =============================================================================
// DOM POST-PROCESSING
// =============================================================================

// imageStyle width-constrains inbound images so an oversized picture
// cannot blow up the message view.
const imageStyle = "max-width: 100%; max-height: 400px"

// RewriteDOM parses an HTML fragment and rewrites it for rendering:
// every <img> is width-constrained and every <a> opens in a new
// context. The input must already be sanitized.
func RewriteDOM(fragment string) (string, error) {
	body, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	walkNodes(body, func(n *html.Node) {
		switch n.Data {
		case "img":
			setAttr(n, "style", imageStyle)
		case "a":
			setAttr(n, "target", "_blank")
			setAttr(n, "rel", "noopener noreferrer")
		}
	})

	return renderChildren(body)
}

// LastImageSource returns the whitespace-trimmed src of the last <img>
// element in the fragment, or false if the fragment has no images.
// Used to derive a channel's image from its sanitized description.
func LastImageSource(fragment string) (string, bool) {
	body, err := parseFragment(fragment)
	if err != nil {
		return "", false
	}

	var src string
	var found bool
	walkNodes(body, func(n *html.Node) {
		if n.Data == "img" {
			if v, ok := getAttr(n, "src"); ok {
				src = strings.TrimSpace(v)
				found = true
			}
		}
	})

	return src, found
}

// =============================================================================
// RENDER NODE TREE
// =============================================================================

// NodeKind classifies a render node.
type NodeKind int

const (
	// NodeText is a run of plain text.
	NodeText NodeKind = iota
	// NodeImage is an inline image, rendered lightbox-capable.
	NodeImage
	// NodeLink is a hyperlink, rendered as an async link preview with
	// the plain link as placeholder/fallback.
	NodeLink
)

// Node is one element of the flattened renderable tree the inbound
// pipeline produces for the view layer.
type Node struct {
	Kind NodeKind

	// Text holds the content for NodeText.
	Text string

	// Src holds the image source for NodeImage.
	Src string

	// Href and Label describe a NodeLink.
	Href  string
	Label string
}

// Nodes flattens a rendered HTML fragment into text, image and link
// nodes. Markup other than <img> and <a> contributes only its text
// content; the view layer renders the full HTML separately and uses
// this list to mount the interactive components.
func Nodes(fragment string) ([]Node, error) {
	body, err := parseFragment(fragment)
	if err != nil {
		return nil, err
	}

	var nodes []Node
	var text strings.Builder

	flush := func() {
		if t := text.String(); strings.TrimSpace(t) != "" {
			nodes = append(nodes, Node{Kind: NodeText, Text: t})
		}
		text.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			text.WriteString(n.Data)
			return
		case n.Type == html.ElementNode && n.Data == "img":
			flush()
			src, _ := getAttr(n, "src")
			nodes = append(nodes, Node{Kind: NodeImage, Src: strings.TrimSpace(src)})
			return
		case n.Type == html.ElementNode && n.Data == "a":
			flush()
			href, _ := getAttr(n, "href")
			nodes = append(nodes, Node{
				Kind:  NodeLink,
				Href:  href,
				Label: textContent(n),
			})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)
	flush()

	return nodes, nil
}

// =============================================================================
// HELPERS
// =============================================================================

// parseFragment parses an HTML fragment and returns its body node.
func parseFragment(fragment string) (*html.Node, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html fragment: %w", err)
	}

	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil && body == nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)

	if body == nil {
		return nil, fmt.Errorf("failed to parse html fragment: no body")
	}
	return body, nil
}

// renderChildren serializes the children of n back to HTML.
func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("failed to render html: %w", err)
		}
	}
	return buf.String(), nil
}

// walkNodes applies fn to every element node under root, depth-first.
func walkNodes(root *html.Node, fn func(*html.Node)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			fn(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

// getAttr returns the value of the named attribute.
func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// setAttr replaces or appends the named attribute.
func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// textContent collects the text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
