// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"regexp"
	"strings"
	"testing"
)

// fixedRand returns a generator that always yields v.
func fixedRand(v int) func(n int) int {
	return func(n int) int { return v }
}

// =============================================================================
// LINKIFY TESTS
// =============================================================================

func TestLinkifyFirst(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "scheme-prefixed url",
			input: "see https://example.com/x for details",
			want:  `see <a href="https://example.com/x" target="_blank">https://example.com/x</a> for details`,
		},
		{
			name:  "bare www url gets a scheme",
			input: "visit www.example.com today",
			want:  `visit <a href="https://www.example.com" target="_blank">www.example.com</a> today`,
		},
		{
			name:  "only the first url is transformed",
			input: "https://a.example and https://b.example",
			want:  `<a href="https://a.example" target="_blank">https://a.example</a> and https://b.example`,
		},
		{
			name:  "no url",
			input: "nothing to see here",
			want:  "nothing to see here",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LinkifyFirst(tc.input); got != tc.want {
				t.Errorf("LinkifyFirst(%q)\n got  %q\n want %q", tc.input, got, tc.want)
			}
		})
	}
}

// =============================================================================
// MACRO TESTS
// =============================================================================

func TestExpandMacro_Dice(t *testing.T) {
	got := expandMacro("@dice", fixedRand(3))
	if got != "The dice rolled: \n # 4" {
		t.Errorf("expandMacro(@dice) = %q", got)
	}
}

func TestExpandMacro_DiceRange(t *testing.T) {
	// Every roll must land in [1,6] with the real generator.
	pipe := New()
	pattern := regexp.MustCompile(`The dice rolled: \n # [1-6]`)
	for i := 0; i < 50; i++ {
		got := expandMacro("@dice", pipe.rng)
		if !pattern.MatchString(got) {
			t.Fatalf("roll %d out of range: %q", i, got)
		}
	}
}

func TestExpandMacro_Coin(t *testing.T) {
	heads := expandMacro("@coin", fixedRand(0))
	tails := expandMacro("@coin", fixedRand(1))

	if !strings.Contains(heads, "Heads") {
		t.Errorf("coin(0) = %q, want Heads", heads)
	}
	if !strings.Contains(tails, "Tails") {
		t.Errorf("coin(1) = %q, want Tails", tails)
	}
}

func TestExpandMacro_KeepsTrailingText(t *testing.T) {
	got := expandMacro("@dice for initiative", fixedRand(0))
	if !strings.HasSuffix(got, " for initiative") {
		t.Errorf("trailing text lost: %q", got)
	}
	if strings.Contains(got, "@dice") {
		t.Errorf("leading token not replaced: %q", got)
	}
}

func TestExpandMacro_OnlyAtStart(t *testing.T) {
	// A macro token that does not start the message is plain text.
	in := "check @dice now"
	if got := expandMacro(in, fixedRand(0)); got != in {
		t.Errorf("expandMacro(%q) = %q, want unchanged", in, got)
	}
}

func TestExpandMacro_UnknownTokenUntouched(t *testing.T) {
	in := "@frobnicate the server"
	if got := expandMacro(in, fixedRand(0)); got != in {
		t.Errorf("expandMacro(%q) = %q, want unchanged", in, got)
	}
}

// =============================================================================
// OUTBOUND PIPELINE TESTS
// =============================================================================

func TestOutbound_MacroStageSkippedMidMessage(t *testing.T) {
	// The generator must never fire for a mid-message token, and the
	// token must survive all stages verbatim.
	pipe := New(WithRand(func(n int) int {
		t.Fatal("macro generator invoked for non-leading token")
		return 0
	}))

	out, err := pipe.Outbound("check @dice now")
	if err != nil {
		t.Fatalf("Outbound() error: %v", err)
	}
	if !strings.Contains(out, "@dice") {
		t.Errorf("output lost the literal token: %q", out)
	}
	if strings.Contains(out, "dice rolled") {
		t.Errorf("macro text substituted: %q", out)
	}
}

func TestOutbound_DiceMessage(t *testing.T) {
	pipe := New(WithRand(fixedRand(5)))

	out, err := pipe.Outbound("@dice")
	if err != nil {
		t.Fatalf("Outbound() error: %v", err)
	}
	if !strings.Contains(out, "The dice rolled:") {
		t.Errorf("missing dice text: %q", out)
	}
	if !strings.Contains(out, "6") {
		t.Errorf("missing roll result: %q", out)
	}
}

func TestOutbound_RendersMarkdown(t *testing.T) {
	pipe := New()

	out, err := pipe.Outbound("hello **world**")
	if err != nil {
		t.Fatalf("Outbound() error: %v", err)
	}
	if !strings.Contains(out, "<strong>world</strong>") {
		t.Errorf("markdown not rendered: %q", out)
	}
}

func TestOutbound_NeutralizesScript(t *testing.T) {
	pipe := New()

	tests := []string{
		`<script>alert(1)</script>hi`,
		`<img src=x onerror=alert(1)>hi`,
		`[click](javascript:alert(1))`,
		`<style>body{display:none}</style>hi`,
	}

	for _, in := range tests {
		out, err := pipe.Outbound(in)
		if err != nil {
			t.Fatalf("Outbound(%q) error: %v", in, err)
		}
		lower := strings.ToLower(out)
		if strings.Contains(lower, "<script") || strings.Contains(lower, "onerror") ||
			strings.Contains(lower, "javascript:") || strings.Contains(lower, "<style") {
			t.Errorf("unsafe construct survived: %q -> %q", in, out)
		}
	}
}

func TestOutbound_Idempotent(t *testing.T) {
	// Applying the full pipeline to an already-clean rendered result
	// must produce no further changes.
	pipe := New()

	inputs := []string{
		"plain text",
		"hello **world**",
		"see https://example.com now",
	}

	for _, in := range inputs {
		once, err := pipe.Outbound(in)
		if err != nil {
			t.Fatalf("Outbound(%q) error: %v", in, err)
		}
		twice, err := pipe.Outbound(once)
		if err != nil {
			t.Fatalf("Outbound(once) error: %v", err)
		}
		if strings.TrimSpace(once) != strings.TrimSpace(twice) {
			t.Errorf("pipeline not idempotent for %q:\n once  %q\n twice %q", in, once, twice)
		}
	}
}

// =============================================================================
// INBOUND PIPELINE TESTS
// =============================================================================

func TestInbound_RewritesImagesAndLinks(t *testing.T) {
	pipe := New()

	htmlOut, _, err := pipe.Inbound(`<p><img src="https://example.com/a.png"> and <a href="https://example.com">site</a></p>`)
	if err != nil {
		t.Fatalf("Inbound() error: %v", err)
	}

	if !strings.Contains(htmlOut, "max-width") {
		t.Errorf("image not width-constrained: %q", htmlOut)
	}
	if !strings.Contains(htmlOut, `target="_blank"`) {
		t.Errorf("link does not open in new context: %q", htmlOut)
	}
	if !strings.Contains(htmlOut, "noopener") {
		t.Errorf("link missing rel: %q", htmlOut)
	}
}

func TestInbound_NodeTree(t *testing.T) {
	pipe := New()

	_, nodes, err := pipe.Inbound(`before <img src=" https://example.com/a.png "> <a href="https://example.com/page">the page</a> after`)
	if err != nil {
		t.Fatalf("Inbound() error: %v", err)
	}

	var images, links, texts int
	for _, n := range nodes {
		switch n.Kind {
		case NodeImage:
			images++
			if n.Src != "https://example.com/a.png" {
				t.Errorf("image src not trimmed: %q", n.Src)
			}
		case NodeLink:
			links++
			if n.Href != "https://example.com/page" {
				t.Errorf("link href = %q", n.Href)
			}
			if n.Label != "the page" {
				t.Errorf("link label = %q", n.Label)
			}
		case NodeText:
			texts++
		}
	}

	if images != 1 || links != 1 || texts == 0 {
		t.Errorf("node counts: images=%d links=%d texts=%d, nodes=%+v", images, links, texts, nodes)
	}
}

func TestInbound_SanitizesBeforeRender(t *testing.T) {
	pipe := New()

	htmlOut, nodes, err := pipe.Inbound(`<script>alert(1)</script><p>safe</p>`)
	if err != nil {
		t.Fatalf("Inbound() error: %v", err)
	}
	if strings.Contains(strings.ToLower(htmlOut), "<script") {
		t.Errorf("script survived inbound pipeline: %q", htmlOut)
	}
	for _, n := range nodes {
		if strings.Contains(n.Text, "alert(1)") {
			t.Errorf("script body leaked into node tree: %+v", n)
		}
	}
}

// =============================================================================
// DOM HELPER TESTS
// =============================================================================

func TestLastImageSource(t *testing.T) {
	tests := []struct {
		name      string
		fragment  string
		want      string
		wantFound bool
	}{
		{
			name:      "last of two images wins",
			fragment:  `<p><img src="a.png"><img src="b.png"></p>`,
			want:      "b.png",
			wantFound: true,
		},
		{
			name:      "src is whitespace-trimmed",
			fragment:  `<img src="  c.png  ">`,
			want:      "c.png",
			wantFound: true,
		},
		{
			name:      "no images",
			fragment:  `<p>just text</p>`,
			wantFound: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := LastImageSource(tc.fragment)
			if found != tc.wantFound {
				t.Fatalf("found = %v, want %v", found, tc.wantFound)
			}
			if got != tc.want {
				t.Errorf("LastImageSource() = %q, want %q", got, tc.want)
			}
		})
	}
}
