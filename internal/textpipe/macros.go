// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textpipe implements the chat text transformation pipelines.
package textpipe

import (
	"strconv"
	"strings"
)

// =============================================================================
// COMMAND MACROS
// =============================================================================

// Command macros replace a leading @word token with generated text.
// Only a token at the very start of the message triggers expansion;
// @dice in the middle of a sentence is ordinary text. Unrecognized
// @word tokens are left untouched.
//
// Outcome text is locale-invariant: translation, if any, happens at a
// higher layer, never at generation time.

// coinSides are the two labeled outcomes of the @coin macro.
var coinSides = [2]string{"Heads", "Tails"}

// expandMacro expands a recognized leading macro token using rng, a
// uniform generator over [0, n). It returns the (possibly unchanged)
// message.
func expandMacro(s string, rng func(n int) int) string {
	if !strings.HasPrefix(s, "@") {
		return s
	}

	token := s
	rest := ""
	if idx := strings.IndexAny(s, " \t\n"); idx >= 0 {
		token = s[:idx]
		rest = s[idx:]
	}

	switch token {
	case "@dice":
		roll := rng(6) + 1
		return "The dice rolled: \n # " + strconv.Itoa(roll) + rest
	case "@coin":
		side := coinSides[rng(2)]
		return "The coin landed on: \n # " + side + rest
	default:
		return s
	}
}
