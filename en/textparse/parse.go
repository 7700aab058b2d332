// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textparse turns lyrics into the flat phoneme sequence the synthesizer sings.
// Letters stand in for phonemes, spaces and commas become pauses, and everything
// else is dropped.
package textparse

import (
	"strings"
	"unicode"
)

// Pause is the phoneme symbol for a space or comma
const Pause = ' '

// Phonemes returns the phoneme symbols for text, in order. Letters (any script) are
// uppercased and kept, a space or comma becomes a single Pause, all other characters
// are dropped. Empty text returns an empty sequence.
func Phonemes(text string) []rune {
	var ph []rune
	for _, c := range strings.ToUpper(text) {
		switch {
		case unicode.IsLetter(c):
			ph = append(ph, c)
		case c == ' ' || c == ',':
			ph = append(ph, Pause)
		}
	}
	return ph
}

// Lyrics flattens multi-line lyrics onto one line so that line breaks sing as pauses
func Lyrics(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	return strings.ReplaceAll(text, "\n", " ")
}

// String renders a phoneme sequence back to text, mostly for logging
func String(ph []rune) string {
	return string(ph)
}
