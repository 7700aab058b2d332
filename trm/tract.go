// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trm is a closed-form tube resonance model of the vocal tract. Each vowel is
// an open quarter-wave tube whose length and cross-section factor fix its formants.
package trm

import (
	"fmt"
	"sort"
)

// SoundSpeedCm is the speed of sound used by the tube model, in cm/s
const SoundSpeedCm = 35000.0

// RefTractLength is the adult male tract length the vowel table is tuned for, in cm
const RefTractLength = 17.5

// NFormants is the number of resonances computed per vowel
const NFormants = 3

// SpeedOfSound returns the speed of sound according to the value of the temperature (in Celsius degrees), in m/s
func SpeedOfSound(temp float64) float64 {
	return 331.4 + (0.6 * temp)
}

// SpeedOfSoundCm is SpeedOfSound in cm/s, the unit tract lengths are given in
func SpeedOfSoundCm(temp float64) float64 {
	return SpeedOfSound(temp) * 100
}

// Tract is the tube approximation of the vocal tract for one vowel
type Tract struct {
	LengthCm   float64 `yaml:"length_cm" desc:"tube length in centimeters"`
	AreaFactor float64 `yaml:"area_factor" desc:"cross-section factor applied to the first resonance"`
}

// Formants are the first three resonances of a tract, in Hz
type Formants [NFormants]float64

// Formants returns f1 = c / (4 L) * area and its odd harmonics 3 f1 and 5 f1.
// c is the speed of sound in cm/s.
func (tr Tract) Formants(c float64) Formants {
	f1 := c / (4 * tr.LengthCm) * tr.AreaFactor
	return Formants{f1, 3 * f1, 5 * f1}
}

// Validate reports whether the tract yields positive formants
func (tr Tract) Validate() error {
	if tr.LengthCm <= 0 {
		return fmt.Errorf("tract length must be > 0, got %v", tr.LengthCm)
	}
	if tr.AreaFactor <= 0 {
		return fmt.Errorf("tract area factor must be > 0, got %v", tr.AreaFactor)
	}
	return nil
}

// Vowels maps a vowel symbol to its tract
type Vowels map[rune]Tract

// DefaultVowels returns the five-vowel table
func DefaultVowels() Vowels {
	return Vowels{
		'A': {LengthCm: 17, AreaFactor: 1.0},
		'E': {LengthCm: 14, AreaFactor: 0.9},
		'I': {LengthCm: 11, AreaFactor: 0.7},
		'O': {LengthCm: 18, AreaFactor: 1.1},
		'U': {LengthCm: 12, AreaFactor: 0.8},
	}
}

// IsVowel reports whether ph has an entry in the table
func (vw Vowels) IsVowel(ph rune) bool {
	_, ok := vw[ph]
	return ok
}

// Symbols returns the vowel symbols in sorted order
func (vw Vowels) Symbols() []rune {
	syms := make([]rune, 0, len(vw))
	for s := range vw {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i] < syms[j] })
	return syms
}

// Scaled returns a copy of the table with every tract length multiplied by s
func (vw Vowels) Scaled(s float64) Vowels {
	out := make(Vowels, len(vw))
	for k, tr := range vw {
		tr.LengthCm *= s
		out[k] = tr
	}
	return out
}

// Model computes formants for the vowels of one voice. It is built once and never
// changed, so it is safe to share.
type Model struct {
	Vowels Vowels  `desc:"tract per vowel, already scaled for the voice"`
	C      float64 `desc:"speed of sound in cm/s"`
	table  map[rune]Formants
}

// NewModel precomputes the formants of every vowel for speed of sound c (cm/s)
func NewModel(vw Vowels, c float64) *Model {
	md := &Model{Vowels: vw, C: c, table: make(map[rune]Formants, len(vw))}
	for s, tr := range vw {
		md.table[s] = tr.Formants(c)
	}
	return md
}

// Formants returns the formants of vowel ph. ok is false when ph is not a vowel, and
// callers must not render it as one.
func (md *Model) Formants(ph rune) (fm Formants, ok bool) {
	fm, ok = md.table[ph]
	return
}

// IsVowel reports whether ph is one of the model's vowels
func (md *Model) IsVowel(ph rune) bool {
	_, ok := md.table[ph]
	return ok
}
