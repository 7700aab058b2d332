// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package melody assigns a note to every phoneme position from a fixed melody that
// loops for as long as the lyrics run.
package melody

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PitchBase is the frequency of A4, the equal temperament reference
const PitchBase = 440.0

// ErrBadNote is returned for a note name that is neither in the table nor a
// scientific pitch name such as "C#4" or "Bb3"
var ErrBadNote = errors.New("bad note name")

// ErrEmpty is returned when a melody has no notes
var ErrEmpty = errors.New("melody has no notes")

// Notes maps note names to frequencies in Hz
type Notes map[string]float64

// DefaultNotes is the note table the default melody is written in
func DefaultNotes() Notes {
	return Notes{
		"C4": 261.63,
		"D4": 293.66,
		"E4": 329.63,
		"F4": 349.23,
		"G4": 392.0,
	}
}

// DefaultSequence is the default looping melody
func DefaultSequence() []string {
	return []string{"C4", "D4", "E4", "C4", "E4", "F4", "G4", "C4"}
}

var semitones = map[byte]int{'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2, 'A': 0, 'B': 2}

// Frequency returns the equal temperament frequency of a scientific pitch name.
// The letter may be followed by '#' or 'b' and must end in an octave number.
func Frequency(name string) (float64, error) {
	if len(name) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadNote, name)
	}
	semi, ok := semitones[strings.ToUpper(name[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadNote, name)
	}
	rest := name[1:]
	switch rest[0] {
	case '#':
		semi++
		rest = rest[1:]
	case 'b':
		semi--
		rest = rest[1:]
	}
	oct, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNote, name)
	}
	semi += (oct - 4) * 12
	return PitchBase * math.Pow(2, float64(semi)/12), nil
}

// Melody is an immutable looping sequence of notes
type Melody struct {
	names []string
	freqs []float64
}

// New resolves every name in seq against notes, falling back to equal temperament
// for names the table lacks
func New(seq []string, notes Notes) (*Melody, error) {
	if len(seq) == 0 {
		return nil, ErrEmpty
	}
	ml := &Melody{names: make([]string, len(seq)), freqs: make([]float64, len(seq))}
	for i, nm := range seq {
		nm = strings.TrimSpace(nm)
		f, ok := notes[nm]
		if !ok {
			var err error
			if f, err = Frequency(nm); err != nil {
				return nil, err
			}
		}
		if f <= 0 {
			return nil, fmt.Errorf("%w: %q has frequency %v", ErrBadNote, nm, f)
		}
		ml.names[i] = nm
		ml.freqs[i] = f
	}
	return ml, nil
}

// Default returns the default melody in the default note table
func Default() *Melody {
	ml, err := New(DefaultSequence(), DefaultNotes())
	if err != nil {
		panic(err)
	}
	return ml
}

// Len is the number of notes before the melody repeats
func (ml *Melody) Len() int {
	return len(ml.names)
}

// Note returns the name and frequency of the note sung at position idx.
// Every position, pauses included, takes the next note.
func (ml *Melody) Note(idx int) (name string, hz float64) {
	i := idx % len(ml.names)
	if i < 0 {
		i += len(ml.names)
	}
	return ml.names[i], ml.freqs[i]
}

// Freq returns the frequency of the note at position idx
func (ml *Melody) Freq(idx int) float64 {
	_, hz := ml.Note(idx)
	return hz
}
