// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"github.com/charmbracelet/log"

	"github.com/emer/desy/en/textparse"
	"github.com/emer/desy/sound"
	"github.com/emer/desy/speech"
)

// Song is the concatenation of every rendered phoneme. Samples only grow while the
// song is assembled; Seal quantizes them once.
type Song struct {
	SampleRate int             `desc:"sample rate of Samples in Hz"`
	Samples    []float64       `desc:"the sung signal, nominally in -1..1"`
	Score      speech.Sequence `desc:"timing of every phoneme"`
	Clamped    int             `desc:"number of samples clamped into -1..1 when sealed"`

	wave *sound.Wave
}

// Sing maps text to phonemes and sings them
func (sg *Singer) Sing(text string) *Song {
	return sg.SingPhonemes(textparse.Phonemes(text))
}

// SingPhonemes renders each phoneme in order at the melody note for its position and
// appends it to the song. An empty sequence yields an empty song.
func (sg *Singer) SingPhonemes(ph []rune) *Song {
	so := &Song{SampleRate: sg.Params.SampleRate}
	total := len(ph)
	if total == 0 {
		return so
	}
	for i, p := range ph {
		note, hz := sg.Melody.Note(i)
		buf := sg.Render(p, hz, i, total)
		so.append(sg.unit(p, note, hz, i, total), buf)
	}
	return so
}

func (sg *Singer) unit(p rune, note string, hz float64, idx, total int) speech.Unit {
	k := sg.Classify(p)
	u := speech.Unit{Name: string(p), Type: k.String(), Note: note, Hz: hz}
	if k == Vowel {
		u.Accent = sg.Params.Accent(idx, total)
	}
	return u
}

func (so *Song) append(u speech.Unit, buf []float64) {
	if so.wave != nil {
		panic("synth: append to a sealed song")
	}
	so.Samples = append(so.Samples, buf...)
	so.Score.Add(u, SamplesToMSec(len(buf), so.SampleRate))
}

// Len is the number of samples in the song
func (so *Song) Len() int {
	return len(so.Samples)
}

// Seal clamps the samples into -1..1 and quantizes them to 16 bit PCM. The first call
// does the work and later calls return the same wave.
func (so *Song) Seal() *sound.Wave {
	if so.wave != nil {
		return so.wave
	}
	so.wave, so.Clamped = sound.FromFloats(so.Samples, so.SampleRate)
	if so.Clamped > 0 {
		log.Warn("song clipped before quantization", "clamped", so.Clamped, "samples", len(so.Samples))
	}
	return so.wave
}

// WriteWave seals the song and writes it as a 16 bit mono PCM wav file
func (so *Song) WriteWave(fn string) error {
	return so.Seal().WriteWave(fn)
}
