// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package synth renders phonemes into audio and strings them into a song. Vowels are
// additive sines at note + formant, consonants are decaying noise bursts and pauses
// are silence.
package synth

import (
	"math"

	"github.com/emer/desy/en/textparse"
	"github.com/emer/desy/melody"
	"github.com/emer/desy/trm"
)

// Kind is the render path of a phoneme
type Kind int32

const (
	Pause Kind = iota
	Consonant
	Vowel
)

func (k Kind) String() string {
	switch k {
	case Consonant:
		return "consonant"
	case Vowel:
		return "vowel"
	}
	return "pause"
}

// Singer holds everything needed to render a song. The model, melody and params are
// read only after New, so the only state a render touches is the random source.
type Singer struct {
	Params Params
	Model  *trm.Model
	Melody *melody.Melody
	Src    Source
}

// New returns a Singer. A nil src falls back to a clock seeded source.
func New(pr Params, md *trm.Model, ml *melody.Melody, src Source) *Singer {
	if src == nil {
		src = NewTimeSource()
	}
	return &Singer{Params: pr, Model: md, Melody: ml, Src: src}
}

// Default returns a Singer with default params, vowels and melody
func Default(src Source) *Singer {
	var pr Params
	pr.Defaults()
	return New(pr, trm.NewModel(trm.DefaultVowels(), trm.SoundSpeedCm), melody.Default(), src)
}

// Classify returns the render path for ph
func (sg *Singer) Classify(ph rune) Kind {
	switch {
	case ph == textparse.Pause:
		return Pause
	case sg.Model.IsVowel(ph):
		return Vowel
	}
	return Consonant
}

// Accent returns the vowel gain at position idx of total phonemes. It rises linearly
// from AccentBase at the first phoneme. total <= 0 returns AccentBase.
func (pr *Params) Accent(idx, total int) float64 {
	if total <= 0 {
		return pr.AccentBase
	}
	return pr.AccentBase + pr.AccentSpan*(float64(idx)/float64(total))
}

// Render returns the samples of phoneme ph sung at note frequency hz, at position idx
// of total phonemes
func (sg *Singer) Render(ph rune, hz float64, idx, total int) []float64 {
	switch sg.Classify(ph) {
	case Pause:
		return sg.Pause()
	case Vowel:
		fm, _ := sg.Model.Formants(ph)
		return sg.Vowel(fm, hz, idx, total)
	}
	return sg.Consonant()
}

// Pause returns a silent buffer of the pause duration
func (sg *Singer) Pause() []float64 {
	return make([]float64, sg.Params.Samples(Pause))
}

// Consonant returns a burst of uniform noise under an exponential decay
func (sg *Singer) Consonant() []float64 {
	pr := &sg.Params
	n := pr.Samples(Consonant)
	wave := make([]float64, n)
	rate := float64(pr.SampleRate)
	for k := range wave {
		noise := pr.NoiseAmp * (2*sg.Src.Uniform() - 1)
		wave[k] = noise * math.Exp(-pr.NoiseDecay*float64(k)/rate)
	}
	return wave
}

// Vowel returns the voiced buffer for formants fm at note frequency hz. Each formant
// contributes a sine at hz + formant + bend, the bend gliding linearly up to BendHz.
// A linear attack covers the first Attack fraction of the buffer and the whole
// buffer is scaled by the accent for idx.
func (sg *Singer) Vowel(fm trm.Formants, hz float64, idx, total int) []float64 {
	pr := &sg.Params
	n := pr.Samples(Vowel)
	wave := make([]float64, n)
	if n == 0 {
		return wave
	}
	rate := float64(pr.SampleRate)
	amp := pr.VowelAmp / float64(len(fm))
	attack := int(float64(n) * pr.Attack)
	accent := pr.Accent(idx, total)

	for k := range wave {
		t := float64(k) / rate
		bend := 0.0
		if n > 1 {
			bend = pr.BendHz * float64(k) / float64(n-1)
		}
		var s float64
		for _, f := range fm {
			s += amp * math.Sin(2*math.Pi*(hz+f+bend)*t)
		}
		wave[k] = s * envelope(k, attack) * accent
	}
	return wave
}

// envelope is the attack gain at sample k: a ramp from 0 to 1 over the first attack
// samples, endpoints included, then held at 1
func envelope(k, attack int) float64 {
	switch {
	case k >= attack:
		return 1
	case attack == 1:
		return 0
	}
	return float64(k) / float64(attack-1)
}
