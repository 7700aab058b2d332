// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"fmt"
	"math"
)

// Params are the timing and amplitude constants of the phoneme renderer
type Params struct {
	SampleRate   int     `yaml:"sample_rate" def:"8000" desc:"output sample rate in Hz"`
	VowelDur     float64 `yaml:"vowel_dur" def:"0.25" desc:"vowel duration in seconds"`
	ConsonantDur float64 `yaml:"consonant_dur" def:"0.1" desc:"consonant duration in seconds"`
	PauseDur     float64 `yaml:"pause_dur" def:"0.1" desc:"pause duration in seconds"`
	VowelAmp     float64 `yaml:"vowel_amp" def:"0.45" desc:"summed peak amplitude of the formant sines, split evenly across formants"`
	BendHz       float64 `yaml:"bend_hz" def:"10" desc:"pitch bend reached at the end of each vowel, in Hz"`
	Attack       float64 `yaml:"attack" def:"0.25" desc:"fraction of the vowel spent ramping up from silence"`
	NoiseAmp     float64 `yaml:"noise_amp" def:"0.4" desc:"consonant noise is uniform in [-NoiseAmp, NoiseAmp]"`
	NoiseDecay   float64 `yaml:"noise_decay" def:"5" desc:"consonant envelope is exp(-NoiseDecay * t)"`
	AccentBase   float64 `yaml:"accent_base" def:"0.5" desc:"vowel gain at the start of the lyrics"`
	AccentSpan   float64 `yaml:"accent_span" def:"0.5" desc:"gain added linearly by position across the lyrics"`
}

// Defaults sets the default values
func (pr *Params) Defaults() {
	pr.SampleRate = 8000
	pr.VowelDur = 0.25
	pr.ConsonantDur = 0.1
	pr.PauseDur = 0.1
	pr.VowelAmp = 0.45
	pr.BendHz = 10
	pr.Attack = 0.25
	pr.NoiseAmp = 0.4
	pr.NoiseDecay = 5
	pr.AccentBase = 0.5
	pr.AccentSpan = 0.5
}

// Validate checks that the params describe a renderable voice
func (pr *Params) Validate() error {
	if pr.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be > 0, got %d", pr.SampleRate)
	}
	for _, d := range []struct {
		name string
		val  float64
	}{{"vowel", pr.VowelDur}, {"consonant", pr.ConsonantDur}, {"pause", pr.PauseDur}} {
		if d.val <= 0 {
			return fmt.Errorf("%s duration must be > 0, got %v", d.name, d.val)
		}
	}
	if pr.Attack < 0 || pr.Attack > 1 {
		return fmt.Errorf("attack must be within [0, 1], got %v", pr.Attack)
	}
	return nil
}

// SecToSamples converts seconds to samples, in terms of sample rate
func SecToSamples(sec float64, rate int) int {
	return int(math.Round(sec * float64(rate)))
}

// SamplesToMSec converts samples to milliseconds, in terms of sample rate
func SamplesToMSec(samples int, rate int) float64 {
	return 1000.0 * float64(samples) / float64(rate)
}

// Samples returns the buffer length of a phoneme of kind k
func (pr *Params) Samples(k Kind) int {
	switch k {
	case Vowel:
		return SecToSamples(pr.VowelDur, pr.SampleRate)
	case Consonant:
		return SecToSamples(pr.ConsonantDur, pr.SampleRate)
	}
	return SecToSamples(pr.PauseDur, pr.SampleRate)
}
