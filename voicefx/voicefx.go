// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package voicefx is a chain of effects that turns a voice into a low, cold, slightly
// reverberant one: pitch shift, reverb, echo, low-pass and peak normalization.
// Every stage preserves the length of its input.
package voicefx

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// PitchParams configures the duration preserving pitch shift
type PitchParams struct {
	On        bool    `yaml:"on" def:"true"`
	Semitones float64 `yaml:"semitones" def:"-5" desc:"shift in equal tempered semitones, negative is lower"`
	WinSec    float64 `yaml:"win_sec" def:"0.05" desc:"overlap-add window length in seconds"`
}

// Tap is one reflection of the reverb impulse response
type Tap struct {
	DelaySec float64 `yaml:"delay_sec"`
	Gain     float64 `yaml:"gain"`
}

// ReverbParams configures the sparse impulse response reverb
type ReverbParams struct {
	On     bool    `yaml:"on" def:"true"`
	LenSec float64 `yaml:"len_sec" def:"0.05" desc:"impulse response length in seconds"`
	Taps   []Tap   `yaml:"taps"`
}

// EchoParams configures the single delayed copy
type EchoParams struct {
	On       bool    `yaml:"on" def:"true"`
	DelaySec float64 `yaml:"delay_sec" def:"0.07"`
	Gain     float64 `yaml:"gain" def:"0.25"`
}

// LowPassParams configures the moving average low-pass
type LowPassParams struct {
	On   bool `yaml:"on" def:"true"`
	Taps int  `yaml:"taps" def:"5" desc:"number of samples averaged"`
}

// Params holds every stage of the chain, applied in field order
type Params struct {
	Pitch     PitchParams   `yaml:"pitch"`
	Reverb    ReverbParams  `yaml:"reverb"`
	Echo      EchoParams    `yaml:"echo"`
	LowPass   LowPassParams `yaml:"low_pass"`
	Normalize bool          `yaml:"normalize" def:"true" desc:"scale the result so its peak magnitude is 1"`
}

// Defaults sets the default values
func (fx *Params) Defaults() {
	fx.Pitch = PitchParams{On: true, Semitones: -5, WinSec: 0.05}
	fx.Reverb = ReverbParams{On: true, LenSec: 0.05, Taps: []Tap{{0, 0.6}, {0.015, 0.3}, {0.03, 0.1}}}
	fx.Echo = EchoParams{On: true, DelaySec: 0.07, Gain: 0.25}
	fx.LowPass = LowPassParams{On: true, Taps: 5}
	fx.Normalize = true
}

// Validate checks the params of every enabled stage
func (fx *Params) Validate() error {
	if fx.Pitch.On && fx.Pitch.WinSec <= 0 {
		return fmt.Errorf("pitch window must be > 0, got %v", fx.Pitch.WinSec)
	}
	if fx.Reverb.On {
		if fx.Reverb.LenSec <= 0 {
			return fmt.Errorf("reverb length must be > 0, got %v", fx.Reverb.LenSec)
		}
		for _, tp := range fx.Reverb.Taps {
			if tp.DelaySec < 0 || tp.DelaySec >= fx.Reverb.LenSec {
				return fmt.Errorf("reverb tap at %v s is outside the %v s response", tp.DelaySec, fx.Reverb.LenSec)
			}
		}
	}
	if fx.Echo.On && fx.Echo.DelaySec <= 0 {
		return fmt.Errorf("echo delay must be > 0, got %v", fx.Echo.DelaySec)
	}
	if fx.LowPass.On && fx.LowPass.Taps < 1 {
		return fmt.Errorf("low-pass needs at least 1 tap, got %d", fx.LowPass.Taps)
	}
	return nil
}

// Apply runs x through every enabled stage and returns a new signal of the same
// length. x is not modified.
func (fx *Params) Apply(x []float64, rate int) []float64 {
	y := append([]float64(nil), x...)
	if fx.Pitch.On {
		y = PitchShift(y, fx.Pitch.Semitones, secToSamples(fx.Pitch.WinSec, rate))
	}
	if fx.Reverb.On {
		y = Reverb(y, fx.Reverb.Response(rate))
	}
	if fx.Echo.On {
		y = Echo(y, secToSamples(fx.Echo.DelaySec, rate), fx.Echo.Gain)
	}
	if fx.LowPass.On {
		y = LowPass(y, fx.LowPass.Taps)
	}
	if fx.Normalize {
		y = Normalize(y)
	}
	return y
}

// Normalize scales x so that its largest magnitude is 1. Silence is returned as is.
func Normalize(x []float64) []float64 {
	y := append([]float64(nil), x...)
	if len(y) == 0 {
		return y
	}
	peak := math.Max(math.Abs(floats.Max(y)), math.Abs(floats.Min(y)))
	if peak == 0 || math.IsNaN(peak) {
		return y
	}
	floats.Scale(1/peak, y)
	return y
}

// secToSamples truncates, matching integer delay offsets
func secToSamples(sec float64, rate int) int {
	return int(sec * float64(rate))
}
