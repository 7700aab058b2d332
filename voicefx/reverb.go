// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voicefx

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// Response builds the impulse response at sample rate rate. Each tap lands at the
// truncated sample index of its delay; taps on the same index add.
func (rp *ReverbParams) Response(rate int) []float64 {
	n := secToSamples(rp.LenSec, rate)
	if n < 1 {
		n = 1
	}
	ir := make([]float64, n)
	for _, tp := range rp.Taps {
		i := secToSamples(tp.DelaySec, rate)
		if i >= 0 && i < n {
			ir[i] += tp.Gain
		}
	}
	return ir
}

// Reverb convolves x with the impulse response ir and keeps the first len(x) samples
// of the full convolution
func Reverb(x, ir []float64) []float64 {
	if len(x) == 0 || len(ir) == 0 {
		return make([]float64, len(x))
	}
	full := len(x) + len(ir) - 1
	size := 1
	for size < full {
		size <<= 1
	}
	fft := fourier.NewFFT(size)

	xp := make([]float64, size)
	copy(xp, x)
	hp := make([]float64, size)
	copy(hp, ir)

	xc := fft.Coefficients(nil, xp)
	hc := fft.Coefficients(nil, hp)
	for i := range xc {
		xc[i] *= hc[i]
	}
	y := fft.Sequence(nil, xc)

	out := make([]float64, len(x))
	norm := 1 / float64(size)
	for i := range out {
		out[i] = y[i] * norm
	}
	return out
}
