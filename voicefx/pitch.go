// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voicefx

import (
	"math"

	"gonum.org/v1/gonum/dsp/window"
)

// PitchShift moves the pitch of x by semitones while keeping its length. x is
// resampled by 2^(semitones/12), which changes pitch and length together, and the
// result is time-stretched back to len(x) by overlap-add of Hann windows of win
// samples.
func PitchShift(x []float64, semitones float64, win int) []float64 {
	if len(x) == 0 || semitones == 0 {
		return append([]float64(nil), x...)
	}
	ratio := math.Pow(2, semitones/12)
	return Stretch(Resample(x, ratio), len(x), win)
}

// Resample reads x at steps of ratio with linear interpolation. ratio < 1 gives a
// longer, lower signal and ratio > 1 a shorter, higher one.
func Resample(x []float64, ratio float64) []float64 {
	if len(x) == 0 || ratio <= 0 {
		return nil
	}
	n := int(math.Round(float64(len(x)) / ratio))
	y := make([]float64, n)
	last := len(x) - 1
	for j := range y {
		pos := float64(j) * ratio
		i := int(pos)
		if i >= last {
			y[j] = x[last]
			continue
		}
		fr := pos - float64(i)
		y[j] = x[i] + fr*(x[i+1]-x[i])
	}
	return y
}

// Stretch time-scales x to n samples without changing its pitch. Hann weighted
// frames of win samples are written every win/2 output samples and read every
// win/2 * len(x)/n input samples. The sum is divided by the summed window weight.
func Stretch(x []float64, n, win int) []float64 {
	out := make([]float64, n)
	if n == 0 || len(x) == 0 {
		return out
	}
	if win < 2 {
		win = 2
	}
	wts := make([]float64, win)
	for i := range wts {
		wts[i] = 1
	}
	window.Hann(wts)

	hopOut := win / 2
	hopIn := float64(hopOut) * float64(len(x)) / float64(n)
	norm := make([]float64, n)
	for f := 0; f*hopOut < n; f++ {
		st := f * hopOut
		src := int(math.Round(float64(f) * hopIn))
		for i, w := range wts {
			k := st + i
			if k >= n {
				break
			}
			var v float64
			if j := src + i; j < len(x) {
				v = x[j]
			}
			out[k] += w * v
			norm[k] += w
		}
	}
	for k := range out {
		if norm[k] > 1e-8 {
			out[k] /= norm[k]
		} else {
			out[k] = 0
		}
	}
	return out
}
