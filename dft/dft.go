// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dft computes the power spectrum of a window of sound and picks out its
// strongest frequencies
package dft

import (
	"math"
	"sort"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Params holds the variables for doing a fourier transform
type Params struct {
	CompLogPow bool         `def:"true" desc:"compute the log of the power and save that to a separate table -- generaly more useful for visualization of power than raw power values"`
	LogMin     float32      `viewif:"CompLogPow" def:"-100" desc:"minimum value a log can produce -- puts a lower limit on log output"`
	LogOffSet  float32      `viewif:"CompLogPow" def:"0" desc:"add this amount when taking the log of the dft power -- e.g., 1.0 makes everything positive -- affects the relative contrast of the outputs"`
	Hann       bool         `def:"true" desc:"taper the window with a Hann window before the transform, which keeps the peaks of short tones narrow"`
	Fft        []complex128 `inactive:"+" desc:" discrete fourier transform (fft) output complex representation"`

	fft  *fourier.FFT
	work []float64
}

// Defaults sets the default values
func (dft *Params) Defaults() {
	dft.CompLogPow = true
	dft.LogOffSet = 0
	dft.LogMin = -100
	dft.Hann = true
}

// Initialize sizes the transform for windows of winSamples
func (dft *Params) Initialize(winSamples int) {
	dft.fft = fourier.NewFFT(winSamples)
	dft.work = make([]float64, winSamples)
	dft.Fft = make([]complex128, winSamples/2+1)
}

// WinSamples is the window size the transform was initialized for
func (dft *Params) WinSamples() int {
	return len(dft.work)
}

// Input applies the dft (fft) to the window. Windows shorter than the transform are
// zero padded.
func (dft *Params) Input(windowIn []float64) {
	for i := range dft.work {
		if i < len(windowIn) {
			dft.work[i] = windowIn[i]
		} else {
			dft.work[i] = 0
		}
	}
	if dft.Hann {
		window.Hann(dft.work)
	}
	dft.Fft = dft.fft.Coefficients(dft.Fft, dft.work)
}

// Power fills power (and logPower when CompLogPow) with the power of each bin up to the
// nyquist frequency. logPower may be nil.
func (dft *Params) Power(power *etensor.Float32, logPower *etensor.Float32) {
	nb := len(dft.Fft)
	power.SetShape([]int{nb}, nil, []string{"Freq"})
	if dft.CompLogPow && logPower != nil {
		logPower.SetShape([]int{nb}, nil, []string{"Freq"})
	}
	for k := 0; k < nb; k++ {
		rl := real(dft.Fft[k])
		im := imag(dft.Fft[k])
		powr := rl*rl + im*im
		power.SetFloat1D(k, powr)

		if dft.CompLogPow && logPower != nil {
			powr += float64(dft.LogOffSet)
			logp := float64(dft.LogMin)
			if powr > 0 {
				logp = math.Max(math.Log(powr), float64(dft.LogMin))
			}
			logPower.SetFloat1D(k, logp)
		}
	}
}

// Freq is the frequency in Hz of bin k
func (dft *Params) Freq(k int, sampleRate int) float64 {
	return dft.fft.Freq(k) * float64(sampleRate)
}

// Peak is a local maximum of the power spectrum
type Peak struct {
	Freq  float64
	Power float64
}

// Peaks returns up to n local maxima of power, strongest first
func (dft *Params) Peaks(power *etensor.Float32, sampleRate, n int) []Peak {
	nb := power.Len()
	var pks []Peak
	for k := 1; k < nb-1; k++ {
		p := power.FloatVal1D(k)
		if p > power.FloatVal1D(k-1) && p >= power.FloatVal1D(k+1) && p > 0 {
			pks = append(pks, Peak{Freq: dft.Freq(k, sampleRate), Power: p})
		}
	}
	sort.Slice(pks, func(i, j int) bool { return pks[i].Power > pks[j].Power })
	if len(pks) > n {
		pks = pks[:n]
	}
	return pks
}

// Frame is the spectral summary of one window of a longer signal
type Frame struct {
	Start float64 `desc:"start of the window in milliseconds"`
	Peaks []Peak
}

// Frames steps a window of winSamples across samples and returns the top n peaks of
// each window. A trailing partial window is zero padded.
func Frames(samples []float64, sampleRate, winSamples, n int) []Frame {
	var dft Params
	dft.Defaults()
	dft.CompLogPow = false
	dft.Initialize(winSamples)
	var power etensor.Float32
	var frames []Frame
	for st := 0; st < len(samples); st += winSamples {
		end := st + winSamples
		if end > len(samples) {
			end = len(samples)
		}
		dft.Input(samples[st:end])
		dft.Power(&power, nil)
		frames = append(frames, Frame{
			Start: 1000 * float64(st) / float64(sampleRate),
			Peaks: dft.Peaks(&power, sampleRate, n),
		})
	}
	return frames
}
