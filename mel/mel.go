// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mel sums a dft power spectrum into triangular mel frequency bands
package mel

import (
	"math"

	"github.com/emer/etable/etensor"
)

// FilterBank contains mel frequency feature bank sampling parameters
type FilterBank struct {
	NFilters int     `def:"16" desc:"number of Mel frequency filters to compute"`
	LoHz     float64 `def:"120" step:"10.0" desc:"low frequency end of mel frequency spectrum"`
	HiHz     float64 `def:"4000" step:"1000.0" desc:"high frequency end of mel frequency spectrum -- clipped to the nyquist frequency"`
	LogOff   float64 `def:"0" desc:"add this amount when taking the log of the Mel filter sums to produce the filter-bank output -- e.g., 1.0 makes everything positive"`
	LogMin   float64 `def:"-10" desc:"minimum value a log can produce -- puts a lower limit on log output"`

	BinPts  []int     `view:"-" desc:" mel scale points in fft bins"`
	HzPts   []float64 `view:"-" desc:" mel scale points in hz"`
	Filters etensor.Float32
}

// Defaults sets the bank for speech at low sample rates
func (fb *FilterBank) Defaults() {
	fb.NFilters = 16
	fb.LoHz = 120
	fb.HiHz = 4000
	fb.LogOff = 0
	fb.LogMin = -10
}

// InitFilters computes the filter bin values for a dft of dftSize samples
func (fb *FilterBank) InitFilters(dftSize int, sampleRate int) {
	hiHz := math.Min(fb.HiHz, float64(sampleRate)/2)
	fb.BinPts = make([]int, fb.NFilters+2) // plus 2 because we need end points to create the right number of bins
	fb.HzPts = make([]float64, fb.NFilters+2)

	hiMel := FreqToMel(hiHz)
	loMel := FreqToMel(fb.LoHz)
	incr := (hiMel - loMel) / float64(fb.NFilters+1)
	nBins := dftSize/2 + 1
	for i := range fb.BinPts {
		hz := MelToFreq(loMel + float64(i)*incr)
		fb.HzPts[i] = hz
		fb.BinPts[i] = min(FreqToBin(hz, float64(dftSize), float64(sampleRate)), nBins-1)
	}

	fb.Filters.SetShape([]int{fb.NFilters, nBins}, nil, []string{"Filter", "Bin"})
	for f := 0; f < fb.NFilters; f++ {
		binMin, binCtr, binMax := fb.BinPts[f], fb.BinPts[f+1], fb.BinPts[f+2]
		for bin := binMin; bin <= binMax; bin++ {
			var fval float64
			switch {
			case bin == binCtr:
				fval = 1
			case bin < binCtr:
				fval = float64(bin-binMin) / float64(binCtr-binMin)
			default:
				fval = float64(binMax-bin) / float64(binMax-binCtr)
			}
			fb.Filters.SetFloat([]int{f, bin}, fval)
		}
	}
}

// FilterDft applies the mel filters to the power of a dft, writing the log energy
// of each band to out
func (fb *FilterBank) FilterDft(power *etensor.Float32, out *etensor.Float32) {
	out.SetShape([]int{fb.NFilters}, nil, []string{"Filter"})
	for f := 0; f < fb.NFilters; f++ {
		sum := 0.0
		for bin := fb.BinPts[f]; bin <= fb.BinPts[f+2] && bin < power.Len(); bin++ {
			sum += fb.Filters.FloatVal([]int{f, bin}) * power.FloatVal1D(bin)
		}
		sum += fb.LogOff
		val := fb.LogMin
		if sum > 0 {
			val = math.Max(math.Log(sum), fb.LogMin)
		}
		out.SetFloat1D(f, val)
	}
}

// FreqToMel converts frequency to mel scale
func FreqToMel(freq float64) float64 {
	return 1127.0 * math.Log(1.0+freq/700.0) // 1127 because we are using natural log
}

// MelToFreq converts mel scale to frequency
func MelToFreq(mel float64) float64 {
	return 700.0 * (math.Exp(mel/1127.0) - 1.0)
}

// FreqToBin converts frequency into FFT bin number, using parameters of number of FFT bins and sample rate
func FreqToBin(freq, nFft, sampleRate float64) int {
	return int(math.Floor(((nFft + 1) * freq) / sampleRate))
}
