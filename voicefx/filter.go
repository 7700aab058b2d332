// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package voicefx

// MovingAvgFilter is a running mean over the last len(Buf) inputs. The history
// starts at zero, so the first outputs ramp up as samples arrive.
type MovingAvgFilter struct {
	Sum  float64
	InvN float64
	Buf  []float64
	Pos  int
}

// Init sizes the buffer for n taps
func (maf *MovingAvgFilter) Init(n int) {
	if n < 1 {
		n = 1
	}
	maf.Buf = make([]float64, n)
	maf.InvN = 1.0 / float64(n)
	maf.Reset()
}

// Reset sets the buffer values to zero, resets position and sets sum to zero
func (maf *MovingAvgFilter) Reset() {
	for i := range maf.Buf {
		maf.Buf[i] = 0
	}
	maf.Pos = 0
	maf.Sum = 0.0
}

// Filter calculates the moving average
func (maf *MovingAvgFilter) Filter(value float64) float64 {
	maf.Sum -= maf.Buf[maf.Pos]
	maf.Sum += value
	maf.Buf[maf.Pos] = value
	maf.Pos++
	if maf.Pos >= len(maf.Buf) {
		maf.Pos = 0
	}
	return maf.Sum * maf.InvN
}

// LowPass runs x through a moving average of taps samples
func LowPass(x []float64, taps int) []float64 {
	var maf MovingAvgFilter
	maf.Init(taps)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = maf.Filter(v)
	}
	return y
}

// Echo adds gain times x delayed by delay samples. A delay at or past the end of x
// leaves the signal unchanged.
func Echo(x []float64, delay int, gain float64) []float64 {
	y := append([]float64(nil), x...)
	if delay <= 0 {
		return y
	}
	for k := delay; k < len(y); k++ {
		y[k] += gain * x[k-delay]
	}
	return y
}
