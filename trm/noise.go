// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The noise generator is the multiplicative congruential source of the Gnuspeech
// tube resonance model (Hill, Manzara, Schock).

package trm

import "math"

const Factor = 377.0
const InitialSeed = 0.7892347

// NoiseSource is a fully deterministic uniform generator. Every NoiseSource started
// from the same seed yields the same samples, which makes consonant bursts
// reproducible without a math/rand seed.
type NoiseSource struct {
	seed float64
}

// NewNoiseSource returns a source at the initial seed
func NewNoiseSource() *NoiseSource {
	ns := &NoiseSource{}
	ns.Reset()
	return ns
}

// Reset rewinds the source to the initial seed
func (ns *NoiseSource) Reset() {
	ns.seed = InitialSeed
}

// Uniform returns the next sample in [0, 1)
func (ns *NoiseSource) Uniform() float64 {
	product := ns.seed * Factor
	ns.seed = product - math.Trunc(product)
	return ns.seed
}

// GetSample returns the next sample centered on zero, in [-0.5, 0.5)
func (ns *NoiseSource) GetSample() float64 {
	return ns.Uniform() - 0.5
}
