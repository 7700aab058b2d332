// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/emer/desy/trm"
)

// Source supplies the randomness for consonant noise
type Source interface {
	// Uniform returns the next sample, uniform in [0, 1)
	Uniform() float64
}

// RandSource is a Source backed by a seeded PCG generator
type RandSource struct {
	rnd *rand.Rand
}

// NewRandSource returns a source seeded with seed. The same seed yields the same
// consonants on every run.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSource returns a source seeded from the clock, for run to run variation
func NewTimeSource() *RandSource {
	return NewRandSource(uint64(time.Now().UnixNano()))
}

func (rs *RandSource) Uniform() float64 {
	return rs.rnd.Float64()
}

// SourceFor picks the source configured by seed: 0 means a clock seed, any other
// value a fixed seed. The noise flag selects the deterministic tube model
// noise generator instead.
func SourceFor(seed uint64, noise bool) Source {
	switch {
	case noise:
		return trm.NewNoiseSource()
	case seed == 0:
		return NewTimeSource()
	}
	return NewRandSource(seed)
}

// lockedSource serializes access to a Source shared between goroutines
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

// Locked wraps src so that it can be shared between concurrent renders
func Locked(src Source) Source {
	return &lockedSource{src: src}
}

func (ls *lockedSource) Uniform() float64 {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.src.Uniform()
}
