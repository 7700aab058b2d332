// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay

import (
	"context"

	"github.com/emer/desy/synth"
)

// Speaker renders text as wav file bytes
type Speaker interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

// SingingSpeaker answers by singing the text
type SingingSpeaker struct {
	sg synth.Singer
}

// NewSingingSpeaker copies sg and guards its random source, so that connections
// can sing at the same time
func NewSingingSpeaker(sg *synth.Singer) *SingingSpeaker {
	ss := &SingingSpeaker{sg: *sg}
	if ss.sg.Src == nil {
		ss.sg.Src = synth.NewTimeSource()
	}
	ss.sg.Src = synth.Locked(ss.sg.Src)
	return ss
}

func (ss *SingingSpeaker) Speak(ctx context.Context, text string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ss.sg.Sing(text).Seal().Bytes()
}
