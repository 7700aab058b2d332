// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/oto"
)

// PlayBufferSize is the oto driver buffer in bytes
const PlayBufferSize = 4096

// PCMBytes returns the samples as little endian 16 bit PCM, the layout oto plays
func (snd *Wave) PCMBytes() []byte {
	var b bytes.Buffer
	b.Grow(2 * len(snd.Buf.Data))
	for _, v := range snd.Buf.Data {
		binary.Write(&b, binary.LittleEndian, int16(v))
	}
	return b.Bytes()
}

// PlayWav streams the sound through an open context, blocking until it has been queued
func PlayWav(context *oto.Context, snd *Wave) error {
	p := context.NewPlayer()
	if _, err := io.Copy(p, bytes.NewReader(snd.PCMBytes())); err != nil {
		p.Close()
		return err
	}
	return p.Close()
}

// Play plays a 16 bit sound on the default audio device
func Play(snd *Wave) error {
	if snd.Buf.SourceBitDepth != BitDepth {
		return fmt.Errorf("can only play %d bit sounds, got %d", BitDepth, snd.Buf.SourceBitDepth)
	}
	c, err := oto.NewContext(snd.SampleRate(), snd.Channels(), BitDepth/8, PlayBufferSize)
	if err != nil {
		return err
	}
	defer c.Close()
	return PlayWav(c, snd)
}

// PlayFile loads a wav file and plays it
func PlayFile(fn string) error {
	var snd Wave
	if err := snd.Load(fn); err != nil {
		return err
	}
	return Play(&snd)
}
