// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sound

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/emer/etable/etensor"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// PCM is the WAV audio format code for uncompressed integer samples
const PCM = 1

// BitDepth is the sample size of every wave this package writes
const BitDepth = 16

// MaxInt16 scales a sample in [-1, 1] to the signed 16 bit range
const MaxInt16 = 32767

// ErrNotWav is returned when decoding data that is not a WAV file
var ErrNotWav = errors.New("not a valid wav file")

type Wave struct {
	Buf *audio.IntBuffer `inactive:"+"`
}

// FromFloats quantizes mono samples to 16 bit PCM at the given rate. Samples outside
// [-1, 1] are clamped first; clamped is the number of samples that needed it.
func FromFloats(samples []float64, rate int) (snd *Wave, clamped int) {
	data := make([]int, len(samples))
	for i, s := range samples {
		switch {
		case s > 1:
			s = 1
			clamped++
		case s < -1:
			s = -1
			clamped++
		case math.IsNaN(s):
			s = 0
			clamped++
		}
		data[i] = int(s * MaxInt16)
	}
	format := &audio.Format{
		NumChannels: 1,
		SampleRate:  rate,
	}
	return &Wave{Buf: &audio.IntBuffer{Data: data, Format: format, SourceBitDepth: BitDepth}}, clamped
}

// Load loads the sound file and decodes it
func (snd *Wave) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		log.Error("sound.Load: couldn't open", "file", fn, "err", err)
		return err
	}
	defer f.Close()
	if err := snd.Decode(f); err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	return nil
}

// Decode reads a whole WAV stream into the buffer
func (snd *Wave) Decode(r io.ReadSeeker) error {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return ErrNotWav
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	snd.Buf = buf
	return nil
}

// WriteWave encodes the signal data and writes it to file using the sample rate and
// other values of the buf object
func (snd *Wave) WriteWave(fn string) error {
	out, err := os.Create(fn)
	if err != nil {
		log.Error("unable to create", "file", fn, "err", err)
		return err
	}
	if err := snd.Encode(out); err != nil {
		out.Close()
		return fmt.Errorf("%s: %w", fn, err)
	}
	return out.Close()
}

// Encode writes the buffer as a PCM WAV stream
func (snd *Wave) Encode(w io.WriteSeeker) error {
	if snd == nil || snd.Buf == nil {
		return errors.New("no sound to encode")
	}
	e := wav.NewEncoder(w, snd.SampleRate(), snd.Buf.SourceBitDepth, snd.Channels(), PCM)
	if err := e.Write(snd.Buf); err != nil {
		return fmt.Errorf("encoding failed on write: %w", err)
	}
	if err := e.Close(); err != nil {
		return fmt.Errorf("could not close wav file encoder: %w", err)
	}
	return nil
}

// Bytes returns the complete WAV file. The encoder needs to seek back to patch the
// header, so the file is staged in a temporary directory.
func (snd *Wave) Bytes() ([]byte, error) {
	f, err := os.CreateTemp("", "desy_*.wav")
	if err != nil {
		return nil, fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(f.Name())
	if err := snd.Encode(f); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(f.Name())
}

// SampleRate returns the sample rate of the sound or 0 is snd is nil
func (snd *Wave) SampleRate() int {
	if snd == nil || snd.Buf == nil {
		log.Warn("sound.SampleRate: Sound is nil")
		return 0
	}
	return int(snd.Buf.Format.SampleRate)
}

// Channels returns the number of channels in the wav data or 0 is snd is nil
func (snd *Wave) Channels() int {
	if snd == nil || snd.Buf == nil {
		log.Warn("sound.Channels: Sound is nil")
		return 0
	}
	return int(snd.Buf.Format.NumChannels)
}

// NumFrames is the number of samples per channel
func (snd *Wave) NumFrames() int {
	if snd == nil || snd.Buf == nil {
		return 0
	}
	return snd.Buf.NumFrames()
}

// Duration is the play time of the sound
func (snd *Wave) Duration() time.Duration {
	sr := snd.SampleRate()
	if sr == 0 {
		return 0
	}
	return time.Duration(snd.NumFrames()) * time.Second / time.Duration(sr)
}

// Floats returns one channel as floats normalized to -1..1. A negative channel mixes
// all channels down to mono.
func (snd *Wave) Floats(channel int) []float64 {
	nFrames := snd.NumFrames()
	nch := snd.Channels()
	out := make([]float64, nFrames)
	if nch == 0 {
		return out
	}
	for i := 0; i < nFrames; i++ {
		if channel >= 0 {
			out[i] = float64(snd.GetFloatAtIdx(snd.Buf, i*nch+channel))
			continue
		}
		var sum float64
		for c := 0; c < nch; c++ {
			sum += float64(snd.GetFloatAtIdx(snd.Buf, i*nch+c))
		}
		out[i] = sum / float64(nch)
	}
	return out
}

// SoundToTensor converts sound data to floating point etensor with normalized -1..1 values --
// for use in signal processing routines -- can optionally select a specific channel
// (formats samples as a single-dimensional matrix of frames size), and -1 gets all
// available channels (formats samples as two-dimensional matrix with outer dimension as
// channels and inner dimension frames
func (snd *Wave) SoundToTensor(samples *etensor.Float32, channel int) bool {
	nFrames := snd.NumFrames()
	nch := snd.Channels()
	if nch == 0 {
		return false
	}

	if channel < 0 && nch > 1 { // multiple channels and we process all of them
		samples.SetShape([]int{nch, nFrames}, nil, nil)
		idx := 0
		for i := 0; i < nFrames; i++ {
			for c := 0; c < nch; c, idx = c+1, idx+1 {
				samples.SetFloat([]int{c, i}, float64(snd.GetFloatAtIdx(snd.Buf, idx)))
			}
		}
		return true
	}
	if channel < 0 {
		channel = 0
	}
	samples.SetShape([]int{nFrames}, nil, nil)
	for i := 0; i < nFrames; i++ {
		samples.SetFloat1D(i, float64(snd.GetFloatAtIdx(snd.Buf, i*nch+channel)))
	}
	return true
}

// GetFloatAtIdx returns sample idx normalized by the bit depth of buf
func (snd *Wave) GetFloatAtIdx(buf *audio.IntBuffer, idx int) float32 {
	switch buf.SourceBitDepth {
	case 32:
		return float32(buf.Data[idx]) / float32(0x7FFFFFFF)
	case 24:
		return float32(buf.Data[idx]) / float32(0x7FFFFF)
	case 16:
		return float32(buf.Data[idx]) / float32(0x7FFF)
	case 8:
		return float32(buf.Data[idx]) / float32(0x7F)
	}
	return 0
}
