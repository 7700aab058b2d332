// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relay answers spoken messages from a browser. Each binary WebSocket
// message is recognized to text, the text is sung back, and the reply wav is sent
// as base64 text.
package relay

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrEmptyTranscript is returned when recognition produced no text
var ErrEmptyTranscript = errors.New("empty transcript")

// Relay pairs a recognizer with a speaker
type Relay struct {
	Rec Recognizer
	Spk Speaker
	Log *log.Logger
}

// New returns a Relay. A nil logger uses the default logger.
func New(rec Recognizer, spk Speaker, lg *log.Logger) *Relay {
	if lg == nil {
		lg = log.Default()
	}
	return &Relay{Rec: rec, Spk: spk, Log: lg}
}

// Reply recognizes audio and returns the spoken answer as wav bytes along with the
// transcript
func (rl *Relay) Reply(ctx context.Context, audio []byte) (wav []byte, text string, err error) {
	text, err = rl.Rec.Recognize(ctx, audio)
	if err != nil {
		return nil, "", fmt.Errorf("recognize: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", ErrEmptyTranscript
	}
	wav, err = rl.Spk.Speak(ctx, text)
	if err != nil {
		return nil, text, fmt.Errorf("speak: %w", err)
	}
	return wav, text, nil
}

// Handle answers one message with base64 encoded wav bytes. A message that cannot
// be answered is logged and gets an empty reply, leaving the connection open.
func (rl *Relay) Handle(ctx context.Context, msg []byte) string {
	wav, text, err := rl.Reply(ctx, msg)
	if err != nil {
		if errors.Is(err, ErrEmptyTranscript) {
			rl.Log.Warn("nothing recognized", "bytes", len(msg))
		} else {
			rl.Log.Error("reply failed", "bytes", len(msg), "err", err)
		}
		return ""
	}
	rl.Log.Info("reply", "text", text, "bytes", len(wav))
	return base64.StdEncoding.EncodeToString(wav)
}
