// Copyright (c) 2025, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/mattn/go-shellwords"
)

// Recognizer turns recorded audio into text
type Recognizer interface {
	Recognize(ctx context.Context, audio []byte) (string, error)
}

// NewRecognizer returns the recognizer for mode: "mock" or "exec"
func NewRecognizer(mode, command string) (Recognizer, error) {
	switch mode {
	case "", "mock":
		return &MockRecognizer{}, nil
	case "exec":
		return NewExecRecognizer(command)
	}
	return nil, fmt.Errorf("unknown recognizer mode %q", mode)
}

// MockRecognizer returns Text for any audio. With no Text it describes the audio
// length instead.
type MockRecognizer struct {
	Text string
	Err  error
}

func (mr *MockRecognizer) Recognize(_ context.Context, audio []byte) (string, error) {
	if mr.Err != nil {
		return "", mr.Err
	}
	if mr.Text != "" {
		return mr.Text, nil
	}
	return fmt.Sprintf("heard %d bytes", len(audio)), nil
}

// ExecRecognizer runs an external speech recognizer per message. The audio is
// written to a temporary wav file passed as --audio and the command must print
// {"text": "..."} on stdout.
type ExecRecognizer struct {
	cmd []string
	mu  sync.Mutex
}

type execResult struct {
	Text string `json:"text"`
}

// NewExecRecognizer parses command with shell quoting rules
func NewExecRecognizer(command string) (*ExecRecognizer, error) {
	args, err := shellwords.NewParser().Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse stt command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("stt command is empty")
	}
	return &ExecRecognizer{cmd: args}, nil
}

func (er *ExecRecognizer) Recognize(ctx context.Context, audio []byte) (string, error) {
	er.mu.Lock()
	defer er.mu.Unlock()

	file, err := os.CreateTemp("", "desy_stt_*.wav")
	if err != nil {
		return "", fmt.Errorf("temp file: %w", err)
	}
	defer os.Remove(file.Name())
	_, err = file.Write(audio)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}

	args := append(append([]string{}, er.cmd[1:]...), "--audio", file.Name())
	command := exec.CommandContext(ctx, er.cmd[0], args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return "", fmt.Errorf("stt command failed: %w: %s", err, stderr.String())
	}

	var resp execResult
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return "", fmt.Errorf("decode stt response: %w", err)
	}
	return resp.Text, nil
}
