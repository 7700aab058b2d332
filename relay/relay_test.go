package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"golang.org/x/net/websocket"

	"github.com/emer/desy/sound"
	"github.com/emer/desy/synth"
)

type stubSpeaker struct {
	got string
	err error
}

func (ss *stubSpeaker) Speak(_ context.Context, text string) ([]byte, error) {
	ss.got = text
	return []byte("wav:" + text), ss.err
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		rec    Recognizer
		spkErr error
		want   string
	}{
		{"sung reply", &MockRecognizer{Text: " hello "}, nil, base64.StdEncoding.EncodeToString([]byte("wav:hello"))},
		{"empty transcript", &MockRecognizer{Text: "   "}, nil, ""},
		{"recognizer fails", &MockRecognizer{Err: errors.New("no model")}, nil, ""},
		{"speaker fails", &MockRecognizer{Text: "hi"}, errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rec, &stubSpeaker{err: tt.spkErr}, quietLogger())
			if got := rl.Handle(context.Background(), []byte{1, 2, 3}); got != tt.want {
				t.Errorf("Handle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplyEmptyTranscript(t *testing.T) {
	rl := New(&MockRecognizer{Text: " "}, &stubSpeaker{}, quietLogger())
	_, _, err := rl.Reply(context.Background(), nil)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Errorf("Reply error = %v, want ErrEmptyTranscript", err)
	}
}

func TestMockRecognizerDefault(t *testing.T) {
	text, err := (&MockRecognizer{}).Recognize(context.Background(), make([]byte, 12))
	if err != nil || text != "heard 12 bytes" {
		t.Errorf("Recognize = %q, %v", text, err)
	}
}

func TestNewRecognizer(t *testing.T) {
	if _, err := NewRecognizer("mock", ""); err != nil {
		t.Errorf("mock: %v", err)
	}
	if _, err := NewRecognizer("exec", ""); err == nil {
		t.Error("exec with no command should fail")
	}
	if _, err := NewRecognizer("exec", `stt "unterminated`); err == nil {
		t.Error("unbalanced quotes should fail")
	}
	if _, err := NewRecognizer("cloud", ""); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestExecRecognizer(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a posix shell")
	}
	script := filepath.Join(t.TempDir(), "stt.sh")
	body := "#!/bin/sh\nn=$(wc -c < \"$3\" | tr -d ' ')\nprintf '{\"text\": \"%s bytes %s\"}' \"$1\" \"$n\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
	er, err := NewExecRecognizer(script + " 'quoted arg'")
	if err != nil {
		t.Fatalf("NewExecRecognizer: %v", err)
	}
	text, err := er.Recognize(context.Background(), []byte("RIFF0"))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "quoted arg bytes 5" {
		t.Errorf("Recognize = %q", text)
	}

	bad, _ := NewExecRecognizer("false")
	if _, err := bad.Recognize(context.Background(), nil); err == nil {
		t.Error("failing command should be an error")
	}
}

func TestSingingSpeaker(t *testing.T) {
	ss := NewSingingSpeaker(synth.Default(synth.NewRandSource(1)))
	wav, err := ss.Speak(context.Background(), "A A")
	if err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if !bytes.HasPrefix(wav, []byte("RIFF")) {
		t.Fatalf("reply is not a wav file: % x", wav[:8])
	}
	var snd sound.Wave
	if err := snd.Decode(bytes.NewReader(wav)); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snd.NumFrames() != 5200 {
		t.Errorf("%d frames, want 5200", snd.NumFrames())
	}
}

func TestWebSocketRoundTrip(t *testing.T) {
	rl := New(&MockRecognizer{Text: "daisy"}, &stubSpeaker{}, quietLogger())
	srv := httptest.NewServer(rl.Mux(""))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	ws, err := websocket.Dial(url, "", srv.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ws.Close()

	for i := 0; i < 2; i++ {
		if err := websocket.Message.Send(ws, []byte{0, 1, 2}); err != nil {
			t.Fatalf("Send: %v", err)
		}
		var reply string
		if err := websocket.Message.Receive(ws, &reply); err != nil {
			t.Fatalf("Receive: %v", err)
		}
		got, err := base64.StdEncoding.DecodeString(reply)
		if err != nil {
			t.Fatalf("reply is not base64: %v", err)
		}
		if string(got) != "wav:daisy" {
			t.Errorf("reply %d = %q", i, got)
		}
	}
}
