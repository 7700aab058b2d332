package textparse

import (
	"reflect"
	"testing"
)

func TestPhonemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []rune
	}{
		{name: "empty", text: "", want: nil},
		{name: "spaced vowels", text: "A A", want: []rune{'A', Pause, 'A'}},
		{name: "lowercase", text: "daisy", want: []rune("DAISY")},
		{name: "comma is a pause", text: "a,b", want: []rune{'A', Pause, 'B'}},
		{name: "digits and punctuation dropped", text: "Hi! 42?", want: []rune{'H', 'I', Pause}},
		{name: "raw newline dropped", text: "a\nb", want: []rune{'A', 'B'}},
		{name: "apostrophe dropped", text: "won't", want: []rune("WONT")},
		{name: "other scripts are letters", text: "デイ", want: []rune("デイ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Phonemes(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Phonemes(%q) = %q, want %q", tt.text, string(got), string(tt.want))
			}
		})
	}
}

func TestLyricsNewlinesBecomePauses(t *testing.T) {
	got := Phonemes(Lyrics("\nDaisy Bell,\r\nI\n"))
	want := []rune(" DAISY BELL  I ")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", string(got), string(want))
	}
}
