package trm

import (
	"math"
	"testing"
)

func TestFormantHarmonics(t *testing.T) {
	for _, s := range DefaultVowels().Symbols() {
		fm := DefaultVowels()[s].Formants(SoundSpeedCm)
		if fm[1] != 3*fm[0] {
			t.Errorf("%c: f2 = %v, want exactly 3*f1 = %v", s, fm[1], 3*fm[0])
		}
		if fm[2] != 5*fm[0] {
			t.Errorf("%c: f3 = %v, want exactly 5*f1 = %v", s, fm[2], 5*fm[0])
		}
		if !(fm[0] > 0 && fm[0] < fm[1] && fm[1] < fm[2]) {
			t.Errorf("%c: formants not positive and increasing: %v", s, fm)
		}
	}
}

func TestFormantsOfA(t *testing.T) {
	md := NewModel(DefaultVowels(), SoundSpeedCm)
	fm, ok := md.Formants('A')
	if !ok {
		t.Fatal("A is not a vowel")
	}
	want := Formants{514.7, 1544.1, 2573.5}
	for i := range want {
		if math.Abs(fm[i]-want[i]) > 0.1 {
			t.Errorf("f%d = %.2f, want %.1f", i+1, fm[i], want[i])
		}
	}
}

func TestModelRejectsNonVowels(t *testing.T) {
	md := NewModel(DefaultVowels(), SoundSpeedCm)
	for _, ph := range []rune{'B', ' ', 'Y', 'a'} {
		if _, ok := md.Formants(ph); ok {
			t.Errorf("%q should not have formants", ph)
		}
		if md.IsVowel(ph) {
			t.Errorf("%q classified as vowel", ph)
		}
	}
}

func TestVoiceScaling(t *testing.T) {
	tests := []struct {
		name  string
		voice string
		scale float64
	}{
		{name: "neutral", voice: "", scale: 1},
		{name: "male", voice: "male", scale: 1},
		{name: "female", voice: "Female", scale: 15.0 / 17.5},
		{name: "small child", voice: "child-small", scale: 10.0 / 17.5},
		{name: "baby", voice: "baby", scale: 7.5 / 17.5},
	}
	base := NewModel(DefaultVowels(), SoundSpeedCm)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ag, err := ParseAgeGender(tt.voice)
			if err != nil {
				t.Fatalf("ParseAgeGender: %v", err)
			}
			if math.Abs(ag.Scale()-tt.scale) > 1e-12 {
				t.Fatalf("scale = %v, want %v", ag.Scale(), tt.scale)
			}
			md := NewModel(DefaultVowels().Scaled(ag.Scale()), SoundSpeedCm)
			got, _ := md.Formants('I')
			ref, _ := base.Formants('I')
			if math.Abs(got[0]-ref[0]/tt.scale) > 1e-9 {
				t.Errorf("f1 = %v, want %v", got[0], ref[0]/tt.scale)
			}
		})
	}

	if _, err := ParseAgeGender("robot"); err == nil {
		t.Error("expected error for unknown voice")
	}
}

func TestSpeedOfSound(t *testing.T) {
	if got := SpeedOfSoundCm(0); math.Abs(got-33140) > 1e-9 {
		t.Errorf("SpeedOfSoundCm(0) = %v, want 33140", got)
	}
}

func TestTractValidate(t *testing.T) {
	if err := (Tract{LengthCm: 0, AreaFactor: 1}).Validate(); err == nil {
		t.Error("zero length accepted")
	}
	if err := (Tract{LengthCm: 10, AreaFactor: -1}).Validate(); err == nil {
		t.Error("negative area accepted")
	}
	if err := (Tract{LengthCm: 10, AreaFactor: 1}).Validate(); err != nil {
		t.Errorf("valid tract rejected: %v", err)
	}
}

func TestNoiseSourceDeterministic(t *testing.T) {
	a, b := NewNoiseSource(), NewNoiseSource()
	for i := 0; i < 1000; i++ {
		x, y := a.Uniform(), b.Uniform()
		if x != y {
			t.Fatalf("sample %d differs: %v != %v", i, x, y)
		}
		if x < 0 || x >= 1 {
			t.Fatalf("sample %d out of range: %v", i, x)
		}
	}
	a.Reset()
	first := a.Uniform()
	a.Reset()
	if a.Uniform() != first {
		t.Error("Reset did not rewind the source")
	}
}
