package voicefx

import (
	"math"
	"testing"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/floats"

	"github.com/emer/desy/dft"
)

const rate = 8000

func tone(n int, hz float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * math.Sin(2*math.Pi*hz*float64(i)/rate)
	}
	return x
}

func dominant(t *testing.T, x []float64) float64 {
	t.Helper()
	var d dft.Params
	d.Defaults()
	d.Initialize(len(x))
	d.Input(x)
	var power etensor.Float32
	d.Power(&power, nil)
	pks := d.Peaks(&power, rate, 1)
	if len(pks) == 0 {
		t.Fatal("no spectral peak")
	}
	return pks[0].Freq
}

func TestStagesPreserveLength(t *testing.T) {
	var fx Params
	fx.Defaults()
	for _, n := range []int{0, 1, 7, 399, 4000} {
		x := tone(n, 440)
		stages := []struct {
			name string
			y    []float64
		}{
			{"pitch", PitchShift(x, -5, 400)},
			{"reverb", Reverb(x, fx.Reverb.Response(rate))},
			{"echo", Echo(x, 560, 0.25)},
			{"lowpass", LowPass(x, 5)},
			{"normalize", Normalize(x)},
			{"chain", fx.Apply(x, rate)},
		}
		for _, st := range stages {
			if len(st.y) != n {
				t.Errorf("%s: %d samples in, %d out", st.name, n, len(st.y))
			}
		}
	}
}

func TestEcho(t *testing.T) {
	x := []float64{1, 0, 0, 2, 0, 0}
	got := Echo(x, 2, 0.25)
	want := []float64{1, 0, 0.25, 2, 0, 0.5}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Errorf("Echo = %v, want %v", got, want)
	}
	if x[2] != 0 {
		t.Error("Echo modified its input")
	}
	if got := Echo(x, 10, 0.25); !floats.Equal(got, x) {
		t.Errorf("delay past the end changed the signal: %v", got)
	}
}

func TestLowPassStep(t *testing.T) {
	x := []float64{1, 1, 1, 1, 1, 1, 1}
	got := LowPass(x, 5)
	want := []float64{0.2, 0.4, 0.6, 0.8, 1, 1, 1}
	if !floats.EqualApprox(got, want, 1e-12) {
		t.Errorf("LowPass = %v, want %v", got, want)
	}
}

func TestReverbImpulse(t *testing.T) {
	var fx Params
	fx.Defaults()
	ir := fx.Reverb.Response(rate)
	if len(ir) != 400 {
		t.Fatalf("response has %d samples, want 400", len(ir))
	}
	x := make([]float64, 1000)
	x[0] = 1
	y := Reverb(x, ir)
	taps := map[int]float64{0: 0.6, 120: 0.3, 240: 0.1}
	for i, v := range y {
		want := taps[i]
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestReverbTruncates(t *testing.T) {
	x := []float64{1, 1, 1}
	y := Reverb(x, []float64{1, 1})
	want := []float64{1, 2, 2}
	if !floats.EqualApprox(y, want, 1e-9) {
		t.Errorf("Reverb = %v, want %v", y, want)
	}
}

func TestNormalize(t *testing.T) {
	y := Normalize([]float64{0.1, -0.4, 0.2})
	if !floats.EqualApprox(y, []float64{0.25, -1, 0.5}, 1e-12) {
		t.Errorf("Normalize = %v", y)
	}
	sil := Normalize(make([]float64, 5))
	for _, v := range sil {
		if v != 0 {
			t.Fatalf("silence changed: %v", sil)
		}
	}
}

func TestPitchShiftLowersTone(t *testing.T) {
	x := tone(8000, 1000)
	y := PitchShift(x, -5, 400)
	want := 1000 * math.Pow(2, -5.0/12)
	got := dominant(t, y[1000:7000])
	if math.Abs(got-want) > 25 {
		t.Errorf("shifted tone peaks at %.1f Hz, want near %.1f", got, want)
	}
	if got := PitchShift(x, 0, 400); !floats.Equal(got, x) {
		t.Error("zero shift changed the signal")
	}
}

func TestResample(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := Resample(x, 0.5)
	want := []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3}
	if !floats.EqualApprox(y, want, 1e-12) {
		t.Errorf("Resample = %v, want %v", y, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(fx *Params)
		ok   bool
	}{
		{"defaults", func(fx *Params) {}, true},
		{"bad window", func(fx *Params) { fx.Pitch.WinSec = 0 }, false},
		{"bad window off", func(fx *Params) { fx.Pitch.WinSec = 0; fx.Pitch.On = false }, true},
		{"tap outside", func(fx *Params) { fx.Reverb.Taps = append(fx.Reverb.Taps, Tap{0.06, 0.1}) }, false},
		{"no echo delay", func(fx *Params) { fx.Echo.DelaySec = 0 }, false},
		{"no taps", func(fx *Params) { fx.LowPass.Taps = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fx Params
			fx.Defaults()
			tt.mod(&fx)
			if err := fx.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok %v", err, tt.ok)
			}
		})
	}
}

func TestChainNormalizes(t *testing.T) {
	var fx Params
	fx.Defaults()
	y := fx.Apply(tone(4000, 300), rate)
	peak := math.Max(math.Abs(floats.Max(y)), math.Abs(floats.Min(y)))
	if math.Abs(peak-1) > 1e-12 {
		t.Errorf("chain peak = %v, want 1", peak)
	}
}
