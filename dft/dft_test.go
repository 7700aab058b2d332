package dft

import (
	"math"
	"testing"

	"github.com/emer/etable/etensor"
)

func tone(n, rate int, freqs ...float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		t := float64(i) / float64(rate)
		for j, f := range freqs {
			x[i] += math.Sin(2*math.Pi*f*t) / float64(j+1)
		}
	}
	return x
}

func TestPeaksFindTones(t *testing.T) {
	const rate = 8000
	var dft Params
	dft.Defaults()
	dft.Initialize(2000)
	dft.Input(tone(2000, rate, 500, 1500, 2500))

	var power, logPower etensor.Float32
	dft.Power(&power, &logPower)
	if power.Len() != 1001 {
		t.Fatalf("power has %d bins, want 1001", power.Len())
	}
	if logPower.Len() != power.Len() {
		t.Fatalf("log power has %d bins", logPower.Len())
	}

	pks := dft.Peaks(&power, rate, 3)
	if len(pks) != 3 {
		t.Fatalf("got %d peaks, want 3", len(pks))
	}
	want := []float64{500, 1500, 2500}
	for i, w := range want {
		if math.Abs(pks[i].Freq-w) > 4 {
			t.Errorf("peak %d at %v Hz, want %v", i, pks[i].Freq, w)
		}
	}
}

func TestLogPowerFloor(t *testing.T) {
	var dft Params
	dft.Defaults()
	dft.Initialize(64)
	dft.Input(make([]float64, 64))
	var power, logPower etensor.Float32
	dft.Power(&power, &logPower)
	for k := 0; k < logPower.Len(); k++ {
		if v := logPower.FloatVal1D(k); v != -100 {
			t.Fatalf("bin %d log power = %v, want floor -100", k, v)
		}
	}
	if pks := dft.Peaks(&power, 8000, 3); len(pks) != 0 {
		t.Errorf("silence has peaks: %v", pks)
	}
}

func TestFrames(t *testing.T) {
	const rate = 8000
	x := append(tone(800, rate, 1000), tone(500, rate, 2000)...)
	frames := Frames(x, rate, 800, 1)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[1].Start != 100 {
		t.Errorf("second frame starts at %v ms, want 100", frames[1].Start)
	}
	if math.Abs(frames[0].Peaks[0].Freq-1000) > 10 {
		t.Errorf("frame 0 peak %v, want 1000", frames[0].Peaks[0].Freq)
	}
	if math.Abs(frames[1].Peaks[0].Freq-2000) > 10 {
		t.Errorf("frame 1 peak %v, want 2000", frames[1].Peaks[0].Freq)
	}
}
