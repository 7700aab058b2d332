package mel

import (
	"math"
	"testing"

	"github.com/emer/etable/etensor"

	"github.com/emer/desy/dft"
)

func TestMelRoundTrip(t *testing.T) {
	for _, hz := range []float64{0, 120, 1000, 3999} {
		if got := MelToFreq(FreqToMel(hz)); math.Abs(got-hz) > 1e-9 {
			t.Errorf("MelToFreq(FreqToMel(%v)) = %v", hz, got)
		}
	}
	if m := FreqToMel(1000); math.Abs(m-1000) > 1 {
		t.Errorf("1000 Hz = %v mel, want about 1000", m)
	}
}

func TestFilterBankPeaksAtTone(t *testing.T) {
	const rate, n = 8000, 2000
	var fb FilterBank
	fb.Defaults()
	fb.InitFilters(n, rate)
	if fb.HzPts[len(fb.HzPts)-1] > 4000+1e-9 {
		t.Fatalf("top edge %v past nyquist", fb.HzPts[len(fb.HzPts)-1])
	}

	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / rate)
	}
	var d dft.Params
	d.Defaults()
	d.Initialize(n)
	d.Input(x)
	var power, bands etensor.Float32
	d.Power(&power, nil)
	fb.FilterDft(&power, &bands)
	if bands.Len() != fb.NFilters {
		t.Fatalf("%d bands, want %d", bands.Len(), fb.NFilters)
	}

	best := 0
	for f := 1; f < bands.Len(); f++ {
		if bands.FloatVal1D(f) > bands.FloatVal1D(best) {
			best = f
		}
	}
	if lo, hi := fb.HzPts[best], fb.HzPts[best+2]; 1000 < lo || 1000 > hi {
		t.Errorf("loudest band %d spans %.0f..%.0f Hz, want it to cover 1000", best, lo, hi)
	}
}
