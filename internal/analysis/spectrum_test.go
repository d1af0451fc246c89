package analysis

import (
	"math"
	"testing"
)

func TestDominantPeriodSine(t *testing.T) {
	// 4 Hz sine sampled at 128 Hz for 2 seconds.
	dt := 1.0 / 128
	data := make([]float64, 256)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * 4 * float64(i) * dt)
	}

	period := DominantPeriod(data, dt)
	want := 0.25
	if math.Abs(period-want) > 0.02 {
		t.Errorf("period %f, want %f", period, want)
	}
}

func TestPowerSpectrumPadding(t *testing.T) {
	// Non-power-of-two input is zero-padded, not rejected.
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i % 7)
	}

	ps := PowerSpectrum(data)
	if len(ps) != 64 {
		t.Errorf("spectrum length %d, want 64", len(ps))
	}
}

func TestDominantPeriodFlat(t *testing.T) {
	data := make([]float64, 64)
	if period := DominantPeriod(data, 0.01); period != 0 {
		t.Errorf("period %f for flat signal, want 0", period)
	}
}
