package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// 48 samples are exactly one period at 1 kHz / 48 kHz
	if math.Abs(s[0]) > 1e-15 || math.Abs(s[12]-1) > 1e-12 || math.Abs(s[36]+1) > 1e-12 {
		t.Fatalf("unexpected phase: s[0]=%v s[12]=%v s[36]=%v", s[0], s[12], s[36])
	}

	s32 := Sine[float32](1000, 48000, 1, 48)
	for i := range s {
		if math.Abs(float64(s32[i])-s[i]) > 1e-7 {
			t.Fatalf("float32 sine differs at %d: %v vs %v", i, s32[i], s[i])
		}
	}
}

func TestNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 256)
	b := Noise[float64](42, 0.5, 256)
	c := DeterministicNoise(43, 0.5, 256)

	differs := false
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed differs at %d", i)
		}
		if a[i] < -0.5 || a[i] >= 0.5 {
			t.Fatalf("a[%d] = %v outside [-0.5, 0.5)", i, a[i])
		}
		differs = differs || a[i] != c[i]
	}
	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestFixedSignals(t *testing.T) {
	tests := []struct {
		name string
		got  []float64
		want []float64
	}{
		{"impulse", Impulse(5, 3), []float64{0, 0, 0, 1, 0}},
		{"impulse out of range", Impulse(3, 10), []float64{0, 0, 0}},
		{"impulse negative", Impulse(2, -1), []float64{0, 0}},
		{"dc", DC(0.5, 3), []float64{0.5, 0.5, 0.5}},
		{"ones", Ones(2), []float64{1, 1}},
		{"ramp", Ramp[float64](4), []float64{0, 1, 2, 3}},
		{"empty", Ones(0), []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RequireSliceNearlyEqual(t, tt.got, tt.want, 0)
		})
	}
}
