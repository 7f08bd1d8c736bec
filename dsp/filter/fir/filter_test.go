package fir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/internal/testutil"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func direct(t *testing.T, cols ...[]float64) *Direct[float64] {
	t.Helper()
	d, err := NewDirect(mustColumns(t, cols...))
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func filterColumn(t *testing.T, d *Direct[float64], x []float64) []float64 {
	t.Helper()
	in := mustColumns(t, x)
	out := core.NewMatrix[float64](len(x), 1)
	if err := d.Filter(in, out); err != nil {
		t.Fatal(err)
	}
	return out.Col(0)
}

func TestDirectImpulse(t *testing.T) {
	// Impulse response of FIR should equal the coefficients.
	coeffs := []float64{0.25, 0.5, 0.25}
	d := direct(t, coeffs)
	y := filterColumn(t, d, testutil.Impulse(8, 0))
	testutil.RequireSliceNearlyEqual(t, y, []float64{0.25, 0.5, 0.25, 0, 0, 0, 0, 0}, eps)
}

func TestDirectMovingAverage(t *testing.T) {
	d := direct(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	y := filterColumn(t, d, testutil.Ones(5))
	testutil.RequireSliceNearlyEqual(t, y, []float64{1.0 / 3, 2.0 / 3, 1, 1, 1}, eps)
}

func TestDirectDifferentiator(t *testing.T) {
	// y[n] = x[n] - x[n-1], with x[-1] = 0
	d := direct(t, []float64{1, -1})
	y := filterColumn(t, d, []float64{0, 1, 3, 6, 10})
	testutil.RequireSliceNearlyEqual(t, y, []float64{0, 1, 2, 3, 4}, eps)
}

func TestDirectBlocksMatchWhole(t *testing.T) {
	coeffs := testutil.DeterministicNoise(1, 1, 7)
	x := testutil.DeterministicNoise(2, 1, 40)
	whole := filterColumn(t, direct(t, coeffs), x)

	d := direct(t, coeffs)
	var pieces []float64
	for _, n := range []int{3, 10, 1, 26} {
		pieces = append(pieces, filterColumn(t, d, x[:n])...)
		x = x[n:]
	}
	testutil.RequireSliceNearlyEqual(t, pieces, whole, eps)
}

func TestDirectMultiChannel(t *testing.T) {
	d := direct(t, []float64{1, 0}, []float64{0, 2})
	in := mustColumns(t, []float64{1, 2, 3}, []float64{1, 2, 3})
	out := core.NewMatrix[float64](3, 2)
	if err := d.Filter(in, out); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Col(0), []float64{1, 2, 3}, eps)
	testutil.RequireSliceNearlyEqual(t, out.Col(1), []float64{0, 2, 4}, eps)
}

func TestDirectReset(t *testing.T) {
	d := direct(t, []float64{0.25, 0.5, 0.25})
	filterColumn(t, d, []float64{1, 0.5})
	d.Reset()
	y := filterColumn(t, d, testutil.Impulse(3, 0))
	testutil.RequireSliceNearlyEqual(t, y, []float64{0.25, 0.5, 0.25}, eps)
}

func TestDirectErrors(t *testing.T) {
	if _, err := NewDirect(core.NewMatrix[float64](0, 2)); !errors.Is(err, ErrEmptyFilter) {
		t.Fatalf("NewDirect: err=%v, want ErrEmptyFilter", err)
	}
	d := direct(t, []float64{1, 2})
	if err := d.Filter(core.NewMatrix[float64](4, 2), core.NewMatrix[float64](4, 2)); !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("err=%v, want ErrChannelMismatch", err)
	}
	if err := d.Filter(core.NewMatrix[float64](4, 1), core.NewMatrix[float64](3, 1)); !errors.Is(err, ErrBlockSizeMismatch) {
		t.Fatalf("err=%v, want ErrBlockSizeMismatch", err)
	}
}

func TestDirectCopiesTaps(t *testing.T) {
	h := mustColumns(t, []float64{0.25, 0.5})
	d, err := NewDirect(h)
	if err != nil {
		t.Fatal(err)
	}
	h.Set(0, 0, 999)
	if d.taps.At(0, 0) == 999 {
		t.Error("NewDirect did not copy the taps")
	}
	if d.TapCount() != 2 || d.ChannelCount() != 1 {
		t.Fatalf("TapCount=%d ChannelCount=%d", d.TapCount(), d.ChannelCount())
	}
}

func TestResponseDCGain(t *testing.T) {
	// DC gain of FIR = sum of coefficients.
	d := direct(t, []float64{0.25, 0.5, 0.25}, []float64{1, -1, 0})
	if got := cmplx.Abs(d.Response(0, 0, 48000)); !almostEqual(got, 1, eps) {
		t.Errorf("DC gain: got %v, want 1", got)
	}
	if got := cmplx.Abs(d.Response(1, 0, 48000)); !almostEqual(got, 0, eps) {
		t.Errorf("differentiator DC gain: got %v, want 0", got)
	}
}

func TestMagnitudeDBMatchesResponse(t *testing.T) {
	d := direct(t, []float64{0.25, 0.5, 0.25})
	sr := 48000.0
	for _, freq := range []float64{100, 1000, 10000} {
		want := 20 * math.Log10(cmplx.Abs(d.Response(0, freq, sr)))
		if got := d.MagnitudeDB(0, freq, sr); !almostEqual(got, want, 1e-10) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, ref=%.15f", freq, got, want)
		}
	}
}

func TestDirectFloat32(t *testing.T) {
	h, err := core.MatrixFromColumns([]float32{0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	d, err := NewDirect(h)
	if err != nil {
		t.Fatal(err)
	}
	in, _ := core.MatrixFromColumns([]float32{2, 4, 6})
	if err := d.Filter(in, in); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, testutil.Float64(in.Col(0)), []float64{1, 3, 5}, 1e-6)
}
