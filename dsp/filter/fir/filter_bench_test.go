package fir

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/internal/testutil"
)

func BenchmarkDirect(b *testing.B) {
	for _, taps := range []int{8, 32, 128, 512} {
		b.Run(fmt.Sprintf("taps=%d", taps), func(b *testing.B) {
			d, err := NewDirect(mustColumns(b, testutil.DC(1.0/float64(taps), taps)))
			if err != nil {
				b.Fatal(err)
			}
			buf := mustColumns(b, testutil.DeterministicNoise(1, 1, 1024))
			b.SetBytes(1024 * 8)
			for b.Loop() {
				if err := d.Filter(buf, buf); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBlock(b *testing.B) {
	for _, tc := range []struct{ taps, block int }{
		{128, 64},
		{512, 256},
		{1024, 256},
		{4096, 1024},
		{3000, 256},
	} {
		b.Run(fmt.Sprintf("taps=%d/block=%d", tc.taps, tc.block), func(b *testing.B) {
			h := PadTaps(mustColumns(b, testutil.DC(1.0/float64(tc.taps), tc.taps)), tc.block)
			f := configured(b, h, tc.block)
			in := mustColumns(b, testutil.DeterministicNoise(1, 1, tc.block))
			out := core.NewMatrix[float64](tc.block, 1)
			b.SetBytes(int64(tc.block) * 8)
			b.ReportAllocs()
			for b.Loop() {
				if err := f.Filter(in, out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
