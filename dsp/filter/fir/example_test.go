package fir_test

import (
	"fmt"

	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/dsp/filter/fir"
)

func ExampleBlockT_Filter() {
	// Differentiator h = [1, -1], zero-extended to four taps.
	h, _ := core.MatrixFromColumns([]float64{1, -1, 0, 0})

	f := fir.NewBlock()
	if err := f.Init(2); err != nil {
		fmt.Println(err)
		return
	}
	if err := f.LoadTimeDomainCoefficients(h); err != nil {
		fmt.Println(err)
		return
	}

	out := core.NewMatrix[float64](2, 1)
	for _, block := range [][]float64{{1, 2}, {3, 4}} {
		in, _ := core.MatrixFromColumns(block)
		if err := f.Filter(in, out); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("%.1f %.1f\n", out.At(0, 0), out.At(1, 0))
	}
	// Output:
	// 1.0 1.0
	// 1.0 1.0
}

func ExampleDirect_Filter() {
	// 3-tap moving average filter.
	h, _ := core.MatrixFromColumns([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	f, err := fir.NewDirect(h)
	if err != nil {
		fmt.Println(err)
		return
	}

	x, _ := core.MatrixFromColumns([]float64{0, 1, 2, 3, 3, 3})
	if err := f.Filter(x, x); err != nil {
		fmt.Println(err)
		return
	}
	for i, y := range x.Col(0) {
		fmt.Printf("y[%d] = %.4f\n", i, y)
	}
	// Output:
	// y[0] = 0.0000
	// y[1] = 0.3333
	// y[2] = 1.0000
	// y[3] = 2.0000
	// y[4] = 2.6667
	// y[5] = 3.0000
}
