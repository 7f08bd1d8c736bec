package segment_test

import (
	"fmt"

	"github.com/cwbudde/algo-blockdsp/dsp/segment"
	"github.com/cwbudde/algo-blockdsp/dsp/stream"
)

func ExampleOverlapAdd() {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	o := segment.NewDefault[float64]()
	if _, err := o.LoadData(stream.NewSliceSource(x), 4, len(x), 0); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(o.WindowCount(), o.Window(1))

	sink := &stream.SliceSink[float64]{}
	if err := o.UnloadData(sink); err != nil {
		fmt.Println(err)
		return
	}
	for _, v := range sink.Samples[:len(x)] {
		fmt.Printf("%.0f ", v)
	}
	fmt.Println()
	// Output:
	// 4 [3 4 5 6]
	// 1 2 3 4 5 6 7 8
}
