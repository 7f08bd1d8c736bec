package level_test

import (
	"fmt"

	"github.com/cwbudde/algo-blockdsp/stats/level"
)

func ExampleCalculate() {
	l := level.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f peak=%.1f crest=%.1f\n", l.RMS, l.Peak, l.CrestFactor)

	// Output:
	// rms=1.0 peak=1.0 crest=1.0
}

func ExampleMeter() {
	var m level.Meter[float32]
	m.Update([]float32{0.5, -0.5})
	m.Update([]float32{0.5, -0.5})
	l := m.Result()
	fmt.Printf("len=%d dc=%.1f rms=%.1f\n", l.Length, l.DC, l.RMS)

	// Output:
	// len=4 dc=0.0 rms=0.5
}
