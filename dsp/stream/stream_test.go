package stream

import (
	"errors"
	"io"
	"testing"
)

func TestSliceSourceRead(t *testing.T) {
	src := NewSliceSource([]float64{1, 2, 3, 4, 5}, []float64{6, 7, 8, 9, 10, 11})
	if got := src.Channels(); got != 2 {
		t.Fatalf("Channels=%d, want 2", got)
	}
	if got := src.Remaining(); got != 5 {
		t.Fatalf("Remaining=%d, want 5 (shortest channel)", got)
	}

	dst := [][]float64{make([]float64, 3), make([]float64, 3)}
	n, err := src.Read(dst)
	if err != nil || n != 3 {
		t.Fatalf("Read: n=%d err=%v", n, err)
	}
	if dst[0][2] != 3 || dst[1][0] != 6 {
		t.Fatalf("unexpected data: %v", dst)
	}

	n, err = src.Read(dst)
	if err != nil || n != 2 {
		t.Fatalf("second Read: n=%d err=%v, want 2 nil", n, err)
	}
	if dst[0][0] != 4 || dst[1][1] != 10 {
		t.Fatalf("unexpected data: %v", dst)
	}

	n, err = src.Read(dst)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("Read at end: n=%d err=%v, want 0 EOF", n, err)
	}
}

func TestSliceSourceChannelMismatch(t *testing.T) {
	src := NewSliceSource([]float32{1, 2})
	_, err := src.Read([][]float32{make([]float32, 1), make([]float32, 1)})
	if !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("err=%v, want ErrChannelMismatch", err)
	}
}

func TestReadFull(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		maxRead int
		want    int
		wantErr error
	}{
		{name: "exact", data: []float64{1, 2, 3, 4}, want: 4},
		{name: "short reads are joined", data: []float64{1, 2, 3, 4, 5}, maxRead: 1, want: 4},
		{name: "partial", data: []float64{1, 2}, maxRead: 1, want: 2, wantErr: io.ErrUnexpectedEOF},
		{name: "empty", data: nil, want: 0, wantErr: io.EOF},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := NewSliceSource(tc.data)
			src.MaxRead = tc.maxRead
			dst := [][]float64{make([]float64, 4)}
			n, err := ReadFull[float64](src, dst)
			if n != tc.want {
				t.Fatalf("n=%d, want %d", n, tc.want)
			}
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err=%v, want %v", err, tc.wantErr)
			}
			for i := 0; i < n; i++ {
				if dst[0][i] != tc.data[i] {
					t.Fatalf("dst[%d]=%v, want %v", i, dst[0][i], tc.data[i])
				}
			}
		})
	}
}

type stuckSource struct{}

func (stuckSource) Channels() int                 { return 1 }
func (stuckSource) Read([][]float64) (int, error) { return 0, nil }

func TestReadFullNoProgress(t *testing.T) {
	_, err := ReadFull[float64](stuckSource{}, [][]float64{make([]float64, 2)})
	if !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("err=%v, want io.ErrNoProgress", err)
	}
}

func TestReadFullChannelMismatch(t *testing.T) {
	_, err := ReadFull[float64](stuckSource{}, nil)
	if !errors.Is(err, ErrChannelMismatch) {
		t.Fatalf("err=%v, want ErrChannelMismatch", err)
	}
}

func TestSliceSinkLimit(t *testing.T) {
	sink := &SliceSink[float64]{Limit: 3}
	if n, err := sink.Write([]float64{1, 2}); n != 2 || err != nil {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	n, err := sink.Write([]float64{3, 4})
	if n != 1 || !errors.Is(err, ErrSinkFull) {
		t.Fatalf("Write over limit: n=%d err=%v", n, err)
	}
	if len(sink.Samples) != 3 || sink.Samples[2] != 3 {
		t.Fatalf("Samples=%v", sink.Samples)
	}
}
