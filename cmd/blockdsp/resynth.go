package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-blockdsp/audiofile"
	"github.com/cwbudde/algo-blockdsp/dsp/segment"
	"github.com/cwbudde/algo-blockdsp/dsp/stream"
	"github.com/cwbudde/algo-blockdsp/internal/config"
	"github.com/cwbudde/algo-blockdsp/internal/logging"
	"github.com/cwbudde/algo-blockdsp/stats/level"
)

var errNoSamples = errors.New("input has no samples")

func newResynthCmd(a *app) *cobra.Command {
	var (
		overlap    float64
		windowSize int
		channel    int
		bitDepth   int
		samples    int
	)

	cmd := &cobra.Command{
		Use:   "resynth <input> <output.wav>",
		Short: "Split one channel into overlapping windows and reconstruct it",
		Long: `resynth loads one channel of the input into overlapping windows and
writes the crossfaded reconstruction as a mono WAV file. Without --samples
the whole file is read first and the reconstruction error is reported;
with --samples the windows are filled straight from the decoder.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if changed(cmd, "overlap") {
				a.cfg.Segment.Overlap = overlap
			}
			if changed(cmd, "window-size") {
				a.cfg.Segment.WindowSize = windowSize
			}
			if changed(cmd, "channel") {
				a.cfg.Segment.Channel = channel
			}
			if changed(cmd, "bit-depth") {
				a.cfg.Output.BitDepth = bitDepth
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.runResynth(cmd.OutOrStdout(), args[0], args[1], samples)
		},
	}

	d := config.Default()
	f := cmd.Flags()
	f.Float64VarP(&overlap, "overlap", "o", d.Segment.Overlap, "overlap factor in [0, 1)")
	f.IntVarP(&windowSize, "window-size", "w", d.Segment.WindowSize, "window length in samples")
	f.IntVar(&channel, "channel", d.Segment.Channel, "input channel to process")
	f.IntVar(&bitDepth, "bit-depth", d.Output.BitDepth, "output bit depth (8, 16, 24, 32)")
	f.IntVarP(&samples, "samples", "n", 0, "number of samples to process (0 reads the whole file)")

	return cmd
}

func (a *app) runResynth(out io.Writer, inPath, outPath string, samples int) error {
	sc := a.cfg.Segment

	src, err := audiofile.Open(inPath)
	if err != nil {
		return err
	}
	defer src.Close()

	ola, err := segment.New[float64](sc.Overlap)
	if err != nil {
		return err
	}

	var (
		input stream.Source[float64] = src
		count                        = samples
		ref   []float64
	)
	if samples <= 0 {
		all, err := audiofile.ReadAll(src)
		if err != nil {
			return err
		}
		if all.Rows() == 0 {
			return fmt.Errorf("%s: %w", inPath, errNoSamples)
		}
		cols := make([][]float64, all.Cols())
		for c := range cols {
			cols[c] = all.Col(c)
		}
		if sc.Channel < len(cols) {
			ref = cols[sc.Channel]
		}
		input = stream.NewSliceSource(cols...)
		count = all.Rows()
	}

	log := logging.Operation(a.log, "resynth", logrus.Fields{
		"input":       inPath,
		"channel":     sc.Channel,
		"overlap":     sc.Overlap,
		"window_size": sc.WindowSize,
	})

	shortfall, err := ola.LoadData(input, sc.WindowSize, count, sc.Channel)
	if err != nil {
		return err
	}
	log = log.WithFields(logrus.Fields{
		"windows":     ola.WindowCount(),
		"overlap_len": ola.OverlapLen(),
		"step":        ola.Step(),
	})
	if shortfall > 0 {
		log.WithField("shortfall", shortfall).Warn("input ended early, last window zero padded")
	}

	var sink stream.SliceSink[float64]
	if err := ola.UnloadData(&sink); err != nil {
		return err
	}
	got := sink.Samples[:min(count, len(sink.Samples))]

	w, err := audiofile.CreateWAV(outPath, src.SampleRate(), a.cfg.Output.BitDepth, 1)
	if err != nil {
		return err
	}
	_, err = w.Write(got)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	lv := level.Calculate(got)
	log.WithFields(logrus.Fields{
		"samples": len(got),
		"peak_db": lv.Peak_dB,
	}).Info("resynthesized")

	if _, err := fmt.Fprintf(out, "%s: %d samples from %d windows (overlap %d, step %d), peak %.2f dBFS\n",
		outPath, len(got), ola.WindowCount(), ola.OverlapLen(), ola.Step(), lv.Peak_dB); err != nil {
		return err
	}
	if ref == nil {
		return nil
	}

	diff, err := level.Compare(got, ref)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "reconstruction error: max %.3g, snr %.1f dB\n", diff.MaxAbs, diff.SNR_dB)
	return err
}
