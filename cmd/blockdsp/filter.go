package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-blockdsp/audiofile"
	"github.com/cwbudde/algo-blockdsp/dsp/core"
	"github.com/cwbudde/algo-blockdsp/dsp/filter/fir"
	"github.com/cwbudde/algo-blockdsp/dsp/stream"
	"github.com/cwbudde/algo-blockdsp/internal/config"
	"github.com/cwbudde/algo-blockdsp/internal/logging"
	"github.com/cwbudde/algo-blockdsp/stats/level"
)

// blockFilter is satisfied by both the frequency-domain and the direct
// form engines.
type blockFilter interface {
	Filter(input, output *core.Matrix[float64]) error
}

func newFilterCmd(a *app) *cobra.Command {
	var (
		blockSize  int
		tapChannel int
		bitDepth   int
		direct     bool
		pad        bool
		probeHz    float64
	)

	cmd := &cobra.Command{
		Use:   "filter <input> <taps> <output.wav>",
		Short: "Convolve an audio file with an impulse response read from another file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if changed(cmd, "block-size") {
				a.cfg.Filter.BlockSize = blockSize
			}
			if changed(cmd, "tap-channel") {
				a.cfg.Filter.TapChannel = tapChannel
			}
			if changed(cmd, "direct") {
				a.cfg.Filter.Direct = direct
			}
			if changed(cmd, "pad") {
				a.cfg.Filter.PadTaps = pad
			}
			if changed(cmd, "bit-depth") {
				a.cfg.Output.BitDepth = bitDepth
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return a.runFilter(cmd.OutOrStdout(), args[0], args[1], args[2], probeHz)
		},
	}

	d := config.Default()
	f := cmd.Flags()
	f.IntVarP(&blockSize, "block-size", "b", d.Filter.BlockSize, "samples per processing block")
	f.IntVar(&tapChannel, "tap-channel", d.Filter.TapChannel, "channel of the tap file to use (-1 for one channel per input channel)")
	f.IntVar(&bitDepth, "bit-depth", d.Output.BitDepth, "output bit depth (8, 16, 24, 32)")
	f.BoolVar(&direct, "direct", d.Filter.Direct, "use the time-domain direct form instead of the block engine")
	f.BoolVar(&pad, "pad", d.Filter.PadTaps, "zero-extend taps so block filtering equals linear convolution")
	f.Float64Var(&probeHz, "probe", 1000, "frequency in Hz at which the tap gain is logged")

	return cmd
}

func (a *app) runFilter(out io.Writer, inPath, tapsPath, outPath string, probeHz float64) error {
	fc := a.cfg.Filter

	src, err := audiofile.Open(inPath)
	if err != nil {
		return err
	}
	defer src.Close()
	ch := src.Channels()

	taps, err := audiofile.LoadTaps(tapsPath, fc.TapChannel)
	if err != nil {
		return err
	}
	taps, err = matchChannels(taps, ch)
	if err != nil {
		return err
	}

	ref, err := fir.NewDirect(taps)
	if err != nil {
		return fmt.Errorf("taps from %s: %w", tapsPath, err)
	}
	var engine blockFilter = ref
	if !fc.Direct {
		h := taps
		if fc.PadTaps {
			h = fir.PadTaps(taps, fc.BlockSize)
		}
		b := fir.NewBlock()
		if err := b.Init(fc.BlockSize); err != nil {
			return err
		}
		if err := b.LoadTimeDomainCoefficients(h); err != nil {
			return fmt.Errorf("taps from %s: %w", tapsPath, err)
		}
		engine = b
	}

	log := logging.Operation(a.log, "filter", logrus.Fields{
		"input":      inPath,
		"taps":       taps.Rows(),
		"channels":   ch,
		"block_size": fc.BlockSize,
		"direct":     fc.Direct,
	})
	sr := float64(src.SampleRate())
	for c := range ch {
		log.WithFields(logrus.Fields{
			"channel": c,
			"hz":      probeHz,
			"gain_db": ref.MagnitudeDB(c, probeHz, sr),
		}).Debug("tap response")
	}

	w, err := audiofile.CreateWAV(outPath, src.SampleRate(), a.cfg.Output.BitDepth, ch)
	if err != nil {
		return err
	}
	var meter level.Meter[float64]
	frames, blocks, err := processBlocks(src, engine, w, fc.BlockSize, &meter)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	lv := meter.Result()
	log.WithFields(logrus.Fields{
		"frames":  frames,
		"blocks":  blocks,
		"peak_db": lv.Peak_dB,
		"rms_db":  lv.RMS_dB,
	}).Info("filtered")

	_, err = fmt.Fprintf(out, "%s: %d frames x %d channels in %d blocks, peak %.2f dBFS, rms %.2f dBFS\n",
		outPath, frames, ch, blocks, lv.Peak_dB, lv.RMS_dB)
	return err
}

// matchChannels returns taps with one column per input channel. A single
// tap column is shared by all channels.
func matchChannels(taps *core.Matrix[float64], channels int) (*core.Matrix[float64], error) {
	switch taps.Cols() {
	case channels:
		return taps, nil
	case 1:
		cols := make([][]float64, channels)
		for c := range cols {
			cols[c] = taps.Col(0)
		}
		return core.MatrixFromColumns(cols...)
	default:
		return nil, fmt.Errorf("%w: %d tap channels for %d input channels",
			fir.ErrChannelMismatch, taps.Cols(), channels)
	}
}

// processBlocks streams src through f in blocks of blockSize frames. The
// final partial block is zero padded for filtering and trimmed on output, so
// the output has exactly as many frames as the input.
func processBlocks(src stream.Source[float64], f blockFilter, w *audiofile.WAVWriter, blockSize int, meter *level.Meter[float64]) (frames, blocks int, err error) {
	ch := src.Channels()
	in := core.NewMatrix[float64](blockSize, ch)
	out := core.NewMatrix[float64](blockSize, ch)
	views := make([][]float64, ch)
	for c := range views {
		views[c] = in.Col(c)
	}

	for {
		n, err := stream.ReadFull(src, views)
		if errors.Is(err, io.EOF) {
			return frames, blocks, nil
		}
		last := errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !last {
			return frames, blocks, err
		}
		if last {
			for c := range views {
				core.Zero(views[c][n:])
			}
		}

		if err := f.Filter(in, out); err != nil {
			return frames, blocks, err
		}

		block := out
		if n < blockSize {
			cols := make([][]float64, ch)
			for c := range cols {
				cols[c] = out.Col(c)[:n]
			}
			if block, err = core.MatrixFromColumns(cols...); err != nil {
				return frames, blocks, err
			}
		}
		for c := range ch {
			meter.Update(block.Col(c))
		}
		if err := w.WriteFrames(block); err != nil {
			return frames, blocks, err
		}

		frames += n
		blocks++
		if last {
			return frames, blocks, nil
		}
	}
}
