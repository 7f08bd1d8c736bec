package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-blockdsp/dsp/segment"
	"github.com/cwbudde/algo-blockdsp/dsp/window"
	"github.com/cwbudde/algo-blockdsp/internal/config"
)

func newRampsCmd(a *app) *cobra.Command {
	var (
		overlap    float64
		windowSize int
	)

	cmd := &cobra.Command{
		Use:   "ramps",
		Short: "Print the crossfade ramps used between overlapping windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if changed(cmd, "overlap") {
				a.cfg.Segment.Overlap = overlap
			}
			if changed(cmd, "window-size") {
				a.cfg.Segment.WindowSize = windowSize
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			return printRamps(cmd.OutOrStdout(), a.cfg.Segment.WindowSize, a.cfg.Segment.Overlap)
		},
	}

	d := config.Default()
	cmd.Flags().Float64VarP(&overlap, "overlap", "o", d.Segment.Overlap, "overlap factor in [0, 1)")
	cmd.Flags().IntVarP(&windowSize, "window-size", "w", d.Segment.WindowSize, "window length in samples")

	return cmd
}

func printRamps(w io.Writer, windowSize int, overlap float64) error {
	n, m := segment.Geometry(windowSize, overlap)
	if _, err := fmt.Fprintf(w, "window %d, overlap %d, step %d\n", windowSize, n, m); err != nil {
		return err
	}

	// interior windows are faded on both sides
	taper, err := window.Taper[float64](windowSize, n, true, true)
	if err != nil {
		return err
	}
	cg, err := window.CoherentGain(taper)
	if err != nil {
		return err
	}
	enbw, err := window.EquivalentNoiseBandwidth(taper)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "taper coherent gain %.4f, enbw %.4f bins\n", cg, enbw); err != nil {
		return err
	}
	if n == 0 {
		_, err := fmt.Fprintln(w, "no overlap, windows are concatenated")
		return err
	}

	up, down := window.Crossfade[float64](n)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "k\tup\tdown\tsum\n")
	fmt.Fprintf(tw, "-\t--\t----\t---\n")
	for k := range n {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\n", k, up[k], down[k], up[k]+down[k])
	}
	return tw.Flush()
}
