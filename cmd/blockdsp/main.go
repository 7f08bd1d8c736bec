// Command blockdsp runs the block convolution and segmentation engines on
// audio files.
//
// Usage:
//
//	blockdsp [--config file] [--log-level level] <command> [flags] [args]
//
// Examples:
//
//	blockdsp filter --block-size 512 in.wav ir.wav out.wav
//	blockdsp resynth --overlap 0.75 --window-size 4096 in.ogg out.wav
//	blockdsp ramps --window-size 16 --overlap 0.5
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
