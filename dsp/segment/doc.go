// Package segment splits a long single-channel stream into overlapping
// fixed-size windows and reconstructs a continuous stream from them.
//
// An [OverlapAdd] engine is configured with an overlap factor f in [0, 1).
// For a window size W the overlap length is N = floor(W*f) and the step
// between window starts is M = W - N. LoadData reads a sample source into a
// W x windowCount matrix (one column per window) and UnloadData writes the
// crossfaded reconstruction to a sink. The windows can be processed in place
// between the two calls through [OverlapAdd.Window].
//
// Reconstruction uses the complementary sin² crossfade from
// [github.com/cwbudde/algo-blockdsp/dsp/window.Crossfade], so an unmodified
// matrix reproduces the input samples.
package segment
