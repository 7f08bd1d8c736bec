// Package fir provides multi-channel FIR filter runtimes.
//
// [BlockT] filters fixed-size blocks in the frequency domain: one forward
// FFT, one spectrum product and one inverse FFT of the filter length per
// channel and call, with the overlapping part of each block's response
// carried to later calls. It is meant for long filters driven once per
// audio callback and does not allocate after configuration.
//
// [Direct] evaluates the same convolution sample by sample with a
// circular-buffer delay line. It is suitable for short filters and serves as
// the reference implementation in tests.
//
// Taps are supplied as a [core.Matrix] with one column per channel.
// Coefficient design is a separate concern.
package fir
