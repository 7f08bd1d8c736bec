// Package window generates tapering windows and the sin² crossfade pair
// used when overlapping blocks are joined back into a continuous stream.
package window
