package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Reused elements keep their previous values.
func EnsureLen[F Float](buf []F, n int) []F {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]F, n)
}

// Zero sets all values in buf to 0.
func Zero[F Float](buf []F) {
	for i := range buf {
		buf[i] = 0
	}
}
