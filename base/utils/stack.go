package utils

import "runtime"

// Stack returns a formatted stack trace of the calling goroutine,
// skipping skip frames.
func Stack(skip int) []byte {
	buf := make([]byte, 1<<16)
	n := runtime.Stack(buf, false)
	return buf[:n]
}
