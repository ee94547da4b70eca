// Package common holds small helpers shared by the client packages.
package common

// WipeByteArray zeroes b in place. Used on password buffers read from the
// terminal once they have been handed to the request encoder.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
