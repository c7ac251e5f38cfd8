// Package randid generates short non-cryptographic random strings.
package randid

import "math/rand/v2"

const hexDigits = "0123456789abcdef"

// Hex returns a random string of length lowercase hexadecimal characters.
func Hex(length int) string {
	if length <= 0 {
		return ""
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = hexDigits[rand.IntN(len(hexDigits))]
	}
	return string(b)
}
