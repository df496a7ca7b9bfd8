package strategy

import "crypto/rand"

const hexAlphabet = "0123456789abcdef"

// shortID returns an opaque 6-hex-char identifier with the given prefix,
// per spec.md §4.C8 step 5.
func shortID(prefix string) string {
	var buf [6]byte
	raw := make([]byte, 3)
	_, _ = rand.Read(raw)
	for i, b := range raw {
		buf[i*2] = hexAlphabet[b>>4]
		buf[i*2+1] = hexAlphabet[b&0x0f]
	}
	return prefix + "_" + string(buf[:])
}
