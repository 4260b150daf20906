package ciphers

import "crypto/sha1"

// MinimalKeyLength is the length a passphrase is expanded to for ciphers
// that accept variable-length keys.
const MinimalKeyLength = 5

// expandKey derives n bytes from passphrase by chaining SHA-1: each digest
// covers the passphrase followed by every digest produced so far.
func expandKey(passphrase []byte, n int) []byte {
	total := (n/sha1.Size + 1) * sha1.Size
	buf := make([]byte, total)
	var digest [sha1.Size]byte

	h := sha1.New()
	for i := 0; i < total; i += sha1.Size {
		h.Reset()
		h.Write(passphrase)
		h.Write(buf[:i])
		copy(buf[i:], h.Sum(digest[:0]))
	}

	out := make([]byte, n)
	copy(out, buf)
	zeroize(buf)
	zeroize(digest[:])
	return out
}
