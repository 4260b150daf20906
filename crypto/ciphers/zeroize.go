package ciphers

import "runtime"

// zeroize overwrites b with zeros once key material is no longer needed.
func zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
