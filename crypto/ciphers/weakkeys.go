package ciphers

import (
	"encoding/hex"
	"errors"
)

// desWeakKeys holds the four weak and twelve semi-weak DES keys.
var desWeakKeys = mustDecodeKeys(
	"0101010101010101", "fefefefefefefefe", "e0e0e0e0f1f1f1f1", "1f1f1f1f0e0e0e0e",
	"011f011f010e010e", "1f011f010e010e01",
	"01e001e001f101f1", "e001e001f101f101",
	"01fe01fe01fe01fe", "fe01fe01fe01fe01",
	"1fe01fe00ef10ef1", "e01fe01ff10ef10e",
	"1ffe1ffe0efe0efe", "fe1ffe1ffe0efe0e",
	"e0fee0fef1fef1fe", "fee0fee0fef1fef1",
)

var errWeakKey = errors.New("weak DES key")

func mustDecodeKeys(hexKeys ...string) [][8]byte {
	keys := make([][8]byte, len(hexKeys))
	for i, h := range hexKeys {
		b, err := hex.DecodeString(h)
		if err != nil || len(b) != 8 {
			panic("ciphers: bad weak key " + h)
		}
		copy(keys[i][:], b)
	}
	return keys
}

// checkDESWeakKey rejects key when its first 8 bytes, parity bits ignored,
// match a weak or semi-weak DES key.
func checkDESWeakKey(key []byte) error {
	var k [8]byte
	for i := range k {
		k[i] = key[i] &^ 1
	}
	for _, weak := range desWeakKeys {
		match := true
		for i := range weak {
			if weak[i]&^1 != k[i] {
				match = false
				break
			}
		}
		if match {
			return errWeakKey
		}
	}
	return nil
}
