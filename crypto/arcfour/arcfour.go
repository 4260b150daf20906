// Package arcfour implements the Arcfour stream cipher, which is believed to
// be compatible with RC4.
package arcfour

import (
	"runtime"
	"strconv"
)

// KeySizeError is returned when the key is empty.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "arcfour: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is an Arcfour keystream generator. Encryption and decryption are
// the same operation.
type Cipher struct {
	s    [256]byte
	x, y uint8
}

// NewCipher schedules key into a fresh Arcfour state. Every byte of key is
// used cyclically while permuting the state, so any non-empty key is
// accepted.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, KeySizeError(0)
	}
	c := new(Cipher)
	for i := range c.s {
		c.s[i] = byte(i)
	}
	var j uint8
	for i := 0; i < 256; i++ {
		j += c.s[i] + key[i%len(key)]
		c.s[i], c.s[j] = c.s[j], c.s[i]
	}
	return c, nil
}

// XORKeyStream sets dst to src XORed with the next len(src) bytes of
// keystream. dst and src must overlap entirely or not at all.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1]
	x, y := c.x, c.y
	for i, b := range src {
		x++
		sx := c.s[x]
		y += sx
		sy := c.s[y]
		c.s[x], c.s[y] = sy, sx
		dst[i] = b ^ c.s[sx+sy]
	}
	c.x, c.y = x, y
}

// Reset zeroes the key state. The cipher must not be used afterwards.
func (c *Cipher) Reset() {
	c.s = [256]byte{}
	c.x, c.y = 0, 0
	runtime.KeepAlive(c)
}
