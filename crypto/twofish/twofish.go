// Package twofish implements the Twofish block cipher with a 128-bit block
// and variable-length keys of 1 to 32 bytes.
//
// For 16, 24 and 32 byte keys the output matches the published algorithm.
// Other lengths are zero-padded to the next multiple of 8 bytes during key
// scheduling with an S-vector of at least two words. Keys longer than 32
// bytes are truncated.
package twofish

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"strconv"
)

// BlockSize is the Twofish block size in bytes.
const BlockSize = 16

// MaxKeySize is the longest key that contributes to the key schedule.
const MaxKeySize = 32

// KeySizeError is returned when the key is empty.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "twofish: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is an expanded Twofish key. It implements crypto/cipher.Block.
type Cipher struct {
	s [4][256]uint32 // key-dependent S-boxes, MDS applied
	k [40]uint32     // whitening and round subkeys
}

// hPerm lists, per output column, the q permutation applied at each stage of
// h: the optional fourth- and third-word stages, the two mandatory stages,
// and the final substitution.
var hPerm = [4][5]*[256]byte{
	{&q1, &q1, &q0, &q0, &q1},
	{&q0, &q1, &q1, &q0, &q0},
	{&q0, &q0, &q0, &q1, &q1},
	{&q1, &q0, &q1, &q1, &q0},
}

// h runs byte x through the q-permutation chain of column col keyed by the
// first k bytes of l, then through the MDS column.
func h(col int, x byte, l *[4]byte, k int) uint32 {
	p := &hPerm[col]
	if k == 4 {
		x = p[0][x] ^ l[3]
	}
	if k >= 3 {
		x = p[1][x] ^ l[2]
	}
	x = p[2][x] ^ l[1]
	x = p[3][x] ^ l[0]
	return mdsColumn(col, p[4][x])
}

// NewCipher expands key into a Twofish cipher.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, KeySizeError(0)
	}
	c := new(Cipher)
	c.expandKey(key)
	return c, nil
}

func (c *Cipher) expandKey(key []byte) {
	var (
		buf       [MaxKeySize]byte
		s, me, mo [4][4]byte
	)
	n := copy(buf[:], key)
	kl := (n + 7) >> 3

	for i := 0; i < kl; i++ {
		for j := 0; j < 8; j++ {
			for col := 0; col < 4; col++ {
				s[col][kl-i-1] ^= byte(gfMul(uint32(rsMatrix[j][col]), uint32(buf[j+i<<3]), rsPoly))
			}
		}
	}

	if kl < 2 {
		kl = 2
	}
	for i := 0; i < 256; i++ {
		for col := 0; col < 4; col++ {
			c.s[col][i] = h(col, byte(i), &s[col], kl)
		}
	}

	for i := 0; i < n; i++ {
		if i&4 != 0 {
			mo[i&3][i>>3] = buf[i]
		} else {
			me[i&3][i>>3] = buf[i]
		}
	}
	for i := 0; i < 40; i += 2 {
		var a, b uint32
		for col := 0; col < 4; col++ {
			a ^= h(col, byte(i), &me[col], kl)
			b ^= h(col, byte(i+1), &mo[col], kl)
		}
		b = bits.RotateLeft32(b, 8)
		a += b
		c.k[i] = a
		a += b
		c.k[i+1] = bits.RotateLeft32(a, 9)
	}

	buf = [MaxKeySize]byte{}
	s, me, mo = [4][4]byte{}, [4][4]byte{}, [4][4]byte{}
	runtime.KeepAlive(&buf)
	runtime.KeepAlive(&s)
	runtime.KeepAlive(&me)
	runtime.KeepAlive(&mo)
}

// BlockSize returns the Twofish block size. It satisfies crypto/cipher.Block.
func (c *Cipher) BlockSize() int { return BlockSize }

func (c *Cipher) g0(x uint32) uint32 {
	return c.s[0][byte(x)] ^ c.s[1][byte(x>>8)] ^ c.s[2][byte(x>>16)] ^ c.s[3][x>>24]
}

func (c *Cipher) g1(x uint32) uint32 {
	return c.s[0][x>>24] ^ c.s[1][byte(x)] ^ c.s[2][byte(x>>8)] ^ c.s[3][byte(x>>16)]
}

// Encrypt encrypts the first block of src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	k := &c.k
	l0 := binary.LittleEndian.Uint32(src[0:4]) ^ k[0]
	l1 := binary.LittleEndian.Uint32(src[4:8]) ^ k[1]
	r0 := binary.LittleEndian.Uint32(src[8:12]) ^ k[2]
	r1 := binary.LittleEndian.Uint32(src[12:16]) ^ k[3]

	for i := 8; i < 40; i += 4 {
		t0 := c.g0(l0)
		t1 := c.g1(l1)
		t0 += t1
		t1 += t0
		r0 = bits.RotateLeft32(r0^(t0+k[i]), -1)
		r1 = bits.RotateLeft32(r1, 1) ^ (t1 + k[i+1])

		t0 = c.g0(r0)
		t1 = c.g1(r1)
		t0 += t1
		t1 += t0
		l0 = bits.RotateLeft32(l0^(t0+k[i+2]), -1)
		l1 = bits.RotateLeft32(l1, 1) ^ (t1 + k[i+3])
	}

	binary.LittleEndian.PutUint32(dst[0:4], r0^k[4])
	binary.LittleEndian.PutUint32(dst[4:8], r1^k[5])
	binary.LittleEndian.PutUint32(dst[8:12], l0^k[6])
	binary.LittleEndian.PutUint32(dst[12:16], l1^k[7])
}

// Decrypt decrypts the first block of src into dst. dst and src may overlap
// entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	k := &c.k
	r0 := binary.LittleEndian.Uint32(src[0:4]) ^ k[4]
	r1 := binary.LittleEndian.Uint32(src[4:8]) ^ k[5]
	l0 := binary.LittleEndian.Uint32(src[8:12]) ^ k[6]
	l1 := binary.LittleEndian.Uint32(src[12:16]) ^ k[7]

	for i := 36; i >= 8; i -= 4 {
		t0 := c.g0(r0)
		t1 := c.g1(r1)
		t0 += t1
		t1 += t0
		l0 = bits.RotateLeft32(l0, 1) ^ (t0 + k[i+2])
		l1 = bits.RotateLeft32(l1^(t1+k[i+3]), -1)

		t0 = c.g0(l0)
		t1 = c.g1(l1)
		t0 += t1
		t1 += t0
		r0 = bits.RotateLeft32(r0, 1) ^ (t0 + k[i])
		r1 = bits.RotateLeft32(r1^(t1+k[i+1]), -1)
	}

	binary.LittleEndian.PutUint32(dst[0:4], l0^k[0])
	binary.LittleEndian.PutUint32(dst[4:8], l1^k[1])
	binary.LittleEndian.PutUint32(dst[8:12], r0^k[2])
	binary.LittleEndian.PutUint32(dst[12:16], r1^k[3])
}

// Reset zeroes the expanded key. The cipher must not be used afterwards.
func (c *Cipher) Reset() {
	c.s = [4][256]uint32{}
	c.k = [40]uint32{}
	runtime.KeepAlive(c)
}
