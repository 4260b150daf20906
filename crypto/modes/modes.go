// Package modes chains a crypto/cipher.Block in ECB, CBC, CFB or OFB mode.
//
// Unlike crypto/cipher, the chaining value lives in a caller-owned IV
// buffer that is updated on every call, so a stream split over several
// calls produces the same output as a single call.
package modes

import (
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
	"strings"
)

// Mode selects a chaining construction.
type Mode int

const (
	ECB Mode = iota
	CBC
	CFB
	OFB
)

var modeNames = [...]string{
	ECB: "ecb",
	CBC: "cbc",
	CFB: "cfb",
	OFB: "ofb",
}

// All lists the supported modes in registration order.
var All = []Mode{ECB, CBC, CFB, OFB}

// maxBlockSize bounds the stack scratch space used by the chaining loops.
const maxBlockSize = 32

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a cipher-name suffix such as "cbc" to its Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mode: %s", s)
}

// Transformer processes whole blocks of src into dst. iv is read and
// updated in place for the chaining modes and ignored by ECB. dst must be
// at least len(src) bytes and may alias src exactly.
type Transformer interface {
	Transform(dst, src, iv []byte)
}

// New returns a Transformer for b in mode m. CFB and OFB always run the
// block encryption primitive, so forEncryption only changes their feedback
// direction. New panics if the block size exceeds 32 bytes.
func New(b cipher.Block, m Mode, forEncryption bool) Transformer {
	if b.BlockSize() > maxBlockSize {
		panic("modes: block size too large")
	}
	switch m {
	case ECB:
		return &ecb{b: b, encrypt: forEncryption}
	case CBC:
		if forEncryption {
			return &cbcEncrypter{b: b}
		}
		return &cbcDecrypter{b: b}
	case CFB:
		return &cfb{b: b, encrypt: forEncryption}
	case OFB:
		return &ofb{b: b}
	default:
		panic("modes: " + m.String())
	}
}

type ecb struct {
	b       cipher.Block
	encrypt bool
}

func (x *ecb) Transform(dst, src, _ []byte) {
	bs := x.b.BlockSize()
	for i := 0; i+bs <= len(src); i += bs {
		if x.encrypt {
			x.b.Encrypt(dst[i:i+bs], src[i:i+bs])
		} else {
			x.b.Decrypt(dst[i:i+bs], src[i:i+bs])
		}
	}
}

type cbcEncrypter struct {
	b cipher.Block
}

func (x *cbcEncrypter) Transform(dst, src, iv []byte) {
	bs := x.b.BlockSize()
	v := iv[:bs]
	for i := 0; i+bs <= len(src); i += bs {
		subtle.XORBytes(v, v, src[i:i+bs])
		x.b.Encrypt(v, v)
		copy(dst[i:i+bs], v)
	}
}

type cbcDecrypter struct {
	b cipher.Block
}

func (x *cbcDecrypter) Transform(dst, src, iv []byte) {
	var scratch, saved [maxBlockSize]byte
	bs := x.b.BlockSize()
	v := iv[:bs]
	for i := 0; i+bs <= len(src); i += bs {
		copy(saved[:bs], src[i:i+bs])
		x.b.Decrypt(scratch[:bs], saved[:bs])
		subtle.XORBytes(dst[i:i+bs], scratch[:bs], v)
		copy(v, saved[:bs])
	}
	clear(scratch[:])
	clear(saved[:])
}

type cfb struct {
	b       cipher.Block
	encrypt bool
}

func (x *cfb) Transform(dst, src, iv []byte) {
	var saved [maxBlockSize]byte
	bs := x.b.BlockSize()
	v := iv[:bs]
	for i := 0; i+bs <= len(src); i += bs {
		x.b.Encrypt(v, v)
		if x.encrypt {
			subtle.XORBytes(v, v, src[i:i+bs])
			copy(dst[i:i+bs], v)
			continue
		}
		copy(saved[:bs], src[i:i+bs])
		subtle.XORBytes(dst[i:i+bs], v, saved[:bs])
		copy(v, saved[:bs])
	}
	clear(saved[:])
}

type ofb struct {
	b cipher.Block
}

func (x *ofb) Transform(dst, src, iv []byte) {
	bs := x.b.BlockSize()
	v := iv[:bs]
	for i := 0; i+bs <= len(src); i += bs {
		x.b.Encrypt(v, v)
		subtle.XORBytes(dst[i:i+bs], src[i:i+bs], v)
	}
}
