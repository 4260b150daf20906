package ciphers

import (
	"crypto/cipher"
	"crypto/des"
	"fmt"

	"golang.org/x/crypto/blowfish"

	"github.com/joncooperworks/sshcrypt/crypto/arcfour"
	"github.com/joncooperworks/sshcrypt/crypto/modes"
	"github.com/joncooperworks/sshcrypt/crypto/twofish"
)

// Canonical names of the ciphers without a mode suffix.
const (
	ArcfourName = "arcfour"
	NoneName    = "none"
)

// blowfishMaxKey is the longest key Blowfish accepts.
const blowfishMaxKey = 56

// blockFactory keys a block cipher and returns a function that clears it.
type blockFactory func(key []byte) (cipher.Block, func(), error)

// Builtin returns the builtin descriptor table in registration order.
func Builtin() []Descriptor {
	var table []Descriptor
	table = append(table, blockFamily("3des", des.BlockSize, 24, newTripleDES, nil)...)
	table = append(table, blockFamily("blowfish", blowfish.BlockSize, 0, newBlowfish, nil)...)
	table = append(table, blockFamily("des", des.BlockSize, 8, newDES, checkDESWeakKey)...)
	table = append(table, blockFamily("twofish", twofish.BlockSize, 0, newTwofish, nil)...)
	table = append(table,
		Descriptor{Name: ArcfourName, BlockLength: 1, KeyLength: 0, Init: newArcfour},
		Descriptor{Name: NoneName, BlockLength: 1, KeyLength: 0, Init: newNone},
	)
	return table
}

// BuiltinAliases maps each block family name to its CBC variant.
func BuiltinAliases() []Alias {
	return []Alias{
		{Name: "des", Target: "des-cbc"},
		{Name: "3des", Target: "3des-cbc"},
		{Name: "blowfish", Target: "blowfish-cbc"},
		{Name: "twofish", Target: "twofish-cbc"},
	}
}

// blockFamily expands one block cipher into its ecb, cbc, cfb and ofb
// descriptors. check, when set, vets the key before keying.
func blockFamily(family string, blockLength, keyLength int, newBlock blockFactory, check func([]byte) error) []Descriptor {
	descs := make([]Descriptor, 0, len(modes.All))
	for _, m := range modes.All {
		d := Descriptor{
			Name:        family + "-" + m.String(),
			BlockLength: blockLength,
			KeyLength:   keyLength,
			Init:        blockInit(newBlock, m, nil),
		}
		if check != nil {
			d.InitWithCheck = blockInit(newBlock, m, check)
		}
		descs = append(descs, d)
	}
	return descs
}

func blockInit(newBlock blockFactory, m modes.Mode, check func([]byte) error) InitFunc {
	return func(key []byte, forEncryption bool) (Engine, error) {
		if check != nil {
			if err := check(key); err != nil {
				return nil, err
			}
		}
		b, reset, err := newBlock(key)
		if err != nil {
			return nil, err
		}
		return &blockEngine{mode: modes.New(b, m, forEncryption), reset: reset}, nil
	}
}

// blockEngine drives a block cipher through a chaining mode.
type blockEngine struct {
	mode  modes.Transformer
	reset func()
}

func (e *blockEngine) Transform(dst, src, iv []byte) error {
	e.mode.Transform(dst, src, iv)
	return nil
}

func (e *blockEngine) Reset() {
	if e.reset != nil {
		e.reset()
	}
	e.mode = nil
}

func newDES(key []byte) (cipher.Block, func(), error) {
	b, err := des.NewCipher(key[:8])
	return b, nil, err
}

func newTripleDES(key []byte) (cipher.Block, func(), error) {
	b, err := des.NewTripleDESCipher(key[:24])
	return b, nil, err
}

func newBlowfish(key []byte) (cipher.Block, func(), error) {
	b, err := blowfish.NewCipher(key[:min(len(key), blowfishMaxKey)])
	if err != nil {
		return nil, nil, err
	}
	return b, func() { *b = blowfish.Cipher{} }, nil
}

func newTwofish(key []byte) (cipher.Block, func(), error) {
	c, err := twofish.NewCipher(key)
	if err != nil {
		return nil, nil, err
	}
	return c, c.Reset, nil
}

// arcfourEngine adapts an Arcfour keystream; the IV is unused.
type arcfourEngine struct {
	c *arcfour.Cipher
}

func newArcfour(key []byte, _ bool) (Engine, error) {
	c, err := arcfour.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyTooShort, err)
	}
	return &arcfourEngine{c: c}, nil
}

func (e *arcfourEngine) Transform(dst, src, _ []byte) error {
	e.c.XORKeyStream(dst, src)
	return nil
}

func (e *arcfourEngine) Reset() { e.c.Reset() }

// noneEngine copies its input.
type noneEngine struct{}

func newNone([]byte, bool) (Engine, error) { return noneEngine{}, nil }

func (noneEngine) Transform(dst, src, _ []byte) error {
	copy(dst, src)
	return nil
}

func (noneEngine) Reset() {}
