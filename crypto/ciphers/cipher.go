package ciphers

import "fmt"

// Cipher is one keyed cipher instance with its own IV. It is not safe for
// concurrent use.
type Cipher struct {
	desc          *Descriptor
	iv            []byte
	engine        Engine
	forEncryption bool
}

// Name returns the canonical name of the cipher.
func (c *Cipher) Name() string { return c.desc.Name }

// BlockLength returns the block length in bytes.
func (c *Cipher) BlockLength() int { return c.desc.BlockLength }

// IVLength returns the IV length in bytes, which equals the block length.
func (c *Cipher) IVLength() int { return c.desc.BlockLength }

// ForEncryption reports the direction fixed at allocation.
func (c *Cipher) ForEncryption() bool { return c.forEncryption }

// SetIV copies the first IVLength bytes of iv into the instance.
func (c *Cipher) SetIV(iv []byte) error {
	if c.engine == nil {
		return ErrFreed
	}
	if len(iv) < len(c.iv) {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidIV, len(c.iv), len(iv))
	}
	copy(c.iv, iv)
	return nil
}

// IV returns a copy of the current IV.
func (c *Cipher) IV() []byte {
	return append([]byte(nil), c.iv...)
}

// Transform processes src into dst using the instance IV and leaves the IV
// as the mode advanced it. len(src) must be a multiple of the block length
// and dst must hold at least len(src) bytes; dst may alias src.
func (c *Cipher) Transform(dst, src []byte) error {
	if err := c.check(dst, src); err != nil {
		return err
	}
	return c.engine.Transform(dst[:len(src)], src, c.iv)
}

// TransformWithIV is Transform using the caller's iv, which is advanced in
// place. The instance IV is not touched.
func (c *Cipher) TransformWithIV(dst, src, iv []byte) error {
	if err := c.check(dst, src); err != nil {
		return err
	}
	if len(iv) < len(c.iv) {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidIV, len(c.iv), len(iv))
	}
	return c.engine.Transform(dst[:len(src)], src, iv[:len(c.iv)])
}

func (c *Cipher) check(dst, src []byte) error {
	if c.engine == nil {
		return ErrFreed
	}
	if len(src)%c.desc.BlockLength != 0 {
		return fmt.Errorf("%w: %s length %d, block length %d", ErrBlockSize, c.desc.Name, len(src), c.desc.BlockLength)
	}
	if len(dst) < len(src) {
		return ErrShortBuffer
	}
	return nil
}

// Free clears the key state and IV. Any later use returns ErrFreed. Free is
// idempotent.
func (c *Cipher) Free() {
	if c.engine != nil {
		c.engine.Reset()
		c.engine = nil
	}
	zeroize(c.iv)
}
