package ciphers

// Engine is the keyed state of one cipher instance.
//
// Transform processes len(src) bytes, a whole number of blocks, into dst,
// reading and updating iv in place for chaining modes. Reset clears any key
// material the engine holds; the engine is not used afterwards.
type Engine interface {
	Transform(dst, src, iv []byte) error
	Reset()
}

// InitFunc keys a fresh Engine. key holds at least the descriptor's
// KeyLength bytes; engines use the leading bytes they need.
type InitFunc func(key []byte, forEncryption bool) (Engine, error)

// Descriptor describes one canonical cipher.
type Descriptor struct {
	// Name is the canonical cipher name, such as "twofish-cbc".
	Name string
	// BlockLength is the block and IV size in bytes; 1 for stream ciphers.
	BlockLength int
	// KeyLength is the required key length in bytes, or 0 when the cipher
	// accepts variable-length keys.
	KeyLength int
	// Init keys a new engine.
	Init InitFunc
	// InitWithCheck keys a new engine after rejecting known weak keys. Nil
	// means Init is used.
	InitWithCheck InitFunc
}

// Alias maps an alternative name to a canonical cipher name.
type Alias struct {
	Name   string
	Target string
}

func (d *Descriptor) initFunc(checkWeakKeys bool) InitFunc {
	if checkWeakKeys && d.InitWithCheck != nil {
		return d.InitWithCheck
	}
	return d.Init
}
