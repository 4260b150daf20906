package ciphers

import "errors"

var (
	// ErrUnsupported is returned when a name matches neither a canonical
	// cipher nor an alias.
	ErrUnsupported = errors.New("unsupported cipher")
	// ErrKeyTooShort is returned when the supplied key material is shorter
	// than the cipher requires.
	ErrKeyTooShort = errors.New("key too short")
	// ErrBlockSize is returned when a transform length is not a multiple of
	// the block length.
	ErrBlockSize = errors.New("data length is not a multiple of the block length")
	// ErrOperationFailed is returned when a cipher rejects its key, for
	// example a weak DES key.
	ErrOperationFailed = errors.New("cipher operation failed")
	// ErrInvalidIV is returned when an IV buffer is shorter than the block
	// length.
	ErrInvalidIV = errors.New("invalid IV length")
	// ErrShortBuffer is returned when the destination is shorter than the
	// source.
	ErrShortBuffer = errors.New("destination buffer too short")
	// ErrFreed is returned when an instance is used after Free.
	ErrFreed = errors.New("cipher instance has been freed")
)
