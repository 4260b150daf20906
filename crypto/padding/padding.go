// Package padding extends messages to a whole number of cipher blocks.
package padding

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPadding is returned when padded data fails validation.
var ErrInvalidPadding = errors.New("invalid padding")

// Padder pads and unpads data for a block size.
type Padder interface {
	Pad(data []byte, blockSize int) []byte
	Unpad(data []byte, blockSize int) ([]byte, error)
	Name() string
}

// PKCS7 appends n bytes of value n, 1 <= n <= blockSize.
type PKCS7 struct{}

func (PKCS7) Name() string { return "pkcs7" }

// Pad returns a copy of data padded to a multiple of blockSize. blockSize
// must be between 1 and 255.
func (PKCS7) Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// Unpad strips and checks PKCS#7 padding. The returned slice aliases data.
func (PKCS7) Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrInvalidPadding, len(data), blockSize)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrInvalidPadding
	}
	want := make([]byte, n)
	for i := range want {
		want[i] = byte(n)
	}
	if subtle.ConstantTimeCompare(data[len(data)-n:], want) != 1 {
		return nil, ErrInvalidPadding
	}
	return data[:len(data)-n], nil
}

// None leaves data unchanged; callers must supply whole blocks.
type None struct{}

func (None) Name() string { return "none" }

func (None) Pad(data []byte, _ int) []byte { return data }

func (None) Unpad(data []byte, _ int) ([]byte, error) { return data, nil }

// Parse returns the Padder called name.
func Parse(name string) (Padder, error) {
	switch strings.ToLower(name) {
	case "pkcs7", "pkcs#7":
		return PKCS7{}, nil
	case "none", "":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown padding: %s", name)
	}
}
