// Package sshbase64 encodes the standard base64 alphabet the way key blob
// files use it: padded output, and input that may be interleaved with line
// breaks or other characters outside the alphabet.
package sshbase64

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned when the cleaned input is not canonical padded
// base64.
var ErrInvalid = errors.New("invalid base64")

var strict = base64.StdEncoding.Strict()

func isAlphabet(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return c == '+' || c == '/'
}

// IsAlphabet reports whether c is one of the 64 base64 characters.
func IsAlphabet(c byte) bool { return isAlphabet(c) }

// Encode returns the padded base64 encoding of src.
func Encode(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// Decode strips every character outside the alphabet and '=' from s and
// decodes the rest. Trailing bits that a canonical encoder would leave zero
// must be zero.
func Decode(s string) ([]byte, error) {
	b, err := strict.DecodeString(RemoveWhitespace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return b, nil
}

// RemoveWhitespace returns s with every character other than the base64
// alphabet and '=' removed.
func RemoveWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; isAlphabet(c) || c == '=' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidPrefix returns the length of the leading run of s made of base64
// characters and '='.
func ValidPrefix(s string) int {
	for i := 0; i < len(s); i++ {
		if c := s[i]; !isAlphabet(c) && c != '=' {
			return i
		}
	}
	return len(s)
}
