package keyblob

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"

	"github.com/joncooperworks/sshcrypt/encoding/sshbase64"
)

// maxVersionDigits bounds version numbers to keep them well inside int.
const maxVersionDigits = 9

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isHeaderChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '-' || c == '_'
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

// lookingAtHeader reports whether s starts with a "token:" followed by a
// space or tab.
func lookingAtHeader(s []byte) bool {
	i := 0
	for i < len(s) && isHeaderChar(s[i]) {
		i++
	}
	return i > 0 && i+1 < len(s) && s[i] == ':' && (s[i+1] == ' ' || s[i+1] == '\t')
}

// scanner walks blob text. Every method reports failure instead of
// advancing past the end.
type scanner struct {
	buf []byte
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.buf) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.buf[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.buf[s.pos]) {
		s.pos++
	}
}

// skipRun skips any mix of c and whitespace.
func (s *scanner) skipRun(c byte) {
	for !s.eof() && (s.buf[s.pos] == c || isSpace(s.buf[s.pos])) {
		s.pos++
	}
}

func (s *scanner) expect(c byte) bool {
	if s.peek() != c || s.eof() {
		return false
	}
	s.pos++
	return true
}

// match consumes word case-insensitively, allowing whitespace after every
// character.
func (s *scanner) match(word string) bool {
	for i := 0; i < len(word); i++ {
		if s.eof() || lower(s.buf[s.pos]) != word[i] {
			return false
		}
		s.pos++
		s.skipSpace()
	}
	return true
}

// matchKind consumes "public" or "private".
func (s *scanner) matchKind() (public, ok bool) {
	start := s.pos
	if s.match("public") {
		return true, true
	}
	s.pos = start
	return false, s.match("private")
}

func (s *scanner) number() (int, bool) {
	s.skipSpace()
	start := s.pos
	n := 0
	for !s.eof() && '0' <= s.buf[s.pos] && s.buf[s.pos] <= '9' {
		if s.pos-start == maxVersionDigits {
			return 0, false
		}
		n = n*10 + int(s.buf[s.pos]-'0')
		s.pos++
	}
	return n, s.pos > start
}

// skipHeaders consumes header lines and their backslash continuations along
// with the whitespace after each.
func (s *scanner) skipHeaders() {
	escaped := false
	for !s.eof() && (escaped || lookingAtHeader(s.buf[s.pos:])) {
		escaped = false
		for !s.eof() && s.buf[s.pos] != '\n' {
			c := s.buf[s.pos]
			escaped = c == '\\' || (escaped && c == '\r')
			s.pos++
		}
		s.skipSpace()
	}
}

type armor struct {
	public       bool
	major, minor int
	headers      []byte
	body, crc    []byte
}

func (s *scanner) banner(opening bool, public bool) (bool, bool) {
	s.skipSpace()
	if !s.expect('-') {
		return false, false
	}
	s.skipRun('-')
	word := "beginssh"
	if !opening {
		word = "endssh"
	}
	if !s.match(word) {
		return false, false
	}
	if opening {
		var ok bool
		if public, ok = s.matchKind(); !ok {
			return false, false
		}
	} else {
		kind := "private"
		if public {
			kind = "public"
		}
		if !s.match(kind) {
			return false, false
		}
	}
	if !s.match("keyblock") || !s.expect('-') {
		return false, false
	}
	s.skipRun('-')
	return public, true
}

func (s *scanner) armor() (*armor, bool) {
	var a armor
	var ok bool

	if a.public, ok = s.banner(true, false); !ok {
		return nil, false
	}

	if !s.match("version:") {
		return nil, false
	}
	if a.major, ok = s.number(); !ok {
		return nil, false
	}
	s.skipSpace()
	if !s.expect('.') {
		return nil, false
	}
	if a.minor, ok = s.number(); !ok {
		return nil, false
	}
	// Early writers emitted "2.0a".
	if s.peek() == 'a' {
		s.pos++
	}

	s.skipSpace()
	start := s.pos
	s.skipHeaders()
	a.headers = bytes.TrimRightFunc(s.buf[start:s.pos], func(r rune) bool {
		return r < 0x80 && isSpace(byte(r))
	})

	// The body runs to the first '='. Padding belongs to the body only when
	// it follows base64 text directly; a '=' opening a line starts the CRC.
	s.skipSpace()
	start = s.pos
	for !s.eof() && s.buf[s.pos] != '=' {
		s.pos++
	}
	if s.pos > start && sshbase64.IsAlphabet(s.buf[s.pos-1]) {
		for s.peek() == '=' && !s.eof() {
			s.pos++
		}
	}
	a.body = s.buf[start:s.pos]

	s.skipSpace()
	if !s.expect('=') {
		return nil, false
	}
	start = s.pos
	for !s.eof() && s.buf[s.pos] != '-' {
		s.pos++
	}
	a.crc = s.buf[start:s.pos]

	if _, ok := s.banner(false, a.public); !ok {
		return nil, false
	}
	return &a, true
}

// Parse decodes blob text. Text after the closing banner is ignored. Any
// syntax error or CRC mismatch returns ErrParse.
func Parse(text []byte) (*KeyBlob, error) {
	s := &scanner{buf: text}
	a, ok := s.armor()
	if !ok {
		return nil, ErrParse
	}

	crcText := bytes.TrimLeft([]byte(sshbase64.RemoveWhitespace(string(a.crc))), "=")
	crc, err := sshbase64.Decode(string(crcText))
	if err != nil || len(crc) != 4 {
		return nil, ErrParse
	}
	data, err := sshbase64.Decode(string(a.body))
	if err != nil {
		return nil, ErrParse
	}
	if crc32.ChecksumIEEE(data) != binary.BigEndian.Uint32(crc) {
		return nil, ErrParse
	}

	return &KeyBlob{
		Major:   a.major,
		Minor:   a.minor,
		Headers: string(a.headers),
		Public:  a.public,
		Data:    data,
	}, nil
}
