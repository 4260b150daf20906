// Package keyblob reads and writes the ASCII armored key blob format:
//
//	----BEGIN SSH PRIVATE KEY BLOCK----
//	Version: 2.1
//	Subject: alice
//
//	<base64 payload, 60 characters per line>
//	=<base64 of the big-endian CRC32 of the payload>
//
//	---END SSH PRIVATE KEY BLOCK----
//
// The CRC32 detects corruption only; blobs carry no authenticity or
// confidentiality of their own.
package keyblob

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"strings"

	"github.com/joncooperworks/sshcrypt/encoding/sshbase64"
)

// Version written by Marshal for blobs created with New.
const (
	VersionMajor = 2
	VersionMinor = 1
)

// LineLength is the number of base64 characters per body line.
const LineLength = 60

// MaxSize is the largest blob text ReadFrom accepts.
const MaxSize = 0xffff

var (
	// ErrParse is returned for any malformed or corrupt blob, including a
	// CRC mismatch.
	ErrParse = errors.New("keyblob: parse error")
	// ErrTooLarge is returned when blob text exceeds MaxSize.
	ErrTooLarge = errors.New("keyblob: blob text too large")
	// ErrInvalidHeader is returned by Marshal for header text the reader
	// would not recognise as headers.
	ErrInvalidHeader = errors.New("keyblob: invalid header line")
)

// KeyBlob is a decoded key blob.
type KeyBlob struct {
	Major, Minor int
	// Headers holds the raw header lines, e.g. "Subject: alice", without
	// trailing whitespace. Empty means none.
	Headers string
	Public  bool
	Data    []byte
}

// New returns a blob with the current format version.
func New(data []byte, headers string, public bool) *KeyBlob {
	return &KeyBlob{
		Major:   VersionMajor,
		Minor:   VersionMinor,
		Headers: headers,
		Public:  public,
		Data:    data,
	}
}

func (b *KeyBlob) kind() string {
	if b.Public {
		return "PUBLIC"
	}
	return "PRIVATE"
}

// Marshal renders b as blob text. Leading and trailing whitespace of
// Headers is dropped.
func (b *KeyBlob) Marshal() ([]byte, error) {
	if b.Major < 0 || b.Minor < 0 {
		return nil, fmt.Errorf("keyblob: invalid version %d.%d", b.Major, b.Minor)
	}
	headers := strings.TrimSpace(b.Headers)
	if err := validateHeaders(headers); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "----BEGIN SSH %s KEY BLOCK----\n", b.kind())
	fmt.Fprintf(&buf, "Version: %d.%d\n", b.Major, b.Minor)
	if headers != "" {
		buf.WriteString(headers)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')

	body := sshbase64.Encode(b.Data)
	for len(body) > 0 {
		n := min(LineLength, len(body))
		buf.WriteString(body[:n])
		buf.WriteByte('\n')
		body = body[n:]
	}

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], crc32.ChecksumIEEE(b.Data))
	fmt.Fprintf(&buf, "=%s\n\n", sshbase64.Encode(crc[:]))
	fmt.Fprintf(&buf, "---END SSH %s KEY BLOCK----\n", b.kind())
	return buf.Bytes(), nil
}

// WriteTo writes the marshalled blob to w.
func (b *KeyBlob) WriteTo(w io.Writer) (int64, error) {
	text, err := b.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(text)
	return int64(n), err
}

// ReadFrom parses a blob from r, reading at most MaxSize bytes.
func ReadFrom(r io.Reader) (*KeyBlob, error) {
	return ReadFromLimit(r, MaxSize)
}

// ReadFromLimit parses a blob from r, reading at most limit bytes. A limit
// that is not positive or exceeds MaxSize means MaxSize.
func ReadFromLimit(r io.Reader, limit int) (*KeyBlob, error) {
	if limit <= 0 || limit > MaxSize {
		limit = MaxSize
	}
	text, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read key blob: %w", err)
	}
	if len(text) > limit {
		return nil, ErrTooLarge
	}
	return Parse(text)
}

// ReadFile parses the blob stored in the named file.
func ReadFile(path string) (*KeyBlob, error) {
	return ReadFileLimit(path, MaxSize)
}

// ReadFileLimit is ReadFile with the size cap of ReadFromLimit.
func ReadFileLimit(path string, limit int) (*KeyBlob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open key blob: %w", err)
	}
	defer f.Close()
	return ReadFromLimit(f, limit)
}

// WriteFile writes b to the named file with permissions perm.
func WriteFile(path string, b *KeyBlob, perm os.FileMode) error {
	text, err := b.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, text, perm); err != nil {
		return fmt.Errorf("failed to write key blob: %w", err)
	}
	return nil
}

// validateHeaders checks that every line of h is a "token: value" header,
// the continuation of a line ending in a backslash, or blank. The last
// header line may not end in a backslash.
func validateHeaders(h string) error {
	if h == "" {
		return nil
	}
	escaped := false
	for i, line := range strings.Split(h, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimLeft(line, " \t\v\f")
		if trimmed == "" {
			continue
		}
		if !escaped && !lookingAtHeader([]byte(trimmed)) {
			return fmt.Errorf("%w: line %d: %q", ErrInvalidHeader, i+1, line)
		}
		escaped = strings.HasSuffix(line, "\\")
	}
	if escaped {
		return fmt.Errorf("%w: continuation after the last header", ErrInvalidHeader)
	}
	return nil
}
