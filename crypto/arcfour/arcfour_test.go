package arcfour

import (
	"crypto/rand"
	"crypto/rc4"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownAnswers(t *testing.T) {
	tests := []struct {
		key        string
		plaintext  string
		ciphertext string
	}{
		{"Key", "Plaintext", "bbf316e8d940af0ad3"},
		{"Wiki", "pedia", "1021bf0420"},
		{"Secret", "Attack at dawn", "45a01f645fc35b383552544b9bf5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c, err := NewCipher([]byte(tt.key))
			require.NoError(t, err)

			got := make([]byte, len(tt.plaintext))
			c.XORKeyStream(got, []byte(tt.plaintext))
			assert.Equal(t, tt.ciphertext, hex.EncodeToString(got))

			// Same key, fresh state: applying the keystream again decrypts.
			d, err := NewCipher([]byte(tt.key))
			require.NoError(t, err)
			d.XORKeyStream(got, got)
			assert.Equal(t, tt.plaintext, string(got))
		})
	}
}

func TestMatchesStdlib(t *testing.T) {
	for _, n := range []int{1, 5, 16, 255, 256, 300} {
		key := make([]byte, n)
		_, err := rand.Read(key)
		require.NoError(t, err)
		src := make([]byte, 1000)
		_, err = rand.Read(src)
		require.NoError(t, err)

		ours, err := NewCipher(key)
		require.NoError(t, err)
		theirs, err := rc4.NewCipher(key)
		if n > 256 {
			// crypto/rc4 caps keys at 256 bytes; only compare where it can.
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)

		want := make([]byte, len(src))
		got := make([]byte, len(src))
		theirs.XORKeyStream(want, src)
		ours.XORKeyStream(got, src)
		assert.Equal(t, want, got, "key length %d", n)
	}
}

func TestStreamContinuesAcrossCalls(t *testing.T) {
	key := []byte("continuity")
	src := []byte("the keystream must not restart between calls")

	whole, err := NewCipher(key)
	require.NoError(t, err)
	want := make([]byte, len(src))
	whole.XORKeyStream(want, src)

	split, err := NewCipher(key)
	require.NoError(t, err)
	got := make([]byte, len(src))
	split.XORKeyStream(got[:7], src[:7])
	split.XORKeyStream(got[7:], src[7:])
	split.XORKeyStream(nil, nil)

	assert.Equal(t, want, got)
}

func TestEmptyKey(t *testing.T) {
	_, err := NewCipher([]byte{})
	var kse KeySizeError
	require.ErrorAs(t, err, &kse)
}

func TestReset(t *testing.T) {
	c, err := NewCipher([]byte("k"))
	require.NoError(t, err)
	c.XORKeyStream(make([]byte, 3), make([]byte, 3))
	c.Reset()
	assert.Equal(t, [256]byte{}, c.s)
	assert.Zero(t, c.x)
	assert.Zero(t, c.y)
}
