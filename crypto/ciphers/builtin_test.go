package ciphers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blowfish"

	"github.com/joncooperworks/sshcrypt/crypto/twofish"
)

func TestBlockResetClearsKeySchedule(t *testing.T) {
	key := []byte("a blowfish key of decent length")

	b, reset, err := newBlowfish(key)
	require.NoError(t, err)
	require.NotNil(t, reset)
	bf := b.(*blowfish.Cipher)
	require.NotEqual(t, blowfish.Cipher{}, *bf)
	reset()
	assert.Equal(t, blowfish.Cipher{}, *bf)

	b, reset, err = newTwofish(key)
	require.NoError(t, err)
	require.NotNil(t, reset)
	reset()
	assert.Equal(t, twofish.Cipher{}, *b.(*twofish.Cipher))
}

func TestFreeResetsBlowfishEngine(t *testing.T) {
	c, err := Allocate("blowfish-cbc", []byte("secret key"), true)
	require.NoError(t, err)
	engine := c.engine.(*blockEngine)

	c.Free()
	assert.Nil(t, engine.mode)
	assert.Nil(t, c.engine)
}
