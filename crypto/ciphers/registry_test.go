package ciphers

import (
	"bytes"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

// keyFor returns random key material acceptable to the named cipher.
func keyFor(t *testing.T, name string) []byte {
	t.Helper()
	n, err := KeyLength(name)
	require.NoError(t, err)
	if n == 0 {
		n = 16
	}
	return randomBytes(t, n)
}

func TestSupportedLists(t *testing.T) {
	native := "3des-ecb,3des-cbc,3des-cfb,3des-ofb," +
		"blowfish-ecb,blowfish-cbc,blowfish-cfb,blowfish-ofb," +
		"des-ecb,des-cbc,des-cfb,des-ofb," +
		"twofish-ecb,twofish-cbc,twofish-cfb,twofish-ofb," +
		"arcfour,none"
	assert.Equal(t, native, SupportedNative())
	assert.Equal(t, native+",des,3des,blowfish,twofish", SupportedList())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name        string
		wantNative  string
		wantBlock   int
		wantKey     int
		wantPresent bool
	}{
		{"twofish-cbc", "twofish-cbc", 16, 0, true},
		{"twofish", "twofish-cbc", 16, 0, true},
		{"3des", "3des-cbc", 8, 24, true},
		{"des-ofb", "des-ofb", 8, 8, true},
		{"blowfish", "blowfish-cbc", 8, 0, true},
		{"arcfour", "arcfour", 1, 0, true},
		{"none", "none", 1, 0, true},
		{"aes128-cbc", "", 0, 0, false},
		{"", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Lookup(tt.name)
			require.Equal(t, tt.wantPresent, ok)
			assert.Equal(t, tt.wantPresent, Supported(tt.name))
			native, ok := NativeName(tt.name)
			assert.Equal(t, tt.wantPresent, ok)
			assert.Equal(t, tt.wantNative, native)
			if !tt.wantPresent {
				_, err := KeyLength(tt.name)
				assert.ErrorIs(t, err, ErrUnsupported)
				return
			}
			assert.Equal(t, tt.wantBlock, d.BlockLength)
			assert.Equal(t, tt.wantKey, d.KeyLength)
		})
	}
}

func TestDescriptorIsACopy(t *testing.T) {
	d, ok := Lookup("des-cbc")
	require.True(t, ok)
	d.KeyLength = 1
	d.InitWithCheck = nil
	d.Init = nil

	n, err := KeyLength("des")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	weak := []byte{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}
	_, err = AllocateAndTestWeakKeys("des-cbc", weak, true)
	assert.ErrorIs(t, err, ErrOperationFailed)

	again, ok := Default().Descriptor("des-cbc")
	require.True(t, ok)
	assert.Equal(t, 8, again.KeyLength)
	assert.NotNil(t, again.InitWithCheck)
}

func TestNewRegistryValidation(t *testing.T) {
	valid := Descriptor{Name: "x", BlockLength: 1, Init: newNone}
	tests := []struct {
		name    string
		descs   []Descriptor
		aliases []Alias
		wantErr string
	}{
		{"empty name", []Descriptor{{BlockLength: 1, Init: newNone}}, nil, "name is required"},
		{"zero block", []Descriptor{{Name: "x", Init: newNone}}, nil, "block length"},
		{"no init", []Descriptor{{Name: "x", BlockLength: 1}}, nil, "init function"},
		{"duplicate", []Descriptor{valid, valid}, nil, "duplicate cipher name"},
		{"dangling alias", []Descriptor{valid}, []Alias{{Name: "y", Target: "z"}}, "unknown cipher"},
		{"shadowing alias", []Descriptor{valid}, []Alias{{Name: "x", Target: "x"}}, "shadows"},
		{"duplicate alias", []Descriptor{valid}, []Alias{{"y", "x"}, {"y", "x"}}, "duplicate alias"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.descs, tt.aliases)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWithExtendsWithoutMutating(t *testing.T) {
	extra := Descriptor{Name: "rot0", BlockLength: 1, Init: newNone}
	r, err := Default().With(extra)
	require.NoError(t, err)

	assert.True(t, r.Supported("rot0"))
	assert.True(t, r.Supported("twofish"))
	assert.False(t, Default().Supported("rot0"))
	assert.True(t, strings.HasSuffix(r.SupportedNative(), ",none,rot0"))

	_, err = Default().With(Descriptor{Name: "none", BlockLength: 1, Init: newNone})
	assert.Error(t, err)
}

func TestRoundTripEveryCipher(t *testing.T) {
	for _, name := range Default().NativeNames() {
		t.Run(name, func(t *testing.T) {
			key := keyFor(t, name)
			enc, err := Allocate(name, key, true)
			require.NoError(t, err)
			defer enc.Free()
			dec, err := Allocate(name, key, false)
			require.NoError(t, err)
			defer dec.Free()

			iv := randomBytes(t, enc.IVLength())
			require.NoError(t, enc.SetIV(iv))
			require.NoError(t, dec.SetIV(iv))

			plain := randomBytes(t, enc.BlockLength()*6)
			ct := make([]byte, len(plain))
			require.NoError(t, enc.Transform(ct, plain))
			if name != NoneName {
				assert.NotEqual(t, plain, ct)
			}

			pt := make([]byte, len(ct))
			require.NoError(t, dec.Transform(pt, ct))
			assert.Equal(t, plain, pt)
		})
	}
}

func TestIVCarriesAcrossTransforms(t *testing.T) {
	for _, name := range []string{"twofish-cbc", "twofish-cfb", "twofish-ofb", "des-cbc", "blowfish-cfb", "3des-ofb", "arcfour"} {
		t.Run(name, func(t *testing.T) {
			key := keyFor(t, name)
			whole, err := Allocate(name, key, true)
			require.NoError(t, err)
			split, err := Allocate(name, key, true)
			require.NoError(t, err)

			bl := whole.BlockLength()
			plain := randomBytes(t, max(bl, 8)*2)
			one := make([]byte, len(plain))
			require.NoError(t, whole.Transform(one, plain))

			two := make([]byte, len(plain))
			half := len(plain) / 2
			require.NoError(t, split.Transform(two[:half], plain[:half]))
			require.NoError(t, split.Transform(two[half:], plain[half:]))
			assert.Equal(t, one, two)
			assert.Equal(t, whole.IV(), split.IV())
		})
	}
}

func TestECBLeavesIVAlone(t *testing.T) {
	c, err := Allocate("twofish-ecb", []byte("0123456789abcdef"), true)
	require.NoError(t, err)
	iv := bytes.Repeat([]byte{0xaa}, 16)
	require.NoError(t, c.SetIV(iv))
	require.NoError(t, c.Transform(make([]byte, 32), make([]byte, 32)))
	assert.Equal(t, iv, c.IV())
}

func TestTransformWithIV(t *testing.T) {
	key := []byte("0123456789abcdef")
	a, err := Allocate("twofish-cbc", key, true)
	require.NoError(t, err)
	b, err := Allocate("twofish-cbc", key, true)
	require.NoError(t, err)

	iv := randomBytes(t, 16)
	plain := randomBytes(t, 48)

	require.NoError(t, a.SetIV(iv))
	want := make([]byte, len(plain))
	require.NoError(t, a.Transform(want, plain))

	callerIV := append([]byte(nil), iv...)
	got := make([]byte, len(plain))
	require.NoError(t, b.TransformWithIV(got, plain, callerIV))
	assert.Equal(t, want, got)
	assert.Equal(t, want[32:], callerIV)
	assert.Equal(t, make([]byte, 16), b.IV(), "instance IV must not change")

	assert.ErrorIs(t, b.TransformWithIV(got, plain, callerIV[:8]), ErrInvalidIV)
}

func TestTransformErrors(t *testing.T) {
	c, err := Allocate("blowfish-cbc", []byte("secret"), true)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Transform(make([]byte, 7), make([]byte, 7)), ErrBlockSize)
	assert.ErrorIs(t, c.Transform(make([]byte, 8), make([]byte, 16)), ErrShortBuffer)
	assert.ErrorIs(t, c.SetIV(make([]byte, 4)), ErrInvalidIV)

	c.Free()
	c.Free()
	assert.ErrorIs(t, c.Transform(make([]byte, 8), make([]byte, 8)), ErrFreed)
	assert.ErrorIs(t, c.SetIV(make([]byte, 8)), ErrFreed)
	assert.Equal(t, make([]byte, 8), c.IV())
}

func TestNoneCipher(t *testing.T) {
	c, err := Allocate("none", nil, true)
	require.NoError(t, err)
	src := []byte("any length at all")
	dst := make([]byte, len(src))
	require.NoError(t, c.Transform(dst, src))
	assert.Equal(t, src, dst)
	assert.Equal(t, 1, c.BlockLength())
}

func TestKeyTooShort(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{"des-cbc", make([]byte, 7)},
		{"3des-ecb", make([]byte, 16)},
		{"twofish-cbc", nil},
		{"blowfish", []byte{}},
		{"arcfour", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Allocate(tt.name, tt.key, true)
			assert.ErrorIs(t, err, ErrKeyTooShort)
		})
	}

	_, err := Allocate("nope", []byte("k"), true)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestLongKeysUseLeadingBytes(t *testing.T) {
	long := randomBytes(t, 100)
	for _, name := range []string{"des-ecb", "3des-ecb", "blowfish-ecb", "twofish-ecb"} {
		t.Run(name, func(t *testing.T) {
			n, err := KeyLength(name)
			require.NoError(t, err)
			if n == 0 {
				n = map[string]int{"blowfish-ecb": blowfishMaxKey, "twofish-ecb": 32}[name]
			}
			a, err := Allocate(name, long, true)
			require.NoError(t, err)
			b, err := Allocate(name, long[:n], true)
			require.NoError(t, err)

			plain := make([]byte, a.BlockLength())
			x := make([]byte, len(plain))
			y := make([]byte, len(plain))
			require.NoError(t, a.Transform(x, plain))
			require.NoError(t, b.Transform(y, plain))
			assert.Equal(t, x, y)
		})
	}
}

func TestWeakKeys(t *testing.T) {
	weak := []byte{0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01, 0x01}
	flippedParity := []byte{0x00, 0x01, 0x00, 0x01, 0x00, 0x01, 0x00, 0x01}
	semiWeak := []byte{0x01, 0xfe, 0x01, 0xfe, 0x01, 0xfe, 0x01, 0xfe}

	for _, key := range [][]byte{weak, flippedParity, semiWeak} {
		_, err := AllocateAndTestWeakKeys("des-cbc", key, true)
		assert.ErrorIs(t, err, ErrOperationFailed, "key %x", key)

		c, err := Allocate("des-cbc", key, true)
		require.NoError(t, err, "plain init accepts %x", key)
		c.Free()
	}

	c, err := AllocateAndTestWeakKeys("des", []byte("strongk!"), true)
	require.NoError(t, err)
	assert.Equal(t, "des-cbc", c.Name())

	// Ciphers without a checking initializer fall back to the plain one.
	_, err = AllocateAndTestWeakKeys("3des-cbc", bytes.Repeat(weak, 3), true)
	assert.NoError(t, err)
	assert.Len(t, desWeakKeys, 16)
}

func TestAllocateWithPassphrase(t *testing.T) {
	pass := []byte("correct horse battery staple")

	a, err := AllocateWithPassphrase("3des-cbc", pass, true)
	require.NoError(t, err)
	b, err := Allocate("3des-cbc", expandKey(pass, 24), true)
	require.NoError(t, err)

	plain := make([]byte, 16)
	x := make([]byte, 16)
	y := make([]byte, 16)
	require.NoError(t, a.Transform(x, plain))
	require.NoError(t, b.Transform(y, plain))
	assert.Equal(t, x, y)

	// Variable-length ciphers get the minimal key length.
	c, err := AllocateWithPassphrase("twofish", pass, true)
	require.NoError(t, err)
	d, err := Allocate("twofish", expandKey(pass, MinimalKeyLength), true)
	require.NoError(t, err)
	require.NoError(t, c.Transform(x, plain))
	require.NoError(t, d.Transform(y, plain))
	assert.Equal(t, x, y)

	// An empty passphrase still expands to usable key material.
	_, err = AllocateWithPassphrase("arcfour", nil, true)
	assert.NoError(t, err)
}

func TestExpandKey(t *testing.T) {
	pass := []byte("pw")
	first := sha1.Sum(pass)
	second := sha1.Sum(append(append([]byte(nil), pass...), first[:]...))

	assert.Equal(t, first[:5], expandKey(pass, 5))
	assert.Equal(t, first[:], expandKey(pass, 20))
	assert.Equal(t, append(first[:], second[:4]...), expandKey(pass, 24))
	assert.Equal(t, "6210274434052f20fcb83e1d0f492204fcb118845c887149",
		hex.EncodeToString(expandKey([]byte("passphrase"), 24)))

	for _, n := range []int{1, 8, 24, 39, 40, 41, 100} {
		got := expandKey(pass, n)
		assert.Len(t, got, n)
		assert.True(t, bytes.HasPrefix(expandKey(pass, n+7), got))
	}
}

func TestInitFailureSurfacesAsOperationFailed(t *testing.T) {
	failing := Descriptor{
		Name:        "broken",
		BlockLength: 1,
		Init: func([]byte, bool) (Engine, error) {
			return nil, errors.New("engine refused key")
		},
	}
	r, err := NewRegistry([]Descriptor{failing}, nil)
	require.NoError(t, err)
	_, err = r.Allocate("broken", []byte("k"), true)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Contains(t, err.Error(), "engine refused key")
}
