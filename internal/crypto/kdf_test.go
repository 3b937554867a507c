package crypto

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheapArgon keeps the tests fast; production uses DefaultArgon2idParams.
func cheapArgon(salt []byte) KDFParams {
	return KDFParams{Algorithm: KDFArgon2id, Time: 1, Memory: 64, Threads: 1, Salt: salt}
}

func TestDeriveKey_LegacyIsPlainSHA256(t *testing.T) {
	key, err := DeriveKey([]byte("S1"), LegacyKDFParams())
	require.NoError(t, err)

	want := sha256.Sum256([]byte("S1"))
	assert.Equal(t, want[:], key)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	for _, p := range []KDFParams{LegacyKDFParams(), cheapArgon(salt)} {
		t.Run(p.Algorithm, func(t *testing.T) {
			k1, err := DeriveKey([]byte("correct horse battery staple"), p)
			require.NoError(t, err)
			k2, err := DeriveKey([]byte("correct horse battery staple"), p)
			require.NoError(t, err)

			assert.Len(t, k1, KeySize)
			assert.Equal(t, k1, k2)

			k3, err := DeriveKey([]byte("another secret"), p)
			require.NoError(t, err)
			assert.NotEqual(t, k1, k3)
		})
	}
}

func TestDeriveKey_Argon2idSaltMatters(t *testing.T) {
	k1, err := DeriveKey([]byte("same"), cheapArgon(bytes.Repeat([]byte{0x01}, SaltSize)))
	require.NoError(t, err)
	k2, err := DeriveKey([]byte("same"), cheapArgon(bytes.Repeat([]byte{0x02}, SaltSize)))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
}

func TestDeriveKey_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		params  KDFParams
		wantErr error
	}{
		{name: "unknown algorithm", params: KDFParams{Algorithm: "md5"}, wantErr: ErrUnsupportedKDF},
		{name: "missing salt", params: cheapArgon(nil), wantErr: ErrInvalidKDFParams},
		{name: "zero time", params: KDFParams{Algorithm: KDFArgon2id, Memory: 64, Threads: 1, Salt: make([]byte, 16)}, wantErr: ErrInvalidKDFParams},
		{name: "too many passes", params: KDFParams{Algorithm: KDFArgon2id, Time: MaxArgonTime + 1, Memory: 64, Threads: 1, Salt: make([]byte, 16)}, wantErr: ErrInvalidKDFParams},
		{name: "too little memory", params: KDFParams{Algorithm: KDFArgon2id, Time: 1, Memory: 8, Threads: 4, Salt: make([]byte, 16)}, wantErr: ErrInvalidKDFParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveKey([]byte("x"), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	s1, err := GenerateSalt()
	require.NoError(t, err)
	s2, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, SaltSize)
	assert.Len(t, s2, SaltSize)
	assert.NotEqual(t, s1, s2)
}

func TestKDFParams_WithSaltCopies(t *testing.T) {
	salt := []byte("0123456789abcdef")
	p := DefaultArgon2idParams().WithSalt(salt)
	salt[0] = 'X'

	assert.Equal(t, byte('0'), p.Salt[0])
	assert.True(t, p.Salted())
	assert.False(t, LegacyKDFParams().Salted())
}
