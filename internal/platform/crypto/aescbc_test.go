package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	secret := "test-secret"

	for _, text := range []string{
		"010-1234-5678",
		"a",
		"exactly sixteen!",
		"longer than a single aes block of sixteen bytes",
	} {
		enc, err := Encrypt(text, secret)
		require.NoError(t, err)
		assert.NotEqual(t, text, enc)

		dec, err := Decrypt(enc, secret)
		require.NoError(t, err)
		assert.Equal(t, text, dec)
	}
}

func TestEncrypt_EmptyPassesThrough(t *testing.T) {
	enc, err := Encrypt("", "secret")
	require.NoError(t, err)
	assert.Equal(t, "", enc)

	dec, err := Decrypt("", "secret")
	require.NoError(t, err)
	assert.Equal(t, "", dec)
}

func TestEncrypt_Deterministic(t *testing.T) {
	a, err := Encrypt("010-1234-5678", "secret")
	require.NoError(t, err)
	b, err := Encrypt("010-1234-5678", "secret")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecrypt_WrongSecretFails(t *testing.T) {
	enc, err := Encrypt("010-1234-5678", "secret-a")
	require.NoError(t, err)

	dec, err := Decrypt(enc, "secret-b")
	if err == nil {
		assert.NotEqual(t, "010-1234-5678", dec)
	}
}

func TestDecrypt_RejectsGarbage(t *testing.T) {
	_, err := Decrypt("not-hex", "secret")
	assert.Error(t, err)

	_, err = Decrypt("abcdef", "secret")
	assert.Error(t, err)
}
