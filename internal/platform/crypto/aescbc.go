package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// AES-256-CBC with PKCS#7 padding and hex output. Key is the SHA-256 of the
// secret; the IV is the first 16 bytes of the same digest, so ciphertexts are
// deterministic per secret. Used for PII fields that need equality lookups,
// not for general-purpose encryption.

func keyAndIV(secret string) ([]byte, []byte) {
	hash := sha256.Sum256([]byte(secret))
	return hash[:32], hash[:16]
}

// Encrypt returns the hex-encoded ciphertext of text. Empty input passes
// through unchanged.
func Encrypt(text, secret string) (string, error) {
	if text == "" {
		return text, nil
	}

	key, iv := keyAndIV(secret)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	plain := pkcs7Pad([]byte(text), block.BlockSize())
	out := make([]byte, len(plain))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, plain)
	return hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. Empty input passes through unchanged.
func Decrypt(encrypted, secret string) (string, error) {
	if encrypted == "" {
		return encrypted, nil
	}

	data, err := hex.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	key, iv := keyAndIV(secret)
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return "", fmt.Errorf("ciphertext is not block-aligned")
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	plain, err := pkcs7Unpad(out, block.BlockSize())
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	pad := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	pad := int(data[len(data)-1])
	if pad == 0 || pad > blockSize || pad > len(data) {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-pad], nil
}
