package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io"
	"strings"
)

const sealedPrefix = "enc:v1:"

var key []byte

var ErrCiphertextTooShort = errors.New("ciphertext too short")

func InitCrypto(k string) {
	if len(k) != 32 {
		panic("CRYPTO_KEY must be 32 bytes")
	}
	key = []byte(k)
}

func CryptoEnabled() bool {
	return len(key) == 32
}

func Encrypt(text string) (string, error) {
	aead, err := newAEAD()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ciphertext := aead.Seal(nonce, nonce, []byte(text), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func Decrypt(encoded string) (string, error) {
	aead, err := newAEAD()
	if err != nil {
		return "", err
	}
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", ErrCiphertextTooShort
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Seal encrypts text for storage when a key is configured. Empty text and a
// missing key both pass through unchanged.
func Seal(text string) (string, error) {
	if text == "" || !CryptoEnabled() {
		return text, nil
	}
	enc, err := Encrypt(text)
	if err != nil {
		return "", err
	}
	return sealedPrefix + enc, nil
}

// Open reverses Seal. Values written before encryption was enabled are returned as-is.
func Open(stored string) (string, error) {
	if !strings.HasPrefix(stored, sealedPrefix) {
		return stored, nil
	}
	return Decrypt(strings.TrimPrefix(stored, sealedPrefix))
}

func newAEAD() (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
