// Package secret seals saved RCON passwords with a local key file.
package secret

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the size in bytes of the master key and derived keys.
const KeySize = 32

// blobVersion is the first byte of every sealed blob and part of the AAD.
const blobVersion byte = 0x01

// blobOverhead is version + nonce + tag.
const blobOverhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

var hkdfInfoProfile = []byte("rconsh.profile.v1")

// ErrDecrypt is returned when a blob cannot be opened: wrong key, wrong
// profile name, unsupported version or tampered data.
var ErrDecrypt = errors.New("failed to decrypt secret")

// LoadOrCreateKey reads the master key at path, creating it with random
// bytes and mode 0600 if it does not exist.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s is %d bytes, want %d", path, len(key), KeySize)
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key = make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(path, key, 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	return key, nil
}

// Seal encrypts plaintext for the profile called name:
//
//	[version: 1 byte] [nonce: 24 bytes] [ciphertext+tag]
func Seal(key []byte, name string, plaintext []byte) ([]byte, error) {
	aead, err := profileCipher(key, name)
	if err != nil {
		return nil, err
	}

	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 1+len(nonce), blobOverhead+len(plaintext))
	out[0] = blobVersion
	copy(out[1:], nonce[:])
	return aead.Seal(out, nonce[:], plaintext, aad(blobVersion, name)), nil
}

// Open decrypts a blob produced by Seal for the same profile name.
func Open(key []byte, name string, blob []byte) ([]byte, error) {
	if len(blob) < blobOverhead {
		return nil, fmt.Errorf("%w: blob is %d bytes", ErrDecrypt, len(blob))
	}
	if blob[0] != blobVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrDecrypt, blob[0])
	}

	aead, err := profileCipher(key, name)
	if err != nil {
		return nil, err
	}

	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, blob[1+chacha20poly1305.NonceSizeX:], aad(blob[0], name))
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// profileCipher derives the per-profile key and returns its AEAD.
func profileCipher(key []byte, name string) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key is %d bytes, want %d", len(key), KeySize)
	}

	info := append(append([]byte{}, hkdfInfoProfile...), name...)
	derived := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, info), derived); err != nil {
		return nil, fmt.Errorf("failed to derive profile key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(derived)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return aead, nil
}

func aad(version byte, name string) []byte {
	return append([]byte{version}, name...)
}
