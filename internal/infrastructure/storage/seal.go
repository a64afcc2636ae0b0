package storage

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Key derivation parameters for the storage secret.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	saltSize     = 16
)

var errUnseal = errors.New("storage file cannot be decrypted with the configured secret")

// sealer encrypts the storage file with XChaCha20-Poly1305 under a key
// derived from the secret with Argon2id.
type sealer struct {
	salt []byte
	key  []byte
}

func newSealer(secret string, salt []byte) (*sealer, error) {
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, fmt.Errorf("generate salt: %w", err)
		}
	}
	key := argon2.IDKey([]byte(secret), salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
	return &sealer{salt: salt, key: key}, nil
}

func (s *sealer) seal(plaintext []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, nil, err
	}
	nonce = make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, aead.Seal(nil, nonce, plaintext, s.salt), nil
}

func (s *sealer) open(nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, errUnseal
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, s.salt)
	if err != nil {
		return nil, errUnseal
	}
	return plaintext, nil
}
