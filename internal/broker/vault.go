package broker

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the vault key.
const (
	saltSize  = 16
	keySize   = 32
	kdfTime   = 1
	kdfMemory = 64 * 1024
	kdfLanes  = 4
)

var errShortCiphertext = errors.New("ciphertext too short")

// vault seals and opens the store payload with AES-256-GCM under a key
// derived from the master password.
type vault struct {
	salt []byte
	aead cipher.AEAD
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	_, err := io.ReadFull(rand.Reader, salt)
	return salt, err
}

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, kdfTime, kdfMemory, kdfLanes, keySize)
}

func openVault(password, salt []byte) (*vault, error) {
	block, err := aes.NewCipher(deriveKey(password, salt))
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &vault{salt: salt, aead: aead}, nil
}

// seal returns nonce || ciphertext.
func (v *vault) seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, v.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return v.aead.Seal(nonce, nonce, plaintext, v.salt), nil
}

func (v *vault) open(data []byte) ([]byte, error) {
	n := v.aead.NonceSize()
	if len(data) < n {
		return nil, errShortCiphertext
	}
	return v.aead.Open(nil, data[:n], data[n:], v.salt)
}
