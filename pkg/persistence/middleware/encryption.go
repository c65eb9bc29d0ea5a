package middleware

import (
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/urakawa/pkg/ports"
)

// KeySize is the required key length (AES-256).
const KeySize = 32

// envelopeMagic prefixes every encrypted document.
var envelopeMagic = []byte("UKENC1")

var (
	// ErrInvalidKey is returned for keys that are not KeySize bytes long.
	ErrInvalidKey = errors.New("encryption key must be 32 bytes (AES-256)")

	// ErrNotEncrypted is returned when a stored document lacks the envelope.
	ErrNotEncrypted = errors.New("document is missing the encryption envelope")

	// ErrDecrypt is returned when no configured key opens a document.
	ErrDecrypt = errors.New("decryption failed with all available keys")
)

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey encrypts new documents.
	ActiveKey []byte

	// FallbackKeys are tried, in order, when the active key cannot decrypt a
	// document. This allows key rotation without rewriting the store.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next ports.DocumentStore
	keys []cipher.AEAD
}

// NewEncryption creates a middleware that seals documents with AES-GCM.
// The underlying store only ever sees the envelope: magic, nonce, ciphertext.
func NewEncryption(config EncryptionConfig) (Middleware, error) {
	keys := make([]cipher.AEAD, 0, 1+len(config.FallbackKeys))
	for _, k := range append([][]byte{config.ActiveKey}, config.FallbackKeys...) {
		aead, err := newAEAD(k)
		if err != nil {
			return nil, err
		}
		keys = append(keys, aead)
	}
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &encryptionMiddleware{next: next, keys: keys}
	}, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (m *encryptionMiddleware) Save(ctx context.Context, id string, doc []byte) error {
	active := m.keys[0]
	nonce := make([]byte, active.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(envelopeMagic)+len(nonce)+len(doc)+active.Overhead())
	out = append(out, envelopeMagic...)
	out = append(out, nonce...)
	out = active.Seal(out, nonce, doc, []byte(id))
	return m.next.Save(ctx, id, out)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) ([]byte, error) {
	sealed, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(sealed, envelopeMagic) {
		return nil, fmt.Errorf("%w: %s", ErrNotEncrypted, id)
	}
	sealed = sealed[len(envelopeMagic):]

	for _, aead := range m.keys {
		if len(sealed) < aead.NonceSize() {
			return nil, fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
		}
		nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
		if plain, err := aead.Open(nil, nonce, ciphertext, []byte(id)); err == nil {
			return plain, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDecrypt, id)
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
