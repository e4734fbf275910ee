package localstore

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

const tokenFile = "auth_token"

// Keystore persists the auth token across process restarts, sealed with
// XChaCha20-Poly1305 under a device-local secret. It is the only durable
// credential on the client.
type Keystore struct {
	mu   sync.Mutex
	path string
	aead cipher.AEAD
}

// NewKeystore creates a keystore rooted at dir. The secret must be exactly
// 32 bytes (chacha20poly1305.KeySize); it is expected to come from the
// platform's secure storage, not from configuration files.
func NewKeystore(dir string, secret []byte) (*Keystore, error) {
	if len(secret) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidSecret, chacha20poly1305.KeySize, len(secret))
	}
	aead, err := chacha20poly1305.NewX(secret)
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return &Keystore{
		path: filepath.Join(dir, tokenFile),
		aead: aead,
	}, nil
}

// Load returns the persisted token, or an empty string when none is stored.
func (k *Keystore) Load() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	sealed, err := os.ReadFile(k.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrStorageUnavailable, err)
	}

	if len(sealed) < k.aead.NonceSize() {
		return "", ErrCorruptToken
	}
	nonce, box := sealed[:k.aead.NonceSize()], sealed[k.aead.NonceSize():]
	plain, err := k.aead.Open(nil, nonce, box, nil)
	if err != nil {
		return "", errors.Join(ErrCorruptToken, err)
	}
	return string(plain), nil
}

// Save seals and persists the token, replacing any previous value. The file
// is written atomically so a crash cannot leave a truncated token behind.
func (k *Keystore) Save(token string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	nonce := make([]byte, k.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	sealed := k.aead.Seal(nonce, nonce, []byte(token), nil)

	tmp := k.path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, k.path); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (k *Keystore) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := os.Remove(k.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}
