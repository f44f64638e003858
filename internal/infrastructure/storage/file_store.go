package storage

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/koswara-dev/BarayaApp-sub000/domain"
)

// FileTokenStoreImpl implements domain.TokenStore on an AES-256-GCM
// encrypted file. It holds exactly one secret, the session token, keyed by
// the configured service name.
type FileTokenStoreImpl struct {
	path string
	key  []byte
}

// NewFileTokenStore creates a file-backed token store. The passphrase is
// stretched to a 256-bit key; the file lives under dir with the service name
// as its basename. An empty dir falls back to a service-named directory
// under the user config dir.
func NewFileTokenStore(dir, serviceName, passphrase string) (domain.TokenStore, error) {
	if serviceName == "" {
		return nil, errors.New("token store service name is required")
	}
	if passphrase == "" {
		return nil, errors.New("token store passphrase is required")
	}
	if dir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		dir = filepath.Join(configDir, serviceName)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create token store dir: %w", err)
	}
	key := sha256.Sum256([]byte(passphrase))
	return &FileTokenStoreImpl{
		path: filepath.Join(dir, serviceName+".cred"),
		key:  key[:],
	}, nil
}

// Save implements domain.TokenStore with overwrite semantics.
func (s *FileTokenStoreImpl) Save(ctx context.Context, token string) error {
	sealed, err := s.seal(token)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(sealed), 0o600); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// Load implements domain.TokenStore.
func (s *FileTokenStoreImpl) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token, err := s.open(string(data))
	if err != nil {
		// An undecryptable credential is as good as no credential.
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

// Delete implements domain.TokenStore. Removing an absent credential is not
// an error.
func (s *FileTokenStoreImpl) Delete(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

func (s *FileTokenStoreImpl) seal(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

func (s *FileTokenStoreImpl) open(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	if len(data) < gcm.NonceSize() {
		return "", errors.New("ciphertext too short")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
