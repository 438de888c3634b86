package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"filippo.io/age"
	"github.com/bnema/yzterm/internal/domain"
	"github.com/bnema/yzterm/internal/ports"
)

const (
	storeDirMode  = 0o700
	secretFileMod = 0o600

	identityFile = ".identity"
	secretSuffix = ".age"
)

// Store keeps each secret in its own age-encrypted file under root. The
// X25519 identity is generated on first write and stored next to the
// secrets.
type Store struct {
	root string
	mu   sync.RWMutex

	identity *age.X25519Identity
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	identity, err := s.loadIdentity(true)
	if err != nil {
		return err
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, identity.Recipient())
	if err != nil {
		return fmt.Errorf("create encryptor for %q: %w", key, err)
	}
	if _, err := io.WriteString(writer, value); err != nil {
		return fmt.Errorf("encrypt file secret %q: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize file secret %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create file secret directory: %w", err)
	}

	if err := os.WriteFile(path, ciphertext.Bytes(), secretFileMod); err != nil {
		return fmt.Errorf("write file secret %q: %w", key, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("file secret %q: %w", key, domain.ErrSecretNotFound)
		}
		return "", fmt.Errorf("read file secret %q: %w", key, err)
	}

	identity, err := s.loadIdentity(false)
	if err != nil {
		return "", err
	}

	reader, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return "", fmt.Errorf("decrypt file secret %q: %w", key, err)
	}

	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read decrypted secret %q: %w", key, err)
	}

	return string(plaintext), nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file secret %q: %w", key, err)
	}

	return nil
}

// loadIdentity must be called with s.mu held.
func (s *Store) loadIdentity(create bool) (*age.X25519Identity, error) {
	if s.identity != nil {
		return s.identity, nil
	}

	path := filepath.Join(s.root, identityFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		identity, err := age.ParseX25519Identity(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, fmt.Errorf("parse secret store identity: %w", err)
		}
		s.identity = identity
		return identity, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read secret store identity: %w", err)
	case !create:
		return nil, fmt.Errorf("secret store identity missing at %s", path)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("generate secret store identity: %w", err)
	}

	if err := os.MkdirAll(s.root, storeDirMode); err != nil {
		return nil, fmt.Errorf("create file secret directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(identity.String()+"\n"), secretFileMod); err != nil {
		return nil, fmt.Errorf("write secret store identity: %w", err)
	}

	s.identity = identity
	return identity, nil
}

func (s *Store) pathForKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") || cleaned == "." || cleaned == identityFile {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return filepath.Join(s.root, cleaned+secretSuffix), nil
}
