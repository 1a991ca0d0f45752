package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// credentialFile is the bcrypt hash of the wallet PIN, relative to the wallet root.
const credentialFile = ".mywallet/credential"

var pinPattern = regexp.MustCompile(`^[0-9]{6,12}$`)

// ErrWeakPIN means a PIN does not satisfy the format rules.
var ErrWeakPIN = errors.New("PIN must be 6 to 12 digits")

// FileStore keeps the wallet PIN as a bcrypt hash on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore rooted at the wallet directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{path: filepath.Join(root, credentialFile)}
}

func (s *FileStore) hash() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

// HasActiveCredential reports whether a PIN hash is stored.
func (s *FileStore) HasActiveCredential() bool {
	h, err := s.hash()
	return err == nil && len(h) > 0
}

// Validate reports whether pin matches the stored hash.
func (s *FileStore) Validate(pin string) bool {
	h, err := s.hash()
	if err != nil || len(h) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(h, []byte(pin)) == nil
}

// Set replaces the stored PIN.
func (s *FileStore) Set(pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrWeakPIN
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing PIN: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, append(h, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing credential: %w", err)
	}
	return nil
}

// Clear removes the stored PIN. Clearing an absent PIN is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credential: %w", err)
	}
	return nil
}
