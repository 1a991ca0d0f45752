package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/mywallet-dev/mywallet/internal/envelope"
)

var (
	// ErrInvalidCredential means the PIN did not match.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrNoCredentialConfigured means the wallet has no active PIN, so
	// exports are blocked.
	ErrNoCredentialConfigured = errors.New("no wallet credential configured")
)

// Store is a read-only view of the active wallet credential.
type Store interface {
	HasActiveCredential() bool
	Validate(pin string) bool
}

// Gate checks PINs before export encryption and during import decryption.
type Gate struct {
	store Store
	codec *envelope.Codec
}

// NewGate creates a Gate over the credential store and envelope codec.
func NewGate(store Store, codec *envelope.Codec) *Gate {
	return &Gate{store: store, codec: codec}
}

// ValidateForExport accepts only the active wallet PIN. Backups are never
// encrypted under any other PIN.
func (g *Gate) ValidateForExport(pin string) error {
	if !g.store.HasActiveCredential() {
		return ErrNoCredentialConfigured
	}
	if !g.store.Validate(pin) {
		return fmt.Errorf("%w: PIN does not match the active wallet PIN", ErrInvalidCredential)
	}
	return nil
}

// ValidateForImportDecrypt decrypts env with pin and returns the plaintext.
// Successful decryption is the only PIN check: an envelope carries a salt,
// not a credential. Authentication failures match both ErrInvalidCredential
// and envelope.ErrDecryption.
func (g *Gate) ValidateForImportDecrypt(ctx context.Context, pin string, env *envelope.Envelope) ([]byte, error) {
	plain, err := g.codec.Decrypt(ctx, env, pin)
	if errors.Is(err, envelope.ErrDecryption) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}
	if err != nil {
		return nil, err
	}
	return plain, nil
}
