package envelope

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Version is the envelope format written by Encrypt.
const Version = "1"

const (
	saltSize = 16
	keySize  = chacha20poly1305.KeySize

	maxTime      = 16
	maxMemoryKiB = 1 << 20 // 1 GiB
	maxThreads   = 64
)

var (
	// ErrDecryption means the payload failed authentication: wrong PIN or
	// tampered ciphertext. No plaintext is returned alongside it.
	ErrDecryption = errors.New("decryption failed")
	// ErrMalformedEnvelope means the envelope fields cannot be decoded.
	ErrMalformedEnvelope = errors.New("malformed envelope")
)

// Params are the argon2id cost parameters.
type Params struct {
	Time      uint32 `json:"time" yaml:"time"`
	MemoryKiB uint32 `json:"memoryKiB" yaml:"memory_kib"`
	Threads   uint8  `json:"threads" yaml:"threads"`
}

// DefaultParams is the cost used when nothing else is configured.
var DefaultParams = Params{Time: 3, MemoryKiB: 64 * 1024, Threads: 4}

func (p Params) validate() error {
	if p.Time == 0 || p.Time > maxTime {
		return fmt.Errorf("kdf time %d out of range", p.Time)
	}
	if p.MemoryKiB < 8*uint32(p.Threads) || p.MemoryKiB > maxMemoryKiB {
		return fmt.Errorf("kdf memory %d KiB out of range", p.MemoryKiB)
	}
	if p.Threads == 0 || p.Threads > maxThreads {
		return fmt.Errorf("kdf threads %d out of range", p.Threads)
	}
	return nil
}

// Envelope is the encrypted on-disk form of a backup.
type Envelope struct {
	Version string  `json:"version"`
	Salt    string  `json:"salt"`    // base64
	Payload string  `json:"payload"` // base64(nonce || ciphertext)
	KDF     *Params `json:"kdf,omitempty"`
}

// Codec encrypts and decrypts envelopes. It holds no secrets between calls.
type Codec struct {
	params Params
	rand   io.Reader
}

// NewCodec returns a Codec that derives keys with p.
func NewCodec(p Params) (*Codec, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("invalid kdf params: %w", err)
	}
	return &Codec{params: p, rand: rand.Reader}, nil
}

// Params returns the cost parameters used for new envelopes.
func (c *Codec) Params() Params { return c.params }

func deriveKey(pin string, salt []byte, p Params) []byte {
	return argon2.IDKey([]byte(pin), salt, p.Time, p.MemoryKiB, p.Threads, keySize)
}

// Encrypt serializes v to JSON and seals it under a key derived from pin and a
// fresh random salt. Two calls with the same input never produce the same
// envelope.
func (c *Codec) Encrypt(ctx context.Context, v any, pin string) (*Envelope, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}
	defer clear(plain)

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(c.rand, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := deriveKey(pin, salt, c.params)
	defer clear(key)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(c.rand, nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, plain, []byte(Version))

	params := c.params
	return &Envelope{
		Version: Version,
		Salt:    base64.StdEncoding.EncodeToString(salt),
		Payload: base64.StdEncoding.EncodeToString(sealed),
		KDF:     &params,
	}, nil
}

// Decrypt opens env with a key derived from pin and returns the plaintext JSON.
// The caller owns the returned slice and should clear it when done.
func (c *Codec) Decrypt(ctx context.Context, env *Envelope, pin string) ([]byte, error) {
	if env == nil {
		return nil, fmt.Errorf("%w: nil envelope", ErrMalformedEnvelope)
	}
	salt, sealed, params, err := env.decode()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := deriveKey(pin, salt, params)
	defer clear(key)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	nonce := sealed[:chacha20poly1305.NonceSizeX]
	ct := sealed[chacha20poly1305.NonceSizeX:]
	plain, err := aead.Open(nil, nonce, ct, []byte(env.Version))
	if err != nil {
		return nil, ErrDecryption
	}
	return plain, nil
}

// IsEnvelope reports whether raw is a JSON object carrying all of the
// envelope keys. Anything else is a candidate plain backup.
func IsEnvelope(raw []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for _, k := range []string{"version", "salt", "payload"} {
		if _, ok := fields[k]; !ok {
			return false
		}
	}
	return true
}

// decode checks the envelope structure and returns its binary parts.
func (env *Envelope) decode() (salt, sealed []byte, params Params, err error) {
	if env.Version != Version {
		return nil, nil, Params{}, fmt.Errorf("%w: unsupported version %q", ErrMalformedEnvelope, env.Version)
	}
	params = DefaultParams
	if env.KDF != nil {
		params = *env.KDF
	}
	if err := params.validate(); err != nil {
		return nil, nil, Params{}, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}

	salt, err = base64.StdEncoding.DecodeString(env.Salt)
	if err != nil || len(salt) == 0 {
		return nil, nil, Params{}, fmt.Errorf("%w: bad salt", ErrMalformedEnvelope)
	}
	sealed, err = base64.StdEncoding.DecodeString(env.Payload)
	if err != nil {
		return nil, nil, Params{}, fmt.Errorf("%w: bad payload encoding", ErrMalformedEnvelope)
	}
	if len(sealed) < chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead {
		return nil, nil, Params{}, fmt.Errorf("%w: payload too short", ErrMalformedEnvelope)
	}
	return salt, sealed, params, nil
}

// Parse decodes an envelope from raw JSON and checks its structure.
func Parse(raw []byte) (*Envelope, error) {
	if !IsEnvelope(raw) {
		return nil, fmt.Errorf("%w: missing version, salt or payload", ErrMalformedEnvelope)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEnvelope, err)
	}
	if _, _, _, err := env.decode(); err != nil {
		return nil, err
	}
	return &env, nil
}

// Marshal encodes env as indented JSON.
func Marshal(env *Envelope) ([]byte, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling envelope: %w", err)
	}
	return data, nil
}
