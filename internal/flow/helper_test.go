package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mywallet-dev/mywallet/internal/credential"
	"github.com/mywallet-dev/mywallet/internal/envelope"
	"github.com/mywallet-dev/mywallet/internal/model"
	"github.com/mywallet-dev/mywallet/internal/prefs"
)

const activePIN = "123456"

var fastParams = envelope.Params{Time: 1, MemoryKiB: 1024, Threads: 1}

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// fakeCreds is an in-memory credential store.
type fakeCreds struct {
	pin string
}

func (c *fakeCreds) HasActiveCredential() bool { return c.pin != "" }
func (c *fakeCreds) Validate(pin string) bool  { return c.pin != "" && pin == c.pin }

// memStore records merges and serves a fixed snapshot.
type memStore struct {
	mu       sync.Mutex
	data     model.Dataset
	merges   []model.Dataset
	mergeErr error
	readErr  error
}

func (s *memStore) ReadAllDomains(ctx context.Context) (model.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return model.Dataset{}, s.readErr
	}
	return s.data, nil
}

func (s *memStore) MergeSelective(ctx context.Context, p model.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mergeErr != nil {
		return s.mergeErr
	}
	s.merges = append(s.merges, p)
	return nil
}

// recorder collects notifications.
type recorder struct {
	mu    sync.Mutex
	kinds []prefs.ActivityKind
}

func (r *recorder) Notify(kind prefs.ActivityKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func (r *recorder) got() []prefs.ActivityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]prefs.ActivityKind(nil), r.kinds...)
}

func newCodec(t *testing.T) *envelope.Codec {
	t.Helper()
	c, err := envelope.NewCodec(fastParams)
	require.NoError(t, err)
	return c
}

func newGate(t *testing.T, pin string) *credential.Gate {
	t.Helper()
	return credential.NewGate(&fakeCreds{pin: pin}, newCodec(t))
}

func liveData() model.Dataset {
	fund := dec("1500")
	return model.Dataset{
		UserProfile: &model.Profile{Name: "Ana", Currency: "EUR"},
		Transactions: []model.Transaction{
			{ID: "t1", Type: model.TransactionExpense, Amount: dec("12.5")},
			{ID: "t2", Type: model.TransactionIncome, Amount: dec("3000")},
			{ID: "t3", Type: model.TransactionExpense, Amount: dec("7")},
		},
		Goals: []model.Goal{{ID: "g1", Name: "Bike", Target: dec("800")}},
		Categories: []model.Category{
			{ID: "default-food", Name: "Food & Dining", Type: model.CategoryExpense, IsDefault: true},
			{ID: "cat-pets", Name: "Pets", Type: model.CategoryExpense},
		},
		EmergencyFund: &fund,
		Settings:      &model.Settings{ShowScrollbars: true},
	}
}

// encryptedBackup returns an envelope file holding liveData under pin.
func encryptedBackup(t *testing.T, pin string) []byte {
	t.Helper()
	store := &memStore{data: liveData()}
	f := NewExport(newGate(t, pin), newCodec(t), store, Options{Logger: discard()})
	file, err := f.Confirm(context.Background(), selectAll(), pin)
	require.NoError(t, err)
	return file.Data
}

// blockingGate holds decryption until release is closed.
type blockingGate struct {
	inner   ImportGate
	started chan struct{}
	release chan struct{}
}

func (g *blockingGate) ValidateForImportDecrypt(ctx context.Context, pin string, env *envelope.Envelope) ([]byte, error) {
	close(g.started)
	<-g.release
	return g.inner.ValidateForImportDecrypt(ctx, pin, env)
}

// blockingCodec holds encryption until release is closed.
type blockingCodec struct {
	inner   Encrypter
	started chan struct{}
	release chan struct{}
}

func (c *blockingCodec) Encrypt(ctx context.Context, v any, pin string) (*envelope.Envelope, error) {
	close(c.started)
	<-c.release
	return c.inner.Encrypt(ctx, v, pin)
}

var errDiskFull = errors.New("disk full")
