package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mywallet-dev/mywallet/internal/model"
)

type fakeSettings struct {
	current model.Settings
	fail    bool
}

func (f *fakeSettings) Settings() model.Settings { return f.current }

func (f *fakeSettings) ApplySettings(s model.Settings) error {
	if f.fail {
		return errors.New("settings locked")
	}
	f.current = s
	return nil
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	fund := decimal.NewFromInt(1000)
	err := s.Write(context.Background(), model.Dataset{
		Transactions: []model.Transaction{{ID: "t1"}, {ID: "t2"}},
		Goals:        []model.Goal{{ID: "g1", Name: "Car"}},
		Categories: []model.Category{
			{ID: "default-food", Name: "Food & Dining", IsDefault: true},
			{ID: "cat-old", Name: "Old"},
		},
		EmergencyFund:     &fund,
		ActivePortfolioID: model.NoID(),
	})
	require.NoError(t, err)
}

func TestReadAllDomains_Empty(t *testing.T) {
	s := New(t.TempDir(), nil)
	ds, err := s.ReadAllDomains(context.Background())
	require.NoError(t, err)
	assert.True(t, ds.Empty())
}

func TestWriteRead(t *testing.T) {
	s := New(t.TempDir(), &fakeSettings{current: model.Settings{ShowScrollbars: true}})
	seed(t, s)

	ds, err := s.ReadAllDomains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Domain{
		model.DomainTransactions,
		model.DomainGoals,
		model.DomainCategories,
		model.DomainEmergencyFund,
		model.DomainActivePortfolioID,
		model.DomainSettings,
	}, ds.Domains())
	assert.Len(t, ds.Transactions, 2)
	assert.True(t, ds.EmergencyFund.Equal(decimal.NewFromInt(1000)))
	assert.False(t, ds.ActivePortfolioID.Valid, "null reference survives the round trip")
	assert.True(t, ds.Settings.ShowScrollbars)
}

func TestMergeSelective_ReplaceDomain(t *testing.T) {
	s := New(t.TempDir(), nil)
	seed(t, s)
	ctx := context.Background()

	err := s.MergeSelective(ctx, model.Dataset{Goals: []model.Goal{{ID: "g2", Name: "House"}}})
	require.NoError(t, err)

	ds, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Goals, 1)
	assert.Equal(t, "g2", ds.Goals[0].ID)
	assert.Len(t, ds.Transactions, 2, "untouched domain unchanged")
}

func TestMergeSelective_AppendOnly(t *testing.T) {
	s := New(t.TempDir(), nil)
	seed(t, s)
	ctx := context.Background()

	err := s.MergeSelective(ctx, model.Dataset{Transactions: []model.Transaction{{ID: "t2"}, {ID: "t3"}}})
	require.NoError(t, err)

	ds, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)
	var ids []string
	for _, tx := range ds.Transactions {
		ids = append(ids, tx.ID)
	}
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids)
}

func TestMergeSelective_KeepsSystemCategories(t *testing.T) {
	s := New(t.TempDir(), nil)
	seed(t, s)
	ctx := context.Background()

	err := s.MergeSelective(ctx, model.Dataset{Categories: []model.Category{{ID: "cat-new", Name: "New"}}})
	require.NoError(t, err)

	ds, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Categories, 2)
	assert.Equal(t, "default-food", ds.Categories[0].ID)
	assert.Equal(t, "cat-new", ds.Categories[1].ID)
}

func TestMergeSelective_ZeroFund(t *testing.T) {
	s := New(t.TempDir(), nil)
	seed(t, s)
	ctx := context.Background()

	zero := decimal.Zero
	require.NoError(t, s.MergeSelective(ctx, model.Dataset{EmergencyFund: &zero}))

	ds, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)
	require.True(t, ds.Has(model.DomainEmergencyFund), "a zero fund replaces the old value")
	assert.True(t, ds.EmergencyFund.IsZero())
}

func TestMergeSelective_Idempotent(t *testing.T) {
	s := New(t.TempDir(), &fakeSettings{})
	seed(t, s)
	ctx := context.Background()

	fund := decimal.NewFromInt(250)
	payload := model.Dataset{
		Transactions:      []model.Transaction{{ID: "t9"}},
		Goals:             []model.Goal{{ID: "g2"}},
		EmergencyFund:     &fund,
		ActivePortfolioID: model.SomeID("p1"),
		Settings:          &model.Settings{ShowScrollbars: true},
	}

	require.NoError(t, s.MergeSelective(ctx, payload))
	once, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)

	require.NoError(t, s.MergeSelective(ctx, payload))
	twice, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)

	a, err := json.Marshal(once)
	require.NoError(t, err)
	b, err := json.Marshal(twice)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestMergeSelective_FailureLeavesStoreUntouched(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, &fakeSettings{fail: true})
	seed(t, s)
	ctx := context.Background()

	err := s.MergeSelective(ctx, model.Dataset{
		Goals:    []model.Goal{{ID: "g2"}},
		Settings: &model.Settings{ShowScrollbars: true},
	})
	require.Error(t, err)

	ds, err := s.ReadAllDomains(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Goals, 1)
	assert.Equal(t, "g1", ds.Goals[0].ID)

	matches, err := filepath.Glob(filepath.Join(dir, "data", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "staged files are cleaned up")
}

func TestWrite_ReplaceFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	settings := &fakeSettings{current: model.Settings{ShowScrollbars: true}}
	s := New(dir, settings)
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, model.Dataset{Transactions: []model.Transaction{{ID: "t1"}}}))

	// goals.json cannot be replaced once transactions and budgets already were.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data", "goals.json", "x"), 0o755))

	err := s.Write(ctx, model.Dataset{
		Transactions: []model.Transaction{{ID: "t9"}},
		Budgets:      []model.Budget{{ID: "b1"}},
		Goals:        []model.Goal{{ID: "g9"}},
		Settings:     &model.Settings{ShowScrollbars: false},
	})
	require.Error(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "data", "transactions.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"t1"`)
	assert.NotContains(t, string(data), `"t9"`)

	_, err = os.Stat(filepath.Join(dir, "data", "budgets.json"))
	assert.True(t, os.IsNotExist(err), "new domain file removed again")
	assert.True(t, settings.current.ShowScrollbars, "settings restored")

	matches, err := filepath.Glob(filepath.Join(dir, "data", "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestReadAllDomains_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "goals.json"), []byte(`{"goals": "nope"}`), 0o644))

	_, err := s.ReadAllDomains(context.Background())
	assert.Error(t, err)
}

func TestMergeSelective_CancelledContext(t *testing.T) {
	s := New(t.TempDir(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := s.MergeSelective(ctx, model.Dataset{Goals: []model.Goal{}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAppendUnseen(t *testing.T) {
	cur := []model.Goal{{ID: "a"}, {ID: "b"}}
	add := []model.Goal{{ID: "b"}, {ID: "c"}, {ID: "c"}, {}, {}}
	got := appendUnseen(cur, add)
	assert.Equal(t, []model.Goal{{ID: "a"}, {ID: "b"}, {ID: "c"}, {}, {}}, got)
}
