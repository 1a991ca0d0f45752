package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_PresenceIsStructural(t *testing.T) {
	ds := Dataset{
		Transactions: []Transaction{},
		Goals:        []Goal{{ID: "g1", Name: "Car"}},
	}

	assert.True(t, ds.Has(DomainTransactions), "empty slice is present")
	assert.True(t, ds.Has(DomainGoals))
	assert.False(t, ds.Has(DomainBudgets), "nil slice is absent")
	assert.Equal(t, []Domain{DomainTransactions, DomainGoals}, ds.Domains())
	assert.Equal(t, 0, ds.Count(DomainTransactions))
	assert.Equal(t, 1, ds.Count(DomainGoals))
}

func TestDataset_JSONKeepsEmptyDropsAbsent(t *testing.T) {
	ds := Dataset{Transactions: []Transaction{}}

	data, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions":[]}`, string(data))
}

func TestDataset_ZeroFundIsPresent(t *testing.T) {
	zero := decimal.Zero
	data, err := json.Marshal(Dataset{EmergencyFund: &zero})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"emergencyFund"`)

	var got Dataset
	require.NoError(t, json.Unmarshal(data, &got))
	require.True(t, got.Has(DomainEmergencyFund))
	assert.True(t, got.EmergencyFund.IsZero())
}

func TestDataset_ActivePortfolioNull(t *testing.T) {
	ds := Dataset{ActivePortfolioID: NoID()}
	data, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.JSONEq(t, `{"activePortfolioId":null}`, string(data))

	var got Dataset
	require.NoError(t, got.DecodeDomain(DomainActivePortfolioID, json.RawMessage(`null`)))
	assert.True(t, got.Has(DomainActivePortfolioID), "null reference is still present")
	assert.False(t, got.ActivePortfolioID.Valid)

	require.NoError(t, got.DecodeDomain(DomainActivePortfolioID, json.RawMessage(`"p1"`)))
	assert.Equal(t, "p1", got.ActivePortfolioID.ID)
	assert.True(t, got.ActivePortfolioID.Valid)
}

func TestDataset_DecodeDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		raw     string
		wantErr bool
		present bool
	}{
		{"array", DomainTransactions, `[{"id":"t1","amount":"4.5"}]`, false, true},
		{"empty array", DomainGoals, `[]`, false, true},
		{"null sequence", DomainGoals, `null`, false, false},
		{"object for array", DomainTransactions, `{"id":"t1"}`, true, false},
		{"string for array", DomainBudgets, `"oops"`, true, false},
		{"profile object", DomainUserProfile, `{"name":"Ana","currency":"EUR"}`, false, true},
		{"profile array", DomainUserProfile, `[1,2]`, true, false},
		{"fund number", DomainEmergencyFund, `1500.25`, false, true},
		{"fund string", DomainEmergencyFund, `"1500.25"`, false, true},
		{"fund object", DomainEmergencyFund, `{}`, true, false},
		{"reference number", DomainActivePortfolioID, `42`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ds Dataset
			err := ds.DecodeDomain(tt.domain, json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.present, ds.Has(tt.domain))
		})
	}
}

func TestDataset_DecodeErrorLeavesExistingValue(t *testing.T) {
	ds := Dataset{Goals: []Goal{{ID: "g1"}}}
	err := ds.DecodeDomain(DomainGoals, json.RawMessage(`"not an array"`))
	require.Error(t, err)
	require.Len(t, ds.Goals, 1)
	assert.Equal(t, "g1", ds.Goals[0].ID)
}

func TestDataset_CopyDomainDoesNotAlias(t *testing.T) {
	fund := decimal.NewFromInt(100)
	src := Dataset{
		Goals:         []Goal{{ID: "g1"}},
		EmergencyFund: &fund,
	}
	var dst Dataset
	dst.CopyDomain(&src, DomainGoals)
	dst.CopyDomain(&src, DomainEmergencyFund)

	dst.Goals[0].ID = "changed"
	*dst.EmergencyFund = decimal.NewFromInt(5)

	assert.Equal(t, "g1", src.Goals[0].ID)
	assert.True(t, src.EmergencyFund.Equal(decimal.NewFromInt(100)))
}

func TestDataset_IDs(t *testing.T) {
	fund := decimal.NewFromInt(10)
	ds := Dataset{
		Goals:         []Goal{{ID: "g1"}, {ID: "g2"}},
		Budgets:       []Budget{},
		EmergencyFund: &fund,
	}
	assert.Equal(t, []string{"g1", "g2"}, ds.IDs(DomainGoals))
	assert.Equal(t, []string{}, ds.IDs(DomainBudgets))
	assert.Nil(t, ds.IDs(DomainTransactions), "absent")
	assert.Nil(t, ds.IDs(DomainEmergencyFund), "scalar")
}

func TestDataset_ClearAndEmpty(t *testing.T) {
	ds := Dataset{Goals: []Goal{}, Settings: &Settings{ShowScrollbars: true}}
	assert.False(t, ds.Empty())

	ds.Clear(DomainGoals)
	assert.False(t, ds.Has(DomainGoals))

	ds.ClearAll()
	assert.True(t, ds.Empty())
}

func TestDomainTable(t *testing.T) {
	for _, d := range AllDomains() {
		assert.True(t, d.Valid(), "%s", d)
		_, ok := accessors[d]
		assert.True(t, ok, "accessor for %s", d)
	}

	assert.True(t, DomainTransactions.AppendOnly())
	assert.True(t, DomainShareTransactions.AppendOnly())
	assert.False(t, DomainGoals.AppendOnly())
	assert.Equal(t, DomainUserProfile, DomainSettings.Parent())
	assert.Equal(t, Domain(""), DomainGoals.Parent())
	assert.Equal(t, SchemaV2, DomainPortfolios.Since())
	assert.Equal(t, KindReference, DomainActivePortfolioID.Kind())

	d, err := ParseDomain("debtAccounts")
	require.NoError(t, err)
	assert.Equal(t, DomainDebtAccounts, d)

	_, err = ParseDomain("nope")
	assert.Error(t, err)
}

func TestGoalAchieved(t *testing.T) {
	g := Goal{Target: decimal.NewFromInt(100), Saved: decimal.NewFromInt(40)}
	assert.False(t, g.Achieved())
	g.Saved = decimal.NewFromInt(100)
	assert.True(t, g.Achieved())
}
