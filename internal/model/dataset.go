package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Dataset holds wallet data, one field per Domain.
//
// Presence is structural: a nil slice or nil pointer means the domain is
// absent, while a non-nil empty slice means the domain is present but empty.
// The JSON encoding preserves that distinction.
type Dataset struct {
	UserProfile            *Profile                `json:"userProfile,omitzero"`
	Transactions           []Transaction           `json:"transactions,omitzero"`
	Budgets                []Budget                `json:"budgets,omitzero"`
	Goals                  []Goal                  `json:"goals,omitzero"`
	DebtAccounts           []DebtAccount           `json:"debtAccounts,omitzero"`
	CreditAccounts         []CreditAccount         `json:"creditAccounts,omitzero"`
	DebtCreditTransactions []DebtCreditTransaction `json:"debtCreditTransactions,omitzero"`
	Categories             []Category              `json:"categories,omitzero"`
	Portfolio              []Holding               `json:"portfolio,omitzero"`
	ShareTransactions      []ShareTransaction      `json:"shareTransactions,omitzero"`
	Portfolios             []Portfolio             `json:"portfolios,omitzero"`
	EmergencyFund          *decimal.Decimal        `json:"emergencyFund,omitempty"`
	ActivePortfolioID      *NullID                 `json:"activePortfolioId,omitzero"`
	Settings               *Settings               `json:"settings,omitzero"`
}

type accessor struct {
	has    func(*Dataset) bool
	count  func(*Dataset) int
	copy   func(dst, src *Dataset)
	clear  func(*Dataset)
	decode func(*Dataset, json.RawMessage) error
	ids    func(*Dataset) []string
}

func sequence[T Record](field func(*Dataset) *[]T) accessor {
	return accessor{
		has:   func(ds *Dataset) bool { return *field(ds) != nil },
		count: func(ds *Dataset) int { return len(*field(ds)) },
		copy:  func(dst, src *Dataset) { *field(dst) = slices.Clone(*field(src)) },
		clear: func(ds *Dataset) { *field(ds) = nil },
		ids: func(ds *Dataset) []string {
			recs := *field(ds)
			if recs == nil {
				return nil
			}
			out := make([]string, len(recs))
			for i, r := range recs {
				out[i] = r.RecordID()
			}
			return out
		},
		decode: func(ds *Dataset, raw json.RawMessage) error {
			if isNull(raw) {
				*field(ds) = nil
				return nil
			}
			var v []T
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			if v == nil {
				v = []T{}
			}
			*field(ds) = v
			return nil
		},
	}
}

func single[T any](field func(*Dataset) **T) accessor {
	return accessor{
		has: func(ds *Dataset) bool { return *field(ds) != nil },
		count: func(ds *Dataset) int {
			if *field(ds) == nil {
				return 0
			}
			return 1
		},
		copy: func(dst, src *Dataset) {
			if p := *field(src); p != nil {
				v := *p
				*field(dst) = &v
				return
			}
			*field(dst) = nil
		},
		clear: func(ds *Dataset) { *field(ds) = nil },
		decode: func(ds *Dataset, raw json.RawMessage) error {
			if isNull(raw) {
				*field(ds) = nil
				return nil
			}
			var v T
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			*field(ds) = &v
			return nil
		},
	}
}

// reference differs from single in that JSON null is a present value.
func reference(field func(*Dataset) **NullID) accessor {
	a := single(field)
	a.decode = func(ds *Dataset, raw json.RawMessage) error {
		var v NullID
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*field(ds) = &v
		return nil
	}
	return a
}

var accessors = map[Domain]accessor{
	DomainUserProfile:            single(func(ds *Dataset) **Profile { return &ds.UserProfile }),
	DomainTransactions:           sequence(func(ds *Dataset) *[]Transaction { return &ds.Transactions }),
	DomainBudgets:                sequence(func(ds *Dataset) *[]Budget { return &ds.Budgets }),
	DomainGoals:                  sequence(func(ds *Dataset) *[]Goal { return &ds.Goals }),
	DomainDebtAccounts:           sequence(func(ds *Dataset) *[]DebtAccount { return &ds.DebtAccounts }),
	DomainCreditAccounts:         sequence(func(ds *Dataset) *[]CreditAccount { return &ds.CreditAccounts }),
	DomainDebtCreditTransactions: sequence(func(ds *Dataset) *[]DebtCreditTransaction { return &ds.DebtCreditTransactions }),
	DomainCategories:             sequence(func(ds *Dataset) *[]Category { return &ds.Categories }),
	DomainPortfolio:              sequence(func(ds *Dataset) *[]Holding { return &ds.Portfolio }),
	DomainShareTransactions:      sequence(func(ds *Dataset) *[]ShareTransaction { return &ds.ShareTransactions }),
	DomainPortfolios:             sequence(func(ds *Dataset) *[]Portfolio { return &ds.Portfolios }),
	DomainEmergencyFund:          single(func(ds *Dataset) **decimal.Decimal { return &ds.EmergencyFund }),
	DomainActivePortfolioID:      reference(func(ds *Dataset) **NullID { return &ds.ActivePortfolioID }),
	DomainSettings:               single(func(ds *Dataset) **Settings { return &ds.Settings }),
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Has reports whether domain d is present.
func (ds *Dataset) Has(d Domain) bool {
	a, ok := accessors[d]
	return ok && a.has(ds)
}

// Domains returns the present domains in canonical order.
func (ds *Dataset) Domains() []Domain {
	var out []Domain
	for _, d := range allDomains {
		if accessors[d].has(ds) {
			out = append(out, d)
		}
	}
	return out
}

// Count returns the number of records in domain d (1 for present scalars).
func (ds *Dataset) Count(d Domain) int {
	a, ok := accessors[d]
	if !ok {
		return 0
	}
	return a.count(ds)
}

// CopyDomain copies domain d from src into ds. Slices are shallow-cloned so
// later appends to either side do not alias.
func (ds *Dataset) CopyDomain(src *Dataset, d Domain) {
	if a, ok := accessors[d]; ok {
		a.copy(ds, src)
	}
}

// IDs returns the record IDs of sequence domain d in order. It returns nil
// for scalar domains and absent sequences.
func (ds *Dataset) IDs(d Domain) []string {
	a, ok := accessors[d]
	if !ok || a.ids == nil {
		return nil
	}
	return a.ids(ds)
}

// Clear removes domain d.
func (ds *Dataset) Clear(d Domain) {
	if a, ok := accessors[d]; ok {
		a.clear(ds)
	}
}

// ClearAll removes every domain.
func (ds *Dataset) ClearAll() {
	*ds = Dataset{}
}

// DecodeDomain decodes the raw JSON value of domain d into ds. On error ds is
// left unchanged for that domain.
func (ds *Dataset) DecodeDomain(d Domain, raw json.RawMessage) error {
	a, ok := accessors[d]
	if !ok {
		return fmt.Errorf("unknown domain %q", d)
	}
	var tmp Dataset
	if err := a.decode(&tmp, raw); err != nil {
		return fmt.Errorf("decoding %s: %w", d, err)
	}
	a.copy(ds, &tmp)
	return nil
}

// Empty reports whether no domain is present.
func (ds *Dataset) Empty() bool {
	return len(ds.Domains()) == 0
}
