package model

import "fmt"

// Domain names one independently selectable category of wallet data.
type Domain string

const (
	DomainUserProfile            Domain = "userProfile"
	DomainTransactions           Domain = "transactions"
	DomainBudgets                Domain = "budgets"
	DomainGoals                  Domain = "goals"
	DomainDebtAccounts           Domain = "debtAccounts"
	DomainCreditAccounts         Domain = "creditAccounts"
	DomainDebtCreditTransactions Domain = "debtCreditTransactions"
	DomainCategories             Domain = "categories"
	DomainPortfolio              Domain = "portfolio"
	DomainShareTransactions      Domain = "shareTransactions"
	DomainPortfolios             Domain = "portfolios"
	DomainEmergencyFund          Domain = "emergencyFund"
	DomainActivePortfolioID      Domain = "activePortfolioId"
	DomainSettings               Domain = "settings"
)

// DomainKind describes the JSON shape a domain is stored as.
type DomainKind string

const (
	KindRecord    DomainKind = "record"
	KindSequence  DomainKind = "sequence"
	KindScalar    DomainKind = "scalar"
	KindReference DomainKind = "reference"
	KindObject    DomainKind = "object"
)

// Schema versions a domain can first appear in.
const (
	SchemaV1 = "1.0"
	SchemaV2 = "2.0"
)

type domainInfo struct {
	kind       DomainKind
	appendOnly bool
	parent     Domain
	since      string
}

// allDomains is the canonical order used for output and iteration.
var allDomains = []Domain{
	DomainUserProfile,
	DomainTransactions,
	DomainBudgets,
	DomainGoals,
	DomainDebtAccounts,
	DomainCreditAccounts,
	DomainDebtCreditTransactions,
	DomainCategories,
	DomainPortfolio,
	DomainShareTransactions,
	DomainPortfolios,
	DomainEmergencyFund,
	DomainActivePortfolioID,
	DomainSettings,
}

var domainTable = map[Domain]domainInfo{
	DomainUserProfile:            {kind: KindRecord, since: SchemaV1},
	DomainTransactions:           {kind: KindSequence, appendOnly: true, since: SchemaV1},
	DomainBudgets:                {kind: KindSequence, since: SchemaV1},
	DomainGoals:                  {kind: KindSequence, since: SchemaV1},
	DomainDebtAccounts:           {kind: KindSequence, since: SchemaV1},
	DomainCreditAccounts:         {kind: KindSequence, since: SchemaV1},
	DomainDebtCreditTransactions: {kind: KindSequence, appendOnly: true, since: SchemaV1},
	DomainCategories:             {kind: KindSequence, since: SchemaV1},
	DomainPortfolio:              {kind: KindSequence, since: SchemaV2},
	DomainShareTransactions:      {kind: KindSequence, appendOnly: true, since: SchemaV2},
	DomainPortfolios:             {kind: KindSequence, since: SchemaV2},
	DomainEmergencyFund:          {kind: KindScalar, since: SchemaV1},
	DomainActivePortfolioID:      {kind: KindReference, since: SchemaV2},
	DomainSettings:               {kind: KindObject, parent: DomainUserProfile, since: SchemaV1},
}

// AllDomains returns every domain in canonical order.
func AllDomains() []Domain {
	out := make([]Domain, len(allDomains))
	copy(out, allDomains)
	return out
}

// ParseDomain converts a domain name into a Domain.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if _, ok := domainTable[d]; !ok {
		return "", fmt.Errorf("unknown domain %q", s)
	}
	return d, nil
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	_, ok := domainTable[d]
	return ok
}

// Kind returns the JSON shape of the domain.
func (d Domain) Kind() DomainKind { return domainTable[d].kind }

// AppendOnly reports whether imports append to the domain instead of replacing it.
// Append-only domains are raw logs and are exempt from replace idempotency.
func (d Domain) AppendOnly() bool { return domainTable[d].appendOnly }

// Parent returns the domain d depends on, or "" for top-level domains.
func (d Domain) Parent() Domain { return domainTable[d].parent }

// Since returns the schema version that introduced d.
func (d Domain) Since() string { return domainTable[d].since }

func (d Domain) String() string { return string(d) }
