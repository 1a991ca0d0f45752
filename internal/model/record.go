package model

// Record is an element of a sequence domain.
type Record interface {
	RecordID() string
}

func (t Transaction) RecordID() string           { return t.ID }
func (t DebtCreditTransaction) RecordID() string { return t.ID }
func (t ShareTransaction) RecordID() string      { return t.ID }
func (b Budget) RecordID() string                { return b.ID }
func (g Goal) RecordID() string                  { return g.ID }
func (a DebtAccount) RecordID() string           { return a.ID }
func (a CreditAccount) RecordID() string         { return a.ID }
func (c Category) RecordID() string              { return c.ID }
func (h Holding) RecordID() string               { return h.ID }
func (p Portfolio) RecordID() string             { return p.ID }
