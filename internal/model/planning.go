package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the window a budget limit applies to.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Budget caps spending in one category over a period.
type Budget struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
	Period     BudgetPeriod    `json:"period"`
	StartDate  time.Time       `json:"startDate"`
}

// Goal is a savings target.
type Goal struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Target    decimal.Decimal `json:"target"`
	Saved     decimal.Decimal `json:"saved"`
	Deadline  *time.Time      `json:"deadline,omitempty"`
	Completed bool            `json:"completed"`
}

// Achieved reports whether the saved amount reached the target.
func (g Goal) Achieved() bool {
	return g.Completed || g.Saved.GreaterThanOrEqual(g.Target)
}
