package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtAccount is money the user owes (loans, mortgages, money borrowed from people).
type DebtAccount struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Lender       string          `json:"lender,omitempty"`
	Principal    decimal.Decimal `json:"principal"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interestRate"` // annual, percent
	DueDate      *time.Time      `json:"dueDate,omitempty"`
}

// CreditAccount is money owed to the user.
type CreditAccount struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Borrower string          `json:"borrower,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Balance  decimal.Decimal `json:"balance"`
	DueDate  *time.Time      `json:"dueDate,omitempty"`
}
