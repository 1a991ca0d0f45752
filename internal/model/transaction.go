package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is one entry in the wallet's income/expense log.
type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Description string          `json:"description,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}

// DebtCreditTransaction is a payment against a debt or credit account.
type DebtCreditTransaction struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"` // positive = repayment, negative = new borrowing
	Note      string          `json:"note,omitempty"`
}

// ShareTransaction is a buy or sell of a portfolio holding.
type ShareTransaction struct {
	ID          string          `json:"id"`
	PortfolioID string          `json:"portfolioId"`
	Symbol      string          `json:"symbol"`
	Date        time.Time       `json:"date"`
	Quantity    decimal.Decimal `json:"quantity"` // negative = sell
	Price       decimal.Decimal `json:"price"`
	Fees        decimal.Decimal `json:"fees"`
}
