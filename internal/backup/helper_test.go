package backup

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mywallet-dev/mywallet/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

var fixedNow = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }

// fullDataset returns live data with every domain populated.
func fullDataset() *model.Dataset {
	fund := dec("2500.50")
	return &model.Dataset{
		UserProfile: &model.Profile{Name: "Ana", Currency: "EUR", CreatedAt: date(2024, 6, 1)},
		Transactions: []model.Transaction{
			{ID: "t1", Date: date(2025, 1, 3), Type: model.TransactionExpense, Amount: dec("4.5"), CategoryID: "default-food"},
			{ID: "t2", Date: date(2025, 1, 5), Type: model.TransactionIncome, Amount: dec("3500"), CategoryID: "default-salary"},
		},
		Budgets: []model.Budget{
			{ID: "b1", CategoryID: "default-food", Limit: dec("400"), Period: model.PeriodMonthly, StartDate: date(2025, 1, 1)},
		},
		Goals: []model.Goal{
			{ID: "g1", Name: "Holiday", Target: dec("1200"), Saved: dec("300")},
		},
		DebtAccounts:   []model.DebtAccount{{ID: "d1", Name: "Car loan", Principal: dec("9000"), Balance: dec("6100"), InterestRate: dec("4.9")}},
		CreditAccounts: []model.CreditAccount{{ID: "c1", Name: "Lent to Sam", Amount: dec("200"), Balance: dec("150")}},
		DebtCreditTransactions: []model.DebtCreditTransaction{
			{ID: "dc1", AccountID: "d1", Date: date(2025, 1, 10), Amount: dec("250")},
		},
		Categories: []model.Category{
			{ID: "default-food", Name: "Food & Dining", Type: model.CategoryExpense, IsDefault: true},
			{ID: "cat-pets", Name: "Pets", Type: model.CategoryExpense},
		},
		Portfolio:         []model.Holding{{ID: "h1", PortfolioID: "p1", Symbol: "VWCE", Quantity: dec("12"), AverageCost: dec("101.25")}},
		ShareTransactions: []model.ShareTransaction{{ID: "s1", PortfolioID: "p1", Symbol: "VWCE", Date: date(2025, 2, 1), Quantity: dec("12"), Price: dec("101.25"), Fees: dec("1.5")}},
		Portfolios:        []model.Portfolio{{ID: "p1", Name: "Long term", Currency: "EUR"}},
		EmergencyFund:     &fund,
		ActivePortfolioID: model.SomeID("p1"),
		Settings:          &model.Settings{ShowScrollbars: true},
	}
}
