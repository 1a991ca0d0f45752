package commands

import (
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func nowUTC() time.Time { return time.Now().UTC() }

func validCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// formatMoney renders an amount in the currency's own format, e.g. "€1,500.00".
func formatMoney(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}
