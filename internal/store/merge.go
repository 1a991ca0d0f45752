package store

import (
	"github.com/mywallet-dev/mywallet/internal/categories"
	"github.com/mywallet-dev/mywallet/internal/model"
)

type mergeFunc func(cur, in *model.Dataset)

// mergers lists the domains that do not simply replace the stored value.
var mergers = map[model.Domain]mergeFunc{
	model.DomainTransactions: func(cur, in *model.Dataset) {
		cur.Transactions = appendUnseen(cur.Transactions, in.Transactions)
	},
	model.DomainDebtCreditTransactions: func(cur, in *model.Dataset) {
		cur.DebtCreditTransactions = appendUnseen(cur.DebtCreditTransactions, in.DebtCreditTransactions)
	},
	model.DomainShareTransactions: func(cur, in *model.Dataset) {
		cur.ShareTransactions = appendUnseen(cur.ShareTransactions, in.ShareTransactions)
	},
	model.DomainCategories: func(cur, in *model.Dataset) {
		out := make([]model.Category, 0, len(cur.Categories)+len(in.Categories))
		for _, c := range cur.Categories {
			if categories.IsDefault(c) {
				out = append(out, c)
			}
		}
		cur.Categories = append(out, categories.UserDefined(in.Categories)...)
	},
}

func replace(d model.Domain) mergeFunc {
	return func(cur, in *model.Dataset) {
		cur.CopyDomain(in, d)
	}
}

// appendUnseen appends the records of add whose ID is not in cur. Records
// without an ID are always appended.
func appendUnseen[T model.Record](cur, add []T) []T {
	seen := make(map[string]bool, len(cur))
	for _, r := range cur {
		seen[r.RecordID()] = true
	}
	out := make([]T, len(cur), len(cur)+len(add))
	copy(out, cur)
	for _, r := range add {
		k := r.RecordID()
		if k != "" && seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}
