package categories

import "github.com/mywallet-dev/mywallet/internal/model"

// Defaults returns the system category chart shipped with every wallet.
// These are never written to backups.
func Defaults() []model.Category {
	return []model.Category{
		{ID: "default-salary", Name: "Salary", Type: model.CategoryIncome, Icon: "briefcase", IsDefault: true},
		{ID: "default-freelance", Name: "Freelance", Type: model.CategoryIncome, Icon: "laptop", IsDefault: true},
		{ID: "default-investments", Name: "Investments", Type: model.CategoryIncome, Icon: "trending-up", IsDefault: true},
		{ID: "default-gifts", Name: "Gifts", Type: model.CategoryIncome, Icon: "gift", IsDefault: true},
		{ID: "default-food", Name: "Food & Dining", Type: model.CategoryExpense, Icon: "utensils", IsDefault: true},
		{ID: "default-transport", Name: "Transportation", Type: model.CategoryExpense, Icon: "car", IsDefault: true},
		{ID: "default-housing", Name: "Housing", Type: model.CategoryExpense, Icon: "home", IsDefault: true},
		{ID: "default-utilities", Name: "Utilities", Type: model.CategoryExpense, Icon: "zap", IsDefault: true},
		{ID: "default-health", Name: "Healthcare", Type: model.CategoryExpense, Icon: "heart", IsDefault: true},
		{ID: "default-entertainment", Name: "Entertainment", Type: model.CategoryExpense, Icon: "film", IsDefault: true},
		{ID: "default-shopping", Name: "Shopping", Type: model.CategoryExpense, Icon: "shopping-bag", IsDefault: true},
		{ID: "default-education", Name: "Education", Type: model.CategoryExpense, Icon: "book", IsDefault: true},
	}
}

var defaultIDs = func() map[string]bool {
	ids := make(map[string]bool)
	for _, c := range Defaults() {
		ids[c.ID] = true
	}
	return ids
}()

// IsDefault reports whether c belongs to the system chart, either by flag
// or by carrying a system ID.
func IsDefault(c model.Category) bool {
	return c.IsDefault || defaultIDs[c.ID]
}

// UserDefined returns only the categories the user created. A nil input
// stays nil; a non-nil input always yields a non-nil slice.
func UserDefined(cats []model.Category) []model.Category {
	if cats == nil {
		return nil
	}
	out := make([]model.Category, 0, len(cats))
	for _, c := range cats {
		if !IsDefault(c) {
			out = append(out, c)
		}
	}
	return out
}
