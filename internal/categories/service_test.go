package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mywallet-dev/mywallet/internal/model"
)

func TestDefaults(t *testing.T) {
	defs := Defaults()
	require.Len(t, defs, 12)
	for _, c := range defs {
		assert.True(t, c.IsDefault, "%s should be flagged default", c.ID)
		assert.True(t, IsDefault(c))
	}
}

func TestUserDefined(t *testing.T) {
	cats := []model.Category{
		{ID: "default-food", Name: "Food & Dining", Type: model.CategoryExpense},
		{ID: "c1", Name: "Pets", Type: model.CategoryExpense},
		{ID: "c2", Name: "Side hustle", Type: model.CategoryIncome, IsDefault: true},
		{ID: "c3", Name: "Hobbies", Type: model.CategoryExpense},
	}

	got := UserDefined(cats)
	require.Len(t, got, 2)
	assert.Equal(t, "c1", got[0].ID)
	assert.Equal(t, "c3", got[1].ID)
}

func TestUserDefined_NilAndEmpty(t *testing.T) {
	assert.Nil(t, UserDefined(nil))

	got := UserDefined(Defaults())
	assert.NotNil(t, got, "present input stays present")
	assert.Empty(t, got)
}

func TestService_Lookup(t *testing.T) {
	svc := WithDefaults([]model.Category{
		{ID: "c1", Name: "Pets", Type: model.CategoryExpense},
		{ID: "default-food", Name: "Shadowed", Type: model.CategoryExpense},
	})

	assert.Len(t, svc.All(), 13)
	assert.True(t, svc.Exists("c1"))
	assert.False(t, svc.Exists("missing"))

	c, ok := svc.Get("default-food")
	require.True(t, ok)
	assert.Equal(t, "Food & Dining", c.Name)

	assert.Len(t, svc.ByType(model.CategoryIncome), 4)
	assert.Len(t, svc.ByType(model.CategoryExpense), 9)

	user := svc.UserDefined()
	require.Len(t, user, 1)
	assert.Equal(t, "Pets", user[0].Name)
}
