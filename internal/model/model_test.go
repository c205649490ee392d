package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpense_Validate(t *testing.T) {
	tests := []struct {
		name    string
		expense Expense
		field   string
	}{
		{"valid", Expense{Amount: 12.5, CategoryID: CategoryFood}, ""},
		{"zero amount", Expense{Amount: 0, CategoryID: CategoryFood}, "amount"},
		{"negative amount", Expense{Amount: -3, CategoryID: CategoryFood}, "amount"},
		{"nan amount", Expense{Amount: math.NaN(), CategoryID: CategoryFood}, "amount"},
		{"above maximum", Expense{Amount: MaxExpenseAmount + 1, CategoryID: CategoryFood}, "amount"},
		{"unknown category", Expense{Amount: 10, CategoryID: "pets"}, "category_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var fe *FieldError
			if assert.ErrorAs(t, err, &fe) {
				assert.Equal(t, tt.field, fe.Field)
			}
		})
	}
}

func TestToggle_UnknownField(t *testing.T) {
	task := &Task{}
	assert.False(t, task.Toggle(FieldReimbursed))
	assert.False(t, task.Completed)

	assert.True(t, task.Toggle(FieldCompleted))
	assert.True(t, task.Completed)

	expense := &Expense{}
	assert.False(t, expense.Toggle(FieldCompleted))
	assert.True(t, expense.Toggle(FieldReimbursed))
	assert.True(t, expense.Reimbursed)
}

func TestCategories_ReturnsCopy(t *testing.T) {
	list := Categories()
	list[0].Name = "changed"

	c, ok := LookupCategory(CategoryFood)
	assert.True(t, ok)
	assert.Equal(t, "Еда", c.Name)
}
