package stats

import (
	"testing"

	"github.com/nemopss/spendwise/models"
	"github.com/stretchr/testify/assert"
)

var sample = []models.Transaction{
	{Amount: 500, Category: "Food", Date: "2025-06-01"},
	{Amount: 200, Category: "Food", Date: "2025-05-20"},
	{Amount: 700, Category: "Rent", Date: "2025-06-03"},
	{Amount: 50, Category: "Travel", Date: "2025-04-11"},
	{Amount: 10, Category: "Travel", Date: "not-a-date"},
}

func TestByCategory(t *testing.T) {
	got := ByCategory(sample)

	assert.Equal(t, []CategoryTotal{
		{Name: "Food", Value: 700},
		{Name: "Rent", Value: 700},
		{Name: "Travel", Value: 60},
	}, got)
	assert.Empty(t, ByCategory(nil))
}

func TestByMonth(t *testing.T) {
	got := ByMonth(sample)

	assert.Equal(t, []MonthTotal{
		{Month: "2025-04", Label: "April", Total: 50},
		{Month: "2025-05", Label: "May", Total: 200},
		{Month: "2025-06", Label: "June", Total: 1200},
	}, got)
}

func TestBudgetComparison(t *testing.T) {
	budgets := []models.Budget{
		{Category: "Food", Month: "2025-06", Amount: 600},
		{Category: "Food", Month: "2025-05", Amount: 150},
		{Category: "Health", Month: "2025-06", Amount: 100},
	}

	got := BudgetComparison(budgets, sample)

	assert.Equal(t, []BudgetStatus{
		{Category: "Food", Month: "2025-06", Budgeted: 600, Spent: 500},
		{Category: "Food", Month: "2025-05", Budgeted: 150, Spent: 200},
		{Category: "Health", Month: "2025-06", Budgeted: 100, Spent: 0},
	}, got)
}
