// Package stats aggregates a user's transactions for the dashboard charts.
package stats

import (
	"sort"
	"time"

	"github.com/nemopss/spendwise/models"
)

type CategoryTotal struct {
	Name  string  `json:"name" example:"Food"`
	Value float64 `json:"value" example:"1250.5"`
}

type MonthTotal struct {
	Month string  `json:"month" example:"2025-06"`
	Label string  `json:"label" example:"June"`
	Total float64 `json:"total" example:"3400"`
}

type BudgetStatus struct {
	Category string  `json:"category" example:"Food"`
	Month    string  `json:"month" example:"2025-06"`
	Budgeted float64 `json:"budgeted" example:"1200"`
	Spent    float64 `json:"spent" example:"860"`
}

// ByCategory sums amounts per category, largest first.
func ByCategory(txs []models.Transaction) []CategoryTotal {
	totals := map[string]float64{}
	for _, tx := range txs {
		totals[tx.Category] += tx.Amount
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, value := range totals {
		out = append(out, CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ByMonth sums amounts per calendar month, oldest first. Transactions with
// a malformed date are skipped.
func ByMonth(txs []models.Transaction) []MonthTotal {
	totals := map[string]float64{}
	for _, tx := range txs {
		if m, ok := monthOf(tx.Date); ok {
			totals[m] += tx.Amount
		}
	}

	out := make([]MonthTotal, 0, len(totals))
	for month, total := range totals {
		out = append(out, MonthTotal{Month: month, Label: label(month), Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// BudgetComparison pairs every budget with what was spent in its category
// during its month. Order follows budgets.
func BudgetComparison(budgets []models.Budget, txs []models.Transaction) []BudgetStatus {
	type key struct{ category, month string }
	spent := map[key]float64{}
	for _, tx := range txs {
		if m, ok := monthOf(tx.Date); ok {
			spent[key{tx.Category, m}] += tx.Amount
		}
	}

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetStatus{
			Category: b.Category,
			Month:    b.Month,
			Budgeted: b.Amount,
			Spent:    spent[key{b.Category, b.Month}],
		})
	}
	return out
}

func monthOf(date string) (string, bool) {
	d, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return "", false
	}
	return d.Format("2006-01"), true
}

func label(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Month().String()
}
