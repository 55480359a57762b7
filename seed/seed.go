// Package seed generates demo transactions for a fresh account.
package seed

import (
	"math/rand/v2"
	"time"

	"github.com/nemopss/spendwise/models"
)

const (
	Months        = 12
	maxPerMonth   = 4
	minAmount     = 100
	amountSpread  = 5000
	maxDayOfMonth = 28
)

// Descriptions lists the sample descriptions per category. The keys match
// the default categories.
var Descriptions = map[string][]string{
	"Food":           {"Grocery shopping", "Restaurant dinner", "Coffee shop visit", "Snack purchase", "Fast food order"},
	"Rent":           {"Monthly apartment rent", "Shared room rent payment", "Studio rent"},
	"Utilities":      {"Electricity bill", "Water bill", "Internet subscription", "Gas bill"},
	"Transportation": {"Bus fare", "Train ticket", "Uber ride", "Fuel refill"},
	"Entertainment":  {"Movie ticket", "Concert entry", "Streaming service subscription", "Museum visit"},
	"Health":         {"Pharmacy purchase", "Doctor appointment", "Gym membership", "Dental checkup"},
	"Shopping":       {"Clothing purchase", "Gadget shopping", "Online shopping", "Gift shopping"},
	"Education":      {"Online course fee", "Textbook purchase", "Workshop registration"},
	"Investments":    {"Stock purchase", "Mutual fund investment", "Cryptocurrency purchase"},
	"Travel":         {"Flight ticket", "Hotel booking", "Local tour expenses", "Airport taxi"},
}

var categories = []string{
	"Education", "Entertainment", "Food", "Health", "Investments",
	"Rent", "Shopping", "Transportation", "Travel", "Utilities",
}

// Generate returns 1 to 4 transactions for each of the twelve months before
// now's month, oldest month first. Amounts are whole numbers in [100, 5099]
// and days fall in 1..28. UserID is left empty.
func Generate(rng *rand.Rand, now time.Time) []models.Transaction {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -Months, 0)

	var out []models.Transaction
	for offset := 0; offset < Months; offset++ {
		month := start.AddDate(0, offset, 0)
		n := rng.IntN(maxPerMonth) + 1
		for i := 0; i < n; i++ {
			category := categories[rng.IntN(len(categories))]
			descriptions := Descriptions[category]
			day := rng.IntN(maxDayOfMonth) + 1

			out = append(out, models.Transaction{
				Amount:      float64(rng.IntN(amountSpread) + minAmount),
				Description: descriptions[rng.IntN(len(descriptions))],
				Category:    category,
				Date:        month.AddDate(0, 0, day-1).Format(models.DateLayout),
			})
		}
	}
	return out
}
