package seed

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/nemopss/spendwise/models"
	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	txs := Generate(rand.New(rand.NewPCG(1, 2)), now)

	perMonth := map[string]int{}
	for _, tx := range txs {
		d, err := time.Parse(models.DateLayout, tx.Date)
		if !assert.NoError(t, err) {
			continue
		}
		assert.LessOrEqual(t, d.Day(), 28)
		assert.GreaterOrEqual(t, tx.Amount, 100.0)
		assert.LessOrEqual(t, tx.Amount, 5099.0)
		assert.Contains(t, Descriptions[tx.Category], tx.Description)
		assert.Empty(t, tx.UserID)
		perMonth[d.Format("2006-01")]++
	}

	assert.Len(t, perMonth, Months)
	for month, n := range perMonth {
		assert.True(t, month >= "2024-06" && month <= "2025-05", "unexpected month %s", month)
		assert.True(t, n >= 1 && n <= 4, "month %s has %d transactions", month, n)
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	now := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	a := Generate(rand.New(rand.NewPCG(7, 7)), now)
	b := Generate(rand.New(rand.NewPCG(7, 7)), now)
	assert.Equal(t, a, b)
}

func TestCategoriesCoverDescriptions(t *testing.T) {
	assert.Len(t, categories, len(Descriptions))
	for _, c := range categories {
		assert.NotEmpty(t, Descriptions[c], c)
	}
}
