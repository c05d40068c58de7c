package transaction_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

func TestSummarize(t *testing.T) {
	txs := []transaction.Transaction{
		{Type: transaction.TypeIncome, Amount: decimal.RequireFromString("5000.00"), Category: "Salary", IsRecurring: true},
		{Type: transaction.TypeExpense, Amount: decimal.RequireFromString("1500.00"), Category: "Housing", IsRecurring: true},
		{Type: transaction.TypeExpense, Amount: decimal.RequireFromString("350.75"), Category: "Food"},
		{Type: transaction.TypeIncome, Amount: decimal.RequireFromString("25.00"), Category: "Food"},
	}

	stats := transaction.Summarize(txs)

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 2, stats.IncomeCount)
	assert.Equal(t, 2, stats.ExpenseCount)
	assert.Equal(t, 2, stats.Recurring)
	assert.Equal(t, 3, stats.Categories)
	assert.True(t, decimal.RequireFromString("5025.00").Equal(stats.Income))
	assert.True(t, decimal.RequireFromString("1850.75").Equal(stats.Expense))
	assert.True(t, decimal.RequireFromString("3174.25").Equal(stats.Balance))
}

func TestSummarize_Empty(t *testing.T) {
	stats := transaction.Summarize(nil)

	assert.Zero(t, stats.Count)
	assert.Zero(t, stats.Categories)
	assert.True(t, stats.Balance.IsZero())
}

func TestValidate(t *testing.T) {
	base := transaction.Transaction{
		ID:          "1",
		Type:        transaction.TypeIncome,
		Description: "Salary",
		Amount:      decimal.RequireFromString("10"),
		Date:        "2025-01-15",
		PostingDate: "2025-01-15",
		Status:      transaction.StatusPaid,
	}

	assert.NoError(t, transaction.Validate(base))

	tests := []struct {
		name   string
		mutate func(tx *transaction.Transaction)
	}{
		{"ZeroAmount", func(tx *transaction.Transaction) { tx.Amount = decimal.Zero }},
		{"UnknownType", func(tx *transaction.Transaction) { tx.Type = "transfer" }},
		{"UnknownStatus", func(tx *transaction.Transaction) { tx.Status = "draft" }},
		{"BadDate", func(tx *transaction.Transaction) { tx.Date = "2025-02-30" }},
		{"OldDate", func(tx *transaction.Transaction) { tx.PostingDate = "1899-12-31" }},
		{"NoID", func(tx *transaction.Transaction) { tx.ID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := base
			tt.mutate(&tx)
			assert.ErrorIs(t, transaction.Validate(tx), transaction.ErrInvalid)
		})
	}
}
