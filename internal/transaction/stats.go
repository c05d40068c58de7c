package transaction

import (
	"github.com/shopspring/decimal"
)

// Stats summarizes a set of transactions.
type Stats struct {
	Count        int
	IncomeCount  int
	ExpenseCount int
	Recurring    int
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Balance      decimal.Decimal
	Categories   int
}

// Summarize computes Stats over txs.
func Summarize(txs []Transaction) Stats {
	stats := Stats{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	categories := make(map[string]struct{})

	for _, tx := range txs {
		stats.Count++

		switch tx.Type {
		case TypeIncome:
			stats.IncomeCount++
			stats.Income = stats.Income.Add(tx.Amount)
		case TypeExpense:
			stats.ExpenseCount++
			stats.Expense = stats.Expense.Add(tx.Amount)
		}

		if tx.IsRecurring {
			stats.Recurring++
		}

		categories[tx.Category] = struct{}{}
	}

	stats.Balance = stats.Income.Sub(stats.Expense)
	stats.Categories = len(categories)

	return stats
}
