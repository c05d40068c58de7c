package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

const dbTimeout = 5 * time.Second

var (
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// FormatAmount renders an amount with two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// SignedAmount renders an amount with a sign derived from the type.
func SignedAmount(tx transaction.Transaction) string {
	if tx.Type == transaction.TypeExpense {
		return "-" + FormatAmount(tx.Amount)
	}

	return "+" + FormatAmount(tx.Amount)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
