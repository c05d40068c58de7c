package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

// Response is the JSON shape of a transaction. Amounts are fixed two-place
// decimal strings.
type Response struct {
	ID          string             `json:"id"`
	Type        transaction.Type   `json:"type"`
	Description string             `json:"description"`
	Amount      string             `json:"amount"`
	Date        string             `json:"date"`
	PostingDate string             `json:"posting_date"`
	Category    string             `json:"category"`
	Status      transaction.Status `json:"status"`
	IsRecurring bool               `json:"is_recurring"`
	CreatedAt   *time.Time         `json:"created_at,omitempty"`
}

// Request is the JSON shape accepted when saving transactions.
type Request struct {
	ID          string             `json:"id"`
	Type        transaction.Type   `json:"type"`
	Description string             `json:"description"`
	Amount      decimal.Decimal    `json:"amount"`
	Date        string             `json:"date"`
	PostingDate string             `json:"posting_date"`
	Category    string             `json:"category"`
	Status      transaction.Status `json:"status"`
	IsRecurring bool               `json:"is_recurring"`
}

type StatsResponse struct {
	Count        int    `json:"count"`
	IncomeCount  int    `json:"income_count"`
	ExpenseCount int    `json:"expense_count"`
	Recurring    int    `json:"recurring"`
	Categories   int    `json:"categories"`
	Income       string `json:"income"`
	Expense      string `json:"expense"`
	Balance      string `json:"balance"`
}

func ToResponse(tx transaction.Transaction) Response {
	resp := Response{
		ID:          tx.ID,
		Type:        tx.Type,
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Date:        tx.Date,
		PostingDate: tx.PostingDate,
		Category:    tx.Category,
		Status:      tx.Status,
		IsRecurring: tx.IsRecurring,
	}

	if !tx.CreatedAt.IsZero() {
		resp.CreatedAt = new(tx.CreatedAt)
	}

	return resp
}

func ToResponseList(txs []transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}

func (r Request) Transaction() transaction.Transaction {
	return transaction.Transaction{
		ID:          r.ID,
		Type:        r.Type,
		Description: r.Description,
		Amount:      r.Amount,
		Date:        r.Date,
		PostingDate: r.PostingDate,
		Category:    r.Category,
		Status:      r.Status,
		IsRecurring: r.IsRecurring,
	}
}

func ToStatsResponse(s transaction.Stats) StatsResponse {
	return StatsResponse{
		Count:        s.Count,
		IncomeCount:  s.IncomeCount,
		ExpenseCount: s.ExpenseCount,
		Recurring:    s.Recurring,
		Categories:   s.Categories,
		Income:       s.Income.StringFixed(2),
		Expense:      s.Expense.StringFixed(2),
		Balance:      s.Balance.StringFixed(2),
	}
}
