package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

func TestListQuery(t *testing.T) {
	expense := transaction.TypeExpense
	start, end := "2025-01-01", "2025-01-31"
	food := "Food"

	tests := []struct {
		name      string
		filter    transaction.ListFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:   "NoFilter",
			filter: transaction.ListFilter{},
		},
		{
			name:      "TypeAndRange",
			filter:    transaction.ListFilter{Type: &expense, StartDate: &start, EndDate: &end},
			wantWhere: " WHERE type = $1 AND date >= $2 AND date <= $3",
			wantArgs:  []any{expense, start, end},
		},
		{
			name:      "Category",
			filter:    transaction.ListFilter{Category: &food},
			wantWhere: " WHERE category = $1",
			wantArgs:  []any{food},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := listQuery(tt.filter)

			want := `SELECT ` + selectColumns + ` FROM transactions` + tt.wantWhere + " ORDER BY date ASC, created_at ASC"
			assert.Equal(t, want, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBatchLockKey_OrderIndependent(t *testing.T) {
	a := []transaction.Transaction{{Date: "2025-01-10"}, {Date: "2025-01-01"}, {Date: "2025-01-31"}}
	b := []transaction.Transaction{{Date: "2025-01-31"}, {Date: "2025-01-10"}, {Date: "2025-01-01"}}
	c := []transaction.Transaction{{Date: "2025-02-01"}}

	assert.Equal(t, batchLockKey(a), batchLockKey(b))
	assert.NotEqual(t, batchLockKey(a), batchLockKey(c))
}
