package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

func TestListModel_ApplyFilter(t *testing.T) {
	m := ListModel{}
	now := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	m.applyFilter(now)
	assert.Equal(t, transaction.ListFilter{}, m.filter)

	m.typeIdx = 2
	m.statusIdx = 4
	m.timeframe = TimeframeThisMonth
	m.applyFilter(now)

	require.NotNil(t, m.filter.Type)
	assert.Equal(t, transaction.TypeExpense, *m.filter.Type)
	require.NotNil(t, m.filter.Status)
	assert.Equal(t, transaction.StatusPaid, *m.filter.Status)
	require.NotNil(t, m.filter.StartDate)
	assert.Equal(t, "2025-06-01", *m.filter.StartDate)
	assert.Equal(t, "2025-06-30", *m.filter.EndDate)
}
