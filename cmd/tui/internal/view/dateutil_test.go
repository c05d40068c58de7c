package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeframe_DateRange(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		tf        Timeframe
		wantStart string
		wantEnd   string
	}{
		{TimeframeThisMonth, "2025-03-01", "2025-03-31"},
		{TimeframeLastMonth, "2025-02-01", "2025-02-28"},
		{TimeframeThisYear, "2025-01-01", "2025-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			start, end := tt.tf.DateRange(now)
			require.NotNil(t, start)
			require.NotNil(t, end)
			assert.Equal(t, tt.wantStart, *start)
			assert.Equal(t, tt.wantEnd, *end)
		})
	}

	start, end := TimeframeAll.DateRange(now)
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestTimeframe_LastMonthAcrossYear(t *testing.T) {
	start, end := TimeframeLastMonth.DateRange(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-12-01", *start)
	assert.Equal(t, "2024-12-31", *end)
}

func TestTimeframe_Next(t *testing.T) {
	assert.Equal(t, TimeframeThisMonth, TimeframeAll.Next())
	assert.Equal(t, TimeframeAll, TimeframeThisYear.Next())
}
