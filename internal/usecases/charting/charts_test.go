package charting_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/charting"
)

func TestServiceRevenuePie(t *testing.T) {
	var buf bytes.Buffer

	err := charting.ServiceRevenuePie(&buf, []domain.ServiceRevenue{
		{Service: "Ceramic Coating", Amount: decimal.NewFromInt(300)},
		{Service: "PPF", Amount: decimal.NewFromInt(100)},
		{Service: "Refund", Amount: decimal.NewFromInt(-20)},
	}, charting.Size{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Ceramic Coating (75.00%)")
	assert.NotContains(t, out, "Refund")
}

func TestServiceRevenuePie_NoData(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorIs(t, charting.ServiceRevenuePie(&buf, nil, charting.Size{}), charting.ErrNoChartData)
	assert.ErrorIs(t, charting.ServiceRevenuePie(&buf, []domain.ServiceRevenue{
		{Service: "Wash", Amount: decimal.Zero},
	}, charting.Size{}), charting.ErrNoChartData)
	assert.Zero(t, buf.Len())
}

func TestDailyRevenueLine(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name  string
		items []domain.DailyRevenue
	}{
		{
			name: "several days",
			items: []domain.DailyRevenue{
				{Date: day(1), Amount: decimal.NewFromInt(800)},
				{Date: day(3), Amount: decimal.RequireFromString("3250.50")},
				{Date: day(5), Amount: decimal.NewFromInt(1500)},
			},
		},
		{
			name:  "single day",
			items: []domain.DailyRevenue{{Date: day(2), Amount: decimal.NewFromInt(99)}},
		},
		{
			name:  "flat zero",
			items: []domain.DailyRevenue{{Date: day(2), Amount: decimal.Zero}, {Date: day(4), Amount: decimal.Zero}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, charting.DailyRevenueLine(&buf, tt.items, charting.Size{Width: 800, Height: 300}))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestDailyRevenueLine_NoData(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, charting.DailyRevenueLine(&buf, nil, charting.Size{}), charting.ErrNoChartData)
}
