package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"canteen/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_DailyTotals(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewReportService(mockCoupons, new(MockEmployeeRepository), 366, zerolog.Nop())

	start := model.NewDate(2024, time.March, 3)
	end := model.NewDate(2024, time.March, 5)
	day := model.NewDate(2024, time.March, 4)

	mockCoupons.On("DailyCounts", ctx, start, end).
		Return([]model.DailyTotal{{Date: day, Generated: 1, Redeemed: 1}}, nil)

	totals, err := svc.DailyTotals(ctx, start, end)

	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, model.DailyTotal{Date: start}, totals[0])
	assert.Equal(t, model.DailyTotal{Date: day, Generated: 1, Redeemed: 1}, totals[1])
	assert.Equal(t, model.DailyTotal{Date: end}, totals[2])
}

func TestReportService_InvalidPeriod(t *testing.T) {
	tests := []struct {
		name  string
		start model.Date
		end   model.Date
	}{
		{
			name:  "Missing start",
			start: model.Date{},
			end:   model.NewDate(2024, time.March, 5),
		},
		{
			name:  "End before start",
			start: model.NewDate(2024, time.March, 5),
			end:   model.NewDate(2024, time.March, 4),
		},
		{
			name:  "Too long",
			start: model.NewDate(2024, time.January, 1),
			end:   model.NewDate(2024, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockCoupons := new(MockCouponRepository)
			svc := NewReportService(mockCoupons, new(MockEmployeeRepository), 7, zerolog.Nop())

			_, err := svc.DailyTotals(ctx, tt.start, tt.end)
			assert.ErrorIs(t, err, model.ErrInvalidPeriod)

			_, err = svc.ExportPeriod(ctx, tt.start, tt.end)
			assert.ErrorIs(t, err, model.ErrInvalidPeriod)

			mockCoupons.AssertNumberOfCalls(t, "DailyCounts", 0)
			mockCoupons.AssertNumberOfCalls(t, "ListForPeriod", 0)
		})
	}
}

func TestReportService_WeeklyTotals(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewReportService(mockCoupons, new(MockEmployeeRepository), 366, zerolog.Nop())

	// Saturday 2 March to Tuesday 12 March 2024 spans three ISO weeks.
	start := model.NewDate(2024, time.March, 2)
	end := model.NewDate(2024, time.March, 12)

	mockCoupons.On("DailyCounts", ctx, start, end).Return([]model.DailyTotal{
		{Date: model.NewDate(2024, time.March, 3), Generated: 2, Redeemed: 1},
		{Date: model.NewDate(2024, time.March, 4), Generated: 5, Redeemed: 5},
		{Date: model.NewDate(2024, time.March, 10), Generated: 1, Redeemed: 0},
		{Date: model.NewDate(2024, time.March, 11), Generated: 3, Redeemed: 2},
	}, nil)

	weeks, err := svc.WeeklyTotals(ctx, start, end)

	require.NoError(t, err)
	require.Len(t, weeks, 3)
	assert.Equal(t, model.WeeklyTotal{WeekStart: model.NewDate(2024, time.February, 26), Generated: 2, Redeemed: 1}, weeks[0])
	assert.Equal(t, model.WeeklyTotal{WeekStart: model.NewDate(2024, time.March, 4), Generated: 6, Redeemed: 5}, weeks[1])
	assert.Equal(t, model.WeeklyTotal{WeekStart: model.NewDate(2024, time.March, 11), Generated: 3, Redeemed: 2}, weeks[2])
}

func TestReportService_Overview(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	mockEmployees := new(MockEmployeeRepository)
	svc := NewReportService(mockCoupons, mockEmployees, 366, zerolog.Nop())

	start := model.NewDate(2024, time.March, 4)
	end := model.NewDate(2024, time.March, 5)

	mockCoupons.On("DailyCounts", ctx, start, end).Return([]model.DailyTotal{
		{Date: start, Generated: 4, Redeemed: 3},
		{Date: end, Generated: 2, Redeemed: 0},
	}, nil)
	mockEmployees.On("Count", ctx).Return(12, nil)

	overview, err := svc.Overview(ctx, start, end)

	require.NoError(t, err)
	assert.Equal(t, 6, overview.Generated)
	assert.Equal(t, 3, overview.Redeemed)
	assert.Equal(t, 12, overview.Employees)
}

func TestReportService_ExportPeriod(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewReportService(mockCoupons, new(MockEmployeeRepository), 366, zerolog.Nop())

	start := model.NewDate(2024, time.March, 4)
	end := model.NewDate(2024, time.March, 4)

	redeemed := ashaTeaCoupon(true)
	pending := ashaTeaCoupon(false)
	pending.Code = "CZZZZZZZZ"
	pending.ItemName = "Coffee"
	pending.NetPrice = decimal.RequireFromString("12.5")

	mockCoupons.On("ListForPeriod", ctx, start, end).Return([]model.Coupon{*redeemed, *pending}, nil)

	table, err := svc.ExportPeriod(ctx, start, end)

	require.NoError(t, err)
	assert.Equal(t, ExportHeader, table.Header)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"CABCDEFGH", "2024-03-04", "12:30:15", "101", "Asha", "Tea", "Yes", "8.00"}, table.Rows[0])
	assert.Equal(t, "No", table.Rows[1][6])
	assert.Equal(t, "20.50", table.Total[7])

	var buf bytes.Buffer
	require.NoError(t, table.WriteCSV(&buf))
	assert.NotContains(t, buf.String(), "123456")
}

func TestReportService_ExportPeriod_Empty(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewReportService(mockCoupons, new(MockEmployeeRepository), 366, zerolog.Nop())

	start := model.NewDate(2024, time.March, 4)
	end := model.NewDate(2024, time.March, 10)
	mockCoupons.On("ListForPeriod", ctx, start, end).Return([]model.Coupon{}, nil)

	table, err := svc.ExportPeriod(ctx, start, end)

	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, []string{"Total:", "", "", "", "", "", "", "0.00"}, table.Total)
}
