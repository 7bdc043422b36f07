package service

import (
	"context"
	"fmt"
	"strconv"

	"canteen/internal/model"
	"canteen/internal/report"
	"canteen/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ExportHeader is the column layout of a period export.
var ExportHeader = []string{
	"Code", "Date", "Time", "Employee Code", "Employee Name", "Item", "Redeemed", "Amount",
}

// reportService implements ReportService.
type reportService struct {
	coupons   repository.CouponRepository
	employees repository.EmployeeRepository
	maxDays   int
	logger    zerolog.Logger
}

// NewReportService creates a new report service. Periods longer than maxDays are refused.
func NewReportService(
	coupons repository.CouponRepository,
	employees repository.EmployeeRepository,
	maxDays int,
	logger zerolog.Logger,
) ReportService {
	return &reportService{
		coupons:   coupons,
		employees: employees,
		maxDays:   maxDays,
		logger:    logger.With().Str("service", "report").Logger(),
	}
}

// DailyTotals returns one entry per day in the period, including days with no coupons.
func (s *reportService) DailyTotals(ctx context.Context, start, end model.Date) ([]model.DailyTotal, error) {
	if err := s.validatePeriod(start, end); err != nil {
		return nil, err
	}

	counts, err := s.coupons.DailyCounts(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count coupons: %w", err)
	}

	byDay := make(map[model.Date]model.DailyTotal, len(counts))
	for _, c := range counts {
		byDay[c.Date] = c
	}

	totals := make([]model.DailyTotal, 0, start.DaysUntil(end)+1)
	for day := start; !day.After(end); day = day.AddDays(1) {
		total, ok := byDay[day]
		if !ok {
			total = model.DailyTotal{Date: day}
		}
		totals = append(totals, total)
	}
	return totals, nil
}

// WeeklyTotals rolls daily totals into Monday-based weeks.
func (s *reportService) WeeklyTotals(ctx context.Context, start, end model.Date) ([]model.WeeklyTotal, error) {
	daily, err := s.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var weeks []model.WeeklyTotal
	for _, d := range daily {
		ws := d.Date.WeekStart()
		if n := len(weeks); n == 0 || weeks[n-1].WeekStart != ws {
			weeks = append(weeks, model.WeeklyTotal{WeekStart: ws})
		}
		w := &weeks[len(weeks)-1]
		w.Generated += d.Generated
		w.Redeemed += d.Redeemed
	}
	return weeks, nil
}

// Overview sums the period and adds the directory size.
func (s *reportService) Overview(ctx context.Context, start, end model.Date) (*model.Overview, error) {
	daily, err := s.DailyTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	overview := &model.Overview{Start: start, End: end, Employees: employees}
	for _, d := range daily {
		overview.Generated += d.Generated
		overview.Redeemed += d.Redeemed
	}
	return overview, nil
}

// ExportPeriod renders the coupons of the period as a table with a trailing total.
func (s *reportService) ExportPeriod(ctx context.Context, start, end model.Date) (*report.Table, error) {
	if err := s.validatePeriod(start, end); err != nil {
		return nil, err
	}

	coupons, err := s.coupons.ListForPeriod(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	table := &report.Table{
		Header: ExportHeader,
		Rows:   make([][]string, 0, len(coupons)),
	}

	sum := decimal.Zero
	for _, c := range coupons {
		redeemed := "No"
		if c.Redeemed {
			redeemed = "Yes"
		}
		table.Rows = append(table.Rows, []string{
			c.Code,
			c.IssuedDate.String(),
			c.IssuedTime,
			strconv.FormatInt(c.EmployeeID, 10),
			c.EmployeeName,
			c.ItemName,
			redeemed,
			model.FormatAmount(c.NetPrice),
		})
		sum = sum.Add(c.NetPrice)
	}
	table.Total = []string{"Total:", "", "", "", "", "", "", model.FormatAmount(sum)}

	s.logger.Debug().
		Str("start", start.String()).
		Str("end", end.String()).
		Int("rows", len(table.Rows)).
		Msg("period exported")

	return table, nil
}

func (s *reportService) validatePeriod(start, end model.Date) error {
	if start.IsZero() || end.IsZero() {
		return model.NewDomainError(model.KindInvalid, model.ErrCodeInvalidPeriod, "Start and end dates are required")
	}
	if end.Before(start) {
		return model.NewDomainError(model.KindInvalid, model.ErrCodeInvalidPeriod, "End date is before start date")
	}
	if s.maxDays > 0 && start.DaysUntil(end)+1 > s.maxDays {
		return model.NewDomainError(model.KindInvalid, model.ErrCodeInvalidPeriod,
			fmt.Sprintf("Report period cannot exceed %d days", s.maxDays))
	}
	return nil
}
