package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"canteen/internal/clock"
	"canteen/internal/coupon"
	"canteen/internal/model"
	"canteen/internal/notify"
	"canteen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultNotifyTimeout bounds an OTP delivery when IssuanceOptions leaves it unset.
const DefaultNotifyTimeout = 5 * time.Second

// IssuanceOptions holds the ledger rules applied at issuance.
type IssuanceOptions struct {
	Location      *time.Location
	MaxAttempts   int
	NotifyTimeout time.Duration
}

// issuanceService implements IssuanceService.
type issuanceService struct {
	coupons   repository.CouponRepository
	employees repository.EmployeeRepository
	menu      repository.MenuRepository
	generator coupon.Generator
	notifier  notify.Notifier
	clock     clock.Clock
	opts      IssuanceOptions
	logger    zerolog.Logger
}

// NewIssuanceService creates a new issuance service.
func NewIssuanceService(
	coupons repository.CouponRepository,
	employees repository.EmployeeRepository,
	menu repository.MenuRepository,
	generator coupon.Generator,
	notifier notify.Notifier,
	clk clock.Clock,
	opts IssuanceOptions,
	logger zerolog.Logger,
) IssuanceService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.NotifyTimeout <= 0 {
		opts.NotifyTimeout = DefaultNotifyTimeout
	}
	return &issuanceService{
		coupons:   coupons,
		employees: employees,
		menu:      menu,
		generator: generator,
		notifier:  notifier,
		clock:     clk,
		opts:      opts,
		logger:    logger.With().Str("service", "issuance").Logger(),
	}
}

// Issue creates, persists and then announces a coupon.
func (s *issuanceService) Issue(ctx context.Context, actor model.Actor, employeeID int64, itemName string) (*model.Issuance, error) {
	employee, item, err := s.resolve(ctx, employeeID, itemName)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().In(s.opts.Location)
	today := model.DateOf(now)

	existing, err := s.coupons.FindForEmployeeItemDate(ctx, employee.ID, item.Name, today)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing orders: %w", err)
	}
	if existing != nil {
		s.logger.Info().
			Int64("employee_id", employee.ID).
			Str("item", item.Name).
			Msg("duplicate order refused")
		return nil, model.ErrDuplicateOrder
	}

	c, err := s.persist(ctx, actor, employee, item, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("coupon_id", c.ID.String()).
		Int64("employee_id", c.EmployeeID).
		Str("item", c.ItemName).
		Str("issued_by", actor.Username).
		Msg("coupon issued")

	issuance := &model.Issuance{Coupon: c, Notified: true}

	// The coupon is already durable; delivery gets its own deadline and cannot undo it.
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.NotifyTimeout)
	defer cancel()

	if err := s.notifier.Send(notifyCtx, employee.Mobile, employee.Name, c.OTP); err != nil {
		s.logger.Warn().
			Err(err).
			Str("coupon_id", c.ID.String()).
			Int64("employee_id", c.EmployeeID).
			Msg("otp delivery failed, coupon remains valid")
		issuance.Notified = false
		issuance.NotifyError = err.Error()
	}

	return issuance, nil
}

// persist draws an OTP and code and appends the coupon, drawing again while
// the store reports a collision.
func (s *issuanceService) persist(ctx context.Context, actor model.Actor, employee *model.Employee, item *model.MenuItem, now time.Time) (*model.Coupon, error) {
	rejected := coupon.NewCodeSet(2 * s.opts.MaxAttempts)

	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		otp, err := s.generator.NextOTP(rejected)
		if err != nil {
			return nil, err
		}
		code, err := s.generator.NextCode(rejected)
		if err != nil {
			return nil, err
		}

		c := &model.Coupon{
			ID:           uuid.New(),
			Code:         code,
			OTP:          otp,
			IssuedDate:   model.DateOf(now),
			IssuedTime:   now.Format(model.TimeLayout),
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			ItemName:     item.Name,
			NetPrice:     item.NetPrice(),
			IssuedBy:     actor.Username,
			CreatedAt:    now.UTC(),
		}

		err = s.coupons.Append(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, model.ErrDuplicateCode) {
			return nil, err
		}

		s.logger.Debug().Int("attempt", attempt).Msg("store rejected generated code, retrying")
		rejected.Add(otp)
		rejected.Add(code)
	}

	s.logger.Error().Int("attempts", s.opts.MaxAttempts).Msg("could not store a unique coupon")
	return nil, model.ErrGenerationExhausted
}

// AvailableItems filters out items already ordered today.
func (s *issuanceService) AvailableItems(ctx context.Context, employeeID int64) ([]model.MenuItem, error) {
	employee, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	menu, err := s.menu.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	today := model.DateOf(s.clock.Now().In(s.opts.Location))
	ordered, err := s.coupons.ItemsOrderedOn(ctx, employee.ID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's orders: %w", err)
	}

	taken := coupon.NewCodeSet(len(ordered), ordered...)
	available := make([]model.MenuItem, 0, len(menu))
	for _, item := range menu {
		if !taken.Contains(item.Name) {
			available = append(available, item)
		}
	}
	return available, nil
}

// Preview prices a selection.
func (s *issuanceService) Preview(ctx context.Context, employeeID int64, itemName string) (*model.Bill, error) {
	employee, item, err := s.resolve(ctx, employeeID, itemName)
	if err != nil {
		return nil, err
	}

	return &model.Bill{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name,
		Item:         item.Name,
		Price:        item.Price,
		Discount:     item.Discount,
		NetPrice:     item.NetPrice(),
	}, nil
}

func (s *issuanceService) resolve(ctx context.Context, employeeID int64, itemName string) (*model.Employee, *model.MenuItem, error) {
	employee, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.menu.GetByName(ctx, itemName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up menu item: %w", err)
	}
	if item == nil {
		return nil, nil, model.ErrItemNotFound
	}

	return employee, item, nil
}

func (s *issuanceService) employee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee: %w", err)
	}
	if employee == nil {
		return nil, model.ErrEmployeeNotFound
	}
	return employee, nil
}
