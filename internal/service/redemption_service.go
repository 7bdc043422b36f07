package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"canteen/internal/model"
	"canteen/internal/repository"

	"github.com/rs/zerolog"
)

// redemptionService implements RedemptionService.
type redemptionService struct {
	coupons repository.CouponRepository
	logger  zerolog.Logger
}

// NewRedemptionService creates a new redemption service.
func NewRedemptionService(coupons repository.CouponRepository, logger zerolog.Logger) RedemptionService {
	return &redemptionService{
		coupons: coupons,
		logger:  logger.With().Str("service", "redemption").Logger(),
	}
}

// Redeem resolves the token and flips the coupon to redeemed exactly once.
func (s *redemptionService) Redeem(ctx context.Context, actor model.Actor, token string) (*model.CouponSummary, error) {
	c, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}

	if c.Redeemed {
		s.logger.Info().
			Str("coupon_id", c.ID.String()).
			Str("operator", actor.Username).
			Msg("redemption refused, coupon already used")
		return c.Summary(), model.ErrAlreadyRedeemed
	}

	err = s.coupons.MarkRedeemed(ctx, c.ID)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrAlreadyRedeemed):
		// Another operator won the race between our read and the update.
		c.Redeemed = true
		s.logger.Info().
			Str("coupon_id", c.ID.String()).
			Str("operator", actor.Username).
			Msg("redemption lost race, coupon already used")
		return c.Summary(), model.ErrAlreadyRedeemed
	case errors.Is(err, model.ErrCouponNotFound):
		return nil, model.ErrInvalidToken
	default:
		return nil, fmt.Errorf("failed to redeem coupon: %w", err)
	}

	c.Redeemed = true
	s.logger.Info().
		Str("coupon_id", c.ID.String()).
		Int64("employee_id", c.EmployeeID).
		Str("item", c.ItemName).
		Str("operator", actor.Username).
		Msg("coupon redeemed")

	return c.Summary(), nil
}

// Lookup returns the coupon summary without changing it.
func (s *redemptionService) Lookup(ctx context.Context, token string) (*model.CouponSummary, error) {
	c, err := s.find(ctx, token)
	if err != nil {
		return nil, err
	}
	return c.Summary(), nil
}

func (s *redemptionService) find(ctx context.Context, token string) (*model.Coupon, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, model.ErrInvalidToken
	}

	c, err := s.coupons.FindByCodeOrOTP(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	if c == nil {
		return nil, model.ErrInvalidToken
	}
	return c, nil
}
