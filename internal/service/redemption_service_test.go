package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"canteen/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var operator = model.Actor{Username: "op1", Role: model.RoleOperator}

func ashaTeaCoupon(redeemed bool) *model.Coupon {
	return &model.Coupon{
		ID:           uuid.New(),
		Code:         "CABCDEFGH",
		OTP:          "123456",
		IssuedDate:   model.NewDate(2024, time.March, 4),
		IssuedTime:   "12:30:15",
		EmployeeID:   101,
		EmployeeName: "Asha",
		ItemName:     "Tea",
		NetPrice:     decimal.NewFromInt(8),
		Redeemed:     redeemed,
	}
}

func TestRedemptionService_Redeem_Success(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewRedemptionService(mockCoupons, zerolog.Nop())

	c := ashaTeaCoupon(false)
	mockCoupons.On("FindByCodeOrOTP", ctx, "123456").Return(c, nil)
	mockCoupons.On("MarkRedeemed", ctx, c.ID).Return(nil)

	summary, err := svc.Redeem(ctx, operator, " 123456 ")

	require.NoError(t, err)
	assert.Equal(t, "Asha", summary.EmployeeName)
	assert.Equal(t, "Tea", summary.Item)
	assert.True(t, summary.Amount.Equal(decimal.NewFromInt(8)))
	assert.True(t, summary.Redeemed)
	mockCoupons.AssertExpectations(t)
}

func TestRedemptionService_Redeem_Twice(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewRedemptionService(mockCoupons, zerolog.Nop())

	fresh := ashaTeaCoupon(false)
	used := *fresh
	used.Redeemed = true

	mockCoupons.On("FindByCodeOrOTP", ctx, "123456").Return(fresh, nil).Once()
	mockCoupons.On("MarkRedeemed", ctx, fresh.ID).Return(nil).Once()
	mockCoupons.On("FindByCodeOrOTP", ctx, "123456").Return(&used, nil).Once()

	_, err := svc.Redeem(ctx, operator, "123456")
	require.NoError(t, err)

	summary, err := svc.Redeem(ctx, operator, "123456")

	assert.ErrorIs(t, err, model.ErrAlreadyRedeemed)
	require.NotNil(t, summary)
	assert.Equal(t, "Asha", summary.EmployeeName)
	assert.True(t, summary.Redeemed)
	mockCoupons.AssertNumberOfCalls(t, "MarkRedeemed", 1)
}

func TestRedemptionService_Redeem_Errors(t *testing.T) {
	c := ashaTeaCoupon(false)

	tests := []struct {
		name          string
		token         string
		setupMocks    func(m *MockCouponRepository, ctx context.Context)
		expectedError error
		expectSummary bool
	}{
		{
			name:          "Empty token",
			token:         "   ",
			setupMocks:    func(m *MockCouponRepository, ctx context.Context) {},
			expectedError: model.ErrInvalidToken,
		},
		{
			name:  "Unknown token",
			token: "999999",
			setupMocks: func(m *MockCouponRepository, ctx context.Context) {
				m.On("FindByCodeOrOTP", ctx, "999999").Return(nil, nil)
			},
			expectedError: model.ErrInvalidToken,
		},
		{
			name:  "Lost race to another operator",
			token: "123456",
			setupMocks: func(m *MockCouponRepository, ctx context.Context) {
				m.On("FindByCodeOrOTP", ctx, "123456").Return(c, nil)
				m.On("MarkRedeemed", ctx, c.ID).Return(model.ErrAlreadyRedeemed)
			},
			expectedError: model.ErrAlreadyRedeemed,
			expectSummary: true,
		},
		{
			name:  "Coupon vanished between read and update",
			token: "123456",
			setupMocks: func(m *MockCouponRepository, ctx context.Context) {
				m.On("FindByCodeOrOTP", ctx, "123456").Return(c, nil)
				m.On("MarkRedeemed", ctx, c.ID).Return(model.ErrCouponNotFound)
			},
			expectedError: model.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockCoupons := new(MockCouponRepository)
			svc := NewRedemptionService(mockCoupons, zerolog.Nop())
			tt.setupMocks(mockCoupons, ctx)

			summary, err := svc.Redeem(ctx, operator, tt.token)

			assert.ErrorIs(t, err, tt.expectedError)
			if tt.expectSummary {
				require.NotNil(t, summary)
				assert.True(t, summary.Redeemed)
			} else {
				assert.Nil(t, summary)
			}
		})
	}
}

func TestRedemptionService_Redeem_StoreFailure(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewRedemptionService(mockCoupons, zerolog.Nop())

	mockCoupons.On("FindByCodeOrOTP", ctx, "123456").Return(nil, errors.New("connection reset"))

	summary, err := svc.Redeem(ctx, operator, "123456")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, summary)
}

func TestRedemptionService_Lookup(t *testing.T) {
	ctx := context.Background()
	mockCoupons := new(MockCouponRepository)
	svc := NewRedemptionService(mockCoupons, zerolog.Nop())

	c := ashaTeaCoupon(false)
	mockCoupons.On("FindByCodeOrOTP", ctx, "CABCDEFGH").Return(c, nil)

	summary, err := svc.Lookup(ctx, "CABCDEFGH")

	require.NoError(t, err)
	assert.Equal(t, "CABCDEFGH", summary.Code)
	assert.False(t, summary.Redeemed)
	mockCoupons.AssertNotCalled(t, "MarkRedeemed", mock.Anything, mock.Anything)
}
