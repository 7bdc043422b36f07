package service

import (
	"context"
	"time"

	"canteen/internal/coupon"
	"canteen/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCouponRepository is a mock implementation of CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Append(ctx context.Context, c *model.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCouponRepository) FindByCodeOrOTP(ctx context.Context, token string) (*model.Coupon, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindForEmployeeItemDate(ctx context.Context, employeeID int64, item string, date model.Date) (*model.Coupon, error) {
	args := m.Called(ctx, employeeID, item, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) ItemsOrderedOn(ctx context.Context, employeeID int64, date model.Date) ([]string, error) {
	args := m.Called(ctx, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCouponRepository) MarkRedeemed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) ListForPeriod(ctx context.Context, start, end model.Date) ([]model.Coupon, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) DailyCounts(ctx context.Context, start, end model.Date) ([]model.DailyTotal, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyTotal), args.Error(1)
}

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockEmployeeRepository) Upsert(ctx context.Context, e *model.Employee) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpsertMany(ctx context.Context, employees []model.Employee) error {
	args := m.Called(ctx, employees)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMenuRepository is a mock implementation of MenuRepository.
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) GetByName(ctx context.Context, name string) (*model.MenuItem, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockMenuRepository) Upsert(ctx context.Context, item *model.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockCredentialRepository is a mock implementation of CredentialRepository.
type MockCredentialRepository struct {
	mock.Mock
}

func (m *MockCredentialRepository) GetByUsername(ctx context.Context, username string) (*model.Credential, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialRepository) List(ctx context.Context) ([]model.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCredentialRepository) Create(ctx context.Context, c *model.Credential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCredentialRepository) Update(ctx context.Context, c *model.Credential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCredentialRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

// MockNotifier is a mock implementation of notify.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, contact, employeeName, otp string) error {
	args := m.Called(ctx, contact, employeeName, otp)
	return args.Error(0)
}

// MockGenerator is a mock implementation of coupon.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) NextCode(existing coupon.CodeSet) (string, error) {
	args := m.Called(existing)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) NextOTP(existing coupon.CodeSet) (string, error) {
	args := m.Called(existing)
	return args.String(0), args.Error(1)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(username string, role model.Role) (string, time.Time, error) {
	args := m.Called(username, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockRosterLoader is a mock implementation of roster.Loader.
type MockRosterLoader struct {
	mock.Mock
}

func (m *MockRosterLoader) Load(ctx context.Context, path string) ([]model.Employee, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}
